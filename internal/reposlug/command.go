package reposlug

import (
	"fmt"

	"github.com/spf13/cobra"
)

const (
	commandUseConstant              = "slug [directory]"
	commandShortDescriptionConstant = "Print the owner/name slug of a repository's origin remote"
	defaultDirectoryConstant        = "."
	slugOutputTemplateConstant      = "%s\n"
)

// SlugResolver derives the owner/name slug for a repository directory.
type SlugResolver interface {
	ResolveSlug(directoryPath string) (string, error)
}

// CommandBuilder assembles the slug cobra command.
type CommandBuilder struct {
	SlugResolver SlugResolver
}

// Build constructs the cobra command that prints a repository slug.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Args:  cobra.MaximumNArgs(1),
		RunE:  builder.run,
	}
	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	directoryPath := defaultDirectoryConstant
	if len(arguments) > 0 {
		directoryPath = arguments[0]
	}

	slugResolver := builder.SlugResolver
	if slugResolver == nil {
		slugResolver = defaultSlugResolver()
	}

	repositorySlug, resolutionError := slugResolver.ResolveSlug(directoryPath)
	if resolutionError != nil {
		return resolutionError
	}

	fmt.Fprintf(command.OutOrStdout(), slugOutputTemplateConstant, repositorySlug)
	return nil
}
