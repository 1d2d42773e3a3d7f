package clone

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/repofleet/internal/dependencies"
	"github.com/temirov/repofleet/internal/execshell"
)

const (
	commandUseConstant              = "clone <owner/name> [revision]"
	commandShortDescriptionConstant = "Clone a repository with optional versioning and mirror support"
	commandLongDescriptionConstant  = "Clones a repository over SSH with an HTTPS fallback, optionally borrowing objects from a local mirror and pinning the checkout under a revision-named directory."
	remoteFlagNameConstant          = "remote"
	remoteFlagDescriptionConstant   = "The git URL base to clone from"
	clonePathFlagNameConstant       = "clonepath"
	clonePathFlagDescription        = "Path to store cloned repositories"
	mirrorPathFlagNameConstant      = "mirrorpath"
	mirrorPathFlagDescription       = "Path to cached repositories that speed up cloning"
	versioningFlagNameConstant      = "versioning"
	versioningFlagDescription       = "Check out into <owner/name>/<commit> instead of <owner/name>"
	clonedMessageTemplateConstant   = "Cloned %s into %s\n"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the clone command configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the clone command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	GitExecutor           dependencies.GitExecutor
	RepositoryManager     dependencies.RepositoryManager
	CommandEventsObserver execshell.CommandEventObserver
}

// Build constructs the cobra command for cloning repositories.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.RangeArgs(1, 2),
		RunE:  builder.run,
	}

	command.Flags().String(remoteFlagNameConstant, "", remoteFlagDescriptionConstant)
	command.Flags().String(clonePathFlagNameConstant, "", clonePathFlagDescription)
	command.Flags().String(mirrorPathFlagNameConstant, "", mirrorPathFlagDescription)
	command.Flags().Bool(versioningFlagNameConstant, false, versioningFlagDescription)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	logger := builder.resolveLogger()
	configuration := builder.resolveConfiguration()

	gitExecutor, executorError := dependencies.ResolveGitExecutor(builder.GitExecutor, logger, builder.CommandEventsObserver)
	if executorError != nil {
		return executorError
	}
	repositoryManager, managerError := dependencies.ResolveRepositoryManager(builder.RepositoryManager, gitExecutor)
	if managerError != nil {
		return managerError
	}

	cloneService, serviceError := NewService(repositoryManager, logger)
	if serviceError != nil {
		return serviceError
	}

	revision := ""
	if len(arguments) > 1 {
		revision = arguments[1]
	}

	remoteBase, _ := command.Flags().GetString(remoteFlagNameConstant)
	if len(strings.TrimSpace(remoteBase)) == 0 {
		remoteBase = configuration.RemoteBase
	}
	clonePath, _ := command.Flags().GetString(clonePathFlagNameConstant)
	if len(strings.TrimSpace(clonePath)) == 0 {
		clonePath = configuration.ClonePath
	}
	mirrorPath, _ := command.Flags().GetString(mirrorPathFlagNameConstant)
	if len(strings.TrimSpace(mirrorPath)) == 0 {
		mirrorPath = configuration.MirrorPath
	}
	versioning, _ := command.Flags().GetBool(versioningFlagNameConstant)

	targetPath, cloneError := cloneService.Clone(command.Context(), Request{
		RepositorySpec: arguments[0],
		Revision:       revision,
		RemoteBase:     remoteBase,
		ClonePath:      clonePath,
		MirrorPath:     mirrorPath,
		Versioning:     versioning,
	})
	if cloneError != nil {
		return cloneError
	}

	fmt.Fprintf(command.OutOrStdout(), clonedMessageTemplateConstant, arguments[0], targetPath)
	return nil
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return CommandConfiguration{}
	}
	return builder.ConfigurationProvider()
}
