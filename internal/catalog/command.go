package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/repofleet/internal/dependencies"
	"github.com/temirov/repofleet/internal/execshell"
	flagutils "github.com/temirov/repofleet/internal/utils/flags"
)

const (
	groupCommandUseConstant              = "repos"
	groupCommandShortDescriptionConstant = "List repositories locally or on GitHub"
	localCommandUseConstant              = "local [path...]"
	localCommandShortDescription         = "List discovered local repositories with their slugs"
	githubCommandUseConstant             = "github <name>"
	githubCommandShortDescription        = "List the repositories of a GitHub organization or user"
	repoTypeFlagNameConstant             = "repo-type"
	repoTypeFlagDescriptionConstant      = "The type of repository owner"
	archivedFlagNameConstant             = "archived"
	archivedFlagShorthandConstant        = "a"
	archivedFlagDescriptionConstant      = "Include archived repositories"
	defaultDiscoveryRootConstant         = "."
	repositoryNameTemplateConstant       = "%s\n"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the repos command configuration.
type ConfigurationProvider func() CommandConfiguration

// RepositoryNameLister abstracts the GitHub listing backend for tests.
type RepositoryNameLister interface {
	ListRepositoryNames(executionContext context.Context, query RepositoryQuery) ([]string, error)
}

// CommandBuilder assembles the repos command group with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	GitExecutor           dependencies.GitExecutor
	RepositoryManager     dependencies.RepositoryManager
	RepositoryLocator     dependencies.RepositoryLocator
	RepositoryNameLister  RepositoryNameLister
	CommandEventsObserver execshell.CommandEventObserver
}

// Build constructs the repos command group with the local and github subcommands.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	groupCommand := &cobra.Command{
		Use:   groupCommandUseConstant,
		Short: groupCommandShortDescriptionConstant,
	}

	localCommand := &cobra.Command{
		Use:   localCommandUseConstant,
		Short: localCommandShortDescription,
		RunE:  builder.runLocal,
	}

	githubCommand := &cobra.Command{
		Use:   githubCommandUseConstant,
		Short: githubCommandShortDescription,
		Args:  cobra.ExactArgs(1),
		RunE:  builder.runGitHub,
	}
	repoTypeUsage := flagutils.FormatChoiceUsage("", []string{string(OwnerTypeOrganization), string(OwnerTypeUser)}, repoTypeFlagDescriptionConstant)
	githubCommand.Flags().String(repoTypeFlagNameConstant, string(OwnerTypeOrganization), repoTypeUsage)
	githubCommand.Flags().BoolP(archivedFlagNameConstant, archivedFlagShorthandConstant, false, archivedFlagDescriptionConstant)

	groupCommand.AddCommand(localCommand, githubCommand)
	return groupCommand, nil
}

func (builder *CommandBuilder) runLocal(command *cobra.Command, arguments []string) error {
	logger := builder.resolveLogger()

	gitExecutor, executorError := dependencies.ResolveGitExecutor(builder.GitExecutor, logger, builder.CommandEventsObserver)
	if executorError != nil {
		return executorError
	}
	repositoryManager, managerError := dependencies.ResolveRepositoryManager(builder.RepositoryManager, gitExecutor)
	if managerError != nil {
		return managerError
	}
	repositoryLocator, locatorError := dependencies.ResolveRepositoryLocator(builder.RepositoryLocator, repositoryManager, logger)
	if locatorError != nil {
		return locatorError
	}

	descriptors := repositoryLocator.DiscoverMatching(command.Context(), arguments, defaultDiscoveryRootConstant)
	RenderLocalRepositories(command.OutOrStdout(), descriptors)
	return nil
}

func (builder *CommandBuilder) runGitHub(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()

	repoTypeValue, _ := command.Flags().GetString(repoTypeFlagNameConstant)
	ownerType := OwnerType(strings.ToLower(strings.TrimSpace(repoTypeValue)))
	if ownerType != OwnerTypeOrganization && ownerType != OwnerTypeUser {
		return fmt.Errorf(unsupportedOwnerTypeTemplateConstant, repoTypeValue)
	}
	includeArchived, _ := command.Flags().GetBool(archivedFlagNameConstant)

	repositoryNameLister := builder.RepositoryNameLister
	if repositoryNameLister == nil {
		githubClient, clientError := NewGitHubClient(configuration.Token)
		if clientError != nil {
			return clientError
		}
		repositoryNameLister = githubClient
	}

	repositoryNames, listingError := repositoryNameLister.ListRepositoryNames(command.Context(), RepositoryQuery{
		OwnerName:       arguments[0],
		OwnerType:       ownerType,
		IncludeArchived: includeArchived,
		PageSize:        configuration.PageSize,
	})
	if listingError != nil {
		return listingError
	}

	for _, repositoryName := range repositoryNames {
		fmt.Fprintf(command.OutOrStdout(), repositoryNameTemplateConstant, repositoryName)
	}
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
