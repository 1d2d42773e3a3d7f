package stale

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/repofleet/internal/dependencies"
	"github.com/temirov/repofleet/internal/discovery"
	"github.com/temirov/repofleet/internal/execshell"
	"github.com/temirov/repofleet/internal/githubcli"
	"github.com/temirov/repofleet/internal/parallel"
	"github.com/temirov/repofleet/internal/utils"
)

const (
	groupCommandUseConstant              = "stale"
	groupCommandShortDescriptionConstant = "Report stale branches and pull requests across repositories"
	branchesCommandUseConstant           = "branches <days> [path|identifier...]"
	branchesCommandShortDescription      = "List remote branches older than the given number of days"
	prsCommandUseConstant                = "prs <days> [path|identifier...]"
	prsCommandShortDescriptionConstant   = "List open pull requests older than the given number of days"
	detailedFlagNameConstant             = "detailed"
	detailedFlagShorthandConstant        = "d"
	detailedFlagDescriptionConstant      = "Show detailed output (full YAML-style listing)"
	referenceFlagNameConstant            = "ref"
	referenceFlagDescriptionConstant     = "Reference prefix to scan for remote branches"
	defaultDiscoveryRootConstant         = "."
	invalidThresholdTemplateConstant     = "stale threshold must be a whole number of days: %q"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the stale command configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the stale command group with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	GitExecutor           dependencies.GitExecutor
	RepositoryManager     dependencies.RepositoryManager
	RepositoryLocator     dependencies.RepositoryLocator
	PullRequestLister     PullRequestLister
	Clock                 Clock
	CommandEventsObserver execshell.CommandEventObserver
}

// Build constructs the stale command group with the branches and prs subcommands.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	groupCommand := &cobra.Command{
		Use:   groupCommandUseConstant,
		Short: groupCommandShortDescriptionConstant,
	}

	branchesCommand := &cobra.Command{
		Use:   branchesCommandUseConstant,
		Short: branchesCommandShortDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE:  builder.runBranches,
	}
	branchesCommand.Flags().BoolP(detailedFlagNameConstant, detailedFlagShorthandConstant, false, detailedFlagDescriptionConstant)
	branchesCommand.Flags().String(referenceFlagNameConstant, "", referenceFlagDescriptionConstant)

	prsCommand := &cobra.Command{
		Use:   prsCommandUseConstant,
		Short: prsCommandShortDescriptionConstant,
		Args:  cobra.MinimumNArgs(1),
		RunE:  builder.runPullRequests,
	}
	prsCommand.Flags().BoolP(detailedFlagNameConstant, detailedFlagShorthandConstant, false, detailedFlagDescriptionConstant)

	groupCommand.AddCommand(branchesCommand, prsCommand)
	return groupCommand, nil
}

func (builder *CommandBuilder) runBranches(command *cobra.Command, arguments []string) error {
	thresholdDays, thresholdError := parseThresholdDays(arguments[0])
	if thresholdError != nil {
		return thresholdError
	}
	detailedOutput, _ := command.Flags().GetBool(detailedFlagNameConstant)

	logger := builder.resolveLogger()
	configuration := builder.resolveConfiguration()

	referencePrefix, _ := command.Flags().GetString(referenceFlagNameConstant)
	if len(strings.TrimSpace(referencePrefix)) == 0 {
		referencePrefix = configuration.Reference
	}

	repositoryManager, repositoryLocator, resolutionError := builder.resolveRepositoryDependencies(logger)
	if resolutionError != nil {
		return resolutionError
	}

	branchCollector, collectorError := NewBranchCollector(repositoryManager, builder.Clock)
	if collectorError != nil {
		return collectorError
	}

	descriptors := repositoryLocator.DiscoverMatching(command.Context(), arguments[1:], defaultDiscoveryRootConstant)

	workExecutor := parallel.NewExecutor(logger, configuration.Concurrency)
	findings := parallel.Execute(command.Context(), workExecutor, descriptors,
		func(executionContext context.Context, descriptor discovery.RepositoryDescriptor) parallel.Outcome[RepositoryFindings] {
			staleEntries, collectionError := branchCollector.CollectStaleBranches(executionContext, descriptor.Path, thresholdDays, referencePrefix)
			if collectionError != nil {
				return parallel.Failure[RepositoryFindings](collectionError)
			}
			if len(staleEntries) == 0 {
				return parallel.Skip[RepositoryFindings]()
			}
			return parallel.Success(RepositoryFindings{Slug: descriptor.Slug, Entries: staleEntries})
		})

	SortFindings(findings)

	renderer := NewRenderer(utils.NewFlushingWriter(command.OutOrStdout()))
	if detailedOutput {
		return renderer.RenderBranchDetail(findings)
	}
	renderer.RenderSummary(findings)
	return nil
}

func (builder *CommandBuilder) runPullRequests(command *cobra.Command, arguments []string) error {
	thresholdDays, thresholdError := parseThresholdDays(arguments[0])
	if thresholdError != nil {
		return thresholdError
	}
	detailedOutput, _ := command.Flags().GetBool(detailedFlagNameConstant)

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
	repositoryLocator, locatorError := dependencies.ResolveRepositoryLocator(builder.RepositoryLocator, repositoryManager, logger)
	if locatorError != nil {
		return locatorError
	}

	pullRequestLister := builder.PullRequestLister
	if pullRequestLister == nil {
		githubClient, clientError := githubcli.NewClient(gitExecutor)
		if clientError != nil {
			return clientError
		}
		pullRequestLister = githubClient
	}

	pullRequestCollector, collectorError := NewPullRequestCollector(pullRequestLister, builder.Clock, configuration.PullRequestLimit)
	if collectorError != nil {
		return collectorError
	}

	descriptors := repositoryLocator.DiscoverMatching(command.Context(), arguments[1:], defaultDiscoveryRootConstant)

	workExecutor := parallel.NewExecutor(logger, configuration.Concurrency)
	findings := parallel.Execute(command.Context(), workExecutor, descriptors,
		func(executionContext context.Context, descriptor discovery.RepositoryDescriptor) parallel.Outcome[RepositoryFindings] {
			staleEntries, collectionError := pullRequestCollector.CollectStalePullRequests(executionContext, descriptor.Slug, thresholdDays)
			if collectionError != nil {
				return parallel.Failure[RepositoryFindings](collectionError)
			}
			if len(staleEntries) == 0 {
				return parallel.Skip[RepositoryFindings]()
			}
			return parallel.Success(RepositoryFindings{Slug: descriptor.Slug, Entries: staleEntries})
		})

	SortFindings(findings)

	renderer := NewRenderer(utils.NewFlushingWriter(command.OutOrStdout()))
	if detailedOutput {
		return renderer.RenderPullRequestDetail(findings)
	}
	renderer.RenderSummary(findings)
	return nil
}

func (builder *CommandBuilder) resolveRepositoryDependencies(logger *zap.Logger) (dependencies.RepositoryManager, dependencies.RepositoryLocator, error) {
	gitExecutor, executorError := dependencies.ResolveGitExecutor(builder.GitExecutor, logger, builder.CommandEventsObserver)
	if executorError != nil {
		return nil, nil, executorError
	}
	repositoryManager, managerError := dependencies.ResolveRepositoryManager(builder.RepositoryManager, gitExecutor)
	if managerError != nil {
		return nil, nil, managerError
	}
	repositoryLocator, locatorError := dependencies.ResolveRepositoryLocator(builder.RepositoryLocator, repositoryManager, logger)
	if locatorError != nil {
		return nil, nil, locatorError
	}
	return repositoryManager, repositoryLocator, nil
}

func parseThresholdDays(rawValue string) (int, error) {
	thresholdDays, parsingError := strconv.Atoi(strings.TrimSpace(rawValue))
	if parsingError != nil || thresholdDays < 0 {
		return 0, fmt.Errorf(invalidThresholdTemplateConstant, rawValue)
	}
	return thresholdDays, nil
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
