package ownership

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/repofleet/internal/dependencies"
	"github.com/temirov/repofleet/internal/discovery"
	"github.com/temirov/repofleet/internal/execshell"
	"github.com/temirov/repofleet/internal/parallel"
	"github.com/temirov/repofleet/internal/utils"
	flagutils "github.com/temirov/repofleet/internal/utils/flags"
)

const (
	commandUseConstant              = "owners [path|identifier...]"
	commandNameConstant             = "owners"
	commandShortDescriptionConstant = "List CODEOWNERS and detect un-owned code paths"
	commandLongDescriptionConstant  = "Analyzes CODEOWNERS coverage for every discovered repository and reports owned, partial, and unowned statuses."
	onlyFlagNameConstant            = "only"
	onlyFlagShorthandConstant       = "o"
	onlyFlagDescriptionConstant     = "Only show repositories with these statuses (repeatable)"
	detailedFlagNameConstant        = "detailed"
	detailedFlagShorthandConstant   = "d"
	detailedFlagDescriptionConstant = "Show detailed output (full YAML-style listing)"
	defaultDiscoveryRootConstant    = "."
	invalidStatusFilterTemplate     = "unsupported status filter %q"
	unownedRepositoriesMessage      = "one or more repositories are not fully owned"
)

// ErrUnownedRepositoriesFound signals the business outcome that at least one
// analyzed repository is not fully owned; it drives the non-zero process exit.
var ErrUnownedRepositoriesFound = errors.New(unownedRepositoriesMessage)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the owners command configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the owners cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	GitExecutor           dependencies.GitExecutor
	RepositoryManager     dependencies.RepositoryManager
	RepositoryLocator     dependencies.RepositoryLocator
	FileSystem            FileSystem
	CommandEventsObserver execshell.CommandEventObserver
}

// Build constructs the cobra command for CODEOWNERS coverage analysis.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	onlyUsage := flagutils.FormatChoiceUsage("", []string{string(StatusOwned), string(StatusUnowned), string(StatusPartial)}, onlyFlagDescriptionConstant)
	command.Flags().StringSliceP(onlyFlagNameConstant, onlyFlagShorthandConstant, nil, onlyUsage)
	command.Flags().BoolP(detailedFlagNameConstant, detailedFlagShorthandConstant, false, detailedFlagDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	statusFilter, filterError := builder.parseStatusFilter(command)
	if filterError != nil {
		return filterError
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

	fileSystem := builder.FileSystem
	if fileSystem == nil {
		fileSystem = OSFileSystem{}
	}

	ownershipParser, parserError := NewOwnershipParser(fileSystem)
	if parserError != nil {
		return parserError
	}

	analysisService, serviceError := NewService(ownershipParser, NewCoverageEngine(), repositoryManager, ServiceOptions{
		ExcludedAuthors: configuration.ExcludedAuthors,
		AuthorLimit:     configuration.AuthorLimit,
	}, logger)
	if serviceError != nil {
		return serviceError
	}

	descriptors := repositoryLocator.DiscoverMatching(command.Context(), arguments, defaultDiscoveryRootConstant)

	workExecutor := parallel.NewExecutor(logger, configuration.Concurrency)
	reports := parallel.Execute(command.Context(), workExecutor, descriptors,
		func(executionContext context.Context, descriptor discovery.RepositoryDescriptor) parallel.Outcome[RepositoryReport] {
			report, analysisError := analysisService.AnalyzeRepository(executionContext, descriptor)
			if analysisError != nil {
				return parallel.Failure[RepositoryReport](analysisError)
			}
			if statusFilter != nil {
				if _, wanted := statusFilter[report.Status]; !wanted {
					return parallel.Skip[RepositoryReport]()
				}
			}
			return parallel.Success(report)
		})

	SortReports(reports)

	renderer := NewRenderer(utils.NewFlushingWriter(command.OutOrStdout()))
	if detailedOutput {
		renderer.RenderDetailed(reports)
	} else {
		renderer.RenderSummary(reports)
	}

	for _, report := range reports {
		if report.Status != StatusOwned {
			return ErrUnownedRepositoriesFound
		}
	}
	return nil
}

func (builder *CommandBuilder) parseStatusFilter(command *cobra.Command) (map[CoverageStatus]struct{}, error) {
	onlyValues, _ := command.Flags().GetStringSlice(onlyFlagNameConstant)
	if len(onlyValues) == 0 {
		return nil, nil
	}

	statusFilter := make(map[CoverageStatus]struct{}, len(onlyValues))
	for _, onlyValue := range onlyValues {
		normalizedValue := CoverageStatus(strings.ToLower(strings.TrimSpace(onlyValue)))
		switch normalizedValue {
		case StatusOwned, StatusPartial, StatusUnowned:
			statusFilter[normalizedValue] = struct{}{}
		default:
			return nil, fmt.Errorf(invalidStatusFilterTemplate, onlyValue)
		}
	}
	return statusFilter, nil
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
