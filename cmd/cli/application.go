package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/repofleet/internal/catalog"
	"github.com/temirov/repofleet/internal/clone"
	"github.com/temirov/repofleet/internal/execshell"
	"github.com/temirov/repofleet/internal/ownership"
	"github.com/temirov/repofleet/internal/reposlug"
	"github.com/temirov/repofleet/internal/stale"
	"github.com/temirov/repofleet/internal/ui"
	"github.com/temirov/repofleet/internal/utils"
)

const (
	applicationNameConstant             = "repofleet"
	applicationShortDescriptionConstant = "Command-line interface for repository fleet maintenance"
	applicationLongDescriptionConstant  = "repofleet analyzes CODEOWNERS coverage, reports stale branches and pull requests, lists repositories, and clones them across a fleet of Git working copies."

	configFileFlagNameConstant = "config"
	logLevelFlagNameConstant   = "log-level"
	logFormatFlagNameConstant  = "log-format"

	environmentPrefixConstant              = "REPOFLEET"
	configurationNameConstant              = "config"
	configurationTypeConstant              = "yaml"
	defaultConfigurationSearchPathConstant = "."

	commonLogLevelConfigKeyConstant  = "common.log_level"
	commonLogFormatConfigKeyConstant = "common.log_format"
	ownersConfigurationKeyConstant   = "tools.owners"
	staleConfigurationKeyConstant    = "tools.stale"
	githubConfigurationKeyConstant   = "tools.github"
	cloneConfigurationKeyConstant    = "tools.clone"
)

// applicationVersion may be overridden at build time through -ldflags.
var applicationVersion = "dev"

// ApplicationConfiguration is the full persisted configuration for the CLI.
type ApplicationConfiguration struct {
	Common ApplicationCommonConfiguration `mapstructure:"common"`
	Tools  ApplicationToolsConfiguration  `mapstructure:"tools"`
}

// ApplicationCommonConfiguration stores logging settings shared by every command.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// ApplicationToolsConfiguration groups per-subcommand configuration sections.
type ApplicationToolsConfiguration struct {
	Owners ownership.CommandConfiguration `mapstructure:"owners"`
	Stale  stale.CommandConfiguration     `mapstructure:"stale"`
	GitHub catalog.CommandConfiguration   `mapstructure:"github"`
	Clone  clone.CommandConfiguration     `mapstructure:"clone"`
}

// Application owns the cobra root command plus the configuration and logging
// state every subcommand reads through provider closures.
type Application struct {
	rootCommand            *cobra.Command
	configurationLoader    *utils.ConfigurationLoader
	loggerFactory          *utils.LoggerFactory
	logger                 *zap.Logger
	configuration          ApplicationConfiguration
	loadedConfiguration    utils.LoadedConfiguration
	configurationFilePath  string
	logLevelFlagValue      string
	logFormatFlagValue     string
	commandContextAccessor utils.CommandContextAccessor
}

// NewApplication assembles the root command with every subcommand registered.
// Configuration and the logger are resolved later, in PersistentPreRunE, so
// the builders receive provider closures instead of values.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		[]string{defaultConfigurationSearchPathConstant},
	)
	configurationLoader.SetEmbeddedConfiguration(EmbeddedDefaultConfiguration())

	application := &Application{
		configurationLoader:    configurationLoader,
		loggerFactory:          utils.NewLoggerFactory(),
		logger:                 zap.NewNop(),
		commandContextAccessor: utils.NewCommandContextAccessor(),
	}

	rootCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		Version:       applicationVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runRootCommand(command, arguments)
		},
	}
	rootCommand.SetContext(context.Background())
	rootCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", "Optional path to a configuration file (YAML or JSON).")
	rootCommand.PersistentFlags().StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", "Override the configured log level.")
	rootCommand.PersistentFlags().StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", "Override the configured log format (structured or console).")

	loggerProvider := func() *zap.Logger { return application.logger }
	commandEventsObserver := &commandEventRelay{application: application}
	registerSubcommand := func(subcommand *cobra.Command, buildError error) {
		if buildError == nil {
			rootCommand.AddCommand(subcommand)
		}
	}

	registerSubcommand((&ownership.CommandBuilder{
		LoggerProvider: loggerProvider,
		ConfigurationProvider: func() ownership.CommandConfiguration {
			return application.configuration.Tools.Owners
		},
		CommandEventsObserver: commandEventsObserver,
	}).Build())

	registerSubcommand((&stale.CommandBuilder{
		LoggerProvider: loggerProvider,
		ConfigurationProvider: func() stale.CommandConfiguration {
			return application.configuration.Tools.Stale
		},
		CommandEventsObserver: commandEventsObserver,
	}).Build())

	registerSubcommand((&catalog.CommandBuilder{
		LoggerProvider: loggerProvider,
		ConfigurationProvider: func() catalog.CommandConfiguration {
			return application.configuration.Tools.GitHub
		},
		CommandEventsObserver: commandEventsObserver,
	}).Build())

	registerSubcommand((&clone.CommandBuilder{
		LoggerProvider: loggerProvider,
		ConfigurationProvider: func() clone.CommandConfiguration {
			return application.configuration.Tools.Clone
		},
		CommandEventsObserver: commandEventsObserver,
	}).Build())

	registerSubcommand((&reposlug.CommandBuilder{}).Build())

	application.rootCommand = rootCommand
	return application
}

// Execute runs the command hierarchy and flushes the logger afterwards.
func (application *Application) Execute() error {
	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil {
		return fmt.Errorf("unable to flush logger: %w", syncError)
	}
	return executionError
}

// Execute builds a fresh application and runs it.
func Execute() error {
	return NewApplication().Execute()
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelInfo),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatStructured),
	}
	subcommandDefaults := []map[string]any{
		ownership.DefaultConfigurationValues(ownersConfigurationKeyConstant),
		stale.DefaultConfigurationValues(staleConfigurationKeyConstant),
		catalog.DefaultConfigurationValues(githubConfigurationKeyConstant),
		clone.DefaultConfigurationValues(cloneConfigurationKeyConstant),
	}
	for _, sectionDefaults := range subcommandDefaults {
		for configurationKey, configurationValue := range sectionDefaults {
			defaultValues[configurationKey] = configurationValue
		}
	}

	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf("unable to load configuration: %w", loadError)
	}
	application.loadedConfiguration = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}
	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	configuredLogger, loggerCreationError := application.loggerFactory.CreateLogger(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
	)
	if loggerCreationError != nil {
		return fmt.Errorf("unable to create logger: %w", loggerCreationError)
	}
	application.logger = configuredLogger

	application.logger.Debug("configuration initialized",
		zap.String("log_level", application.configuration.Common.LogLevel),
		zap.String("log_format", application.configuration.Common.LogFormat),
		zap.String("config_file", application.loadedConfiguration.ConfigFileUsed),
	)

	application.recordConfigurationFileOnContext(command)

	return nil
}

func (application *Application) recordConfigurationFileOnContext(command *cobra.Command) {
	if command == nil {
		return
	}
	updatedContext := application.commandContextAccessor.WithConfigurationFilePath(command.Context(), application.loadedConfiguration.ConfigFileUsed)
	command.SetContext(updatedContext)
	if rootCommand := command.Root(); rootCommand != nil {
		rootCommand.SetContext(updatedContext)
	}
}

func (application *Application) humanReadableLoggingEnabled() bool {
	return strings.EqualFold(strings.TrimSpace(application.configuration.Common.LogFormat), string(utils.LogFormatConsole))
}

func (application *Application) runRootCommand(command *cobra.Command, arguments []string) error {
	if application.logger == nil {
		return errors.New("logger not initialized")
	}

	application.logger.Debug("root command invoked",
		zap.String("command_name", command.Name()),
		zap.Strings("arguments", arguments),
	)

	if len(arguments) == 0 {
		return command.Help()
	}
	return nil
}

// flushLogger syncs the logger, tolerating the sync errors terminals report.
func (application *Application) flushLogger() error {
	if application.logger == nil {
		return nil
	}
	syncError := application.logger.Sync()
	if syncError == nil || errors.Is(syncError, syscall.ENOTSUP) || errors.Is(syncError, syscall.EINVAL) {
		return nil
	}
	return syncError
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSets := []*pflag.FlagSet{command.PersistentFlags(), command.InheritedFlags()}
	if rootCommand := command.Root(); rootCommand != nil {
		flagSets = append(flagSets, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSets {
		if flagSet != nil && flagSet.Changed(flagName) {
			return true
		}
	}
	return false
}

// commandEventRelay forwards shell command events to a console logger, but
// only when human-readable logging is active at execution time. The logger is
// not configured until PersistentPreRunE, so the check must be deferred.
type commandEventRelay struct {
	application *Application
}

func (relay *commandEventRelay) consoleObserver() execshell.CommandEventObserver {
	if !relay.application.humanReadableLoggingEnabled() {
		return nil
	}
	return ui.NewConsoleCommandEventLogger(relay.application.logger)
}

func (relay *commandEventRelay) CommandStarted(command execshell.ShellCommand) {
	if observer := relay.consoleObserver(); observer != nil {
		observer.CommandStarted(command)
	}
}

func (relay *commandEventRelay) CommandCompleted(command execshell.ShellCommand, result execshell.ExecutionResult) {
	if observer := relay.consoleObserver(); observer != nil {
		observer.CommandCompleted(command, result)
	}
}

func (relay *commandEventRelay) CommandExecutionFailed(command execshell.ShellCommand, failure error) {
	if observer := relay.consoleObserver(); observer != nil {
		observer.CommandExecutionFailed(command, failure)
	}
}
