package ui

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/repofleet/internal/execshell"
)

// CommandEventFormatter renders one-line descriptions of shell command
// lifecycle events for console output.
type CommandEventFormatter struct{}

// BuildStartedMessage describes a command about to run.
func (formatter CommandEventFormatter) BuildStartedMessage(command execshell.ShellCommand) string {
	return "Running " + describeCommand(command)
}

// BuildSuccessMessage describes a command that exited with code zero.
func (formatter CommandEventFormatter) BuildSuccessMessage(command execshell.ShellCommand) string {
	return "Completed " + describeCommand(command)
}

// BuildFailureMessage describes a non-zero exit, appending trimmed standard
// error output when the command produced any.
func (formatter CommandEventFormatter) BuildFailureMessage(command execshell.ShellCommand, result execshell.ExecutionResult) string {
	failureMessage := fmt.Sprintf("%s failed with exit code %d", describeCommand(command), result.ExitCode)
	if trimmedStandardError := strings.TrimSpace(result.StandardError); len(trimmedStandardError) > 0 {
		failureMessage += ": " + trimmedStandardError
	}
	return failureMessage
}

// BuildExecutionFailureMessage describes a command that could not run at all.
func (formatter CommandEventFormatter) BuildExecutionFailureMessage(command execshell.ShellCommand, failure error) string {
	failureText := "unknown error"
	if failure != nil {
		failureText = failure.Error()
	}
	return fmt.Sprintf("%s failed: %s", describeCommand(command), failureText)
}

// describeCommand renders "name arg arg (in dir)" with the directory suffix
// omitted when no working directory was set.
func describeCommand(command execshell.ShellCommand) string {
	descriptionParts := append([]string{string(command.Name)}, command.Details.Arguments...)
	description := strings.Join(descriptionParts, " ")
	if workingDirectory := strings.TrimSpace(command.Details.WorkingDirectory); len(workingDirectory) > 0 {
		description += fmt.Sprintf(" (in %s)", workingDirectory)
	}
	return description
}

// ConsoleCommandEventLogger echoes command lifecycle events through a zap
// logger configured for console output. It implements
// execshell.CommandEventObserver.
type ConsoleCommandEventLogger struct {
	logger    *zap.Logger
	formatter CommandEventFormatter
}

// NewConsoleCommandEventLogger constructs a ConsoleCommandEventLogger. A nil
// logger silently discards events.
func NewConsoleCommandEventLogger(logger *zap.Logger) *ConsoleCommandEventLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsoleCommandEventLogger{logger: logger}
}

// CommandStarted logs the start of a command at info level.
func (eventLogger *ConsoleCommandEventLogger) CommandStarted(command execshell.ShellCommand) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Info(eventLogger.formatter.BuildStartedMessage(command))
}

// CommandCompleted logs success at info level and non-zero exits at warn level.
func (eventLogger *ConsoleCommandEventLogger) CommandCompleted(command execshell.ShellCommand, result execshell.ExecutionResult) {
	if eventLogger == nil {
		return
	}
	if result.ExitCode != 0 {
		eventLogger.logger.Warn(eventLogger.formatter.BuildFailureMessage(command, result))
		return
	}
	eventLogger.logger.Info(eventLogger.formatter.BuildSuccessMessage(command))
}

// CommandExecutionFailed logs spawn failures at error level.
func (eventLogger *ConsoleCommandEventLogger) CommandExecutionFailed(command execshell.ShellCommand, failure error) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Error(eventLogger.formatter.BuildExecutionFailureMessage(command, failure))
}
