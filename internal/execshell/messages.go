package execshell

import (
	"fmt"
	"strings"
)

type lifecycleStage int

const (
	stageStarted lifecycleStage = iota
	stageSucceeded
	stageExited
	stageSpawnFailed
)

const (
	fallbackFailureTemplateConstant      = "%s failed with exit code %d%s"
	fallbackSpawnFailureTemplate         = "%s failed: %s"
	standardErrorSuffixTemplateConstant  = ": %s"
	unknownFailureMessageConstant        = "unknown error"
	defaultWorkingDirectoryLabelConstant = "current directory"
)

const (
	gitRevParseSubcommandNameConstant   = "rev-parse"
	gitShowToplevelFlagConstant         = "--show-toplevel"
	gitRemoteSubcommandNameConstant     = "remote"
	gitRemoteGetURLSubcommandConstant   = "get-url"
	gitShortlogSubcommandNameConstant   = "shortlog"
	gitForEachRefSubcommandNameConstant = "for-each-ref"
	gitFetchSubcommandNameConstant      = "fetch"
	gitCloneSubcommandNameConstant      = "clone"
	gitCheckoutSubcommandNameConstant   = "checkout"
	gitLSRemoteSubcommandNameConstant   = "ls-remote"
)

const (
	gitToplevelStartTemplateConstant        = "Locating repository root for %s"
	gitToplevelSuccessTemplateConstant      = "Repository root for %s is %s"
	gitToplevelFailureTemplateConstant      = "%s is not inside a Git repository (exit code %d%s)"
	gitRemoteLookupStartTemplateConstant    = "Checking %s remote for %s"
	gitRemoteLookupSuccessTemplateConstant  = "%s remote for %s points to %s"
	gitRemoteLookupFailureTemplateConstant  = "Failed to read %s remote for %s (exit code %d%s)"
	gitShortlogStartTemplateConstant        = "Summarizing commit authors in %s"
	gitShortlogSuccessTemplateConstant      = "Summarized commit authors in %s"
	gitShortlogFailureTemplateConstant      = "Failed to summarize commit authors in %s (exit code %d%s)"
	gitForEachRefStartTemplateConstant      = "Listing references in %s"
	gitForEachRefSuccessTemplateConstant    = "Listed references in %s"
	gitForEachRefFailureTemplateConstant    = "Failed to list references in %s (exit code %d%s)"
	gitFetchStartTemplateConstant           = "Fetching remote state in %s"
	gitFetchSuccessTemplateConstant         = "Fetched remote state in %s"
	gitFetchFailureTemplateConstant         = "Failed to fetch remote state in %s (exit code %d%s)"
	gitCloneStartTemplateConstant           = "Cloning %s"
	gitCloneSuccessTemplateConstant         = "Cloned %s"
	gitCloneFailureTemplateConstant         = "Failed to clone %s (exit code %d%s)"
	gitCheckoutStartTemplateConstant        = "Checking out %s in %s"
	gitCheckoutSuccessTemplateConstant      = "Checked out %s in %s"
	gitCheckoutFailureTemplateConstant      = "Failed to check out %s in %s (exit code %d%s)"
	gitLSRemoteStartTemplateConstant        = "Querying remote references for %s"
	gitLSRemoteSuccessTemplateConstant      = "Queried remote references for %s"
	gitLSRemoteFailureTemplateConstant      = "Failed to query remote references for %s (exit code %d%s)"
	githubPullRequestStartTemplateConstant  = "Listing pull requests for %s"
	githubPullRequestSuccessTemplate        = "Listed pull requests for %s"
	githubPullRequestFailureTemplate        = "Failed to list pull requests for %s (exit code %d%s)"
	githubPullRequestSubcommandNameConstant = "pr"
	githubRepoFlagConstant                  = "--repo"
	githubCurrentRepositoryLabelConstant    = "current repository"
)

// CommandMessageFormatter renders lifecycle events as sentences a person can
// read in the console, recognizing the git and gh invocations this tool issues.
type CommandMessageFormatter struct{}

// BuildStartedMessage describes a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, stageStarted)
}

// BuildSuccessMessage describes a command that exited zero.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, stageSucceeded)
}

// BuildFailureMessage describes a command that exited nonzero.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, stageExited)
}

// BuildExecutionFailureMessage describes a command whose process never ran cleanly.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, stageSpawnFailed)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage lifecycleStage) string {
	switch command.Name {
	case CommandGit:
		return formatter.describeGitMessage(command, result, failure, stage)
	case CommandGitHub:
		return formatter.describeGitHubMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitMessage(command ShellCommand, result ExecutionResult, failure error, stage lifecycleStage) string {
	arguments := command.Details.Arguments
	if len(arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	workingDirectory := formatter.describeWorkingDirectory(command)
	errorSuffix := formatter.formatStandardErrorSuffix(result.StandardError)

	switch strings.TrimSpace(arguments[0]) {
	case gitRevParseSubcommandNameConstant:
		if containsArgument(arguments, gitShowToplevelFlagConstant) {
			switch stage {
			case stageStarted:
				return fmt.Sprintf(gitToplevelStartTemplateConstant, workingDirectory)
			case stageSucceeded:
				return fmt.Sprintf(gitToplevelSuccessTemplateConstant, workingDirectory, strings.TrimSpace(result.StandardOutput))
			case stageExited:
				return fmt.Sprintf(gitToplevelFailureTemplateConstant, workingDirectory, result.ExitCode, errorSuffix)
			}
		}
	case gitRemoteSubcommandNameConstant:
		if len(arguments) > 2 && strings.TrimSpace(arguments[1]) == gitRemoteGetURLSubcommandConstant {
			remoteName := strings.TrimSpace(arguments[2])
			switch stage {
			case stageStarted:
				return fmt.Sprintf(gitRemoteLookupStartTemplateConstant, remoteName, workingDirectory)
			case stageSucceeded:
				return fmt.Sprintf(gitRemoteLookupSuccessTemplateConstant, remoteName, workingDirectory, strings.TrimSpace(result.StandardOutput))
			case stageExited:
				return fmt.Sprintf(gitRemoteLookupFailureTemplateConstant, remoteName, workingDirectory, result.ExitCode, errorSuffix)
			}
		}
	case gitShortlogSubcommandNameConstant:
		return formatter.describeRepositoryScopedMessage(stage, workingDirectory, result, failure, gitShortlogStartTemplateConstant, gitShortlogSuccessTemplateConstant, gitShortlogFailureTemplateConstant)
	case gitForEachRefSubcommandNameConstant:
		return formatter.describeRepositoryScopedMessage(stage, workingDirectory, result, failure, gitForEachRefStartTemplateConstant, gitForEachRefSuccessTemplateConstant, gitForEachRefFailureTemplateConstant)
	case gitFetchSubcommandNameConstant:
		return formatter.describeRepositoryScopedMessage(stage, workingDirectory, result, failure, gitFetchStartTemplateConstant, gitFetchSuccessTemplateConstant, gitFetchFailureTemplateConstant)
	case gitCloneSubcommandNameConstant:
		cloneTarget := formatter.argumentAfterFlags(arguments[1:])
		return formatter.describeRepositoryScopedMessage(stage, cloneTarget, result, failure, gitCloneStartTemplateConstant, gitCloneSuccessTemplateConstant, gitCloneFailureTemplateConstant)
	case gitCheckoutSubcommandNameConstant:
		if len(arguments) > 1 {
			revision := strings.TrimSpace(arguments[1])
			switch stage {
			case stageStarted:
				return fmt.Sprintf(gitCheckoutStartTemplateConstant, revision, workingDirectory)
			case stageSucceeded:
				return fmt.Sprintf(gitCheckoutSuccessTemplateConstant, revision, workingDirectory)
			case stageExited:
				return fmt.Sprintf(gitCheckoutFailureTemplateConstant, revision, workingDirectory, result.ExitCode, errorSuffix)
			}
		}
	case gitLSRemoteSubcommandNameConstant:
		remoteTarget := formatter.argumentAfterFlags(arguments[1:])
		return formatter.describeRepositoryScopedMessage(stage, remoteTarget, result, failure, gitLSRemoteStartTemplateConstant, gitLSRemoteSuccessTemplateConstant, gitLSRemoteFailureTemplateConstant)
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitHubMessage(command ShellCommand, result ExecutionResult, failure error, stage lifecycleStage) string {
	arguments := command.Details.Arguments
	if len(arguments) == 0 || strings.TrimSpace(arguments[0]) != githubPullRequestSubcommandNameConstant {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	repositoryLabel := githubCurrentRepositoryLabelConstant
	for argumentIndex := range arguments {
		if arguments[argumentIndex] == githubRepoFlagConstant && argumentIndex+1 < len(arguments) {
			repositoryLabel = strings.TrimSpace(arguments[argumentIndex+1])
		}
	}

	return formatter.describeRepositoryScopedMessage(stage, repositoryLabel, result, failure, githubPullRequestStartTemplateConstant, githubPullRequestSuccessTemplate, githubPullRequestFailureTemplate)
}

func (formatter CommandMessageFormatter) describeRepositoryScopedMessage(stage lifecycleStage, subject string, result ExecutionResult, failure error, startTemplate string, successTemplate string, failureTemplate string) string {
	switch stage {
	case stageStarted:
		return fmt.Sprintf(startTemplate, subject)
	case stageSucceeded:
		return fmt.Sprintf(successTemplate, subject)
	case stageExited:
		return fmt.Sprintf(failureTemplate, subject, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(fallbackSpawnFailureTemplate, subject, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage lifecycleStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case stageStarted:
		return "Running " + commandLabel
	case stageSucceeded:
		return "Completed " + commandLabel
	case stageExited:
		return fmt.Sprintf(fallbackFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(fallbackSpawnFailureTemplate, commandLabel, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel += " " + strings.Join(command.Details.Arguments, " ")
	}
	if trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory); len(trimmedWorkingDirectory) > 0 {
		commandLabel += " (in " + trimmedWorkingDirectory + ")"
	}
	return commandLabel
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return ""
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) argumentAfterFlags(arguments []string) string {
	for _, argument := range arguments {
		trimmedArgument := strings.TrimSpace(argument)
		if len(trimmedArgument) == 0 || strings.HasPrefix(trimmedArgument, "-") {
			continue
		}
		return trimmedArgument
	}
	return defaultWorkingDirectoryLabelConstant
}

func containsArgument(arguments []string, wanted string) bool {
	for _, argument := range arguments {
		if strings.TrimSpace(argument) == wanted {
			return true
		}
	}
	return false
}
