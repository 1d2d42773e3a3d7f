package execshell

// CommandEventObserver is notified at each stage of a shell command's lifecycle.
// Observers power the console echo of git and gh invocations.
type CommandEventObserver interface {
	// CommandStarted fires immediately before the command process is spawned.
	CommandStarted(command ShellCommand)
	// CommandCompleted fires once the command produced an ExecutionResult,
	// whether its exit code was zero or not.
	CommandCompleted(command ShellCommand, result ExecutionResult)
	// CommandExecutionFailed fires when the command could not run at all.
	CommandExecutionFailed(command ShellCommand, failure error)
}

type noopCommandEventObserver struct{}

func (noopCommandEventObserver) CommandStarted(ShellCommand) {}

func (noopCommandEventObserver) CommandCompleted(ShellCommand, ExecutionResult) {}

func (noopCommandEventObserver) CommandExecutionFailed(ShellCommand, error) {}
