package execshell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
)

// OSCommandRunner is the os/exec-backed CommandRunner used outside of tests.
type OSCommandRunner struct{}

// NewOSCommandRunner constructs a runner backed by os/exec.
func NewOSCommandRunner() *OSCommandRunner {
	return &OSCommandRunner{}
}

// Run spawns the command and captures its output streams. A nonzero exit is
// reported through ExecutionResult.ExitCode rather than an error; only spawn
// failures (missing binary, canceled context) surface as errors.
func (runner *OSCommandRunner) Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	outputBuffer := &bytes.Buffer{}
	errorBuffer := &bytes.Buffer{}

	processHandle := exec.CommandContext(executionContext, string(command.Name), command.Details.Arguments...)
	processHandle.Dir = command.Details.WorkingDirectory
	processHandle.Env = environmentForCommand(command.Details.EnvironmentVariables)
	processHandle.Stdout = outputBuffer
	processHandle.Stderr = errorBuffer
	if len(command.Details.StandardInput) > 0 {
		processHandle.Stdin = bytes.NewReader(command.Details.StandardInput)
	}

	runError := processHandle.Run()
	if runError != nil {
		exitError := &exec.ExitError{}
		if !errors.As(runError, &exitError) {
			return ExecutionResult{}, runError
		}
		return ExecutionResult{
			StandardOutput: outputBuffer.String(),
			StandardError:  errorBuffer.String(),
			ExitCode:       exitError.ExitCode(),
		}, nil
	}

	return ExecutionResult{
		StandardOutput: outputBuffer.String(),
		StandardError:  errorBuffer.String(),
	}, nil
}

func environmentForCommand(overrides map[string]string) []string {
	if len(overrides) == 0 {
		return nil
	}
	environment := os.Environ()
	for overrideKey, overrideValue := range overrides {
		environment = append(environment, overrideKey+"="+overrideValue)
	}
	return environment
}
