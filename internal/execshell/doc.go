// Package execshell runs git and gh as child processes behind a typed API.
// ShellExecutor validates commands, logs their lifecycle, and reports results
// as structured errors; OSCommandRunner is the os/exec-backed default runner.
package execshell
