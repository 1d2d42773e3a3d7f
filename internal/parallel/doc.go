// Package parallel fans repository work out across a bounded goroutine pool.
//
// Every unit of work yields a tri-state Outcome (success, intentional skip,
// or failure). Failures are logged with the repository slug and absorbed at
// the task boundary so one repository can never abort its siblings.
package parallel
