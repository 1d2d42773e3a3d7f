// Package ui renders human-readable console feedback for shell commands run
// on the user's behalf. Structured telemetry stays on the zap logger; this
// package only concerns itself with the messages people read.
package ui
