// Package utils collects the cross-command plumbing for the repofleet CLI:
// configuration loading backed by Viper, zap logger construction, and small
// writer and context helpers shared by every subcommand.
package utils
