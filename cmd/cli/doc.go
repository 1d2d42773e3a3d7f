// Package cli assembles the repofleet command tree: it loads layered
// configuration, configures zap logging, and registers every subcommand
// builder. Execute runs the assembled root command.
package cli
