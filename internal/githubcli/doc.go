// Package githubcli shells out to gh for the operations repofleet cannot do
// with plain git, currently pull request listing. Commands run through
// execshell so tests can substitute a recording executor.
package githubcli
