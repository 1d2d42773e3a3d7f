// Package gitrepo interrogates Git repositories. RepositoryManager shells out
// through execshell for fetch, clone, and reference listing; the go-git backed
// LocalRepositoryReader resolves slugs without spawning processes; and
// RemoteURL parses the remote forms GitHub emits.
package gitrepo
