package discovery

import (
	"context"
	"io/fs"
)

// RepositoryResolver resolves repository roots and remote URLs for discovered candidates.
type RepositoryResolver interface {
	ResolveRepositoryRoot(executionContext context.Context, candidatePath string) (string, error)
	GetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error)
}

// FileSystem exposes the filesystem operations repository discovery requires.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	ReadDir(path string) ([]fs.DirEntry, error)
	Abs(path string) (string, error)
}
