package ownership

import (
	"context"
	"io/fs"

	"github.com/temirov/repofleet/internal/gitrepo"
)

// FileSystem exposes the filesystem operations CODEOWNERS analysis requires.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	ReadFile(path string) ([]byte, error)
}

// AuthorResolver summarizes commit activity for unowned-repository reporting.
type AuthorResolver interface {
	TopCommitAuthors(executionContext context.Context, repositoryPath string, limit int) ([]gitrepo.AuthorActivity, error)
}
