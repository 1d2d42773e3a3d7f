package stale

import (
	"context"
	"time"

	"github.com/temirov/repofleet/internal/githubcli"
	"github.com/temirov/repofleet/internal/gitrepo"
)

// BranchLister captures the git operations required to enumerate stale
// remote branches.
type BranchLister interface {
	FetchRemote(executionContext context.Context, repositoryPath string, remoteName string) error
	ListReferences(executionContext context.Context, repositoryPath string, referencePrefix string) ([]gitrepo.RemoteReference, error)
}

// PullRequestLister captures the GitHub CLI operation required to enumerate
// open pull requests.
type PullRequestLister interface {
	ListOpenPullRequests(executionContext context.Context, repository string, resultLimit int) ([]githubcli.PullRequest, error)
}

// Clock supplies the current time so age calculations stay testable.
type Clock func() time.Time
