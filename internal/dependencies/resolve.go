// Package dependencies provides fallback resolution for the collaborators the
// command builders accept. Each resolver returns the injected implementation
// when present and otherwise constructs the production default.
package dependencies

import (
	"context"

	"go.uber.org/zap"

	"github.com/temirov/repofleet/internal/discovery"
	"github.com/temirov/repofleet/internal/execshell"
	"github.com/temirov/repofleet/internal/gitrepo"
)

// GitExecutor exposes the subset of shell execution the commands use.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
	ExecuteGitHubCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryManager exposes repository-level git operations.
type RepositoryManager interface {
	ResolveRepositoryRoot(executionContext context.Context, candidatePath string) (string, error)
	GetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error)
	TopCommitAuthors(executionContext context.Context, repositoryPath string, limit int) ([]gitrepo.AuthorActivity, error)
	FetchRemote(executionContext context.Context, repositoryPath string, remoteName string) error
	ListReferences(executionContext context.Context, repositoryPath string, referencePrefix string) ([]gitrepo.RemoteReference, error)
	ResolveRemoteHead(executionContext context.Context, remoteURL string) (string, error)
	CloneRepository(executionContext context.Context, options gitrepo.CloneOptions) error
	CheckoutRevision(executionContext context.Context, repositoryPath string, revision string) error
}

// RepositoryLocator discovers repositories from mixed path and identifier arguments.
type RepositoryLocator interface {
	Discover(executionContext context.Context, candidatePaths []string) []discovery.RepositoryDescriptor
	DiscoverMatching(executionContext context.Context, arguments []string, defaultRoot string) []discovery.RepositoryDescriptor
}

// ResolveGitExecutor returns the provided executor or constructs a shell-backed default.
func ResolveGitExecutor(existing GitExecutor, logger *zap.Logger, observer execshell.CommandEventObserver) (GitExecutor, error) {
	if existing != nil {
		return existing, nil
	}

	commandRunner := execshell.NewOSCommandRunner()
	shellExecutor, creationError := execshell.NewShellExecutor(logger, commandRunner, observer)
	if creationError != nil {
		return nil, creationError
	}
	return shellExecutor, nil
}

// ResolveRepositoryManager returns the provided manager or constructs one from the executor.
func ResolveRepositoryManager(existing RepositoryManager, executor GitExecutor) (RepositoryManager, error) {
	if existing != nil {
		return existing, nil
	}
	return gitrepo.NewRepositoryManager(executor)
}

// ResolveRepositoryLocator returns the provided locator or constructs a filesystem-backed default.
func ResolveRepositoryLocator(existing RepositoryLocator, manager RepositoryManager, logger *zap.Logger) (RepositoryLocator, error) {
	if existing != nil {
		return existing, nil
	}
	return discovery.NewRepoLocator(manager, discovery.OSFileSystem{}, logger)
}
