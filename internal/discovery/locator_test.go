package discovery_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/repofleet/internal/discovery"
)

const (
	testFirstRepositorySlug  = "acme/widgets"
	testSecondRepositorySlug = "acme/gadgets"
	testDirectoryPermissions = 0o755
)

type stubRepositoryResolver struct {
	remoteURLsByPath map[string]string
	failingPaths     map[string]error
	resolveCallCount int
}

func (resolver *stubRepositoryResolver) ResolveRepositoryRoot(executionContext context.Context, candidatePath string) (string, error) {
	resolver.resolveCallCount++
	if failure, found := resolver.failingPaths[candidatePath]; found {
		return "", failure
	}
	return candidatePath, nil
}

func (resolver *stubRepositoryResolver) GetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error) {
	remoteURL, found := resolver.remoteURLsByPath[repositoryPath]
	if !found {
		return "", errors.New("no remote configured")
	}
	return remoteURL, nil
}

func createRepositoryDirectory(testInstance *testing.T, parentDirectory string, repositoryName string) string {
	repositoryPath := filepath.Join(parentDirectory, repositoryName)
	require.NoError(testInstance, os.MkdirAll(filepath.Join(repositoryPath, ".git"), testDirectoryPermissions))
	return repositoryPath
}

func TestDiscoverFindsRepositoriesAcrossTwoLevels(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()
	flatRepository := createRepositoryDirectory(testInstance, rootDirectory, "widgets")
	organizationDirectory := filepath.Join(rootDirectory, "acme")
	require.NoError(testInstance, os.MkdirAll(organizationDirectory, testDirectoryPermissions))
	nestedRepository := createRepositoryDirectory(testInstance, organizationDirectory, "gadgets")
	require.NoError(testInstance, os.MkdirAll(filepath.Join(rootDirectory, "notes"), testDirectoryPermissions))

	resolver := &stubRepositoryResolver{remoteURLsByPath: map[string]string{
		flatRepository:   "git@github.com:acme/widgets.git",
		nestedRepository: "https://github.com/acme/gadgets.git",
	}}

	locator, creationError := discovery.NewRepoLocator(resolver, discovery.OSFileSystem{}, zap.NewNop())
	require.NoError(testInstance, creationError)

	descriptors := locator.Discover(context.Background(), []string{rootDirectory})

	slugs := make([]string, 0, len(descriptors))
	for _, descriptor := range descriptors {
		slugs = append(slugs, descriptor.Slug)
	}
	require.ElementsMatch(testInstance, []string{testFirstRepositorySlug, testSecondRepositorySlug}, slugs)
}

func TestDiscoverTreatsRepositoryPathItselfAsRoot(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()
	repositoryPath := createRepositoryDirectory(testInstance, rootDirectory, "widgets")

	resolver := &stubRepositoryResolver{remoteURLsByPath: map[string]string{
		repositoryPath: "git@github.com:acme/widgets.git",
	}}

	locator, creationError := discovery.NewRepoLocator(resolver, discovery.OSFileSystem{}, zap.NewNop())
	require.NoError(testInstance, creationError)

	descriptors := locator.Discover(context.Background(), []string{repositoryPath})
	require.Len(testInstance, descriptors, 1)
	require.Equal(testInstance, testFirstRepositorySlug, descriptors[0].Slug)
	require.Equal(testInstance, repositoryPath, descriptors[0].Path)
}

func TestDiscoverIsolatesPerRepositoryFailures(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()
	healthyRepository := createRepositoryDirectory(testInstance, rootDirectory, "widgets")
	brokenRepository := createRepositoryDirectory(testInstance, rootDirectory, "broken")

	resolver := &stubRepositoryResolver{
		remoteURLsByPath: map[string]string{
			healthyRepository: "git@github.com:acme/widgets.git",
		},
		failingPaths: map[string]error{
			brokenRepository: errors.New("corrupt repository"),
		},
	}

	observerCore, observedLogs := observer.New(zapcore.ErrorLevel)
	locator, creationError := discovery.NewRepoLocator(resolver, discovery.OSFileSystem{}, zap.New(observerCore))
	require.NoError(testInstance, creationError)

	descriptors := locator.Discover(context.Background(), []string{rootDirectory})

	require.Len(testInstance, descriptors, 1)
	require.Equal(testInstance, testFirstRepositorySlug, descriptors[0].Slug)
	require.Len(testInstance, observedLogs.All(), 1)
}

func TestDiscoverDeduplicatesBySlugFirstSeenWins(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()
	firstClone := createRepositoryDirectory(testInstance, rootDirectory, "widgets")
	secondClone := createRepositoryDirectory(testInstance, rootDirectory, "widgets-copy")

	resolver := &stubRepositoryResolver{remoteURLsByPath: map[string]string{
		firstClone:  "git@github.com:acme/widgets.git",
		secondClone: "git@github.com:acme/widgets.git",
	}}

	locator, creationError := discovery.NewRepoLocator(resolver, discovery.OSFileSystem{}, zap.NewNop())
	require.NoError(testInstance, creationError)

	descriptors := locator.Discover(context.Background(), []string{rootDirectory})
	require.Len(testInstance, descriptors, 1)
	require.Equal(testInstance, firstClone, descriptors[0].Path)
}

func TestDiscoverMatchingFiltersBySlugIdentifier(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()
	widgetsRepository := createRepositoryDirectory(testInstance, rootDirectory, "widgets")
	gadgetsRepository := createRepositoryDirectory(testInstance, rootDirectory, "gadgets")

	resolver := &stubRepositoryResolver{remoteURLsByPath: map[string]string{
		widgetsRepository: "git@github.com:acme/widgets.git",
		gadgetsRepository: "git@github.com:acme/gadgets.git",
	}}

	observerCore, observedLogs := observer.New(zapcore.WarnLevel)
	locator, creationError := discovery.NewRepoLocator(resolver, discovery.OSFileSystem{}, zap.New(observerCore))
	require.NoError(testInstance, creationError)

	descriptors := locator.DiscoverMatching(context.Background(), []string{"widgets", "missing-identifier"}, rootDirectory)

	require.Len(testInstance, descriptors, 1)
	require.Equal(testInstance, testFirstRepositorySlug, descriptors[0].Slug)
	require.Len(testInstance, observedLogs.All(), 1)
}

func TestDiscoverMatchingPrunesNestedDirectoryArguments(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()
	widgetsRepository := createRepositoryDirectory(testInstance, rootDirectory, "widgets")

	resolver := &stubRepositoryResolver{remoteURLsByPath: map[string]string{
		widgetsRepository: "git@github.com:acme/widgets.git",
	}}

	locator, creationError := discovery.NewRepoLocator(resolver, discovery.OSFileSystem{}, zap.NewNop())
	require.NoError(testInstance, creationError)

	descriptors := locator.DiscoverMatching(context.Background(), []string{rootDirectory, widgetsRepository}, ".")

	require.Len(testInstance, descriptors, 1)
	require.Equal(testInstance, testFirstRepositorySlug, descriptors[0].Slug)
	require.Equal(testInstance, 1, resolver.resolveCallCount)
}

func TestNewRepoLocatorValidatesCollaborators(testInstance *testing.T) {
	_, missingResolverError := discovery.NewRepoLocator(nil, discovery.OSFileSystem{}, zap.NewNop())
	require.ErrorIs(testInstance, missingResolverError, discovery.ErrResolverNotConfigured)

	resolver := &stubRepositoryResolver{}
	_, missingFileSystemError := discovery.NewRepoLocator(resolver, nil, zap.NewNop())
	require.ErrorIs(testInstance, missingFileSystemError, discovery.ErrFileSystemNotConfigured)
}
