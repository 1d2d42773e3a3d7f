package catalog_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repofleet/internal/catalog"
	"github.com/temirov/repofleet/internal/discovery"
)

type stubRepositoryLocator struct {
	descriptors       []discovery.RepositoryDescriptor
	recordedArguments []string
}

func (locator *stubRepositoryLocator) Discover(executionContext context.Context, candidatePaths []string) []discovery.RepositoryDescriptor {
	return locator.descriptors
}

func (locator *stubRepositoryLocator) DiscoverMatching(executionContext context.Context, arguments []string, defaultRoot string) []discovery.RepositoryDescriptor {
	locator.recordedArguments = append(locator.recordedArguments, arguments...)
	return locator.descriptors
}

type stubRepositoryNameLister struct {
	recordedQueries []catalog.RepositoryQuery
	repositoryNames []string
	listingFailure  error
}

func (lister *stubRepositoryNameLister) ListRepositoryNames(executionContext context.Context, query catalog.RepositoryQuery) ([]string, error) {
	lister.recordedQueries = append(lister.recordedQueries, query)
	if lister.listingFailure != nil {
		return nil, lister.listingFailure
	}
	return lister.repositoryNames, nil
}

func TestReposLocalCommandRendersDiscoveredRepositories(testInstance *testing.T) {
	locator := &stubRepositoryLocator{descriptors: []discovery.RepositoryDescriptor{
		{Slug: "acme/widgets", Path: "/workspace/widgets"},
	}}

	builder := &catalog.CommandBuilder{RepositoryLocator: locator}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	var outputBuffer bytes.Buffer
	command.SetOut(&outputBuffer)
	command.SetErr(&outputBuffer)
	command.SetContext(context.Background())
	command.SetArgs([]string{"local", "/workspace"})

	executionError := command.Execute()
	require.NoError(testInstance, executionError)
	require.Equal(testInstance, []string{"/workspace"}, locator.recordedArguments)
	require.Contains(testInstance, outputBuffer.String(), "acme/widgets")
	require.Contains(testInstance, outputBuffer.String(), "/workspace/widgets")
}

func TestReposGitHubCommandListsRepositories(testInstance *testing.T) {
	lister := &stubRepositoryNameLister{repositoryNames: []string{"acme/alpha", "acme/zeta"}}

	builder := &catalog.CommandBuilder{
		RepositoryNameLister:  lister,
		ConfigurationProvider: func() catalog.CommandConfiguration { return catalog.CommandConfiguration{PageSize: 50} },
	}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	var outputBuffer bytes.Buffer
	command.SetOut(&outputBuffer)
	command.SetErr(&outputBuffer)
	command.SetContext(context.Background())
	command.SetArgs([]string{"github", "acme", "--repo-type", "org", "--archived"})

	executionError := command.Execute()
	require.NoError(testInstance, executionError)
	require.Len(testInstance, lister.recordedQueries, 1)
	require.Equal(testInstance, catalog.RepositoryQuery{
		OwnerName:       "acme",
		OwnerType:       catalog.OwnerTypeOrganization,
		IncludeArchived: true,
		PageSize:        50,
	}, lister.recordedQueries[0])
	require.Equal(testInstance, "acme/alpha\nacme/zeta\n", outputBuffer.String())
}

func TestReposGitHubCommandRejectsUnknownOwnerType(testInstance *testing.T) {
	builder := &catalog.CommandBuilder{RepositoryNameLister: &stubRepositoryNameLister{}}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	var outputBuffer bytes.Buffer
	command.SetOut(&outputBuffer)
	command.SetErr(&outputBuffer)
	command.SetContext(context.Background())
	command.SetArgs([]string{"github", "acme", "--repo-type", "team"})

	executionError := command.Execute()
	require.Error(testInstance, executionError)
	require.Contains(testInstance, executionError.Error(), "unsupported owner type")
}

func TestReposGitHubCommandRequiresToken(testInstance *testing.T) {
	builder := &catalog.CommandBuilder{}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	var outputBuffer bytes.Buffer
	command.SetOut(&outputBuffer)
	command.SetErr(&outputBuffer)
	command.SetContext(context.Background())
	command.SetArgs([]string{"github", "acme"})

	executionError := command.Execute()
	require.ErrorIs(testInstance, executionError, catalog.ErrTokenRequired)
}
