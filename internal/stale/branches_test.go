package stale_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repofleet/internal/gitrepo"
	"github.com/temirov/repofleet/internal/stale"
)

const (
	testRepositoryPathConstant   = "/workspace/widgets"
	testReferencePrefixConstant  = "refs/remotes/origin"
	testOriginRemoteNameConstant = "origin"
)

type recordingBranchLister struct {
	fetchedRemotes   []string
	listedPrefixes   []string
	references       []gitrepo.RemoteReference
	fetchFailure     error
	listingFailure   error
}

func (lister *recordingBranchLister) FetchRemote(executionContext context.Context, repositoryPath string, remoteName string) error {
	lister.fetchedRemotes = append(lister.fetchedRemotes, remoteName)
	return lister.fetchFailure
}

func (lister *recordingBranchLister) ListReferences(executionContext context.Context, repositoryPath string, referencePrefix string) ([]gitrepo.RemoteReference, error) {
	lister.listedPrefixes = append(lister.listedPrefixes, referencePrefix)
	if lister.listingFailure != nil {
		return nil, lister.listingFailure
	}
	return lister.references, nil
}

func fixedTestClock() time.Time {
	return time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)
}

func TestNewBranchCollectorValidation(testInstance *testing.T) {
	collector, creationError := stale.NewBranchCollector(nil, nil)
	require.ErrorIs(testInstance, creationError, stale.ErrBranchListerNotConfigured)
	require.Nil(testInstance, collector)
}

func TestCollectStaleBranches(testInstance *testing.T) {
	testInstance.Run("filters_by_threshold_and_strips_prefix", func(testInstance *testing.T) {
		lister := &recordingBranchLister{
			references: []gitrepo.RemoteReference{
				{Name: "origin/feature/retry", CommitterName: "Alice Smith", CommitDate: time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)},
				{Name: "origin/fix/typo", CommitterName: "Bob Jones", CommitDate: time.Date(2026, time.August, 28, 0, 0, 0, 0, time.UTC)},
			},
		}
		collector, creationError := stale.NewBranchCollector(lister, fixedTestClock)
		require.NoError(testInstance, creationError)

		staleEntries, collectionError := collector.CollectStaleBranches(context.Background(), testRepositoryPathConstant, 30, "")
		require.NoError(testInstance, collectionError)
		require.Equal(testInstance, []string{testOriginRemoteNameConstant}, lister.fetchedRemotes)
		require.Equal(testInstance, []string{testReferencePrefixConstant}, lister.listedPrefixes)
		require.Len(testInstance, staleEntries, 1)
		require.Equal(testInstance, "feature/retry", staleEntries[0].Title)
		require.Equal(testInstance, "Alice Smith", staleEntries[0].Author)
		require.Equal(testInstance, 90, staleEntries[0].AgeDays)
	})

	testInstance.Run("threshold_boundary_is_inclusive", func(testInstance *testing.T) {
		lister := &recordingBranchLister{
			references: []gitrepo.RemoteReference{
				{Name: "origin/release/1.2", CommitterName: "Carol Diaz", CommitDate: time.Date(2026, time.July, 31, 0, 0, 0, 0, time.UTC)},
			},
		}
		collector, creationError := stale.NewBranchCollector(lister, fixedTestClock)
		require.NoError(testInstance, creationError)

		staleEntries, collectionError := collector.CollectStaleBranches(context.Background(), testRepositoryPathConstant, 30, testReferencePrefixConstant)
		require.NoError(testInstance, collectionError)
		require.Len(testInstance, staleEntries, 1)
		require.Equal(testInstance, 30, staleEntries[0].AgeDays)
	})

	testInstance.Run("fetch_failure_is_surfaced", func(testInstance *testing.T) {
		lister := &recordingBranchLister{fetchFailure: errors.New("remote unreachable")}
		collector, creationError := stale.NewBranchCollector(lister, fixedTestClock)
		require.NoError(testInstance, creationError)

		staleEntries, collectionError := collector.CollectStaleBranches(context.Background(), testRepositoryPathConstant, 30, testReferencePrefixConstant)
		require.Error(testInstance, collectionError)
		require.Nil(testInstance, staleEntries)
		require.Empty(testInstance, lister.listedPrefixes)
	})

	testInstance.Run("listing_failure_is_surfaced", func(testInstance *testing.T) {
		lister := &recordingBranchLister{listingFailure: errors.New("bad ref")}
		collector, creationError := stale.NewBranchCollector(lister, fixedTestClock)
		require.NoError(testInstance, creationError)

		_, collectionError := collector.CollectStaleBranches(context.Background(), testRepositoryPathConstant, 30, testReferencePrefixConstant)
		require.Error(testInstance, collectionError)
	})
}
