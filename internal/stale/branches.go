package stale

import (
	"context"
	"errors"
	"strings"
	"time"
)

const (
	defaultRemoteNameConstant              = "origin"
	remoteBranchPrefixConstant             = "origin/"
	defaultReferencePrefixConstant         = "refs/remotes/origin"
	branchListerNotConfiguredMessage       = "branch lister not configured"
	hoursPerDayConstant                    = 24
)

// ErrBranchListerNotConfigured indicates the collector lacks a git backend.
var ErrBranchListerNotConfigured = errors.New(branchListerNotConfiguredMessage)

// BranchCollector detects remote branches whose latest commit is at least a
// threshold number of days old.
type BranchCollector struct {
	lister BranchLister
	clock  Clock
}

// NewBranchCollector constructs a BranchCollector backed by the supplied
// branch lister. A nil clock defaults to time.Now.
func NewBranchCollector(lister BranchLister, clock Clock) (*BranchCollector, error) {
	if lister == nil {
		return nil, ErrBranchListerNotConfigured
	}
	if clock == nil {
		clock = time.Now
	}
	return &BranchCollector{lister: lister, clock: clock}, nil
}

// CollectStaleBranches fetches the remote with pruning, lists the references
// below referencePrefix, and returns every branch whose age in whole days is
// at least thresholdDays. Branch names lose their origin/ prefix.
func (collector *BranchCollector) CollectStaleBranches(executionContext context.Context, repositoryPath string, thresholdDays int, referencePrefix string) ([]StaleEntry, error) {
	if len(strings.TrimSpace(referencePrefix)) == 0 {
		referencePrefix = defaultReferencePrefixConstant
	}

	fetchError := collector.lister.FetchRemote(executionContext, repositoryPath, defaultRemoteNameConstant)
	if fetchError != nil {
		return nil, fetchError
	}

	references, listingError := collector.lister.ListReferences(executionContext, repositoryPath, referencePrefix)
	if listingError != nil {
		return nil, listingError
	}

	currentTime := collector.clock()
	staleEntries := make([]StaleEntry, 0)
	for _, reference := range references {
		ageDays := wholeDaysBetween(reference.CommitDate, currentTime)
		if ageDays < thresholdDays {
			continue
		}
		staleEntries = append(staleEntries, StaleEntry{
			Title:   strings.TrimPrefix(reference.Name, remoteBranchPrefixConstant),
			AgeDays: ageDays,
			Author:  reference.CommitterName,
		})
	}

	return staleEntries, nil
}

func wholeDaysBetween(earlierTime time.Time, laterTime time.Time) int {
	return int(laterTime.Sub(earlierTime).Hours() / hoursPerDayConstant)
}
