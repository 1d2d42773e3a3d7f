package stale

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	unknownAuthorNameConstant              = "Unknown"
	pullRequestTitleTemplateConstant       = "%s (pr %d)"
	pullRequestListerNotConfiguredMessage  = "pull request lister not configured"
	defaultPullRequestResultLimitConstant  = 100
)

// ErrPullRequestListerNotConfigured indicates the collector lacks a GitHub backend.
var ErrPullRequestListerNotConfigured = errors.New(pullRequestListerNotConfiguredMessage)

// PullRequestCollector detects open pull requests that have been waiting for
// at least a threshold number of days.
type PullRequestCollector struct {
	lister      PullRequestLister
	clock       Clock
	resultLimit int
}

// NewPullRequestCollector constructs a PullRequestCollector backed by the
// supplied lister. A nil clock defaults to time.Now; a non-positive result
// limit defaults to 100.
func NewPullRequestCollector(lister PullRequestLister, clock Clock, resultLimit int) (*PullRequestCollector, error) {
	if lister == nil {
		return nil, ErrPullRequestListerNotConfigured
	}
	if clock == nil {
		clock = time.Now
	}
	if resultLimit <= 0 {
		resultLimit = defaultPullRequestResultLimitConstant
	}
	return &PullRequestCollector{lister: lister, clock: clock, resultLimit: resultLimit}, nil
}

// CollectStalePullRequests lists open pull requests for the repository slug
// and returns the ones whose age in whole days is at least thresholdDays.
// Titles carry the pull request number; authors without a login render as
// Unknown.
func (collector *PullRequestCollector) CollectStalePullRequests(executionContext context.Context, repositorySlug string, thresholdDays int) ([]StaleEntry, error) {
	pullRequests, listingError := collector.lister.ListOpenPullRequests(executionContext, repositorySlug, collector.resultLimit)
	if listingError != nil {
		return nil, listingError
	}

	currentTime := collector.clock()
	staleEntries := make([]StaleEntry, 0)
	for _, pullRequest := range pullRequests {
		ageDays := wholeDaysBetween(pullRequest.CreatedAt, currentTime)
		if ageDays < thresholdDays {
			continue
		}

		authorName := pullRequest.AuthorLogin
		if len(authorName) == 0 {
			authorName = unknownAuthorNameConstant
		}

		staleEntries = append(staleEntries, StaleEntry{
			Title:   fmt.Sprintf(pullRequestTitleTemplateConstant, pullRequest.Title, pullRequest.Number),
			AgeDays: ageDays,
			Author:  authorName,
		})
	}

	return staleEntries, nil
}
