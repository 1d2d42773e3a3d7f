package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/temirov/repofleet/internal/execshell"
)

const (
	requiredValueMessageConstant                   = "value required"
	executorNotConfiguredMessageConstant           = "git executor not configured"
	revParseCommandNameConstant                    = "rev-parse"
	showToplevelFlagConstant                       = "--show-toplevel"
	remoteCommandNameConstant                      = "remote"
	remoteGetURLSubcommandConstant                 = "get-url"
	shortlogCommandNameConstant                    = "shortlog"
	shortlogSummaryFlagConstant                    = "-s"
	shortlogNumberedFlagConstant                   = "-n"
	shortlogAllFlagConstant                        = "--all"
	shortlogNoMergesFlagConstant                   = "--no-merges"
	fetchCommandNameConstant                       = "fetch"
	fetchPruneFlagConstant                         = "--prune"
	forEachRefCommandNameConstant                  = "for-each-ref"
	forEachRefSortFlagConstant                     = "--sort=-committerdate"
	forEachRefFormatFlagConstant                   = "--format=%(committerdate:short) %(refname:short) %(committername)"
	lsRemoteCommandNameConstant                    = "ls-remote"
	lsRemoteHeadReferenceConstant                  = "HEAD"
	cloneCommandNameConstant                       = "clone"
	cloneReferenceFlagConstant                     = "--reference"
	checkoutCommandNameConstant                    = "checkout"
	referenceDateLayoutConstant                    = "2006-01-02"
	repositoryRootResolutionErrorTemplateConstant  = "failed to resolve repository root for %s: %w"
	remoteURLResolutionErrorTemplateConstant       = "failed to resolve %s remote for %s: %w"
	commitAuthorSummaryErrorTemplateConstant       = "failed to summarize commit authors for %s: %w"
	remoteFetchErrorTemplateConstant               = "failed to fetch %s in %s: %w"
	referenceListingErrorTemplateConstant          = "failed to list references in %s: %w"
	remoteHeadResolutionErrorTemplateConstant      = "failed to resolve HEAD of %s: %w"
	cloneErrorTemplateConstant                     = "failed to clone %s into %s: %w"
	checkoutErrorTemplateConstant                  = "failed to check out %s in %s: %w"
	malformedReferenceLineMessageTemplateConstant  = "malformed reference line %q"
	malformedRemoteHeadOutputMessageConstant       = "no HEAD line in ls-remote output"
	malformedShortlogLineMessageTemplateConstant   = "malformed shortlog line %q"
	emptyRepositoryRootOutputMessageConstant       = "git produced no repository root"
	emptyRemoteURLOutputMessageConstant            = "git produced no remote url"
)

// ErrExecutorNotConfigured indicates the repository manager was constructed without a git executor.
var ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

// GitExecutor runs git subcommands on behalf of the repository manager.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// AuthorActivity summarizes commit counts attributed to a single author.
type AuthorActivity struct {
	Name        string
	CommitCount int
}

// RemoteReference describes a reference together with its latest commit metadata.
type RemoteReference struct {
	Name          string
	CommitterName string
	CommitDate    time.Time
}

// CloneOptions configures a repository clone invocation.
type CloneOptions struct {
	RemoteURL     string
	TargetPath    string
	ReferencePath string
}

// RepositoryManager performs git operations through a shell executor.
type RepositoryManager struct {
	executor GitExecutor
}

// NewRepositoryManager constructs a RepositoryManager backed by the provided executor.
func NewRepositoryManager(executor GitExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// ResolveRepositoryRoot returns the top-level directory of the repository containing candidatePath.
func (manager *RepositoryManager) ResolveRepositoryRoot(executionContext context.Context, candidatePath string) (string, error) {
	commandDetails := execshell.CommandDetails{
		Arguments:        []string{revParseCommandNameConstant, showToplevelFlagConstant},
		WorkingDirectory: candidatePath,
	}

	executionResult, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return "", fmt.Errorf(repositoryRootResolutionErrorTemplateConstant, candidatePath, executionError)
	}

	repositoryRoot := strings.TrimSpace(executionResult.StandardOutput)
	if len(repositoryRoot) == 0 {
		return "", fmt.Errorf(repositoryRootResolutionErrorTemplateConstant, candidatePath, errors.New(emptyRepositoryRootOutputMessageConstant))
	}
	return repositoryRoot, nil
}

// GetRemoteURL returns the URL configured for the named remote of the repository at repositoryPath.
func (manager *RepositoryManager) GetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error) {
	commandDetails := execshell.CommandDetails{
		Arguments:        []string{remoteCommandNameConstant, remoteGetURLSubcommandConstant, remoteName},
		WorkingDirectory: repositoryPath,
	}

	executionResult, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return "", fmt.Errorf(remoteURLResolutionErrorTemplateConstant, remoteName, repositoryPath, executionError)
	}

	remoteURL := strings.TrimSpace(executionResult.StandardOutput)
	if len(remoteURL) == 0 {
		return "", fmt.Errorf(remoteURLResolutionErrorTemplateConstant, remoteName, repositoryPath, errors.New(emptyRemoteURLOutputMessageConstant))
	}
	return remoteURL, nil
}

// TopCommitAuthors returns up to limit authors ordered by descending commit count across all branches.
func (manager *RepositoryManager) TopCommitAuthors(executionContext context.Context, repositoryPath string, limit int) ([]AuthorActivity, error) {
	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			shortlogCommandNameConstant,
			shortlogSummaryFlagConstant,
			shortlogNumberedFlagConstant,
			shortlogAllFlagConstant,
			shortlogNoMergesFlagConstant,
		},
		WorkingDirectory: repositoryPath,
	}

	executionResult, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return nil, fmt.Errorf(commitAuthorSummaryErrorTemplateConstant, repositoryPath, executionError)
	}

	authorActivities, parseError := parseShortlogOutput(executionResult.StandardOutput)
	if parseError != nil {
		return nil, fmt.Errorf(commitAuthorSummaryErrorTemplateConstant, repositoryPath, parseError)
	}

	if limit > 0 && len(authorActivities) > limit {
		authorActivities = authorActivities[:limit]
	}
	return authorActivities, nil
}

// FetchRemote updates remote-tracking references for the named remote and prunes removed branches.
func (manager *RepositoryManager) FetchRemote(executionContext context.Context, repositoryPath string, remoteName string) error {
	commandDetails := execshell.CommandDetails{
		Arguments:        []string{fetchCommandNameConstant, remoteName, fetchPruneFlagConstant},
		WorkingDirectory: repositoryPath,
	}

	_, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return fmt.Errorf(remoteFetchErrorTemplateConstant, remoteName, repositoryPath, executionError)
	}
	return nil
}

// ListReferences returns references under referencePrefix sorted by descending commit date.
func (manager *RepositoryManager) ListReferences(executionContext context.Context, repositoryPath string, referencePrefix string) ([]RemoteReference, error) {
	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			forEachRefCommandNameConstant,
			forEachRefSortFlagConstant,
			referencePrefix,
			forEachRefFormatFlagConstant,
		},
		WorkingDirectory: repositoryPath,
	}

	executionResult, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return nil, fmt.Errorf(referenceListingErrorTemplateConstant, repositoryPath, executionError)
	}

	references, parseError := parseReferenceListing(executionResult.StandardOutput)
	if parseError != nil {
		return nil, fmt.Errorf(referenceListingErrorTemplateConstant, repositoryPath, parseError)
	}
	return references, nil
}

// ResolveRemoteHead returns the commit hash the remote's HEAD points at without cloning.
func (manager *RepositoryManager) ResolveRemoteHead(executionContext context.Context, remoteURL string) (string, error) {
	commandDetails := execshell.CommandDetails{
		Arguments: []string{lsRemoteCommandNameConstant, remoteURL, lsRemoteHeadReferenceConstant},
	}

	executionResult, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return "", fmt.Errorf(remoteHeadResolutionErrorTemplateConstant, remoteURL, executionError)
	}

	for _, outputLine := range strings.Split(executionResult.StandardOutput, "\n") {
		lineFields := strings.Fields(outputLine)
		if len(lineFields) == 2 && lineFields[1] == lsRemoteHeadReferenceConstant {
			return lineFields[0], nil
		}
	}
	return "", fmt.Errorf(remoteHeadResolutionErrorTemplateConstant, remoteURL, errors.New(malformedRemoteHeadOutputMessageConstant))
}

// CloneRepository clones options.RemoteURL into options.TargetPath, optionally borrowing objects from a reference repository.
func (manager *RepositoryManager) CloneRepository(executionContext context.Context, options CloneOptions) error {
	cloneArguments := []string{cloneCommandNameConstant}
	if len(strings.TrimSpace(options.ReferencePath)) > 0 {
		cloneArguments = append(cloneArguments, cloneReferenceFlagConstant, options.ReferencePath)
	}
	cloneArguments = append(cloneArguments, options.RemoteURL, options.TargetPath)

	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{Arguments: cloneArguments})
	if executionError != nil {
		return fmt.Errorf(cloneErrorTemplateConstant, options.RemoteURL, options.TargetPath, executionError)
	}
	return nil
}

// CheckoutRevision checks out the provided revision in the repository at repositoryPath.
func (manager *RepositoryManager) CheckoutRevision(executionContext context.Context, repositoryPath string, revision string) error {
	commandDetails := execshell.CommandDetails{
		Arguments:        []string{checkoutCommandNameConstant, revision},
		WorkingDirectory: repositoryPath,
	}

	_, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return fmt.Errorf(checkoutErrorTemplateConstant, revision, repositoryPath, executionError)
	}
	return nil
}

func parseShortlogOutput(shortlogOutput string) ([]AuthorActivity, error) {
	var authorActivities []AuthorActivity
	for _, outputLine := range strings.Split(shortlogOutput, "\n") {
		trimmedLine := strings.TrimSpace(outputLine)
		if len(trimmedLine) == 0 {
			continue
		}

		lineFields := strings.SplitN(trimmedLine, "\t", 2)
		if len(lineFields) != 2 {
			lineFields = strings.SplitN(trimmedLine, " ", 2)
		}
		if len(lineFields) != 2 {
			return nil, fmt.Errorf(malformedShortlogLineMessageTemplateConstant, trimmedLine)
		}

		commitCount, conversionError := strconv.Atoi(strings.TrimSpace(lineFields[0]))
		if conversionError != nil {
			return nil, fmt.Errorf(malformedShortlogLineMessageTemplateConstant, trimmedLine)
		}

		authorActivities = append(authorActivities, AuthorActivity{
			Name:        strings.TrimSpace(lineFields[1]),
			CommitCount: commitCount,
		})
	}
	return authorActivities, nil
}

func parseReferenceListing(listingOutput string) ([]RemoteReference, error) {
	var references []RemoteReference
	for _, outputLine := range strings.Split(listingOutput, "\n") {
		trimmedLine := strings.TrimSpace(outputLine)
		if len(trimmedLine) == 0 {
			continue
		}

		lineFields := strings.SplitN(trimmedLine, " ", 3)
		if len(lineFields) < 2 {
			return nil, fmt.Errorf(malformedReferenceLineMessageTemplateConstant, trimmedLine)
		}

		commitDate, dateParseError := time.Parse(referenceDateLayoutConstant, lineFields[0])
		if dateParseError != nil {
			return nil, fmt.Errorf(malformedReferenceLineMessageTemplateConstant, trimmedLine)
		}

		committerName := ""
		if len(lineFields) == 3 {
			committerName = strings.TrimSpace(lineFields[2])
		}

		references = append(references, RemoteReference{
			Name:          lineFields[1],
			CommitterName: committerName,
			CommitDate:    commitDate,
		})
	}
	return references, nil
}
