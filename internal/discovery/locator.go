package discovery

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/repofleet/internal/gitrepo"
	pathutils "github.com/temirov/repofleet/internal/utils/path"
)

const (
	gitMetadataDirectoryNameConstant       = ".git"
	originRemoteNameConstant               = "origin"
	repositoryPathLogFieldNameConstant     = "path"
	repositorySlugLogFieldNameConstant     = "slug"
	identifierLogFieldNameConstant         = "identifier"
	discoveryFailureLogMessageConstant     = "repository excluded from discovery"
	unmatchedIdentifierLogMessageConstant  = "identifier matched no discovered repository"
	resolverNotConfiguredMessageConstant   = "repository resolver not configured"
	fileSystemNotConfiguredMessageConstant = "file system not configured"
)

// ErrResolverNotConfigured indicates the locator was constructed without a repository resolver.
var ErrResolverNotConfigured = errors.New(resolverNotConfiguredMessageConstant)

// ErrFileSystemNotConfigured indicates the locator was constructed without a file system.
var ErrFileSystemNotConfigured = errors.New(fileSystemNotConfiguredMessageConstant)

// RepositoryDescriptor identifies one discovered repository by canonical root path and slug.
type RepositoryDescriptor struct {
	Path string
	Slug string
}

// RepoLocator finds Git repository roots beneath candidate paths and resolves their slugs.
//
// The scan is a fixed two-level bounded walk: the path itself, its immediate
// children, and the children of any non-repository child directory. Deeper
// nesting is intentionally not visited.
type RepoLocator struct {
	resolver      RepositoryResolver
	fileSystem    FileSystem
	logger        *zap.Logger
	homeExpander  *pathutils.HomeExpander
	pathSanitizer *pathutils.RepositoryPathSanitizer
}

// NewRepoLocator constructs a RepoLocator with the provided collaborators.
func NewRepoLocator(resolver RepositoryResolver, fileSystem FileSystem, logger *zap.Logger) (*RepoLocator, error) {
	if resolver == nil {
		return nil, ErrResolverNotConfigured
	}
	if fileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	homeExpander := pathutils.NewHomeExpander()
	pathSanitizer := pathutils.NewRepositoryPathSanitizerWithConfiguration(homeExpander, pathutils.RepositoryPathSanitizerConfiguration{
		PruneNestedPaths: true,
	})
	return &RepoLocator{resolver: resolver, fileSystem: fileSystem, logger: logger, homeExpander: homeExpander, pathSanitizer: pathSanitizer}, nil
}

// Discover scans the provided paths and returns descriptors for every repository whose
// slug resolves. Repositories that cannot be resolved are logged and excluded; a failure
// on one entry never fails the call. Descriptors are deduplicated by slug, first seen wins.
func (locator *RepoLocator) Discover(executionContext context.Context, candidatePaths []string) []RepositoryDescriptor {
	var descriptors []RepositoryDescriptor
	seenSlugs := make(map[string]struct{})

	for _, candidatePath := range candidatePaths {
		for _, repositoryRoot := range locator.scanCandidate(candidatePath) {
			descriptor, resolutionError := locator.resolveDescriptor(executionContext, repositoryRoot)
			if resolutionError != nil {
				locator.logger.Error(discoveryFailureLogMessageConstant,
					zap.String(repositoryPathLogFieldNameConstant, repositoryRoot),
					zap.Error(resolutionError))
				continue
			}

			if _, alreadySeen := seenSlugs[descriptor.Slug]; alreadySeen {
				continue
			}
			seenSlugs[descriptor.Slug] = struct{}{}
			descriptors = append(descriptors, descriptor)
		}
	}

	return descriptors
}

// DiscoverMatching handles argument lists that mix directory paths with bare identifiers.
//
// Arguments are home-expanded before the directory check, and nested directory
// arguments are pruned so a repository beneath another argument is scanned once.
// Existing directories are scanned as in Discover. When any bare identifier is present,
// the discovered repositories are filtered to those whose slug equals or contains one of
// the identifiers. When the arguments name no directory at all, defaultRoot is scanned.
// Identifiers that match nothing are logged as warnings and otherwise ignored.
func (locator *RepoLocator) DiscoverMatching(executionContext context.Context, arguments []string, defaultRoot string) []RepositoryDescriptor {
	var directoryPaths []string
	var identifiers []string

	for _, argument := range arguments {
		trimmedArgument := strings.TrimSpace(argument)
		if len(trimmedArgument) == 0 {
			continue
		}
		expandedArgument := locator.homeExpander.Expand(trimmedArgument)
		if locator.isDirectory(expandedArgument) {
			directoryPaths = append(directoryPaths, expandedArgument)
			continue
		}
		identifiers = append(identifiers, trimmedArgument)
	}

	if len(directoryPaths) == 0 {
		directoryPaths = []string{defaultRoot}
	} else {
		directoryPaths = locator.pathSanitizer.Sanitize(directoryPaths)
	}

	descriptors := locator.Discover(executionContext, directoryPaths)
	if len(identifiers) == 0 {
		return descriptors
	}

	matchedIdentifiers := make(map[string]struct{})
	var filteredDescriptors []RepositoryDescriptor
	for _, descriptor := range descriptors {
		for _, identifier := range identifiers {
			if descriptor.Slug == identifier || strings.Contains(descriptor.Slug, identifier) {
				filteredDescriptors = append(filteredDescriptors, descriptor)
				matchedIdentifiers[identifier] = struct{}{}
				break
			}
		}
	}

	for _, identifier := range identifiers {
		if _, matched := matchedIdentifiers[identifier]; !matched {
			locator.logger.Warn(unmatchedIdentifierLogMessageConstant,
				zap.String(identifierLogFieldNameConstant, identifier))
		}
	}

	return filteredDescriptors
}

func (locator *RepoLocator) scanCandidate(candidatePath string) []string {
	if locator.hasGitMarker(candidatePath) {
		return []string{candidatePath}
	}
	if !locator.isDirectory(candidatePath) {
		return nil
	}

	var repositoryRoots []string
	for _, childPath := range locator.listChildDirectories(candidatePath) {
		if locator.hasGitMarker(childPath) {
			repositoryRoots = append(repositoryRoots, childPath)
			continue
		}
		for _, grandchildPath := range locator.listChildDirectories(childPath) {
			if locator.hasGitMarker(grandchildPath) {
				repositoryRoots = append(repositoryRoots, grandchildPath)
			}
		}
	}
	return repositoryRoots
}

func (locator *RepoLocator) resolveDescriptor(executionContext context.Context, repositoryRoot string) (RepositoryDescriptor, error) {
	canonicalRoot, rootError := locator.resolver.ResolveRepositoryRoot(executionContext, repositoryRoot)
	if rootError != nil {
		return RepositoryDescriptor{}, rootError
	}

	remoteURL, remoteError := locator.resolver.GetRemoteURL(executionContext, canonicalRoot, originRemoteNameConstant)
	if remoteError != nil {
		return RepositoryDescriptor{}, remoteError
	}

	parsedRemote, parseError := gitrepo.ParseRemoteURL(remoteURL)
	if parseError != nil {
		return RepositoryDescriptor{}, parseError
	}

	return RepositoryDescriptor{Path: canonicalRoot, Slug: parsedRemote.Slug()}, nil
}

func (locator *RepoLocator) listChildDirectories(directoryPath string) []string {
	directoryEntries, readError := locator.fileSystem.ReadDir(directoryPath)
	if readError != nil {
		locator.logger.Error(discoveryFailureLogMessageConstant,
			zap.String(repositoryPathLogFieldNameConstant, directoryPath),
			zap.Error(readError))
		return nil
	}

	var childDirectories []string
	for _, directoryEntry := range directoryEntries {
		if !directoryEntry.IsDir() {
			continue
		}
		if directoryEntry.Name() == gitMetadataDirectoryNameConstant {
			continue
		}
		childDirectories = append(childDirectories, filepath.Join(directoryPath, directoryEntry.Name()))
	}
	return childDirectories
}

func (locator *RepoLocator) hasGitMarker(candidatePath string) bool {
	_, statError := locator.fileSystem.Stat(filepath.Join(candidatePath, gitMetadataDirectoryNameConstant))
	return statError == nil
}

func (locator *RepoLocator) isDirectory(candidatePath string) bool {
	pathInfo, statError := locator.fileSystem.Stat(candidatePath)
	return statError == nil && pathInfo.IsDir()
}
