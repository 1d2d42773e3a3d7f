package gitrepo

import (
	"fmt"

	gogit "github.com/go-git/go-git/v5"
)

const (
	originRemoteNameConstant                 = "origin"
	repositoryOpenErrorTemplateConstant      = "failed to open repository at %s: %w"
	originRemoteLookupErrorTemplateConstant  = "failed to read %s remote at %s: %w"
	missingRemoteURLMessageTemplateConstant  = "remote %s at %s has no configured url"
	remoteURLParseFailureTemplateConstant    = "failed to parse %s remote at %s: %w"
)

// LocalRepositoryReader resolves repository metadata by reading the on-disk repository directly.
type LocalRepositoryReader struct{}

// NewLocalRepositoryReader constructs a LocalRepositoryReader.
func NewLocalRepositoryReader() LocalRepositoryReader {
	return LocalRepositoryReader{}
}

// ResolveSlug opens the repository containing directoryPath and derives the owner/name
// slug from the first configured origin remote URL.
func (reader LocalRepositoryReader) ResolveSlug(directoryPath string) (string, error) {
	repository, openError := gogit.PlainOpenWithOptions(directoryPath, &gogit.PlainOpenOptions{DetectDotGit: true})
	if openError != nil {
		return "", fmt.Errorf(repositoryOpenErrorTemplateConstant, directoryPath, openError)
	}

	originRemote, remoteError := repository.Remote(originRemoteNameConstant)
	if remoteError != nil {
		return "", fmt.Errorf(originRemoteLookupErrorTemplateConstant, originRemoteNameConstant, directoryPath, remoteError)
	}

	remoteConfiguration := originRemote.Config()
	if remoteConfiguration == nil || len(remoteConfiguration.URLs) == 0 {
		return "", fmt.Errorf(missingRemoteURLMessageTemplateConstant, originRemoteNameConstant, directoryPath)
	}

	parsedRemote, parseError := ParseRemoteURL(remoteConfiguration.URLs[0])
	if parseError != nil {
		return "", fmt.Errorf(remoteURLParseFailureTemplateConstant, originRemoteNameConstant, directoryPath, parseError)
	}

	return parsedRemote.Slug(), nil
}
