package clone

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/repofleet/internal/gitrepo"
)

const (
	defaultSSHRemoteBaseConstant       = "ssh://git@github.com"
	httpsFallbackRemoteBaseConstant    = "https://github.com"
	defaultRevisionConstant            = "HEAD"
	defaultClonePathConstant           = "."
	gitDirectorySuffixConstant         = ".git"
	scpStyleRemotePrefixConstant       = "git@"
	scpStyleSeparatorConstant          = ":"
	pathSeparatorConstant              = "/"
	repositorySpecRequiredMessage      = "repository spec required"
	clonerNotConfiguredMessage         = "cloner not configured"
	allRemotesFailedTemplateConstant   = "failed to clone %s using all configured remotes"
	sshFallbackWarningMessageConstant  = "clone failed, retrying over HTTPS"
	remoteHeadLogMessageConstant       = "resolved remote HEAD"
)

var (
	// ErrRepositorySpecRequired indicates the clone request named no repository.
	ErrRepositorySpecRequired = errors.New(repositorySpecRequiredMessage)
	// ErrClonerNotConfigured indicates the service lacks a git backend.
	ErrClonerNotConfigured = errors.New(clonerNotConfiguredMessage)
)

// Cloner captures the git operations required to clone and pin a repository.
type Cloner interface {
	ResolveRemoteHead(executionContext context.Context, remoteURL string) (string, error)
	CloneRepository(executionContext context.Context, options gitrepo.CloneOptions) error
	CheckoutRevision(executionContext context.Context, repositoryPath string, revision string) error
}

// Request describes one clone operation.
type Request struct {
	RepositorySpec string
	Revision       string
	RemoteBase     string
	ClonePath      string
	MirrorPath     string
	Versioning     bool
}

// Service clones repositories with optional mirror references and
// version-pinned target directories.
type Service struct {
	cloner Cloner
	logger *zap.Logger
}

// NewService constructs a clone Service.
func NewService(cloner Cloner, logger *zap.Logger) (*Service, error) {
	if cloner == nil {
		return nil, ErrClonerNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{cloner: cloner, logger: logger}, nil
}

// Clone clones the requested repository and checks out the requested
// revision, returning the target path. The primary remote is tried first;
// on failure the HTTPS remote is attempted before giving up.
func (service *Service) Clone(executionContext context.Context, request Request) (string, error) {
	repositorySpec := strings.TrimSpace(request.RepositorySpec)
	if len(repositorySpec) == 0 {
		return "", ErrRepositorySpecRequired
	}

	remoteBase := strings.TrimSpace(request.RemoteBase)
	if len(remoteBase) == 0 {
		remoteBase = defaultSSHRemoteBaseConstant
	}

	clonePath := strings.TrimSpace(request.ClonePath)
	if len(clonePath) == 0 {
		clonePath = defaultClonePathConstant
	}

	revision := strings.TrimSpace(request.Revision)
	if len(revision) == 0 {
		revision = defaultRevisionConstant
	}

	if request.Versioning {
		headRevision, resolutionError := service.cloner.ResolveRemoteHead(executionContext, remoteURLFor(remoteBase, repositorySpec))
		if resolutionError != nil {
			return "", resolutionError
		}
		service.logger.Debug(remoteHeadLogMessageConstant, zap.String("repository", repositorySpec), zap.String("revision", headRevision))
		revision = headRevision
	}

	targetPath := filepath.Join(clonePath, repositorySpec)
	if request.Versioning {
		targetPath = filepath.Join(clonePath, repositorySpec, revision)
	}

	referencePath := ""
	if len(strings.TrimSpace(request.MirrorPath)) > 0 {
		referencePath = strings.TrimSpace(request.MirrorPath) + pathSeparatorConstant + repositorySpec + gitDirectorySuffixConstant
	}

	cloneError := service.cloner.CloneRepository(executionContext, gitrepo.CloneOptions{
		RemoteURL:     remoteURLFor(remoteBase, repositorySpec),
		TargetPath:    targetPath,
		ReferencePath: referencePath,
	})
	if cloneError != nil && remoteBase != httpsFallbackRemoteBaseConstant {
		service.logger.Warn(sshFallbackWarningMessageConstant, zap.String("repository", repositorySpec), zap.Error(cloneError))
		cloneError = service.cloner.CloneRepository(executionContext, gitrepo.CloneOptions{
			RemoteURL:     remoteURLFor(httpsFallbackRemoteBaseConstant, repositorySpec),
			TargetPath:    targetPath,
			ReferencePath: referencePath,
		})
	}
	if cloneError != nil {
		return "", fmt.Errorf(allRemotesFailedTemplateConstant, repositorySpec)
	}

	checkoutError := service.cloner.CheckoutRevision(executionContext, targetPath, revision)
	if checkoutError != nil {
		return "", checkoutError
	}

	return targetPath, nil
}

func remoteURLFor(remoteBase string, repositorySpec string) string {
	separator := pathSeparatorConstant
	if strings.HasPrefix(remoteBase, scpStyleRemotePrefixConstant) {
		separator = scpStyleSeparatorConstant
	}
	return remoteBase + separator + repositorySpec
}
