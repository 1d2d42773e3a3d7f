package ownership

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/temirov/repofleet/internal/discovery"
)

const (
	defaultAuthorLimitConstant            = 5
	authorDisplayTemplateConstant         = "%s (%d)"
	authorSummaryFailureLogMessage        = "author summary unavailable"
	repositorySlugLogFieldNameConstant    = "slug"
	parserNotConfiguredMessageConstant    = "ownership parser not configured"
	authorResolverMissingMessageConstant  = "author resolver not configured"
)

// ErrServiceParserNotConfigured indicates the service was constructed without a parser.
var ErrServiceParserNotConfigured = errors.New(parserNotConfiguredMessageConstant)

// ErrServiceAuthorResolverNotConfigured indicates the service was constructed without an author resolver.
var ErrServiceAuthorResolverNotConfigured = errors.New(authorResolverMissingMessageConstant)

// ServiceOptions configures an ownership analysis Service.
type ServiceOptions struct {
	// ExcludedAuthors removes the named authors from top-contributor reporting.
	ExcludedAuthors []string
	// AuthorLimit bounds how many contributors a report lists. Non-positive values use the default.
	AuthorLimit int
}

// Service analyzes one repository's CODEOWNERS coverage.
type Service struct {
	parser          *OwnershipParser
	coverageEngine  CoverageEngine
	authorResolver  AuthorResolver
	excludedAuthors map[string]struct{}
	authorLimit     int
	logger          *zap.Logger
}

// NewService constructs a Service from its collaborators.
func NewService(parser *OwnershipParser, coverageEngine CoverageEngine, authorResolver AuthorResolver, options ServiceOptions, logger *zap.Logger) (*Service, error) {
	if parser == nil {
		return nil, ErrServiceParserNotConfigured
	}
	if authorResolver == nil {
		return nil, ErrServiceAuthorResolverNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	authorLimit := options.AuthorLimit
	if authorLimit <= 0 {
		authorLimit = defaultAuthorLimitConstant
	}

	excludedAuthors := make(map[string]struct{}, len(options.ExcludedAuthors))
	for _, authorName := range options.ExcludedAuthors {
		excludedAuthors[authorName] = struct{}{}
	}

	return &Service{
		parser:          parser,
		coverageEngine:  coverageEngine,
		authorResolver:  authorResolver,
		excludedAuthors: excludedAuthors,
		authorLimit:     authorLimit,
		logger:          logger,
	}, nil
}

// AnalyzeRepository classifies the repository's CODEOWNERS, computes coverage of
// its code files, and assembles the presentation-ready report. Repositories that
// are not fully owned additionally carry their top contributors.
func (service *Service) AnalyzeRepository(executionContext context.Context, descriptor discovery.RepositoryDescriptor) (RepositoryReport, error) {
	ownershipTable, loadError := service.parser.Load(descriptor.Path)
	if loadError != nil {
		return RepositoryReport{}, loadError
	}

	switch ownershipTable.Classification {
	case TableMissing:
		return service.buildUnownedReport(executionContext, descriptor, MissingCodeownersMarker), nil
	case TableEmpty:
		return service.buildUnownedReport(executionContext, descriptor, EmptyCodeownersMarker), nil
	}

	codeFiles, gatherError := service.coverageEngine.GatherCodeFiles(descriptor.Path)
	if gatherError != nil {
		return RepositoryReport{}, gatherError
	}

	unownedBuckets := service.coverageEngine.DetermineUnowned(ownershipTable, codeFiles)
	coverageStatus := StatusOwned
	if len(unownedBuckets) > 0 {
		coverageStatus = StatusPartial
	}

	report := RepositoryReport{
		Slug:        descriptor.Slug,
		Status:      coverageStatus,
		PathMapping: BuildPathMapping(ownershipTable.Entries, unownedBuckets),
	}
	if coverageStatus != StatusOwned {
		report.Authors = service.topAuthors(executionContext, descriptor)
	}
	return report, nil
}

func (service *Service) buildUnownedReport(executionContext context.Context, descriptor discovery.RepositoryDescriptor, marker string) RepositoryReport {
	return RepositoryReport{
		Slug:        descriptor.Slug,
		Status:      StatusUnowned,
		PathsMarker: marker,
		Authors:     service.topAuthors(executionContext, descriptor),
	}
}

// topAuthors returns the formatted top contributors, honoring the exclusion list.
// A shortlog failure degrades to an empty list rather than failing the analysis.
func (service *Service) topAuthors(executionContext context.Context, descriptor discovery.RepositoryDescriptor) []string {
	authorActivities, resolutionError := service.authorResolver.TopCommitAuthors(executionContext, descriptor.Path, 0)
	if resolutionError != nil {
		service.logger.Debug(authorSummaryFailureLogMessage,
			zap.String(repositorySlugLogFieldNameConstant, descriptor.Slug),
			zap.Error(resolutionError))
		return nil
	}

	var formattedAuthors []string
	for _, authorActivity := range authorActivities {
		if _, excluded := service.excludedAuthors[authorActivity.Name]; excluded {
			continue
		}
		formattedAuthors = append(formattedAuthors, fmt.Sprintf(authorDisplayTemplateConstant, authorActivity.Name, authorActivity.CommitCount))
		if len(formattedAuthors) == service.authorLimit {
			break
		}
	}
	return formattedAuthors
}
