package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/google/go-github/v81/github"
	"golang.org/x/oauth2"
)

// OwnerType selects which GitHub listing endpoint serves a query.
type OwnerType string

// Owner type enumerations.
const (
	OwnerTypeOrganization OwnerType = "org"
	OwnerTypeUser         OwnerType = "user"
)

const (
	defaultPageSizeConstant                = 100
	ownerNameRequiredMessageConstant       = "owner name required"
	tokenRequiredMessageConstant           = "github token not configured"
	unsupportedOwnerTypeTemplateConstant   = "unsupported owner type %q"
	repositoryListingErrorTemplateConstant = "listing repositories for %s: %w"
	baseURLTrailingSlashConstant           = "/"
)

var (
	// ErrOwnerNameRequired indicates a listing was requested without an owner.
	ErrOwnerNameRequired = errors.New(ownerNameRequiredMessageConstant)
	// ErrTokenRequired indicates no GitHub token was available for the API client.
	ErrTokenRequired = errors.New(tokenRequiredMessageConstant)
)

// RepositoryQuery describes one GitHub repository listing request.
type RepositoryQuery struct {
	OwnerName       string
	OwnerType       OwnerType
	IncludeArchived bool
	PageSize        int
}

// GitHubClient lists repositories through the GitHub REST API.
type GitHubClient struct {
	apiClient *github.Client
}

// GitHubClientOption customizes client construction.
type GitHubClientOption func(*GitHubClient) error

// WithBaseURL redirects API calls, primarily for tests against a local server.
func WithBaseURL(rawBaseURL string) GitHubClientOption {
	return func(client *GitHubClient) error {
		parsedBaseURL, parsingError := url.Parse(rawBaseURL)
		if parsingError != nil {
			return parsingError
		}
		if !strings.HasSuffix(parsedBaseURL.Path, baseURLTrailingSlashConstant) {
			parsedBaseURL.Path += baseURLTrailingSlashConstant
		}
		client.apiClient.BaseURL = parsedBaseURL
		return nil
	}
}

// NewGitHubClient constructs a GitHub API client authenticated with the token.
func NewGitHubClient(token string, options ...GitHubClientOption) (*GitHubClient, error) {
	trimmedToken := strings.TrimSpace(token)
	if len(trimmedToken) == 0 {
		return nil, ErrTokenRequired
	}

	tokenSource := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: trimmedToken})
	httpClient := &http.Client{Transport: &oauth2.Transport{Source: tokenSource, Base: http.DefaultTransport}}

	client := &GitHubClient{apiClient: github.NewClient(httpClient)}
	for _, option := range options {
		if optionError := option(client); optionError != nil {
			return nil, optionError
		}
	}
	return client, nil
}

// ListRepositoryNames returns the sorted full names of the owner's
// repositories, skipping archived repositories unless the query includes them.
func (client *GitHubClient) ListRepositoryNames(executionContext context.Context, query RepositoryQuery) ([]string, error) {
	ownerName := strings.TrimSpace(query.OwnerName)
	if len(ownerName) == 0 {
		return nil, ErrOwnerNameRequired
	}

	pageSize := query.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSizeConstant
	}

	repositoryNames := make([]string, 0)
	currentPage := 1
	for {
		repositories, response, listingError := client.listPage(executionContext, ownerName, query.OwnerType, currentPage, pageSize)
		if listingError != nil {
			return nil, fmt.Errorf(repositoryListingErrorTemplateConstant, ownerName, listingError)
		}

		for _, repository := range repositories {
			if repository.GetArchived() && !query.IncludeArchived {
				continue
			}
			repositoryNames = append(repositoryNames, repository.GetFullName())
		}

		if response.NextPage == 0 {
			break
		}
		currentPage = response.NextPage
	}

	sort.Strings(repositoryNames)
	return repositoryNames, nil
}

func (client *GitHubClient) listPage(executionContext context.Context, ownerName string, ownerType OwnerType, page int, pageSize int) ([]*github.Repository, *github.Response, error) {
	listOptions := github.ListOptions{Page: page, PerPage: pageSize}
	switch ownerType {
	case OwnerTypeOrganization:
		return client.apiClient.Repositories.ListByOrg(executionContext, ownerName, &github.RepositoryListByOrgOptions{ListOptions: listOptions})
	case OwnerTypeUser:
		return client.apiClient.Repositories.ListByUser(executionContext, ownerName, &github.RepositoryListByUserOptions{ListOptions: listOptions})
	default:
		return nil, nil, fmt.Errorf(unsupportedOwnerTypeTemplateConstant, ownerType)
	}
}
