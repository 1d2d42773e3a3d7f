package githubcli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/temirov/repofleet/internal/execshell"
)

const (
	repositoryFieldNameConstant          = "repository"
	requiredValueMessageConstant         = "value required"
	pullRequestLimitDefaultValueConstant = 100
	pullRequestJSONFieldsConstant        = "title,number,createdAt,author"
)

// ErrExecutorNotConfigured indicates the client was constructed without an executor.
var ErrExecutorNotConfigured = errors.New("github cli executor not configured")

// OperationName identifies a gh workflow for error reporting.
type OperationName string

const listPullRequestsOperationNameConstant OperationName = "ListOpenPullRequests"

// PullRequest is one entry from gh pr list. AuthorLogin is empty when GitHub
// reports no author, which happens for deleted accounts.
type PullRequest struct {
	Number      int
	Title       string
	CreatedAt   time.Time
	AuthorLogin string
}

// GitHubCommandExecutor is the slice of execshell.ShellExecutor the client needs.
type GitHubCommandExecutor interface {
	ExecuteGitHubCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// InvalidInputError reports an operation argument that failed validation.
type InvalidInputError struct {
	FieldName string
	Message   string
}

func (inputError InvalidInputError) Error() string {
	return inputError.FieldName + ": " + inputError.Message
}

// OperationError reports a gh invocation that did not succeed.
type OperationError struct {
	Operation OperationName
	Cause     error
}

func (operationError OperationError) Error() string {
	if operationError.Cause == nil {
		return fmt.Sprintf("%s operation failed", operationError.Operation)
	}
	return fmt.Sprintf("%s operation failed: %s", operationError.Operation, operationError.Cause)
}

func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// ResponseDecodingError reports gh output that could not be interpreted.
type ResponseDecodingError struct {
	Operation OperationName
	Cause     error
}

func (decodingError ResponseDecodingError) Error() string {
	return fmt.Sprintf("%s response decoding failed: %s", decodingError.Operation, decodingError.Cause)
}

func (decodingError ResponseDecodingError) Unwrap() error {
	return decodingError.Cause
}

// Client invokes the GitHub CLI through execshell.
type Client struct {
	executor GitHubCommandExecutor
}

// NewClient constructs a Client backed by the provided executor.
func NewClient(executor GitHubCommandExecutor) (*Client, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &Client{executor: executor}, nil
}

// pullRequestListEntry mirrors the JSON emitted by gh pr list for the
// requested field set.
type pullRequestListEntry struct {
	Number    int    `json:"number"`
	Title     string `json:"title"`
	CreatedAt string `json:"createdAt"`
	Author    *struct {
		Login string `json:"login"`
	} `json:"author"`
}

// ListOpenPullRequests enumerates open pull requests for an owner/name slug via
// gh pr list. A non-positive resultLimit falls back to the gh default of 100.
func (client *Client) ListOpenPullRequests(executionContext context.Context, repository string, resultLimit int) ([]PullRequest, error) {
	repositoryIdentifier := strings.TrimSpace(repository)
	if len(repositoryIdentifier) == 0 {
		return nil, InvalidInputError{FieldName: repositoryFieldNameConstant, Message: requiredValueMessageConstant}
	}
	if resultLimit <= 0 {
		resultLimit = pullRequestLimitDefaultValueConstant
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			"pr", "list",
			"--repo", repositoryIdentifier,
			"--limit", strconv.Itoa(resultLimit),
			"--json", pullRequestJSONFieldsConstant,
		},
	}

	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return nil, OperationError{Operation: listPullRequestsOperationNameConstant, Cause: executionError}
	}

	var listedEntries []pullRequestListEntry
	if decodingError := json.Unmarshal([]byte(executionResult.StandardOutput), &listedEntries); decodingError != nil {
		return nil, ResponseDecodingError{Operation: listPullRequestsOperationNameConstant, Cause: decodingError}
	}

	pullRequests := make([]PullRequest, 0, len(listedEntries))
	for _, listedEntry := range listedEntries {
		creationTime, timeParseError := time.Parse(time.RFC3339, listedEntry.CreatedAt)
		if timeParseError != nil {
			return nil, ResponseDecodingError{Operation: listPullRequestsOperationNameConstant, Cause: timeParseError}
		}

		authorLogin := ""
		if listedEntry.Author != nil {
			authorLogin = listedEntry.Author.Login
		}

		pullRequests = append(pullRequests, PullRequest{
			Number:      listedEntry.Number,
			Title:       listedEntry.Title,
			CreatedAt:   creationTime,
			AuthorLogin: authorLogin,
		})
	}

	return pullRequests, nil
}
