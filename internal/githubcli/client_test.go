package githubcli_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repofleet/internal/execshell"
	"github.com/temirov/repofleet/internal/githubcli"
)

const (
	testRepositoryIdentifierConstant             = "owner/example"
	testListSuccessCaseNameConstant              = "list_success"
	testListMissingAuthorCaseNameConstant        = "list_missing_author"
	testListDecodeFailureCaseNameConstant        = "list_decode_failure"
	testListCommandFailureCaseNameConstant       = "list_command_failure"
	testListRepositoryValidationCaseNameConstant = "list_repository_validation"
	testListPayloadConstant                      = `[{"number":17,"title":"Add retry logic","createdAt":"2026-07-01T12:30:00Z","author":{"login":"alice"}}]`
	testListNoAuthorPayloadConstant              = `[{"number":9,"title":"Orphaned change","createdAt":"2026-06-15T08:00:00Z","author":null}]`
)

type scriptedGitHubCLIExecutor struct {
	scriptedResponse     func(context.Context, execshell.CommandDetails) (execshell.ExecutionResult, error)
	recordedDetails []execshell.CommandDetails
}

func (executor *scriptedGitHubCLIExecutor) ExecuteGitHubCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recordedDetails = append(executor.recordedDetails, details)
	if executor.scriptedResponse == nil {
		return execshell.ExecutionResult{}, nil
	}
	return executor.scriptedResponse(executionContext, details)
}

func TestNewClientRequiresExecutor(testInstance *testing.T) {
	client, creationError := githubcli.NewClient(nil)
	require.ErrorIs(testInstance, creationError, githubcli.ErrExecutorNotConfigured)
	require.Nil(testInstance, client)
}

func TestListOpenPullRequests(testInstance *testing.T) {
	testCases := []struct {
		name        string
		repository  string
		resultLimit int
		executor    *scriptedGitHubCLIExecutor
		expectError bool
		errorType   any
		verify      func(testInstance *testing.T, pullRequests []githubcli.PullRequest, executor *scriptedGitHubCLIExecutor)
	}{
		{
			name:        testListSuccessCaseNameConstant,
			repository:  testRepositoryIdentifierConstant,
			resultLimit: 25,
			executor: &scriptedGitHubCLIExecutor{
				scriptedResponse: func(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
					return execshell.ExecutionResult{StandardOutput: testListPayloadConstant}, nil
				},
			},
			verify: func(testInstance *testing.T, pullRequests []githubcli.PullRequest, executor *scriptedGitHubCLIExecutor) {
				require.Len(testInstance, pullRequests, 1)
				require.Equal(testInstance, 17, pullRequests[0].Number)
				require.Equal(testInstance, "Add retry logic", pullRequests[0].Title)
				require.Equal(testInstance, "alice", pullRequests[0].AuthorLogin)
				require.Equal(testInstance, time.Date(2026, time.July, 1, 12, 30, 0, 0, time.UTC), pullRequests[0].CreatedAt)
				require.Len(testInstance, executor.recordedDetails, 1)
				require.Equal(testInstance, []string{"pr", "list", "--repo", testRepositoryIdentifierConstant, "--limit", "25", "--json", "title,number,createdAt,author"}, executor.recordedDetails[0].Arguments)
			},
		},
		{
			name:       testListMissingAuthorCaseNameConstant,
			repository: testRepositoryIdentifierConstant,
			executor: &scriptedGitHubCLIExecutor{
				scriptedResponse: func(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
					return execshell.ExecutionResult{StandardOutput: testListNoAuthorPayloadConstant}, nil
				},
			},
			verify: func(testInstance *testing.T, pullRequests []githubcli.PullRequest, executor *scriptedGitHubCLIExecutor) {
				require.Len(testInstance, pullRequests, 1)
				require.Empty(testInstance, pullRequests[0].AuthorLogin)
				require.Equal(testInstance, []string{"pr", "list", "--repo", testRepositoryIdentifierConstant, "--limit", "100", "--json", "title,number,createdAt,author"}, executor.recordedDetails[0].Arguments)
			},
		},
		{
			name:       testListDecodeFailureCaseNameConstant,
			repository: testRepositoryIdentifierConstant,
			executor: &scriptedGitHubCLIExecutor{
				scriptedResponse: func(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
					return execshell.ExecutionResult{StandardOutput: "not-json"}, nil
				},
			},
			expectError: true,
			errorType:   githubcli.ResponseDecodingError{},
		},
		{
			name:       testListCommandFailureCaseNameConstant,
			repository: testRepositoryIdentifierConstant,
			executor: &scriptedGitHubCLIExecutor{
				scriptedResponse: func(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
					return execshell.ExecutionResult{}, errors.New("gh unavailable")
				},
			},
			expectError: true,
			errorType:   githubcli.OperationError{},
		},
		{
			name:        testListRepositoryValidationCaseNameConstant,
			repository:  "   ",
			executor:    &scriptedGitHubCLIExecutor{},
			expectError: true,
			errorType:   githubcli.InvalidInputError{},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			client, creationError := githubcli.NewClient(testCase.executor)
			require.NoError(testInstance, creationError)

			pullRequests, listError := client.ListOpenPullRequests(context.Background(), testCase.repository, testCase.resultLimit)
			if testCase.expectError {
				require.Error(testInstance, listError)
				require.IsType(testInstance, testCase.errorType, listError)
				return
			}

			require.NoError(testInstance, listError)
			if testCase.verify != nil {
				testCase.verify(testInstance, pullRequests, testCase.executor)
			}
		})
	}
}
