package githubapi_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/ghpr/internal/githubapi"
	"github.com/temirov/ghpr/internal/testsupport"
)

const (
	testOwnerConstant          = "OWASP"
	testRepositoryNameConstant = "Nest"
	testHeadBranchConstant     = "feature/test"
	testBaseBranchConstant     = "main"
	testCommitSHAConstant      = "abc123"
)

func newReplayClient(testInstance *testing.T, cassetteName string, options githubapi.ClientOptions) *githubapi.Client {
	testInstance.Helper()

	httpClient := testsupport.NewReplayHTTPClient(testInstance, testsupport.FixturePath(cassetteName))
	client, clientError := githubapi.NewClient(httpClient, options)
	require.NoError(testInstance, clientError)
	testInstance.Cleanup(client.Close)
	return client
}

func TestNewClientRequiresHTTPClient(testInstance *testing.T) {
	client, clientError := githubapi.NewClient(nil, githubapi.ClientOptions{})
	require.ErrorIs(testInstance, clientError, githubapi.ErrHTTPClientMissing)
	require.Nil(testInstance, client)
}

func TestClientCloseIsIdempotent(testInstance *testing.T) {
	closeCount := 0
	client, clientError := githubapi.NewClient(&http.Client{}, githubapi.ClientOptions{OnClose: func() { closeCount++ }})
	require.NoError(testInstance, clientError)

	client.Close()
	client.Close()
	require.Equal(testInstance, 1, closeCount)

	var nilClient *githubapi.Client
	nilClient.Close()
}

func TestClientRepositoryLookup(testInstance *testing.T) {
	testCases := []struct {
		name               string
		owner              string
		repository         string
		expectedFullName   string
		expectedStatusCode int
		expectUnauthorized bool
		expectedError      error
	}{
		{
			name:             "existing_repository",
			owner:            testOwnerConstant,
			repository:       testRepositoryNameConstant,
			expectedFullName: "OWASP/Nest",
		},
		{
			name:               "missing_repository",
			owner:              testOwnerConstant,
			repository:         "Missing",
			expectedStatusCode: http.StatusNotFound,
		},
		{
			name:               "rejected_credentials",
			owner:              testOwnerConstant,
			repository:         "Private",
			expectedStatusCode: http.StatusUnauthorized,
			expectUnauthorized: true,
		},
		{
			name:          "empty_owner",
			owner:         " ",
			repository:    testRepositoryNameConstant,
			expectedError: githubapi.ErrRepositoryOwnerMissing,
		},
		{
			name:          "empty_name",
			owner:         testOwnerConstant,
			repository:    "",
			expectedError: githubapi.ErrRepositoryNameMissing,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			client := newReplayClient(testInstance, "repository_lookup", githubapi.ClientOptions{})

			repository, lookupError := client.Repository(context.Background(), testCase.owner, testCase.repository)

			switch {
			case testCase.expectedError != nil:
				require.ErrorIs(testInstance, lookupError, testCase.expectedError)
				require.Nil(testInstance, repository)
			case testCase.expectedStatusCode != 0:
				require.Error(testInstance, lookupError)
				require.Nil(testInstance, repository)

				var operationError githubapi.OperationError
				require.ErrorAs(testInstance, lookupError, &operationError)
				require.Equal(testInstance, githubapi.OperationGetRepository, operationError.Operation)
				require.Equal(testInstance, testCase.expectedStatusCode, operationError.StatusCode)
				require.Equal(testInstance, testCase.expectUnauthorized, githubapi.IsUnauthorized(lookupError))
			default:
				require.NoError(testInstance, lookupError)
				require.Equal(testInstance, testCase.expectedFullName, repository.FullName())
			}
		})
	}
}

func TestRepositoryBranch(testInstance *testing.T) {
	client := newReplayClient(testInstance, "repository_lookup", githubapi.ClientOptions{})

	repository, lookupError := client.Repository(context.Background(), testOwnerConstant, testRepositoryNameConstant)
	require.NoError(testInstance, lookupError)

	branch, branchError := repository.Branch(context.Background(), testBaseBranchConstant)
	require.NoError(testInstance, branchError)
	require.Equal(testInstance, githubapi.Branch{Name: testBaseBranchConstant, CommitSHA: testCommitSHAConstant}, branch)

	_, missingError := repository.Branch(context.Background(), "missing")
	require.Error(testInstance, missingError)
	require.True(testInstance, githubapi.IsNotFound(missingError))
	require.EqualError(testInstance, missingError, "GetBranch failed: 404 Branch not found")
}

func TestClientEnterpriseBaseURL(testInstance *testing.T) {
	client := newReplayClient(testInstance, "enterprise", githubapi.ClientOptions{BaseURL: "https://ghe.example.com/"})

	repository, lookupError := client.Repository(context.Background(), "platform", "tooling")
	require.NoError(testInstance, lookupError)
	require.Equal(testInstance, "platform/tooling", repository.FullName())
}
