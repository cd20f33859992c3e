package githubapi_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/ghpr/internal/githubapi"
)

func TestRepositoryCreatePullRequestAndEnrich(testInstance *testing.T) {
	client := newReplayClient(testInstance, "pull_request", githubapi.ClientOptions{})

	repository, lookupError := client.Repository(context.Background(), testOwnerConstant, testRepositoryNameConstant)
	require.NoError(testInstance, lookupError)

	pullRequest, createError := repository.CreatePullRequest(context.Background(), githubapi.PullRequestDraft{
		Title:      "Test PR",
		Body:       "Test description",
		BaseBranch: testBaseBranchConstant,
		HeadBranch: testHeadBranchConstant,
	})
	require.NoError(testInstance, createError)
	require.Equal(testInstance, 7, pullRequest.Number())
	require.Equal(testInstance, "https://github.com/OWASP/Nest/pull/7", pullRequest.HTMLURL())

	require.NoError(testInstance, pullRequest.AddLabels(context.Background(), []string{"bug", "enhancement"}))
	require.NoError(testInstance, pullRequest.AddAssignees(context.Background(), []string{"user1"}))

	reviewerError := pullRequest.RequestReviewers(context.Background(), []string{"ghost"})
	require.Error(testInstance, reviewerError)
	require.Equal(testInstance, http.StatusUnprocessableEntity, githubapi.StatusCodeOf(reviewerError))

	var operationError githubapi.OperationError
	require.ErrorAs(testInstance, reviewerError, &operationError)
	require.Equal(testInstance, githubapi.OperationRequestReviewers, operationError.Operation)
}

func TestRepositoryCreatePullRequestSurfacesDuplicate(testInstance *testing.T) {
	client := newReplayClient(testInstance, "pull_request", githubapi.ClientOptions{})

	repository, lookupError := client.Repository(context.Background(), testOwnerConstant, "Duplicate")
	require.NoError(testInstance, lookupError)

	pullRequest, createError := repository.CreatePullRequest(context.Background(), githubapi.PullRequestDraft{
		Title:      "Test PR",
		Body:       "Test description",
		BaseBranch: testBaseBranchConstant,
		HeadBranch: testHeadBranchConstant,
	})
	require.Nil(testInstance, pullRequest)
	require.EqualError(testInstance, createError, "CreatePullRequest failed: 422 Validation Failed: A pull request already exists for OWASP:feature/test.")
}
