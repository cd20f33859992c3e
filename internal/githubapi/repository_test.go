package githubapi_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/ghpr/internal/githubapi"
)

func TestRepositoryCreateBranchReference(testInstance *testing.T) {
	testCases := []struct {
		name                  string
		repositoryName        string
		expectError           bool
		expectReferenceExists bool
		expectedStatusCode    int
	}{
		{name: "created", repositoryName: testRepositoryNameConstant},
		{name: "already_exists", repositoryName: "Existing", expectError: true, expectReferenceExists: true, expectedStatusCode: http.StatusUnprocessableEntity},
		{name: "forbidden", repositoryName: "Locked", expectError: true, expectedStatusCode: http.StatusForbidden},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			client := newReplayClient(testInstance, "branch_reference", githubapi.ClientOptions{})

			repository, lookupError := client.Repository(context.Background(), testOwnerConstant, testCase.repositoryName)
			require.NoError(testInstance, lookupError)

			createError := repository.CreateBranchReference(context.Background(), testHeadBranchConstant, testCommitSHAConstant)
			if !testCase.expectError {
				require.NoError(testInstance, createError)
				return
			}

			require.Error(testInstance, createError)
			require.Equal(testInstance, testCase.expectReferenceExists, githubapi.IsReferenceExists(createError))
			require.Equal(testInstance, testCase.expectedStatusCode, githubapi.StatusCodeOf(createError))
		})
	}
}

func TestRepositoryLookupFile(testInstance *testing.T) {
	testCases := []struct {
		name           string
		path           string
		expectedLookup githubapi.FileLookup
		expectError    bool
	}{
		{name: "existing_file", path: "test.txt", expectedLookup: githubapi.FileLookup{Exists: true, BlobSHA: "blob123"}},
		{name: "missing_file", path: "new.txt", expectedLookup: githubapi.FileLookup{Exists: false}},
		{name: "directory", path: "docs", expectError: true},
		{name: "server_failure", path: "broken.txt", expectError: true},
		{name: "forbidden_path", path: "../escape.txt", expectError: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			client := newReplayClient(testInstance, "file_contents", githubapi.ClientOptions{})

			repository, lookupError := client.Repository(context.Background(), testOwnerConstant, testRepositoryNameConstant)
			require.NoError(testInstance, lookupError)

			fileLookup, fileLookupError := repository.LookupFile(context.Background(), testCase.path, testHeadBranchConstant)
			if testCase.expectError {
				require.Error(testInstance, fileLookupError)
				require.False(testInstance, githubapi.IsNotFound(fileLookupError))

				var operationError githubapi.OperationError
				require.ErrorAs(testInstance, fileLookupError, &operationError)
				require.Equal(testInstance, githubapi.OperationGetContents, operationError.Operation)
				return
			}

			require.NoError(testInstance, fileLookupError)
			require.Equal(testInstance, testCase.expectedLookup, fileLookup)
		})
	}
}

func TestRepositoryWritesFiles(testInstance *testing.T) {
	client := newReplayClient(testInstance, "file_contents", githubapi.ClientOptions{})

	repository, lookupError := client.Repository(context.Background(), testOwnerConstant, testRepositoryNameConstant)
	require.NoError(testInstance, lookupError)

	createError := repository.CreateFile(context.Background(), githubapi.FileChange{
		Path:    "new.txt",
		Branch:  testHeadBranchConstant,
		Message: "Create new.txt",
		Content: []byte("hello"),
	})
	require.NoError(testInstance, createError)

	updateError := repository.UpdateFile(context.Background(), githubapi.FileChange{
		Path:    "test.txt",
		Branch:  testHeadBranchConstant,
		Message: "Update test.txt",
		Content: []byte("hello"),
		BlobSHA: "blob123",
	})
	require.NoError(testInstance, updateError)

	conflictError := repository.UpdateFile(context.Background(), githubapi.FileChange{
		Path:    "stale.txt",
		Branch:  testHeadBranchConstant,
		Message: "Update stale.txt",
		Content: []byte("hello"),
		BlobSHA: "outdated",
	})
	require.Error(testInstance, conflictError)
	require.Equal(testInstance, http.StatusConflict, githubapi.StatusCodeOf(conflictError))

	var operationError githubapi.OperationError
	require.ErrorAs(testInstance, conflictError, &operationError)
	require.Equal(testInstance, githubapi.OperationUpdateFile, operationError.Operation)
	require.Equal(testInstance, "stale.txt does not match outdated", operationError.Message)
}
