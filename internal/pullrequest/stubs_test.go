package pullrequest_test

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/temirov/ghpr/internal/githubapi"
	"github.com/temirov/ghpr/internal/githubauth"
	"github.com/temirov/ghpr/internal/pullrequest"
	"github.com/temirov/ghpr/internal/ui"
)

const (
	callOpenConstant              = "open"
	callCloseConstant             = "close"
	callCreatePullRequestConstant = "create_pull_request"
	testPullRequestURLConstant    = "https://github.com/OWASP/Nest/pull/123"
	testPullRequestNumberConstant = 123
)

type callRecorder struct {
	calls []string
}

func (recorder *callRecorder) record(format string, arguments ...any) {
	recorder.calls = append(recorder.calls, fmt.Sprintf(format, arguments...))
}

type stubSessionOpener struct {
	recorder              *callRecorder
	session               *stubSession
	openError             error
	receivedConfiguration githubauth.Configuration
}

func (opener *stubSessionOpener) Open(_ context.Context, configuration githubauth.Configuration) (pullrequest.Session, error) {
	opener.recorder.record(callOpenConstant)
	opener.receivedConfiguration = configuration
	if opener.openError != nil {
		return nil, opener.openError
	}
	return opener.session, nil
}

type stubSession struct {
	recorder        *callRecorder
	repository      *stubRepository
	repositoryError error
	closeCount      int
}

func (session *stubSession) Repository(_ context.Context, owner string, name string) (pullrequest.Repository, error) {
	session.recorder.record("repository %s/%s", owner, name)
	if session.repositoryError != nil {
		return nil, session.repositoryError
	}
	return session.repository, nil
}

func (session *stubSession) Close() {
	session.closeCount++
	session.recorder.record(callCloseConstant)
}

type stubRepository struct {
	recorder               *callRecorder
	branchErrors           map[string]error
	referenceError         error
	existingFiles          map[string]string
	lookupErrors           map[string]error
	writeErrors            map[string]error
	createPullRequestError error
	pullRequest            *stubPullRequest
	fileChanges            []githubapi.FileChange
	drafts                 []githubapi.PullRequestDraft
}

func (repository *stubRepository) FullName() string {
	return "OWASP/Nest"
}

func (repository *stubRepository) Branch(_ context.Context, branchName string) (githubapi.Branch, error) {
	repository.recorder.record("branch %s", branchName)
	if branchError, exists := repository.branchErrors[branchName]; exists {
		return githubapi.Branch{}, branchError
	}
	return githubapi.Branch{Name: branchName, CommitSHA: "sha-" + branchName}, nil
}

func (repository *stubRepository) CreateBranchReference(_ context.Context, branchName string, commitSHA string) error {
	repository.recorder.record("create_reference %s@%s", branchName, commitSHA)
	return repository.referenceError
}

func (repository *stubRepository) LookupFile(_ context.Context, path string, ref string) (githubapi.FileLookup, error) {
	repository.recorder.record("lookup %s@%s", path, ref)
	if lookupError, exists := repository.lookupErrors[path]; exists {
		return githubapi.FileLookup{}, lookupError
	}
	if blobSHA, exists := repository.existingFiles[path]; exists {
		return githubapi.FileLookup{Exists: true, BlobSHA: blobSHA}, nil
	}
	return githubapi.FileLookup{}, nil
}

func (repository *stubRepository) CreateFile(_ context.Context, change githubapi.FileChange) error {
	repository.recorder.record("create_file %s", change.Path)
	repository.fileChanges = append(repository.fileChanges, change)
	return repository.writeErrors[change.Path]
}

func (repository *stubRepository) UpdateFile(_ context.Context, change githubapi.FileChange) error {
	repository.recorder.record("update_file %s", change.Path)
	repository.fileChanges = append(repository.fileChanges, change)
	return repository.writeErrors[change.Path]
}

func (repository *stubRepository) CreatePullRequest(_ context.Context, draft githubapi.PullRequestDraft) (pullrequest.PullRequest, error) {
	repository.recorder.record(callCreatePullRequestConstant)
	repository.drafts = append(repository.drafts, draft)
	if repository.createPullRequestError != nil {
		return nil, repository.createPullRequestError
	}
	return repository.pullRequest, nil
}

type stubPullRequest struct {
	recorder       *callRecorder
	labelsError    error
	assigneesError error
	reviewersError error
}

func (pullRequest *stubPullRequest) Number() int {
	return testPullRequestNumberConstant
}

func (pullRequest *stubPullRequest) HTMLURL() string {
	return testPullRequestURLConstant
}

func (pullRequest *stubPullRequest) AddLabels(_ context.Context, labels []string) error {
	pullRequest.recorder.record("add_labels %s", strings.Join(labels, ","))
	return pullRequest.labelsError
}

func (pullRequest *stubPullRequest) AddAssignees(_ context.Context, assignees []string) error {
	pullRequest.recorder.record("add_assignees %s", strings.Join(assignees, ","))
	return pullRequest.assigneesError
}

func (pullRequest *stubPullRequest) RequestReviewers(_ context.Context, reviewers []string) error {
	pullRequest.recorder.record("request_reviewers %s", strings.Join(reviewers, ","))
	return pullRequest.reviewersError
}

type workflowFixture struct {
	recorder     *callRecorder
	opener       *stubSessionOpener
	session      *stubSession
	repository   *stubRepository
	pullRequest  *stubPullRequest
	outputBuffer *bytes.Buffer
	errorBuffer  *bytes.Buffer
	printer      *ui.DiagnosticPrinter
}

func newWorkflowFixture(testInstance *testing.T) *workflowFixture {
	testInstance.Helper()
	testInstance.Setenv("NO_COLOR", "1")
	testInstance.Setenv("CLICOLOR_FORCE", "")

	recorder := &callRecorder{}
	pullRequest := &stubPullRequest{recorder: recorder}
	repository := &stubRepository{recorder: recorder, pullRequest: pullRequest}
	session := &stubSession{recorder: recorder, repository: repository}
	outputBuffer := &bytes.Buffer{}
	errorBuffer := &bytes.Buffer{}

	return &workflowFixture{
		recorder:     recorder,
		opener:       &stubSessionOpener{recorder: recorder, session: session},
		session:      session,
		repository:   repository,
		pullRequest:  pullRequest,
		outputBuffer: outputBuffer,
		errorBuffer:  errorBuffer,
		printer:      ui.NewDiagnosticPrinter(outputBuffer, errorBuffer),
	}
}
