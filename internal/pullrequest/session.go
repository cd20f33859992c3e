package pullrequest

import (
	"context"

	"github.com/temirov/ghpr/internal/githubapi"
	"github.com/temirov/ghpr/internal/githubauth"
)

// Session is an authenticated connection released once with Close.
type Session interface {
	Repository(executionContext context.Context, owner string, name string) (Repository, error)
	Close()
}

// Repository exposes the repository operations the workflow performs.
type Repository interface {
	FullName() string
	Branch(executionContext context.Context, branchName string) (githubapi.Branch, error)
	CreateBranchReference(executionContext context.Context, branchName string, commitSHA string) error
	LookupFile(executionContext context.Context, path string, ref string) (githubapi.FileLookup, error)
	CreateFile(executionContext context.Context, change githubapi.FileChange) error
	UpdateFile(executionContext context.Context, change githubapi.FileChange) error
	CreatePullRequest(executionContext context.Context, draft githubapi.PullRequestDraft) (PullRequest, error)
}

// PullRequest exposes the mutations applied after creation.
type PullRequest interface {
	Number() int
	HTMLURL() string
	AddLabels(executionContext context.Context, labels []string) error
	AddAssignees(executionContext context.Context, assignees []string) error
	RequestReviewers(executionContext context.Context, reviewers []string) error
}

// SessionOpener authenticates and returns a Session.
type SessionOpener interface {
	Open(executionContext context.Context, configuration githubauth.Configuration) (Session, error)
}

// GitHubSessionOpener opens sessions through a githubauth.Establisher.
type GitHubSessionOpener struct {
	Establisher *githubauth.Establisher
}

// Open authenticates with the configured credentials.
func (opener GitHubSessionOpener) Open(executionContext context.Context, configuration githubauth.Configuration) (Session, error) {
	establisher := opener.Establisher
	if establisher == nil {
		establisher = &githubauth.Establisher{}
	}
	client, establishError := establisher.Establish(executionContext, configuration)
	if establishError != nil {
		return nil, establishError
	}
	return githubSession{client: client}, nil
}

type githubSession struct {
	client *githubapi.Client
}

func (session githubSession) Repository(executionContext context.Context, owner string, name string) (Repository, error) {
	repository, lookupError := session.client.Repository(executionContext, owner, name)
	if lookupError != nil {
		return nil, lookupError
	}
	return githubRepository{Repository: repository}, nil
}

func (session githubSession) Close() {
	session.client.Close()
}

type githubRepository struct {
	*githubapi.Repository
}

func (repository githubRepository) CreatePullRequest(executionContext context.Context, draft githubapi.PullRequestDraft) (PullRequest, error) {
	pullRequest, createError := repository.Repository.CreatePullRequest(executionContext, draft)
	if createError != nil {
		return nil, createError
	}
	return pullRequest, nil
}
