package githubapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v68/github"
)

// Branch is a named branch and its tip commit.
type Branch struct {
	Name      string
	CommitSHA string
}

// FileLookup is the outcome of a successful content lookup.
// Exists is false when GitHub answered 404 for the path on the requested ref.
type FileLookup struct {
	Exists  bool
	BlobSHA string
}

// FileChange describes a single-file commit on a branch.
type FileChange struct {
	Path    string
	Branch  string
	Message string
	Content []byte
	// BlobSHA must hold the current blob hash when updating an existing file.
	BlobSHA string
}

// PullRequestDraft holds the fields used to open a pull request.
type PullRequestDraft struct {
	Title      string
	Body       string
	BaseBranch string
	HeadBranch string
	Draft      bool
}

// Repository is a resolved repository handle.
type Repository struct {
	restClient *github.Client
	owner      string
	name       string
	fullName   string
}

// FullName returns owner/name as reported by GitHub.
func (repository *Repository) FullName() string {
	return repository.fullName
}

// Branch resolves a branch by name.
// Failures keep GitHub's error message. Renamed branches are followed as redirects.
func (repository *Repository) Branch(executionContext context.Context, branchName string) (Branch, error) {
	branchPath := fmt.Sprintf(branchPathTemplateConstant, repository.owner, repository.name, url.PathEscape(branchName))
	request, requestError := repository.restClient.NewRequest(http.MethodGet, branchPath, nil)
	if requestError != nil {
		return Branch{}, OperationError{Operation: OperationGetBranch, Cause: requestError}
	}

	remoteBranch := &github.Branch{}
	response, branchError := repository.restClient.Do(executionContext, request, remoteBranch)
	if branchError != nil {
		return Branch{}, newOperationError(OperationGetBranch, response, branchError)
	}

	commitSHA := remoteBranch.GetCommit().GetSHA()
	if len(commitSHA) == 0 {
		return Branch{}, OperationError{Operation: OperationGetBranch, Message: fmt.Sprintf(missingCommitMessageTemplateConstant, branchName)}
	}

	return Branch{Name: remoteBranch.GetName(), CommitSHA: commitSHA}, nil
}

// CreateBranchReference creates refs/heads/<branchName> at commitSHA.
// It returns ErrReferenceExists, wrapped with the response details, when the branch already exists.
func (repository *Repository) CreateBranchReference(executionContext context.Context, branchName string, commitSHA string) error {
	reference := &github.Reference{
		Ref:    github.Ptr(branchReferencePrefixConstant + strings.TrimPrefix(branchName, branchReferencePrefixConstant)),
		Object: &github.GitObject{SHA: github.Ptr(commitSHA)},
	}

	_, response, createError := repository.restClient.Git.CreateRef(executionContext, repository.owner, repository.name, reference)
	if createError == nil {
		return nil
	}

	operationError := newOperationError(OperationCreateReference, response, createError)
	if isReferenceExistsResponse(operationError) {
		return fmt.Errorf(referenceExistsWrapTemplateConstant, ErrReferenceExists, operationError)
	}
	return operationError
}

// LookupFile reports whether path exists on ref and, if so, its blob hash.
// A 404 yields a FileLookup with Exists false; other failures, and directories, are errors.
func (repository *Repository) LookupFile(executionContext context.Context, path string, ref string) (FileLookup, error) {
	options := &github.RepositoryContentGetOptions{Ref: ref}
	fileContent, directoryContent, response, lookupError := repository.restClient.Repositories.GetContents(executionContext, repository.owner, repository.name, path, options)
	if lookupError != nil {
		operationError := newOperationError(OperationGetContents, response, lookupError)
		if IsNotFound(operationError) {
			return FileLookup{Exists: false}, nil
		}
		return FileLookup{}, operationError
	}

	if fileContent == nil {
		message := fmt.Sprintf(missingContentMessageTemplateConstant, path)
		if directoryContent != nil {
			message = fmt.Sprintf(directoryContentMessageTemplateConstant, path)
		}
		return FileLookup{}, OperationError{Operation: OperationGetContents, Message: message}
	}

	return FileLookup{Exists: true, BlobSHA: fileContent.GetSHA()}, nil
}

// CreateFile commits a new file.
func (repository *Repository) CreateFile(executionContext context.Context, change FileChange) error {
	options := &github.RepositoryContentFileOptions{
		Message: github.Ptr(change.Message),
		Content: change.Content,
		Branch:  github.Ptr(change.Branch),
	}

	_, response, createError := repository.restClient.Repositories.CreateFile(executionContext, repository.owner, repository.name, change.Path, options)
	if createError != nil {
		return newOperationError(OperationCreateFile, response, createError)
	}
	return nil
}

// UpdateFile commits new content over the blob identified by change.BlobSHA.
func (repository *Repository) UpdateFile(executionContext context.Context, change FileChange) error {
	options := &github.RepositoryContentFileOptions{
		Message: github.Ptr(change.Message),
		Content: change.Content,
		SHA:     github.Ptr(change.BlobSHA),
		Branch:  github.Ptr(change.Branch),
	}

	_, response, updateError := repository.restClient.Repositories.UpdateFile(executionContext, repository.owner, repository.name, change.Path, options)
	if updateError != nil {
		return newOperationError(OperationUpdateFile, response, updateError)
	}
	return nil
}

// CreatePullRequest opens a pull request from draft.HeadBranch into draft.BaseBranch.
func (repository *Repository) CreatePullRequest(executionContext context.Context, draft PullRequestDraft) (*PullRequest, error) {
	newPullRequest := &github.NewPullRequest{
		Title: github.Ptr(draft.Title),
		Head:  github.Ptr(draft.HeadBranch),
		Base:  github.Ptr(draft.BaseBranch),
		Body:  github.Ptr(draft.Body),
		Draft: github.Ptr(draft.Draft),
	}

	createdPullRequest, response, createError := repository.restClient.PullRequests.Create(executionContext, repository.owner, repository.name, newPullRequest)
	if createError != nil {
		return nil, newOperationError(OperationCreatePullRequest, response, createError)
	}
	if createdPullRequest.GetNumber() == 0 {
		return nil, OperationError{Operation: OperationCreatePullRequest, Message: fmt.Sprintf(missingPullRequestMessageTemplateConstant, repository.fullName)}
	}

	return &PullRequest{
		restClient: repository.restClient,
		owner:      repository.owner,
		name:       repository.name,
		number:     createdPullRequest.GetNumber(),
		htmlURL:    createdPullRequest.GetHTMLURL(),
	}, nil
}

// IsReferenceExists reports whether err came from creating a branch that already exists.
func IsReferenceExists(err error) bool {
	return errors.Is(err, ErrReferenceExists)
}
