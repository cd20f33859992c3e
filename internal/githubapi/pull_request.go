package githubapi

import (
	"context"

	"github.com/google/go-github/v68/github"
)

// PullRequest is a created pull request. It is never re-fetched.
type PullRequest struct {
	restClient *github.Client
	owner      string
	name       string
	number     int
	htmlURL    string
}

// Number returns the pull request number.
func (pullRequest *PullRequest) Number() int {
	return pullRequest.number
}

// HTMLURL returns the pull request web address.
func (pullRequest *PullRequest) HTMLURL() string {
	return pullRequest.htmlURL
}

// AddLabels attaches all labels in one call.
func (pullRequest *PullRequest) AddLabels(executionContext context.Context, labels []string) error {
	_, response, labelError := pullRequest.restClient.Issues.AddLabelsToIssue(executionContext, pullRequest.owner, pullRequest.name, pullRequest.number, labels)
	if labelError != nil {
		return newOperationError(OperationAddLabels, response, labelError)
	}
	return nil
}

// AddAssignees assigns all users in one call.
func (pullRequest *PullRequest) AddAssignees(executionContext context.Context, assignees []string) error {
	_, response, assigneeError := pullRequest.restClient.Issues.AddAssignees(executionContext, pullRequest.owner, pullRequest.name, pullRequest.number, assignees)
	if assigneeError != nil {
		return newOperationError(OperationAddAssignees, response, assigneeError)
	}
	return nil
}

// RequestReviewers requests reviews from all users in one call.
func (pullRequest *PullRequest) RequestReviewers(executionContext context.Context, reviewers []string) error {
	request := github.ReviewersRequest{Reviewers: reviewers}
	_, response, reviewerError := pullRequest.restClient.PullRequests.RequestReviewers(executionContext, pullRequest.owner, pullRequest.name, pullRequest.number, request)
	if reviewerError != nil {
		return newOperationError(OperationRequestReviewers, response, reviewerError)
	}
	return nil
}
