package githubapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/google/go-github/v68/github"
)

const (
	httpClientMissingMessageConstant          = "http client must be provided"
	enterpriseConfigurationErrorTemplate      = "invalid GitHub API base URL %q: %w"
	repositoryOwnerMissingMessageConstant     = "repository owner must be provided"
	repositoryNameMissingMessageConstant      = "repository name must be provided"
	repositoryFullNameTemplateConstant        = "%s/%s"
	branchReferencePrefixConstant             = "refs/heads/"
	branchPathTemplateConstant                = "repos/%v/%v/branches/%v"
	directoryContentMessageTemplateConstant   = "%s is a directory"
	missingContentMessageTemplateConstant     = "%s has no content metadata"
	missingCommitMessageTemplateConstant      = "branch %s has no commit"
	missingPullRequestMessageTemplateConstant = "pull request response for %s lacks a number"
	referenceExistsWrapTemplateConstant       = "%w: %w"
)

var (
	// ErrHTTPClientMissing indicates NewClient was called without an HTTP client.
	ErrHTTPClientMissing = errors.New(httpClientMissingMessageConstant)

	// ErrRepositoryOwnerMissing indicates an empty repository owner.
	ErrRepositoryOwnerMissing = errors.New(repositoryOwnerMissingMessageConstant)

	// ErrRepositoryNameMissing indicates an empty repository name.
	ErrRepositoryNameMissing = errors.New(repositoryNameMissingMessageConstant)
)

// ClientOptions configures the REST endpoint.
type ClientOptions struct {
	// BaseURL selects a GitHub Enterprise Server API root; empty targets github.com.
	BaseURL string
	// OnClose runs once when the client is closed.
	OnClose func()
}

// Client issues REST calls on behalf of one authenticated installation.
type Client struct {
	restClient *github.Client
	httpClient *http.Client
	onClose    func()
	closeOnce  sync.Once
}

// NewClient wraps an authenticated HTTP client.
func NewClient(httpClient *http.Client, options ClientOptions) (*Client, error) {
	if httpClient == nil {
		return nil, ErrHTTPClientMissing
	}

	restClient := github.NewClient(httpClient)
	trimmedBaseURL := strings.TrimSpace(options.BaseURL)
	if len(trimmedBaseURL) > 0 {
		enterpriseClient, enterpriseError := restClient.WithEnterpriseURLs(trimmedBaseURL, trimmedBaseURL)
		if enterpriseError != nil {
			return nil, fmt.Errorf(enterpriseConfigurationErrorTemplate, trimmedBaseURL, enterpriseError)
		}
		restClient = enterpriseClient
	}

	return &Client{restClient: restClient, httpClient: httpClient, onClose: options.OnClose}, nil
}

// Close releases idle connections held by the transport. Subsequent calls are no-ops.
func (client *Client) Close() {
	if client == nil {
		return
	}
	client.closeOnce.Do(func() {
		client.httpClient.CloseIdleConnections()
		if client.onClose != nil {
			client.onClose()
		}
	})
}

// Repository resolves owner/name and returns a handle for further calls.
func (client *Client) Repository(executionContext context.Context, owner string, name string) (*Repository, error) {
	trimmedOwner := strings.TrimSpace(owner)
	if len(trimmedOwner) == 0 {
		return nil, ErrRepositoryOwnerMissing
	}
	trimmedName := strings.TrimSpace(name)
	if len(trimmedName) == 0 {
		return nil, ErrRepositoryNameMissing
	}

	remoteRepository, response, getError := client.restClient.Repositories.Get(executionContext, trimmedOwner, trimmedName)
	if getError != nil {
		return nil, newOperationError(OperationGetRepository, response, getError)
	}

	fullName := remoteRepository.GetFullName()
	if len(fullName) == 0 {
		fullName = fmt.Sprintf(repositoryFullNameTemplateConstant, trimmedOwner, trimmedName)
	}

	return &Repository{
		restClient: client.restClient,
		owner:      trimmedOwner,
		name:       trimmedName,
		fullName:   fullName,
	}, nil
}
