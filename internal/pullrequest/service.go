package pullrequest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/ghpr/internal/githubapi"
	"github.com/temirov/ghpr/internal/githubauth"
	"github.com/temirov/ghpr/internal/ui"
)

const (
	authenticationFailedMessageConstant      = "GitHub authentication failed. Please check your GitHub App configuration."
	repositoryAccessFailureTemplateConstant  = "Failed to access repository %s: %v"
	baseBranchMissingTemplateConstant        = "Base branch '%s' not found: %v"
	createPullRequestFailureTemplateConstant = "Failed to create Pull Request: %v"
	pullRequestCreatedTemplateConstant       = "Successfully created Pull Request: %s"
	sessionOpenedMessageConstant             = "Successfully authenticated with GitHub"
	authenticationRejectedMessageConstant    = "GitHub authentication rejected"
	repositoryFoundMessageConstant           = "Found repository"
	baseBranchFoundMessageConstant           = "Base branch exists"
	branchSourceDiffersMessageConstant       = "head branch will be created from a branch other than the base branch"
	pullRequestCreatedMessageConstant        = "Created Pull Request"
	dryRunCompletedMessageConstant           = "dry run completed"
	repositoryLogFieldConstant               = "repository"
	baseBranchLogFieldConstant               = "base_branch"
	pullRequestURLLogFieldConstant           = "pull_request_url"
)

// Options captures one create-pr invocation. List and mapping fields hold the raw comma-separated text.
type Options struct {
	Repository     string
	Title          string
	Body           string
	BaseBranch     string
	HeadBranch     string
	BranchSource   string
	Draft          bool
	Files          string
	Labels         string
	Assignees      string
	Reviewers      string
	DryRun         bool
	Authentication githubauth.Configuration
}

// Result reports what a run did.
type Result struct {
	DryRun            bool
	PullRequestNumber int
	PullRequestURL    string
	PublishedFiles    []PublishedFile
	Warnings          []string
}

// ServiceDependencies describes the collaborators of Service.
type ServiceDependencies struct {
	Logger        *zap.Logger
	SessionOpener SessionOpener
	Printer       *ui.DiagnosticPrinter
	FileReader    *LocalFileReader
}

// Service runs the create-pr workflow.
type Service struct {
	logger        *zap.Logger
	sessionOpener SessionOpener
	printer       *ui.DiagnosticPrinter
	fileReader    *LocalFileReader
	publisher     *FilePublisher
	enricher      *PullRequestEnricher
}

type validatedRequest struct {
	options    Options
	repository RepositoryIdentifier
	files      FileMapping
	enrichment Enrichment
}

// NewService constructs a Service.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.SessionOpener == nil {
		return nil, ErrSessionOpenerMissing
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	printer := dependencies.Printer
	if printer == nil {
		printer = ui.NewDiagnosticPrinter(nil, nil)
	}
	fileReader := dependencies.FileReader
	if fileReader == nil {
		fileReader = NewLocalFileReader("", nil, logger)
	}

	return &Service{
		logger:        logger,
		sessionOpener: dependencies.SessionOpener,
		printer:       printer,
		fileReader:    fileReader,
		publisher:     NewFilePublisher(fileReader, logger),
		enricher:      NewPullRequestEnricher(printer, logger),
	}, nil
}

// Run executes the workflow. Failures that abort the run are returned as StageError; the session is always
// closed before Run returns.
func (service *Service) Run(executionContext context.Context, options Options) (Result, error) {
	request, validationError := validateOptions(options)
	if validationError != nil {
		return Result{}, StageError{Stage: StageValidation, Message: validationError.Error(), Cause: validationError}
	}

	options = request.options

	session, openError := service.sessionOpener.Open(executionContext, options.Authentication)
	if openError != nil {
		if isAuthenticationFailure(openError) {
			return Result{}, service.authenticationFailure(openError)
		}
		return Result{}, openError
	}
	defer session.Close()
	service.logger.Info(sessionOpenedMessageConstant)

	repository, repositoryError := session.Repository(executionContext, request.repository.Owner, request.repository.Name)
	if repositoryError != nil {
		return Result{}, service.remoteFailure(StageRepository, fmt.Sprintf(repositoryAccessFailureTemplateConstant, request.repository, repositoryError), repositoryError)
	}
	service.logger.Info(repositoryFoundMessageConstant, zap.String(repositoryLogFieldConstant, repository.FullName()))

	if _, branchError := repository.Branch(executionContext, options.BaseBranch); branchError != nil {
		return Result{}, service.remoteFailure(StageBaseBranch, fmt.Sprintf(baseBranchMissingTemplateConstant, options.BaseBranch, branchError), branchError)
	}
	service.logger.Info(baseBranchFoundMessageConstant, zap.String(baseBranchLogFieldConstant, options.BaseBranch))

	if options.DryRun {
		dryRunReporter{printer: service.printer, fileReader: service.fileReader}.report(request)
		service.logger.Info(dryRunCompletedMessageConstant, zap.String(repositoryLogFieldConstant, repository.FullName()))
		return Result{DryRun: true}, nil
	}

	result := Result{}
	if !request.files.Empty() {
		if options.BranchSource != options.BaseBranch {
			service.logger.Warn(
				branchSourceDiffersMessageConstant,
				zap.String(branchSourceLogFieldConstant, options.BranchSource),
				zap.String(baseBranchLogFieldConstant, options.BaseBranch),
			)
		}
		publishedFiles, publishError := service.publisher.Publish(executionContext, repository, PublishPlan{
			HeadBranch:   options.HeadBranch,
			BranchSource: options.BranchSource,
			Files:        request.files,
		})
		result.PublishedFiles = publishedFiles
		if publishError != nil {
			return result, service.translateStageFailure(publishError)
		}
	}

	pullRequest, createError := repository.CreatePullRequest(executionContext, githubapi.PullRequestDraft{
		Title:      options.Title,
		Body:       options.Body,
		BaseBranch: options.BaseBranch,
		HeadBranch: options.HeadBranch,
		Draft:      options.Draft,
	})
	if createError != nil {
		return result, service.remoteFailure(StageCreatePullRequest, fmt.Sprintf(createPullRequestFailureTemplateConstant, createError), createError)
	}
	result.PullRequestNumber = pullRequest.Number()
	result.PullRequestURL = pullRequest.HTMLURL()
	service.logger.Info(
		pullRequestCreatedMessageConstant,
		zap.Int(pullRequestNumberLogFieldConstant, result.PullRequestNumber),
		zap.String(pullRequestURLLogFieldConstant, result.PullRequestURL),
	)

	result.Warnings = service.enricher.Enrich(executionContext, pullRequest, request.enrichment)

	service.printer.Success(fmt.Sprintf(pullRequestCreatedTemplateConstant, result.PullRequestURL))
	return result, nil
}

func validateOptions(options Options) (validatedRequest, error) {
	repository, repositoryError := ParseRepositoryIdentifier(options.Repository)
	if repositoryError != nil {
		return validatedRequest{}, repositoryError
	}
	files, filesError := ParseFileMapping(options.Files)
	if filesError != nil {
		return validatedRequest{}, filesError
	}
	if len(strings.TrimSpace(options.BaseBranch)) == 0 {
		options.BaseBranch = defaultBranchNameConstant
	}
	if len(strings.TrimSpace(options.BranchSource)) == 0 {
		options.BranchSource = defaultBranchNameConstant
	}
	return validatedRequest{
		options:    options,
		repository: repository,
		files:      files,
		enrichment: Enrichment{
			Labels:    ParseList(options.Labels),
			Assignees: ParseList(options.Assignees),
			Reviewers: ParseList(options.Reviewers),
		},
	}, nil
}

func (service *Service) remoteFailure(stage Stage, message string, cause error) error {
	if isAuthenticationFailure(cause) {
		return service.authenticationFailure(cause)
	}
	return StageError{Stage: stage, Message: message, Cause: cause}
}

func (service *Service) translateStageFailure(failure error) error {
	var stageError StageError
	if errors.As(failure, &stageError) && isAuthenticationFailure(stageError.Cause) {
		return service.authenticationFailure(stageError.Cause)
	}
	return failure
}

func (service *Service) authenticationFailure(cause error) error {
	service.logger.Error(authenticationRejectedMessageConstant, zap.Error(cause))
	return StageError{Stage: StageAuthentication, Message: authenticationFailedMessageConstant, Cause: cause}
}

func isAuthenticationFailure(err error) bool {
	return githubauth.IsAuthenticationError(err) || githubapi.IsUnauthorized(err)
}
