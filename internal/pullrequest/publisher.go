package pullrequest

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/temirov/ghpr/internal/githubapi"
)

const (
	branchPublishFailureTemplateConstant = "Failed to upload files: %v"
	filePublishFailureTemplateConstant   = "Failed to upload %s -> %s: %v"
	updateCommitMessageTemplateConstant  = "Update %s"
	createCommitMessageTemplateConstant  = "Create %s"
	branchCreatedMessageConstant         = "Created branch"
	branchExistsMessageConstant          = "Branch already exists"
	fileUpdatedMessageConstant           = "Updated file"
	fileCreatedMessageConstant           = "Created file"
	headBranchLogFieldConstant           = "head_branch"
	branchSourceLogFieldConstant         = "branch_source"
	commitSHALogFieldConstant            = "commit_sha"
	remotePathLogFieldConstant           = "remote_path"
)

// PublishPlan describes the files to commit onto a head branch.
type PublishPlan struct {
	HeadBranch   string
	BranchSource string
	Files        FileMapping
}

// PublishedFile records one committed file.
type PublishedFile struct {
	LocalPath  string
	RemotePath string
	Updated    bool
}

// FilePublisher ensures a head branch exists and commits local files onto it one at a time.
type FilePublisher struct {
	fileReader *LocalFileReader
	logger     *zap.Logger
}

// NewFilePublisher constructs a FilePublisher.
func NewFilePublisher(fileReader *LocalFileReader, logger *zap.Logger) *FilePublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if fileReader == nil {
		fileReader = NewLocalFileReader("", nil, logger)
	}
	return &FilePublisher{fileReader: fileReader, logger: logger}
}

// Publish creates plan.HeadBranch from the tip of plan.BranchSource unless it already exists, then creates or
// updates each file in order. The first failure stops publication; files already committed stay committed.
func (publisher *FilePublisher) Publish(executionContext context.Context, repository Repository, plan PublishPlan) ([]PublishedFile, error) {
	if branchError := publisher.ensureHeadBranch(executionContext, repository, plan); branchError != nil {
		return nil, branchError
	}

	publishedFiles := make([]PublishedFile, 0, plan.Files.Len())
	for _, entry := range plan.Files.Entries() {
		publishedFile, publishError := publisher.publishFile(executionContext, repository, plan.HeadBranch, entry)
		if publishError != nil {
			return publishedFiles, publishError
		}
		publishedFiles = append(publishedFiles, publishedFile)
	}
	return publishedFiles, nil
}

func (publisher *FilePublisher) ensureHeadBranch(executionContext context.Context, repository Repository, plan PublishPlan) error {
	sourceBranch, branchError := repository.Branch(executionContext, plan.BranchSource)
	if branchError != nil {
		return branchPublishFailure(branchError)
	}

	referenceError := repository.CreateBranchReference(executionContext, plan.HeadBranch, sourceBranch.CommitSHA)
	switch {
	case referenceError == nil:
		publisher.logger.Info(
			branchCreatedMessageConstant,
			zap.String(headBranchLogFieldConstant, plan.HeadBranch),
			zap.String(branchSourceLogFieldConstant, plan.BranchSource),
			zap.String(commitSHALogFieldConstant, sourceBranch.CommitSHA),
		)
		return nil
	case githubapi.IsReferenceExists(referenceError):
		publisher.logger.Info(branchExistsMessageConstant, zap.String(headBranchLogFieldConstant, plan.HeadBranch))
		return nil
	default:
		return branchPublishFailure(referenceError)
	}
}

func (publisher *FilePublisher) publishFile(executionContext context.Context, repository Repository, headBranch string, entry FileMappingEntry) (PublishedFile, error) {
	localFile, validationError := publisher.fileReader.Validate(entry.LocalPath)
	if validationError != nil {
		return PublishedFile{}, StageError{Stage: StagePublishFile, Message: validationError.Error(), Cause: validationError}
	}
	content, readError := publisher.fileReader.ReadContent(localFile)
	if readError != nil {
		return PublishedFile{}, StageError{Stage: StagePublishFile, Message: readError.Error(), Cause: readError}
	}

	lookup, lookupError := repository.LookupFile(executionContext, entry.RemotePath, headBranch)
	if lookupError != nil {
		return PublishedFile{}, filePublishFailure(entry, lookupError)
	}

	change := githubapi.FileChange{
		Path:    entry.RemotePath,
		Branch:  headBranch,
		Content: []byte(content),
	}

	if lookup.Exists {
		change.Message = fmt.Sprintf(updateCommitMessageTemplateConstant, entry.RemotePath)
		change.BlobSHA = lookup.BlobSHA
		if updateError := repository.UpdateFile(executionContext, change); updateError != nil {
			return PublishedFile{}, filePublishFailure(entry, updateError)
		}
		publisher.logger.Info(fileUpdatedMessageConstant, zap.String(localPathLogFieldConstant, entry.LocalPath), zap.String(remotePathLogFieldConstant, entry.RemotePath))
		return PublishedFile{LocalPath: entry.LocalPath, RemotePath: entry.RemotePath, Updated: true}, nil
	}

	change.Message = fmt.Sprintf(createCommitMessageTemplateConstant, entry.RemotePath)
	if createError := repository.CreateFile(executionContext, change); createError != nil {
		return PublishedFile{}, filePublishFailure(entry, createError)
	}
	publisher.logger.Info(fileCreatedMessageConstant, zap.String(localPathLogFieldConstant, entry.LocalPath), zap.String(remotePathLogFieldConstant, entry.RemotePath))
	return PublishedFile{LocalPath: entry.LocalPath, RemotePath: entry.RemotePath}, nil
}

func branchPublishFailure(cause error) error {
	return StageError{Stage: StagePublishBranch, Message: fmt.Sprintf(branchPublishFailureTemplateConstant, cause), Cause: cause}
}

func filePublishFailure(entry FileMappingEntry, cause error) error {
	return StageError{Stage: StagePublishFile, Message: fmt.Sprintf(filePublishFailureTemplateConstant, entry.LocalPath, entry.RemotePath, cause), Cause: cause}
}
