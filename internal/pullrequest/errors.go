package pullrequest

import (
	"errors"
	"fmt"
)

const (
	sessionOpenerMissingMessageConstant = "session opener not configured"
	fileNotFoundTemplateConstant        = "File not found: %s"
	pathNotFileTemplateConstant         = "Path is not a file: %s"
	fileTooLargeTemplateConstant        = "File too large: %s (%d bytes). Maximum size is %d bytes."
	fileUnreadableTemplateConstant      = "Failed to read file '%s': %v"
	invalidPathTemplateConstant         = "Invalid file path '%s': %v"
	stageErrorTemplateConstant          = "%s: %v"
)

// ErrSessionOpenerMissing indicates that the service was built without a way to authenticate.
var ErrSessionOpenerMissing = errors.New(sessionOpenerMissingMessageConstant)

// InvalidArgumentError reports malformed invocation input detected before any network call.
type InvalidArgumentError struct {
	Field   string
	Value   string
	Message string
}

// Error returns the user-facing message.
func (argumentError InvalidArgumentError) Error() string {
	return argumentError.Message
}

// LocalFileErrorKind classifies local file validation failures.
type LocalFileErrorKind string

// Local file failure kinds.
const (
	LocalFileNotFound   LocalFileErrorKind = "not_found"
	LocalFileNotAFile   LocalFileErrorKind = "not_a_file"
	LocalFileTooLarge   LocalFileErrorKind = "too_large"
	LocalFileUnreadable LocalFileErrorKind = "unreadable"
)

// LocalFileError reports a local source file that cannot be published.
type LocalFileError struct {
	Path  string
	Kind  LocalFileErrorKind
	Size  int64
	Cause error
}

// Error returns the user-facing message for the failure kind.
func (fileError LocalFileError) Error() string {
	switch fileError.Kind {
	case LocalFileNotFound:
		return fmt.Sprintf(fileNotFoundTemplateConstant, fileError.Path)
	case LocalFileNotAFile:
		return fmt.Sprintf(pathNotFileTemplateConstant, fileError.Path)
	case LocalFileTooLarge:
		return fmt.Sprintf(fileTooLargeTemplateConstant, fileError.Path, fileError.Size, MaximumFileSizeBytes)
	case LocalFileUnreadable:
		return fmt.Sprintf(fileUnreadableTemplateConstant, fileError.Path, fileError.Cause)
	default:
		return fmt.Sprintf(invalidPathTemplateConstant, fileError.Path, fileError.Cause)
	}
}

// Unwrap exposes the underlying filesystem error, if any.
func (fileError LocalFileError) Unwrap() error {
	return fileError.Cause
}

// Stage names a hard-fail step of the workflow.
type Stage string

// Workflow stages that abort the run on failure.
const (
	StageValidation        Stage = "validation"
	StageAuthentication    Stage = "authentication"
	StageRepository        Stage = "repository"
	StageBaseBranch        Stage = "base_branch"
	StagePublishBranch     Stage = "publish_branch"
	StagePublishFile       Stage = "publish_file"
	StageCreatePullRequest Stage = "create_pull_request"
)

// StageError carries the message printed for the stage that aborted the run.
type StageError struct {
	Stage   Stage
	Message string
	Cause   error
}

// Error returns the user-facing message.
func (stageError StageError) Error() string {
	if len(stageError.Message) > 0 {
		return stageError.Message
	}
	return fmt.Sprintf(stageErrorTemplateConstant, stageError.Stage, stageError.Cause)
}

// Unwrap exposes the underlying failure.
func (stageError StageError) Unwrap() error {
	return stageError.Cause
}
