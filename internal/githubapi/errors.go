package githubapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v68/github"
)

const (
	operationErrorStatusTemplateConstant  = "%s failed: %d %s"
	operationErrorCauseTemplateConstant   = "%s failed: %v"
	operationErrorMessageTemplateConstant = "%s failed"
	referenceExistsMessageConstant        = "reference already exists"
	errorMessageDetailSeparatorConstant   = ": "
	errorDetailSeparatorConstant          = "; "
)

// OperationName identifies a REST call issued by the adapter.
type OperationName string

// Operation names reported in OperationError.
const (
	OperationGetRepository     OperationName = "GetRepository"
	OperationGetBranch         OperationName = "GetBranch"
	OperationCreateReference   OperationName = "CreateReference"
	OperationGetContents       OperationName = "GetContents"
	OperationCreateFile        OperationName = "CreateFile"
	OperationUpdateFile        OperationName = "UpdateFile"
	OperationCreatePullRequest OperationName = "CreatePullRequest"
	OperationAddLabels         OperationName = "AddLabels"
	OperationAddAssignees      OperationName = "AddAssignees"
	OperationRequestReviewers  OperationName = "RequestReviewers"
)

// ErrReferenceExists reports that a branch reference is already present.
var ErrReferenceExists = errors.New(referenceExistsMessageConstant)

// OperationError describes a failed REST call.
type OperationError struct {
	Operation  OperationName
	StatusCode int
	Message    string
	Cause      error
}

// Error formats the operation with the upstream status and message.
func (operationError OperationError) Error() string {
	switch {
	case operationError.StatusCode > 0:
		return fmt.Sprintf(operationErrorStatusTemplateConstant, operationError.Operation, operationError.StatusCode, operationError.Message)
	case operationError.Cause != nil:
		return fmt.Sprintf(operationErrorCauseTemplateConstant, operationError.Operation, operationError.Cause)
	case len(operationError.Message) > 0:
		return fmt.Sprintf(operationErrorCauseTemplateConstant, operationError.Operation, operationError.Message)
	default:
		return fmt.Sprintf(operationErrorMessageTemplateConstant, operationError.Operation)
	}
}

// Unwrap exposes the underlying client error.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// StatusCodeOf returns the HTTP status carried by err, or zero.
func StatusCodeOf(err error) int {
	var operationError OperationError
	if errors.As(err, &operationError) {
		return operationError.StatusCode
	}
	return 0
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	return StatusCodeOf(err) == http.StatusNotFound
}

// IsUnauthorized reports whether err is a 401 response, meaning the credentials were rejected.
func IsUnauthorized(err error) bool {
	return StatusCodeOf(err) == http.StatusUnauthorized
}

func newOperationError(operation OperationName, response *github.Response, cause error) OperationError {
	operationError := OperationError{Operation: operation, Cause: cause}

	var errorResponse *github.ErrorResponse
	var rateLimitError *github.RateLimitError
	var abuseRateLimitError *github.AbuseRateLimitError
	switch {
	case errors.As(cause, &errorResponse):
		operationError.Message = errorResponseMessage(errorResponse)
		if errorResponse.Response != nil {
			operationError.StatusCode = errorResponse.Response.StatusCode
		}
	case errors.As(cause, &rateLimitError):
		operationError.Message = rateLimitError.Message
		if rateLimitError.Response != nil {
			operationError.StatusCode = rateLimitError.Response.StatusCode
		}
	case errors.As(cause, &abuseRateLimitError):
		operationError.Message = abuseRateLimitError.Message
		if abuseRateLimitError.Response != nil {
			operationError.StatusCode = abuseRateLimitError.Response.StatusCode
		}
	}

	if operationError.StatusCode == 0 && response != nil && response.Response != nil {
		operationError.StatusCode = response.StatusCode
	}
	if len(strings.TrimSpace(operationError.Message)) == 0 && operationError.StatusCode > 0 {
		operationError.Message = http.StatusText(operationError.StatusCode)
	}

	return operationError
}

// errorResponseMessage joins the top-level message with each detailed error message GitHub returned.
func errorResponseMessage(errorResponse *github.ErrorResponse) string {
	detailMessages := make([]string, 0, len(errorResponse.Errors))
	for _, detail := range errorResponse.Errors {
		trimmedDetail := strings.TrimSpace(detail.Message)
		if len(trimmedDetail) > 0 {
			detailMessages = append(detailMessages, trimmedDetail)
		}
	}

	trimmedMessage := strings.TrimSpace(errorResponse.Message)
	switch {
	case len(detailMessages) == 0:
		return trimmedMessage
	case len(trimmedMessage) == 0:
		return strings.Join(detailMessages, errorDetailSeparatorConstant)
	default:
		return trimmedMessage + errorMessageDetailSeparatorConstant + strings.Join(detailMessages, errorDetailSeparatorConstant)
	}
}

func isReferenceExistsResponse(operationError OperationError) bool {
	return operationError.StatusCode == http.StatusUnprocessableEntity &&
		strings.Contains(strings.ToLower(operationError.Message), referenceExistsMessageConstant)
}
