package ui

import "errors"

// ReportedError marks a failure whose diagnostic has already been printed.
type ReportedError struct {
	Cause error
}

// NewReportedError wraps cause; a nil cause yields nil.
func NewReportedError(cause error) error {
	if cause == nil {
		return nil
	}
	return ReportedError{Cause: cause}
}

// Error returns the wrapped error text.
func (reportedError ReportedError) Error() string {
	if reportedError.Cause == nil {
		return ""
	}
	return reportedError.Cause.Error()
}

// Unwrap exposes the wrapped cause.
func (reportedError ReportedError) Unwrap() error {
	return reportedError.Cause
}

// IsReported reports whether err, or any error it wraps, was already printed.
func IsReported(err error) bool {
	var reportedError ReportedError
	return errors.As(err, &reportedError)
}
