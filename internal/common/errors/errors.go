// Package errors provides standardized error handling for the quiz intake flow.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeAnswerValidationFailed ErrorCode = "ANSWER_VALIDATION_FAILED"
	ErrCodeUnknownQuestion        ErrorCode = "UNKNOWN_QUESTION"

	ErrCodeStorageReadFailed  ErrorCode = "STORAGE_READ_FAILED"
	ErrCodeStorageWriteFailed ErrorCode = "STORAGE_WRITE_FAILED"

	ErrCodeEstimateTimeout         ErrorCode = "ESTIMATE_TIMEOUT"
	ErrCodeEstimateTransportFailed ErrorCode = "ESTIMATE_TRANSPORT_FAILED"
	ErrCodeEstimateResponseInvalid ErrorCode = "ESTIMATE_RESPONSE_INVALID"

	ErrCodeContactSendFailed ErrorCode = "CONTACT_SEND_FAILED"
	ErrCodeContactInvalid    ErrorCode = "CONTACT_INVALID"

	ErrCodeSessionNotFound ErrorCode = "SESSION_NOT_FOUND"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewAnswerValidationFailedError creates a non-retryable validation error.
// The message is the inline text shown next to the rejected step.
func NewAnswerValidationFailedError(questionID, message string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAnswerValidationFailed,
		Message:   message,
		Details:   fmt.Sprintf("questionId: %s", questionID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnknownQuestionError creates a non-retryable error for ids outside the catalog.
func NewUnknownQuestionError(questionID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownQuestion,
		Message:   "Question is not part of the catalog",
		Details:   fmt.Sprintf("questionId: %s", questionID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStorageReadFailedError creates a storage read error. Callers degrade to an
// empty read, so this is only ever logged.
func NewStorageReadFailedError(key string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStorageReadFailed,
		Message:   "Answer store read failed",
		Details:   fmt.Sprintf("key: %s, error: %s", key, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStorageWriteFailedError creates a storage write error. Callers degrade to a
// no-op write, so this is only ever logged.
func NewStorageWriteFailedError(key string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStorageWriteFailed,
		Message:   "Answer store write failed",
		Details:   fmt.Sprintf("key: %s, error: %s", key, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewEstimateTimeoutError creates the timeout error that triggers the silent
// fallback to the local scorer.
func NewEstimateTimeoutError(timeout time.Duration) *StandardError {
	return &StandardError{
		Code:      ErrCodeEstimateTimeout,
		Message:   "Estimation webhook timed out",
		Details:   fmt.Sprintf("timeout: %s", timeout),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewEstimateTransportFailedError creates a retryable transport/server error.
func NewEstimateTransportFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeEstimateTransportFailed,
		Message:   "Estimation webhook request failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewEstimateResponseInvalidError creates a retryable error for a response body
// that does not match the estimate contract.
func NewEstimateResponseInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeEstimateResponseInvalid,
		Message:   "Estimation webhook returned an invalid response",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewContactSendFailedError creates a retryable contact submission error.
func NewContactSendFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeContactSendFailed,
		Message:   "Contact submission failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewContactInvalidError creates a non-retryable contact form validation error.
func NewContactInvalidError(message string) *StandardError {
	return &StandardError{
		Code:      ErrCodeContactInvalid,
		Message:   message,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionNotFoundError creates a non-retryable unknown-session error.
func NewSessionNotFoundError(sessionID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionNotFound,
		Message:   "Quiz session not found",
		Details:   fmt.Sprintf("sessionId: %s", sessionID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// IsRetryable reports whether err carries a retryable StandardError.
func IsRetryable(err error) bool {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Retryable
	}
	return false
}

// CodeOf extracts the error code from err, or "UNKNOWN" for foreign errors.
func CodeOf(err error) ErrorCode {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code
	}
	return "UNKNOWN"
}

// IsTimeout reports whether err is the estimation timeout that selects the
// silent fallback path.
func IsTimeout(err error) bool {
	return CodeOf(err) == ErrCodeEstimateTimeout
}
