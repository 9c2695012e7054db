// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// eSignature envelope errors
const (
	ErrCodeDocumentReadFailed ErrorCode = "DOCUMENT_READ_FAILED"
	ErrCodeInvalidResumeDate  ErrorCode = "INVALID_RESUME_DATE"

	ErrCodeESignAuthenticationFailed ErrorCode = "ESIGN_AUTHENTICATION_FAILED"
	ErrCodeESignRequestRejected      ErrorCode = "ESIGN_REQUEST_REJECTED"
	ErrCodeESignAPIError             ErrorCode = "ESIGN_API_ERROR"
	ErrCodeESignUnavailable          ErrorCode = "ESIGN_UNAVAILABLE"

	ErrCodeInputParsingFailed ErrorCode = "INPUT_PARSING_FAILED"
	ErrCodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	ErrCodeInternal           ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Cause     error                  `json:"-"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying error to errors.Is / errors.As.
func (e *StandardError) Unwrap() error {
	return e.Cause
}

// WithMetadata sets a metadata key and returns the same error.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	for k, v := range e.ErrorVariables {
		vars[k] = v
	}

	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// NewDocumentReadFailedError wraps a failure to load the document to be signed.
func NewDocumentReadFailedError(path string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDocumentReadFailed,
		Message:   "Document could not be read",
		Details:   fmt.Sprintf("path: %s, error: %s", path, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}

// NewInvalidResumeDateError reports a resume date that could not be parsed.
func NewInvalidResumeDateError(value string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidResumeDate,
		Message:   "Resume date could not be parsed",
		Details:   fmt.Sprintf("resumeDate: %s, error: %s", value, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}

// NewESignAuthenticationFailedError is returned for 401/403 responses.
func NewESignAuthenticationFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeESignAuthenticationFailed,
		Message:   "eSignature API rejected the access token",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}

// NewESignRequestRejectedError is returned for other 4xx responses.
func NewESignRequestRejectedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeESignRequestRejected,
		Message:   "eSignature API rejected the envelope",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}

// NewESignAPIError is returned for 5xx responses.
func NewESignAPIError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeESignAPIError,
		Message:   "eSignature API error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}

// NewESignUnavailableError is returned when the request never got a response.
func NewESignUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeESignUnavailable,
		Message:   "eSignature API unreachable",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}

func NewInputParsingFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInputParsingFailed,
		Message:   "Failed to parse job variables",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}

func NewValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Input validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to BPMN error codes.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeDocumentReadFailed:        "DOCUMENT_READ_FAILED",
	ErrCodeInvalidResumeDate:         "INVALID_RESUME_DATE",
	ErrCodeESignAuthenticationFailed: "ESIGN_AUTHENTICATION_FAILED",
	ErrCodeESignRequestRejected:      "ESIGN_REQUEST_REJECTED",
	ErrCodeESignAPIError:             "ESIGN_API_ERROR",
	ErrCodeESignUnavailable:          "ESIGN_UNAVAILABLE",
	ErrCodeInputParsingFailed:        "INPUT_PARSING_FAILED",
	ErrCodeValidationFailed:          "VALIDATION_FAILED",
}

// GetRetryCount returns the retry count for a code. Envelope submission is
// single-shot, so every code maps to zero and failures go to the process.
func GetRetryCount(code ErrorCode) int {
	return 0
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "AUTHENTICATION"):
		return "AUTH"
	case strings.HasPrefix(codeStr, "ESIGN"):
		return "ESIGN"
	case strings.Contains(codeStr, "DOCUMENT"):
		return "DOCUMENT"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "PARSING"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
