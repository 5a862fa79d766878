package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context, keeping the code of a wrapped AppError
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode wraps err under the given code
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    code,
			Message: appErr.Message,
			Cause:   appErr.Cause,
		}
	}
	return &AppError{
		Code:    code,
		Message: err.Error(),
		Cause:   err,
	}
}

// IsAppError checks if an error is (or wraps) an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// GetCode returns the code of the outermost AppError in the chain, or "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Is reports whether err carries the given code
func Is(err error, code string) bool {
	return err != nil && GetCode(err) == code
}

// UserMessage returns the message meant for the person at the screen:
// the outermost AppError message, without the wrapped cause chain.
func UserMessage(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// Predefined error codes
const (
	CodeConfigInvalid = "CONFIG_INVALID"
	CodeInternalError = "INTERNAL_ERROR"
	CodeInvalidInput  = "INVALID_INPUT"

	// Input validation, recovered by re-prompting
	CodeMutuallyExclusiveInput = "MUTUALLY_EXCLUSIVE_INPUT"
	CodeMissingInput           = "MISSING_INPUT"
	CodeEmptyInput             = "EMPTY_INPUT"
	CodeNoNumericData          = "NO_NUMERIC_DATA"
	CodeFileUnreadable         = "FILE_UNREADABLE"
	CodeInsufficientData       = "INSUFFICIENT_DATA"

	// Remote call failures, surfaced verbatim
	CodeTransport         = "TRANSPORT_ERROR"
	CodeMalformedResponse = "MALFORMED_RESPONSE"

	CodeSubmissionInFlight = "SUBMISSION_IN_FLIGHT"
)

// IsValidation reports whether err is a local input failure rather than a remote one
func IsValidation(err error) bool {
	switch GetCode(err) {
	case CodeMutuallyExclusiveInput, CodeMissingInput, CodeEmptyInput,
		CodeNoNumericData, CodeFileUnreadable, CodeInsufficientData, CodeInvalidInput:
		return true
	}
	return false
}

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

func MutuallyExclusiveInput() *AppError {
	return New(CodeMutuallyExclusiveInput, "Please use only the text field OR upload a CSV file, not both.")
}

func MissingInput() *AppError {
	return New(CodeMissingInput, "Please enter data or select a CSV file.")
}

func EmptyInput() *AppError {
	return New(CodeEmptyInput, "Please enter data or select a CSV file.")
}

func NoNumericData() *AppError {
	return New(CodeNoNumericData, "Could not process the file: no numeric values were found in the file")
}

func FileUnreadable(cause error) *AppError {
	return &AppError{
		Code:    CodeFileUnreadable,
		Message: fmt.Sprintf("Could not process the file: %v", cause),
		Cause:   cause,
	}
}

func InsufficientData(min, got int) *AppError {
	return New(CodeInsufficientData, fmt.Sprintf("At least %d data points are required (got %d).", min, got))
}

func Transport(message string, cause error) *AppError {
	return &AppError{
		Code:    CodeTransport,
		Message: message,
		Cause:   cause,
	}
}

func MalformedResponse(message string, cause error) *AppError {
	return &AppError{
		Code:    CodeMalformedResponse,
		Message: message,
		Cause:   cause,
	}
}

func SubmissionInFlight() *AppError {
	return New(CodeSubmissionInFlight, "An analysis is already running; wait for it to finish.")
}
