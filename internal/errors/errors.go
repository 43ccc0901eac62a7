package errors

import (
	"errors"
	"fmt"
)

// ErrCode represents an error code
type ErrCode string

const (
	ErrCodeInvalidRepositoryURL ErrCode = "INVALID_REPOSITORY_URL"
	ErrCodeRepositoryNotFound   ErrCode = "REPOSITORY_NOT_FOUND"
	ErrCodeNetworkTimeout       ErrCode = "NETWORK_TIMEOUT"
	ErrCodeNetwork              ErrCode = "NETWORK_ERROR"
	ErrCodeInvalidFileFormat    ErrCode = "INVALID_FILE_FORMAT"
	ErrCodeRemoteWrite          ErrCode = "REMOTE_WRITE_ERROR"
	ErrCodeUnsupported          ErrCode = "UNSUPPORTED"
)

// AppError represents an application error
type AppError struct {
	Code    ErrCode
	Message string
	// Body holds the remote response payload for write failures,
	// surfaced verbatim for diagnosis.
	Body string
	Err  error
}

func (e *AppError) Error() string {
	switch {
	case e.Body != "":
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Message, e.Body)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewInvalidRepositoryURL creates an error for input that does not parse as a repository URL
func NewInvalidRepositoryURL(input string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidRepositoryURL,
		Message: fmt.Sprintf("%s is not a URL to a github repository", input),
	}
}

// NewRepositoryNotFound creates an error for a 404-shaped remote response
func NewRepositoryNotFound(repo string) *AppError {
	return &AppError{
		Code:    ErrCodeRepositoryNotFound,
		Message: fmt.Sprintf("could not find github repo %s", repo),
	}
}

// NewNetworkTimeout creates an error for a request that exceeded its deadline
func NewNetworkTimeout(url string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeNetworkTimeout,
		Message: fmt.Sprintf("request to %s timed out", url),
		Err:     err,
	}
}

// NewNetworkError creates an error for a transport failure
func NewNetworkError(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeNetwork,
		Message: message,
		Err:     err,
	}
}

// NewInvalidFileFormat creates an error for a local file that does not parse as an entity collection
func NewInvalidFileFormat(filename string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidFileFormat,
		Message: fmt.Sprintf("%s does not contain an issue collection", filename),
		Err:     err,
	}
}

// NewRemoteWriteError creates an error for a creation call that returned status >= 300.
// The response payload is carried verbatim.
func NewRemoteWriteError(status int, body string) *AppError {
	return &AppError{
		Code:    ErrCodeRemoteWrite,
		Message: fmt.Sprintf("remote returned status %d", status),
		Body:    body,
	}
}

// NewUnsupported creates an error for a declared but unimplemented option
func NewUnsupported(message string) *AppError {
	return &AppError{
		Code:    ErrCodeUnsupported,
		Message: message,
	}
}

// IsInvalidRepositoryURL checks if the error is an invalid repository URL error
func IsInvalidRepositoryURL(err error) bool {
	return hasCode(err, ErrCodeInvalidRepositoryURL)
}

// IsRepositoryNotFound checks if the error is a repository not found error
func IsRepositoryNotFound(err error) bool {
	return hasCode(err, ErrCodeRepositoryNotFound)
}

// IsNetworkTimeout checks if the error is a network timeout error
func IsNetworkTimeout(err error) bool {
	return hasCode(err, ErrCodeNetworkTimeout)
}

// IsInvalidFileFormat checks if the error is an invalid file format error
func IsInvalidFileFormat(err error) bool {
	return hasCode(err, ErrCodeInvalidFileFormat)
}

// IsRemoteWrite checks if the error is a remote write error
func IsRemoteWrite(err error) bool {
	return hasCode(err, ErrCodeRemoteWrite)
}

func hasCode(err error, code ErrCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
