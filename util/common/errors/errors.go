package errors

import (
	"errors"
	"fmt"
)

// Common errors that can be used across packages
var (
	ErrUnsupportedFormat = errors.New("unsupported repository format")
)

// ValidationError represents an error that occurs during validation
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// FileError represents an error that occurs during file operations
type FileError struct {
	Path    string
	Op      string
	Wrapped error
}

func (e *FileError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s operation failed on %s: %v", e.Op, e.Path, e.Wrapped)
	}
	return fmt.Sprintf("%s operation failed on %s", e.Op, e.Path)
}

func (e *FileError) Unwrap() error {
	return e.Wrapped
}

// NewFileError creates a new FileError
func NewFileError(path, op string, wrapped error) error {
	return &FileError{
		Path:    path,
		Op:      op,
		Wrapped: wrapped,
	}
}

// FetchError is returned when a directory listing cannot be retrieved, either
// because the request failed or because the status was not 2xx.
type FetchError struct {
	URL     string
	Status  int
	Wrapped error
}

func (e *FetchError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("fetch %s failed: %v", e.URL, e.Wrapped)
	}
	return fmt.Sprintf("fetch %s failed: unexpected status code: %d", e.URL, e.Status)
}

func (e *FetchError) Unwrap() error {
	return e.Wrapped
}

// NewFetchError creates a new FetchError
func NewFetchError(url string, status int, wrapped error) error {
	return &FetchError{
		URL:     url,
		Status:  status,
		Wrapped: wrapped,
	}
}

// ParseError is returned when a listing body is not readable HTML.
type ParseError struct {
	URL     string
	Wrapped error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse listing %s: %v", e.URL, e.Wrapped)
}

func (e *ParseError) Unwrap() error {
	return e.Wrapped
}

// NewParseError creates a new ParseError
func NewParseError(url string, wrapped error) error {
	return &ParseError{
		URL:     url,
		Wrapped: wrapped,
	}
}

// TransportError represents a connection level failure talking to a registry
type TransportError struct {
	Op      string
	URL     string
	Wrapped error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Wrapped)
}

func (e *TransportError) Unwrap() error {
	return e.Wrapped
}

// NewTransportError creates a new TransportError
func NewTransportError(op, url string, wrapped error) error {
	return &TransportError{
		Op:      op,
		URL:     url,
		Wrapped: wrapped,
	}
}

// DownloadError represents a failed artifact download from the source registry
type DownloadError struct {
	Path    string
	Status  int
	Wrapped error
}

func (e *DownloadError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("failed to download %s: %v", e.Path, e.Wrapped)
	}
	return fmt.Sprintf("failed to download %s, response code: %d", e.Path, e.Status)
}

func (e *DownloadError) Unwrap() error {
	return e.Wrapped
}

// NewDownloadError creates a new DownloadError
func NewDownloadError(path string, status int, wrapped error) error {
	return &DownloadError{
		Path:    path,
		Status:  status,
		Wrapped: wrapped,
	}
}

// InvalidPathError is returned when a relative path does not have the shape a
// format requires, e.g. a Maven path with fewer than four segments.
type InvalidPathError struct {
	Path    string
	Message string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("invalid path %s: %s", e.Path, e.Message)
}

// NewInvalidPathError creates a new InvalidPathError
func NewInvalidPathError(path, message string) error {
	return &InvalidPathError{
		Path:    path,
		Message: message,
	}
}

// UploadError represents a rejected or failed component upload
type UploadError struct {
	Path    string
	Status  int
	Body    string
	Wrapped error
}

func (e *UploadError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("upload %s failed: %v", e.Path, e.Wrapped)
	}
	if e.Body != "" {
		return fmt.Sprintf("upload %s failed: code: %d, message: %s", e.Path, e.Status, e.Body)
	}
	return fmt.Sprintf("upload %s failed: code: %d", e.Path, e.Status)
}

func (e *UploadError) Unwrap() error {
	return e.Wrapped
}

// NewUploadError creates a new UploadError
func NewUploadError(path string, status int, body string, wrapped error) error {
	return &UploadError{
		Path:    path,
		Status:  status,
		Body:    body,
		Wrapped: wrapped,
	}
}

// Is reports whether target matches err.
// It enables errors.Is() to work with our custom error types.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// It enables errors.As() to work with our custom error types.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
