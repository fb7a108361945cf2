package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is lets document faults match ErrDocumentProcessing without repeating it in the message.
func (e *AppError) Is(target error) bool {
	return e.Code == CodeDocument && target == ErrDocumentProcessing
}

// Error taxonomy. Only ErrSourceNotFound aborts a batch; the rest are
// recorded per document or recovered inside an extractor.
var (
	ErrSourceNotFound     = errors.New("source not found")
	ErrTextUnavailable    = errors.New("no text extracted")
	ErrFieldParse         = errors.New("field parse anomaly")
	ErrDocumentProcessing = errors.New("document processing error")

	ErrInvalidInput = errors.New("invalid input")
	ErrDatabase     = errors.New("database error")
	ErrValidation   = errors.New("validation failed")
)

// Error codes carried by AppError.
const (
	CodeConfig     = "CONFIG_ERROR"
	CodeSource     = "SOURCE_ERROR"
	CodeDocument   = "DOCUMENT_ERROR"
	CodeExport     = "EXPORT_ERROR"
	CodeRepository = "REPOSITORY_ERROR"
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// SourceNotFound reports a missing document collection.
func SourceNotFound(path string) error {
	return NewAppError(CodeSource, fmt.Sprintf("folder %s not found", path), ErrSourceNotFound)
}

// DocumentError wraps a per-document fault so callers can match ErrDocumentProcessing.
func DocumentError(path string, cause error) error {
	return NewAppError(CodeDocument, path, cause)
}

// ErrorDetail is the message shown in an Error record: the cause of a
// document fault, or the error text itself.
func ErrorDetail(err error) string {
	var ae *AppError
	if errors.As(err, &ae) && ae.Code == CodeDocument && ae.Cause != nil {
		return ae.Cause.Error()
	}
	return err.Error()
}
