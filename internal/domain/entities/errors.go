package entities

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("version conflict")
	ErrInsufficientStorage = errors.New("insufficient storage")
	ErrTimeout             = errors.New("operation timed out")
	ErrTransactionNotFound = errors.New("transaction not found")
)

// FieldError reports one invalid field by its JSON path, e.g. "services[1].price".
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates every field failure of one document.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// OrNil returns nil when no field failed.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// RecordError is a rejected record of a bulk payload.
type RecordError struct {
	Section string `json:"section"`
	Index   int    `json:"index"`
	ID      string `json:"id,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// ImportSchemaError rejects a whole bulk payload. Nothing from it is applied.
type ImportSchemaError struct {
	Records []RecordError
}

func (e *ImportSchemaError) Error() string {
	if len(e.Records) == 0 {
		return "import rejected"
	}
	first := e.Records[0]
	return fmt.Sprintf("import rejected: %d invalid record(s), first %s[%d] %s: %s",
		len(e.Records), first.Section, first.Index, first.Field, first.Message)
}

// InsufficientStorageError carries the measurement that tripped the disk guard.
type InsufficientStorageError struct {
	FreeBytes    uint64
	MinFreeBytes uint64
}

func (e *InsufficientStorageError) Error() string {
	return fmt.Sprintf("insufficient storage: %d MB free, %d MB required",
		e.FreeBytes/(1024*1024), e.MinFreeBytes/(1024*1024))
}

func (e *InsufficientStorageError) Is(target error) bool { return target == ErrInsufficientStorage }

// ImportConflictError lists payload records whose version clashes with
// stored data. Nothing from the payload is applied.
type ImportConflictError struct {
	Records []RecordError
}

func (e *ImportConflictError) Error() string {
	return fmt.Sprintf("import rejected: %d record(s) conflict with stored versions", len(e.Records))
}

func (e *ImportConflictError) Is(target error) bool { return target == ErrConflict }

// BatchError rejects a whole batch save. Records lists every item that
// failed; nothing from the batch is written.
type BatchError struct {
	Records []RecordError
	Cause   error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("batch rejected: %d item(s) failed: %v", len(e.Records), e.Cause)
}

func (e *BatchError) Unwrap() error { return e.Cause }
