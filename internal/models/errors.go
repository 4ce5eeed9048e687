package models

import "fmt"

// ErrorKind classifies a pipeline failure at the point it occurs.
type ErrorKind string

const (
	ErrKindValidation         ErrorKind = "validation"
	ErrKindPriceConsistency   ErrorKind = "price_consistency"
	ErrKindDocumentGeneration ErrorKind = "document_generation"
	ErrKindPersistence        ErrorKind = "persistence"
	ErrKindNotification       ErrorKind = "notification"
)

// Fatal reports whether a failure of this kind aborts the pipeline.
// Fatal kinds abort before any side effect; the rest are best-effort.
func (k ErrorKind) Fatal() bool {
	return k == ErrKindValidation || k == ErrKindPriceConsistency
}

// PipelineError is a classified pipeline failure.
type PipelineError struct {
	Kind ErrorKind
	Err  error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// NewValidationError classifies err as a fatal validation failure.
func NewValidationError(err error) *PipelineError {
	return &PipelineError{Kind: ErrKindValidation, Err: err}
}

// NewPriceConsistencyError classifies err as a fatal breakdown inconsistency.
func NewPriceConsistencyError(err error) *PipelineError {
	return &PipelineError{Kind: ErrKindPriceConsistency, Err: err}
}
