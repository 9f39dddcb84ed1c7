package service

import (
	"errors"
	"fmt"
)

// Kind classifies a failed extraction. The HTTP layer maps each kind to a
// status code and a generic message.
type Kind string

const (
	KindInvalidRequest    Kind = "invalid_request"
	KindUnreachableSource Kind = "unreachable_source"
	KindUnsupportedFormat Kind = "unsupported_format"
	KindNoContent         Kind = "no_content"
	KindModelInvocation   Kind = "model_invocation"
	KindInternal          Kind = "internal"
)

// Stage is a step of the per-request pipeline.
type Stage string

const (
	StageReceived   Stage = "received"
	StageFetching   Stage = "fetching"
	StageParsing    Stage = "parsing"
	StageEmptyCheck Stage = "empty_check"
	StageComposing  Stage = "composing"
	StageExtracting Stage = "extracting"
	StageCompleted  Stage = "completed"
	StageErrored    Stage = "errored"
)

var (
	ErrPDFPathRequired = errors.New("pdfpath is required")
	ErrNoDocuments     = errors.New("no documents found")
)

// ExtractionError is returned by every failing pipeline step. Cause keeps
// the underlying error for logs; Message is safe to show.
type ExtractionError struct {
	Kind    Kind
	Stage   Stage
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s at %s: %s: %v", e.Kind, e.Stage, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s at %s: %s", e.Kind, e.Stage, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

func newError(kind Kind, stage Stage, message string, cause error) *ExtractionError {
	return &ExtractionError{Kind: kind, Stage: stage, Message: message, Cause: cause}
}

// KindOf reports the kind of err. Errors that were never classified are
// internal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var ee *ExtractionError
	if errors.As(err, &ee) {
		return ee.Kind
	}
	return KindInternal
}

// StageOf reports where err was raised, or StageErrored when unknown.
func StageOf(err error) Stage {
	var ee *ExtractionError
	if errors.As(err, &ee) {
		return ee.Stage
	}
	return StageErrored
}
