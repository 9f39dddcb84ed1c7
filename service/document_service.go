package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dperales2022/atmirasalesproposals/types"
	"go.uber.org/zap"
)

// Interpreter turns raw bytes of one format into text segments. It rejects
// input it does not understand with an error.
type Interpreter interface {
	Name() string
	Interpret(content []byte) (*types.ParsedDocument, error)
}

// Parser turns a fetched document into text.
type Parser interface {
	Parse(ctx context.Context, raw *types.RawDocument) (*types.ParsedDocument, error)
}

// DocumentService tries its interpreters in order and returns the first
// success. Zero segments is a success.
type DocumentService struct {
	interpreters []Interpreter
	log          *zap.SugaredLogger
}

// NewDocumentService uses PDF first and Word second.
func NewDocumentService(maxBytes int64, log *zap.SugaredLogger) *DocumentService {
	return NewDocumentServiceWith(log, NewPDFInterpreter(), NewDOCXInterpreter(maxBytes))
}

func NewDocumentServiceWith(log *zap.SugaredLogger, interpreters ...Interpreter) *DocumentService {
	return &DocumentService{interpreters: interpreters, log: log}
}

func (s *DocumentService) Parse(ctx context.Context, raw *types.RawDocument) (*types.ParsedDocument, error) {
	if raw == nil {
		return nil, newError(KindInternal, StageParsing, "no document to parse", nil)
	}
	start := time.Now()

	var errs []error
	for _, in := range s.interpreters {
		if err := ctx.Err(); err != nil {
			return nil, newError(KindInternal, StageParsing, "parsing cancelled", err)
		}
		doc, err := interpret(in, raw.Content)
		if err != nil {
			s.log.Debugw("extract.parse.rejected",
				"interpreter", in.Name(), "location", raw.Location, "error", err,
			)
			errs = append(errs, fmt.Errorf("%s: %w", in.Name(), err))
			continue
		}
		s.log.Debugw("extract.parse.ok",
			"interpreter", in.Name(), "location", raw.Location,
			"segments", len(doc.Segments), "pages", doc.Pages,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return doc, nil
	}
	return nil, newError(KindUnsupportedFormat, StageParsing, "document format not supported", errors.Join(errs...))
}

func interpret(in Interpreter, content []byte) (doc *types.ParsedDocument, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()
	doc, err = in.Interpret(content)
	if err == nil && doc == nil {
		err = errors.New("no result")
	}
	return doc, err
}
