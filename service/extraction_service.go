package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dperales2022/atmirasalesproposals/schema"
	"github.com/dperales2022/atmirasalesproposals/types"
	"github.com/dperales2022/atmirasalesproposals/utils"
	"go.uber.org/zap"
)

// ExtractionService runs one request through fetch, parse, compose and
// extract. It holds no per-request state.
type ExtractionService struct {
	fetcher   Fetcher
	parser    Parser
	extractor Extractor
	registry  *schema.Registry
	log       *zap.SugaredLogger
}

func NewExtractionService(fetcher Fetcher, parser Parser, extractor Extractor, registry *schema.Registry, log *zap.SugaredLogger) *ExtractionService {
	return &ExtractionService{
		fetcher:   fetcher,
		parser:    parser,
		extractor: extractor,
		registry:  registry,
		log:       log,
	}
}

func (s *ExtractionService) Registry() *schema.Registry {
	return s.registry
}

// Extract returns the schema-conformant fields of the document at
// req.PDFPath. Every error is an *ExtractionError.
func (s *ExtractionService) Extract(ctx context.Context, req types.ExtractRequest) (result *types.ExtractionResult, err error) {
	rid := utils.RequestID(ctx)
	start := time.Now()
	stage := StageReceived

	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = newError(KindInternal, stage, "unexpected failure", fmt.Errorf("panic: %v", r))
		}
		if err != nil {
			var ee *ExtractionError
			if !errors.As(err, &ee) {
				err = newError(KindInternal, stage, "unexpected failure", err)
			}
			s.log.Errorw("extract.failed",
				"req_id", rid, "kind", KindOf(err), "stage", StageOf(err),
				"location", req.PDFPath, "docname", req.DocName, "error", err,
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
			return
		}
		s.log.Infow("extract.completed",
			"req_id", rid, "variant", result.Variant, "location", req.PDFPath,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
	}()

	transition := func(next Stage) {
		s.log.Debugw("extract.stage", "req_id", rid, "from", stage, "to", next)
		stage = next
	}

	s.log.Debugw("extract.stage", "req_id", rid, "to", stage, "docname", req.DocName)

	location := strings.TrimSpace(req.PDFPath)
	if location == "" {
		return nil, newError(KindInvalidRequest, stage, ErrPDFPathRequired.Error(), ErrPDFPathRequired)
	}
	variant, err := s.registry.Resolve(req.Variant)
	if err != nil {
		return nil, newError(KindInvalidRequest, stage, "unknown schema variant", err)
	}

	transition(StageFetching)
	raw, err := s.fetcher.Fetch(ctx, location)
	if err != nil {
		return nil, err
	}

	transition(StageParsing)
	doc, err := s.parser.Parse(ctx, raw)
	if err != nil {
		return nil, err
	}

	transition(StageEmptyCheck)
	if doc.Empty() {
		return nil, newError(KindNoContent, stage, ErrNoDocuments.Error(), ErrNoDocuments)
	}

	transition(StageComposing)
	messages := Compose(variant, doc.Text())

	transition(StageExtracting)
	result, err = s.extractor.Extract(ctx, variant, messages)
	if err != nil {
		var ee *ExtractionError
		if errors.As(err, &ee) {
			return nil, err
		}
		return nil, modelError(err)
	}
	if result == nil {
		return nil, modelError(ErrEmptyResponse)
	}

	transition(StageCompleted)
	return result, nil
}
