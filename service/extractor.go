package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dperales2022/atmirasalesproposals/config"
	"github.com/dperales2022/atmirasalesproposals/schema"
	"github.com/dperales2022/atmirasalesproposals/types"
	"go.uber.org/zap"
)

var (
	ErrNoChoices     = errors.New("no response generated")
	ErrRefused       = errors.New("model refused the request")
	ErrEmptyResponse = errors.New("empty model response")
)

// Extractor asks a language model to fill a variant's contract from a
// composed conversation. Implementations fix the model identifier and
// sampling settings at construction and are safe for concurrent use.
type Extractor interface {
	Extract(ctx context.Context, v *schema.Variant, messages []types.Message) (*types.ExtractionResult, error)
	Model() string
}

// NewExtractor builds the backend selected by cfg.Provider.
func NewExtractor(ctx context.Context, cfg *config.Config, log *zap.SugaredLogger) (Extractor, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI, "":
		return NewOpenAIService(cfg.AIEndpoint, cfg.OpenAIAPIKey, cfg.Model, cfg.SeedValue(), log), nil
	case config.ProviderGemini:
		svc, err := NewGeminiService(ctx, cfg.GeminiAPIKey, cfg.Model, log)
		if err != nil {
			return nil, err
		}
		return svc, nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

// conformOutput validates raw model output against the variant and builds
// the result. Failures are ModelInvocation errors.
func conformOutput(log *zap.SugaredLogger, rid, model string, v *schema.Variant, content string) (*types.ExtractionResult, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, modelError(ErrEmptyResponse)
	}
	fields, cleaned, dropped, err := v.Conform([]byte(content))
	if err != nil {
		log.Errorw("llm.extract.schema_validation_failed",
			"req_id", rid, "variant", v.ID, "error", err, "content_len", len(content),
		)
		return nil, modelError(err)
	}
	if len(dropped) > 0 {
		log.Warnw("llm.extract.lenient_sanitize_applied",
			"req_id", rid, "variant", v.ID, "dropped", dropped,
		)
	}
	return &types.ExtractionResult{
		Variant: v.ID,
		Model:   model,
		Fields:  fields,
		Raw:     cleaned,
	}, nil
}

func modelError(cause error) *ExtractionError {
	return newError(KindModelInvocation, StageExtracting, "model invocation failed", cause)
}
