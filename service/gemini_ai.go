package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dperales2022/atmirasalesproposals/schema"
	"github.com/dperales2022/atmirasalesproposals/types"
	"github.com/dperales2022/atmirasalesproposals/utils"
	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// GeminiService extracts with the Gemini API using a JSON response schema.
type GeminiService struct {
	client    *genai.Client
	modelName string
	log       *zap.SugaredLogger
}

func NewGeminiService(ctx context.Context, apiKey, modelName string, log *zap.SugaredLogger) (*GeminiService, error) {
	if apiKey == "" {
		return nil, errors.New("no API key provided")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &GeminiService{client: client, modelName: modelName, log: log}, nil
}

func (s *GeminiService) Model() string {
	return s.modelName
}

func (s *GeminiService) Close() error {
	return s.client.Close()
}

func (s *GeminiService) Extract(ctx context.Context, v *schema.Variant, messages []types.Message) (*types.ExtractionResult, error) {
	rid := utils.RequestID(ctx)
	start := time.Now()
	system, user := splitMessages(messages)

	// GenerativeModel carries mutable config, so each call gets its own.
	model := s.client.GenerativeModel(s.modelName)
	model.SetTemperature(0)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = GeminiSchema(v)
	if system != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}

	s.log.Infow("llm.extract.start",
		"req_id", rid, "provider", "gemini", "model", s.modelName,
		"variant", v.ID, "text_len", len(user),
	)

	resp, err := model.GenerateContent(ctx, genai.Text(user))
	if err != nil {
		s.log.Errorw("llm.extract.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, modelError(err)
	}
	if len(resp.Candidates) == 0 {
		s.log.Errorw("llm.extract.no_choices",
			"req_id", rid, "elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, modelError(ErrNoChoices)
	}

	result, err := conformOutput(s.log, rid, s.modelName, v, candidateText(resp.Candidates[0]))
	if err != nil {
		return nil, err
	}

	s.log.Infow("llm.extract.ok",
		"req_id", rid, "variant", v.ID, "finish_reason", resp.Candidates[0].FinishReason,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return result, nil
}

func candidateText(cand *genai.Candidate) string {
	if cand == nil || cand.Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range cand.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String()
}

// GeminiSchema converts a variant's contract to Gemini's OpenAPI subset.
// Gemini has no additionalProperties; unknown keys are caught by Conform.
func GeminiSchema(v *schema.Variant) *genai.Schema {
	props := make(map[string]*genai.Schema, len(v.Fields))
	for _, f := range v.Fields {
		fs := &genai.Schema{Type: genai.TypeString, Description: f.Description}
		if f.Type == schema.TextList {
			fs = &genai.Schema{
				Type:        genai.TypeArray,
				Description: f.Description,
				Items:       &genai.Schema{Type: genai.TypeString},
			}
		}
		fs.Nullable = !f.Required
		props[f.Name] = fs
	}
	return &genai.Schema{
		Type:       genai.TypeObject,
		Properties: props,
		Required:   v.Required(),
	}
}
