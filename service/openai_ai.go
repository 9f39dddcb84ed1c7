package service

import (
	"context"
	"math"
	"time"

	"github.com/dperales2022/atmirasalesproposals/schema"
	"github.com/dperales2022/atmirasalesproposals/types"
	"github.com/dperales2022/atmirasalesproposals/utils"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// deterministicTemperature is the lowest temperature the client sends.
// A literal zero is omitted from the request body and the server default
// applies instead.
const deterministicTemperature = math.SmallestNonzeroFloat32

// OpenAIService extracts with any OpenAI-compatible chat completions API
// using a json_schema response format.
type OpenAIService struct {
	client *openai.Client
	model  string
	seed   *int
	log    *zap.SugaredLogger
}

func NewOpenAIService(baseURL string, apiKey, model string, seed *int, log *zap.SugaredLogger) *OpenAIService {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	client := openai.NewClientWithConfig(config)
	return &OpenAIService{
		client: client,
		model:  model,
		seed:   seed,
		log:    log,
	}
}

func (s *OpenAIService) Model() string {
	return s.model
}

func (s *OpenAIService) Extract(ctx context.Context, v *schema.Variant, messages []types.Message) (*types.ExtractionResult, error) {
	rid := utils.RequestID(ctx)
	start := time.Now()

	openaiMessages := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		role := openai.ChatMessageRoleUser
		if msg.Role == types.RoleSystem {
			role = openai.ChatMessageRoleSystem
		}
		openaiMessages = append(openaiMessages, openai.ChatCompletionMessage{
			Role:    role,
			Content: msg.Content,
		})
	}

	s.log.Infow("llm.extract.start",
		"req_id", rid, "provider", "openai", "model", s.model,
		"variant", v.ID, "strict", v.Strict(), "messages", len(openaiMessages),
	)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:       s.model,
			Messages:    openaiMessages,
			Temperature: deterministicTemperature,
			Seed:        s.seed,
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
				JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
					Name:        v.SchemaName(),
					Description: v.Description,
					Schema:      v.JSONSchema(),
					Strict:      v.Strict(),
				},
			},
		},
	)
	if err != nil {
		s.log.Errorw("llm.extract.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, modelError(err)
	}

	if len(resp.Choices) == 0 {
		s.log.Errorw("llm.extract.no_choices",
			"req_id", rid, "elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, modelError(ErrNoChoices)
	}

	choice := resp.Choices[0]
	if choice.Message.Refusal != "" {
		s.log.Errorw("llm.extract.refused",
			"req_id", rid, "refusal", choice.Message.Refusal,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, modelError(ErrRefused)
	}

	result, err := conformOutput(s.log, rid, s.model, v, choice.Message.Content)
	if err != nil {
		return nil, err
	}

	s.log.Infow("llm.extract.ok",
		"req_id", rid, "variant", v.ID, "finish_reason", choice.FinishReason,
		"prompt_tokens", resp.Usage.PromptTokens, "completion_tokens", resp.Usage.CompletionTokens,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return result, nil
}
