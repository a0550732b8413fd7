// internal/infrastructure/llm/openai.go
package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/openai/openai-go/v2/shared"
	"github.com/sirupsen/logrus"

	"github.com/your-org/store-pilot/internal/config"
	"github.com/your-org/store-pilot/internal/domain/assistant"
)

// ErrNoChoices is returned when the API answers without any completion
var ErrNoChoices = errors.New("completion has no choices")

// OpenAI implements assistant.LLM with chat completions and function tools.
// Any OpenAI compatible server works through BaseURL.
type OpenAI struct {
	client      openai.Client
	model       string
	temperature float64
	maxTokens   int
	logger      logrus.FieldLogger
}

// NewOpenAI creates a new chat completion client
func NewOpenAI(cfg config.LLMConfig, logger logrus.FieldLogger, opts ...option.RequestOption) *OpenAI {
	clientOpts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(cfg.BaseURL))
	}
	clientOpts = append(clientOpts, opts...)

	return &OpenAI{
		client:      openai.NewClient(clientOpts...),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		logger:      logger,
	}
}

// Complete sends the conversation and returns the first choice
func (o *OpenAI) Complete(ctx context.Context, req assistant.CompletionRequest) (assistant.Completion, error) {
	params := openai.ChatCompletionNewParams{
		Model:       shared.ChatModel(o.model),
		Messages:    toMessageParams(req.Messages),
		Temperature: openai.Float(o.temperature),
	}
	if o.maxTokens > 0 {
		params.MaxTokens = openai.Int(int64(o.maxTokens))
	}
	if len(req.Functions) > 0 {
		params.Tools = toToolParams(req)
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return assistant.Completion{}, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return assistant.Completion{}, ErrNoChoices
	}

	msg := resp.Choices[0].Message
	completion := assistant.Completion{Content: msg.Content}
	for _, tc := range msg.ToolCalls {
		if tc.Type != "function" {
			continue
		}
		completion.ToolCalls = append(completion.ToolCalls, assistant.ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}

	o.logger.WithFields(logrus.Fields{
		"model":             resp.Model,
		"tool_calls":        len(completion.ToolCalls),
		"prompt_tokens":     resp.Usage.PromptTokens,
		"completion_tokens": resp.Usage.CompletionTokens,
	}).Debug("Chat completion received")

	return completion, nil
}

func toToolParams(req assistant.CompletionRequest) []openai.ChatCompletionToolUnionParam {
	tools := make([]openai.ChatCompletionToolUnionParam, 0, len(req.Functions))
	for _, fn := range req.Functions {
		tools = append(tools, openai.ChatCompletionFunctionTool(openai.FunctionDefinitionParam{
			Name:        fn.Name,
			Description: openai.String(fn.Description),
			Parameters:  openai.FunctionParameters(fn.Parameters),
		}))
	}
	return tools
}

func toMessageParams(messages []assistant.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case assistant.RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case assistant.RoleUser:
			out = append(out, openai.UserMessage(m.Content))
		case assistant.RoleTool:
			out = append(out, openai.ToolMessage(m.Content, m.ToolCallID))
		case assistant.RoleAssistant:
			if len(m.ToolCalls) == 0 {
				out = append(out, openai.AssistantMessage(m.Content))
				continue
			}
			out = append(out, assistantToolCallMessage(m))
		}
	}
	return out
}

func assistantToolCallMessage(m assistant.Message) openai.ChatCompletionMessageParamUnion {
	msg := openai.ChatCompletionAssistantMessageParam{}
	if m.Content != "" {
		msg.Content.OfString = openai.String(m.Content)
	}
	for _, tc := range m.ToolCalls {
		msg.ToolCalls = append(msg.ToolCalls, openai.ChatCompletionMessageToolCallUnionParam{
			OfFunction: &openai.ChatCompletionMessageFunctionToolCallParam{
				ID: tc.ID,
				Function: openai.ChatCompletionMessageFunctionToolCallFunctionParam{
					Name:      tc.Name,
					Arguments: tc.Arguments,
				},
			},
		})
	}
	return openai.ChatCompletionMessageParamUnion{OfAssistant: &msg}
}
