// internal/domain/assistant/service.go
package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/your-org/store-pilot/internal/domain/command"
	"github.com/your-org/store-pilot/internal/domain/store"
)

const (
	// DefaultMaxFunctionCalls is how many functions one chat turn may run
	DefaultMaxFunctionCalls = 2

	// ApologyMessage is shown when the model cannot be reached or misbehaves
	ApologyMessage = "I'm sorry, I ran into an error. Please try again."
	// UpdatedMessage is used when the model changed the store but said nothing
	UpdatedMessage = "I've updated the store for you!"
)

// ErrExternalService wraps failures of the language model, including
// function arguments that are not valid JSON.
var ErrExternalService = errors.New("external service error")

// Reply is the answer to one chat turn
type Reply struct {
	Message          string                    `json:"message"`
	ExecutedFunction *command.ExecutedFunction `json:"executedFunction"`
	UpdatedState     *store.Snapshot           `json:"updatedState"`
}

// Service runs chat turns against a store
type Service struct {
	llm      LLM
	executor *command.Executor
	menu     []command.FunctionSpec
	logger   logrus.FieldLogger
	maxCalls int
	prompt   string
}

// Option configures a Service
type Option func(*Service)

// WithMaxFunctionCalls sets the per-turn function budget
func WithMaxFunctionCalls(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxCalls = n
		}
	}
}

// WithSystemPrompt replaces the default persona
func WithSystemPrompt(prompt string) Option {
	return func(s *Service) {
		if strings.TrimSpace(prompt) != "" {
			s.prompt = prompt
		}
	}
}

// NewService creates a new assistant service
func NewService(llm LLM, logger logrus.FieldLogger, opts ...Option) (*Service, error) {
	menu, err := command.Menu()
	if err != nil {
		return nil, fmt.Errorf("failed to build function menu: %w", err)
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	s := &Service{
		llm:      llm,
		executor: command.NewExecutor(logger),
		menu:     menu,
		logger:   logger,
		maxCalls: DefaultMaxFunctionCalls,
		prompt:   SystemPrompt,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Chat answers message, letting the model call up to maxCalls functions on
// st. A function that fails first ends the turn with its error; later
// failures are reported back to the model.
func (s *Service) Chat(ctx context.Context, st *store.Store, message string, history []Message) (Reply, error) {
	if strings.TrimSpace(message) == "" {
		return Reply{}, fmt.Errorf("%w: message is required", store.ErrValidation)
	}

	messages := s.conversation(message, history)

	completion, err := s.complete(ctx, messages, s.menu)
	if err != nil {
		return Reply{}, err
	}

	var (
		chain    *command.ExecutedFunction
		executed int
	)

	for len(completion.ToolCalls) > 0 {
		messages = append(messages, Message{
			Role:      RoleAssistant,
			Content:   completion.Content,
			ToolCalls: completion.ToolCalls,
		})

		for _, call := range completion.ToolCalls {
			if executed >= s.maxCalls {
				messages = append(messages, toolMessage(call.ID, skippedCall))
				continue
			}

			res, err := s.executor.Run(st, call.Name, call.Arguments)
			if err != nil {
				return Reply{}, fmt.Errorf("%w: %w", ErrExternalService, err)
			}
			executed++

			s.logger.WithFields(logrus.Fields{
				"function": call.Name,
				"success":  res.Success,
				"call":     executed,
			}).Debug("Executed function")

			if !res.Success && executed == 1 {
				return Reply{Message: firstFailureMessage(res.Error, completion.Content)}, nil
			}
			if res.Success {
				chain = command.Link(chain, call.Name, call.Arguments)
			}

			content, err := json.Marshal(res.Data)
			if err != nil {
				return Reply{}, fmt.Errorf("failed to encode function result: %w", err)
			}
			messages = append(messages, toolMessage(call.ID, string(content)))
		}

		// Out of budget: the model has to answer in text.
		var functions []command.FunctionSpec
		if executed < s.maxCalls {
			functions = s.menu
		}
		completion, err = s.complete(ctx, messages, functions)
		if err != nil {
			return Reply{}, err
		}
		if functions == nil {
			completion.ToolCalls = nil
		}
	}

	reply := Reply{Message: strings.TrimSpace(completion.Content), ExecutedFunction: chain}
	if executed > 0 {
		snapshot := st.Snapshot()
		reply.UpdatedState = &snapshot
		if reply.Message == "" {
			reply.Message = UpdatedMessage
		}
	}
	return reply, nil
}

const skippedCall = `{"success":false,"error":"Function call limit reached for this message"}`

func (s *Service) complete(ctx context.Context, messages []Message, functions []command.FunctionSpec) (Completion, error) {
	completion, err := s.llm.Complete(ctx, CompletionRequest{Messages: messages, Functions: functions})
	if err != nil {
		return Completion{}, fmt.Errorf("%w: %w", ErrExternalService, err)
	}
	return completion, nil
}

// conversation builds system prompt, prior turns and the new message. Only
// user and assistant text from the history is passed on.
func (s *Service) conversation(message string, history []Message) []Message {
	messages := make([]Message, 0, len(history)+2)
	messages = append(messages, Message{Role: RoleSystem, Content: s.prompt})
	for _, m := range history {
		if m.Role != RoleUser && m.Role != RoleAssistant {
			continue
		}
		if strings.TrimSpace(m.Content) == "" {
			continue
		}
		messages = append(messages, Message{Role: m.Role, Content: m.Content})
	}
	return append(messages, Message{Role: RoleUser, Content: message})
}

func toolMessage(callID, content string) Message {
	return Message{Role: RoleTool, Content: content, ToolCallID: callID}
}

func firstFailureMessage(errMessage, content string) string {
	msg := fmt.Sprintf("I encountered an error: %s.", strings.TrimSuffix(errMessage, "."))
	if content = strings.TrimSpace(content); content != "" {
		msg += " " + content
	}
	return msg
}
