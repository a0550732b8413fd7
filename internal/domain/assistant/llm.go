// internal/domain/assistant/llm.go
package assistant

import (
	"context"

	"github.com/your-org/store-pilot/internal/domain/command"
)

// Role is the author of a chat message
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is one entry of a conversation
type Message struct {
	Role       Role       `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"-"`
	ToolCallID string     `json:"-"`
}

// ToolCall is a function call proposed by the model. Arguments is raw JSON.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// CompletionRequest asks the model for the next message. A nil Functions
// slice means the model must answer in text.
type CompletionRequest struct {
	Messages  []Message
	Functions []command.FunctionSpec
}

// Completion is the model's answer
type Completion struct {
	Content   string
	ToolCalls []ToolCall
}

// LLM is the language model behind the shopkeeper
type LLM interface {
	Complete(ctx context.Context, req CompletionRequest) (Completion, error)
}
