package game

import "context"

// ToolCall is one selected tool invocation with named arguments, as reported
// by the oracle.
type ToolCall struct {
	ID   string
	Name string
	Args map[string]any
}

// ToolSpec describes one tool the oracle may select: a name, a short
// description, and a JSON-schema parameter object.
type ToolSpec struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// ToolSelectionRequest asks the oracle to pick at most one tool for the
// player's raw input.
type ToolSelectionRequest struct {
	SystemPrompt string
	UserInput    string
	Tools        []ToolSpec
}

// NarrationRequest asks the oracle to turn a tool's raw textual result into
// the final narrated reply. Narration must never trigger further tool use.
type NarrationRequest struct {
	SystemPrompt string
	UserInput    string
	Call         ToolCall
	ToolResult   string
}

// JSONRequest asks the oracle for text that should parse as a specific JSON
// shape (an object with one key, or a list of strings). Responses may be
// wrapped in fenced code blocks; callers strip those before parsing.
type JSONRequest struct {
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
}

// Oracle is the narrow capability the interpreter needs from the hosted
// language model. Implementations are black boxes with externally-variable
// latency; callers must treat every call as blocking and potentially failing,
// and must never assume a response is well-formed.
type Oracle interface {
	// SelectTool returns the chosen tool call, or nil with the model's plain
	// text reply when no tool was selected.
	SelectTool(ctx context.Context, req ToolSelectionRequest) (*ToolCall, string, error)
	Narrate(ctx context.Context, req NarrationRequest) (string, error)
	CompleteJSON(ctx context.Context, req JSONRequest) (string, error)
}
