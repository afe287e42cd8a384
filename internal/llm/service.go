package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"groundtruth/internal/debug"
	"groundtruth/internal/game"
	"groundtruth/internal/observability"
)

// Service implements game.Oracle on the OpenAI chat-completions API: native
// tool calling for tool selection, JSON response format for structured
// requests, plain chat for narration. Every call opens a client span with
// GenAI attributes and mirrors prompt/output into Langfuse observation
// attributes.
type Service struct {
	client *openai.Client
	model  string
	debug  *debug.Logger
	tracer trace.Tracer
}

func NewService(apiKey, model string, dbg *debug.Logger) *Service {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	if dbg == nil {
		dbg = debug.NewNopLogger()
	}
	return &Service{
		client: &client,
		model:  model,
		debug:  dbg,
		tracer: otel.Tracer("llm-service"),
	}
}

var _ game.Oracle = (*Service)(nil)

// SelectTool presents the fixed tool vocabulary and the player's raw input,
// and returns at most one tool invocation. When the model answers with plain
// text instead, that text comes back with a nil call.
func (s *Service) SelectTool(ctx context.Context, req game.ToolSelectionRequest) (*game.ToolCall, string, error) {
	ctx, span := s.startSpan(ctx, "oracle.select_tool")
	defer span.End()

	tools := make([]openai.ChatCompletionToolParam, 0, len(req.Tools))
	for _, t := range req.Tools {
		tools = append(tools, openai.ChatCompletionToolParam{
			Function: shared.FunctionDefinitionParam{
				Name:        t.Name,
				Description: openai.String(t.Description),
				Parameters:  shared.FunctionParameters(t.Parameters),
			},
		})
	}

	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(s.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.SystemPrompt),
			openai.UserMessage(req.UserInput),
		},
		MaxCompletionTokens: openai.Int(300),
		Tools:               tools,
	}

	started := time.Now()
	resp, err := s.client.Chat.Completions.New(ctx, params)
	if err != nil {
		span.RecordError(err)
		s.debug.Printf("Tool selection error: %v", err)
		return nil, "", fmt.Errorf("tool selection failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		err := fmt.Errorf("no completion choices returned")
		span.RecordError(err)
		return nil, "", err
	}

	message := resp.Choices[0].Message
	s.recordUsage(span, resp, req.SystemPrompt+"\n\n"+req.UserInput, message.Content, started)

	if len(message.ToolCalls) == 0 {
		return nil, strings.TrimSpace(message.Content), nil
	}

	// At most one tool invocation per turn; extras are ignored.
	raw := message.ToolCalls[0]
	args := map[string]any{}
	if trimmed := strings.TrimSpace(raw.Function.Arguments); trimmed != "" {
		if err := json.Unmarshal([]byte(trimmed), &args); err != nil {
			s.debug.Printf("Unparseable tool arguments %q: %v", raw.Function.Arguments, err)
			return nil, "", fmt.Errorf("unparseable tool arguments: %w", err)
		}
	}

	span.SetAttributes(attribute.String("gen_ai.tool.name", raw.Function.Name))
	s.debug.Printf("Tool selected: %s(%s)", raw.Function.Name, raw.Function.Arguments)

	return &game.ToolCall{
		ID:   raw.ID,
		Name: raw.Function.Name,
		Args: args,
	}, "", nil
}

// Narrate replays the short conversation (framing, player text, tool call,
// tool result) and asks for a final reply. No tools are offered, so the
// model cannot request further tool use.
func (s *Service) Narrate(ctx context.Context, req game.NarrationRequest) (string, error) {
	ctx, span := s.startSpan(ctx, "oracle.narrate")
	defer span.End()

	callID := req.Call.ID
	if callID == "" {
		callID = "call_0"
	}
	argsJSON, err := json.Marshal(req.Call.Args)
	if err != nil {
		argsJSON = []byte("{}")
	}

	assistant := openai.ChatCompletionAssistantMessageParam{
		ToolCalls: []openai.ChatCompletionMessageToolCallParam{
			{
				ID: callID,
				Function: openai.ChatCompletionMessageToolCallFunctionParam{
					Name:      req.Call.Name,
					Arguments: string(argsJSON),
				},
			},
		},
	}

	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(s.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.SystemPrompt),
			openai.UserMessage(req.UserInput),
			{OfAssistant: &assistant},
			openai.ToolMessage(req.ToolResult, callID),
		},
		MaxCompletionTokens: openai.Int(200),
	}

	started := time.Now()
	resp, err := s.client.Chat.Completions.New(ctx, params)
	if err != nil {
		span.RecordError(err)
		s.debug.Printf("Narration error: %v", err)
		return "", fmt.Errorf("narration failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		err := fmt.Errorf("no completion choices returned")
		span.RecordError(err)
		return "", err
	}

	content := resp.Choices[0].Message.Content
	s.recordUsage(span, resp, req.SystemPrompt+"\n\n"+req.UserInput, content, started)
	return content, nil
}

// CompleteJSON requests a response in JSON mode. The caller is responsible
// for validating the shape; responses may still arrive fenced or malformed.
func (s *Service) CompleteJSON(ctx context.Context, req game.JSONRequest) (string, error) {
	ctx, span := s.startSpan(ctx, "oracle.complete_json")
	defer span.End()

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 200
	}

	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(s.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.SystemPrompt),
			openai.UserMessage(req.UserPrompt),
		},
		MaxCompletionTokens: openai.Int(int64(maxTokens)),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: func() *shared.ResponseFormatJSONObjectParam {
				p := shared.NewResponseFormatJSONObjectParam()
				return &p
			}(),
		},
	}

	started := time.Now()
	resp, err := s.client.Chat.Completions.New(ctx, params)
	if err != nil {
		span.RecordError(err)
		s.debug.Printf("JSON completion error: %v", err)
		return "", fmt.Errorf("JSON completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		err := fmt.Errorf("no completion choices returned")
		span.RecordError(err)
		return "", err
	}

	content := resp.Choices[0].Message.Content
	s.recordUsage(span, resp, req.SystemPrompt+"\n\n"+req.UserPrompt, content, started)
	return content, nil
}

func (s *Service) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			observability.CreateGenAIAttributes("openai", s.model, 0, 0, -1)...,
		),
	)
}

func (s *Service) recordUsage(span trace.Span, resp *openai.ChatCompletion, input, output string, started time.Time) {
	duration := time.Since(started)
	span.SetAttributes(
		attribute.Int64("gen_ai.usage.input_tokens", resp.Usage.PromptTokens),
		attribute.Int64("gen_ai.usage.output_tokens", resp.Usage.CompletionTokens),
		attribute.Int64("response_time_ms", duration.Milliseconds()),
		attribute.String("langfuse.observation.type", "generation"),
		attribute.String("langfuse.observation.input", input),
		attribute.String("langfuse.observation.output", output),
		attribute.String("langfuse.observation.model.name", s.model),
	)
	s.debug.Printf("LLM response length %d, tokens %d/%d, duration %v",
		len(output), resp.Usage.PromptTokens, resp.Usage.CompletionTokens, duration)
}
