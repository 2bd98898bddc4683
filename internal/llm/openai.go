package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider streams chat completions from the OpenAI API or any
// compatible endpoint.
type OpenAIProvider struct {
	client *openai.Client
}

func NewOpenAIProvider(apiKey, baseURL string, httpClient *http.Client) *OpenAIProvider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}
	return &OpenAIProvider{client: openai.NewClientWithConfig(cfg)}
}

func (p *OpenAIProvider) StreamChat(ctx context.Context, req *ChatRequest, ch chan<- StreamChunk) error {
	defer close(ch)

	stream, err := p.client.CreateChatCompletionStream(ctx, toOpenAIRequest(req))
	if err != nil {
		return fmt.Errorf("could not create chat completion stream: %w", err)
	}
	defer func() { _ = stream.Close() }()

	var calls toolCallAccumulator
	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("stream recv failed: %w", err)
		}
		if len(resp.Choices) == 0 {
			continue
		}

		delta := resp.Choices[0].Delta
		for _, tc := range delta.ToolCalls {
			calls.add(tc)
		}
		if delta.Content == "" {
			continue
		}
		select {
		case ch <- StreamChunk{Content: delta.Content}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if toolCalls := calls.result(); len(toolCalls) > 0 {
		slog.Debug("OpenAI requested tool calls", "model", req.Model, "count", len(toolCalls))
		select {
		case ch <- StreamChunk{ToolCalls: toolCalls}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// toolCallAccumulator merges streamed tool-call fragments by index. The id and
// name arrive once; arguments arrive as string fragments.
type toolCallAccumulator struct {
	calls []ToolCall
}

func (a *toolCallAccumulator) add(tc openai.ToolCall) {
	idx := len(a.calls)
	if tc.Index != nil {
		idx = *tc.Index
	} else if tc.ID == "" && idx > 0 {
		idx--
	}
	for len(a.calls) <= idx {
		a.calls = append(a.calls, ToolCall{})
	}
	call := &a.calls[idx]
	if tc.ID != "" {
		call.ID = tc.ID
	}
	if tc.Function.Name != "" {
		call.Name = tc.Function.Name
	}
	call.Arguments += tc.Function.Arguments
}

func (a *toolCallAccumulator) result() []ToolCall {
	out := make([]ToolCall, 0, len(a.calls))
	for _, c := range a.calls {
		if c.Name != "" {
			out = append(out, c)
		}
	}
	return out
}

func toOpenAIRequest(req *ChatRequest) openai.ChatCompletionRequest {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	for _, m := range req.Messages {
		messages = append(messages, toOpenAIMessage(m))
	}

	out := openai.ChatCompletionRequest{
		Model:           req.Model,
		Messages:        messages,
		Stream:          true,
		ReasoningEffort: req.ReasoningEffort,
	}
	if req.Temperature != nil {
		out.Temperature = *req.Temperature
	}
	if req.TopP != nil {
		out.TopP = *req.TopP
	}
	if req.MaxTokens != nil {
		// Reasoning models reject max_tokens.
		out.MaxCompletionTokens = *req.MaxTokens
	}
	if len(req.Tools) > 0 {
		out.Tools = make([]openai.Tool, 0, len(req.Tools))
		for _, t := range req.Tools {
			out.Tools = append(out.Tools, openai.Tool{
				Type: openai.ToolTypeFunction,
				Function: &openai.FunctionDefinition{
					Name:        t.Name,
					Description: t.Description,
					Parameters:  jsonSchema(t.Params),
				},
			})
		}
		out.ToolChoice = "auto"
	}
	return out
}

func toOpenAIMessage(m Message) openai.ChatCompletionMessage {
	msg := openai.ChatCompletionMessage{Role: string(m.Role)}
	switch m.Role {
	case RoleTool:
		msg.Content = m.Text()
		msg.ToolCallID = m.ToolCallID
		msg.Name = m.Name
		return msg
	case RoleAssistant:
		msg.Content = m.Text()
		for _, tc := range m.ToolCalls {
			msg.ToolCalls = append(msg.ToolCalls, openai.ToolCall{
				ID:   tc.ID,
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      tc.Name,
					Arguments: tc.Arguments,
				},
			})
		}
		return msg
	}

	hasImage := false
	for _, p := range m.Parts {
		if p.ImageURL != "" {
			hasImage = true
			break
		}
	}
	if !hasImage {
		msg.Content = m.Text()
		return msg
	}

	// Content and MultiContent are mutually exclusive.
	for _, p := range m.Parts {
		if p.ImageURL != "" {
			msg.MultiContent = append(msg.MultiContent, openai.ChatMessagePart{
				Type:     openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{URL: p.ImageURL},
			})
			continue
		}
		msg.MultiContent = append(msg.MultiContent, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeText,
			Text: p.Text,
		})
	}
	return msg
}

// jsonSchema renders string parameters as a JSON Schema object.
func jsonSchema(params []ToolParam) map[string]any {
	properties := make(map[string]any, len(params))
	required := []string{}
	for _, p := range params {
		properties[p.Name] = map[string]any{
			"type":        "string",
			"description": p.Description,
		}
		if p.Required {
			required = append(required, p.Name)
		}
	}
	return map[string]any{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}
