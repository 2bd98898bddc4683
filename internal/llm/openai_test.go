package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polychat/backend/internal/model"
)

// collect runs StreamChat to completion and returns every chunk it produced.
func textMessage(role Role, text string) Message {
	return Message{Role: role, Parts: []Part{{Text: text}}}
}

func collect(t *testing.T, p ChatProvider, req *ChatRequest) ([]StreamChunk, error) {
	t.Helper()
	ch := make(chan StreamChunk)
	errCh := make(chan error, 1)
	go func() { errCh <- p.StreamChat(context.Background(), req, ch) }()

	var chunks []StreamChunk
	for c := range ch {
		chunks = append(chunks, c)
	}
	return chunks, <-errCh
}

// sseServer answers /v1/chat/completions with the given event payloads and
// records the decoded request body.
func sseServer(t *testing.T, captured *map[string]any, events ...string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		if captured != nil {
			assert.NoError(t, json.Unmarshal(body, captured))
		}

		w.Header().Set("Content-Type", "text/event-stream")
		for _, e := range events {
			_, _ = fmt.Fprintf(w, "data: %s\n\n", e)
		}
		_, _ = fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	t.Cleanup(server.Close)
	return server
}

func chunk(delta string) string {
	return `{"id":"c1","object":"chat.completion.chunk","created":1,"model":"m","choices":[{"index":0,"delta":` + delta + `}]}`
}

func TestOpenAIProvider_StreamChat(t *testing.T) {
	t.Run("Relays text deltas", func(t *testing.T) {
		server := sseServer(t, nil, chunk(`{"role":"assistant","content":"Hel"}`), chunk(`{"content":"lo"}`))
		provider := NewOpenAIProvider("test-key", server.URL+"/v1", server.Client())

		chunks, err := collect(t, provider, &ChatRequest{Model: "gpt-5-2025-08-07", Messages: []Message{textMessage(RoleUser, "hi")}})

		require.NoError(t, err)
		require.Len(t, chunks, 2)
		assert.Equal(t, "Hel", chunks[0].Content)
		assert.Equal(t, "lo", chunks[1].Content)
	})

	t.Run("Accumulates tool call fragments", func(t *testing.T) {
		server := sseServer(t, nil,
			chunk(`{"tool_calls":[{"index":0,"id":"call_1","type":"function","function":{"name":"web_search","arguments":""}}]}`),
			chunk(`{"tool_calls":[{"index":0,"function":{"arguments":"{\"query\":"}}]}`),
			chunk(`{"tool_calls":[{"index":0,"function":{"arguments":"\"golang\"}"}}]}`),
		)
		provider := NewOpenAIProvider("test-key", server.URL+"/v1", server.Client())

		chunks, err := collect(t, provider, &ChatRequest{Model: "gpt-5-2025-08-07"})

		require.NoError(t, err)
		require.Len(t, chunks, 1)
		require.Len(t, chunks[0].ToolCalls, 1)
		assert.Equal(t, ToolCall{ID: "call_1", Name: "web_search", Arguments: `{"query":"golang"}`}, chunks[0].ToolCalls[0])
	})

	t.Run("Vendor error closes the channel", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
		}))
		defer server.Close()
		provider := NewOpenAIProvider("bad", server.URL+"/v1", server.Client())

		chunks, err := collect(t, provider, &ChatRequest{Model: "gpt-5-2025-08-07"})

		assert.Error(t, err)
		assert.Empty(t, chunks)
	})
}

// The payload sent to the vendor must only contain parameters the model
// supports, regardless of what the conversation settings hold.
func TestOpenAIProvider_RequestPayload(t *testing.T) {
	temp := float32(0.4)
	maxTokens := 256
	settings := &model.ModelSettings{
		SystemPrompt:    "Be brief",
		Temperature:     &temp,
		MaxTokens:       &maxTokens,
		ReasoningEffort: model.ReasoningHigh,
	}

	t.Run("Reasoning effort is dropped for gpt-5", func(t *testing.T) {
		var body map[string]any
		server := sseServer(t, &body, chunk(`{"content":"ok"}`))
		provider := NewOpenAIProvider("k", server.URL+"/v1", server.Client())

		spec, ok := Lookup(model.ModelGPT5)
		require.True(t, ok)
		req := spec.NewChatRequest(settings)
		req.Messages = []Message{textMessage(RoleUser, "hi")}

		_, err := collect(t, provider, req)
		require.NoError(t, err)

		assert.Equal(t, "gpt-5-2025-08-07", body["model"])
		assert.NotContains(t, body, "reasoning_effort")
		assert.NotContains(t, body, "temperature")
		assert.NotContains(t, body, "max_tokens")
		assert.EqualValues(t, 256, body["max_completion_tokens"])

		messages := body["messages"].([]any)
		require.Len(t, messages, 2)
		system := messages[0].(map[string]any)
		assert.Equal(t, "system", system["role"])
		assert.Equal(t, "Be brief", system["content"])
	})

	t.Run("Reasoning effort reaches o3-mini", func(t *testing.T) {
		var body map[string]any
		server := sseServer(t, &body, chunk(`{"content":"ok"}`))
		provider := NewOpenAIProvider("k", server.URL+"/v1", server.Client())

		spec, _ := Lookup(model.ModelO3Mini)
		_, err := collect(t, provider, spec.NewChatRequest(settings))
		require.NoError(t, err)

		assert.Equal(t, "high", body["reasoning_effort"])
	})

	t.Run("Images and tools are encoded", func(t *testing.T) {
		var body map[string]any
		server := sseServer(t, &body, chunk(`{"content":"ok"}`))
		provider := NewOpenAIProvider("k", server.URL+"/v1", server.Client())

		req := &ChatRequest{
			Model: "gpt-5-2025-08-07",
			Messages: []Message{{
				Role:  RoleUser,
				Parts: []Part{{Text: "what is this"}, {ImageURL: "data:image/png;base64,AAAA"}},
			}},
			Tools: []Tool{WebSearchTool},
		}
		_, err := collect(t, provider, req)
		require.NoError(t, err)

		messages := body["messages"].([]any)
		content := messages[0].(map[string]any)["content"].([]any)
		require.Len(t, content, 2)
		assert.Equal(t, "image_url", content[1].(map[string]any)["type"])

		tools := body["tools"].([]any)
		require.Len(t, tools, 1)
		fn := tools[0].(map[string]any)["function"].(map[string]any)
		assert.Equal(t, "web_search", fn["name"])
		assert.Equal(t, []any{"query"}, fn["parameters"].(map[string]any)["required"])
	})
}

func TestToolCallAccumulator_WithoutIndex(t *testing.T) {
	var acc toolCallAccumulator
	acc.add(openaiToolCall("call_a", "web_search", `{"query":`))
	acc.add(openaiToolCall("", "", `"a"}`))
	acc.add(openaiToolCall("call_b", "web_search", `{"query":"b"}`))

	calls := acc.result()
	require.Len(t, calls, 2)
	assert.Equal(t, `{"query":"a"}`, calls[0].Arguments)
	assert.Equal(t, "call_b", calls[1].ID)
}

func openaiToolCall(id, name, args string) openai.ToolCall {
	return openai.ToolCall{ID: id, Type: openai.ToolTypeFunction, Function: openai.FunctionCall{Name: name, Arguments: args}}
}
