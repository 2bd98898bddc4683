package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestToGeminiRequest(t *testing.T) {
	temp := float32(0.2)
	maxTokens := 512
	req := &ChatRequest{
		Model:       "gemini-2.5-pro",
		System:      "You are terse",
		Temperature: &temp,
		MaxTokens:   &maxTokens,
		Tools:       []Tool{WebSearchTool},
		Messages: []Message{
			{Role: RoleUser, Parts: []Part{{Text: "look"}, {ImageURL: "data:image/jpeg;base64,/9j/"}}},
			textMessage(RoleAssistant, "a cat"),
			{Role: RoleAssistant, ToolCalls: []ToolCall{{ID: "call_0", Name: "web_search", Arguments: `{"query":"cats"}`}}},
			{Role: RoleTool, ToolCallID: "call_0", Name: "web_search", Parts: []Part{{Text: `{"answer":"meow"}`}}},
			{Role: RoleUser, Parts: []Part{{ImageURL: "https://example.com/cat.png"}}},
		},
	}

	contents, config := toGeminiRequest(req)

	require.NotNil(t, config.SystemInstruction)
	assert.Equal(t, "You are terse", config.SystemInstruction.Parts[0].Text)
	require.NotNil(t, config.Temperature)
	assert.Equal(t, temp, *config.Temperature)
	assert.Nil(t, config.TopP)
	assert.Equal(t, int32(512), config.MaxOutputTokens)
	require.Len(t, config.Tools, 1)
	decl := config.Tools[0].FunctionDeclarations[0]
	assert.Equal(t, "web_search", decl.Name)
	assert.Equal(t, []string{"query"}, decl.Parameters.Required)

	require.Len(t, contents, 5)

	user := contents[0]
	assert.Equal(t, "user", user.Role)
	require.Len(t, user.Parts, 2)
	require.NotNil(t, user.Parts[1].InlineData)
	assert.Equal(t, "image/jpeg", user.Parts[1].InlineData.MIMEType)

	assert.Equal(t, "model", contents[1].Role)
	assert.Equal(t, "a cat", contents[1].Parts[0].Text)

	call := contents[2].Parts[0].FunctionCall
	require.NotNil(t, call)
	assert.Equal(t, "cats", call.Args["query"])

	resp := contents[3].Parts[0].FunctionResponse
	require.NotNil(t, resp)
	assert.Equal(t, "meow", resp.Response["answer"])

	assert.Equal(t, "[Image: https://example.com/cat.png]", contents[4].Parts[0].Text)
}

func TestToGeminiRequest_ToolOutputNotJSON(t *testing.T) {
	contents, _ := toGeminiRequest(&ChatRequest{Messages: []Message{
		{Role: RoleTool, Name: "web_search", Parts: []Part{{Text: "plain output"}}},
	}})
	require.Len(t, contents, 1)
	assert.Equal(t, "plain output", contents[0].Parts[0].FunctionResponse.Response["output"])
}

// geminiServer fakes the Gemini REST API. Streaming requests receive the
// events as server-sent events; other requests receive the first event as
// a plain JSON body.
func geminiServer(t *testing.T, events ...string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, ":streamGenerateContent"):
			w.Header().Set("Content-Type", "text/event-stream")
			for _, e := range events {
				_, _ = fmt.Fprintf(w, "data: %s\r\n\r\n", e)
			}
		case strings.HasSuffix(r.URL.Path, ":generateContent"):
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(events[0]))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestGeminiProvider_StreamChat(t *testing.T) {
	server := geminiServer(t,
		`{"candidates":[{"content":{"role":"model","parts":[{"text":"Hello"}]}}]}`,
		`{"candidates":[{"content":{"role":"model","parts":[{"text":" there"},{"functionCall":{"name":"web_search","args":{"query":"go"}}}]}}]}`,
	)
	provider, err := NewGeminiProvider(context.Background(), "test-key", server.URL, server.Client())
	require.NoError(t, err)

	chunks, err := collect(t, provider, &ChatRequest{Model: "gemini-2.5-pro", Messages: []Message{textMessage(RoleUser, "hi")}})

	require.NoError(t, err)
	require.Len(t, chunks, 3)
	assert.Equal(t, "Hello", chunks[0].Content)
	assert.Equal(t, " there", chunks[1].Content)
	require.Len(t, chunks[2].ToolCalls, 1)
	assert.Equal(t, ToolCall{ID: "call_0", Name: "web_search", Arguments: `{"query":"go"}`}, chunks[2].ToolCalls[0])
}

func TestGeminiProvider_GenerateImage(t *testing.T) {
	t.Run("Returns inline image", func(t *testing.T) {
		server := geminiServer(t, `{"candidates":[{"content":{"role":"model","parts":[{"text":"here"},{"inlineData":{"mimeType":"image/png","data":"cG5n"}}]}}]}`)
		provider, err := NewGeminiProvider(context.Background(), "test-key", server.URL, server.Client())
		require.NoError(t, err)

		img, err := provider.GenerateImage(context.Background(), "a cat")

		require.NoError(t, err)
		assert.Equal(t, "data:image/png;base64,cG5n", img.DataURL())
	})

	t.Run("Text only answer", func(t *testing.T) {
		server := geminiServer(t, `{"candidates":[{"content":{"role":"model","parts":[{"text":"I cannot draw that"}]}}]}`)
		provider, err := NewGeminiProvider(context.Background(), "test-key", server.URL, server.Client())
		require.NoError(t, err)

		_, err = provider.GenerateImage(context.Background(), "a cat")

		assert.ErrorIs(t, err, ErrNoImage)
	})
}

func TestFromGeminiFunctionCall_KeepsVendorID(t *testing.T) {
	call := fromGeminiFunctionCall(&genai.FunctionCall{ID: "fc-1", Name: "web_search"}, 3)
	assert.Equal(t, "fc-1", call.ID)
	assert.Equal(t, "{}", call.Arguments)
}
