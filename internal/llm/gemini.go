package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"google.golang.org/genai"
)

// ErrNoImage is returned when the image model answered without image data.
var ErrNoImage = errors.New("no image returned by model")

// GeminiProvider serves both chat completions and image generation.
type GeminiProvider struct {
	client     *genai.Client
	imageModel string
}

func NewGeminiProvider(ctx context.Context, apiKey, baseURL string, httpClient *http.Client) (*GeminiProvider, error) {
	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("could not create gemini client: %w", err)
	}
	return &GeminiProvider{client: client, imageModel: ImageModel}, nil
}

func (p *GeminiProvider) StreamChat(ctx context.Context, req *ChatRequest, ch chan<- StreamChunk) error {
	defer close(ch)

	contents, config := toGeminiRequest(req)
	var toolCalls []ToolCall
	for resp, err := range p.client.Models.GenerateContentStream(ctx, req.Model, contents, config) {
		if err != nil {
			return fmt.Errorf("gemini stream failed: %w", err)
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
			continue
		}
		for _, part := range resp.Candidates[0].Content.Parts {
			if part.FunctionCall != nil {
				toolCalls = append(toolCalls, fromGeminiFunctionCall(part.FunctionCall, len(toolCalls)))
				continue
			}
			if part.Text == "" || part.Thought {
				continue
			}
			select {
			case ch <- StreamChunk{Content: part.Text}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	if len(toolCalls) > 0 {
		slog.Debug("Gemini requested tool calls", "model", req.Model, "count", len(toolCalls))
		select {
		case ch <- StreamChunk{ToolCalls: toolCalls}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// GenerateImage asks the image model for a single image and returns the first
// inline image part of the answer.
func (p *GeminiProvider) GenerateImage(ctx context.Context, prompt string) (*Image, error) {
	resp, err := p.client.Models.GenerateContent(ctx, p.imageModel, genai.Text(prompt), nil)
	if err != nil {
		return nil, fmt.Errorf("image generation failed: %w", err)
	}
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData == nil || len(part.InlineData.Data) == 0 {
				continue
			}
			mimeType := part.InlineData.MIMEType
			if mimeType == "" {
				mimeType = "image/png"
			}
			return &Image{MIMEType: mimeType, Data: part.InlineData.Data}, nil
		}
	}
	return nil, ErrNoImage
}

func fromGeminiFunctionCall(fc *genai.FunctionCall, n int) ToolCall {
	args, err := json.Marshal(fc.Args)
	if err != nil || fc.Args == nil {
		args = []byte("{}")
	}
	id := fc.ID
	if id == "" {
		id = fmt.Sprintf("call_%d", n)
	}
	return ToolCall{ID: id, Name: fc.Name, Arguments: string(args)}
}

func toGeminiRequest(req *ChatRequest) ([]*genai.Content, *genai.GenerateContentConfig) {
	config := &genai.GenerateContentConfig{
		Temperature: req.Temperature,
		TopP:        req.TopP,
	}
	if req.System != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.MaxTokens != nil {
		config.MaxOutputTokens = int32(*req.MaxTokens)
	}
	if len(req.Tools) > 0 {
		decls := make([]*genai.FunctionDeclaration, 0, len(req.Tools))
		for _, t := range req.Tools {
			decls = append(decls, &genai.FunctionDeclaration{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  geminiSchema(t.Params),
			})
		}
		config.Tools = []*genai.Tool{{FunctionDeclarations: decls}}
	}

	contents := make([]*genai.Content, 0, len(req.Messages))
	for _, m := range req.Messages {
		if c := toGeminiContent(m); c != nil {
			contents = append(contents, c)
		}
	}
	return contents, config
}

func toGeminiContent(m Message) *genai.Content {
	switch m.Role {
	case RoleSystem:
		return nil
	case RoleTool:
		response := map[string]any{}
		if err := json.Unmarshal([]byte(m.Text()), &response); err != nil {
			response = map[string]any{"output": m.Text()}
		}
		part := &genai.Part{FunctionResponse: &genai.FunctionResponse{
			ID:       m.ToolCallID,
			Name:     m.Name,
			Response: response,
		}}
		return genai.NewContentFromParts([]*genai.Part{part}, genai.RoleUser)
	}

	parts := make([]*genai.Part, 0, len(m.Parts)+len(m.ToolCalls))
	for _, p := range m.Parts {
		if p.ImageURL == "" {
			if p.Text != "" {
				parts = append(parts, genai.NewPartFromText(p.Text))
			}
			continue
		}
		mimeType, data, err := ParseDataURL(p.ImageURL)
		if err != nil {
			// Only inline images can be sent; remote ones are referenced by text.
			parts = append(parts, genai.NewPartFromText(fmt.Sprintf("[Image: %s]", p.ImageURL)))
			continue
		}
		parts = append(parts, genai.NewPartFromBytes(data, mimeType))
	}

	var role genai.Role = genai.RoleUser
	if m.Role == RoleAssistant {
		role = genai.RoleModel
		for _, tc := range m.ToolCalls {
			args := map[string]any{}
			_ = json.Unmarshal([]byte(tc.Arguments), &args)
			parts = append(parts, &genai.Part{FunctionCall: &genai.FunctionCall{
				ID:   tc.ID,
				Name: tc.Name,
				Args: args,
			}})
		}
	}
	if len(parts) == 0 {
		return nil
	}
	return genai.NewContentFromParts(parts, role)
}

func geminiSchema(params []ToolParam) *genai.Schema {
	schema := &genai.Schema{
		Type:       genai.TypeObject,
		Properties: make(map[string]*genai.Schema, len(params)),
	}
	for _, p := range params {
		schema.Properties[p.Name] = &genai.Schema{Type: genai.TypeString, Description: p.Description}
		if p.Required {
			schema.Required = append(schema.Required, p.Name)
		}
	}
	return schema
}
