package llm

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"

	app_errors "polychat/backend/internal/errors"
)

// Role is the author of a provider-side message. Unlike stored messages,
// provider requests also carry system and tool messages.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Part is either a text fragment or an image reference (data URL or http URL).
type Part struct {
	Text     string
	ImageURL string
}

type Message struct {
	Role  Role
	Parts []Part
	// ToolCalls is set on assistant messages that requested tools.
	ToolCalls []ToolCall
	// ToolCallID and Name identify the call a tool message answers.
	ToolCallID string
	Name       string
}

// Text concatenates the message's text parts.
func (m Message) Text() string {
	var s string
	for _, p := range m.Parts {
		s += p.Text
	}
	return s
}

// ToolParam describes one string argument of a tool.
type ToolParam struct {
	Name        string
	Description string
	Required    bool
}

// Tool is a function the model may ask the server to run.
type Tool struct {
	Name        string
	Description string
	Params      []ToolParam
}

// ToolCall is a completed tool request. Arguments is the raw JSON object.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// ChatRequest is the vendor-neutral form of a completion request. Optional
// parameters are nil or empty when they must not reach the vendor.
type ChatRequest struct {
	Model           string
	System          string
	Messages        []Message
	Temperature     *float32
	TopP            *float32
	MaxTokens       *int
	ReasoningEffort string
	Tools           []Tool
}

// StreamChunk carries either a text delta or, once per round, the tool calls
// the model requested.
type StreamChunk struct {
	Content   string
	ToolCalls []ToolCall
}

// ChatProvider streams a chat completion.
type ChatProvider interface {
	// StreamChat sends chunks on ch and closes it before returning. A non-nil
	// error means the stream ended abnormally.
	StreamChat(ctx context.Context, req *ChatRequest, ch chan<- StreamChunk) error
}

// Image is a generated image.
type Image struct {
	MIMEType string
	Data     []byte
}

// DataURL encodes the image as a base64 data URL.
func (i *Image) DataURL() string {
	return fmt.Sprintf("data:%s;base64,%s", i.MIMEType, base64.StdEncoding.EncodeToString(i.Data))
}

// ImageGenerator creates an image from a text prompt.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (*Image, error)
}

// Registry maps vendors to their configured providers. A vendor without
// credentials has no entry, which is reported at request time.
type Registry struct {
	mu        sync.RWMutex
	providers map[Vendor]ChatProvider
}

func NewRegistry() *Registry {
	return &Registry{providers: make(map[Vendor]ChatProvider)}
}

func (r *Registry) Register(vendor Vendor, p ChatProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[vendor] = p
}

// Provider returns the provider for vendor or ErrProviderUnavailable.
func (r *Registry) Provider(vendor Vendor) (ChatProvider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[vendor]
	if !ok {
		return nil, fmt.Errorf("%w: %s API key is not configured", app_errors.ErrProviderUnavailable, vendor)
	}
	return p, nil
}
