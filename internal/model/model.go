package model

import (
	"time"
)

// AIModel identifies a user-selectable chat model.
type AIModel string

const (
	ModelGPT5     AIModel = "gpt-5"
	ModelGPT5Mini AIModel = "gpt-5-mini"
	ModelO3Mini   AIModel = "o3-mini"
	ModelGemini   AIModel = "gemini"
)

// Models lists every model the API accepts, in display order.
var Models = []AIModel{ModelGPT5, ModelGPT5Mini, ModelO3Mini, ModelGemini}

// Valid reports whether m is one of the supported models.
func (m AIModel) Valid() bool {
	for _, known := range Models {
		if m == known {
			return true
		}
	}
	return false
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ContentType discriminates the variants of ContentPart.
type ContentType string

const (
	ContentText  ContentType = "text"
	ContentImage ContentType = "image"
)

// ContentPart is a single text or image element of a message.
type ContentPart struct {
	Type ContentType `json:"type" validate:"required,oneof=text image"`
	Text string      `json:"text,omitempty"`
	URL  string      `json:"url,omitempty" validate:"required_if=Type image"`
	Alt  string      `json:"alt,omitempty"`
}

func TextPart(text string) ContentPart {
	return ContentPart{Type: ContentText, Text: text}
}

func ImagePart(url string) ContentPart {
	return ContentPart{Type: ContentImage, URL: url}
}

// Message stores a single message in a conversation.
type Message struct {
	ID        string        `json:"id"`
	Role      Role          `json:"role" validate:"required,oneof=user assistant"`
	Content   []ContentPart `json:"content" validate:"dive"`
	Model     *AIModel      `json:"model,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// ReasoningEffort is only meaningful for the o3-mini model.
type ReasoningEffort string

const (
	ReasoningLow    ReasoningEffort = "low"
	ReasoningMedium ReasoningEffort = "medium"
	ReasoningHigh   ReasoningEffort = "high"
)

// ModelSettings are optional generation parameters attached to a conversation or preset.
type ModelSettings struct {
	SystemPrompt    string          `json:"systemPrompt,omitempty"`
	Temperature     *float32        `json:"temperature,omitempty" validate:"omitempty,gte=0,lte=2"`
	MaxTokens       *int            `json:"maxTokens,omitempty" validate:"omitempty,gt=0"`
	TopP            *float32        `json:"topP,omitempty" validate:"omitempty,gte=0,lte=1"`
	ReasoningEffort ReasoningEffort `json:"reasoningEffort,omitempty" validate:"omitempty,oneof=low medium high"`
}

const (
	// DefaultConversationTitle is used until the first user message arrives.
	DefaultConversationTitle = "New chat"
	// TitleMaxLength is the number of characters kept from the first user message.
	TitleMaxLength = 50
)

// Conversation is a user's chat thread. Messages is empty in list responses.
type Conversation struct {
	ID        string         `json:"id"`
	UserID    string         `json:"userId"`
	Title     string         `json:"title"`
	Model     AIModel        `json:"model"`
	Settings  *ModelSettings `json:"settings,omitempty"`
	Messages  []Message      `json:"messages"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// ConversationUpdate carries the editable fields of a conversation; nil means unchanged.
type ConversationUpdate struct {
	Title    *string
	Settings *ModelSettings
}

// User is an account. The password hash never leaves the server.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// PresetStatus is the moderation state of a preset prompt.
type PresetStatus string

const (
	PresetAdmin    PresetStatus = "admin"
	PresetApproved PresetStatus = "approved"
	PresetPending  PresetStatus = "pending"
	PresetRejected PresetStatus = "rejected"
)

// Public reports whether presets in this state are visible to every user.
func (s PresetStatus) Public() bool {
	return s == PresetAdmin || s == PresetApproved
}

// PresetPrompt is a reusable bundle of generation settings.
type PresetPrompt struct {
	ID            string        `json:"id"`
	UserID        *string       `json:"userId,omitempty"`
	Name          string        `json:"name"`
	Description   *string       `json:"description,omitempty"`
	ModelSettings ModelSettings `json:"modelSettings"`
	Status        PresetStatus  `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// StreamResponse is one server-sent event of the chat relay. Exactly one of the
// fields is meaningful per event; Done and Error are terminal.
type StreamResponse struct {
	Content string `json:"content,omitempty"`
	Done    bool   `json:"done,omitempty"`
	Error   string `json:"error,omitempty"`
	// Partial is set on an error event when content was already delivered.
	Partial bool `json:"partial,omitempty"`
}

// Terminal reports whether no further events may follow this one.
func (r StreamResponse) Terminal() bool {
	return r.Done || r.Error != ""
}

// TitleFromContent derives a conversation title from the first text part.
// The boolean is false when the content has no text part.
func TitleFromContent(parts []ContentPart) (string, bool) {
	for _, p := range parts {
		if p.Type != ContentText {
			continue
		}
		runes := []rune(p.Text)
		if len(runes) > TitleMaxLength {
			runes = runes[:TitleMaxLength]
		}
		return string(runes), true
	}
	return "", false
}
