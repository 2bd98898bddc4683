package service

import (
	"polychat/backend/internal/model"
)

// Credentials is the body of the register and login endpoints. The 72 byte
// password cap that bcrypt imposes is checked by the service, since the
// validator counts runes.
type Credentials struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=6"`
}

type CreateConversationRequest struct {
	Model    model.AIModel        `json:"model" validate:"required"`
	Settings *model.ModelSettings `json:"settings,omitempty"`
}

// UpdateConversationRequest edits a conversation. Omitted fields are unchanged.
type UpdateConversationRequest struct {
	Title    *string              `json:"title,omitempty" validate:"omitempty,max=200"`
	Settings *model.ModelSettings `json:"settings,omitempty"`
}

// ChatRequest is the payload of the stateless chat endpoint. The client sends
// the history it wants the model to see; ConversationID, when set, makes the
// server also record the turn in that conversation.
type ChatRequest struct {
	Model          model.AIModel        `json:"model" validate:"required"`
	Messages       []model.Message      `json:"messages" validate:"dive"`
	Content        []model.ContentPart  `json:"content" validate:"dive"`
	Images         []string             `json:"images"`
	Settings       *model.ModelSettings `json:"settings,omitempty"`
	ConversationID string               `json:"conversationId,omitempty"`
}

// ConversationMessageRequest continues a stored conversation with its own
// model, settings and history.
type ConversationMessageRequest struct {
	Content []model.ContentPart `json:"content" validate:"dive"`
	Images  []string            `json:"images"`
}

// PresetRequest creates or edits a preset. Status is never taken from the
// client.
type PresetRequest struct {
	Name          string              `json:"name" validate:"required,max=100"`
	Description   *string             `json:"description,omitempty" validate:"omitempty,max=500"`
	ModelSettings model.ModelSettings `json:"modelSettings"`
}

type PresetStatusRequest struct {
	Status model.PresetStatus `json:"status" validate:"required,oneof=approved rejected"`
}

type GenerateImageRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}
