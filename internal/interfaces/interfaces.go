package interfaces

import (
	"context"

	"polychat/backend/internal/auth"
	"polychat/backend/internal/model"
	"polychat/backend/internal/service"
)

// The API layer depends on these contracts rather than on the concrete
// services, so handlers can be tested against mocks.

// AuthService manages accounts.
type AuthService interface {
	Register(ctx context.Context, creds service.Credentials) (*model.User, error)
	Login(ctx context.Context, creds service.Credentials) (*model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
}

// ConversationService manages a user's stored conversations.
type ConversationService interface {
	List(ctx context.Context, userID string) ([]*model.Conversation, error)
	Create(ctx context.Context, userID string, req service.CreateConversationRequest) (*model.Conversation, error)
	Get(ctx context.Context, userID, id string) (*model.Conversation, error)
	Update(ctx context.Context, userID, id string, req service.UpdateConversationRequest) (*model.Conversation, error)
	Delete(ctx context.Context, userID, id string) error
	Messages(ctx context.Context, userID, id string) ([]model.Message, error)
}

// ChatService validates chat turns and streams them.
type ChatService interface {
	PrepareChat(ctx context.Context, userID string, req *service.ChatRequest, attachments []model.ContentPart) (*service.Turn, error)
	PrepareConversationTurn(ctx context.Context, userID, conversationID string, req *service.ConversationMessageRequest, attachments []model.ContentPart) (*service.Turn, error)
	Stream(ctx context.Context, turn *service.Turn, out chan<- model.StreamResponse)
}

// ImageService generates images.
type ImageService interface {
	Generate(ctx context.Context, userID, prompt string) (string, error)
}

// PresetService implements preset moderation.
type PresetService interface {
	ListPublic(ctx context.Context) ([]*model.PresetPrompt, error)
	ListPending(ctx context.Context, caller *auth.Identity) ([]*model.PresetPrompt, error)
	Get(ctx context.Context, caller *auth.Identity, id string) (*model.PresetPrompt, error)
	CreateAdmin(ctx context.Context, caller *auth.Identity, req service.PresetRequest) (*model.PresetPrompt, error)
	Submit(ctx context.Context, caller *auth.Identity, req service.PresetRequest) (*model.PresetPrompt, error)
	Update(ctx context.Context, caller *auth.Identity, id string, req service.PresetRequest) (*model.PresetPrompt, error)
	Delete(ctx context.Context, caller *auth.Identity, id string) error
	SetStatus(ctx context.Context, caller *auth.Identity, id string, status model.PresetStatus) (*model.PresetPrompt, error)
}

var (
	_ AuthService         = (*service.AuthService)(nil)
	_ ConversationService = (*service.ConversationService)(nil)
	_ ChatService         = (*service.ChatService)(nil)
	_ ImageService        = (*service.ImageService)(nil)
	_ PresetService       = (*service.PresetService)(nil)
)
