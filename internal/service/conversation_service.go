package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	app_errors "polychat/backend/internal/errors"
	"polychat/backend/internal/model"
	"polychat/backend/internal/repository"
)

type ConversationService struct {
	repo repository.ConversationRepository
}

func NewConversationService(repo repository.ConversationRepository) *ConversationService {
	return &ConversationService{repo: repo}
}

// List returns the user's conversations, most recently updated first. Messages
// are not loaded.
func (s *ConversationService) List(ctx context.Context, userID string) ([]*model.Conversation, error) {
	return s.repo.ListConversations(ctx, userID)
}

func (s *ConversationService) Create(ctx context.Context, userID string, req CreateConversationRequest) (*model.Conversation, error) {
	if !req.Model.Valid() {
		return nil, fmt.Errorf("%w: unsupported model '%s'", app_errors.ErrValidation, req.Model)
	}
	now := time.Now().UTC()
	conv := &model.Conversation{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     model.DefaultConversationTitle,
		Model:     req.Model,
		Settings:  req.Settings,
		Messages:  []model.Message{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateConversation(ctx, conv); err != nil {
		return nil, fmt.Errorf("could not create conversation: %w", err)
	}
	slog.Debug("Conversation created", "conversation_id", conv.ID, "user_id", userID, "model", conv.Model)
	return conv, nil
}

func (s *ConversationService) Get(ctx context.Context, userID, id string) (*model.Conversation, error) {
	conv, err := s.repo.GetConversation(ctx, id, userID)
	if err != nil {
		return nil, translateNotFound(err, "conversation", id)
	}
	return conv, nil
}

// Update changes the title and/or settings. Messages cannot be edited.
func (s *ConversationService) Update(ctx context.Context, userID, id string, req UpdateConversationRequest) (*model.Conversation, error) {
	if req.Title == nil && req.Settings == nil {
		return nil, fmt.Errorf("%w: nothing to update", app_errors.ErrValidation)
	}
	upd := model.ConversationUpdate{Settings: req.Settings}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", app_errors.ErrValidation)
		}
		upd.Title = &title
	}

	conv, err := s.repo.UpdateConversation(ctx, id, userID, upd)
	if err != nil {
		return nil, translateNotFound(err, "conversation", id)
	}
	return conv, nil
}

// Delete removes the conversation if userID owns it. Deleting someone else's
// or a missing conversation succeeds without effect.
func (s *ConversationService) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.DeleteConversation(ctx, id, userID); err != nil {
		return fmt.Errorf("could not delete conversation: %w", err)
	}
	return nil
}

func (s *ConversationService) Messages(ctx context.Context, userID, id string) ([]model.Message, error) {
	conv, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return conv.Messages, nil
}

// translateNotFound maps the repository sentinel onto the API error.
func translateNotFound(err error, kind, id string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: %s with id '%s' not found", app_errors.ErrNotFound, kind, id)
	}
	return fmt.Errorf("could not load %s: %w", kind, err)
}
