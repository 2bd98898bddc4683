package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"polychat/backend/internal/auth"
	app_errors "polychat/backend/internal/errors"
	"polychat/backend/internal/model"
	"polychat/backend/internal/notify"
	"polychat/backend/internal/repository"
)

// PresetService implements the moderation workflow: admins publish presets
// directly, other users submit them for review.
type PresetService struct {
	repo     repository.PresetRepository
	notifier notify.Notifier
}

func NewPresetService(repo repository.PresetRepository, notifier notify.Notifier) *PresetService {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	return &PresetService{repo: repo, notifier: notifier}
}

// ListPublic returns admin and approved presets, newest first.
func (s *PresetService) ListPublic(ctx context.Context) ([]*model.PresetPrompt, error) {
	return s.repo.ListPresets(ctx, model.PresetAdmin, model.PresetApproved)
}

func (s *PresetService) ListPending(ctx context.Context, caller *auth.Identity) ([]*model.PresetPrompt, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	return s.repo.ListPresets(ctx, model.PresetPending)
}

// Get returns a preset. Pending and rejected presets are only visible to the
// admin and their author; everyone else gets ErrNotFound.
func (s *PresetService) Get(ctx context.Context, caller *auth.Identity, id string) (*model.PresetPrompt, error) {
	preset, err := s.repo.GetPreset(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, "preset", id)
	}
	if preset.Status.Public() || canSeeUnpublished(caller, preset) {
		return preset, nil
	}
	return nil, fmt.Errorf("%w: preset with id '%s' not found", app_errors.ErrNotFound, id)
}

// CreateAdmin publishes a preset immediately.
func (s *PresetService) CreateAdmin(ctx context.Context, caller *auth.Identity, req PresetRequest) (*model.PresetPrompt, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	return s.create(ctx, caller, req, model.PresetAdmin)
}

// Submit stores a user's preset as pending, whatever the request says, and
// notifies the operators.
func (s *PresetService) Submit(ctx context.Context, caller *auth.Identity, req PresetRequest) (*model.PresetPrompt, error) {
	if caller == nil {
		return nil, app_errors.ErrUnauthorized
	}
	preset, err := s.create(ctx, caller, req, model.PresetPending)
	if err != nil {
		return nil, err
	}
	s.notifier.NotifyPresetSubmitted(ctx, preset.Name, caller.Username)
	return preset, nil
}

// Update edits name, description and settings. The status is kept.
func (s *PresetService) Update(ctx context.Context, caller *auth.Identity, id string, req PresetRequest) (*model.PresetPrompt, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	preset, err := s.repo.GetPreset(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, "preset", id)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", app_errors.ErrValidation)
	}
	preset.Name = name
	preset.Description = req.Description
	preset.ModelSettings = req.ModelSettings
	preset.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdatePreset(ctx, preset); err != nil {
		return nil, translateNotFound(err, "preset", id)
	}
	return preset, nil
}

func (s *PresetService) Delete(ctx context.Context, caller *auth.Identity, id string) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}
	if _, err := s.repo.GetPreset(ctx, id); err != nil {
		return translateNotFound(err, "preset", id)
	}
	if err := s.repo.DeletePreset(ctx, id); err != nil {
		return fmt.Errorf("could not delete preset: %w", err)
	}
	slog.Info("Preset deleted", "preset_id", id)
	return nil
}

// SetStatus moderates a pending preset. Only pending -> approved|rejected is
// allowed; anything else is a conflict.
func (s *PresetService) SetStatus(ctx context.Context, caller *auth.Identity, id string, status model.PresetStatus) (*model.PresetPrompt, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	if status != model.PresetApproved && status != model.PresetRejected {
		return nil, fmt.Errorf("%w: status must be '%s' or '%s'", app_errors.ErrValidation, model.PresetApproved, model.PresetRejected)
	}

	preset, err := s.repo.GetPreset(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, "preset", id)
	}
	if preset.Status != model.PresetPending {
		return nil, fmt.Errorf("%w: preset is '%s', only pending presets can be moderated", app_errors.ErrConflict, preset.Status)
	}

	if err := s.repo.UpdatePresetStatus(ctx, id, model.PresetPending, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: preset was moderated concurrently", app_errors.ErrConflict)
		}
		return nil, fmt.Errorf("could not update preset status: %w", err)
	}
	slog.Info("Preset moderated", "preset_id", id, "status", status)

	preset.Status = status
	preset.UpdatedAt = time.Now().UTC()
	return preset, nil
}

func (s *PresetService) create(ctx context.Context, caller *auth.Identity, req PresetRequest, status model.PresetStatus) (*model.PresetPrompt, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", app_errors.ErrValidation)
	}
	now := time.Now().UTC()
	userID := caller.UserID
	preset := &model.PresetPrompt{
		ID:            uuid.NewString(),
		UserID:        &userID,
		Name:          name,
		Description:   req.Description,
		ModelSettings: req.ModelSettings,
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.CreatePreset(ctx, preset); err != nil {
		return nil, fmt.Errorf("could not create preset: %w", err)
	}
	return preset, nil
}

func requireAdmin(caller *auth.Identity) error {
	if caller == nil {
		return app_errors.ErrUnauthorized
	}
	if !caller.IsAdmin {
		return fmt.Errorf("%w: admin access required", app_errors.ErrPermission)
	}
	return nil
}

func canSeeUnpublished(caller *auth.Identity, preset *model.PresetPrompt) bool {
	if caller == nil {
		return false
	}
	return caller.IsAdmin || (preset.UserID != nil && *preset.UserID == caller.UserID)
}
