package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"polychat/backend/internal/model"
)

const presetColumns = "id, user_id, name, description, model_settings, status, created_at, updated_at"

// ListPresets returns presets in any of the given states, newest first.
// Without statuses every preset is returned.
func (r *SQLRepository) ListPresets(ctx context.Context, statuses ...model.PresetStatus) ([]*model.PresetPrompt, error) {
	query := "SELECT " + presetColumns + " FROM preset_prompts"
	args := make([]any, 0, len(statuses))
	if len(statuses) > 0 {
		placeholders := make([]string, len(statuses))
		for i, s := range statuses {
			placeholders[i] = "?"
			args = append(args, string(s))
		}
		query += " WHERE status IN (" + strings.Join(placeholders, ", ") + ")"
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, r.q(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	presets := []*model.PresetPrompt{}
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, err
		}
		presets = append(presets, p)
	}
	return presets, rows.Err()
}

func (r *SQLRepository) GetPreset(ctx context.Context, id string) (*model.PresetPrompt, error) {
	query := "SELECT " + presetColumns + " FROM preset_prompts WHERE id = ?"
	p, err := scanPreset(r.db.QueryRowContext(ctx, r.q(query), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *SQLRepository) CreatePreset(ctx context.Context, p *model.PresetPrompt) error {
	settings, err := json.Marshal(p.ModelSettings)
	if err != nil {
		return fmt.Errorf("could not marshal model settings: %w", err)
	}
	query := "INSERT INTO preset_prompts (" + presetColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?)"
	_, err = r.db.ExecContext(ctx, r.q(query),
		p.ID, p.UserID, p.Name, p.Description, string(settings), string(p.Status), p.CreatedAt, p.UpdatedAt)
	return err
}

// UpdatePreset overwrites the editable fields of a preset. Status is left alone.
func (r *SQLRepository) UpdatePreset(ctx context.Context, p *model.PresetPrompt) error {
	settings, err := json.Marshal(p.ModelSettings)
	if err != nil {
		return fmt.Errorf("could not marshal model settings: %w", err)
	}
	query := "UPDATE preset_prompts SET name = ?, description = ?, model_settings = ?, updated_at = ? WHERE id = ?"
	res, err := r.db.ExecContext(ctx, r.q(query), p.Name, p.Description, string(settings), p.UpdatedAt, p.ID)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

// UpdatePresetStatus moves a preset from one status to another. It returns
// ErrNotFound when the preset does not exist or is no longer in state from.
func (r *SQLRepository) UpdatePresetStatus(ctx context.Context, id string, from, to model.PresetStatus) error {
	query := "UPDATE preset_prompts SET status = ?, updated_at = ? WHERE id = ? AND status = ?"
	res, err := r.db.ExecContext(ctx, r.q(query), string(to), time.Now().UTC(), id, string(from))
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

func (r *SQLRepository) DeletePreset(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, r.q("DELETE FROM preset_prompts WHERE id = ?"), id)
	return err
}

func scanPreset(row rowScanner) (*model.PresetPrompt, error) {
	var (
		p           model.PresetPrompt
		userID      sql.NullString
		description sql.NullString
		settings    []byte
		status      string
	)
	if err := row.Scan(&p.ID, &userID, &p.Name, &description, &settings, &status, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if userID.Valid {
		p.UserID = &userID.String
	}
	if description.Valid {
		p.Description = &description.String
	}
	if err := json.Unmarshal(settings, &p.ModelSettings); err != nil {
		return nil, fmt.Errorf("corrupt model settings in preset %s: %w", p.ID, err)
	}
	p.Status = model.PresetStatus(status)
	return &p, nil
}
