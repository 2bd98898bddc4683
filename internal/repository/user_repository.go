package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"polychat/backend/internal/model"
)

func (r *SQLRepository) CreateUser(ctx context.Context, user *model.User) error {
	query := "INSERT INTO users (id, username, password_hash, created_at) VALUES (?, ?, ?, ?)"
	_, err := r.db.ExecContext(ctx, r.q(query), user.ID, user.Username, user.PasswordHash, user.CreatedAt)
	if err != nil {
		if r.dialect.IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("could not insert user: %w", err)
	}
	return nil
}

func (r *SQLRepository) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return r.getUser(ctx, "SELECT id, username, password_hash, created_at FROM users WHERE id = ?", id)
}

func (r *SQLRepository) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getUser(ctx, "SELECT id, username, password_hash, created_at FROM users WHERE username = ?", username)
}

func (r *SQLRepository) getUser(ctx context.Context, query string, arg string) (*model.User, error) {
	var user model.User
	err := r.db.QueryRowContext(ctx, r.q(query), arg).
		Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
