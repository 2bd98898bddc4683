package repository

import (
	"context"
	"database/sql"

	"polychat/backend/internal/database"
	"polychat/backend/internal/model"
)

// UserRepository stores accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
}

// ConversationRepository stores conversations and their append-only message log.
// Every method is scoped by the owning user's id.
type ConversationRepository interface {
	ListConversations(ctx context.Context, userID string) ([]*model.Conversation, error)
	GetConversation(ctx context.Context, id, userID string) (*model.Conversation, error)
	CreateConversation(ctx context.Context, conv *model.Conversation) error
	UpdateConversation(ctx context.Context, id, userID string, upd model.ConversationUpdate) (*model.Conversation, error)
	DeleteConversation(ctx context.Context, id, userID string) error
	AppendMessage(ctx context.Context, conversationID, userID string, msg *model.Message) error
}

// PresetRepository stores preset prompts.
type PresetRepository interface {
	ListPresets(ctx context.Context, statuses ...model.PresetStatus) ([]*model.PresetPrompt, error)
	GetPreset(ctx context.Context, id string) (*model.PresetPrompt, error)
	CreatePreset(ctx context.Context, preset *model.PresetPrompt) error
	UpdatePreset(ctx context.Context, preset *model.PresetPrompt) error
	UpdatePresetStatus(ctx context.Context, id string, from, to model.PresetStatus) error
	DeletePreset(ctx context.Context, id string) error
}

// SQLRepository implements every repository interface on top of database/sql.
// Queries are written with '?' placeholders and rebound for the dialect.
type SQLRepository struct {
	db      *sql.DB
	dialect database.Dialect
}

func NewSQLRepository(db *sql.DB, dialect database.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

var (
	_ UserRepository         = (*SQLRepository)(nil)
	_ ConversationRepository = (*SQLRepository)(nil)
	_ PresetRepository       = (*SQLRepository)(nil)
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *SQLRepository) q(query string) string {
	return r.dialect.Rebind(query)
}

// affectedOrNotFound turns a zero-row update into ErrNotFound.
func affectedOrNotFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
