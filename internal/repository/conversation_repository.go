package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"polychat/backend/internal/model"
)

const conversationColumns = "id, user_id, title, model, settings, created_at, updated_at"

func (r *SQLRepository) ListConversations(ctx context.Context, userID string) ([]*model.Conversation, error) {
	query := "SELECT " + conversationColumns + " FROM conversations WHERE user_id = ? ORDER BY updated_at DESC"
	rows, err := r.db.QueryContext(ctx, r.q(query), userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	conversations := []*model.Conversation{}
	for rows.Next() {
		conv, err := scanConversation(rows)
		if err != nil {
			return nil, err
		}
		conv.Messages = []model.Message{}
		conversations = append(conversations, conv)
	}
	return conversations, rows.Err()
}

func (r *SQLRepository) GetConversation(ctx context.Context, id, userID string) (*model.Conversation, error) {
	query := "SELECT " + conversationColumns + " FROM conversations WHERE id = ? AND user_id = ?"
	conv, err := scanConversation(r.db.QueryRowContext(ctx, r.q(query), id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	conv.Messages, err = r.listMessages(ctx, r.db, id)
	if err != nil {
		return nil, fmt.Errorf("could not load messages: %w", err)
	}
	return conv, nil
}

func (r *SQLRepository) CreateConversation(ctx context.Context, conv *model.Conversation) error {
	settings, err := marshalNullable(conv.Settings)
	if err != nil {
		return fmt.Errorf("could not marshal settings: %w", err)
	}
	query := "INSERT INTO conversations (" + conversationColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?)"
	_, err = r.db.ExecContext(ctx, r.q(query),
		conv.ID, conv.UserID, conv.Title, string(conv.Model), settings, conv.CreatedAt, conv.UpdatedAt)
	return err
}

func (r *SQLRepository) UpdateConversation(ctx context.Context, id, userID string, upd model.ConversationUpdate) (*model.Conversation, error) {
	sets := []string{}
	args := []any{}
	if upd.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *upd.Title)
	}
	if upd.Settings != nil {
		settings, err := marshalNullable(upd.Settings)
		if err != nil {
			return nil, fmt.Errorf("could not marshal settings: %w", err)
		}
		sets = append(sets, "settings = ?")
		args = append(args, settings)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC(), id, userID)

	query := "UPDATE conversations SET " + strings.Join(sets, ", ") + " WHERE id = ? AND user_id = ?"
	res, err := r.db.ExecContext(ctx, r.q(query), args...)
	if err != nil {
		return nil, err
	}
	if err := affectedOrNotFound(res); err != nil {
		return nil, err
	}
	return r.GetConversation(ctx, id, userID)
}

// DeleteConversation removes a conversation owned by userID. Deleting a
// conversation that does not exist or belongs to someone else is a no-op.
func (r *SQLRepository) DeleteConversation(ctx context.Context, id, userID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	deleteMessages := "DELETE FROM messages WHERE conversation_id IN (SELECT id FROM conversations WHERE id = ? AND user_id = ?)"
	if _, err := tx.ExecContext(ctx, r.q(deleteMessages), id, userID); err != nil {
		return fmt.Errorf("could not delete messages: %w", err)
	}
	if _, err := tx.ExecContext(ctx, r.q("DELETE FROM conversations WHERE id = ? AND user_id = ?"), id, userID); err != nil {
		return fmt.Errorf("could not delete conversation: %w", err)
	}
	return tx.Commit()
}

// AppendMessage adds msg at the end of the conversation's message log. The
// conversation row is locked for the duration of the transaction, so
// concurrent appends are serialized and none is lost. The first message, when
// it is a user message with text, also sets the conversation title.
func (r *SQLRepository) AppendMessage(ctx context.Context, conversationID, userID string, msg *model.Message) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}
	content, err := json.Marshal(msg.Content)
	if err != nil {
		return fmt.Errorf("could not marshal message content: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var title string
	lock := "SELECT title FROM conversations WHERE id = ? AND user_id = ?" + r.dialect.LockSuffix()
	if err := tx.QueryRowContext(ctx, r.q(lock), conversationID, userID).Scan(&title); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("could not lock conversation: %w", err)
	}

	var lastSeq int64
	if err := tx.QueryRowContext(ctx, r.q("SELECT COALESCE(MAX(seq), 0) FROM messages WHERE conversation_id = ?"), conversationID).Scan(&lastSeq); err != nil {
		return fmt.Errorf("could not read message sequence: %w", err)
	}

	var modelName sql.NullString
	if msg.Model != nil {
		modelName = sql.NullString{String: string(*msg.Model), Valid: true}
	}
	insert := "INSERT INTO messages (id, conversation_id, seq, role, content, model, timestamp) VALUES (?, ?, ?, ?, ?, ?, ?)"
	if _, err := tx.ExecContext(ctx, r.q(insert),
		msg.ID, conversationID, lastSeq+1, string(msg.Role), string(content), modelName, msg.Timestamp); err != nil {
		return fmt.Errorf("could not insert message: %w", err)
	}

	if lastSeq == 0 && msg.Role == model.RoleUser {
		if derived, ok := model.TitleFromContent(msg.Content); ok {
			title = derived
		}
	}
	update := "UPDATE conversations SET title = ?, updated_at = ? WHERE id = ?"
	if _, err := tx.ExecContext(ctx, r.q(update), title, time.Now().UTC(), conversationID); err != nil {
		return fmt.Errorf("could not update conversation: %w", err)
	}

	return tx.Commit()
}

func (r *SQLRepository) listMessages(ctx context.Context, q querier, conversationID string) ([]model.Message, error) {
	query := "SELECT id, role, content, model, timestamp FROM messages WHERE conversation_id = ? ORDER BY seq ASC"
	rows, err := q.QueryContext(ctx, r.q(query), conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []model.Message{}
	for rows.Next() {
		var (
			msg       model.Message
			role      string
			content   []byte
			modelName sql.NullString
		)
		if err := rows.Scan(&msg.ID, &role, &content, &modelName, &msg.Timestamp); err != nil {
			return nil, err
		}
		msg.Role = model.Role(role)
		if err := json.Unmarshal(content, &msg.Content); err != nil {
			return nil, fmt.Errorf("corrupt content in message %s: %w", msg.ID, err)
		}
		if modelName.Valid {
			m := model.AIModel(modelName.String)
			msg.Model = &m
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanConversation(row rowScanner) (*model.Conversation, error) {
	var (
		conv      model.Conversation
		modelName string
		settings  []byte
	)
	if err := row.Scan(&conv.ID, &conv.UserID, &conv.Title, &modelName, &settings, &conv.CreatedAt, &conv.UpdatedAt); err != nil {
		return nil, err
	}
	conv.Model = model.AIModel(modelName)
	if len(settings) > 0 && string(settings) != "null" {
		var s model.ModelSettings
		if err := json.Unmarshal(settings, &s); err != nil {
			return nil, fmt.Errorf("corrupt settings in conversation %s: %w", conv.ID, err)
		}
		conv.Settings = &s
	}
	return &conv, nil
}

// marshalNullable encodes v as a JSON string, or returns nil for a nil pointer.
func marshalNullable[T any](v *T) (any, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}
