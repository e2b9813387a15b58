package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/xvierd/smokefree-cli/internal/domain"
	"github.com/xvierd/smokefree-cli/internal/ports"
)

// chatRepository implements ports.ChatRepository using SQLite.
// Insertion order is the seq column, never the timestamp.
type chatRepository struct {
	db *sql.DB
}

func newChatRepository(db *sql.DB) ports.ChatRepository {
	return &chatRepository{db: db}
}

// Append adds a message to the end of the log.
func (r *chatRepository) Append(ctx context.Context, m *domain.ChatMessage) error {
	query := `
		INSERT INTO chat_messages (id, role, text, fallback, sent_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query, m.ID, string(m.Role), m.Text, boolToInt(m.Fallback), m.SentAt.UnixMilli())
	if isUniqueConstraintError(err) {
		return fmt.Errorf("chat message %s already appended", m.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to append chat message: %w", err)
	}
	return nil
}

// History returns the newest limit messages in insertion order.
func (r *chatRepository) History(ctx context.Context, limit int) ([]*domain.ChatMessage, error) {
	if limit <= 0 {
		limit = -1
	}
	query := `
		SELECT id, role, text, fallback, sent_at FROM (
			SELECT seq, id, role, text, fallback, sent_at
			FROM chat_messages
			ORDER BY seq DESC
			LIMIT ?
		) ORDER BY seq ASC
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var msgs []*domain.ChatMessage
	for rows.Next() {
		var m domain.ChatMessage
		var role string
		var fallback int
		var sentAt int64
		if err := rows.Scan(&m.ID, &role, &m.Text, &fallback, &sentAt); err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %w", err)
		}
		m.Role = domain.ChatRole(role)
		m.Fallback = fallback != 0
		m.SentAt = time.UnixMilli(sentAt)
		msgs = append(msgs, &m)
	}
	return msgs, rows.Err()
}

// Clear removes every message.
func (r *chatRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM chat_messages`); err != nil {
		return fmt.Errorf("failed to clear chat history: %w", err)
	}
	return nil
}
