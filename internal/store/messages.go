package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Message is one turn entry in a thread's append-only log.
type Message struct {
	ID        uuid.UUID
	ThreadID  string
	Role      string // "user" or "assistant"
	Content   string
	CreatedAt time.Time
}

const insertMessageSQL = `
	INSERT INTO concierge_messages (id, thread_id, role, content, created_at)
	VALUES ($1, $2, $3, $4, now())`

// AppendTurn writes the user message and the assistant reply as one
// transaction, so a failed write leaves no partial turn behind.
//
// Concurrent turns on the same thread are not coordinated: two simultaneous
// requests may interleave their history reads and both append. Each row
// carries its own timestamp and nothing more, a known product-level gap,
// deliberately not papered over with locking here.
func (s *Store) AppendTurn(ctx context.Context, threadID, userText, assistantJSON string) (uuid.UUID, uuid.UUID, error) {
	userID := uuid.New()
	assistantID := uuid.New()

	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, insertMessageSQL, userID, threadID, "user", userText); err != nil {
			return fmt.Errorf("insert user message: %w", err)
		}
		if _, err := tx.Exec(ctx, insertMessageSQL, assistantID, threadID, "assistant", assistantJSON); err != nil {
			return fmt.Errorf("insert assistant message: %w", err)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("append turn: %w", err)
	}
	return userID, assistantID, nil
}

// RecentMessages returns up to limit prior rows for a thread, oldest first.
// Rows always arrive in whole turns since AppendTurn writes them in pairs;
// ordering is by insert sequence, not timestamp, because both rows of a turn
// share the transaction's now().
func (s *Store) RecentMessages(ctx context.Context, threadID string, limit int) ([]Message, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, thread_id, role, content, created_at
		FROM (
			SELECT id, seq, thread_id, role, content, created_at
			FROM concierge_messages
			WHERE thread_id = $1
			ORDER BY seq DESC
			LIMIT $2
		) recent
		ORDER BY seq ASC`,
		threadID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.ThreadID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
