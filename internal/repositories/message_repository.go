package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	intconfig "airportbot/internal/config"
	intdb "airportbot/internal/db"
	"airportbot/internal/domain"
	"airportbot/internal/domain/models"
)

type MessageRepository struct {
	DB *sql.DB
}

func (r MessageRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// UpsertBatch writes every message in one transaction; an existing id gets
// its sender, content and created_at overwritten.
func (r MessageRepository) UpsertBatch(ctx context.Context, msgs []models.Message) error {
	if len(msgs) == 0 {
		return nil
	}
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "database not connected"}
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	query := intdb.Rebind(`INSERT INTO messages (id, sender, content, created_at) VALUES (?,?,?,?)` +
		intdb.UpsertClause("id", []string{"sender", "content", "created_at"}))
	for _, m := range msgs {
		if _, err := tx.ExecContext(ctx, query, m.ID, m.Sender, m.Content, m.CreatedAt); err != nil {
			return fmt.Errorf("upsert message %s: %w", m.ID, err)
		}
	}
	return tx.Commit()
}

// GetByIDs returns the stored rows in the order of ids; unknown ids are skipped.
func (r MessageRepository) GetByIDs(ctx context.Context, ids []string) ([]models.Message, error) {
	if len(ids) == 0 {
		return []models.Message{}, nil
	}
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "database not connected"}
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	rows, err := db.QueryContext(ctx, intdb.Rebind(`SELECT id, sender, content, created_at FROM messages WHERE id IN (`+placeholders+`)`), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := map[string]models.Message{}
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.Sender, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		byID[m.ID] = m
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]models.Message, 0, len(ids))
	for _, id := range ids {
		if m, ok := byID[id]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

// List returns the conversation in chronological order, optionally filtered
// by sender.
func (r MessageRepository) List(ctx context.Context, limit, offset int, sender string) ([]models.Message, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "database not connected"}
	}
	where := "1=1"
	args := []any{}
	if sender != "" {
		where = "sender=?"
		args = append(args, sender)
	}
	args = append(args, limit, offset)

	rows, err := db.QueryContext(ctx, intdb.Rebind(`SELECT id, sender, content, created_at FROM messages WHERE `+where+` ORDER BY created_at ASC, id ASC LIMIT ? OFFSET ?`), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Message{}
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.Sender, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
