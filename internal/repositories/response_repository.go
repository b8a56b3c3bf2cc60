package repositories

import (
	"context"
	"database/sql"
	"errors"

	intconfig "airportbot/internal/config"
	intdb "airportbot/internal/db"
	"airportbot/internal/domain"
	"airportbot/internal/domain/models"
)

type ResponseRepository struct {
	DB *sql.DB
}

func (r ResponseRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const responseColumns = `id, question, answer, confidence_score, error_message,
	COALESCE(user_id,''), COALESCE(session_id,''), created_at, updated_at`

// Create stores resp and returns it with the generated id.
func (r ResponseRepository) Create(ctx context.Context, resp models.Response) (models.Response, error) {
	db := r.db()
	if db == nil {
		return resp, domain.InternalError{Msg: "database not connected"}
	}
	id, err := intdb.InsertReturningID(ctx, db, `INSERT INTO responses
		(question, answer, confidence_score, error_message, user_id, session_id, created_at, updated_at)
		VALUES (?,?,?,?,?,?,?,?)`,
		resp.Question, resp.Answer, nullFloat(resp.ConfidenceScore), nullString(resp.ErrorMessage),
		intdb.NullIfEmpty(resp.UserID), intdb.NullIfEmpty(resp.SessionID), resp.CreatedAt, resp.UpdatedAt,
	)
	if err != nil {
		return resp, err
	}
	resp.ID = id
	return resp, nil
}

func (r ResponseRepository) GetByID(ctx context.Context, id int64) (models.Response, error) {
	db := r.db()
	if db == nil {
		return models.Response{}, domain.InternalError{Msg: "database not connected"}
	}
	row := db.QueryRowContext(ctx, intdb.Rebind(`SELECT `+responseColumns+` FROM responses WHERE id=? LIMIT 1`), id)
	resp, err := scanResponse(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Response{}, domain.NotFoundError{Resource: "response", Err: err}
	}
	return resp, err
}

// List returns responses newest first, optionally scoped to a user or session.
func (r ResponseRepository) List(ctx context.Context, f models.ResponseFilter) ([]models.Response, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "database not connected"}
	}
	where := "1=1"
	args := []any{}
	if f.UserID != "" {
		where += " AND user_id=?"
		args = append(args, f.UserID)
	}
	if f.SessionID != "" {
		where += " AND session_id=?"
		args = append(args, f.SessionID)
	}
	args = append(args, f.Limit, f.Skip)

	rows, err := db.QueryContext(ctx, intdb.Rebind(`SELECT `+responseColumns+` FROM responses WHERE `+where+` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Response{}
	for rows.Next() {
		resp, err := scanResponse(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, rows.Err()
}

func scanResponse(s rowScanner) (models.Response, error) {
	var (
		resp  models.Response
		score sql.NullFloat64
		msg   sql.NullString
	)
	if err := s.Scan(&resp.ID, &resp.Question, &resp.Answer, &score, &msg,
		&resp.UserID, &resp.SessionID, &resp.CreatedAt, &resp.UpdatedAt); err != nil {
		return resp, err
	}
	if score.Valid {
		v := score.Float64
		resp.ConfidenceScore = &v
	}
	if msg.Valid {
		v := msg.String
		resp.ErrorMessage = &v
	}
	return resp, nil
}

func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullString(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}
