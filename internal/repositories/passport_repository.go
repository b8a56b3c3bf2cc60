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

type PassportRepository struct {
	DB *sql.DB
}

func (r PassportRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r PassportRepository) Create(ctx context.Context, p models.PassportData) (models.PassportData, error) {
	db := r.db()
	if db == nil {
		return p, domain.InternalError{Msg: "database not connected"}
	}
	id, err := intdb.InsertReturningID(ctx, db, `INSERT INTO passport_data
		(passport_number, full_name, nationality, date_of_birth, place_of_birth, date_of_issue,
		 date_of_expiry, issuing_authority, created_at)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		p.PassportNumber, p.FullName, p.Nationality, p.DateOfBirth, p.PlaceOfBirth, p.DateOfIssue,
		p.DateOfExpiry, p.IssuingAuthority, p.CreatedAt,
	)
	if err != nil {
		return p, err
	}
	p.ID = id
	return p, nil
}

// GetByNumber returns the most recent scan of the given passport.
func (r PassportRepository) GetByNumber(ctx context.Context, number string) (models.PassportData, error) {
	db := r.db()
	if db == nil {
		return models.PassportData{}, domain.InternalError{Msg: "database not connected"}
	}
	var (
		p       models.PassportData
		updated sql.NullTime
	)
	err := db.QueryRowContext(ctx, intdb.Rebind(`SELECT id, passport_number, full_name, nationality, date_of_birth,
		place_of_birth, date_of_issue, date_of_expiry, issuing_authority, created_at, updated_at
		FROM passport_data WHERE passport_number=? ORDER BY created_at DESC, id DESC LIMIT 1`), number).
		Scan(&p.ID, &p.PassportNumber, &p.FullName, &p.Nationality, &p.DateOfBirth, &p.PlaceOfBirth,
			&p.DateOfIssue, &p.DateOfExpiry, &p.IssuingAuthority, &p.CreatedAt, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return models.PassportData{}, domain.NotFoundError{Resource: "passport", Err: err}
	}
	if err != nil {
		return models.PassportData{}, err
	}
	if updated.Valid {
		t := updated.Time
		p.UpdatedAt = &t
	}
	return p, nil
}
