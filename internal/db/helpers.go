package db

import (
	"context"
	"database/sql"
)

// QueryRower is the subset of *sql.DB used by the schema probes.
type QueryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// NullIfEmpty helps store optional strings without wiping existing data.
func NullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// HasTable checks the catalog of the active dialect for table.
func HasTable(ctx context.Context, q QueryRower, table string) bool {
	var query string
	switch CurrentDialect() {
	case SQLite:
		query = `SELECT name FROM sqlite_master WHERE type='table' AND name = ? LIMIT 1`
	case Postgres:
		query = `SELECT table_name FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = ? LIMIT 1`
	default:
		query = `SELECT table_name FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = ? LIMIT 1`
	}
	var name sql.NullString
	if err := q.QueryRowContext(ctx, Rebind(query), table).Scan(&name); err != nil {
		return false
	}
	return name.Valid && name.String != ""
}

// HasColumn checks whether table already has column.
func HasColumn(ctx context.Context, q QueryRower, table, column string) bool {
	var query string
	switch CurrentDialect() {
	case SQLite:
		query = `SELECT name FROM pragma_table_info(?) WHERE name = ? LIMIT 1`
	case Postgres:
		query = `SELECT column_name FROM information_schema.columns WHERE table_schema = current_schema() AND table_name = ? AND column_name = ? LIMIT 1`
	default:
		query = `SELECT column_name FROM information_schema.columns WHERE table_schema = DATABASE() AND table_name = ? AND column_name = ? LIMIT 1`
	}
	var name sql.NullString
	if err := q.QueryRowContext(ctx, Rebind(query), table, column).Scan(&name); err != nil {
		return false
	}
	return name.Valid && name.String != ""
}
