package db

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"sync"
)

// Dialect names accepted by SetDialect / DB_DRIVER.
const (
	MySQL    = "mysql"
	Postgres = "postgres"
	SQLite   = "sqlite"
)

var (
	dialectMu sync.RWMutex
	dialect   = MySQL
)

// SetDialect selects the SQL flavor used by Rebind and the upsert helpers.
func SetDialect(name string) {
	name = NormalizeDriver(name)
	dialectMu.Lock()
	dialect = name
	dialectMu.Unlock()
}

// CurrentDialect returns the active dialect name.
func CurrentDialect() string {
	dialectMu.RLock()
	defer dialectMu.RUnlock()
	return dialect
}

// NormalizeDriver maps common aliases onto the three supported dialects.
func NormalizeDriver(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "postgres", "postgresql", "pg", "pgx":
		return Postgres
	case "sqlite", "sqlite3":
		return SQLite
	default:
		return MySQL
	}
}

// Rebind rewrites `?` placeholders to `$n` for postgres. Quoted literals are
// left alone.
func Rebind(query string) string {
	if CurrentDialect() != Postgres || !strings.Contains(query, "?") {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	inQuote := false
	for _, r := range query {
		switch {
		case r == '\'':
			inQuote = !inQuote
			b.WriteRune(r)
		case r == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// UpsertClause returns the conflict clause that overwrites cols when a row
// with the same key already exists.
func UpsertClause(key string, cols []string) string {
	sets := make([]string, 0, len(cols))
	if CurrentDialect() == MySQL {
		for _, c := range cols {
			sets = append(sets, c+"=VALUES("+c+")")
		}
		return " ON DUPLICATE KEY UPDATE " + strings.Join(sets, ", ")
	}
	for _, c := range cols {
		sets = append(sets, c+"=excluded."+c)
	}
	return " ON CONFLICT (" + key + ") DO UPDATE SET " + strings.Join(sets, ", ")
}

// Execer is satisfied by *sql.DB and *sql.Tx.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// InsertReturningID runs an INSERT and returns the generated integer key.
// Postgres has no LastInsertId, so the query is extended with RETURNING id.
func InsertReturningID(ctx context.Context, q Execer, query string, args ...any) (int64, error) {
	if CurrentDialect() == Postgres {
		var id int64
		err := q.QueryRowContext(ctx, Rebind(query)+" RETURNING id", args...).Scan(&id)
		return id, err
	}
	res, err := q.ExecContext(ctx, Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
