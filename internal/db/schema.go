package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

type tableDef struct {
	name string
	ddl  string
}

// column is an optional column added to existing deployments that predate it.
type column struct {
	table string
	name  string
	ddl   string
}

var tables = []tableDef{
	{"trips", `CREATE TABLE IF NOT EXISTS trips (
	id VARCHAR(64) PRIMARY KEY,
	airport_name VARCHAR(255) NOT NULL,
	travel_date VARCHAR(64) NOT NULL,
	flight_number VARCHAR(64) NOT NULL,
	travel_type VARCHAR(16) NOT NULL DEFAULT 'departure',
	flight_type VARCHAR(16) NOT NULL DEFAULT 'class_a',
	passenger_count INTEGER NOT NULL DEFAULT 0,
	order_id VARCHAR(128) NULL,
	additional_info TEXT NULL,
	buyer_name VARCHAR(255) NULL,
	buyer_phone VARCHAR(64) NULL,
	buyer_email VARCHAR(255) NULL,
	created_at {ts} NOT NULL
)`},
	{"passengers", `CREATE TABLE IF NOT EXISTS passengers (
	id VARCHAR(64) PRIMARY KEY,
	trip_id VARCHAR(64) NOT NULL,
	name VARCHAR(255) NOT NULL DEFAULT '',
	last_name VARCHAR(255) NOT NULL DEFAULT '',
	full_name VARCHAR(255) NOT NULL DEFAULT '',
	national_id VARCHAR(64) NOT NULL DEFAULT '',
	passport_number VARCHAR(64) NOT NULL DEFAULT '',
	luggage_count INTEGER NOT NULL DEFAULT 0,
	passenger_type VARCHAR(16) NOT NULL DEFAULT 'adult',
	gender VARCHAR(16) NOT NULL DEFAULT '',
	nationality VARCHAR(64) NOT NULL DEFAULT 'ایرانی',
	FOREIGN KEY (trip_id) REFERENCES trips(id) ON DELETE CASCADE
)`},
	{"messages", `CREATE TABLE IF NOT EXISTS messages (
	id VARCHAR(128) PRIMARY KEY,
	sender VARCHAR(16) NOT NULL,
	content TEXT NOT NULL,
	created_at {ts} NOT NULL
)`},
	{"responses", `CREATE TABLE IF NOT EXISTS responses (
	id {pk},
	question TEXT NOT NULL,
	answer TEXT NOT NULL,
	confidence_score {float} NULL,
	error_message TEXT NULL,
	user_id VARCHAR(128) NULL,
	session_id VARCHAR(128) NULL,
	created_at {ts} NOT NULL,
	updated_at {ts} NOT NULL
)`},
	{"passport_data", `CREATE TABLE IF NOT EXISTS passport_data (
	id {pk},
	passport_number VARCHAR(64) NOT NULL,
	full_name VARCHAR(255) NOT NULL DEFAULT '',
	nationality VARCHAR(64) NOT NULL DEFAULT 'ایرانی',
	date_of_birth VARCHAR(32) NOT NULL DEFAULT '',
	place_of_birth VARCHAR(255) NOT NULL DEFAULT '',
	date_of_issue VARCHAR(32) NOT NULL DEFAULT '',
	date_of_expiry VARCHAR(32) NOT NULL DEFAULT '',
	issuing_authority VARCHAR(255) NOT NULL DEFAULT '',
	created_at {ts} NOT NULL,
	updated_at {ts} NULL
)`},
}

var indexes = []string{
	`CREATE INDEX idx_passengers_trip_id ON passengers (trip_id)`,
	`CREATE INDEX idx_passport_data_number ON passport_data (passport_number)`,
}

var optionalColumns = []column{
	{"trips", "travel_type", "VARCHAR(16) NOT NULL DEFAULT 'departure'"},
	{"trips", "flight_type", "VARCHAR(16) NOT NULL DEFAULT 'class_a'"},
	{"trips", "passenger_count", "INTEGER NOT NULL DEFAULT 0"},
	{"trips", "order_id", "VARCHAR(128) NULL"},
	{"trips", "additional_info", "TEXT NULL"},
	{"trips", "buyer_name", "VARCHAR(255) NULL"},
	{"trips", "buyer_phone", "VARCHAR(64) NULL"},
	{"trips", "buyer_email", "VARCHAR(255) NULL"},
	{"passengers", "passport_number", "VARCHAR(64) NOT NULL DEFAULT ''"},
	{"passengers", "passenger_type", "VARCHAR(16) NOT NULL DEFAULT 'adult'"},
	{"passengers", "gender", "VARCHAR(16) NOT NULL DEFAULT ''"},
	{"passengers", "nationality", "VARCHAR(64) NOT NULL DEFAULT 'ایرانی'"},
	{"responses", "user_id", "VARCHAR(128) NULL"},
	{"responses", "session_id", "VARCHAR(128) NULL"},
}

// expandDDL fills the dialect specific type placeholders.
func expandDDL(ddl string) string {
	var pk, ts, float string
	switch CurrentDialect() {
	case Postgres:
		pk, ts, float = "BIGSERIAL PRIMARY KEY", "TIMESTAMP", "DOUBLE PRECISION"
	case SQLite:
		pk, ts, float = "INTEGER PRIMARY KEY AUTOINCREMENT", "DATETIME", "REAL"
	default:
		pk, ts, float = "BIGINT AUTO_INCREMENT PRIMARY KEY", "DATETIME", "DOUBLE"
	}
	return strings.NewReplacer("{pk}", pk, "{ts}", ts, "{float}", float).Replace(ddl)
}

// EnsureSchema creates missing tables and adds columns that older databases
// lack. It never drops or rewrites existing data.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("ensure schema: nil db")
	}
	for _, t := range tables {
		if HasTable(ctx, db, t.name) {
			continue
		}
		if _, err := db.ExecContext(ctx, expandDDL(t.ddl)); err != nil {
			return fmt.Errorf("create table %s: %w", t.name, err)
		}
		if t.name == "passengers" || t.name == "passport_data" {
			for _, idx := range indexes {
				if strings.Contains(idx, " "+t.name+" ") {
					// index names are unique per schema; a rerun after partial failure may hit an existing one
					_, _ = db.ExecContext(ctx, idx)
				}
			}
		}
	}
	for _, c := range optionalColumns {
		if HasColumn(ctx, db, c.table, c.name) {
			continue
		}
		stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", c.table, c.name, c.ddl)
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("add column %s.%s: %w", c.table, c.name, err)
		}
	}
	return nil
}
