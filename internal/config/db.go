package config

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	intdb "airportbot/internal/db"
	"airportbot/internal/utils"
)

var (
	DB   *sql.DB
	dbMu sync.Mutex
)

// DriverAndDSN resolves the database/sql driver name and DSN for env.
func DriverAndDSN(env Env) (string, string) {
	dialect := intdb.NormalizeDriver(env.DBDriver)
	switch dialect {
	case intdb.Postgres:
		if env.DBDSN != "" {
			return "postgres", env.DBDSN
		}
		port := env.DBPort
		if port == "" {
			port = "5432"
		}
		return "postgres", fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			env.DBHost, port, env.DBUser, env.DBPassword, env.DBName)
	case intdb.SQLite:
		dsn := env.DBDSN
		if dsn == "" {
			dsn = "file:airport_assistant.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
		}
		return "sqlite", dsn
	default:
		if env.DBDSN != "" {
			return "mysql", env.DBDSN
		}
		port := env.DBPort
		if port == "" {
			port = "3306"
		}
		return "mysql", fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s",
			env.DBUser, env.DBPassword, env.DBHost, port, env.DBName)
	}
}

// ConnectDB initializes the shared DB connection (idempotent).
func ConnectDB(env Env) (*sql.DB, error) {
	dbMu.Lock()
	defer dbMu.Unlock()

	if DB != nil {
		return DB, nil
	}

	driver, dsn := DriverAndDSN(env)
	intdb.SetDialect(env.DBDriver)

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	if driver == "sqlite" {
		// a single writer avoids SQLITE_BUSY under concurrent requests
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
	}
	db.SetConnMaxLifetime(10 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	DB = db
	utils.Logger().Info("database connected", zap.String("driver", driver))
	return DB, nil
}

// PingDB reports whether the shared connection answers within two seconds.
func PingDB(ctx context.Context) error {
	dbMu.Lock()
	db := DB
	dbMu.Unlock()

	if db == nil {
		return fmt.Errorf("database not connected")
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return db.PingContext(ctx)
}

func CloseDB() {
	dbMu.Lock()
	defer dbMu.Unlock()

	if DB != nil {
		_ = DB.Close()
		DB = nil
	}
}
