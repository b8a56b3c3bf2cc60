package db

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func expectAllTables(mock sqlmock.Sqlmock) {
	for _, t := range tables {
		mock.ExpectQuery("information_schema\\.tables").WithArgs(t.name).
			WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow(t.name))
	}
}

func TestEnsureSchemaNoopWhenUpToDate(t *testing.T) {
	SetDialect(MySQL)
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectAllTables(mock)
	for _, c := range optionalColumns {
		mock.ExpectQuery("information_schema\\.columns").WithArgs(c.table, c.name).
			WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow(c.name))
	}

	if err := EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("EnsureSchema error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEnsureSchemaAddsMissingColumn(t *testing.T) {
	SetDialect(MySQL)
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectAllTables(mock)
	for _, c := range optionalColumns {
		q := mock.ExpectQuery("information_schema\\.columns").WithArgs(c.table, c.name)
		if c.table == "passengers" && c.name == "nationality" {
			q.WillReturnRows(sqlmock.NewRows([]string{"column_name"}))
			mock.ExpectExec("ALTER TABLE passengers ADD COLUMN nationality").
				WillReturnResult(sqlmock.NewResult(0, 0))
			continue
		}
		q.WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow(c.name))
	}

	if err := EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("EnsureSchema error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEnsureSchemaCreatesMissingTable(t *testing.T) {
	SetDialect(MySQL)
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	for _, tb := range tables {
		q := mock.ExpectQuery("information_schema\\.tables").WithArgs(tb.name)
		if tb.name == "messages" {
			q.WillReturnRows(sqlmock.NewRows([]string{"table_name"}))
			continue
		}
		q.WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow(tb.name))
	}
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS messages").WillReturnResult(sqlmock.NewResult(0, 0))
	for _, c := range optionalColumns {
		mock.ExpectQuery("information_schema\\.columns").WithArgs(c.table, c.name).
			WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow(c.name))
	}

	if err := EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("EnsureSchema error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
