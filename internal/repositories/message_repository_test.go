package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	intconfig "airportbot/internal/config"
	"airportbot/internal/domain/models"
)

func TestMessageRepositoryUpsertBatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db
	defer func() { intconfig.DB = nil }()

	now := time.Now().UTC()
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO messages (.+) ON DUPLICATE KEY UPDATE sender=VALUES\\(sender\\)").
		WithArgs("m1", "CLIENT", "سلام", now).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO messages").
		WithArgs("m2", "AVATAR", "hello", now).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = MessageRepository{}.UpsertBatch(context.Background(), []models.Message{
		{ID: "m1", Sender: "CLIENT", Content: "سلام", CreatedAt: now},
		{ID: "m2", Sender: "AVATAR", Content: "hello", CreatedAt: now},
	})
	if err != nil {
		t.Fatalf("UpsertBatch error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMessageRepositoryGetByIDsKeepsRequestOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery("FROM messages WHERE id IN").WithArgs("b", "a", "zz").
		WillReturnRows(sqlmock.NewRows([]string{"id", "sender", "content", "created_at"}).
			AddRow("a", "CLIENT", "first", now).
			AddRow("b", "AVATAR", "second", now))

	got, err := MessageRepository{DB: db}.GetByIDs(context.Background(), []string{"b", "a", "zz"})
	if err != nil {
		t.Fatalf("GetByIDs error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "b" || got[1].ID != "a" {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestMessageRepositoryListFiltersSender(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM messages WHERE sender=\\? ORDER BY created_at ASC").WithArgs("AVATAR", 50, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "sender", "content", "created_at"}).
			AddRow("a", "AVATAR", "hi", time.Now()))

	got, err := MessageRepository{DB: db}.List(context.Background(), 50, 0, "AVATAR")
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 message, got %d", len(got))
	}
}
