package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"airportbot/internal/clients"
	"airportbot/internal/domain"
	"airportbot/internal/repositories"
)

func TestAskServiceAskStoresAnswer(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO responses").
		WithArgs("Where is gate 3?", "Gate 3 is on level 2.", 0.8, nil, "u1", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(42, 1))

	ans := &fakeAnswerer{ans: clients.Answer{Text: "Gate 3 is on level 2.", Confidence: 0.8}}
	svc := AskService{
		Repo: repositories.ResponseRepository{DB: db},
		Knowledge: fakeKnowledge{items: []clients.KnowledgeItem{
			{Question: "Gates?", Answer: "Level 2", Category: "General"},
		}},
		Answerer: ans,
	}

	got, err := svc.Ask(context.Background(), " Where is gate 3? ", domain.RequestContext{UserID: "u1"})
	if err != nil {
		t.Fatalf("Ask error: %v", err)
	}
	if got.ID != 42 || got.SessionID == "" {
		t.Fatalf("expected id 42 and generated session, got %+v", got)
	}
	if !strings.Contains(ans.gotKB, "Level 2") {
		t.Fatalf("knowledge base not passed to answerer: %q", ans.gotKB)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAskServiceKnowledgeFailureStillAnswers(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.ExpectExec("INSERT INTO responses").WillReturnResult(sqlmock.NewResult(1, 1))

	ans := &fakeAnswerer{ans: clients.Answer{Text: "ok", Confidence: 0.5}}
	svc := AskService{
		Repo:      repositories.ResponseRepository{DB: db},
		Knowledge: fakeKnowledge{err: errors.New("sheet unavailable")},
		Answerer:  ans,
	}
	if _, err := svc.Ask(context.Background(), "q", domain.RequestContext{SessionID: "s"}); err != nil {
		t.Fatalf("Ask error: %v", err)
	}
	if ans.gotKB != "" {
		t.Fatalf("expected empty knowledge base, got %q", ans.gotKB)
	}
}

func TestAskServiceErrors(t *testing.T) {
	svc := AskService{Answerer: &fakeAnswerer{ans: clients.Answer{Text: "  "}}}
	if _, err := svc.Ask(context.Background(), "", domain.RequestContext{}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := svc.Ask(context.Background(), "q", domain.RequestContext{}); !domain.IsUpstream(err) {
		t.Fatalf("expected upstream error for empty answer, got %v", err)
	}
}

func TestAskServiceGetNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.ExpectQuery("FROM responses WHERE id").WithArgs(7).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = AskService{Repo: repositories.ResponseRepository{DB: db}}.Get(context.Background(), 7)
	if err == nil || err.Error() != "Response not found" {
		t.Fatalf("expected Response not found, got %v", err)
	}
}
