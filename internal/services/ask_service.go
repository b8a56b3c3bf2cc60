package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"airportbot/internal/clients"
	"airportbot/internal/domain"
	"airportbot/internal/domain/models"
	"airportbot/internal/repositories"
	"airportbot/internal/utils"
)

// AskService answers free-form questions against the knowledge sheet and
// records every answer.
type AskService struct {
	Repo      repositories.ResponseRepository
	Knowledge KnowledgeSource
	Answerer  Answerer
	RequestID string
}

func (s AskService) Ask(ctx context.Context, question string, rc domain.RequestContext) (models.Response, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return models.Response{}, domain.ValidationError{Field: "question", Msg: "required"}
	}
	if rc.SessionID == "" {
		rc.SessionID = uuid.NewString()
	}

	kb := ""
	if s.Knowledge != nil {
		items, err := s.Knowledge.Knowledge(ctx)
		if err != nil {
			utils.LogError(s.RequestID, "ask", "knowledge", err)
		}
		kb = clients.FormatKnowledge(items)
	}

	if s.Answerer == nil {
		return models.Response{}, domain.UpstreamError{Service: "openai", Err: errors.New("not configured")}
	}
	ans, err := s.Answerer.Answer(ctx, question, kb)
	if err == nil && strings.TrimSpace(ans.Text) == "" {
		err = errors.New("Failed to generate response")
	}
	if err != nil {
		return models.Response{}, domain.UpstreamError{Service: "openai", Err: err}
	}

	confidence := ans.Confidence
	now := utils.NowUTC()
	saved, err := s.Repo.Create(ctx, models.Response{
		Question:        question,
		Answer:          ans.Text,
		ConfidenceScore: &confidence,
		UserID:          rc.UserID,
		SessionID:       rc.SessionID,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		return models.Response{}, domain.InternalError{Msg: "failed to save response", Err: err}
	}
	utils.LogEvent(s.RequestID, "ask", "answer", fmt.Sprintf("response_id=%d confidence=%.1f", saved.ID, confidence))
	return saved, nil
}

func (s AskService) Get(ctx context.Context, id int64) (models.Response, error) {
	resp, err := s.Repo.GetByID(ctx, id)
	if domain.IsNotFound(err) {
		return models.Response{}, domain.NotFoundError{Resource: "Response", Err: err}
	}
	return resp, err
}

func (s AskService) List(ctx context.Context, f models.ResponseFilter) ([]models.Response, error) {
	if f.Skip < 0 {
		f.Skip = 0
	}
	if f.Limit <= 0 {
		f.Limit = 100
	}
	if f.Limit > 1000 {
		f.Limit = 1000
	}
	out, err := s.Repo.List(ctx, f)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to list responses", Err: err}
	}
	return out, nil
}
