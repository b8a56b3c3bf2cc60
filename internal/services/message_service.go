package services

import (
	"context"
	"fmt"
	"strings"

	"airportbot/internal/domain"
	"airportbot/internal/domain/models"
	"airportbot/internal/repositories"
	"airportbot/internal/utils"
)

type MessageService struct {
	Repo      repositories.MessageRepository
	RequestID string
}

// SaveBatch upserts the batch keyed on message id and returns the stored
// rows in first-seen order. A repeated id keeps its last payload.
func (s MessageService) SaveBatch(ctx context.Context, in []models.MessageCreate) ([]models.Message, error) {
	if len(in) == 0 {
		return []models.Message{}, nil
	}

	now := utils.NowUTC()
	order := make([]string, 0, len(in))
	byID := make(map[string]models.Message, len(in))
	for i, m := range in {
		id := strings.TrimSpace(m.ID)
		if id == "" {
			return nil, domain.ValidationError{Field: fmt.Sprintf("[%d].id", i), Msg: "required"}
		}
		sender := strings.ToUpper(strings.TrimSpace(m.Sender))
		if sender != models.SenderClient && sender != models.SenderAvatar {
			return nil, domain.ValidationError{Field: fmt.Sprintf("[%d].sender", i), Msg: "must be CLIENT or AVATAR"}
		}
		if _, seen := byID[id]; !seen {
			order = append(order, id)
		}
		byID[id] = models.Message{ID: id, Sender: sender, Content: m.Text, CreatedAt: now}
	}

	batch := make([]models.Message, 0, len(order))
	for _, id := range order {
		batch = append(batch, byID[id])
	}
	if err := s.Repo.UpsertBatch(ctx, batch); err != nil {
		return nil, domain.InternalError{Msg: "failed to save messages", Err: err}
	}

	saved, err := s.Repo.GetByIDs(ctx, order)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to load saved messages", Err: err}
	}
	utils.LogEvent(s.RequestID, "messages", "save_batch", fmt.Sprintf("count=%d", len(saved)))
	return saved, nil
}

func (s MessageService) List(ctx context.Context, page domain.Pagination, sender string) ([]models.Message, error) {
	page = page.Normalize(100, 500)
	sender = strings.ToUpper(strings.TrimSpace(sender))
	if sender != "" && sender != models.SenderClient && sender != models.SenderAvatar {
		return nil, domain.ValidationError{Field: "sender", Msg: "must be CLIENT or AVATAR"}
	}
	msgs, err := s.Repo.List(ctx, page.Limit, page.Offset, sender)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to list messages", Err: err}
	}
	return msgs, nil
}
