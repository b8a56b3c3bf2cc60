package services

import (
	"context"
	"errors"
	"fmt"

	"airportbot/internal/domain"
	"airportbot/internal/domain/models"
	"airportbot/internal/utils"
)

type ExtractInfoService struct {
	Extractor TripExtractor
	RequestID string
}

// Extract pulls trip details out of a conversation transcript. The travel
// date is normalized to YYYY/MM/DD when it parses.
func (s ExtractInfoService) Extract(ctx context.Context, req models.ExtractInfoRequest) (models.ExtractInfoResponse, error) {
	if len(req.Messages) == 0 {
		return models.ExtractInfoResponse{}, domain.ValidationError{Field: "messages", Msg: "required"}
	}
	if s.Extractor == nil {
		return models.ExtractInfoResponse{}, domain.UpstreamError{Service: "openai", Err: errors.New("not configured")}
	}
	out, err := s.Extractor.ExtractTripInfo(ctx, req.Messages)
	if err != nil {
		return models.ExtractInfoResponse{}, domain.UpstreamError{Service: "openai", Err: err}
	}
	out.TravelDate = utils.ConvertToStandardDate(out.TravelDate)
	if out.Passengers == nil {
		out.Passengers = []models.ExtractedPassenger{}
	}
	utils.LogEvent(s.RequestID, "extract", "trip_info", fmt.Sprintf("lines=%d passengers=%d", len(req.Messages), len(out.Passengers)))
	return out, nil
}
