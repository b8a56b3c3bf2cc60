package services

import (
	"context"

	"airportbot/internal/domain"
	"airportbot/internal/domain/models"
	"airportbot/internal/ocr"
	"airportbot/internal/repositories"
	"airportbot/internal/utils"
)

type PassportService struct {
	Repo      repositories.PassportRepository
	OCR       TextRecognizer
	RequestID string
}

// Upload recognizes the passport page and stores whatever fields were found.
func (s PassportService) Upload(ctx context.Context, image []byte) (models.PassportData, error) {
	if len(image) == 0 {
		return models.PassportData{}, domain.ValidationError{Field: "file", Msg: "empty image"}
	}
	if s.OCR == nil {
		return models.PassportData{}, domain.InternalError{Msg: "ocr not configured"}
	}
	text, err := s.OCR.ImageToText(ctx, image)
	if err != nil {
		return models.PassportData{}, domain.InternalError{Msg: "Error processing passport image: " + err.Error(), Err: err}
	}

	data := ocr.ParsePassportText(text)
	data.CreatedAt = utils.NowUTC()
	saved, err := s.Repo.Create(ctx, data)
	if err != nil {
		return models.PassportData{}, domain.InternalError{Msg: "failed to save passport data", Err: err}
	}
	utils.LogEvent(s.RequestID, "passport", "upload", "passport_number="+saved.PassportNumber)
	return saved, nil
}

func (s PassportService) Get(ctx context.Context, number string) (models.PassportData, error) {
	p, err := s.Repo.GetByNumber(ctx, number)
	if domain.IsNotFound(err) {
		return models.PassportData{}, domain.NotFoundError{Resource: "Passport", Err: err}
	}
	return p, err
}
