package services

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"airportbot/internal/domain"
	"airportbot/internal/domain/models"
	"airportbot/internal/repositories"
)

func TestExtractInfoServiceNormalizesDate(t *testing.T) {
	svc := ExtractInfoService{Extractor: fakeExtractor{out: models.ExtractInfoResponse{
		AirportName: "Mehrabad", TravelDate: "۲۰۲۴-۰۸-۰۲", FlightNumber: "IR 452",
	}}}
	out, err := svc.Extract(context.Background(), models.ExtractInfoRequest{
		Messages: []models.ConversationLine{{Sender: "CLIENT", Content: "flying IR 452 from Mehrabad"}},
	})
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if out.TravelDate != "2024/08/02" {
		t.Fatalf("expected normalized date, got %q", out.TravelDate)
	}
	if out.Passengers == nil {
		t.Fatalf("passengers should be an empty list, not nil")
	}
}

func TestExtractInfoServiceErrors(t *testing.T) {
	if _, err := (ExtractInfoService{}).Extract(context.Background(), models.ExtractInfoRequest{}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	svc := ExtractInfoService{Extractor: fakeExtractor{err: errors.New("bad json")}}
	req := models.ExtractInfoRequest{Messages: []models.ConversationLine{{Sender: "CLIENT", Content: "hi"}}}
	if _, err := svc.Extract(context.Background(), req); !domain.IsUpstream(err) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestPassportServiceUpload(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.ExpectExec("INSERT INTO passport_data").WillReturnResult(sqlmock.NewResult(3, 1))

	text := "PASSPORT No P1234567\nName: JOHN SMITH\n"
	svc := PassportService{Repo: repositories.PassportRepository{DB: db}, OCR: fakeOCR{text: text}}
	got, err := svc.Upload(context.Background(), []byte{0x89, 'P', 'N', 'G'})
	if err != nil {
		t.Fatalf("Upload error: %v", err)
	}
	if got.ID != 3 || got.PassportNumber != "P1234567" || got.FullName != "JOHN SMITH" {
		t.Fatalf("unexpected passport: %+v", got)
	}
}

func TestPassportServiceUploadOCRFailure(t *testing.T) {
	svc := PassportService{OCR: fakeOCR{err: errors.New("tesseract missing")}}
	if _, err := svc.Upload(context.Background(), []byte("img")); !domain.IsInternal(err) {
		t.Fatalf("expected internal error, got %v", err)
	}
	if _, err := svc.Upload(context.Background(), nil); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestTranscribeService(t *testing.T) {
	svc := TranscribeService{Speech: fakeSpeech{text: "سلام"}}
	text, err := svc.Transcribe(context.Background(), []byte{1, 2}, "fa")
	if err != nil || text != "سلام" {
		t.Fatalf("unexpected result %q %v", text, err)
	}
	if _, err := svc.Transcribe(context.Background(), nil, "fa"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	bad := TranscribeService{Speech: fakeSpeech{err: errors.New("quota")}}
	if _, err := bad.Transcribe(context.Background(), []byte{1}, "en"); !domain.IsUpstream(err) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}
