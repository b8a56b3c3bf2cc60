package services

import (
	"context"
	"errors"
	"fmt"

	"airportbot/internal/domain"
	"airportbot/internal/utils"
)

type TranscribeService struct {
	Speech    Transcriber
	RequestID string
}

// Transcribe converts a LINEAR16 recording into text.
func (s TranscribeService) Transcribe(ctx context.Context, audio []byte, language string) (string, error) {
	if len(audio) == 0 {
		return "", domain.ValidationError{Field: "file", Msg: "empty audio"}
	}
	if s.Speech == nil {
		return "", domain.UpstreamError{Service: "speech", Err: errors.New("not configured")}
	}
	text, err := s.Speech.Transcribe(ctx, audio, language)
	if err != nil {
		return "", domain.UpstreamError{Service: "speech", Err: err}
	}
	utils.LogEvent(s.RequestID, "speech", "transcribe", fmt.Sprintf("bytes=%d chars=%d", len(audio), len(text)))
	return text, nil
}
