package services

import (
	"context"

	"airportbot/internal/clients"
	"airportbot/internal/domain/models"
)

// ChatProvider produces the avatar's reply messages for one user turn.
type ChatProvider interface {
	Configured() bool
	Chat(ctx context.Context, message, sessionID, language string) ([]models.ChatMessage, error)
}

// SpeechSynth writes mp3 audio for text.
type SpeechSynth interface {
	Configured() bool
	Synthesize(ctx context.Context, text, dst string) error
}

type LipSyncer interface {
	MP3ToWAV(ctx context.Context, mp3Path, wavPath string) error
	WAVToJSON(ctx context.Context, wavPath, jsonPath string) error
}

type Answerer interface {
	Answer(ctx context.Context, question, knowledgeBase string) (clients.Answer, error)
}

type KnowledgeSource interface {
	Knowledge(ctx context.Context) ([]clients.KnowledgeItem, error)
}

type TripExtractor interface {
	ExtractTripInfo(ctx context.Context, lines []models.ConversationLine) (models.ExtractInfoResponse, error)
}

type TextRecognizer interface {
	ImageToText(ctx context.Context, image []byte) (string, error)
}

type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, language string) (string, error)
}

func synthReady(s SpeechSynth) bool {
	return s != nil && s.Configured()
}
