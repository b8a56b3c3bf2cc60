package services

import (
	"context"
	"errors"
	"os"
	"sync"

	"airportbot/internal/clients"
	"airportbot/internal/domain/models"
)

type fakeChat struct {
	mu      sync.Mutex
	calls   int
	replies []models.ChatMessage
	err     error
	ready   bool
}

func (f *fakeChat) Configured() bool { return f.ready }

func (f *fakeChat) Chat(ctx context.Context, message, sessionID, language string) ([]models.ChatMessage, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return f.replies, f.err
}

type fakeSynth struct {
	ready bool
	fail  map[string]bool
}

func (f fakeSynth) Configured() bool { return f.ready }

func (f fakeSynth) Synthesize(ctx context.Context, text, dst string) error {
	if f.fail[text] {
		return errors.New("tts down")
	}
	return os.WriteFile(dst, []byte("mp3:"+text), 0o644)
}

type fakeLipSync struct {
	mu      sync.Mutex
	wavRuns int
	jsRuns  int
}

func (f *fakeLipSync) MP3ToWAV(ctx context.Context, mp3Path, wavPath string) error {
	f.mu.Lock()
	f.wavRuns++
	f.mu.Unlock()
	return os.WriteFile(wavPath, []byte("wav"), 0o644)
}

func (f *fakeLipSync) WAVToJSON(ctx context.Context, wavPath, jsonPath string) error {
	f.mu.Lock()
	f.jsRuns++
	f.mu.Unlock()
	return os.WriteFile(jsonPath, []byte(`{"mouthCues":[{"start":0,"end":0.2,"value":"X"}]}`), 0o644)
}

type fakeKnowledge struct {
	items []clients.KnowledgeItem
	err   error
}

func (f fakeKnowledge) Knowledge(ctx context.Context) ([]clients.KnowledgeItem, error) {
	return f.items, f.err
}

type fakeAnswerer struct {
	gotKB string
	ans   clients.Answer
	err   error
}

func (f *fakeAnswerer) Answer(ctx context.Context, question, kb string) (clients.Answer, error) {
	f.gotKB = kb
	return f.ans, f.err
}

type fakeExtractor struct {
	out models.ExtractInfoResponse
	err error
}

func (f fakeExtractor) ExtractTripInfo(ctx context.Context, lines []models.ConversationLine) (models.ExtractInfoResponse, error) {
	return f.out, f.err
}

type fakeOCR struct {
	text string
	err  error
}

func (f fakeOCR) ImageToText(ctx context.Context, image []byte) (string, error) {
	return f.text, f.err
}

type fakeSpeech struct {
	text string
	err  error
}

func (f fakeSpeech) Transcribe(ctx context.Context, audio []byte, language string) (string, error) {
	return f.text, f.err
}
