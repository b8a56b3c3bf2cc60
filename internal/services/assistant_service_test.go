package services

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"airportbot/internal/cache"
	"airportbot/internal/domain"
	"airportbot/internal/domain/models"
)

func TestChatTurnEmptyMessageReturnsGreeting(t *testing.T) {
	chat := &fakeChat{ready: true}
	svc := AssistantService{Chat: chat, AudioDir: t.TempDir()}

	resp, err := svc.ChatTurn(context.Background(), models.ChatRequest{Message: "   "})
	if err != nil {
		t.Fatalf("ChatTurn error: %v", err)
	}
	if len(resp.Messages) != 2 || chat.calls != 0 {
		t.Fatalf("expected 2 greeting messages without chat call, got %d (calls=%d)", len(resp.Messages), chat.calls)
	}
	if resp.Messages[0].FacialExpression != "smile" || resp.Messages[0].Animation != "Talking_1" {
		t.Fatalf("unexpected greeting expression: %+v", resp.Messages[0])
	}
}

func TestChatTurnGreetingUsesPrerenderedAudio(t *testing.T) {
	dir := t.TempDir()
	_ = os.WriteFile(filepath.Join(dir, "intro_0.wav"), []byte("wav0"), 0o644)
	_ = os.WriteFile(filepath.Join(dir, "intro_0.json"), []byte(`{"mouthCues":[]}`), 0o644)

	resp, err := AssistantService{AudioDir: dir}.ChatTurn(context.Background(), models.ChatRequest{})
	if err != nil {
		t.Fatalf("ChatTurn error: %v", err)
	}
	if resp.Messages[0].Audio != base64.StdEncoding.EncodeToString([]byte("wav0")) {
		t.Fatalf("expected intro_0 audio attached")
	}
	if resp.Messages[1].Audio != "" {
		t.Fatalf("intro_1 has no files and should be text-only")
	}
}

func TestChatTurnMissingKeys(t *testing.T) {
	chat := &fakeChat{ready: true}
	svc := AssistantService{Chat: chat, Persian: fakeSynth{ready: false}, AudioDir: t.TempDir()}

	resp, err := svc.ChatTurn(context.Background(), models.ChatRequest{Message: "سلام", Language: "fa"})
	if err != nil {
		t.Fatalf("ChatTurn error: %v", err)
	}
	if chat.calls != 0 {
		t.Fatalf("chat should not be called without TTS keys")
	}
	if len(resp.Messages) != 2 || resp.Messages[0].Animation != "Angry" || resp.Messages[1].Animation != "Laughing" {
		t.Fatalf("unexpected missing-key messages: %+v", resp.Messages)
	}
}

func TestChatTurnVoicesEveryMessageInOrder(t *testing.T) {
	chat := &fakeChat{ready: true, replies: []models.ChatMessage{
		{Text: "first"},
		{Text: "second", FacialExpression: "smile", Animation: "Talking_2"},
		{Text: "third"},
	}}
	lips := &fakeLipSync{}
	svc := AssistantService{
		Chat:     chat,
		English:  fakeSynth{ready: true, fail: map[string]bool{"second": true}},
		LipSync:  lips,
		TempRoot: t.TempDir(),
	}

	resp, err := svc.ChatTurn(context.Background(), models.ChatRequest{Message: "where is gate 4?", Language: "en"})
	if err != nil {
		t.Fatalf("ChatTurn error: %v", err)
	}
	if len(resp.Messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(resp.Messages))
	}
	if resp.Messages[0].Text != "first" || resp.Messages[2].Text != "third" {
		t.Fatalf("order not preserved: %+v", resp.Messages)
	}
	if resp.Messages[0].Audio != base64.StdEncoding.EncodeToString([]byte("mp3:first")) {
		t.Fatalf("unexpected audio for first message: %q", resp.Messages[0].Audio)
	}
	if len(resp.Messages[0].Lipsync) == 0 {
		t.Fatalf("expected lipsync for first message")
	}
	if resp.Messages[1].Audio != "" || resp.Messages[1].Animation != "Talking_2" {
		t.Fatalf("failed TTS should leave text-only message: %+v", resp.Messages[1])
	}
	if resp.Messages[0].FacialExpression != "default" || resp.Messages[0].Animation != "Idle" {
		t.Fatalf("defaults not applied: %+v", resp.Messages[0])
	}
	if lips.jsRuns != 2 {
		t.Fatalf("expected 2 lipsync runs, got %d", lips.jsRuns)
	}
}

func TestChatTurnUpstreamError(t *testing.T) {
	chat := &fakeChat{ready: true, err: errors.New("boom")}
	svc := AssistantService{Chat: chat, English: fakeSynth{ready: true}}

	_, err := svc.ChatTurn(context.Background(), models.ChatRequest{Message: "hi", Language: "en"})
	if !domain.IsUpstream(err) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestChatTurnUsesReplyCache(t *testing.T) {
	chat := &fakeChat{ready: true, replies: []models.ChatMessage{{Text: "cached answer"}}}
	svc := AssistantService{Chat: chat, English: fakeSynth{ready: true}, Cache: cache.New(nil, 0)}

	req := models.ChatRequest{Message: "Where is baggage claim?", Language: "en"}
	for i := 0; i < 2; i++ {
		if _, err := svc.ChatTurn(context.Background(), req); err != nil {
			t.Fatalf("ChatTurn error: %v", err)
		}
	}
	if chat.calls != 1 {
		t.Fatalf("expected 1 upstream call, got %d", chat.calls)
	}
}

func TestChatTurnReplyCacheIsPerSession(t *testing.T) {
	chat := &fakeChat{ready: true, replies: []models.ChatMessage{{Text: "Your flight IR712 leaves from gate 4"}}}
	svc := AssistantService{Chat: chat, English: fakeSynth{ready: true}, Cache: cache.New(nil, 0)}

	for _, session := range []string{"alice", "bob", "alice"} {
		req := models.ChatRequest{Message: "what is my flight?", SessionID: session, Language: "en"}
		if _, err := svc.ChatTurn(context.Background(), req); err != nil {
			t.Fatalf("ChatTurn(%s) error: %v", session, err)
		}
	}
	if chat.calls != 2 {
		t.Fatalf("expected one upstream call per session, got %d", chat.calls)
	}
}

func TestIntro(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "introduction_en.mp3"), []byte("intro"), 0o644); err != nil {
		t.Fatalf("write mp3: %v", err)
	}
	lips := &fakeLipSync{}
	svc := AssistantService{LipSync: lips, AudioDir: dir}

	resp, err := svc.Intro(context.Background(), "en")
	if err != nil {
		t.Fatalf("Intro error: %v", err)
	}
	if len(resp.Messages) != 1 || resp.Messages[0].Text != introTextEN {
		t.Fatalf("unexpected intro: %+v", resp.Messages)
	}
	if _, err := svc.Intro(context.Background(), "en"); err != nil {
		t.Fatalf("second Intro error: %v", err)
	}
	if lips.wavRuns != 1 || lips.jsRuns != 2 {
		t.Fatalf("expected wav once and lipsync twice, got wav=%d json=%d", lips.wavRuns, lips.jsRuns)
	}

	if _, err := svc.Intro(context.Background(), "fa"); !domain.IsNotFound(err) {
		t.Fatalf("expected not found for missing persian intro, got %v", err)
	}
}

func TestTestAvashow(t *testing.T) {
	dir := t.TempDir()
	svc := AssistantService{Persian: fakeSynth{ready: true}, AudioDir: dir}

	res, err := svc.TestAvashow(context.Background(), "سلام")
	if err != nil {
		t.Fatalf("TestAvashow error: %v", err)
	}
	if res.Status != "success" || res.FileSizeBytes == 0 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if filepath.Dir(res.FilePath) != dir {
		t.Fatalf("file written outside audio dir: %s", res.FilePath)
	}
	if name := filepath.Base(res.FilePath); !strings.HasPrefix(name, "test_avashow_") || len(name) != len("test_avashow_")+8+len(".mp3") {
		t.Fatalf("unexpected file name %q", name)
	}

	if _, err := (AssistantService{}).TestAvashow(context.Background(), "x"); !domain.IsUpstream(err) {
		t.Fatalf("expected upstream error without token, got %v", err)
	}
}
