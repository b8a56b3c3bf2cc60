package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"airportbot/internal/audio"
	"airportbot/internal/cache"
	"airportbot/internal/domain"
	"airportbot/internal/domain/models"
	"airportbot/internal/utils"
)

const (
	introTextEN = "Hi! I'm Bina, I'm here to make your trip easier. Where are you traveling today? Where would you like to start?"
	introTextFA = "سلام! من بینادهستم، اینجا کنارتم که سفرت رو راحت کنم. امروز کجا قراره سفر کنی؟ دوست داری از کجا شروع کنیم؟"
)

// clip is a canned avatar line with optional pre-rendered audio under the
// audio directory (<name>.wav + <name>.json).
type clip struct {
	name       string
	text       string
	expression string
	animation  string
}

var greetingClips = []clip{
	{"intro_0", "Hi! I'm Bina, your airport assistant. How can I help you today?", "smile", "Talking_1"},
	{"intro_1", "You can ask me about your flight, gates, baggage or airport services.", "smile", "Talking_0"},
}

var missingKeyClips = []clip{
	{"api_0", "The assistant is not fully configured yet. Please add the service API keys.", "angry", "Angry"},
	{"api_1", "Without them I can't look up answers or speak to you.", "smile", "Laughing"},
}

// AssistantService turns chat turns into avatar messages with audio and
// lip-sync cues.
type AssistantService struct {
	Chat        ChatProvider
	English     SpeechSynth
	Persian     SpeechSynth
	LipSync     LipSyncer
	Cache       cache.ReplyCache
	AudioDir    string
	TempRoot    string
	Concurrency int
	RequestID   string
}

func IsEnglish(language string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(language)), "en")
}

func (s AssistantService) audioDir() string {
	if s.AudioDir != "" {
		return s.AudioDir
	}
	return "audios"
}

// Configured reports whether a reply in language can be produced.
func (s AssistantService) Configured(language string) bool {
	if s.Chat == nil || !s.Chat.Configured() {
		return false
	}
	return IsEnglish(language) || synthReady(s.Persian)
}

func (s AssistantService) ChatTurn(ctx context.Context, req models.ChatRequest) (models.ChatResponse, error) {
	if strings.TrimSpace(req.Language) == "" {
		req.Language = models.LanguagePersian
	}
	if strings.TrimSpace(req.Message) == "" {
		utils.LogEvent(s.RequestID, "assistant", "chat", "empty message, returning greeting")
		return models.ChatResponse{Messages: s.clips(greetingClips)}, nil
	}
	if !s.Configured(req.Language) {
		utils.LogEvent(s.RequestID, "assistant", "chat", "provider keys missing for language="+req.Language)
		return models.ChatResponse{Messages: s.clips(missingKeyClips)}, nil
	}

	replies, err := s.replies(ctx, req)
	if err != nil {
		return models.ChatResponse{}, err
	}
	utils.LogEvent(s.RequestID, "assistant", "chat", fmt.Sprintf("replies=%d language=%s", len(replies), req.Language))

	return models.ChatResponse{Messages: s.voice(ctx, replies, req.Language)}, nil
}

func (s AssistantService) replies(ctx context.Context, req models.ChatRequest) ([]models.ChatMessage, error) {
	// the chat service keeps per-session state, so replies are only reused
	// within the same conversation
	key := cache.SessionKey("reply", req.Language, req.SessionID, req.Message)
	if s.Cache != nil {
		if cached, ok := s.Cache.Get(ctx, key); ok {
			utils.LogEvent(s.RequestID, "assistant", "cache", "hit")
			return cached, nil
		}
	}
	replies, err := s.Chat.Chat(ctx, req.Message, req.SessionID, req.Language)
	if err != nil {
		return nil, domain.UpstreamError{Service: "assistant chat", Err: err}
	}
	if s.Cache != nil && len(replies) > 0 {
		s.Cache.Set(ctx, key, replies)
	}
	return replies, nil
}

// voice renders audio and lip-sync for every reply in parallel. A failure on
// one message leaves that message text-only; order is preserved.
func (s AssistantService) voice(ctx context.Context, replies []models.ChatMessage, language string) []models.ChatMessage {
	out := make([]models.ChatMessage, len(replies))
	for i, r := range replies {
		out[i] = models.ChatMessage{
			Text:             utils.CleanTextFromJSON(r.Text),
			FacialExpression: utils.FirstNonEmpty(r.FacialExpression, "default"),
			Animation:        utils.FirstNonEmpty(r.Animation, "Idle"),
		}
	}

	synth := s.Persian
	if IsEnglish(language) {
		synth = s.English
	}
	if !synthReady(synth) || s.LipSync == nil {
		utils.LogEvent(s.RequestID, "assistant", "voice", "no synthesizer for language="+language)
		return out
	}

	root := s.TempRoot
	if root == "" {
		root = audio.WritableDir(os.TempDir(), s.audioDir())
	}
	dir, err := os.MkdirTemp(root, "chat-")
	if err != nil {
		utils.LogError(s.RequestID, "assistant", "voice", err)
		return out
	}
	defer os.RemoveAll(dir)

	limit := s.Concurrency
	if limit <= 0 {
		limit = 3
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := range out {
		i := i
		if out[i].Text == "" {
			continue
		}
		g.Go(func() error {
			audioB64, lipsync, err := s.render(gctx, synth, out[i].Text, dir, i)
			if err != nil {
				utils.LogError(s.RequestID, "assistant", fmt.Sprintf("voice message_%d", i), err)
				return nil
			}
			out[i].Audio = audioB64
			out[i].Lipsync = lipsync
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (s AssistantService) render(ctx context.Context, synth SpeechSynth, text, dir string, i int) (string, []byte, error) {
	base := filepath.Join(dir, fmt.Sprintf("message_%d", i))
	mp3, wav, js := base+".mp3", base+".wav", base+".json"

	if err := synth.Synthesize(ctx, text, mp3); err != nil {
		return "", nil, fmt.Errorf("tts: %w", err)
	}
	if err := s.LipSync.MP3ToWAV(ctx, mp3, wav); err != nil {
		return "", nil, fmt.Errorf("mp3 to wav: %w", err)
	}
	if err := s.LipSync.WAVToJSON(ctx, wav, js); err != nil {
		return "", nil, fmt.Errorf("lipsync: %w", err)
	}
	audioB64, err := audio.FileToBase64(mp3)
	if err != nil {
		return "", nil, err
	}
	lipsync, err := audio.ReadJSON(js)
	if err != nil {
		return "", nil, err
	}
	return audioB64, lipsync, nil
}

// clips returns canned messages, attaching pre-rendered audio when both the
// wav and json files exist.
func (s AssistantService) clips(set []clip) []models.ChatMessage {
	out := make([]models.ChatMessage, 0, len(set))
	for _, c := range set {
		msg := models.ChatMessage{Text: c.text, FacialExpression: c.expression, Animation: c.animation}
		wav := filepath.Join(s.audioDir(), c.name+".wav")
		js := filepath.Join(s.audioDir(), c.name+".json")
		if audio.Exists(wav, js) {
			b64, err := audio.FileToBase64(wav)
			lipsync, jerr := audio.ReadJSON(js)
			if err == nil && jerr == nil {
				msg.Audio = b64
				msg.Lipsync = lipsync
			}
		}
		out = append(out, msg)
	}
	return out
}

// Intro returns the fixed introduction line with its recorded audio. The
// wav is derived once; lip-sync cues are regenerated on every call.
func (s AssistantService) Intro(ctx context.Context, language string) (models.ChatResponse, error) {
	english := IsEnglish(language)
	base := "introduction"
	text := introTextFA
	if english {
		base = "introduction_en"
		text = introTextEN
	}

	mp3 := filepath.Join(s.audioDir(), base+".mp3")
	wav := filepath.Join(s.audioDir(), base+".wav")
	js := filepath.Join(s.audioDir(), base+".json")
	if !audio.Exists(mp3) {
		return models.ChatResponse{}, domain.NotFoundError{Resource: "file " + mp3}
	}
	if s.LipSync == nil {
		return models.ChatResponse{}, domain.InternalError{Msg: "lipsync not configured"}
	}
	if !audio.Exists(wav) {
		if err := s.LipSync.MP3ToWAV(ctx, mp3, wav); err != nil {
			return models.ChatResponse{}, domain.InternalError{Msg: "convert introduction audio", Err: err}
		}
	}
	if err := s.LipSync.WAVToJSON(ctx, wav, js); err != nil {
		return models.ChatResponse{}, domain.InternalError{Msg: "generate introduction lipsync", Err: err}
	}
	audioB64, err := audio.FileToBase64(mp3)
	if err != nil {
		return models.ChatResponse{}, domain.InternalError{Msg: "read introduction audio", Err: err}
	}
	lipsync, err := audio.ReadJSON(js)
	if err != nil {
		return models.ChatResponse{}, domain.InternalError{Msg: "read introduction lipsync", Err: err}
	}

	utils.LogEvent(s.RequestID, "assistant", "intro", "language="+language)
	return models.ChatResponse{Messages: []models.ChatMessage{{
		Text:             text,
		Audio:            audioB64,
		Lipsync:          lipsync,
		FacialExpression: "smile",
		Animation:        "Idle",
	}}}, nil
}

// AvashowTestResult describes a synthesized test file.
type AvashowTestResult struct {
	Status        string `json:"status"`
	Message       string `json:"message"`
	InputText     string `json:"input_text"`
	OutputFile    string `json:"output_file"`
	FilePath      string `json:"file_path"`
	FileSizeBytes int64  `json:"file_size_bytes"`
	FullPath      string `json:"full_path"`
}

// TestAvashow synthesizes text with the Persian voice into the audio dir.
func (s AssistantService) TestAvashow(ctx context.Context, text string) (AvashowTestResult, error) {
	if strings.TrimSpace(text) == "" {
		return AvashowTestResult{}, domain.ValidationError{Field: "text_input", Msg: "required"}
	}
	if !synthReady(s.Persian) {
		return AvashowTestResult{}, domain.UpstreamError{Service: "avashow", Err: fmt.Errorf("gateway token not configured")}
	}
	if err := os.MkdirAll(s.audioDir(), 0o755); err != nil {
		return AvashowTestResult{}, domain.InternalError{Msg: "create audio dir", Err: err}
	}

	name := "test_avashow_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8] + ".mp3"
	path := filepath.Join(s.audioDir(), name)

	if err := s.Persian.Synthesize(ctx, text, path); err != nil {
		return AvashowTestResult{}, domain.UpstreamError{Service: "avashow", Err: err}
	}
	st, err := os.Stat(path)
	if err != nil {
		return AvashowTestResult{}, domain.InternalError{Msg: "Failed to create audio file", Err: err}
	}
	full, _ := filepath.Abs(path)

	utils.LogEvent(s.RequestID, "assistant", "test_avashow", fmt.Sprintf("file=%s size=%d", name, st.Size()))
	return AvashowTestResult{
		Status:        "success",
		Message:       "Text converted to speech successfully",
		InputText:     text,
		OutputFile:    name,
		FilePath:      path,
		FileSizeBytes: st.Size(),
		FullPath:      full,
	}, nil
}
