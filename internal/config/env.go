package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"airportbot/internal/utils"
)

type Env struct {
	AppAddr     string
	GinMode     string
	Environment string

	DBDriver   string
	DBDSN      string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	RabbitMQURL string
	TripLogDir  string

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	ExternalChatServiceURL string

	AvashowAPIURL       string
	AvashowGatewayToken string
	AvashowSpeaker      string

	ElevenLabsAPIKey  string
	ElevenLabsVoiceID string
	ElevenLabsBaseURL string

	KnowledgeSheetID        string
	GoogleSheetsCredentials string
	GoogleSpeechCredentials string

	FFmpegBin    string
	RhubarbBin   string
	TesseractBin string
	AudioDir     string
	PDFFontPath  string

	JWTSecret          string
	CORSAllowedOrigins []string
	ChatRateLimit      float64
	ChatRateBurst      int
}

// LoadEnv reads .env (if present) and then the process environment.
func LoadEnv() Env {
	_ = godotenv.Load()

	env := Env{
		AppAddr:     envStr("APP_ADDR", ":8080"),
		GinMode:     envStr("GIN_MODE", ""),
		Environment: envStr("ENVIRONMENT", "production"),

		DBDriver:   envStr("DB_DRIVER", "sqlite"),
		DBDSN:      envStr("DB_DSN", ""),
		DBHost:     envStr("DB_HOST", "127.0.0.1"),
		DBPort:     envStr("DB_PORT", ""),
		DBUser:     envStr("DB_USER", ""),
		DBPassword: envStr("DB_PASSWORD", ""),
		DBName:     envStr("DB_NAME", "airport_assistant"),

		RedisAddr:     envStr("REDIS_ADDR", ""),
		RedisPassword: envStr("REDIS_PASSWORD", ""),
		RedisDB:       envInt("REDIS_DB", 0),
		CacheTTL:      envDur("CACHE_TTL", 10*time.Minute),

		RabbitMQURL: envStr("RABBITMQ_URL", ""),
		TripLogDir:  envStr("TRIP_LOG_DIR", "logs"),

		OpenAIAPIKey:  envStr("OPENAI_API_KEY", ""),
		OpenAIBaseURL: envStr("OPENAI_BASE_URL", ""),
		OpenAIModel:   envStr("OPENAI_MODEL", "gpt-3.5-turbo"),

		ExternalChatServiceURL: envStr("EXTERNAL_CHAT_SERVICE_URL", ""),

		AvashowAPIURL:       envStr("AVASHOW_API_URL", "https://partai.gw.isahab.ir/TextToSpeech/v1/longText"),
		AvashowGatewayToken: envStr("AVASHOW_GATEWAY_TOKEN", ""),
		AvashowSpeaker:      envStr("AVASHOW_SPEAKER", "3"),

		ElevenLabsAPIKey:  envStr("ELEVEN_LABS_API_KEY", ""),
		ElevenLabsVoiceID: envStr("ELEVEN_LABS_VOICE_ID", "508da0af14044417a916cba1d00f632a"),
		ElevenLabsBaseURL: envStr("ELEVEN_LABS_BASE_URL", "https://api.elevenlabs.io"),

		KnowledgeSheetID:        envStr("KNOWLEDGE_SHEET_ID", ""),
		GoogleSheetsCredentials: envStr("GOOGLE_SHEETS_CREDENTIALS", ""),
		GoogleSpeechCredentials: envStr("GOOGLE_SPEECH_CREDENTIALS", ""),

		FFmpegBin:    envStr("FFMPEG_BIN", "ffmpeg"),
		RhubarbBin:   envStr("RHUBARB_BIN", "./bin/rhubarb"),
		TesseractBin: envStr("TESSERACT_BIN", "tesseract"),
		AudioDir:     envStr("AUDIO_DIR", "audios"),
		PDFFontPath:  envStr("PDF_FONT_PATH", ""),

		JWTSecret:          envStr("JWT_SECRET", ""),
		CORSAllowedOrigins: envList("CORS_ALLOWED_ORIGINS"),
		ChatRateLimit:      envFloat("CHAT_RATE_LIMIT", 2),
		ChatRateBurst:      envInt("CHAT_RATE_BURST", 5),
	}

	env.warnMissing()
	return env
}

// IsDevelopment reports whether ENVIRONMENT selects the development profile.
func (e Env) IsDevelopment() bool {
	return strings.EqualFold(e.Environment, "development")
}

func (e Env) warnMissing() {
	missing := map[string]string{
		"OPENAI_API_KEY":            e.OpenAIAPIKey,
		"EXTERNAL_CHAT_SERVICE_URL": e.ExternalChatServiceURL,
		"AVASHOW_GATEWAY_TOKEN":     e.AvashowGatewayToken,
		"ELEVEN_LABS_API_KEY":       e.ElevenLabsAPIKey,
		"KNOWLEDGE_SHEET_ID":        e.KnowledgeSheetID,
	}
	for name, v := range missing {
		if v == "" {
			utils.Logger().Warn("env var not set, feature disabled", zap.String("var", name))
		}
	}
}

func envStr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envFloat(key string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

// envDur accepts Go durations ("90s") or plain seconds ("90").
func envDur(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return def
}

func envList(key string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
