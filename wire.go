package main

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"airportbot/internal/audio"
	"airportbot/internal/cache"
	"airportbot/internal/clients"
	intconfig "airportbot/internal/config"
	h "airportbot/internal/http/handlers"
	"airportbot/internal/ocr"
	"airportbot/internal/queue"
	"airportbot/internal/services"
	"airportbot/internal/utils"
)

type deps struct {
	API    *h.API
	redis  *redis.Client
	speech *clients.SpeechClient
}

func (d deps) Close() {
	if d.redis != nil {
		_ = d.redis.Close()
	}
	d.speech.Close()
}

// buildAPI wires providers from env. Providers without credentials stay
// unset and the matching features degrade instead of failing startup.
func buildAPI(ctx context.Context, env intconfig.Env) deps {
	log := utils.Logger()
	hc := clients.NewRetryClient(clients.DefaultRetryConfig())

	rdb := intconfig.NewRedisClient(env)
	lipsync := audio.NewLipSync(env.FFmpegBin, env.RhubarbBin)

	assistant := services.AssistantService{
		Chat:     clients.NewAssistantChatClient(env.ExternalChatServiceURL, hc),
		English:  clients.NewElevenLabsClient(env.ElevenLabsBaseURL, env.ElevenLabsAPIKey, env.ElevenLabsVoiceID, hc),
		Persian:  clients.NewAvashowClient(env.AvashowAPIURL, env.AvashowGatewayToken, env.AvashowSpeaker, hc),
		LipSync:  lipsync,
		Cache:    cache.New(rdb, env.CacheTTL),
		AudioDir: env.AudioDir,
		TempRoot: audio.WritableDir(env.AudioDir),
	}

	ask := services.AskService{}
	extract := services.ExtractInfoService{}
	oa := clients.NewOpenAIClient(env.OpenAIAPIKey, env.OpenAIBaseURL, env.OpenAIModel, hc)
	if oa != nil {
		ask.Answerer = oa
		extract.Extractor = oa
	}
	if sheets := clients.NewSheetsClient(env.KnowledgeSheetID, env.GoogleSheetsCredentials); sheets != nil {
		ask.Knowledge = sheets
	}

	transcribe := services.TranscribeService{}
	var speech *clients.SpeechClient
	if env.GoogleSpeechCredentials != "" {
		sc, err := clients.NewSpeechClient(ctx, env.GoogleSpeechCredentials)
		if err != nil {
			log.Warn("speech client disabled", zap.Error(err))
		} else {
			speech = sc
			transcribe.Speech = sc
		}
	}

	api := &h.API{
		Environment:      env.Environment,
		OpenAIConfigured: oa != nil,
		Redis:            rdb,
		Assistant:        assistant,
		Ask:              ask,
		Trips:            services.TripService{Events: queue.NewPublisher(env.RabbitMQURL)},
		Messages:         services.MessageService{},
		Passports:        services.PassportService{OCR: ocr.NewTesseract(env.TesseractBin)},
		Extract:          extract,
		Docs:             services.DocsService{FontPath: env.PDFFontPath},
		Speech:           transcribe,
	}
	return deps{API: api, redis: rdb, speech: speech}
}
