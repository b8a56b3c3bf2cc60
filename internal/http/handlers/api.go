package handlers

import (
	"github.com/redis/go-redis/v9"

	"airportbot/internal/http/middleware"
	"airportbot/internal/services"
)

// API bundles the services behind the HTTP routes. Each handler copies the
// service value it needs and stamps the request id on the copy.
type API struct {
	Environment      string
	OpenAIConfigured bool
	Redis            *redis.Client

	// ChatLimiter is the per-IP budget shared by /chat, /ask and every
	// websocket chat turn.
	ChatLimiter *middleware.IPRateLimiter

	Assistant services.AssistantService
	Ask       services.AskService
	Trips     services.TripService
	Messages  services.MessageService
	Passports services.PassportService
	Extract   services.ExtractInfoService
	Docs      services.DocsService
	Speech    services.TranscribeService
}
