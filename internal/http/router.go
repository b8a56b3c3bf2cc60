package api

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	intconfig "airportbot/internal/config"
	h "airportbot/internal/http/handlers"
	"airportbot/internal/http/middleware"
	"airportbot/internal/utils"
)

func NewRouter(env intconfig.Env, a *h.API) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		utils.Logger().Warn("failed to set trusted proxies", zap.Error(err))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	r.GET("/", a.Status)

	if a.ChatLimiter == nil {
		a.ChatLimiter = middleware.NewIPRateLimiter(env.ChatRateLimit, env.ChatRateBurst)
	}
	chatLimit := middleware.RateLimit(a.ChatLimiter)

	v1 := r.Group("/api/v1", middleware.AuthOptional(env.JWTSecret))
	{
		v1.GET("/", h.Hello)
		v1.GET("/health", h.Health)
		v1.GET("/routes", h.Routes)
		v1.GET("/test", h.Test)
		v1.GET("/test-clean", h.TestClean)

		// Assistant
		v1.GET("/intro", a.Intro)
		v1.POST("/chat", chatLimit, a.Chat)
		v1.GET("/ws/chat", a.ChatWS)
		v1.POST("/test-avashow", a.TestAvashow)

		// Knowledge base Q&A
		v1.POST("/ask", chatLimit, a.AskQuestion)
		v1.GET("/responses", a.ListResponses)
		v1.GET("/responses/:id", a.GetResponse)

		// Trips
		trips := v1.Group("/trips")
		trips.POST("", a.CreateTrip)
		trips.GET("", a.ListTrips)
		trips.GET("/:id", a.GetTrip)
		trips.DELETE("/:id", a.DeleteTrip)
		trips.GET("/:id/itinerary", a.GetTripItineraryPDF)

		// Conversation log
		v1.POST("/messages/batch", a.SaveMessagesBatch)
		v1.GET("/messages", a.ListMessages)

		// Documents and audio
		v1.POST("/passport/upload", a.UploadPassport)
		v1.GET("/passport/:number", a.GetPassport)
		v1.POST("/extract-info", a.ExtractInfo)
		v1.POST("/speech/transcribe", a.Transcribe)
	}

	h.SetRouter(r)
	return r
}
