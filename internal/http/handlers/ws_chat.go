package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"airportbot/internal/domain/models"
	"airportbot/internal/http/middleware"
	"airportbot/internal/utils"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

const wsTurnTimeout = 3 * time.Minute

// ChatWS serves chat over a websocket. Each inbound frame is a ChatRequest;
// the reply messages are sent one frame each, followed by {"done":true}.
// Every turn draws from the client's chat rate budget.
func (a *API) ChatWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.LogError(middleware.GetRequestID(c), "ws", "upgrade", err)
		return
	}
	defer conn.Close()

	svc := a.assistant(c)
	ip := c.ClientIP()
	for {
		var req models.ChatRequest
		if err := conn.ReadJSON(&req); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				utils.LogError(svc.RequestID, "ws", "read", err)
			}
			return
		}

		if !a.ChatLimiter.Allow(ip) {
			if err := conn.WriteJSON(gin.H{"error": "too many requests", "done": true}); err != nil {
				return
			}
			continue
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), wsTurnTimeout)
		resp, err := svc.ChatTurn(ctx, req)
		cancel()
		if err != nil {
			_ = conn.WriteJSON(gin.H{"error": err.Error(), "done": true})
			continue
		}
		for _, m := range resp.Messages {
			if err := conn.WriteJSON(m); err != nil {
				return
			}
		}
		if err := conn.WriteJSON(gin.H{"done": true}); err != nil {
			return
		}
	}
}
