package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	intconfig "airportbot/internal/config"
	"airportbot/internal/utils"
)

var (
	routerMu sync.RWMutex
	router   *gin.Engine
)

// SetRouter stores the active gin engine for later inspection (e.g., /api/v1/routes).
func SetRouter(r *gin.Engine) {
	routerMu.Lock()
	defer routerMu.Unlock()
	router = r
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Backend is running!"})
}

func Hello(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello World!"})
}

func Test(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Test route is working!"})
}

const sampleReplyText = `در سالن VIP CIP، امکاناتی مثل لانژ اختصاصی، رستوران سلف‌سرویس، اتاق بازی کودکان و اینترنت پرسرعت داریم. اگه سوال دیگه‌ای داری، بگو تا راهنماییت کنم. [ { "text": "در سالن VIP CIP، امکاناتی مثل لانژ اختصاصی، رستوران سلف‌سرویس، اتاق بازی کودکان و اینترنت پرسرعت داریم.", "facialExpression": "smile", "animation": "Talking_0" }, { "text": "اگه سوال دیگه‌ای داری، بگو تا راهنماییت کنم.", "facialExpression": "smile", "animation": "Talking_2" } ]`

// TestClean runs the reply text cleaner over a sample with a trailing JSON block.
func TestClean(c *gin.Context) {
	cleaned := utils.CleanTextFromJSON(sampleReplyText)
	c.JSON(http.StatusOK, gin.H{
		"original_text":   sampleReplyText,
		"cleaned_text":    cleaned,
		"original_length": len([]rune(sampleReplyText)),
		"cleaned_length":  len([]rune(cleaned)),
		"status":          "Text cleaning test completed",
	})
}

func Routes(c *gin.Context) {
	routerMu.RLock()
	r := router
	routerMu.RUnlock()
	if r == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "router not ready"})
		return
	}

	routes := r.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{
			"method":  rt.Method,
			"path":    rt.Path,
			"handler": rt.Handler,
		})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}

// Status reports the reachability of every backing service plus host load.
func (a *API) Status(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	conns := gin.H{}
	if err := intconfig.PingDB(ctx); err != nil {
		conns["database"] = "error: " + err.Error()
	} else {
		conns["database"] = "connected"
	}

	if a.OpenAIConfigured {
		conns["openai"] = "configured"
	} else {
		conns["openai"] = "error: OPENAI_API_KEY not set"
	}

	if a.Ask.Knowledge == nil {
		conns["google_sheets"] = "error: not configured"
	} else if _, err := a.Ask.Knowledge.Knowledge(ctx); err != nil {
		conns["google_sheets"] = "error: " + err.Error()
	} else {
		conns["google_sheets"] = "connected"
	}

	switch {
	case a.Redis == nil:
		conns["redis"] = "disabled"
	case a.Redis.Ping(ctx).Err() != nil:
		conns["redis"] = "error: ping failed"
	default:
		conns["redis"] = "connected"
	}

	host := gin.H{}
	if pct, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(pct) > 0 {
		host["cpu_percent"] = pct[0]
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		host["memory_percent"] = vm.UsedPercent
		host["memory_used_mb"] = vm.Used / 1024 / 1024
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "running",
		"version":     "1.0.0",
		"environment": a.Environment,
		"connections": conns,
		"host":        host,
	})
}
