package clients

import (
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"airportbot/internal/utils"
)

// RetryConfig controls the shared retrying transport.
type RetryConfig struct {
	RetryMax int
	WaitMin  time.Duration
	WaitMax  time.Duration
	Timeout  time.Duration
}

// DefaultRetryConfig retries five times with 1s..16s exponential backoff and
// gives each attempt 60 seconds.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		RetryMax: 5,
		WaitMin:  1 * time.Second,
		WaitMax:  16 * time.Second,
		Timeout:  60 * time.Second,
	}
}

// NewRetryClient builds a pooled client that retries connection errors, 429
// and 5xx responses. Proxy settings come from HTTP_PROXY / HTTPS_PROXY.
func NewRetryClient(cfg RetryConfig) *retryablehttp.Client {
	c := retryablehttp.NewClient()
	c.RetryMax = cfg.RetryMax
	c.RetryWaitMin = cfg.WaitMin
	c.RetryWaitMax = cfg.WaitMax
	c.HTTPClient.Timeout = cfg.Timeout
	if t, ok := c.HTTPClient.Transport.(*http.Transport); ok {
		t.Proxy = http.ProxyFromEnvironment
	}
	c.Logger = zapLeveled{s: utils.Logger().Sugar()}
	c.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, attempt int) {
		if attempt > 0 {
			utils.Logger().Warn("retrying request",
				zap.String("method", req.Method),
				zap.String("host", req.URL.Host),
				zap.Int("attempt", attempt+1),
			)
		}
	}
	return c
}

// zapLeveled adapts zap to retryablehttp.LeveledLogger.
type zapLeveled struct {
	s *zap.SugaredLogger
}

func (l zapLeveled) Error(msg string, kv ...interface{}) { l.s.Errorw(msg, kv...) }
func (l zapLeveled) Info(msg string, kv ...interface{})  { l.s.Infow(msg, kv...) }
func (l zapLeveled) Debug(msg string, kv ...interface{}) { l.s.Debugw(msg, kv...) }
func (l zapLeveled) Warn(msg string, kv ...interface{})  { l.s.Warnw(msg, kv...) }
