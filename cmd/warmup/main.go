// Command warmup wakes the external assistant chat service before traffic
// arrives, then checks it answers a normal request in reasonable time.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"airportbot/internal/clients"
	intconfig "airportbot/internal/config"
	"airportbot/internal/utils"
)

const (
	warmupTimeout = 120 * time.Second
	testTimeout   = 30 * time.Second
)

func main() {
	env := intconfig.LoadEnv()
	if err := run(context.Background(), env.ExternalChatServiceURL, warmupTimeout, testTimeout); err != nil {
		utils.Logger().Error("warm-up failed", zap.Error(err))
		os.Exit(1)
	}
	utils.Logger().Info("service is ready")
}

// run sends the warm-up turn and then a test turn. Neither is retried: a
// cold start is expected to be slow, not flaky.
func run(ctx context.Context, url string, warmup, test time.Duration) error {
	if url == "" {
		return fmt.Errorf("EXTERNAL_CHAT_SERVICE_URL not set")
	}
	log := utils.Logger().With(zap.String("url", url))

	cold := clients.NewAssistantChatClient(url, clients.NewRetryClient(clients.RetryConfig{Timeout: warmup}))
	log.Info("sending warm-up request")
	if _, err := cold.Chat(ctx, "warm up", "warm_up_session", "en"); err != nil {
		return fmt.Errorf("warm-up request: %w", err)
	}
	log.Info("service warmed up")

	warm := clients.NewAssistantChatClient(url, clients.NewRetryClient(clients.RetryConfig{Timeout: test}))
	start := time.Now()
	msgs, err := warm.Chat(ctx, "hello who you are", "test_session", "en")
	if err != nil {
		return fmt.Errorf("test request: %w", err)
	}
	log.Info("test request ok", zap.Duration("duration", time.Since(start)), zap.Int("messages", len(msgs)))
	return nil
}
