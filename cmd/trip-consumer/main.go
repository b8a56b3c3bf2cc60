// Command trip-consumer appends every trip.created event to a log file.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	intconfig "airportbot/internal/config"
	"airportbot/internal/queue"
	"airportbot/internal/utils"
)

func main() {
	env := intconfig.LoadEnv()
	log := utils.Logger()
	if env.RabbitMQURL == "" {
		log.Fatal("RABBITMQ_URL not set")
	}
	logDir := env.TripLogDir

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("trip consumer started", zap.String("log_dir", logDir))
	if err := queue.StartTripConsumer(ctx, env.RabbitMQURL, logDir); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal("trip consumer stopped", zap.Error(err))
	}
	log.Info("trip consumer stopped")
}
