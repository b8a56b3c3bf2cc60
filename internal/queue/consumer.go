package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"airportbot/internal/utils"
)

// StartTripConsumer consumes trip.created until ctx is cancelled, appending
// one line per event to logDir/trips.log. Broker failures trigger a
// reconnect with exponential backoff capped at 30s.
func StartTripConsumer(ctx context.Context, url, logDir string) error {
	log := utils.Logger().With(zap.String("queue", TripCreatedQueue))
	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Warn("trip consumer dial failed", zap.Error(err), zap.Duration("retry_in", backoff))
			if !sleepCtx(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = consumeLoop(ctx, conn, logDir)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Warn("trip consumer loop ended, reconnecting", zap.Error(err))
		if !sleepCtx(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, logDir string) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		utils.Logger().Warn("trip consumer qos failed", zap.Error(err))
	}
	if _, err := ch.QueueDeclare(TripCreatedQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(TripCreatedQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := HandleTripMessage(d.Body, logDir); err != nil {
				utils.Logger().Warn("trip consumer rejected message", zap.Error(err))
				// no requeue, a poison message would loop forever
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// HandleTripMessage decodes one event and appends it to logDir/trips.log.
func HandleTripMessage(body []byte, logDir string) error {
	var ev TripCreatedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.TripID == "" {
		return errors.New("event without trip_id")
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(logDir, "trips.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(FormatTripLine(ev)); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

func FormatTripLine(ev TripCreatedEvent) string {
	return fmt.Sprintf("[%s] Trip created | trip_id=%s | airport=%q | date=%s | flight=%s | type=%s/%s | passengers=%d\n",
		ev.CreatedAt, ev.TripID, ev.AirportName, ev.TravelDate, ev.FlightNumber, ev.TravelType, ev.FlightType, ev.PassengerCount)
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
