package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"airportbot/internal/utils"
)

type Publisher interface {
	PublishTripCreated(ctx context.Context, ev TripCreatedEvent) error
}

// NoopPublisher is used when RABBITMQ_URL is not configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishTripCreated(context.Context, TripCreatedEvent) error { return nil }

const defaultPublishDialTimeout = 2 * time.Second

// AMQPPublisher dials per publish; trip creation is rare enough that a
// long-lived channel is not worth the reconnect bookkeeping. DialTimeout
// bounds the TCP connect and AMQP handshake.
type AMQPPublisher struct {
	URL         string
	DialTimeout time.Duration
}

// NewPublisher picks the AMQP publisher when url is set.
func NewPublisher(url string) Publisher {
	if url == "" {
		return NoopPublisher{}
	}
	return AMQPPublisher{URL: url, DialTimeout: defaultPublishDialTimeout}
}

// dialTimeout is DialTimeout, shortened to the ctx deadline when that is sooner.
func (p AMQPPublisher) dialTimeout(ctx context.Context) time.Duration {
	timeout := p.DialTimeout
	if timeout <= 0 {
		timeout = defaultPublishDialTimeout
	}
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); left < timeout {
			timeout = left
		}
	}
	return timeout
}

func (p AMQPPublisher) PublishTripCreated(ctx context.Context, ev TripCreatedEvent) error {
	log := utils.Logger().With(zap.String("queue", TripCreatedQueue), zap.String("trip_id", ev.TripID))

	if err := ctx.Err(); err != nil {
		return err
	}
	conn, err := amqp.DialConfig(p.URL, amqp.Config{
		Locale: "en_US",
		Dial:   amqp.DefaultDial(p.dialTimeout(ctx)),
	})
	if err != nil {
		log.Warn("rabbitmq dial failed", zap.Error(err))
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Warn("rabbitmq channel open failed", zap.Error(err))
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(TripCreatedQueue, true, false, false, false, nil); err != nil {
		log.Warn("rabbitmq queue declare failed", zap.Error(err))
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	err = ch.PublishWithContext(ctx, "", TripCreatedQueue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		log.Warn("rabbitmq publish failed", zap.Error(err))
		return err
	}
	return nil
}
