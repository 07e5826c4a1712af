package queue

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/venue-layout-editor/internal/config"
)

// maxDialTimeout bounds connect plus handshake when ctx has no sooner
// deadline.
const maxDialTimeout = 5 * time.Second

// Publisher sends LayoutEvents to a durable queue. It dials per publish so a
// broker restart never leaves it holding a dead connection. Errors are
// logged and returned so the caller can choose to ignore them.
type Publisher struct {
	url   string
	queue string
	log   *slog.Logger
}

// NewPublisher builds a Publisher from the events config.
func NewPublisher(cfg config.EventsConfig, log *slog.Logger) *Publisher {
	if log == nil {
		log = slog.Default()
	}
	return &Publisher{url: cfg.URL, queue: cfg.Queue, log: log.With("component", "publisher")}
}

// Publish marshals the event and publishes it as a persistent message.
func (p *Publisher) Publish(ctx context.Context, ev LayoutEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		p.log.Error("marshal event failed", "err", err)
		return err
	}

	timeout := maxDialTimeout
	if dl, ok := ctx.Deadline(); ok {
		timeout = min(timeout, time.Until(dl))
	}
	if timeout <= 0 {
		return context.DeadlineExceeded
	}
	conn, err := amqp.DialConfig(p.url, amqp.Config{Dial: amqp.DefaultDial(timeout)})
	if err != nil {
		p.log.Warn("dial failed", "err", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Warn("channel open failed", "err", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// idempotent; durable so messages survive broker restarts
	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		p.log.Warn("queue declare failed", "queue", p.queue, "err", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         ev.Action,
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		pub,
	); err != nil {
		p.log.Warn("publish failed", "queue", p.queue, "err", err)
		return err
	}
	p.log.Debug("event published", "action", ev.Action, "layout_id", ev.LayoutID)
	return nil
}
