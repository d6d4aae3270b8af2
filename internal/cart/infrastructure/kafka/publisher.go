package kafka

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"github.com/cafe-amigas/storefront/internal/cart/application"
	"github.com/cafe-amigas/storefront/pkg/tracing"
)

type Writer struct {
	*kafka.Writer
}

func NewWriter(brokers []string, topic string) *Writer {
	return &Writer{
		Writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

// Publisher fans cart change notifications out to a kafka topic so display
// surfaces (badge counters, kitchen screens) can react without the core
// ever touching a view. Publishing is best-effort: a broker hiccup is
// logged, never surfaced to the mutation that triggered it.
type Publisher struct {
	log    *slog.Logger
	writer *Writer
	cartID string
}

func NewPublisher(log *slog.Logger, writer *Writer, cartID string) *Publisher {
	return &Publisher{log: log, writer: writer, cartID: cartID}
}

func (p *Publisher) CartChanged(ctx context.Context, ch application.Change) {
	payload, err := json.Marshal(ch)
	if err != nil {
		p.log.Error("cart event encode failed", "op", ch.Op, "err", err)
		return
	}

	headers := []kafka.Header{{Key: "event_type", Value: []byte("CartChanged")}}
	headers = tracing.InjectKafkaHeaders(ctx, headers)

	msg := kafka.Message{
		Key:     []byte(p.cartID),
		Value:   payload,
		Headers: headers,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Error("cart event publish failed", "op", ch.Op, "err", err)
		return
	}
	p.log.Debug("cart event published", "op", ch.Op, "items", ch.Items, "total", ch.Total)
}
