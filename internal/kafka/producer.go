package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"bookworm-search/internal/models"
)

// MessageWriter abstracts kafka.Writer.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer wraps a Kafka writer for publishing search events.
type Producer struct {
	writer MessageWriter
}

// NewProducer creates a Kafka producer for the given broker and topic.
func NewProducer(broker, topic string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(broker),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: false,
		},
	}
}

// NewProducerWithWriter builds a producer using a custom writer (tests).
func NewProducerWithWriter(writer MessageWriter) *Producer {
	return &Producer{writer: writer}
}

// Close shuts down the underlying writer.
func (p *Producer) Close() error {
	return p.writer.Close()
}

// Header names set on every search event, so consumers can route without
// decoding the payload.
const (
	HeaderSource  = "source"
	HeaderOutcome = "outcome"
)

// PublishSearch writes a SearchEvent keyed by its query, so events for the
// same query land on the same partition. The message time is the moment the
// search started.
func (p *Producer) PublishSearch(ctx context.Context, event models.SearchEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	outcome := "ok"
	if event.Error != "" {
		outcome = "error"
	}
	at := event.At
	if at.IsZero() {
		at = time.Now()
	}

	msg := kafka.Message{
		Key:   []byte(event.Query),
		Value: payload,
		Time:  at.UTC(),
		Headers: []kafka.Header{
			{Key: HeaderSource, Value: []byte(event.Source)},
			{Key: HeaderOutcome, Value: []byte(outcome)},
		},
	}

	return p.writer.WriteMessages(ctx, msg)
}
