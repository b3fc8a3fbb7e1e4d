package messaging

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	ErrTopicRequired   = errors.New("messaging: topic is required")
	ErrHandlerRequired = errors.New("messaging: handler is required")
	ErrGroupRequired   = errors.New("messaging: consumer group is required")
)

// Messaging publishes to and consumes from named topics.
type Messaging interface {
	io.Closer

	Publish(ctx context.Context, topic string, msg OutgoingMessage) error

	// Consume blocks until ctx is done or the subscription fails.
	Consume(ctx context.Context, topic string, handler Handler, opts ...ConsumeOption) error
}

// Handler processes one delivery.
type Handler func(ctx context.Context, msg Message) error

// OutgoingMessage is what a publisher sends.
type OutgoingMessage struct {
	Body []byte
	// Key drives Kafka partitioning and Pub/Sub ordering. Other drivers
	// ignore it.
	Key     []byte
	Headers map[string]string
}

// Message is what a handler receives.
type Message struct {
	Topic string
	Body  []byte
	// Headers is empty for NSQ, which has no header support.
	Headers    map[string]string
	ReceivedAt time.Time
}

// Header returns the named header or "".
func (m Message) Header(key string) string {
	return m.Headers[key]
}
