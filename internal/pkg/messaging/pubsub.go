package messaging

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"cloud.google.com/go/pubsub/v2"
	"google.golang.org/api/option"
)

var ErrPubSubProjectIDRequired = errors.New("messaging: pubsub project id is required")

type PubSubConfig struct {
	ProjectID     string
	ClientOptions []option.ClientOption
}

// PubSub publishes to topics and receives from subscriptions. Consume takes
// the subscription from WithGroup and falls back to the topic name.
type PubSub struct {
	client *pubsub.Client

	mu         sync.Mutex
	publishers map[string]*pubsub.Publisher
}

func NewPubSub(ctx context.Context, cfg PubSubConfig) (*PubSub, error) {
	if cfg.ProjectID == "" {
		return nil, ErrPubSubProjectIDRequired
	}

	c, err := pubsub.NewClient(ctx, cfg.ProjectID, cfg.ClientOptions...)
	if err != nil {
		return nil, fmt.Errorf("messaging: pubsub new client: %w", err)
	}
	return &PubSub{client: c, publishers: make(map[string]*pubsub.Publisher)}, nil
}

func (p *PubSub) Close() error {
	p.mu.Lock()
	for topic, pub := range p.publishers {
		pub.Stop()
		delete(p.publishers, topic)
	}
	p.mu.Unlock()

	return p.client.Close()
}

func (p *PubSub) publisher(topic string) *pubsub.Publisher {
	p.mu.Lock()
	defer p.mu.Unlock()

	if pub, ok := p.publishers[topic]; ok {
		return pub
	}
	pub := p.client.Publisher(topic)
	p.publishers[topic] = pub
	return pub
}

func (p *PubSub) Publish(ctx context.Context, topic string, msg OutgoingMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if topic == "" {
		return ErrTopicRequired
	}

	res := p.publisher(topic).Publish(ctx, &pubsub.Message{
		Data:        msg.Body,
		Attributes:  msg.Headers,
		OrderingKey: string(msg.Key),
	})
	if _, err := res.Get(ctx); err != nil {
		return fmt.Errorf("messaging: pubsub publish: %w", err)
	}
	return nil
}

func (p *PubSub) Consume(ctx context.Context, topic string, handler Handler, opts ...ConsumeOption) error {
	if err := validateConsume(topic, handler); err != nil {
		return err
	}
	co := newConsumeOptions(opts...)

	subscription := co.group
	if subscription == "" {
		subscription = topic
	}

	sub := p.client.Subscriber(subscription)
	sub.ReceiveSettings.NumGoroutines = co.concurrency
	sub.ReceiveSettings.MaxOutstandingMessages = co.maxInFlight

	return sub.Receive(ctx, func(ctx context.Context, m *pubsub.Message) {
		msg := Message{Topic: topic, Body: m.Data, Headers: m.Attributes, ReceivedAt: m.PublishTime}
		if err := dispatch(ctx, "pubsub", handler, msg); err != nil {
			m.Nack()
			return
		}
		m.Ack()
	})
}
