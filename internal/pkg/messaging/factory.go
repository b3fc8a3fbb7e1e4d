package messaging

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	DriverMemory       = "memory"
	DriverNSQ          = "nsq"
	DriverNATS         = "nats"
	DriverKafka        = "kafka"
	DriverGooglePubSub = "google-pubsub"
)

var ErrUnknownDriver = errors.New("messaging: unknown driver")

// FactoryOptions carries the settings of every driver; only the selected
// one is read.
type FactoryOptions struct {
	MemoryBuffer int
	NSQ          NSQConfig
	Kafka        KafkaConfig
	NATS         NATSConfig
	PubSub       PubSubConfig
}

// NewFromDriver builds the Messaging named by driver.
func NewFromDriver(ctx context.Context, driver string, opts FactoryOptions) (Messaging, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverMemory:
		return NewMemory(opts.MemoryBuffer), nil
	case DriverNSQ:
		return NewNSQ(opts.NSQ)
	case DriverKafka:
		return NewKafka(opts.Kafka)
	case DriverNATS:
		return NewNATS(opts.NATS)
	case DriverGooglePubSub:
		return NewPubSub(ctx, opts.PubSub)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
}
