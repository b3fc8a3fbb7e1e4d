package messaging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/segmentio/kafka-go"
)

var ErrKafkaBrokersRequired = errors.New("messaging: kafka brokers are required")

type KafkaConfig struct {
	Brokers []string
	Dialer  *kafka.Dialer
}

// Kafka keeps one writer per topic. Offsets are committed after the handler
// returns, whatever it returned; failed deliveries are logged.
type Kafka struct {
	brokers []string
	dialer  *kafka.Dialer

	mu      sync.Mutex
	writers map[string]*kafka.Writer
}

func NewKafka(cfg KafkaConfig) (*Kafka, error) {
	if len(cfg.Brokers) == 0 {
		return nil, ErrKafkaBrokersRequired
	}

	return &Kafka{
		brokers: cfg.Brokers,
		dialer:  cfg.Dialer,
		writers: make(map[string]*kafka.Writer),
	}, nil
}

func (k *Kafka) Close() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	var err error
	for topic, w := range k.writers {
		err = errors.Join(err, w.Close())
		delete(k.writers, topic)
	}
	return err
}

func (k *Kafka) writer(topic string) *kafka.Writer {
	k.mu.Lock()
	defer k.mu.Unlock()

	if w, ok := k.writers[topic]; ok {
		return w
	}

	w := kafka.NewWriter(kafka.WriterConfig{
		Brokers:  k.brokers,
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
		Dialer:   k.dialer,
	})
	k.writers[topic] = w
	return w
}

func (k *Kafka) Publish(ctx context.Context, topic string, msg OutgoingMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if topic == "" {
		return ErrTopicRequired
	}

	kmsg := kafka.Message{Key: msg.Key, Value: msg.Body}
	for key, v := range msg.Headers {
		kmsg.Headers = append(kmsg.Headers, kafka.Header{Key: key, Value: []byte(v)})
	}

	if err := k.writer(topic).WriteMessages(ctx, kmsg); err != nil {
		return fmt.Errorf("messaging: kafka publish: %w", err)
	}
	return nil
}

func (k *Kafka) Consume(ctx context.Context, topic string, handler Handler, opts ...ConsumeOption) error {
	if err := validateConsume(topic, handler); err != nil {
		return err
	}
	co := newConsumeOptions(opts...)
	if co.group == "" {
		return ErrGroupRequired
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  k.brokers,
		GroupID:  co.group,
		Topic:    topic,
		MaxBytes: 10e6,
		Dialer:   k.dialer,
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	msgCh := make(chan kafka.Message, co.maxInFlight)
	errCh := make(chan error, 1)

	var wg sync.WaitGroup
	for range co.concurrency {
		wg.Go(func() {
			for m := range msgCh {
				if err := dispatch(ctx, "kafka", handler, kafkaToMessage(m)); err != nil {
					slog.WarnContext(ctx, "kafka handler failed", "topic", m.Topic, "partition", m.Partition, "offset", m.Offset, "error", err)
				}
				if err := reader.CommitMessages(ctx, m); err != nil {
					select {
					case errCh <- fmt.Errorf("messaging: kafka commit: %w", err):
					default:
					}
					cancel()
					return
				}
			}
		})
	}

	var fetchErr error
	for {
		m, err := reader.FetchMessage(ctx)
		if err != nil {
			fetchErr = err
			break
		}
		select {
		case msgCh <- m:
			continue
		case <-ctx.Done():
			fetchErr = ctx.Err()
		}
		break
	}

	close(msgCh)
	wg.Wait()

	select {
	case err := <-errCh:
		fetchErr = err
	default:
	}
	return errors.Join(fetchErr, reader.Close())
}

func kafkaToMessage(m kafka.Message) Message {
	msg := Message{Topic: m.Topic, Body: m.Value, ReceivedAt: m.Time}
	if len(m.Headers) > 0 {
		msg.Headers = make(map[string]string, len(m.Headers))
		for _, h := range m.Headers {
			msg.Headers[h.Key] = string(h.Value)
		}
	}
	return msg
}
