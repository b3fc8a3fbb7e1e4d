package messaging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"sync"
	"time"
)

var (
	ErrClosed    = errors.New("messaging: closed")
	ErrQueueFull = errors.New("messaging: queue full")
)

// Memory is an in-process broker. Each consumer group of a topic gets every
// message once; consumers in the same group share the group's queue.
// Messages published before any consumer exists are dropped.
type Memory struct {
	mu     sync.RWMutex
	groups map[string]map[string]chan Message
	closed bool
	done   chan struct{}
	buffer int
}

// NewMemory creates a broker whose group queues hold buffer messages.
func NewMemory(buffer int) *Memory {
	if buffer < 1 {
		buffer = 64
	}
	return &Memory{
		groups: make(map[string]map[string]chan Message),
		done:   make(chan struct{}),
		buffer: buffer,
	}
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.closed {
		m.closed = true
		close(m.done)
	}
	return nil
}

// Publish enqueues msg for every group of topic without blocking. A group
// whose queue is full misses the message and Publish reports ErrQueueFull
// after offering it to the other groups.
func (m *Memory) Publish(ctx context.Context, topic string, msg OutgoingMessage) error {
	if topic == "" {
		return ErrTopicRequired
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.RLock()
	if m.closed {
		m.mu.RUnlock()
		return ErrClosed
	}
	queues := maps.Clone(m.groups[topic])
	m.mu.RUnlock()

	delivery := Message{Topic: topic, Body: msg.Body, Headers: maps.Clone(msg.Headers), ReceivedAt: time.Now()}

	var errs []error
	for group, q := range queues {
		select {
		case q <- delivery:
		default:
			errs = append(errs, fmt.Errorf("%w: topic %q group %q", ErrQueueFull, topic, group))
		}
	}
	return errors.Join(errs...)
}

func (m *Memory) queue(topic, group string) (chan Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrClosed
	}
	if m.groups[topic] == nil {
		m.groups[topic] = make(map[string]chan Message)
	}
	q, ok := m.groups[topic][group]
	if !ok {
		q = make(chan Message, m.buffer)
		m.groups[topic][group] = q
	}
	return q, nil
}

// Consume drains the group's queue until ctx is done or the broker closes.
// Handler errors are logged; there is no redelivery.
func (m *Memory) Consume(ctx context.Context, topic string, handler Handler, opts ...ConsumeOption) error {
	if err := validateConsume(topic, handler); err != nil {
		return err
	}
	co := newConsumeOptions(opts...)

	q, err := m.queue(topic, co.group)
	if err != nil {
		return err
	}

	var wg sync.WaitGroup
	for range co.concurrency {
		wg.Go(func() {
			for {
				select {
				case <-ctx.Done():
					return
				case <-m.done:
					return
				case msg := <-q:
					if err := dispatch(ctx, "memory", handler, msg); err != nil {
						slog.WarnContext(ctx, "memory handler failed", "topic", topic, "error", err)
					}
				}
			}
		})
	}
	wg.Wait()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	return ErrClosed
}
