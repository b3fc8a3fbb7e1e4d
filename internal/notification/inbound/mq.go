package inbound

import (
	"context"
	"log/slog"
	"slices"

	"github.com/shandysiswandi/phishguard/internal/pkg/config"
	"github.com/shandysiswandi/phishguard/internal/pkg/goroutine"
	"github.com/shandysiswandi/phishguard/internal/pkg/instrument"
	"github.com/shandysiswandi/phishguard/internal/pkg/messaging"
	"github.com/shandysiswandi/phishguard/internal/pkg/uid"
	"github.com/shandysiswandi/phishguard/internal/shared/event"
)

func RegisterMQConsumer(
	ctx context.Context,
	cfg config.Config,
	routine *goroutine.Manager,
	messenger messaging.Messaging,
	uuid uid.StringID,
	uc uc,
	ins instrument.Instrumentation,
) {
	mqHandler := &MQHandler{uc: uc, uuid: uuid, ins: ins}

	enableConsumerNames := cfg.GetArray("modules.notification.consumer_names")
	concurrency := cfg.GetInt("modules.notification.consumer_concurrency")

	var consumers = []struct {
		name    string
		topic   string // destination where publisher sent message
		group   string // nsq channel, nats queue group, kafka group, pubsub subscription
		handler messaging.Handler
	}{
		{
			name:    event.OTPIssuedConsumerNotification,
			topic:   event.OTPIssuedDestination,
			group:   event.OTPIssuedConsumerNotification,
			handler: mqHandler.OTPIssuedNotification,
		},
	}

	for _, consumer := range consumers {
		if len(enableConsumerNames) > 0 && slices.Contains(enableConsumerNames, consumer.name) {
			routine.Go(ctx, func(pCtx context.Context) error {
				slog.InfoContext(ctx, "Running job for handling consumer", "consumer", consumer.name)
				return messenger.Consume(pCtx,
					consumer.topic,
					consumer.handler,
					messaging.WithGroup(consumer.group),
					messaging.WithConcurrency(concurrency),
					messaging.WithMaxInFlight(concurrency),
				)
			})
		}
	}
}
