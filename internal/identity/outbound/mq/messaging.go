package mq

import (
	"context"
	"encoding/json"

	"github.com/shandysiswandi/phishguard/internal/identity/usecase"
	"github.com/shandysiswandi/phishguard/internal/pkg/instrument"
	"github.com/shandysiswandi/phishguard/internal/pkg/messaging"
	"github.com/shandysiswandi/phishguard/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client messaging.Messaging
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Messaging, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) PublishOTPIssued(ctx context.Context, msg usecase.OTPIssuedEvent) error {
	ctx, span := m.ins.Tracer("identity.outbound.mq").Start(ctx, "PublishOTPIssued")
	defer span.End()

	body, err := json.Marshal(event.OTPIssuedMessage{
		Name:     msg.Name,
		Email:    msg.Email,
		Phone:    msg.Phone,
		OTP:      msg.Code,
		IssuedAt: msg.IssuedAt,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if err := m.client.Publish(ctx, event.OTPIssuedDestination, messaging.OutgoingMessage{
		Body:    body,
		Key:     []byte(msg.Email),
		Headers: map[string]string{keyOfCorrelationID: instrument.GetCorrelationID(ctx)},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
