package inbound

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/shandysiswandi/phishguard/internal/notification/usecase"
	"github.com/shandysiswandi/phishguard/internal/pkg/instrument"
	"github.com/shandysiswandi/phishguard/internal/pkg/messaging"
	"github.com/shandysiswandi/phishguard/internal/pkg/uid"
	"github.com/shandysiswandi/phishguard/internal/shared/event"
)

const keyOfCorrelationID string = "cID"

type MQHandler struct {
	uc   uc
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, msg messaging.Message) context.Context {
	if cID := msg.Header(keyOfCorrelationID); cID != "" {
		return instrument.SetCorrelationID(ctx, cID)
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

// OTPIssuedNotification logs only the recipient; the body carries the code.
func (h *MQHandler) OTPIssuedNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg)

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "OTPIssuedNotification")
	defer span.End()

	var payload event.OTPIssuedMessage
	if err := json.Unmarshal(msg.Body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of otp issued notification", "topic", msg.Topic, "error", err)
		return nil
	}

	slog.InfoContext(ctx, "consume: otp issued notification", "email", payload.Email, "issued_at", payload.IssuedAt)

	if err := h.uc.ConsumeOTPIssued(ctx, usecase.ConsumeOTPIssuedInput{
		Name:  payload.Name,
		Email: payload.Email,
		Phone: payload.Phone,
		OTP:   payload.OTP,

		IssuedAt: payload.IssuedAt,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume otp issued", "email", payload.Email, "error", err)
		return err
	}

	return nil
}
