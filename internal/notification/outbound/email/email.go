// Package email sends the mail copy of a signup code.
package email

import (
	"context"
	"strings"

	"github.com/shandysiswandi/phishguard/internal/pkg/instrument"
	"github.com/shandysiswandi/phishguard/internal/pkg/mail"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const defaultSubject = "Your PhishGuard signup code"

type Email struct {
	client  mail.Mail
	subject string
	ins     instrument.Instrumentation
}

func New(client mail.Mail, subject string, ins instrument.Instrumentation) *Email {
	if strings.TrimSpace(subject) == "" {
		subject = defaultSubject
	}
	return &Email{client: client, subject: subject, ins: ins}
}

// SendOTP mails text to the recipient, greeting them by name.
func (e *Email) SendOTP(ctx context.Context, to, name, text string) error {
	ctx, span := e.ins.Tracer("notification.outbound.email").Start(ctx, "SendOTP")
	defer span.End()
	span.SetAttributes(attribute.String("to", to))

	var body strings.Builder
	if name != "" {
		body.WriteString("Hi " + name + ",\n\n")
	}
	body.WriteString(text + "\n")

	if err := e.client.Send(ctx, mail.Message{
		To:      []string{to},
		Subject: e.subject,
		Body:    body.String(),
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
