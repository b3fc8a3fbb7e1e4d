package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

type ConsumeOTPIssuedInput struct {
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
	Phone string `validate:"required"`
	OTP   string `validate:"required,numeric,len=6"`

	IssuedAt time.Time
}

// ConsumeOTPIssued delivers a signup code on every configured channel.
// Codes that already expired are skipped. Delivery failures are logged and
// dropped: the code expires long before a redelivery would help.
func (s *Usecase) ConsumeOTPIssued(ctx context.Context, in ConsumeOTPIssuedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeOTPIssued")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	if !in.IssuedAt.IsZero() {
		if age := s.clock.Now().Sub(in.IssuedAt); age > s.otpTTL {
			slog.WarnContext(ctx, "skipping expired otp", "email", in.Email, "issued_at", in.IssuedAt, "age", age.String())
			return nil
		}
	}

	text := "Your OTP for signup is: " + in.OTP

	for _, ch := range s.channels {
		var err error
		if ch.IsPhone() {
			err = s.gateway.SendText(ctx, ch, s.internationalize(in.Phone), text)
		} else {
			err = s.mail.SendOTP(ctx, in.Email, in.Name, text)
		}

		if err != nil {
			slog.ErrorContext(ctx, "failed to deliver otp", "channel", string(ch), "email", in.Email, "error", err)
			continue
		}

		slog.InfoContext(ctx, "otp delivered", "channel", string(ch), "email", in.Email)
	}

	return nil
}

// internationalize prefixes local numbers with the configured country code.
func (s *Usecase) internationalize(phone string) string {
	phone = strings.TrimSpace(phone)
	if strings.HasPrefix(phone, "+") {
		return phone
	}
	return s.phonePrefix + phone
}
