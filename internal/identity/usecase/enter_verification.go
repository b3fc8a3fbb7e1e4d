package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/phishguard/internal/identity/entity"
	"github.com/shandysiswandi/phishguard/internal/pkg/goerror"
)

type VerificationInput struct {
	SessionID string `validate:"required"`
}

// VerificationOutput describes the OTP page of a session.
type VerificationOutput struct {
	State            entity.VerificationState
	OTPSent          bool
	ResendAvailable  bool
	ResendCount      int
	MaxResends       int
	ExpiresInSeconds int
	Delivery         entity.Delivery
}

// EnterVerification shows the OTP state of the session and issues the first
// code when none exists yet.
func (s *Usecase) EnterVerification(ctx context.Context, in VerificationInput) (*VerificationOutput, error) {
	ctx, span := s.startSpan(ctx, "EnterVerification")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	unlock, err := s.lockSession(ctx, in.SessionID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	sess, err := s.loadSession(ctx, in.SessionID)
	if err != nil {
		return nil, err
	}

	if sess.Signup == nil {
		return &VerificationOutput{State: entity.StateNoSignup, MaxResends: s.maxResends}, nil
	}

	// expiry is judged on the challenge as it was before this request
	expired := sess.Challenge != nil && sess.Challenge.Expired(s.clock.Now(), s.otpTTL)

	out := &VerificationOutput{
		State:           entity.StateChallengeIssued,
		OTPSent:         sess.Challenge != nil,
		ResendAvailable: expired && sess.ResendCount < s.maxResends,
		ResendCount:     sess.ResendCount,
		MaxResends:      s.maxResends,
	}

	switch {
	case out.ResendAvailable:
		out.State = entity.StateExpired
	case expired:
		out.State = entity.StateMaxResendsReached
	}

	if sess.Challenge == nil {
		code, err := s.issueChallenge(ctx, sess)
		if err != nil {
			return nil, err
		}

		if err := s.saveSession(ctx, sess); err != nil {
			return nil, err
		}

		out.Delivery = s.notify(ctx, sess, code)
		out.OTPSent = true

		slog.InfoContext(ctx, "otp issued", "session_id", sess.ID, "delivery", out.Delivery.String())
	}

	out.ExpiresInSeconds = s.expiresIn(sess.Challenge)

	return out, nil
}
