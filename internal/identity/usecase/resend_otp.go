package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/phishguard/internal/identity/entity"
	"github.com/shandysiswandi/phishguard/internal/pkg/goerror"
)

// ResendOTP replaces the challenge with a new code while the resend budget
// lasts.
func (s *Usecase) ResendOTP(ctx context.Context, in VerificationInput) (*VerificationOutput, error) {
	ctx, span := s.startSpan(ctx, "ResendOTP")
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

	if sess.ResendCount >= s.maxResends {
		slog.WarnContext(ctx, "otp resend budget exhausted", "session_id", sess.ID, "resend_count", sess.ResendCount)
		return nil, goerror.NewBusiness("Maximum resend attempts reached. Try again later.", goerror.CodeTooManyRequest)
	}

	code, err := s.issueChallenge(ctx, sess)
	if err != nil {
		return nil, err
	}
	sess.ResendCount++

	if err := s.saveSession(ctx, sess); err != nil {
		return nil, err
	}

	delivery := s.notify(ctx, sess, code)

	slog.InfoContext(ctx, "otp reissued", "session_id", sess.ID, "resend_count", sess.ResendCount, "delivery", delivery.String())

	return &VerificationOutput{
		State:            entity.StateChallengeIssued,
		OTPSent:          true,
		ResendCount:      sess.ResendCount,
		MaxResends:       s.maxResends,
		ExpiresInSeconds: s.expiresIn(sess.Challenge),
		Delivery:         delivery,
	}, nil
}
