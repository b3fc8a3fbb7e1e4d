package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/phishguard/internal/identity/entity"
	"github.com/shandysiswandi/phishguard/internal/pkg/goerror"
)

type VerifyOTPInput struct {
	SessionID string `validate:"required"`
	Code      string `json:"otp" validate:"required"`
}

// VerifyOTP checks the submitted code. A match creates the user and ends the
// session; a mismatch leaves the session untouched. When the email was taken
// by another session in the meantime the session is cleared so the visitor
// can sign up again.
func (s *Usecase) VerifyOTP(ctx context.Context, in VerifyOTPInput) (*VerificationOutput, error) {
	ctx, span := s.startSpan(ctx, "VerifyOTP")
	defer span.End()

	in.Code = strings.TrimSpace(in.Code)

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

	if sess.Challenge.Expired(s.clock.Now(), s.otpTTL) {
		slog.WarnContext(ctx, "otp challenge missing or expired", "session_id", sess.ID)
		return nil, goerror.NewBusiness("OTP expired. Please resend.", goerror.CodeExpired)
	}

	if !s.hmac.Verify(sess.Challenge.CodeHash, in.Code) {
		slog.WarnContext(ctx, "otp does not match", "session_id", sess.ID)
		return nil, goerror.NewBusiness("Invalid OTP.", goerror.CodeUnauthorized)
	}

	user := entity.User{
		ID:        s.uid.Generate(),
		Name:      sess.Signup.Name,
		Email:     sess.Signup.Email,
		Phone:     sess.Signup.Phone,
		Password:  sess.Signup.Password,
		CreatedAt: s.clock.Now(),
	}

	err = s.repoUser.Insert(ctx, user)
	if errors.Is(err, goerror.ErrConflict) {
		slog.WarnContext(ctx, "email registered while signup was pending", "session_id", sess.ID, "email", user.Email)
		if err := s.repoSession.Delete(ctx, sess.ID); err != nil {
			slog.ErrorContext(ctx, "failed to repo delete session", "session_id", sess.ID, "error", err)
			return nil, goerror.NewServer(err)
		}
		return nil, goerror.NewBusiness("Email already exists", goerror.CodeConflict)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo insert user", "email", user.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoSession.Delete(ctx, sess.ID); err != nil {
		slog.ErrorContext(ctx, "failed to repo delete session", "session_id", sess.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "signup verified", "user_id", user.ID, "email", user.Email)

	return &VerificationOutput{State: entity.StateVerified, MaxResends: s.maxResends}, nil
}
