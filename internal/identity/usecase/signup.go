package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/phishguard/internal/identity/entity"
	"github.com/shandysiswandi/phishguard/internal/pkg/goerror"
)

type SignupInput struct {
	SessionID string `validate:"required"`
	Name      string `json:"name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,max=15,phone"`
	Password  string `json:"password" validate:"required"`
}

// Signup stages the form in the session. The user is created only after
// the OTP is verified.
func (s *Usecase) Signup(ctx context.Context, in SignupInput) error {
	ctx, span := s.startSpan(ctx, "Signup")
	defer span.End()

	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	_, err := s.repoUser.FindByEmail(ctx, in.Email)
	if err == nil {
		slog.WarnContext(ctx, "signup email already registered", "email", in.Email)
		return goerror.NewBusiness("Email already exists", goerror.CodeConflict)
	}
	if !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo find user by email", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	unlock, err := s.lockSession(ctx, in.SessionID)
	if err != nil {
		return err
	}
	defer unlock()

	sess, err := s.loadSession(ctx, in.SessionID)
	if err != nil {
		return err
	}

	sess.StageSignup(entity.PendingSignup{
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Password: in.Password,
	})

	return s.saveSession(ctx, sess)
}
