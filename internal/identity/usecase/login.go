package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/phishguard/internal/pkg/goerror"
)

type LoginInput struct {
	SessionID string `validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
}

type LoginOutput struct {
	Email string
	Name  string
}

// Login marks the session as belonging to the user with exactly these
// credentials.
func (s *Usecase) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	in.Email = strings.TrimSpace(in.Email)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	user, err := s.repoUser.FindByCredentials(ctx, in.Email, in.Password)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "login with invalid credentials", "email", in.Email)
		return nil, goerror.NewBusiness("Invalid credentials", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo find user by credentials", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
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

	sess.UserEmail = user.Email

	if err := s.saveSession(ctx, sess); err != nil {
		return nil, err
	}

	return &LoginOutput{Email: user.Email, Name: user.Name}, nil
}
