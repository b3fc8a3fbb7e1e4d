package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/phishguard/internal/pkg/goerror"
)

type LogoutInput struct {
	SessionID string `validate:"required"`
}

// Logout drops everything stored for the session.
func (s *Usecase) Logout(ctx context.Context, in LogoutInput) error {
	ctx, span := s.startSpan(ctx, "Logout")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	unlock, err := s.lockSession(ctx, in.SessionID)
	if err != nil {
		return err
	}
	defer unlock()

	if err := s.repoSession.Delete(ctx, in.SessionID); err != nil {
		slog.ErrorContext(ctx, "failed to repo delete session", "session_id", in.SessionID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
