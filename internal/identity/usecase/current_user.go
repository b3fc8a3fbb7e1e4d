package usecase

import (
	"context"

	"github.com/shandysiswandi/phishguard/internal/pkg/goerror"
)

type CurrentUserInput struct {
	SessionID string
}

type CurrentUserOutput struct {
	Email string
}

// CurrentUser returns the logged-in email of the session. It takes no lock
// because it never writes.
func (s *Usecase) CurrentUser(ctx context.Context, in CurrentUserInput) (*CurrentUserOutput, error) {
	ctx, span := s.startSpan(ctx, "CurrentUser")
	defer span.End()

	if in.SessionID == "" {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	sess, err := s.loadSession(ctx, in.SessionID)
	if err != nil {
		return nil, err
	}

	if !sess.Authenticated() {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	return &CurrentUserOutput{Email: sess.UserEmail}, nil
}
