package inbound

import (
	"context"

	"github.com/shandysiswandi/phishguard/internal/notification/usecase"
)

type uc interface {
	ConsumeOTPIssued(ctx context.Context, in usecase.ConsumeOTPIssuedInput) error
}
