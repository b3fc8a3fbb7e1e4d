package usecase

import (
	"context"

	"github.com/shandysiswandi/phishguard/internal/pkg/instrument"
	"go.opentelemetry.io/otel/trace"
)

type encoder interface {
	Encode(text string) []int
}

type predictor interface {
	Predict(ctx context.Context, sequence []int) (float64, error)
}

type Usecase struct {
	encoder   encoder
	predictor predictor
	ins       instrument.Instrumentation
}

type Dependency struct {
	Encoder    encoder
	Predictor  predictor
	Instrument instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		encoder:   dep.Encoder,
		predictor: dep.Predictor,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("scanner.usecase").Start(ctx, name)
}
