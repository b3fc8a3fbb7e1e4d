package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/phishguard/internal/pkg/goerror"
	"github.com/shandysiswandi/phishguard/internal/scanner/entity"
)

type ClassifyInput struct {
	URL string
}

type ClassifyOutput struct {
	// HasResult is false when there was nothing to classify.
	HasResult bool
	Result    entity.Result
}

// Classify scores a URL with the phishing model. An empty URL is not an
// error; it yields no result. Anything else, whitespace included, is scored
// as given.
func (s *Usecase) Classify(ctx context.Context, in ClassifyInput) (*ClassifyOutput, error) {
	ctx, span := s.startSpan(ctx, "Classify")
	defer span.End()

	url := in.URL
	if url == "" {
		return &ClassifyOutput{}, nil
	}

	score, err := s.predictor.Predict(ctx, s.encoder.Encode(url))
	if err != nil {
		slog.ErrorContext(ctx, "failed to predict url", "url", url, "error", err)
		return nil, goerror.NewBusiness("Classifier is unavailable", goerror.CodeUnavailable)
	}

	verdict := entity.VerdictFromScore(score)
	slog.InfoContext(ctx, "url classified", "url", url, "score", score, "verdict", verdict.String())

	return &ClassifyOutput{
		HasResult: true,
		Result:    entity.Result{URL: url, Score: score, Verdict: verdict},
	}, nil
}
