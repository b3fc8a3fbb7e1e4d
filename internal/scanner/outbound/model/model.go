// Package model scores token sequences against a TensorFlow Serving
// deployment of the phishing classifier.
package model

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shandysiswandi/phishguard/internal/pkg/instrument"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var ErrEmptyPrediction = errors.New("model: empty prediction")

type Config struct {
	// BaseURL is the TF Serving REST root, e.g. http://tfserving:8501.
	BaseURL string
	Name    string
	Timeout time.Duration
	// HTTPClient overrides the default client built from Timeout.
	HTTPClient *http.Client
}

type Model struct {
	endpoint string
	client   *http.Client
	ins      instrument.Instrumentation
}

func New(cfg Config, ins instrument.Instrumentation) (*Model, error) {
	if cfg.Name == "" {
		return nil, errors.New("model: name is required")
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("model: invalid base url %q", cfg.BaseURL)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	return &Model{
		endpoint: base.String() + "/v1/models/" + url.PathEscape(cfg.Name) + ":predict",
		client:   client,
		ins:      ins,
	}, nil
}

type predictRequest struct {
	Instances [][]int `json:"instances"`
}

type predictResponse struct {
	Predictions [][]float64 `json:"predictions"`
	Error       string      `json:"error"`
}

// Predict returns the phishing probability of one padded sequence.
func (m *Model) Predict(ctx context.Context, sequence []int) (float64, error) {
	ctx, span := m.ins.Tracer("scanner.outbound.model").Start(ctx, "Predict")
	defer span.End()
	span.SetAttributes(attribute.Int("sequence.length", len(sequence)))

	score, err := m.predict(ctx, sequence)
	if err != nil {
		return 0, m.endSpan(span, err)
	}
	span.SetAttributes(attribute.Float64("score", score))

	return score, nil
}

func (m *Model) predict(ctx context.Context, sequence []int) (float64, error) {
	body, err := json.Marshal(predictRequest{Instances: [][]int{sequence}})
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	var out predictResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&out); err != nil {
		return 0, fmt.Errorf("model: decode response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("model: status %d: %s", resp.StatusCode, out.Error)
	}
	if len(out.Predictions) == 0 || len(out.Predictions[0]) == 0 {
		return 0, ErrEmptyPrediction
	}

	return out.Predictions[0][0], nil
}

func (*Model) endSpan(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
