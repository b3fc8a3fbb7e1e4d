// Package gateway sends text messages through an HTTP WhatsApp/SMS
// provider.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/shandysiswandi/phishguard/internal/notification/entity"
	"github.com/shandysiswandi/phishguard/internal/pkg/instrument"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var ErrRejected = errors.New("gateway: message rejected")

type Config struct {
	// URL receives POST {"channel","to","message"}.
	URL   string
	Token string
	// MaxAttempts includes the first try.
	MaxAttempts uint64
	BaseBackoff time.Duration
	Timeout     time.Duration
	HTTPClient  *http.Client
}

type Gateway struct {
	cfg    Config
	client *http.Client
	ins    instrument.Instrumentation
}

func New(cfg Config, ins instrument.Instrumentation) *Gateway {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 3
	}
	if cfg.BaseBackoff <= 0 {
		cfg.BaseBackoff = 200 * time.Millisecond
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	return &Gateway{cfg: cfg, client: client, ins: ins}
}

type sendRequest struct {
	Channel string `json:"channel"`
	To      string `json:"to"`
	Message string `json:"message"`
}

// SendText delivers text to phone, retrying transport failures and 5xx
// answers with exponential backoff. 4xx answers are final.
func (g *Gateway) SendText(ctx context.Context, ch entity.Channel, phone, text string) error {
	ctx, span := g.ins.Tracer("notification.outbound.gateway").Start(ctx, "SendText")
	defer span.End()
	span.SetAttributes(attribute.String("channel", string(ch)))

	body, err := json.Marshal(sendRequest{Channel: string(ch), To: phone, Message: text})
	if err != nil {
		return err
	}

	backoff := retry.WithMaxRetries(g.cfg.MaxAttempts-1, retry.NewExponential(g.cfg.BaseBackoff))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		return g.post(ctx, body)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

func (g *Gateway) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+g.cfg.Token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return retry.RetryableError(err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))

	switch {
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return retry.RetryableError(fmt.Errorf("gateway: status %d", resp.StatusCode))
	case resp.StatusCode >= 300:
		return fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode)
	default:
		return nil
	}
}
