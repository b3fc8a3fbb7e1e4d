package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/samber/lo"
	"github.com/shandysiswandi/phishguard/internal/notification/entity"
	"github.com/shandysiswandi/phishguard/internal/pkg/clock"
	"github.com/shandysiswandi/phishguard/internal/pkg/config"
	"github.com/shandysiswandi/phishguard/internal/pkg/instrument"
	"github.com/shandysiswandi/phishguard/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultPhonePrefix = "+92"
	defaultOTPTTL      = 45 * time.Second
)

type repoGateway interface {
	SendText(ctx context.Context, ch entity.Channel, phone, text string) error
}

type repoMail interface {
	SendOTP(ctx context.Context, to, name, text string) error
}

type Usecase struct {
	gateway   repoGateway
	mail      repoMail
	validator validator.Validator
	clock     clock.Clocker
	ins       instrument.Instrumentation

	channels    []entity.Channel
	phonePrefix string
	otpTTL      time.Duration
}

type Dependency struct {
	RepoGateway repoGateway
	RepoMail    repoMail
	Validator   validator.Validator
	Config      config.Config
	Clock       clock.Clocker
	Instrument  instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	channels := lo.Uniq(lo.FilterMap(dep.Config.GetArray("modules.notification.channels"), func(s string, _ int) (entity.Channel, bool) {
		ch, ok := entity.ChannelFromString(s)
		if !ok {
			slog.Warn("ignoring unknown notification channel", "channel", s)
		}
		return ch, ok
	}))
	if len(channels) == 0 {
		channels = []entity.Channel{entity.ChannelWhatsApp}
	}

	prefix := dep.Config.GetString("modules.notification.phone_prefix")
	if prefix == "" {
		prefix = defaultPhonePrefix
	}

	// codes live as long as the identity module keeps them valid
	ttl := dep.Config.GetSecond("modules.identity.otp.ttl_seconds")
	if ttl <= 0 {
		ttl = defaultOTPTTL
	}

	clk := dep.Clock
	if clk == nil {
		clk = clock.New()
	}

	return &Usecase{
		gateway:     dep.RepoGateway,
		mail:        dep.RepoMail,
		validator:   dep.Validator,
		clock:       clk,
		ins:         dep.Instrument,
		channels:    channels,
		phonePrefix: prefix,
		otpTTL:      ttl,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("notification.usecase").Start(ctx, name)
}
