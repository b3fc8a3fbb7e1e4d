package notification

import (
	"context"
	"time"

	"github.com/shandysiswandi/phishguard/internal/notification/inbound"
	"github.com/shandysiswandi/phishguard/internal/notification/outbound/email"
	"github.com/shandysiswandi/phishguard/internal/notification/outbound/gateway"
	"github.com/shandysiswandi/phishguard/internal/notification/usecase"
	"github.com/shandysiswandi/phishguard/internal/pkg/clock"
	"github.com/shandysiswandi/phishguard/internal/pkg/config"
	"github.com/shandysiswandi/phishguard/internal/pkg/goroutine"
	"github.com/shandysiswandi/phishguard/internal/pkg/instrument"
	"github.com/shandysiswandi/phishguard/internal/pkg/mail"
	"github.com/shandysiswandi/phishguard/internal/pkg/messaging"
	"github.com/shandysiswandi/phishguard/internal/pkg/uid"
	"github.com/shandysiswandi/phishguard/internal/pkg/validator"
)

type Dependency struct {
	Ctx        context.Context
	Messaging  messaging.Messaging        `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UUID       uid.StringID               `validate:"required"`
	Goroutine  *goroutine.Manager         `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
	Mail       mail.Mail                  `validate:"required"`
	Clock      clock.Clocker
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	repoGateway := gateway.New(gateway.Config{
		URL:         dep.Config.GetString("modules.notification.gateway.url"),
		Token:       dep.Config.GetString("modules.notification.gateway.token"),
		MaxAttempts: uint64(dep.Config.GetInt("modules.notification.max_attempts")),
		BaseBackoff: time.Duration(dep.Config.GetInt("modules.notification.gateway.backoff_ms")) * time.Millisecond,
		Timeout:     dep.Config.GetSecond("modules.notification.gateway.timeout_seconds"),
	}, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoGateway: repoGateway,
		RepoMail:    email.New(dep.Mail, dep.Config.GetString("modules.notification.mail_subject"), dep.Instrument),
		Validator:   dep.Validator,
		Config:      dep.Config,
		Clock:       dep.Clock,
		Instrument:  dep.Instrument,
	})

	if dep.Ctx != nil {
		inbound.RegisterMQConsumer(dep.Ctx, dep.Config, dep.Goroutine, dep.Messaging, dep.UUID, uc, dep.Instrument)
	}

	return nil
}
