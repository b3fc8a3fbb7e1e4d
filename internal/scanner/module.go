package scanner

import (
	"context"

	"github.com/shandysiswandi/phishguard/internal/pkg/config"
	"github.com/shandysiswandi/phishguard/internal/pkg/instrument"
	"github.com/shandysiswandi/phishguard/internal/pkg/router"
	"github.com/shandysiswandi/phishguard/internal/pkg/storage"
	"github.com/shandysiswandi/phishguard/internal/pkg/validator"
	"github.com/shandysiswandi/phishguard/internal/scanner/inbound"
	"github.com/shandysiswandi/phishguard/internal/scanner/outbound/artifact"
	"github.com/shandysiswandi/phishguard/internal/scanner/outbound/model"
	"github.com/shandysiswandi/phishguard/internal/scanner/usecase"
)

type Dependency struct {
	Storage    storage.Storage            `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
	// RequireLogin guards the classify endpoint.
	RequireLogin router.Middleware `validate:"required"`
}

func New(ctx context.Context, dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	tok, err := artifact.LoadTokenizer(ctx, dep.Storage,
		dep.Config.GetString("modules.scanner.tokenizer.bucket"),
		dep.Config.GetString("modules.scanner.tokenizer.key"),
		dep.Instrument,
	)
	if err != nil {
		return err
	}

	predictor, err := model.New(model.Config{
		BaseURL: dep.Config.GetString("modules.scanner.model.url"),
		Name:    dep.Config.GetString("modules.scanner.model.name"),
		Timeout: dep.Config.GetSecond("modules.scanner.model.timeout_seconds"),
	}, dep.Instrument)
	if err != nil {
		return err
	}

	uc := usecase.New(usecase.Dependency{
		Encoder:    tok,
		Predictor:  predictor,
		Instrument: dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc, dep.RequireLogin)

	return nil
}
