package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/phishguard/internal/identity"
	"github.com/shandysiswandi/phishguard/internal/notification"
	"github.com/shandysiswandi/phishguard/internal/scanner"
)

func (a *App) initModules() {
	idm, err := identity.New(a.ctx, identity.Dependency{
		DBConn:     a.dbConn,
		DocDB:      a.docDB,
		CacheConn:  a.cacheConn,
		Router:     a.router,
		Messaging:  a.messaging,
		Locker:     a.locker,
		Config:     a.config,
		Instrument: a.ins,
		UID:        a.uid,
		HMAC:       a.hmac,
		OTP:        a.otp,
		Clock:      a.clock,
		Validator:  a.validator,
	})
	if err != nil {
		slog.Error("failed to init module identity", "error", err)
		os.Exit(1)
	}

	if a.config.GetBool("modules.scanner.enabled") {
		if err := scanner.New(a.ctx, scanner.Dependency{
			Storage:      a.storage,
			Router:       a.router,
			Config:       a.config,
			Instrument:   a.ins,
			Validator:    a.validator,
			RequireLogin: idm.RequireLogin,
		}); err != nil {
			slog.Error("failed to init module scanner", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.notification.enabled") {
		if err := notification.New(notification.Dependency{
			Ctx:        a.ctx,
			Messaging:  a.messaging,
			Config:     a.config,
			Instrument: a.ins,
			UUID:       a.uuid,
			Goroutine:  a.goroutine,
			Validator:  a.validator,
			Mail:       a.mail,
			Clock:      a.clock,
		}); err != nil {
			slog.Error("failed to init module notification", "error", err)
			os.Exit(1)
		}
	}
}
