package app

import (
	"log/slog"
	"os"

	"github.com/rahmatsubandi/veriauth/internal/auth"
	"github.com/rahmatsubandi/veriauth/internal/notification"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.auth.enabled") {
		if err := auth.New(auth.Dependency{
			Config:        a.config,
			Instrument:    a.ins,
			UID:           a.uid,
			OID:           a.oid,
			HMAC:          a.hmac,
			Bcrypt:        a.bcrypt,
			CodeGenerator: a.codegen,
			Clock:         a.clock,
			Validator:     a.validator,
			Router:        a.router,
			DBConn:        a.dbConn,
			CacheConn:     a.cacheConn,
			Idempotency:   a.idemp,
			Messaging:     a.messaging,
			JWT:           a.jwt,
		}); err != nil {
			slog.Error("failed to init module auth", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.notification.enabled") {
		if err := notification.New(notification.Dependency{
			Ctx:        a.ctx,
			DBConn:     a.dbConn,
			Messaging:  a.messaging,
			Config:     a.config,
			Instrument: a.ins,
			UID:        a.uid,
			UUID:       a.uuid,
			Goroutine:  a.goroutine,
			Validator:  a.validator,
			Router:     a.router,
			Mail:       a.mail,
			SMS:        a.sms,
		}); err != nil {
			slog.Error("failed to init module notification", "error", err)
			os.Exit(1)
		}
	}
}
