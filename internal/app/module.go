package app

import (
	"log/slog"
	"os"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/easylogin"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/membership"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/notification"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.easylogin.enabled") {
		if err := easylogin.New(easylogin.Dependency{
			DBConn:      a.dbConn,
			Goroutine:   a.goroutine,
			Router:      a.router,
			Config:      a.config,
			Instrument:  a.ins,
			RateLimiter: a.rateLimiter,
			Codes:       a.codes,
			SMS:         a.smsSender,
			UID:         a.uid,
			OID:         a.oid,
			HMAC:        a.hmac,
			Bcrypt:      a.bcrypt,
			Clock:       a.clock,
			Validator:   a.validator,
		}); err != nil {
			slog.Error("failed to init module easylogin", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.membership.enabled") {
		if err := membership.New(membership.Dependency{
			DBConn:      a.dbConn,
			Goroutine:   a.goroutine,
			Enforcer:    a.casbin,
			Router:      a.router,
			Idempotency: a.idemp,
			Messaging:   a.messaging,
			Storage:     a.storage,
			Config:      a.config,
			Instrument:  a.ins,
			UID:         a.uid,
			UUID:        a.uuid,
			OID:         a.oid,
			HMAC:        a.hmac,
			Bcrypt:      a.bcrypt,
			Clock:       a.clock,
			Validator:   a.validator,
			JWT:         a.jwt,
		}); err != nil {
			slog.Error("failed to init module membership", "error", err)
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
			Clock:      a.clock,
			Goroutine:  a.goroutine,
			Validator:  a.validator,
			Router:     a.router,
			Mail:       a.mail,
			JWT:        a.jwt,
		}); err != nil {
			slog.Error("failed to init module notification", "error", err)
			os.Exit(1)
		}
	}
}
