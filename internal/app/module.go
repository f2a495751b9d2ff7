package app

import (
	"log/slog"
	"os"

	"github.com/apotekly/api/internal/account"
)

func (a *App) initModules() {
	if err := account.New(account.Dependency{
		DBConn:     a.dbConn,
		Goroutine:  a.goroutine,
		Enforcer:   a.casbin,
		Router:     a.router,
		Limiter:    a.limiter,
		Mail:       a.mail,
		Config:     a.config,
		Instrument: a.ins,
		UID:        a.uid,
		Bcrypt:     a.bcrypt,
		Clock:      a.clock,
		OTP:        a.otp,
		Validator:  a.validator,
		JWT:        a.jwt,
	}); err != nil {
		slog.Error("failed to init module account", "error", err)
		os.Exit(1)
	}
}
