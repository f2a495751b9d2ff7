package account

import (
	"github.com/apotekly/api/internal/account/inbound"
	"github.com/apotekly/api/internal/account/outbound/db"
	"github.com/apotekly/api/internal/account/outbound/mailer"
	"github.com/apotekly/api/internal/account/usecase"
	"github.com/apotekly/api/internal/pkg/clock"
	"github.com/apotekly/api/internal/pkg/config"
	"github.com/apotekly/api/internal/pkg/goroutine"
	"github.com/apotekly/api/internal/pkg/hash"
	"github.com/apotekly/api/internal/pkg/instrument"
	"github.com/apotekly/api/internal/pkg/jwt"
	"github.com/apotekly/api/internal/pkg/mail"
	"github.com/apotekly/api/internal/pkg/otp"
	"github.com/apotekly/api/internal/pkg/ratelimit"
	"github.com/apotekly/api/internal/pkg/router"
	"github.com/apotekly/api/internal/pkg/uid"
	"github.com/apotekly/api/internal/pkg/validator"
	"github.com/casbin/casbin/v3"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	Goroutine  *goroutine.Manager         `validate:"required"`
	Enforcer   *casbin.Enforcer           `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Limiter    ratelimit.Limiter          `validate:"required"`
	Mail       mail.Mail                  `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	Bcrypt     hash.Hash                  `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	OTP        otp.Generator              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
	JWT        jwt.JWT                    `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	repoDB := db.NewDB(dep.DBConn, dep.Instrument)
	repoMailer := mailer.New(dep.Mail, dep.Instrument, dep.Config.GetString("mail.sender"))

	uc := usecase.New(usecase.Dependency{
		RepoDB:     repoDB,
		RepoMailer: repoMailer,
		Validator:  dep.Validator,
		Config:     dep.Config,
		Bcrypt:     dep.Bcrypt,
		UID:        dep.UID,
		OTP:        dep.OTP,
		Clock:      dep.Clock,
		JWT:        dep.JWT,
		Instrument: dep.Instrument,
		Enforcer:   dep.Enforcer,
		Goroutine:  dep.Goroutine,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc, dep.Limiter)

	return nil
}
