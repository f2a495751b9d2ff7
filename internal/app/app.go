package app

import (
	"context"
	"net/http"

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
	"github.com/redis/go-redis/v9"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	bcrypt    hash.Hash
	uid       uid.NumberID
	uuid      uid.StringID
	otp       otp.Generator
	jwt       jwt.JWT

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	limiter   ratelimit.Limiter
	mail      mail.Mail
	casbin    *casbin.Enforcer

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initDatabase()
	app.initCache()
	app.initMail()
	app.initCasbin()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
