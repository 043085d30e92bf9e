package app

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rahmatsubandi/veriauth/internal/pkg/clock"
	"github.com/rahmatsubandi/veriauth/internal/pkg/config"
	"github.com/rahmatsubandi/veriauth/internal/pkg/goroutine"
	"github.com/rahmatsubandi/veriauth/internal/pkg/hash"
	"github.com/rahmatsubandi/veriauth/internal/pkg/idempotency"
	"github.com/rahmatsubandi/veriauth/internal/pkg/instrument"
	"github.com/rahmatsubandi/veriauth/internal/pkg/jwt"
	"github.com/rahmatsubandi/veriauth/internal/pkg/mail"
	"github.com/rahmatsubandi/veriauth/internal/pkg/messaging"
	"github.com/rahmatsubandi/veriauth/internal/pkg/otp"
	"github.com/rahmatsubandi/veriauth/internal/pkg/router"
	"github.com/rahmatsubandi/veriauth/internal/pkg/sms"
	"github.com/rahmatsubandi/veriauth/internal/pkg/uid"
	"github.com/rahmatsubandi/veriauth/internal/pkg/validator"
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
	hmac      hash.Hash
	bcrypt    hash.Hash
	uid       uid.NumberID
	oid       uid.StringID
	uuid      uid.StringID
	codegen   otp.Generator
	jwt       jwt.JWT

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	idemp     idempotency.Idempotency
	mail      mail.Mail
	sms       sms.SMS
	messaging messaging.Messaging

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
	app.initSMS()
	app.initMessaging()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
