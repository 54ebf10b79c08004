package app

import (
	"context"
	"net/http"

	"github.com/casbin/casbin/v3"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/clock"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/config"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/goroutine"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/hash"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/idempotency"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/instrument"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/jwt"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/mail"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/messaging"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/otpcode"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/pgxcasbin"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/ratelimit"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/router"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/sms"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/storage"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/uid"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/validator"
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
	hmac      hash.Hash
	bcrypt    hash.Hash
	uid       uid.NumberID
	oid       uid.StringID
	uuid      uid.StringID
	codes     otpcode.Generator
	jwt       jwt.JWT

	// resources
	dbConn        *pgxpool.Pool
	cacheConn     *redis.Client
	idemp         idempotency.Idempotency
	rateLimiter   ratelimit.Limiter
	smsSender     sms.SMS
	mail          mail.Mail
	messaging     messaging.Messaging
	storage       storage.Storage
	casbin        *casbin.Enforcer
	casbinWatcher *pgxcasbin.Watcher

	// server
	router     *router.Router
	httpServer *http.Server
	sseServer  *http.Server

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
	app.initRateLimiter()
	app.initSMS()
	app.initMail()
	app.initStorage()
	app.initMessaging()
	app.initCasbin()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
