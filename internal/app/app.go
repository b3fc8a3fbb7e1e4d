package app

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/phishguard/internal/pkg/clock"
	"github.com/shandysiswandi/phishguard/internal/pkg/config"
	"github.com/shandysiswandi/phishguard/internal/pkg/goroutine"
	"github.com/shandysiswandi/phishguard/internal/pkg/hash"
	"github.com/shandysiswandi/phishguard/internal/pkg/instrument"
	"github.com/shandysiswandi/phishguard/internal/pkg/jwt"
	"github.com/shandysiswandi/phishguard/internal/pkg/lock"
	"github.com/shandysiswandi/phishguard/internal/pkg/mail"
	"github.com/shandysiswandi/phishguard/internal/pkg/messaging"
	"github.com/shandysiswandi/phishguard/internal/pkg/otp"
	"github.com/shandysiswandi/phishguard/internal/pkg/router"
	"github.com/shandysiswandi/phishguard/internal/pkg/storage"
	"github.com/shandysiswandi/phishguard/internal/pkg/uid"
	"github.com/shandysiswandi/phishguard/internal/pkg/validator"
	"go.mongodb.org/mongo-driver/mongo"
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
	uid       uid.NumberID
	uuid      uid.StringID
	otp       otp.Generator
	jwt       jwt.JWT

	// resources
	dbConn    *pgxpool.Pool
	docClient *mongo.Client
	docDB     *mongo.Database
	cacheConn *redis.Client
	locker    lock.Locker
	mail      mail.Mail
	messaging messaging.Messaging
	storage   storage.Storage

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
	app.initStorage()
	app.initMessaging()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
