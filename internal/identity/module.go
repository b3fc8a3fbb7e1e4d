package identity

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/phishguard/internal/identity/entity"
	"github.com/shandysiswandi/phishguard/internal/identity/inbound"
	"github.com/shandysiswandi/phishguard/internal/identity/outbound/cache"
	"github.com/shandysiswandi/phishguard/internal/identity/outbound/db"
	"github.com/shandysiswandi/phishguard/internal/identity/outbound/docdb"
	"github.com/shandysiswandi/phishguard/internal/identity/outbound/mq"
	"github.com/shandysiswandi/phishguard/internal/identity/usecase"
	"github.com/shandysiswandi/phishguard/internal/pkg/clock"
	"github.com/shandysiswandi/phishguard/internal/pkg/config"
	"github.com/shandysiswandi/phishguard/internal/pkg/hash"
	"github.com/shandysiswandi/phishguard/internal/pkg/instrument"
	"github.com/shandysiswandi/phishguard/internal/pkg/lock"
	"github.com/shandysiswandi/phishguard/internal/pkg/messaging"
	"github.com/shandysiswandi/phishguard/internal/pkg/otp"
	"github.com/shandysiswandi/phishguard/internal/pkg/router"
	"github.com/shandysiswandi/phishguard/internal/pkg/uid"
	"github.com/shandysiswandi/phishguard/internal/pkg/validator"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNoUserDirectory = errors.New("identity: either a postgres pool or a mongo database is required")

// Dependency wires the identity module. Exactly one of DBConn and DocDB
// backs the user directory; DocDB wins when both are set.
type Dependency struct {
	DBConn     *pgxpool.Pool
	DocDB      *mongo.Database
	CacheConn  redis.UniversalClient      `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Messaging  messaging.Messaging        `validate:"required"`
	Locker     lock.Locker                `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	HMAC       hash.Hash                  `validate:"required"`
	OTP        otp.Generator              `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

// Module is what other modules may use from identity.
type Module struct {
	// RequireLogin rejects requests from sessions that are not logged in.
	RequireLogin router.Middleware
}

func New(ctx context.Context, dep Dependency) (*Module, error) {
	if err := dep.Validator.Validate(dep); err != nil {
		return nil, err
	}

	repoUser, err := newRepoUser(ctx, dep)
	if err != nil {
		return nil, err
	}

	uc := usecase.New(usecase.Dependency{
		RepoSession:   cache.NewCache(dep.CacheConn, dep.Config.GetSecond("modules.identity.session_ttl_seconds"), dep.Instrument),
		RepoUser:      repoUser,
		RepoMessaging: mq.NewMessaging(dep.Messaging, dep.Instrument),
		Locker:        dep.Locker,
		Validator:     dep.Validator,
		Config:        dep.Config,
		HMAC:          dep.HMAC,
		OTP:           dep.OTP,
		UID:           dep.UID,
		Clock:         dep.Clock,
		Instrument:    dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return &Module{RequireLogin: inbound.RequireLogin(uc)}, nil
}

type repoUser interface {
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByCredentials(ctx context.Context, email, password string) (*entity.User, error)
	Insert(ctx context.Context, user entity.User) error
}

func newRepoUser(ctx context.Context, dep Dependency) (repoUser, error) {
	switch {
	case dep.DocDB != nil:
		repo := docdb.NewDocDB(dep.DocDB, dep.Instrument)
		if err := repo.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
		return repo, nil
	case dep.DBConn != nil:
		if dep.Config.GetBool("database.auto_migrate") {
			if err := db.Migrate(ctx, dep.DBConn); err != nil {
				return nil, err
			}
		}
		return db.NewDB(dep.DBConn, dep.Instrument), nil
	default:
		return nil, ErrNoUserDirectory
	}
}
