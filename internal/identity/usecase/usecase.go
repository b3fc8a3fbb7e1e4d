package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shandysiswandi/phishguard/internal/identity/entity"
	"github.com/shandysiswandi/phishguard/internal/pkg/clock"
	"github.com/shandysiswandi/phishguard/internal/pkg/config"
	"github.com/shandysiswandi/phishguard/internal/pkg/goerror"
	"github.com/shandysiswandi/phishguard/internal/pkg/hash"
	"github.com/shandysiswandi/phishguard/internal/pkg/instrument"
	"github.com/shandysiswandi/phishguard/internal/pkg/lock"
	"github.com/shandysiswandi/phishguard/internal/pkg/otp"
	"github.com/shandysiswandi/phishguard/internal/pkg/uid"
	"github.com/shandysiswandi/phishguard/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultOTPTTL     = 45 * time.Second
	defaultMaxResends = 3
)

type OTPIssuedEvent struct {
	Name     string
	Email    string
	Phone    string
	Code     string
	IssuedAt time.Time
}

type repoMessaging interface {
	PublishOTPIssued(ctx context.Context, msg OTPIssuedEvent) error
}

// repoSession returns goerror.ErrNotFound from Get when the session has no
// stored state.
type repoSession interface {
	Get(ctx context.Context, id string) (*entity.Session, error)
	Save(ctx context.Context, sess *entity.Session) error
	Delete(ctx context.Context, id string) error
}

type repoUser interface {
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByCredentials(ctx context.Context, email, password string) (*entity.User, error)
	Insert(ctx context.Context, user entity.User) error
}

type Usecase struct {
	repoSession   repoSession
	repoUser      repoUser
	repoMessaging repoMessaging
	locker        lock.Locker
	validator     validator.Validator
	hmac          hash.Hash
	otp           otp.Generator
	uid           uid.NumberID
	clock         clock.Clocker
	ins           instrument.Instrumentation

	otpTTL     time.Duration
	maxResends int
}

type Dependency struct {
	RepoSession   repoSession
	RepoUser      repoUser
	RepoMessaging repoMessaging
	Locker        lock.Locker
	Validator     validator.Validator
	Config        config.Config
	HMAC          hash.Hash
	OTP           otp.Generator
	UID           uid.NumberID
	Clock         clock.Clocker
	Instrument    instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	ttl := dep.Config.GetSecond("modules.identity.otp.ttl_seconds")
	if ttl <= 0 {
		ttl = defaultOTPTTL
	}

	maxResends := dep.Config.GetInt("modules.identity.otp.max_resends")
	if maxResends <= 0 {
		maxResends = defaultMaxResends
	}

	return &Usecase{
		repoSession:   dep.RepoSession,
		repoUser:      dep.RepoUser,
		repoMessaging: dep.RepoMessaging,
		locker:        dep.Locker,
		validator:     dep.Validator,
		hmac:          dep.HMAC,
		otp:           dep.OTP,
		uid:           dep.UID,
		clock:         dep.Clock,
		ins:           dep.Instrument,
		otpTTL:        ttl,
		maxResends:    maxResends,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("identity.usecase").Start(ctx, name)
}

// lockSession serializes every mutation of one session across replicas.
func (s *Usecase) lockSession(ctx context.Context, sessionID string) (func(), error) {
	unlock, err := s.locker.Lock(ctx, "session:"+sessionID)
	if errors.Is(err, lock.ErrNotAcquired) {
		slog.WarnContext(ctx, "session is locked by another request", "session_id", sessionID)
		return nil, goerror.NewBusiness("Another request for this session is in progress", goerror.CodeConflict)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to lock session", "session_id", sessionID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return func() {
		if err := unlock(context.WithoutCancel(ctx)); err != nil {
			slog.WarnContext(ctx, "failed to unlock session", "session_id", sessionID, "error", err)
		}
	}, nil
}

// loadSession returns the stored session or a fresh one when nothing is
// stored yet.
func (s *Usecase) loadSession(ctx context.Context, sessionID string) (*entity.Session, error) {
	sess, err := s.repoSession.Get(ctx, sessionID)
	if errors.Is(err, goerror.ErrNotFound) {
		return &entity.Session{ID: sessionID}, nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get session", "session_id", sessionID, "error", err)
		return nil, goerror.NewServer(err)
	}

	sess.ID = sessionID
	return sess, nil
}

func (s *Usecase) saveSession(ctx context.Context, sess *entity.Session) error {
	if err := s.repoSession.Save(ctx, sess); err != nil {
		slog.ErrorContext(ctx, "failed to repo save session", "session_id", sess.ID, "error", err)
		return goerror.NewServer(err)
	}
	return nil
}

// issueChallenge replaces the session challenge with a fresh code and
// returns the plaintext for the notifier.
func (s *Usecase) issueChallenge(ctx context.Context, sess *entity.Session) (string, error) {
	code, err := s.otp.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp", "session_id", sess.ID, "error", err)
		return "", goerror.NewServer(err)
	}

	codeHash, err := s.hmac.Hash(code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash otp", "session_id", sess.ID, "error", err)
		return "", goerror.NewServer(err)
	}

	sess.Challenge = &entity.Challenge{
		CodeHash: string(codeHash),
		IssuedAt: s.clock.Now(),
	}

	return code, nil
}

// notify hands the code to the notifier. It runs only after the session
// holding the challenge was committed, and never fails the request.
func (s *Usecase) notify(ctx context.Context, sess *entity.Session, code string) entity.Delivery {
	err := s.repoMessaging.PublishOTPIssued(ctx, OTPIssuedEvent{
		Name:     sess.Signup.Name,
		Email:    sess.Signup.Email,
		Phone:    sess.Signup.Phone,
		Code:     code,
		IssuedAt: sess.Challenge.IssuedAt,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to publish otp issued", "session_id", sess.ID, "email", sess.Signup.Email, "error", err)
		return entity.DeliveryFailed
	}

	return entity.DeliveryAccepted
}

// expiresIn is the whole number of seconds the challenge stays valid.
func (s *Usecase) expiresIn(c *entity.Challenge) int {
	if c == nil {
		return 0
	}

	left := s.otpTTL - s.clock.Now().Sub(c.IssuedAt)
	if left <= 0 {
		return 0
	}

	return int((left + time.Second - 1) / time.Second)
}
