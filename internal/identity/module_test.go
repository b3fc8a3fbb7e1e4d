package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/shandysiswandi/phishguard/internal/pkg/clock"
	"github.com/shandysiswandi/phishguard/internal/pkg/config"
	"github.com/shandysiswandi/phishguard/internal/pkg/hash"
	"github.com/shandysiswandi/phishguard/internal/pkg/instrument"
	"github.com/shandysiswandi/phishguard/internal/pkg/jwt"
	"github.com/shandysiswandi/phishguard/internal/pkg/lock"
	"github.com/shandysiswandi/phishguard/internal/pkg/messaging"
	"github.com/shandysiswandi/phishguard/internal/pkg/router"
	"github.com/shandysiswandi/phishguard/internal/pkg/uid"
	"github.com/shandysiswandi/phishguard/internal/pkg/validator"
	"github.com/shandysiswandi/phishguard/internal/shared/event"
)

type capturedBroker struct {
	mu   sync.Mutex
	msgs []event.OTPIssuedMessage
}

func (*capturedBroker) Close() error { return nil }

func (c *capturedBroker) Publish(_ context.Context, topic string, msg messaging.OutgoingMessage) error {
	if topic != event.OTPIssuedDestination {
		return nil
	}

	var m event.OTPIssuedMessage
	if err := json.Unmarshal(msg.Body, &m); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = append(c.msgs, m)
	return nil
}

func (*capturedBroker) Consume(context.Context, string, messaging.Handler, ...messaging.ConsumeOption) error {
	return nil
}

func (c *capturedBroker) lastOTP(t *testing.T) string {
	t.Helper()

	c.mu.Lock()
	defer c.mu.Unlock()
	require.NotEmpty(t, c.msgs)
	return c.msgs[len(c.msgs)-1].OTP
}

func (c *capturedBroker) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.msgs)
}

type scriptedOTP struct {
	mu    sync.Mutex
	codes []string
}

func (s *scriptedOTP) Generate() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	code := s.codes[0]
	s.codes = s.codes[1:]
	return code, nil
}

func startInfra(t *testing.T) (*pgxpool.Pool, *redis.Client) {
	t.Helper()
	if testing.Short() {
		t.Skip("requires docker")
	}

	ctx := context.Background()

	pg, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("phishguard"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(context.Background()) })

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	rc, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = rc.Terminate(context.Background()) })

	uri, err := rc.ConnectionString(ctx)
	require.NoError(t, err)
	opts, err := redis.ParseURL(uri)
	require.NoError(t, err)
	client := redis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })

	return pool, client
}

type client struct {
	t    *testing.T
	http *http.Client
	base string
}

func (c *client) do(method, path, body string) (int, string, json.RawMessage) {
	c.t.Helper()

	req, err := http.NewRequest(method, c.base+path, strings.NewReader(body))
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return resp.StatusCode, "", nil
	}

	var env struct {
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(c.t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env.Message, env.Data
}

func TestModule_SignupToLogin(t *testing.T) {
	pool, rdb := startInfra(t)
	ctx := context.Background()

	cfg, err := config.NewViperFromBytes("yaml", []byte(`
database:
  auto_migrate: true
modules:
  identity:
    session_ttl_seconds: 600
    otp:
      ttl_seconds: 45
      max_resends: 3
`))
	require.NoError(t, err)

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	codec, err := jwt.NewHS512(jwt.Config{
		Secret:    []byte(strings.Repeat("x", 64)),
		Issuer:    "phishguard",
		Audiences: []string{"web"},
		TTL:       time.Hour,
		Clock:     clock.New(),
		UUID:      uid.NewUUID(),
	})
	require.NoError(t, err)

	r := router.NewRouter(router.Config{
		Config:     cfg,
		UUID:       uid.NewUUID(),
		Session:    codec,
		Instrument: instrument.NewNoop(),
		Cookie:     router.CookieConfig{TTL: time.Hour},
	})

	snow, err := uid.NewSnowflake(1)
	require.NoError(t, err)

	broker := &capturedBroker{}
	mod, err := New(ctx, Dependency{
		DBConn:     pool,
		CacheConn:  rdb,
		Router:     r,
		Messaging:  broker,
		Locker:     lock.NewRedis(rdb, uid.NewUUID(), lock.Config{}),
		Config:     cfg,
		Instrument: instrument.NewNoop(),
		UID:        snow,
		HMAC:       hash.NewHMACSHA256("test-secret"),
		OTP:        &scriptedOTP{codes: []string{"123456", "654321"}},
		Clock:      clock.New(),
		Validator:  v,
	})
	require.NoError(t, err)
	require.NotNil(t, mod.RequireLogin)

	srv := httptest.NewServer(r)
	defer srv.Close()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	c := &client{t: t, http: &http.Client{Jar: jar, Timeout: 5 * time.Second}, base: srv.URL}

	status, _, _ := c.do(http.MethodGet, "/api/v1/identity/me", "")
	require.Equal(t, http.StatusUnauthorized, status)

	status, _, _ = c.do(http.MethodPost, "/api/v1/identity/signup",
		`{"name":"Ayesha","email":"ayesha@example.com","phone":"3001234567","password":"secret"}`)
	require.Equal(t, http.StatusOK, status)

	status, msg, _ := c.do(http.MethodGet, "/api/v1/identity/signup/otp", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "OTP sent", msg)
	assert.Equal(t, "123456", broker.lastOTP(t))

	// A second visit must not issue another code.
	status, _, _ = c.do(http.MethodGet, "/api/v1/identity/signup/otp", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, broker.count())

	status, msg, _ = c.do(http.MethodPost, "/api/v1/identity/signup/otp/verify", `{"otp":"000000"}`)
	require.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid OTP.", msg)

	status, msg, data := c.do(http.MethodPost, "/api/v1/identity/signup/otp/resend", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "New OTP sent!", msg)
	assert.Contains(t, string(data), `"resend_count":1`)
	assert.Equal(t, "654321", broker.lastOTP(t))

	status, _, _ = c.do(http.MethodPost, "/api/v1/identity/signup/otp/verify", `{"otp":"123456"}`)
	require.Equal(t, http.StatusUnauthorized, status)

	status, _, data = c.do(http.MethodPost, "/api/v1/identity/signup/otp/verify", `{"otp":"654321"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(data), `"state":"verified"`)

	status, _, data = c.do(http.MethodPost, "/api/v1/identity/signup/otp/verify", `{"otp":"654321"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(data), `"state":"no_signup"`)

	status, msg, _ = c.do(http.MethodPost, "/api/v1/identity/signup",
		`{"name":"Ayesha","email":"ayesha@example.com","phone":"3001234567","password":"secret"}`)
	require.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "Email already exists", msg)

	status, _, _ = c.do(http.MethodPost, "/api/v1/identity/login", `{"email":"ayesha@example.com","password":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, status)

	status, _, _ = c.do(http.MethodPost, "/api/v1/identity/login", `{"email":"ayesha@example.com","password":"secret"}`)
	require.Equal(t, http.StatusOK, status)

	status, _, data = c.do(http.MethodGet, "/api/v1/identity/me", "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(data), "ayesha@example.com")

	status, _, _ = c.do(http.MethodPost, "/api/v1/identity/logout", "")
	require.Equal(t, http.StatusNoContent, status)

	status, _, _ = c.do(http.MethodGet, "/api/v1/identity/me", "")
	assert.Equal(t, http.StatusUnauthorized, status)
}
