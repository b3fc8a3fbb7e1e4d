package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/phishguard/internal/identity/entity"
	"github.com/shandysiswandi/phishguard/internal/pkg/goerror"
	"github.com/shandysiswandi/phishguard/internal/pkg/instrument"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const userColumns = `id, name, email, phone, password, created_at`

type DB struct {
	conn *pgxpool.Pool
	ins  instrument.Instrumentation
}

func NewDB(conn *pgxpool.Pool, ins instrument.Instrumentation) *DB {
	return &DB{conn: conn, ins: ins}
}

// - 23505 unique violation → goerror.ErrConflict
// - no rows → goerror.ErrNotFound
func (s *DB) mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return goerror.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return goerror.ErrConflict
	}

	return err
}

func (s *DB) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("identity.outbound.db").Start(ctx, name)
}

func (s *DB) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) && !errors.Is(err, goerror.ErrConflict) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Password, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *DB) FindByEmail(ctx context.Context, email string) (user *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "FindByEmail")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM identity_users WHERE email = $1`, email)
	user, err = scanUser(row)
	err = s.mapError(err)
	return user, err
}

// FindByCredentials matches email and password exactly.
func (s *DB) FindByCredentials(ctx context.Context, email, password string) (user *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "FindByCredentials")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx,
		`SELECT `+userColumns+` FROM identity_users WHERE email = $1 AND password = $2`,
		email, password)
	user, err = scanUser(row)
	err = s.mapError(err)
	return user, err
}

func (s *DB) Insert(ctx context.Context, user entity.User) (err error) {
	ctx, span := s.startSpan(ctx, "Insert")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx,
		`INSERT INTO identity_users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Name, user.Email, user.Phone, user.Password, user.CreatedAt)
	err = s.mapError(err)
	return err
}
