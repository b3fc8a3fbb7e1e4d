// Package docdb keeps the user directory in a MongoDB collection.
package docdb

import (
	"context"
	"errors"
	"time"

	"github.com/shandysiswandi/phishguard/internal/identity/entity"
	"github.com/shandysiswandi/phishguard/internal/pkg/goerror"
	"github.com/shandysiswandi/phishguard/internal/pkg/instrument"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const collectionUsers = "users"

type userDocument struct {
	ObjectID  primitive.ObjectID `bson:"_id,omitempty"`
	UserID    int64              `bson:"user_id"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Phone     string             `bson:"phone"`
	Password  string             `bson:"password"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d userDocument) toEntity() *entity.User {
	return &entity.User{
		ID:        d.UserID,
		Name:      d.Name,
		Email:     d.Email,
		Phone:     d.Phone,
		Password:  d.Password,
		CreatedAt: d.CreatedAt,
	}
}

type DocDB struct {
	users *mongo.Collection
	ins   instrument.Instrumentation
}

func NewDocDB(db *mongo.Database, ins instrument.Instrumentation) *DocDB {
	return &DocDB{users: db.Collection(collectionUsers), ins: ins}
}

// EnsureIndexes creates the unique email index. It is idempotent.
func (s *DocDB) EnsureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("users_email_key"),
	})
	return err
}

func (s *DocDB) mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return goerror.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return goerror.ErrConflict
	}
	return err
}

func (s *DocDB) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("identity.outbound.docdb").Start(ctx, name)
}

func (s *DocDB) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) && !errors.Is(err, goerror.ErrConflict) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (s *DocDB) findOne(ctx context.Context, filter bson.D) (*entity.User, error) {
	var doc userDocument
	if err := s.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, s.mapError(err)
	}
	return doc.toEntity(), nil
}

func (s *DocDB) FindByEmail(ctx context.Context, email string) (user *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "FindByEmail")
	defer func() { s.endSpan(span, err) }()

	user, err = s.findOne(ctx, bson.D{{Key: "email", Value: email}})
	return user, err
}

func (s *DocDB) FindByCredentials(ctx context.Context, email, password string) (user *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "FindByCredentials")
	defer func() { s.endSpan(span, err) }()

	user, err = s.findOne(ctx, bson.D{{Key: "email", Value: email}, {Key: "password", Value: password}})
	return user, err
}

func (s *DocDB) Insert(ctx context.Context, user entity.User) (err error) {
	ctx, span := s.startSpan(ctx, "Insert")
	defer func() { s.endSpan(span, err) }()

	_, err = s.users.InsertOne(ctx, userDocument{
		UserID:    user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Phone:     user.Phone,
		Password:  user.Password,
		CreatedAt: user.CreatedAt.UTC(),
	})
	err = s.mapError(err)
	return err
}
