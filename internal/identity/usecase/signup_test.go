package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shandysiswandi/phishguard/internal/identity/entity"
	"github.com/shandysiswandi/phishguard/internal/pkg/goerror"
)

func TestUsecase_Signup(t *testing.T) {
	ctx := context.Background()

	validInput := func() SignupInput {
		return SignupInput{
			SessionID: "s1",
			Name:      " Ayesha ",
			Email:     "ayesha@example.com",
			Phone:     "+923001234567",
			Password:  "secret",
		}
	}

	t.Run("StagesPendingSignup", func(t *testing.T) {
		f := newFixture(t)
		f.users.On("FindByEmail", mock.Anything, "ayesha@example.com").Return(nil, goerror.ErrNotFound)

		require.NoError(t, f.uc.Signup(ctx, validInput()))

		sess, ok := f.sessions.peek("s1")
		require.True(t, ok)
		assert.Equal(t, &entity.PendingSignup{
			Name:     "Ayesha",
			Email:    "ayesha@example.com",
			Phone:    "+923001234567",
			Password: "secret",
		}, sess.Signup)
		assert.Nil(t, sess.Challenge)
		assert.Zero(t, sess.ResendCount)
	})

	t.Run("ResetsOTPStateButKeepsLogin", func(t *testing.T) {
		f := newFixture(t)
		f.users.On("FindByEmail", mock.Anything, "ayesha@example.com").Return(nil, goerror.ErrNotFound)
		require.NoError(t, f.sessions.Save(ctx, &entity.Session{
			ID:          "s1",
			Signup:      &entity.PendingSignup{Email: "old@example.com"},
			Challenge:   &entity.Challenge{CodeHash: "x", IssuedAt: f.now},
			ResendCount: 2,
			UserEmail:   "someone@example.com",
		}))

		require.NoError(t, f.uc.Signup(ctx, validInput()))

		sess, _ := f.sessions.peek("s1")
		assert.Equal(t, "ayesha@example.com", sess.Signup.Email)
		assert.Nil(t, sess.Challenge)
		assert.Zero(t, sess.ResendCount)
		assert.Equal(t, "someone@example.com", sess.UserEmail)
	})

	t.Run("DuplicateEmailLeavesSessionAlone", func(t *testing.T) {
		f := newFixture(t)
		f.users.On("FindByEmail", mock.Anything, "ayesha@example.com").Return(&entity.User{Email: "ayesha@example.com"}, nil)

		err := f.uc.Signup(ctx, validInput())

		require.True(t, goerror.HasCode(err, goerror.CodeConflict))
		assert.EqualError(t, err, "Email already exists")
		assert.Zero(t, f.sessions.saves)
	})

	t.Run("InvalidInput", func(t *testing.T) {
		f := newFixture(t)
		in := validInput()
		in.Email = "not-an-email"
		in.Phone = "12ab"

		err := f.uc.Signup(ctx, in)

		require.True(t, goerror.HasCode(err, goerror.CodeInvalidInput))
		f.users.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	})

	t.Run("DirectoryFailure", func(t *testing.T) {
		f := newFixture(t)
		f.users.On("FindByEmail", mock.Anything, "ayesha@example.com").Return(nil, assert.AnError)

		err := f.uc.Signup(ctx, validInput())

		require.True(t, goerror.HasCode(err, goerror.CodeInternal))
		assert.Zero(t, f.sessions.saves)
	})
}
