package goerror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "server", err: NewServer(errors.New("db down")), want: http.StatusInternalServerError},
		{name: "conflict", err: NewBusiness("Email already exists", CodeConflict), want: http.StatusConflict},
		{name: "expired", err: NewBusiness("OTP expired. Please resend.", CodeExpired), want: http.StatusGone},
		{name: "too many", err: NewBusiness("limit", CodeTooManyRequest), want: http.StatusTooManyRequests},
		{name: "unauthorized", err: NewBusiness("Invalid OTP.", CodeUnauthorized), want: http.StatusUnauthorized},
		{name: "unavailable", err: NewBusiness("down", CodeUnavailable), want: http.StatusServiceUnavailable},
		{name: "invalid input", err: NewInvalidInput(errors.New("bad")), want: http.StatusUnprocessableEntity},
		{name: "invalid format", err: NewInvalidFormat(), want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gerr *Error
			require.ErrorAs(t, tt.err, &gerr)
			assert.Equal(t, tt.want, gerr.StatusCode())
		})
	}
}

func TestNewServer_KeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewServer(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "connection refused", err.Error())

	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, "Internal server error", gerr.Msg())
	assert.Equal(t, TypeServer, gerr.Type())
}

func TestNewInvalidInput_Fields(t *testing.T) {
	err := NewInvalidInput(nil, "otp", "otp is required", "email", "email is invalid")

	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, CodeInvalidInput, gerr.Code())
	assert.Equal(t, map[string]string{"otp": "otp is required", "email": "email is invalid"}, gerr.Fields())

	err = NewInvalidInput(nil, "dangling")
	assert.True(t, HasCode(err, CodeInvalidFormat))
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewBusiness("Invalid credentials", CodeUnauthorized))

	assert.True(t, HasCode(err, CodeUnauthorized))
	assert.False(t, HasCode(err, CodeConflict))
	assert.False(t, HasCode(errors.New("plain"), CodeInternal))
}

func TestCodeString(t *testing.T) {
	assert.Equal(t, "ERROR_CODE_EXPIRED", CodeExpired.String())
	assert.Equal(t, "ERROR_CODE_INTERNAL", Code(99).String())
	assert.Equal(t, "ERROR_TYPE_UNKNOWN", Type(9).String())
}
