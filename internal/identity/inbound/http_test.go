package inbound

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shandysiswandi/phishguard/internal/identity/entity"
	"github.com/shandysiswandi/phishguard/internal/identity/usecase"
	"github.com/shandysiswandi/phishguard/internal/pkg/clock"
	"github.com/shandysiswandi/phishguard/internal/pkg/config"
	"github.com/shandysiswandi/phishguard/internal/pkg/goerror"
	"github.com/shandysiswandi/phishguard/internal/pkg/instrument"
	"github.com/shandysiswandi/phishguard/internal/pkg/jwt"
	"github.com/shandysiswandi/phishguard/internal/pkg/router"
	"github.com/shandysiswandi/phishguard/internal/pkg/uid"
)

type mockUC struct{ mock.Mock }

func (m *mockUC) CurrentUser(ctx context.Context, in usecase.CurrentUserInput) (*usecase.CurrentUserOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*usecase.CurrentUserOutput)
	return out, args.Error(1)
}

func (m *mockUC) Signup(ctx context.Context, in usecase.SignupInput) error {
	return m.Called(ctx, in).Error(0)
}

func (m *mockUC) EnterVerification(ctx context.Context, in usecase.VerificationInput) (*usecase.VerificationOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*usecase.VerificationOutput)
	return out, args.Error(1)
}

func (m *mockUC) VerifyOTP(ctx context.Context, in usecase.VerifyOTPInput) (*usecase.VerificationOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*usecase.VerificationOutput)
	return out, args.Error(1)
}

func (m *mockUC) ResendOTP(ctx context.Context, in usecase.VerificationInput) (*usecase.VerificationOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*usecase.VerificationOutput)
	return out, args.Error(1)
}

func (m *mockUC) Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*usecase.LoginOutput)
	return out, args.Error(1)
}

func (m *mockUC) Logout(ctx context.Context, in usecase.LogoutInput) error {
	return m.Called(ctx, in).Error(0)
}

type envelope struct {
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Error   map[string]string `json:"error"`
}

func newServer(t *testing.T, uc *mockUC) *router.Router {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte("app: {}"))
	require.NoError(t, err)

	codec, err := jwt.NewHS512(jwt.Config{
		Secret:    []byte(strings.Repeat("k", 64)),
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
	RegisterHTTPEndpoint(r, uc)
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string, cookies ...*http.Cookie) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if rec.Code != http.StatusNoContent {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func TestHTTPEndpoint_SignupFlow(t *testing.T) {
	uc := new(mockUC)
	srv := newServer(t, uc)

	var sid string
	uc.On("Signup", mock.Anything, mock.MatchedBy(func(in usecase.SignupInput) bool {
		sid = in.SessionID
		return in.Email == "ayesha@example.com" && in.Phone == "3001234567" && in.SessionID != ""
	})).Return(nil).Once()

	rec, env := do(t, srv, http.MethodPost, "/api/v1/identity/signup",
		`{"name":"Ayesha","email":"ayesha@example.com","phone":"3001234567","password":"secret"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"redirect":"/api/v1/identity/signup/otp"}`, string(env.Data))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	uc.On("EnterVerification", mock.Anything, usecase.VerificationInput{SessionID: sid}).Return(&usecase.VerificationOutput{
		State:            entity.StateChallengeIssued,
		OTPSent:          true,
		MaxResends:       3,
		ExpiresInSeconds: 45,
	}, nil).Once()

	rec, env = do(t, srv, http.MethodGet, "/api/v1/identity/signup/otp", "", cookies...)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OTP sent", env.Message)
	assert.JSONEq(t, `{"state":"challenge_issued","otp_sent":true,"resend_available":false,"resend_count":0,"max_resends":3,"expires_in_seconds":45}`, string(env.Data))

	uc.On("VerifyOTP", mock.Anything, usecase.VerifyOTPInput{SessionID: sid, Code: "123456"}).
		Return(&usecase.VerificationOutput{State: entity.StateVerified, MaxResends: 3}, nil).Once()

	rec, env = do(t, srv, http.MethodPost, "/api/v1/identity/signup/otp/verify", `{"otp":"123456"}`, cookies...)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Signup verified. Please log in.", env.Message)
	assert.Contains(t, string(env.Data), `"redirect":"/api/v1/identity/login"`)

	uc.AssertExpectations(t)
}

func TestHTTPEndpoint_Errors(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		setup    func(uc *mockUC)
		wantCode int
		wantMsg  string
	}{
		{
			name:   "ExpiredOTP",
			method: http.MethodPost,
			path:   "/api/v1/identity/signup/otp/verify",
			body:   `{"otp":"123456"}`,
			setup: func(uc *mockUC) {
				uc.On("VerifyOTP", mock.Anything, mock.Anything).
					Return(nil, goerror.NewBusiness("OTP expired. Please resend.", goerror.CodeExpired))
			},
			wantCode: http.StatusGone,
			wantMsg:  "OTP expired. Please resend.",
		},
		{
			name:   "InvalidOTP",
			method: http.MethodPost,
			path:   "/api/v1/identity/signup/otp/verify",
			body:   `{"otp":"000000"}`,
			setup: func(uc *mockUC) {
				uc.On("VerifyOTP", mock.Anything, mock.Anything).
					Return(nil, goerror.NewBusiness("Invalid OTP.", goerror.CodeUnauthorized))
			},
			wantCode: http.StatusUnauthorized,
			wantMsg:  "Invalid OTP.",
		},
		{
			name:   "ResendBudget",
			method: http.MethodPost,
			path:   "/api/v1/identity/signup/otp/resend",
			setup: func(uc *mockUC) {
				uc.On("ResendOTP", mock.Anything, mock.Anything).
					Return(nil, goerror.NewBusiness("Maximum resend attempts reached. Try again later.", goerror.CodeTooManyRequest))
			},
			wantCode: http.StatusTooManyRequests,
			wantMsg:  "Maximum resend attempts reached. Try again later.",
		},
		{
			name:   "DuplicateEmail",
			method: http.MethodPost,
			path:   "/api/v1/identity/signup",
			body:   `{"name":"A","email":"a@example.com","phone":"3001234567","password":"x"}`,
			setup: func(uc *mockUC) {
				uc.On("Signup", mock.Anything, mock.Anything).
					Return(goerror.NewBusiness("Email already exists", goerror.CodeConflict))
			},
			wantCode: http.StatusConflict,
			wantMsg:  "Email already exists",
		},
		{
			name:     "UnknownField",
			method:   http.MethodPost,
			path:     "/api/v1/identity/login",
			body:     `{"email":"a@example.com","password":"x","admin":true}`,
			setup:    func(*mockUC) {},
			wantCode: http.StatusBadRequest,
			wantMsg:  "Invalid request body",
		},
		{
			name:   "MeRequiresLogin",
			method: http.MethodGet,
			path:   "/api/v1/identity/me",
			setup: func(uc *mockUC) {
				uc.On("CurrentUser", mock.Anything, mock.Anything).
					Return(nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized))
			},
			wantCode: http.StatusUnauthorized,
			wantMsg:  "Authentication required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockUC)
			tt.setup(uc)

			rec, env := do(t, newServer(t, uc), tt.method, tt.path, tt.body)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantMsg, env.Message)
		})
	}
}

func TestHTTPEndpoint_EnterVerificationDeadEnds(t *testing.T) {
	tests := []struct {
		name     string
		out      *usecase.VerificationOutput
		wantMsg  string
		wantData string
	}{
		{
			name:     "Expired",
			out:      &usecase.VerificationOutput{State: entity.StateExpired, OTPSent: true, ResendAvailable: true, ResendCount: 1, MaxResends: 3},
			wantMsg:  "OTP expired. You can request a new one.",
			wantData: `{"state":"expired","otp_sent":true,"resend_available":true,"resend_count":1,"max_resends":3,"expires_in_seconds":0}`,
		},
		{
			name:     "MaxResendsReached",
			out:      &usecase.VerificationOutput{State: entity.StateMaxResendsReached, OTPSent: true, ResendCount: 3, MaxResends: 3},
			wantMsg:  "Maximum resend attempts reached. Try again later.",
			wantData: `{"state":"max_resends_reached","otp_sent":true,"resend_available":false,"resend_count":3,"max_resends":3,"expires_in_seconds":0}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockUC)
			uc.On("EnterVerification", mock.Anything, mock.Anything).Return(tt.out, nil).Once()

			rec, env := do(t, newServer(t, uc), http.MethodGet, "/api/v1/identity/signup/otp", "")

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantMsg, env.Message)
			assert.JSONEq(t, tt.wantData, string(env.Data))
		})
	}
}

func TestHTTPEndpoint_LoginMeLogout(t *testing.T) {
	uc := new(mockUC)
	srv := newServer(t, uc)

	uc.On("Login", mock.Anything, mock.MatchedBy(func(in usecase.LoginInput) bool {
		return in.Email == "ayesha@example.com" && in.Password == "secret"
	})).Return(&usecase.LoginOutput{Email: "ayesha@example.com", Name: "Ayesha"}, nil)

	rec, env := do(t, srv, http.MethodPost, "/api/v1/identity/login", `{"email":"ayesha@example.com","password":"secret"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Login successful", env.Message)
	cookies := rec.Result().Cookies()

	uc.On("CurrentUser", mock.Anything, mock.Anything).
		Return(&usecase.CurrentUserOutput{Email: "ayesha@example.com"}, nil).Once()

	rec, env = do(t, srv, http.MethodGet, "/api/v1/identity/me", "", cookies...)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"email":"ayesha@example.com"}`, string(env.Data))

	uc.On("Logout", mock.Anything, mock.Anything).Return(nil).Once()

	rec, _ = do(t, srv, http.MethodPost, "/api/v1/identity/logout", "", cookies...)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
