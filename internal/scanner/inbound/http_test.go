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

	"github.com/shandysiswandi/phishguard/internal/pkg/clock"
	"github.com/shandysiswandi/phishguard/internal/pkg/config"
	"github.com/shandysiswandi/phishguard/internal/pkg/goerror"
	"github.com/shandysiswandi/phishguard/internal/pkg/instrument"
	"github.com/shandysiswandi/phishguard/internal/pkg/jwt"
	"github.com/shandysiswandi/phishguard/internal/pkg/router"
	"github.com/shandysiswandi/phishguard/internal/pkg/uid"
	"github.com/shandysiswandi/phishguard/internal/scanner/entity"
	"github.com/shandysiswandi/phishguard/internal/scanner/usecase"
)

type mockUC struct{ mock.Mock }

func (m *mockUC) Classify(ctx context.Context, in usecase.ClassifyInput) (*usecase.ClassifyOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*usecase.ClassifyOutput)
	return out, args.Error(1)
}

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newServer(t *testing.T, uc *mockUC, loggedIn bool) *router.Router {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte("app: {}"))
	require.NoError(t, err)

	codec, err := jwt.NewHS512(jwt.Config{
		Secret:    []byte(strings.Repeat("s", 64)),
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

	auth := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if !loggedIn {
				router.Abort(w, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized))
				return
			}
			next.ServeHTTP(w, req)
		})
	}
	RegisterHTTPEndpoint(r, uc, auth)
	return r
}

func classify(t *testing.T, h http.Handler, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/scanner/classify", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestHTTPEndpoint_Classify(t *testing.T) {
	t.Run("Phishing", func(t *testing.T) {
		uc := new(mockUC)
		uc.On("Classify", mock.Anything, usecase.ClassifyInput{URL: "http://paypa1.example"}).Return(&usecase.ClassifyOutput{
			HasResult: true,
			Result:    entity.Result{URL: "http://paypa1.example", Score: 0.75, Verdict: entity.VerdictPhishing},
		}, nil).Once()

		rec, env := classify(t, newServer(t, uc, true), `{"url":"http://paypa1.example"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Phishing URL", env.Message)
		assert.JSONEq(t, `{"has_result":true,"url":"http://paypa1.example","score":0.75,"verdict":"phishing","label":"Phishing URL"}`, string(env.Data))
		uc.AssertExpectations(t)
	})

	t.Run("Blank", func(t *testing.T) {
		uc := new(mockUC)
		uc.On("Classify", mock.Anything, usecase.ClassifyInput{URL: ""}).Return(&usecase.ClassifyOutput{}, nil).Once()

		rec, env := classify(t, newServer(t, uc, true), `{}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"has_result":false}`, string(env.Data))
	})

	t.Run("Unavailable", func(t *testing.T) {
		uc := new(mockUC)
		uc.On("Classify", mock.Anything, mock.Anything).
			Return(nil, goerror.NewBusiness("Classifier is unavailable", goerror.CodeUnavailable)).Once()

		rec, env := classify(t, newServer(t, uc, true), `{"url":"http://x.example"}`)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "Classifier is unavailable", env.Message)
	})

	t.Run("NotLoggedIn", func(t *testing.T) {
		uc := new(mockUC)

		rec, env := classify(t, newServer(t, uc, false), `{"url":"http://x.example"}`)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Authentication required", env.Message)
		uc.AssertNotCalled(t, "Classify", mock.Anything, mock.Anything)
	})
}
