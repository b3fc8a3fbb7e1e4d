package router

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"github.com/shandysiswandi/phishguard/internal/pkg/goerror"
	"github.com/shandysiswandi/phishguard/internal/pkg/jwt"
)

const maxBodyBytes = 1 << 20

// Request wraps http.Request with helpers for inbound handlers.
type Request struct {
	*http.Request
	w http.ResponseWriter
}

func (r *Request) GetParam(key string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(key)
}

func (r *Request) GetQuery(key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}

// SessionID is the visitor session resolved by the session middleware.
func (r *Request) SessionID() string {
	return jwt.GetSessionID(r.Context())
}

type userKey struct{}

// SetUserEmail marks ctx as belonging to a logged-in user.
func SetUserEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, userKey{}, email)
}

// UserEmail is the logged-in user set by an auth middleware, or "".
func (r *Request) UserEmail() string {
	email, _ := r.Context().Value(userKey{}).(string)
	return email
}

// DecodeBody decodes a single JSON object into dst, rejecting unknown fields
// and trailing data.
func (r *Request) DecodeBody(dst any) error {
	if r == nil || r.Body == nil {
		return goerror.NewInvalidFormat()
	}

	var body io.Reader = r.Body
	if r.w != nil {
		body = http.MaxBytesReader(r.w, r.Body, maxBodyBytes)
	}

	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return goerror.NewInvalidFormat()
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return goerror.NewInvalidFormat()
	}

	return nil
}
