package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/shandysiswandi/phishguard/internal/pkg/jwt"
	"github.com/shandysiswandi/phishguard/internal/pkg/uid"
)

// CookieConfig shapes the session cookie.
type CookieConfig struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

// middlewareSession gives every visitor a session. A valid cookie is reused;
// anything else gets a fresh session ID and a new signed cookie.
func middlewareSession(codec jwt.JWT, gen uid.StringID, cfg CookieConfig) Middleware {
	if cfg.Name == "" {
		cfg.Name = "pg_session"
	}

	return func(next http.Handler) http.Handler {
		if codec == nil || gen == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if c, err := r.Cookie(cfg.Name); err == nil {
				if claims, err := codec.Verify(c.Value); err == nil {
					next.ServeHTTP(w, r.WithContext(jwt.SetSessionID(r.Context(), claims.SessionID)))
					return
				}
			}

			sid := gen.Generate()
			token, err := codec.Generate(sid)
			if err != nil {
				slog.ErrorContext(r.Context(), "failed to sign session token", "error", err)
				writeJSON(w, errorResponse{Message: "Internal server error"}, http.StatusInternalServerError)
				return
			}

			http.SetCookie(w, &http.Cookie{
				Name:     cfg.Name,
				Value:    token,
				Path:     "/",
				MaxAge:   int(cfg.TTL.Seconds()),
				HttpOnly: true,
				Secure:   cfg.Secure,
				SameSite: http.SameSiteLaxMode,
			})

			next.ServeHTTP(w, r.WithContext(jwt.SetSessionID(r.Context(), sid)))
		})
	}
}
