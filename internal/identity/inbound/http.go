package inbound

import (
	"context"
	"net/http"

	"github.com/shandysiswandi/phishguard/internal/identity/usecase"
	"github.com/shandysiswandi/phishguard/internal/pkg/jwt"
	"github.com/shandysiswandi/phishguard/internal/pkg/router"
)

const (
	pathSignup = "/api/v1/identity/signup"
	pathOTP    = "/api/v1/identity/signup/otp"
	pathLogin  = "/api/v1/identity/login"
)

type currentUser interface {
	CurrentUser(ctx context.Context, in usecase.CurrentUserInput) (*usecase.CurrentUserOutput, error)
}

type uc interface {
	currentUser

	Signup(ctx context.Context, in usecase.SignupInput) error
	EnterVerification(ctx context.Context, in usecase.VerificationInput) (*usecase.VerificationOutput, error)
	VerifyOTP(ctx context.Context, in usecase.VerifyOTPInput) (*usecase.VerificationOutput, error)
	ResendOTP(ctx context.Context, in usecase.VerificationInput) (*usecase.VerificationOutput, error)

	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)
	Logout(ctx context.Context, in usecase.LogoutInput) error
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Signup & OTP
	r.POST(pathSignup, end.Signup)
	r.GET(pathOTP, end.EnterVerification)
	r.POST("/api/v1/identity/signup/otp/verify", end.VerifyOTP)
	r.POST("/api/v1/identity/signup/otp/resend", end.ResendOTP)

	// Session
	r.POST(pathLogin, end.Login)
	r.POST("/api/v1/identity/logout", end.Logout)
	r.GET("/api/v1/identity/me", end.Me, RequireLogin(uc))
}

// RequireLogin rejects requests whose session is not logged in.
func RequireLogin(uc currentUser) router.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			out, err := uc.CurrentUser(ctx, usecase.CurrentUserInput{SessionID: jwt.GetSessionID(ctx)})
			if err != nil {
				router.Abort(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(router.SetUserEmail(ctx, out.Email)))
		})
	}
}
