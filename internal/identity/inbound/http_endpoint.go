package inbound

import (
	"github.com/shandysiswandi/phishguard/internal/identity/usecase"
	"github.com/shandysiswandi/phishguard/internal/pkg/router"
)

// HTTPEndpoint exposes the signup, OTP and session handlers.
type HTTPEndpoint struct {
	uc uc
}

// Signup stages a signup form in the visitor session.
// @Summary Start signup
// @Tags Identity, Signup
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Signup payload"
// @Success 200 {object} router.successResponse{data=SignupResponse}
// @Failure 409 {object} router.errorResponse "Email already exists"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/identity/signup [post]
func (h *HTTPEndpoint) Signup(r *router.Request) (any, error) {
	var req SignupRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.Signup(r.Context(), usecase.SignupInput{
		SessionID: r.SessionID(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  req.Password,
	}); err != nil {
		return nil, err
	}

	return SignupResponse{Redirect: pathOTP}, nil
}

// EnterVerification returns the OTP state and sends the first code.
// @Summary OTP verification state
// @Tags Identity, Signup
// @Produce json
// @Success 200 {object} router.successResponse{data=VerificationResponse}
// @Router /api/v1/identity/signup/otp [get]
func (h *HTTPEndpoint) EnterVerification(r *router.Request) (any, error) {
	out, err := h.uc.EnterVerification(r.Context(), usecase.VerificationInput{SessionID: r.SessionID()})
	if err != nil {
		return nil, err
	}

	msg := "OTP sent"
	if out.ResendAvailable {
		msg = "OTP expired. You can request a new one."
	}

	return newVerificationResponse(out, msg), nil
}

// VerifyOTP checks a code and creates the account on a match.
// @Summary Verify OTP
// @Tags Identity, Signup
// @Accept json
// @Produce json
// @Param request body VerifyOTPRequest true "OTP payload"
// @Success 200 {object} router.successResponse{data=VerificationResponse}
// @Failure 401 {object} router.errorResponse "Invalid OTP."
// @Failure 410 {object} router.errorResponse "OTP expired. Please resend."
// @Router /api/v1/identity/signup/otp/verify [post]
func (h *HTTPEndpoint) VerifyOTP(r *router.Request) (any, error) {
	var req VerifyOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	out, err := h.uc.VerifyOTP(r.Context(), usecase.VerifyOTPInput{
		SessionID: r.SessionID(),
		Code:      req.OTP,
	})
	if err != nil {
		return nil, err
	}

	return newVerificationResponse(out, ""), nil
}

// ResendOTP replaces the code while resends remain.
// @Summary Resend OTP
// @Tags Identity, Signup
// @Produce json
// @Success 200 {object} router.successResponse{data=VerificationResponse}
// @Failure 429 {object} router.errorResponse "Maximum resend attempts reached"
// @Router /api/v1/identity/signup/otp/resend [post]
func (h *HTTPEndpoint) ResendOTP(r *router.Request) (any, error) {
	out, err := h.uc.ResendOTP(r.Context(), usecase.VerificationInput{SessionID: r.SessionID()})
	if err != nil {
		return nil, err
	}

	return newVerificationResponse(out, "New OTP sent!"), nil
}

// Login binds the session to a user.
// @Summary Login
// @Tags Identity, Session
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login payload"
// @Success 200 {object} router.successResponse{data=LoginResponse}
// @Failure 401 {object} router.errorResponse "Invalid credentials"
// @Router /api/v1/identity/login [post]
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	out, err := h.uc.Login(r.Context(), usecase.LoginInput{
		SessionID: r.SessionID(),
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		return nil, err
	}

	return LoginResponse{Email: out.Email, Name: out.Name}, nil
}

// Logout ends the session.
// @Summary Logout
// @Tags Identity, Session
// @Success 204 "No Content"
// @Router /api/v1/identity/logout [post]
func (h *HTTPEndpoint) Logout(r *router.Request) (any, error) {
	return nil, h.uc.Logout(r.Context(), usecase.LogoutInput{SessionID: r.SessionID()})
}

func (h *HTTPEndpoint) Me(r *router.Request) (any, error) {
	return MeResponse{Email: r.UserEmail()}, nil
}
