package inbound

import (
	"github.com/shandysiswandi/phishguard/internal/identity/entity"
	"github.com/shandysiswandi/phishguard/internal/identity/usecase"
)

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type SignupResponse struct {
	Redirect string `json:"redirect"`
}

func (SignupResponse) Message() string {
	return "Signup received. Please verify the OTP sent to your phone."
}

type VerifyOTPRequest struct {
	OTP string `json:"otp"`
}

type VerificationResponse struct {
	State            string `json:"state"`
	OTPSent          bool   `json:"otp_sent"`
	ResendAvailable  bool   `json:"resend_available"`
	ResendCount      int    `json:"resend_count"`
	MaxResends       int    `json:"max_resends"`
	ExpiresInSeconds int    `json:"expires_in_seconds"`
	Redirect         string `json:"redirect,omitempty"`

	msg string
}

func (v VerificationResponse) Message() string {
	return v.msg
}

func newVerificationResponse(out *usecase.VerificationOutput, msg string) VerificationResponse {
	resp := VerificationResponse{
		State:            out.State.String(),
		OTPSent:          out.OTPSent,
		ResendAvailable:  out.ResendAvailable,
		ResendCount:      out.ResendCount,
		MaxResends:       out.MaxResends,
		ExpiresInSeconds: out.ExpiresInSeconds,
		msg:              msg,
	}

	switch out.State {
	case entity.StateNoSignup:
		resp.Redirect = pathSignup
		resp.msg = "No signup in progress. Please sign up first."
	case entity.StateVerified:
		resp.Redirect = pathLogin
		resp.msg = "Signup verified. Please log in."
	case entity.StateExpired:
		resp.msg = "OTP expired. You can request a new one."
	case entity.StateMaxResendsReached:
		resp.msg = "Maximum resend attempts reached. Try again later."
	}

	return resp
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (LoginResponse) Message() string {
	return "Login successful"
}

type MeResponse struct {
	Email string `json:"email"`
}
