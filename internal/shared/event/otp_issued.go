package event

import "time"

const OTPIssuedDestination string = "identity.otp_issued"
const OTPIssuedConsumerNotification string = "identity_otp_issued_notification"

type OTPIssuedMessage struct {
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Phone    string    `json:"phone"`
	OTP      string    `json:"otp"`
	IssuedAt time.Time `json:"issued_at"`
}
