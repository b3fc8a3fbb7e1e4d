package entity

// VerificationState is where a session stands in the signup OTP flow.
type VerificationState int8

const (
	// StateNoSignup mean the session holds no pending signup.
	StateNoSignup VerificationState = 0

	// StateChallengeIssued mean a code was sent and is awaiting verification.
	StateChallengeIssued VerificationState = 1

	// StateVerified mean the user was created and the session cleared.
	StateVerified VerificationState = 2

	// StateExpired mean the code expired and a resend is still allowed.
	StateExpired VerificationState = 3

	// StateMaxResendsReached mean the code expired and the resend budget is
	// spent.
	StateMaxResendsReached VerificationState = 4
)

func (vs VerificationState) String() string {
	switch vs {
	case StateChallengeIssued:
		return "challenge_issued"
	case StateVerified:
		return "verified"
	case StateExpired:
		return "expired"
	case StateMaxResendsReached:
		return "max_resends_reached"
	default:
		return "no_signup"
	}
}

// Delivery is the outcome of handing an OTP to the notifier.
type Delivery int8

const (
	DeliveryFailed   Delivery = 0
	DeliveryAccepted Delivery = 1
)

func (d Delivery) String() string {
	if d == DeliveryAccepted {
		return "accepted"
	}
	return "failed"
}
