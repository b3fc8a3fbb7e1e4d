// Package clock hides the wall clock behind a small interface.
//
// Session expiry, OTP lifetimes and token stamps read time through Clocker
// so tests can pin "now" to any instant.
package clock
