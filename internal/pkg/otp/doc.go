// Package otp generates numeric one-time codes.
package otp
