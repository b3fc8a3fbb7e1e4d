package otp

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

// Code range, inclusive. Every code has exactly six digits.
const (
	MinCode = 100000
	MaxCode = 999999
)

// Generator produces one-time codes.
type Generator interface {
	Generate() (string, error)
}

// Numeric draws codes uniformly from [MinCode, MaxCode] using crypto/rand.
type Numeric struct{}

func NewNumeric() *Numeric {
	return &Numeric{}
}

func (*Numeric) Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(MaxCode-MinCode+1))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+MinCode, 10), nil
}
