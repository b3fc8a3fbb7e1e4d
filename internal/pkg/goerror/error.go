// Package goerror carries the application's error taxonomy.
//
// Usecases return *Error values; the HTTP layer turns them into a status code
// and a user-facing message without knowing where the error came from.
package goerror

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound is returned by repositories when nothing matches.
	ErrNotFound = errors.New("resource not found")

	// ErrConflict is returned by repositories on a uniqueness violation.
	ErrConflict = errors.New("resource conflict")
)

// Type is the broad class of an error.
type Type int

const (
	TypeServer Type = iota
	TypeBusiness
	TypeValidation
)

func (t Type) String() string {
	switch t {
	case TypeServer:
		return "ERROR_TYPE_SERVER"
	case TypeBusiness:
		return "ERROR_TYPE_BUSINESS"
	case TypeValidation:
		return "ERROR_TYPE_VALIDATION"
	default:
		return "ERROR_TYPE_UNKNOWN"
	}
}

// Code is a stable identifier that decides the HTTP status.
type Code int

const (
	CodeInternal Code = iota
	CodeInvalidFormat
	CodeInvalidInput
	CodeNotFound
	CodeConflict
	CodeTooManyRequest
	CodeUnauthorized
	CodeForbidden
	CodeTimeout
	// CodeExpired marks something that existed but is no longer usable,
	// such as a lapsed OTP challenge.
	CodeExpired
	// CodeUnavailable marks a downstream dependency that cannot be reached.
	CodeUnavailable
)

var codeNames = map[Code]string{
	CodeInternal:       "ERROR_CODE_INTERNAL",
	CodeInvalidFormat:  "ERROR_CODE_INVALID_FORMAT",
	CodeInvalidInput:   "ERROR_CODE_INVALID_INPUT",
	CodeNotFound:       "ERROR_CODE_NOT_FOUND",
	CodeConflict:       "ERROR_CODE_CONFLICT",
	CodeTooManyRequest: "ERROR_CODE_TOO_MANY_REQUESTS",
	CodeUnauthorized:   "ERROR_CODE_UNAUTHORIZED",
	CodeForbidden:      "ERROR_CODE_FORBIDDEN",
	CodeTimeout:        "ERROR_CODE_TIMEOUT",
	CodeExpired:        "ERROR_CODE_EXPIRED",
	CodeUnavailable:    "ERROR_CODE_UNAVAILABLE",
}

var codeStatus = map[Code]int{
	CodeInternal:       http.StatusInternalServerError,
	CodeInvalidFormat:  http.StatusBadRequest,
	CodeInvalidInput:   http.StatusUnprocessableEntity,
	CodeNotFound:       http.StatusNotFound,
	CodeConflict:       http.StatusConflict,
	CodeTooManyRequest: http.StatusTooManyRequests,
	CodeUnauthorized:   http.StatusUnauthorized,
	CodeForbidden:      http.StatusForbidden,
	CodeTimeout:        http.StatusRequestTimeout,
	CodeExpired:        http.StatusGone,
	CodeUnavailable:    http.StatusServiceUnavailable,
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return codeNames[CodeInternal]
}

// Error is the structured error shared by every layer.
type Error struct {
	err     error
	msg     string
	errType Type
	code    Code
	fields  map[string]string
}

// Error returns the wrapped error text when present, otherwise the message.
func (e *Error) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	if e.msg != "" {
		return e.msg
	}

	switch e.errType {
	case TypeValidation:
		return "Validation violation"
	case TypeBusiness:
		return "Logical business not meet with requirement"
	default:
		return "Internal error"
	}
}

// String is the verbose form used in debug logs.
func (e *Error) String() string {
	return fmt.Sprintf("Error Type: %s, Code: %s, Message: %s, Underlying Error: %v",
		e.errType, e.code, e.msg, e.err)
}

// Msg is the user-facing message.
func (e *Error) Msg() string { return e.msg }

func (e *Error) Type() Type { return e.errType }

func (e *Error) Code() Code { return e.code }

// Fields holds per-field messages of a validation error.
func (e *Error) Fields() map[string]string { return e.fields }

func (e *Error) Unwrap() error { return e.err }

// StatusCode maps the code to an HTTP status.
func (e *Error) StatusCode() int {
	if status, ok := codeStatus[e.code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func build(err error, msg string, et Type, code Code) *Error {
	return &Error{err: err, msg: msg, errType: et, code: code}
}

// NewServer wraps an unexpected failure. The cause is kept for logs and
// never shown to clients.
func NewServer(err error) error {
	return build(err, "Internal server error", TypeServer, CodeInternal)
}

// NewBusiness reports a rule violation with a user-facing message.
func NewBusiness(msg string, code Code) error {
	return build(nil, msg, TypeBusiness, code)
}

// NewInvalidInput reports failed validation. Pass the validator error, or
// nil plus field/message pairs for hand-made checks.
func NewInvalidInput(err error, kv ...string) error {
	if err != nil {
		return build(err, "Validation error", TypeValidation, CodeInvalidInput)
	}
	if len(kv)%2 != 0 {
		return build(nil, "Invalid request body", TypeValidation, CodeInvalidFormat)
	}

	e := build(nil, "Validation error", TypeValidation, CodeInvalidInput)
	e.fields = make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		e.fields[kv[i]] = kv[i+1]
	}
	return e
}

// NewInvalidFormat reports a body that cannot be decoded.
func NewInvalidFormat(msgs ...string) error {
	if len(msgs) == 0 {
		return build(nil, "Invalid request body", TypeValidation, CodeInvalidFormat)
	}
	return build(nil, msgs[0], TypeValidation, CodeInvalidFormat)
}

// HasCode reports whether err is an *Error with the given code.
func HasCode(err error, code Code) bool {
	var gerr *Error
	return errors.As(err, &gerr) && gerr.code == code
}
