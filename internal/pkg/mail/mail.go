package mail

import (
	"context"
	"io"
)

// Message is a plain-text email.
type Message struct {
	// From falls back to the sender's configured default when empty.
	From    string
	To      []string
	Subject string
	Body    string
}

// Mail sends messages.
type Mail interface {
	io.Closer
	Send(ctx context.Context, msg Message) error
}
