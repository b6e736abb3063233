package mail

import (
	"context"
	"io"
)

// Message is a single plain-text email.
type Message struct {
	// ID, when set, is rendered as the Message-ID header.
	ID string
	// From overrides the sender configured on the implementation.
	From string
	// To lists the envelope and header recipients. At least one is required.
	To []string
	// Subject is encoded per RFC 2047 when it is not plain ASCII.
	Subject string
	// TextBody is sent as text/plain with CRLF line endings.
	TextBody string
}

// Mail delivers messages to a mail transfer agent.
type Mail interface {
	io.Closer
	// Send performs one delivery attempt for msg.
	Send(ctx context.Context, msg Message) error
}
