package mail

import (
	"errors"
	"io"
	"net"
	"net/textproto"
	"syscall"
)

var (
	// ErrSMTPHostPortRequired is returned when Host/Port are missing.
	ErrSMTPHostPortRequired = errors.New("smtp host and port are required")
	// ErrSMTPNoRecipients is returned when To is empty.
	ErrSMTPNoRecipients = errors.New("no recipients provided")
	// ErrSMTPNoSender is returned when both Message.From and the configured default From are empty.
	ErrSMTPNoSender = errors.New("no sender provided")
	// ErrSMTPAuthUnsupported is returned when credentials are set but the
	// server does not advertise the AUTH extension.
	ErrSMTPAuthUnsupported = errors.New("smtp AUTH extension not supported by server")
)

// Kind classifies a transport failure.
type Kind int

const (
	// KindUnknown is any failure that is not an SMTP level error.
	KindUnknown Kind = iota
	// KindAuth means the server refused the credentials with a 530, 534 or
	// 535 reply.
	KindAuth
	// KindRecipient means the server refused a recipient.
	KindRecipient
	// KindDisconnected means the connection dropped mid transaction.
	KindDisconnected
	// KindProtocol is any other error reply from the server.
	KindProtocol
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindRecipient:
		return "recipient"
	case KindDisconnected:
		return "disconnected"
	case KindProtocol:
		return "protocol"
	default:
		return "unknown"
	}
}

// Stage is the step of the SMTP transaction that failed.
type Stage string

const (
	StageDial     Stage = "dial"
	StageGreeting Stage = "greeting"
	StageStartTLS Stage = "starttls"
	StageAuth     Stage = "auth"
	StageMail     Stage = "mail"
	StageRcpt     Stage = "rcpt"
	StageData     Stage = "data"
)

// Error is a classified SMTP transport failure.
type Error struct {
	Kind  Kind
	Stage Stage
	Err   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return "smtp " + string(e.Stage) + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

func classify(stage Stage, err error) *Error {
	e := &Error{Kind: KindUnknown, Stage: stage, Err: err}

	if stage == StageDial {
		return e
	}

	switch {
	case isDisconnect(err):
		e.Kind = KindDisconnected
	case stage == StageAuth && isAuthRejection(err):
		e.Kind = KindAuth
	case stage == StageAuth:
		e.Kind = KindProtocol
	case stage == StageRcpt:
		e.Kind = KindRecipient
	case isReply(err):
		e.Kind = KindProtocol
	}

	return e
}

func isReply(err error) bool {
	var tpErr *textproto.Error
	return errors.As(err, &tpErr)
}

func isAuthRejection(err error) bool {
	var tpErr *textproto.Error
	if !errors.As(err, &tpErr) {
		return false
	}

	switch tpErr.Code {
	case 530, 534, 535:
		return true
	default:
		return false
	}
}

func isDisconnect(err error) bool {
	if errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, net.ErrClosed) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE) {
		return true
	}

	var tpErr *textproto.Error
	if errors.As(err, &tpErr) {
		// 421: service not available, closing transmission channel
		return tpErr.Code == 421
	}

	return false
}
