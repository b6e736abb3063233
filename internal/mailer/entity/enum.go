package entity

// FailureCategory classifies why a relay attempt failed.
type FailureCategory int

const (
	FailureNone FailureCategory = iota
	FailureAuth
	FailureRecipient
	FailureConnection
	FailureTransport
	FailureUnexpected
)

func (c FailureCategory) String() string {
	switch c {
	case FailureNone:
		return "none"
	case FailureAuth:
		return "authentication"
	case FailureRecipient:
		return "recipient"
	case FailureConnection:
		return "connection"
	case FailureTransport:
		return "transport"
	default:
		return "unexpected"
	}
}

// Prefix is the start of every failure message of this category.
func (c FailureCategory) Prefix() string {
	switch c {
	case FailureNone:
		return ""
	case FailureAuth:
		return "SMTP Authentication failed. Check your credentials: "
	case FailureRecipient:
		return "Invalid recipient email address: "
	case FailureConnection:
		return "SMTP server connection lost: "
	case FailureTransport:
		return "SMTP error occurred: "
	default:
		return "Unexpected error: "
	}
}
