package entity

// MsgConfigMissing is reported while either credential is absent.
const MsgConfigMissing = "Email configuration missing. Please set MAIL_SENDER_ADDRESS and MAIL_APP_PASSWORD environment variables."

// MailCredentials identifies the sender account on the mail submission
// endpoint. It is loaded once at start and never mutated.
type MailCredentials struct {
	SenderAddress string
	AppPassword   string
	SMTPHost      string
	SMTPPort      int
}

// Validate reports whether sending is possible with these credentials.
func (c MailCredentials) Validate() (bool, string) {
	if c.SenderAddress == "" || c.AppPassword == "" {
		return false, MsgConfigMissing
	}
	return true, "OK"
}

// String never renders the password.
func (c MailCredentials) String() string {
	return "MailCredentials{sender=" + c.SenderAddress + ", host=" + c.SMTPHost + "}"
}
