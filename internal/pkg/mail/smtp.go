package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"
)

// DefaultTimeout bounds a whole SMTP transaction when SMTPConfig.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// SMTP is a Mail implementation backed by net/smtp. Every Send opens its own
// connection, performs exactly one transaction and closes it.
type SMTP struct {
	addr            string
	host            string
	defaultFrom     string
	auth            smtp.Auth
	timeout         time.Duration
	disableStartTLS bool
	tlsConfig       *tls.Config
	now             func() time.Time
}

// SMTPConfig configures the SMTP implementation.
type SMTPConfig struct {
	// Host is the SMTP server hostname.
	Host string
	// Port is the SMTP server port.
	Port int
	// Username is the SMTP authentication username.
	Username string
	// Password is the SMTP authentication password.
	Password string
	// From is the default sender when Message.From is empty.
	From string
	// Timeout bounds dialing plus the whole transaction.
	Timeout time.Duration
	// DisableStartTLS skips the STARTTLS upgrade. Only meant for local relays.
	DisableStartTLS bool
	// TLSConfig overrides the STARTTLS client configuration.
	TLSConfig *tls.Config
}

// NewSMTP constructs an SMTP mail sender.
func NewSMTP(cfg SMTPConfig) (*SMTP, error) {
	if cfg.Host == "" || cfg.Port == 0 {
		return nil, ErrSMTPHostPortRequired
	}

	var auth smtp.Auth
	if cfg.Username != "" && cfg.Password != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	tlsConfig := cfg.TLSConfig
	if tlsConfig == nil {
		tlsConfig = &tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12}
	}

	return &SMTP{
		addr:            net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		host:            cfg.Host,
		defaultFrom:     cfg.From,
		auth:            auth,
		timeout:         timeout,
		disableStartTLS: cfg.DisableStartTLS,
		tlsConfig:       tlsConfig,
		now:             time.Now,
	}, nil
}

// Send delivers a message over SMTP: connect, STARTTLS, AUTH, MAIL, RCPT,
// DATA. Failures are returned as *Error.
func (s *SMTP) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(msg.To) == 0 {
		return ErrSMTPNoRecipients
	}

	from := msg.From
	if from == "" {
		from = s.defaultFrom
	}
	if from == "" {
		return ErrSMTPNoSender
	}

	deadline := s.now().Add(s.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	dialer := &net.Dialer{Deadline: deadline}
	conn, err := dialer.DialContext(ctx, "tcp", s.addr)
	if err != nil {
		return classify(StageDial, err)
	}

	if err := conn.SetDeadline(deadline); err != nil {
		//nolint:errcheck // closing a connection we failed to configure
		conn.Close()
		return classify(StageDial, err)
	}

	stop := context.AfterFunc(ctx, func() {
		//nolint:errcheck // unblocks pending reads and writes on cancellation
		conn.SetDeadline(time.Unix(1, 0))
	})
	defer stop()

	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		//nolint:errcheck // the greeting failed, nothing left to flush
		conn.Close()
		return classify(StageGreeting, err)
	}
	defer func() {
		if err := client.Quit(); err != nil {
			slog.DebugContext(ctx, "smtp quit failed", "error", err)
			//nolint:errcheck // connection is being discarded
			client.Close()
		}
	}()

	return s.transact(client, from, msg)
}

func (s *SMTP) transact(client *smtp.Client, from string, msg Message) error {
	if !s.disableStartTLS {
		if err := client.StartTLS(s.tlsConfig); err != nil {
			return classify(StageStartTLS, err)
		}
	}

	if s.auth != nil {
		if ok, _ := client.Extension("AUTH"); !ok {
			return classify(StageAuth, ErrSMTPAuthUnsupported)
		}
		if err := client.Auth(s.auth); err != nil {
			return classify(StageAuth, err)
		}
	}

	if err := client.Mail(from); err != nil {
		return classify(StageMail, err)
	}

	for _, rcpt := range msg.To {
		if err := client.Rcpt(rcpt); err != nil {
			return classify(StageRcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return classify(StageData, err)
	}

	if _, err := w.Write(s.compose(from, msg)); err != nil {
		//nolint:errcheck // the write error is the one worth reporting
		w.Close()
		return classify(StageData, err)
	}

	if err := w.Close(); err != nil {
		return classify(StageData, err)
	}

	return nil
}

func (s *SMTP) compose(from string, msg Message) []byte {
	headers := []string{
		"From: " + from,
		"To: " + strings.Join(msg.To, ", "),
		"Subject: " + encodeHeader(msg.Subject),
		"Date: " + s.now().Format(time.RFC1123Z),
	}
	if msg.ID != "" {
		headers = append(headers, "Message-ID: <"+msg.ID+"@"+s.host+">")
	}
	headers = append(headers,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
		"Content-Transfer-Encoding: 8bit",
	)

	body := strings.ReplaceAll(msg.TextBody, "\r\n", "\n")
	body = strings.ReplaceAll(body, "\n", "\r\n")

	return fmt.Appendf(nil, "%s\r\n\r\n%s\r\n", strings.Join(headers, "\r\n"), body)
}

// encodeHeader applies RFC 2047 encoding when v holds non-ASCII or control
// characters, so a value can never inject extra header lines.
func encodeHeader(v string) string {
	return mime.QEncoding.Encode("utf-8", v)
}

// Close implements io.Closer for interface compatibility.
func (s *SMTP) Close() error {
	return nil
}
