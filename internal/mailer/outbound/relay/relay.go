package relay

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/gomailer/internal/mailer/entity"
	"github.com/shandysiswandi/gomailer/internal/pkg/instrument"
	"github.com/shandysiswandi/gomailer/internal/pkg/mail"
	"github.com/shandysiswandi/gomailer/internal/pkg/uid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

const outcomeSent = "sent"

// Relay submits emails through a mail.Mail client on behalf of the
// configured sender. Each Send is a single attempt.
type Relay struct {
	client mail.Mail
	from   string
	uuid   uid.StringID
	ins    instrument.Instrumentation
	sends  metric.Int64Counter
}

func New(client mail.Mail, creds entity.MailCredentials, gen uid.StringID, ins instrument.Instrumentation) *Relay {
	sends, err := ins.Meter("mailer.outbound.relay").Int64Counter("mailer.relay.sends",
		metric.WithDescription("Number of relay attempts by outcome"))
	if err != nil {
		slog.Error("failed to create relay send counter", "error", err)
	}

	return &Relay{
		client: client,
		from:   creds.SenderAddress,
		uuid:   gen,
		ins:    ins,
		sends:  sends,
	}
}

func (r *Relay) Send(ctx context.Context, email entity.Email) entity.SendResult {
	ctx, span := r.ins.Tracer("mailer.outbound.relay").Start(ctx, "Send")
	defer span.End()

	id := r.uuid.Generate()
	err := r.client.Send(ctx, mail.Message{
		ID:       id,
		From:     r.from,
		To:       []string{email.ReceiverEmail},
		Subject:  email.Subject,
		TextBody: email.BodyText,
	})
	if err != nil {
		res := entity.NewSendFailure(categorize(err), err)

		span.RecordError(err)
		span.SetStatus(codes.Error, res.Category.String())
		r.count(ctx, res.Category.String())
		slog.WarnContext(ctx, "relay failed", "category", res.Category.String(), "error", err)

		return res
	}

	r.count(ctx, outcomeSent)

	return entity.NewSendSuccess(id)
}

func (r *Relay) count(ctx context.Context, outcome string) {
	if r.sends == nil {
		return
	}
	r.sends.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func categorize(err error) entity.FailureCategory {
	var mErr *mail.Error
	if !errors.As(err, &mErr) {
		return entity.FailureUnexpected
	}

	switch mErr.Kind {
	case mail.KindAuth:
		return entity.FailureAuth
	case mail.KindRecipient:
		return entity.FailureRecipient
	case mail.KindDisconnected:
		return entity.FailureConnection
	case mail.KindProtocol:
		return entity.FailureTransport
	default:
		return entity.FailureUnexpected
	}
}
