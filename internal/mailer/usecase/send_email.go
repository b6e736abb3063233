package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/shandysiswandi/gomailer/internal/mailer/entity"
	"github.com/shandysiswandi/gomailer/internal/pkg/goerror"
	"github.com/shandysiswandi/gomailer/internal/pkg/validator"
)

// RequiredFields lists the send request fields in reporting order.
var RequiredFields = []string{"receiver_email", "subject", "body_text"}

type SendEmailInput struct {
	ReceiverEmail string `json:"receiver_email" validate:"required,mailbox"`
	Subject       string `json:"subject" validate:"required"`
	BodyText      string `json:"body_text" validate:"required"`
}

type SendEmailOutput struct {
	Message   string
	EmailID   string
	SentTo    string
	SentFrom  string
	Subject   string
	Timestamp time.Time
}

func (s *Usecase) SendEmail(ctx context.Context, in SendEmailInput) (*SendEmailOutput, error) {
	ctx, span := s.startSpan(ctx, "SendEmail")
	defer span.End()

	if err := s.ConfigStatus(ctx); err != nil {
		return nil, err
	}

	in.ReceiverEmail = strings.TrimSpace(in.ReceiverEmail)
	in.Subject = strings.TrimSpace(in.Subject)
	in.BodyText = strings.TrimSpace(in.BodyText)

	if err := s.validate(in); err != nil {
		return nil, err
	}

	res := s.relay.Send(ctx, entity.Email{
		ReceiverEmail: in.ReceiverEmail,
		Subject:       in.Subject,
		BodyText:      in.BodyText,
	})
	if !res.Success {
		return nil, failureError(res)
	}

	slog.InfoContext(ctx, "email relayed", "email_id", res.EmailID, "sent_to", in.ReceiverEmail)

	return &SendEmailOutput{
		Message:   res.Message,
		EmailID:   res.EmailID,
		SentTo:    in.ReceiverEmail,
		SentFrom:  s.creds.SenderAddress,
		Subject:   in.Subject,
		Timestamp: s.clock.Now(),
	}, nil
}

// validate reports every blank field at once; the address shape is only
// checked once all fields are present.
func (s *Usecase) validate(in SendEmailInput) error {
	err := s.validator.Validate(in)
	if err == nil {
		return nil
	}

	var verr validator.V10ValidationError
	if !errors.As(err, &verr) {
		return goerror.NewServer(err)
	}

	blank := verr.FieldsWithTag("required")
	if len(blank) > 0 {
		missing := lo.Filter(RequiredFields, func(field string, _ int) bool {
			return lo.Contains(blank, field)
		})

		return goerror.NewInvalidInput("Missing required fields", "",
			"missing_fields", missing,
			"required_fields", RequiredFields,
		)
	}

	return goerror.NewInvalidInput("Invalid email format", "Please provide a valid email address")
}

// failureError selects the response for a failed relay. Categories are
// checked first; the message rules keep answering the same way for failures
// whose text mentions authentication or a recipient.
func failureError(res entity.SendResult) error {
	switch {
	case res.Category == entity.FailureAuth, strings.Contains(res.Message, "Authentication"):
		return goerror.NewBusiness("Authentication failed", res.Message, goerror.CodeUnauthorized)
	case res.Category == entity.FailureRecipient, strings.Contains(strings.ToLower(res.Message), "recipient"):
		return goerror.NewBusiness("Invalid recipient", res.Message, goerror.CodeInvalidInput)
	default:
		return goerror.NewBusiness("Email sending failed", res.Message, goerror.CodeBadGateway)
	}
}
