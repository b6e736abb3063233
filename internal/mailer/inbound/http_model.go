package inbound

import (
	"time"

	"github.com/shandysiswandi/gomailer/internal/mailer/usecase"
)

const statusRunning = "running"

const statusSuccess = "success"

// SendEmailRequest documents the send payload. Values that are not JSON
// strings are treated as missing.
type SendEmailRequest struct {
	ReceiverEmail string `json:"receiver_email" example:"user@example.com"`
	Subject       string `json:"subject" example:"Email Subject"`
	BodyText      string `json:"body_text" example:"Email content here"`
}

func newSendEmailRequest(obj map[string]any) SendEmailRequest {
	return SendEmailRequest{
		ReceiverEmail: stringField(obj, "receiver_email"),
		Subject:       stringField(obj, "subject"),
		BodyText:      stringField(obj, "body_text"),
	}
}

func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

func (r SendEmailRequest) input() usecase.SendEmailInput {
	return usecase.SendEmailInput{
		ReceiverEmail: r.ReceiverEmail,
		Subject:       r.Subject,
		BodyText:      r.BodyText,
	}
}

type SendEmailResponse struct {
	Status    string    `json:"status" example:"success"`
	Message   string    `json:"message" example:"Email sent successfully"`
	EmailID   string    `json:"email_id" example:"1f0c7b9e-4c1a-4f61-9d2e-9a0f3f0b2f7d"`
	SentTo    string    `json:"sent_to" example:"user@example.com"`
	SentFrom  string    `json:"sent_from" example:"sender@example.com"`
	Subject   string    `json:"subject" example:"Email Subject"`
	Timestamp time.Time `json:"timestamp"`
}

type StatusResponse struct {
	Service          string    `json:"service" example:"Email Sending API"`
	Version          string    `json:"version" example:"1.0.0"`
	Status           string    `json:"status" example:"running"`
	EmailConfigValid bool      `json:"email_config_valid"`
	Timestamp        time.Time `json:"timestamp"`
}
