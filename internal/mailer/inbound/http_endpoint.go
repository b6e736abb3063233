package inbound

import (
	"github.com/shandysiswandi/gomailer/internal/pkg/goerror"
	"github.com/shandysiswandi/gomailer/internal/pkg/router"
)

type HTTPEndpoint struct {
	uc uc
}

// Status reports liveness and whether mail credentials are configured.
// @Summary Service status
// @Description Always answers 200; email_config_valid tells whether sending is possible.
// @Tags Mailer
// @Produce json
// @Success 200 {object} StatusResponse "Service status"
// @Router / [get]
func (h *HTTPEndpoint) Status(r *router.Request) (any, error) {
	out := h.uc.Status(r.Context())

	return StatusResponse{
		Service:          out.Service,
		Version:          out.Version,
		Status:           statusRunning,
		EmailConfigValid: out.EmailConfigValid,
		Timestamp:        out.Timestamp,
	}, nil
}

// SendEmail relays a plain text email to one recipient.
// @Summary Send email
// @Description Validates the payload and relays it through the configured SMTP account.
// @Tags Mailer
// @Accept json
// @Produce json
// @Param request body SendEmailRequest true "Email payload"
// @Success 200 {object} SendEmailResponse "Email sent"
// @Failure 400 {object} router.errorResponse "Invalid request or recipient"
// @Failure 401 {object} router.errorResponse "SMTP authentication failed"
// @Failure 413 {object} router.errorResponse "Request body too large"
// @Failure 500 {object} router.errorResponse "Server configuration or internal error"
// @Failure 502 {object} router.errorResponse "Email sending failed"
// @Router /send-email [post]
func (h *HTTPEndpoint) SendEmail(r *router.Request) (any, error) {
	if err := h.uc.ConfigStatus(r.Context()); err != nil {
		return nil, err
	}

	if !r.IsJSON() {
		return nil, goerror.NewInvalidFormat("Content-Type must be application/json")
	}

	obj, err := r.DecodeObject("Request body is required")
	if err != nil {
		return nil, err
	}

	out, err := h.uc.SendEmail(r.Context(), newSendEmailRequest(obj).input())
	if err != nil {
		return nil, err
	}

	return SendEmailResponse{
		Status:    statusSuccess,
		Message:   out.Message,
		EmailID:   out.EmailID,
		SentTo:    out.SentTo,
		SentFrom:  out.SentFrom,
		Subject:   out.Subject,
		Timestamp: out.Timestamp,
	}, nil
}
