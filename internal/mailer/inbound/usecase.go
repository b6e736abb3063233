package inbound

import (
	"context"

	"github.com/shandysiswandi/gomailer/internal/mailer/usecase"
)

type uc interface {
	ConfigStatus(ctx context.Context) error
	Status(ctx context.Context) usecase.StatusOutput
	SendEmail(ctx context.Context, in usecase.SendEmailInput) (*usecase.SendEmailOutput, error)
}
