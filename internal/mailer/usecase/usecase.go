package usecase

import (
	"context"

	"github.com/shandysiswandi/gomailer/internal/mailer/entity"
	"github.com/shandysiswandi/gomailer/internal/pkg/clock"
	"github.com/shandysiswandi/gomailer/internal/pkg/config"
	"github.com/shandysiswandi/gomailer/internal/pkg/goerror"
	"github.com/shandysiswandi/gomailer/internal/pkg/instrument"
	"github.com/shandysiswandi/gomailer/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type repoRelay interface {
	Send(ctx context.Context, email entity.Email) entity.SendResult
}

type Usecase struct {
	creds     entity.MailCredentials
	cfg       config.Config
	clock     clock.Clocker
	validator validator.Validator
	relay     repoRelay
	ins       instrument.Instrumentation
}

type Dependency struct {
	Credentials entity.MailCredentials
	Config      config.Config
	Clock       clock.Clocker
	Validator   validator.Validator
	Relay       repoRelay
	Instrument  instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		creds:     dep.Credentials,
		cfg:       dep.Config,
		clock:     dep.Clock,
		validator: dep.Validator,
		relay:     dep.Relay,
		ins:       dep.Instrument,
	}
}

// ConfigStatus fails with a configuration error while the sender
// credentials are incomplete.
func (s *Usecase) ConfigStatus(context.Context) error {
	if ok, msg := s.creds.Validate(); !ok {
		return goerror.NewConfiguration(msg)
	}
	return nil
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("mailer.usecase").Start(ctx, name)
}
