package mailer

import (
	"errors"

	"github.com/shandysiswandi/gomailer/internal/mailer/entity"
	"github.com/shandysiswandi/gomailer/internal/mailer/inbound"
	"github.com/shandysiswandi/gomailer/internal/mailer/outbound/relay"
	"github.com/shandysiswandi/gomailer/internal/mailer/usecase"
	"github.com/shandysiswandi/gomailer/internal/pkg/clock"
	"github.com/shandysiswandi/gomailer/internal/pkg/config"
	"github.com/shandysiswandi/gomailer/internal/pkg/instrument"
	"github.com/shandysiswandi/gomailer/internal/pkg/mail"
	"github.com/shandysiswandi/gomailer/internal/pkg/router"
	"github.com/shandysiswandi/gomailer/internal/pkg/uid"
	"github.com/shandysiswandi/gomailer/internal/pkg/validator"
)

// ErrMissingValidator is returned by New when no validator is provided.
var ErrMissingValidator = errors.New("mailer: validator is required")

// Dependency lists what the mailer module needs. Credentials may be
// incomplete; the module still boots and reports it on every request.
type Dependency struct {
	Credentials entity.MailCredentials
	Config      config.Config              `validate:"required"`
	Instrument  instrument.Instrumentation `validate:"required"`
	UUID        uid.StringID               `validate:"required"`
	Clock       clock.Clocker              `validate:"required"`
	Validator   validator.Validator        `validate:"required"`
	Router      *router.Router             `validate:"required"`
	Mail        mail.Mail                  `validate:"required"`
}

func New(dep Dependency) error {
	if dep.Validator == nil {
		return ErrMissingValidator
	}
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	repoRelay := relay.New(dep.Mail, dep.Credentials, dep.UUID, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		Credentials: dep.Credentials,
		Config:      dep.Config,
		Clock:       dep.Clock,
		Validator:   dep.Validator,
		Relay:       repoRelay,
		Instrument:  dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
