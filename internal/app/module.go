package app

import (
	"fmt"

	"github.com/shandysiswandi/gomailer/internal/mailer"
)

func (a *App) initModules() error {
	if err := mailer.New(mailer.Dependency{
		Config:      a.config,
		Credentials: a.creds,
		Instrument:  a.ins,
		UUID:        a.emailID,
		Clock:       a.clock,
		Validator:   a.validator,
		Router:      a.router,
		Mail:        a.mail,
	}); err != nil {
		return fmt.Errorf("init module mailer: %w", err)
	}

	return nil
}
