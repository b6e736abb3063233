package usecase

import (
	"context"
	"time"
)

type StatusOutput struct {
	Service          string
	Version          string
	EmailConfigValid bool
	Timestamp        time.Time
}

// Status describes the running service. It never fails, whatever the
// state of the mail configuration.
func (s *Usecase) Status(ctx context.Context) StatusOutput {
	_, span := s.startSpan(ctx, "Status")
	defer span.End()

	valid, _ := s.creds.Validate()

	return StatusOutput{
		Service:          s.cfg.GetString("app.name"),
		Version:          s.cfg.GetString("app.version"),
		EmailConfigValid: valid,
		Timestamp:        s.clock.Now(),
	}
}
