package app

import (
	"context"
	"net/http"

	"github.com/shandysiswandi/gomailer/internal/mailer/entity"
	"github.com/shandysiswandi/gomailer/internal/pkg/clock"
	"github.com/shandysiswandi/gomailer/internal/pkg/config"
	"github.com/shandysiswandi/gomailer/internal/pkg/instrument"
	"github.com/shandysiswandi/gomailer/internal/pkg/mail"
	"github.com/shandysiswandi/gomailer/internal/pkg/router"
	"github.com/shandysiswandi/gomailer/internal/pkg/uid"
	"github.com/shandysiswandi/gomailer/internal/pkg/validator"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation
	creds  entity.MailCredentials

	// libraries
	validator validator.Validator
	clock     clock.Clocker
	uuid      uid.StringID
	emailID   uid.StringID

	// resources
	mail mail.Mail

	// server
	router     *router.Router
	handler    http.Handler
	httpServer *http.Server
	serveErr   error

	// released in order by close
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App
// instance. Any failure leaves nothing running.
func New() (*App, error) {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	steps := []func() error{
		app.initConfig,
		app.initInstrument,
		app.initLibraries,
		app.initMail,
		app.initHTTPServer,
		app.initModules,
	}
	app.initClosers()

	for _, step := range steps {
		if err := step(); err != nil {
			cancel()
			app.close(context.Background())
			return nil, err
		}
	}

	return app, nil
}

// Handler returns the CORS wrapped router, for adapters that bring their
// own transport.
func (a *App) Handler() http.Handler {
	return a.handler
}
