package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/shandysiswandi/gomailer/internal/mailer/entity"
	"github.com/shandysiswandi/gomailer/internal/pkg/clock"
	"github.com/shandysiswandi/gomailer/internal/pkg/config"
	"github.com/shandysiswandi/gomailer/internal/pkg/instrument"
	"github.com/shandysiswandi/gomailer/internal/pkg/mail"
	"github.com/shandysiswandi/gomailer/internal/pkg/router"
	"github.com/shandysiswandi/gomailer/internal/pkg/uid"
	"github.com/shandysiswandi/gomailer/internal/pkg/validator"
)

var configDefaults = map[string]any{
	"app.name":                                    "Email Sending API",
	"app.version":                                 "1.0.0",
	"app.server.http.address":                     ":5000",
	"app.server.http.read_timeout_seconds":        10,
	"app.server.http.read_header_timeout_seconds": 5,
	"app.server.http.write_timeout_seconds":       40,
	"app.server.http.idle_timeout_seconds":        60,
	"app.server.cors":                             "*",
	"app.maintenance.endpoints":                   "",

	"mail.sender_address":   "",
	"mail.app_password":     "",
	"mail.host":             "smtp.gmail.com",
	"mail.port":             587,
	"mail.timeout_seconds":  30,
	"mail.disable_starttls": false,

	"instrument.enabled":                 false,
	"instrument.service_name":            "gomailer",
	"instrument.service_version":         "1.0.0",
	"instrument.env":                     "development",
	"instrument.otlp_endpoint":           "localhost:4317",
	"instrument.otlp_secure":             false,
	"instrument.trace_sample_ratio":      1.0,
	"instrument.metric_interval_seconds": 15,
	"instrument.log_mask_fields":         "app_password,password,authorization",
	"instrument.log_level":               "info",
}

// envBindings accepts the MAIL_* names and the legacy GMAIL_/SMTP_ names.
var envBindings = map[string][]string{
	"mail.sender_address":       {"MAIL_SENDER_ADDRESS", "GMAIL_EMAIL"},
	"mail.app_password":         {"MAIL_APP_PASSWORD", "GMAIL_APP_PASSWORD"},
	"mail.host":                 {"MAIL_HOST", "SMTP_SERVER"},
	"mail.port":                 {"MAIL_PORT", "SMTP_PORT"},
	"mail.timeout_seconds":      {"MAIL_TIMEOUT_SECONDS"},
	"mail.disable_starttls":     {"MAIL_DISABLE_STARTTLS"},
	"app.name":                  {"APP_NAME"},
	"app.version":               {"APP_VERSION"},
	"app.server.http.address":   {"HTTP_ADDRESS"},
	"app.server.cors":           {"CORS_ORIGINS"},
	"app.maintenance.endpoints": {"MAINTENANCE_ENDPOINTS"},
	"instrument.log_level":      {"LOG_LEVEL"},
}

func (a *App) initConfig() error {
	// .env is optional; variables already set in the environment win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	cfg, err := config.NewViper(os.Getenv("CONFIG_PATH"),
		config.WithDefaults(configDefaults),
		config.WithEnvBindings(envBindings),
	)
	if err != nil {
		return fmt.Errorf("init config: %w", err)
	}

	a.config = cfg
	return nil
}

func (a *App) initInstrument() error {
	ins, err := instrument.New(a.ctx, &instrument.Config{
		Enabled:          a.config.GetBool("instrument.enabled"),
		ServiceName:      a.config.GetString("instrument.service_name"),
		ServiceVersion:   a.config.GetString("instrument.service_version"),
		Environment:      a.config.GetString("instrument.env"),
		OTLPEndpoint:     a.config.GetString("instrument.otlp_endpoint"),
		OTLPSecure:       a.config.GetBool("instrument.otlp_secure"),
		TraceSampleRatio: a.config.GetFloat64("instrument.trace_sample_ratio"),
		MetricsInterval:  a.config.GetSecond("instrument.metric_interval_seconds"),
		MaskFields:       a.config.GetArray("instrument.log_mask_fields"),
		LogLevel:         a.config.GetString("instrument.log_level"),
	})
	if err != nil {
		return fmt.Errorf("init instrumentation: %w", err)
	}

	a.ins = ins
	return nil
}

func (a *App) initLibraries() error {
	a.clock = clock.New()
	a.uuid = uid.NewUUID()
	a.emailID = uid.NewRandomUUID()

	v, err := validator.NewV10Validator()
	if err != nil {
		return fmt.Errorf("init validation v10 validator: %w", err)
	}
	a.validator = v

	return nil
}

func (a *App) initMail() error {
	a.creds = entity.MailCredentials{
		SenderAddress: a.config.GetString("mail.sender_address"),
		AppPassword:   a.config.GetString("mail.app_password"),
		SMTPHost:      a.config.GetString("mail.host"),
		SMTPPort:      a.config.GetInt("mail.port"),
	}

	if ok, msg := a.creds.Validate(); !ok {
		slog.Warn(msg)
	}

	client, err := mail.NewSMTP(mail.SMTPConfig{
		Host:            a.creds.SMTPHost,
		Port:            a.creds.SMTPPort,
		Username:        a.creds.SenderAddress,
		Password:        a.creds.AppPassword,
		From:            a.creds.SenderAddress,
		Timeout:         a.config.GetSecond("mail.timeout_seconds"),
		DisableStartTLS: a.config.GetBool("mail.disable_starttls"),
	})
	if err != nil {
		return fmt.Errorf("init mail: %w", err)
	}

	a.mail = client
	return nil
}

func (a *App) initHTTPServer() error {
	a.router = router.NewRouter(router.Config{
		Config:     a.config,
		UUID:       a.uuid,
		Instrument: a.ins,
	})

	a.handler = cors.New(cors.Options{
		AllowedOrigins: a.config.GetArray("app.server.cors"),
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{router.HeaderCorrelationID},
	}).Handler(a.router)

	a.httpServer = &http.Server{
		Addr:              a.config.GetString("app.server.http.address"),
		Handler:           a.handler,
		ReadTimeout:       a.config.GetSecond("app.server.http.read_timeout_seconds"),
		ReadHeaderTimeout: a.config.GetSecond("app.server.http.read_header_timeout_seconds"),
		WriteTimeout:      a.config.GetSecond("app.server.http.write_timeout_seconds"),
		IdleTimeout:       a.config.GetSecond("app.server.http.idle_timeout_seconds"),
	}

	return nil
}

func (a *App) initClosers() {
	a.closers = []struct {
		name string
		fn   func(context.Context) error
	}{
		{
			name: "Instrument",
			fn: func(ctx context.Context) error {
				if a.ins == nil {
					return nil
				}
				return a.ins.Shutdown(ctx)
			},
		},
		{
			name: "Mail",
			fn: func(context.Context) error {
				if a.mail == nil {
					return nil
				}
				return a.mail.Close()
			},
		},
		{
			name: "Config",
			fn: func(context.Context) error {
				if a.config == nil {
					return nil
				}
				return a.config.Close()
			},
		},
	}
}
