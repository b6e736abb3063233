package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shandysiswandi/gomailer/internal/app"
)

// @title           Email Sending API
// @version         1.0.0
// @description     Gomailer relays plain-text emails through an authenticated SMTP server.
// @license.name    MIT
// @license.url     https://mit-license.org/
// @server          http://localhost:5000
func main() {
	application, err := app.New()
	if err != nil {
		slog.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}

	<-application.Start()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	application.Stop(ctx)
	cancel()

	if application.Err() != nil {
		os.Exit(1)
	}
}
