// Command lambda serves the mailer API behind AWS API Gateway.
package main

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/shandysiswandi/gomailer/internal/app"
	"github.com/shandysiswandi/gomailer/internal/pkg/serverless"
)

const initFailureBody = `{"error":"Failed to initialize application"}`

func main() {
	lambda.Start(handler())
}

func handler() func(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	application, err := app.New()
	if err != nil {
		slog.Error("failed to initialize application", "error", err)
		return initFailed
	}

	return serverless.NewProxy(application.Handler()).Handle
}

func initFailed(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return serverless.JSONResponse(http.StatusInternalServerError, initFailureBody), nil
}
