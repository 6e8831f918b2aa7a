package main

import (
	"context"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog/log"

	"github.com/bbernstein/nearstop/internal/app"
	"github.com/bbernstein/nearstop/internal/config"
	"github.com/bbernstein/nearstop/internal/handler"
)

var (
	lambdaStart  = lambda.Start // Allow mocking of lambda.Start in tests
	stopsHandler *handler.StopsHandler
	setupOnce    sync.Once
)

func setup() {
	setupOnce.Do(func() {
		cfg := config.LoadFromEnv()
		cfg.InitializeLogging()

		if err := cfg.Validate(); err != nil {
			log.Fatal().Err(err).Msg("Invalid configuration")
		}

		stopsHandler = app.New(cfg, nil, nil).StopsHandler
	})
}

func handleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return stopsHandler.HandleRequest(ctx, request)
}

func main() {
	setup()
	lambdaStart(handleRequest)
}
