package handler

import (
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/bbernstein/nearstop/internal/api"
)

// requestLogger returns the request id and a logger tagged with it. API
// Gateway supplies an id; local and CLI requests get a fresh one.
func requestLogger(request events.APIGatewayProxyRequest) (string, zerolog.Logger) {
	requestID := request.RequestContext.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}

	logger := log.With().
		Str("request_id", requestID).
		Str("path", request.Path).
		Logger()

	return requestID, logger
}

// logFailure logs at warn for caller mistakes and error for everything else.
func logFailure(logger zerolog.Logger, err error, msg string) {
	kind := api.Classify(err)
	event := logger.Error()
	if kind.StatusCode() < http.StatusInternalServerError {
		event = logger.Warn()
	}
	event.Err(err).Str("kind", string(kind)).Msg(msg)
}
