package handler

import (
	"context"

	"github.com/aws/aws-lambda-go/events"

	"github.com/bbernstein/nearstop/internal/api"
)

// IndexHandler serves the landing page context.
type IndexHandler struct {
	pages PageContextBuilder
}

func NewIndexHandler(pages PageContextBuilder) *IndexHandler {
	return &IndexHandler{pages: pages}
}

func (h *IndexHandler) HandleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	requestID, logger := requestLogger(request)

	page := h.pages.Build(ctx)
	logger.Debug().Str("weather", page.Weather).Str("holiday", page.Holiday).Msg("Index served")

	return api.Success(api.NewContextResponse(requestID, page))
}
