package handler

import (
	"context"

	"github.com/aws/aws-lambda-go/events"

	"github.com/bbernstein/nearstop/internal/api"
	"github.com/bbernstein/nearstop/internal/models"
)

type StopsHandler struct {
	stopLocator models.StopLocator
}

func NewStopsHandler(locator models.StopLocator) *StopsHandler {
	return &StopsHandler{
		stopLocator: locator,
	}
}

func (h *StopsHandler) HandleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	requestID, logger := requestLogger(request)

	coords, err := api.ParseCoordinates(request.QueryStringParameters)
	if err != nil {
		logFailure(logger, err, "Rejected stop request")
		return api.FromError(err)
	}

	stop, err := h.stopLocator.NearestStop(ctx, coords)
	if err != nil {
		logFailure(logger, err, "Stop search failed")
		return api.FromError(err)
	}
	if stop == nil {
		logger.Info().Str("lat", coords.Latitude).Str("lon", coords.Longitude).Msg("No stop nearby")
		return api.Error(models.NoStationFoundName, api.KindNotFound)
	}

	return api.Success(api.NewStopResponse(requestID, *stop))
}
