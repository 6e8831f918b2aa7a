package handler

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sourcegraph/conc"

	"github.com/bbernstein/nearstop/internal/api"
	"github.com/bbernstein/nearstop/internal/models"
)

type NearestHandler struct {
	stopFinder models.StopFinder
	pages      PageContextBuilder
}

func NewNearestHandler(finder models.StopFinder, pages PageContextBuilder) *NearestHandler {
	return &NearestHandler{
		stopFinder: finder,
		pages:      pages,
	}
}

// HandleRequest resolves the place_name parameter to its nearest stop. The
// page context is gathered beside the lookup and never affects its outcome.
func (h *NearestHandler) HandleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	requestID, logger := requestLogger(request)

	placeName, err := api.ParsePlaceName(request.QueryStringParameters)
	if err != nil {
		logFailure(logger, err, "Rejected lookup request")
		return api.FromError(err)
	}

	var (
		result  *models.LookupResult
		lookErr error
		page    models.PageContext
	)

	var wg conc.WaitGroup
	wg.Go(func() {
		result, lookErr = h.stopFinder.FindNearestStop(ctx, placeName)
	})
	if h.pages != nil {
		wg.Go(func() {
			page = h.pages.Build(ctx)
		})
	}
	wg.Wait()

	if lookErr != nil {
		logFailure(logger.With().Str("place", placeName).Logger(), lookErr, "Lookup failed")
		return api.FromError(lookErr)
	}

	logger.Info().
		Str("place", placeName).
		Str("station", result.StationName).
		Ints("arrivals", result.Arrivals).
		Msg("Lookup served")

	return api.Success(api.NewLookupResponse(requestID, placeName, *result, page))
}
