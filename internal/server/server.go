// Package server exposes the Lambda handlers over a local fiber server.
package server

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bbernstein/nearstop/internal/metrics"
)

// LambdaHandler is satisfied by every handler in internal/handler.
type LambdaHandler interface {
	HandleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)
}

type Routes struct {
	Index   LambdaHandler
	Nearest LambdaHandler
	Stops   LambdaHandler
	Metrics *metrics.Metrics
}

func New(routes Routes) *fiber.App {
	webApp := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		// handlers keep query values past the request
		Immutable: true,
	})
	webApp.Use(NewLogger(routes.Metrics))

	webApp.Get("/", lambdaRoute(routes.Index))
	webApp.Get("/nearest", lambdaRoute(routes.Nearest))
	webApp.Get("/stops", lambdaRoute(routes.Stops))

	if routes.Metrics != nil {
		webApp.Get("/metrics", adaptor.HTTPHandler(
			promhttp.HandlerFor(routes.Metrics.Registry, promhttp.HandlerOpts{}),
		))
	}

	return webApp
}

// lambdaRoute converts the fiber request into the API Gateway shape so the
// local server runs exactly the code deployed behind Lambda.
func lambdaRoute(h LambdaHandler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		request := events.APIGatewayProxyRequest{
			HTTPMethod:            c.Method(),
			Path:                  c.Path(),
			QueryStringParameters: c.Queries(),
			RequestContext: events.APIGatewayProxyRequestContext{
				RequestID: c.Get(fiber.HeaderXRequestID),
			},
		}

		response, err := h.HandleRequest(c.UserContext(), request)
		if err != nil {
			return err
		}

		for key, value := range response.Headers {
			c.Set(key, value)
		}
		return c.Status(response.StatusCode).SendString(response.Body)
	}
}
