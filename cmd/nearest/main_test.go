package main

import (
	"context"
	"encoding/json"
	"net/http"
	"reflect"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bbernstein/nearstop/internal/handler"
	"github.com/bbernstein/nearstop/internal/models"
)

type mockStopFinder struct {
	findNearestStopFn func(ctx context.Context, placeName string) (*models.LookupResult, error)
}

func (m *mockStopFinder) FindNearestStop(ctx context.Context, placeName string) (*models.LookupResult, error) {
	return m.findNearestStopFn(ctx, placeName)
}

func TestLambdaInit(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("MAPBOX_TOKEN", "pk.test")
	t.Setenv("MBTA_API_KEY", "mbta-test")

	originalStartFn := lambdaStart
	defer func() { lambdaStart = originalStartFn }()

	var startCalled bool
	lambdaStart = func(h interface{}) {
		startCalled = true

		// Verify the handler has the API Gateway proxy signature
		handlerType := reflect.TypeOf(h)
		require.Equal(t, reflect.Func, handlerType.Kind())

		contextInterface := reflect.TypeOf((*context.Context)(nil)).Elem()
		errorInterface := reflect.TypeOf((*error)(nil)).Elem()

		require.Equal(t, 2, handlerType.NumIn())
		require.Equal(t, 2, handlerType.NumOut())
		assert.True(t, handlerType.In(0).Implements(contextInterface))
		assert.Equal(t, reflect.TypeOf(events.APIGatewayProxyRequest{}), handlerType.In(1))
		assert.Equal(t, reflect.TypeOf(events.APIGatewayProxyResponse{}), handlerType.Out(0))
		assert.True(t, handlerType.Out(1).Implements(errorInterface))
	}

	main()

	assert.True(t, startCalled, "Lambda start was not called")
	assert.NotNil(t, nearestHandler)
}

func TestHandleRequest(t *testing.T) {
	original := nearestHandler
	defer func() { nearestHandler = original }()

	nearestHandler = handler.NewNearestHandler(&mockStopFinder{
		findNearestStopFn: func(ctx context.Context, placeName string) (*models.LookupResult, error) {
			return &models.LookupResult{StationName: "Park Street", WheelchairAccessible: true, Arrivals: []int{7}}, nil
		},
	}, nil)

	response, err := handleRequest(context.Background(), events.APIGatewayProxyRequest{
		QueryStringParameters: map[string]string{"place_name": "Boston Common"},
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, response.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(response.Body), &body))
	assert.Equal(t, "lookup", body["responseType"])
	assert.Equal(t, "Park Street", body["result"].(map[string]interface{})["stationName"])
}
