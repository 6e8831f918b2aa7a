package api

import (
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/bbernstein/nearstop/internal/models"
)

type APIResponse struct {
	ResponseType string `json:"responseType"`
	RequestID    string `json:"requestId,omitempty"`
}

func (r APIResponse) GetResponseType() string {
	return r.ResponseType
}

type LookupResponse struct {
	APIResponse
	PlaceName string              `json:"placeName"`
	Result    models.LookupResult `json:"result"`
	Context   models.PageContext  `json:"context"`
}

type StopView struct {
	models.Stop
	WheelchairAccessible bool `json:"wheelchairAccessible"`
}

type StopResponse struct {
	APIResponse
	Stop StopView `json:"stop"`
}

type ContextResponse struct {
	APIResponse
	Context models.PageContext `json:"context"`
}

type ErrorResponse struct {
	APIResponse
	Error string    `json:"error"`
	Kind  ErrorKind `json:"kind"`
}

func NewLookupResponse(requestID, placeName string, result models.LookupResult, pageContext models.PageContext) *LookupResponse {
	if result.Arrivals == nil {
		result.Arrivals = []int{}
	}
	return &LookupResponse{
		APIResponse: APIResponse{ResponseType: "lookup", RequestID: requestID},
		PlaceName:   placeName,
		Result:      result,
		Context:     pageContext,
	}
}

func NewStopResponse(requestID string, stop models.Stop) *StopResponse {
	return &StopResponse{
		APIResponse: APIResponse{ResponseType: "stop", RequestID: requestID},
		Stop: StopView{
			Stop:                 stop,
			WheelchairAccessible: stop.WheelchairAccessible(),
		},
	}
}

func NewContextResponse(requestID string, pageContext models.PageContext) *ContextResponse {
	return &ContextResponse{
		APIResponse: APIResponse{ResponseType: "context", RequestID: requestID},
		Context:     pageContext,
	}
}

func NewErrorResponse(message string, kind ErrorKind) *ErrorResponse {
	return &ErrorResponse{
		APIResponse: APIResponse{ResponseType: "error"},
		Error:       message,
		Kind:        kind,
	}
}

// Response helpers
func Success(body interface{}) (events.APIGatewayProxyResponse, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return Error("Internal Server Error", KindInternal)
	}

	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    defaultHeaders(),
		Body:       string(jsonBody),
	}, nil
}

// Error renders an error body with the status code mapped from kind.
func Error(message string, kind ErrorKind) (events.APIGatewayProxyResponse, error) {
	body, _ := json.Marshal(NewErrorResponse(message, kind))

	return events.APIGatewayProxyResponse{
		StatusCode: kind.StatusCode(),
		Headers:    defaultHeaders(),
		Body:       string(body),
	}, nil
}

// FromError classifies err and renders it. Upstream detail stays in the logs;
// callers only see the kind and a short message.
func FromError(err error) (events.APIGatewayProxyResponse, error) {
	kind := Classify(err)
	return Error(Message(err, kind), kind)
}

func defaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type":                "application/json",
		"Access-Control-Allow-Origin": "*",
	}
}
