package api

import (
	"errors"
	"net/http"

	"github.com/bbernstein/nearstop/internal/geocode"
	"github.com/bbernstein/nearstop/internal/models"
	"github.com/bbernstein/nearstop/pkg/http/client"
)

// ErrorKind tags an error body so callers can tell failures apart.
type ErrorKind string

const (
	KindTransport         ErrorKind = "transport"
	KindHTTPStatus        ErrorKind = "http_status"
	KindDecode            ErrorKind = "decode"
	KindNoMatch           ErrorKind = "no_match"
	KindMalformedResponse ErrorKind = "malformed_response"
	KindInvalidRequest    ErrorKind = "invalid_request"
	KindNotFound          ErrorKind = "not_found"
	KindInternal          ErrorKind = "internal"
)

func (k ErrorKind) StatusCode() int {
	switch k {
	case KindNoMatch, KindNotFound:
		return http.StatusNotFound
	case KindInvalidRequest:
		return http.StatusBadRequest
	case KindTransport, KindHTTPStatus, KindDecode, KindMalformedResponse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Upstream reports whether the failure happened at a provider.
func (k ErrorKind) Upstream() bool {
	return k.StatusCode() == http.StatusBadGateway
}

// InvalidRequestError marks a problem with the caller's input.
type InvalidRequestError struct {
	Message string
}

func (e InvalidRequestError) Error() string {
	return e.Message
}

// Classify maps an error from any pipeline stage to its kind.
func Classify(err error) ErrorKind {
	var (
		transportErr  *client.TransportError
		statusErr     *client.HTTPStatusError
		decodeErr     *client.DecodeError
		noMatchErr    *models.NoMatchError
		malformedErr  *models.MalformedResponseError
		invalidReqErr InvalidRequestError
		invalidCoords InvalidCoordinatesError
	)

	switch {
	case err == nil:
		return ""
	case errors.As(err, &noMatchErr):
		return KindNoMatch
	case errors.As(err, &malformedErr):
		return KindMalformedResponse
	case errors.As(err, &transportErr):
		return KindTransport
	case errors.As(err, &statusErr):
		return KindHTTPStatus
	case errors.As(err, &decodeErr):
		return KindDecode
	case errors.As(err, &invalidReqErr),
		errors.As(err, &invalidCoords),
		errors.Is(err, geocode.ErrEmptyPlaceName):
		return KindInvalidRequest
	default:
		return KindInternal
	}
}

// Message is the caller-facing text for err.
func Message(err error, kind ErrorKind) string {
	switch kind {
	case KindNoMatch, KindInvalidRequest, KindNotFound:
		return err.Error()
	case KindTransport:
		return "Upstream provider unreachable"
	case KindHTTPStatus:
		var statusErr *client.HTTPStatusError
		if errors.As(err, &statusErr) {
			return "Upstream provider returned " + http.StatusText(statusErr.StatusCode)
		}
		return "Upstream provider error"
	case KindDecode, KindMalformedResponse:
		return "Upstream provider sent an unexpected response"
	default:
		return "Internal Server Error"
	}
}
