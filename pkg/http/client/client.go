package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
)

type Response struct {
	StatusCode int
	Body       []byte
}

type Interface interface {
	Get(ctx context.Context, path string) (*Response, error)
	GetJSON(ctx context.Context, path string, v any) error
}

// Recorder receives one observation per upstream call.
type Recorder interface {
	ObserveUpstream(provider, outcome string, d time.Duration)
}

type Client struct {
	name       string
	baseURL    string
	httpClient *http.Client
	recorder   Recorder
	GetFunc    func(ctx context.Context, path string) (*Response, error)
}

var _ Interface = (*Client)(nil)

type Options struct {
	// Name labels log lines and metrics, e.g. "mapbox" or "mbta"
	Name     string
	BaseURL  string
	Timeout  time.Duration
	Recorder Recorder
}

func New(opts Options) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = 5 * time.Second
	}

	if opts.Name == "" {
		opts.Name = "upstream"
	}

	return &Client{
		name:    opts.Name,
		baseURL: opts.BaseURL,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		recorder: opts.Recorder,
	}
}

// Get performs a single GET. Transport failures come back as *TransportError;
// the status code is not inspected.
func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	if c.GetFunc != nil {
		return c.GetFunc(ctx, path)
	}

	var fullURL string
	if c.baseURL == "" {
		fullURL = path // If no base URL, treat path as full URL
	} else {
		fullURL = c.baseURL + path // Otherwise combine them
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, newTransportError(fullURL, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, newTransportError(fullURL, err)
	}
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			return
		}
	}(resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newTransportError(fullURL, err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       body,
	}, nil
}

// GetJSON fetches path and decodes the body into v. Numbers are decoded as
// json.Number when v holds interface values. Non-2xx statuses become
// *HTTPStatusError and undecodable bodies *DecodeError. There are no retries.
func (c *Client) GetJSON(ctx context.Context, path string, v any) error {
	start := time.Now()
	err := c.getJSON(ctx, path, v)
	elapsed := time.Since(start)

	outcome := outcomeOf(err)
	if c.recorder != nil {
		c.recorder.ObserveUpstream(c.name, outcome, elapsed)
	}

	event := log.Debug()
	if err != nil {
		event = log.Warn().Err(err)
	}
	event.Str("provider", c.name).
		Str("url", redact(c.baseURL+path)).
		Str("outcome", outcome).
		Dur("elapsed", elapsed).
		Msg("Upstream request")

	return err
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	resp, err := c.Get(ctx, path)
	if err != nil {
		return err
	}
	if resp == nil {
		return &TransportError{URL: redact(c.baseURL + path), Err: errors.New("no response")}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPStatusError{
			URL:        redact(c.baseURL + path),
			StatusCode: resp.StatusCode,
			Body:       truncate(resp.Body, 512),
		}
	}

	decoder := json.NewDecoder(bytes.NewReader(resp.Body))
	decoder.UseNumber()
	if err := decoder.Decode(v); err != nil {
		return &DecodeError{URL: redact(c.baseURL + path), Err: err}
	}

	return nil
}

func outcomeOf(err error) string {
	var transportErr *TransportError
	var statusErr *HTTPStatusError
	var decodeErr *DecodeError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &transportErr):
		return "transport"
	case errors.As(err, &statusErr):
		return "http_status"
	case errors.As(err, &decodeErr):
		return "decode"
	default:
		return "error"
	}
}

// newTransportError wraps err with the URL redacted, including the copy
// net/http embeds in *url.Error.
func newTransportError(fullURL string, err error) *TransportError {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = &url.Error{Op: urlErr.Op, URL: redact(urlErr.URL), Err: urlErr.Err}
	}
	return &TransportError{URL: redact(fullURL), Err: err}
}

// redact blanks query values so tokens and api keys never reach the logs.
func redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "<unparseable url>"
	}
	q := u.Query()
	for key := range q {
		q.Set(key, "xxx")
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n])
}
