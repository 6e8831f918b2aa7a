package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedCall struct {
	provider string
	outcome  string
}

type fakeRecorder struct {
	mu    sync.Mutex
	calls []recordedCall
}

func (r *fakeRecorder) ObserveUpstream(provider, outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, recordedCall{provider: provider, outcome: outcome})
}

func TestClientCreation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		baseURL     string
		timeout     time.Duration
		wantTimeout time.Duration
		clientName  string
		wantName    string
	}{
		{
			name:        "default configuration",
			baseURL:     "https://api.example.com",
			timeout:     0,
			wantTimeout: 5 * time.Second,
			wantName:    "upstream",
		},
		{
			name:        "custom configuration",
			baseURL:     "https://api.test.com",
			timeout:     2 * time.Second,
			wantTimeout: 2 * time.Second,
			clientName:  "mbta",
			wantName:    "mbta",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := New(Options{
				Name:    tt.clientName,
				BaseURL: tt.baseURL,
				Timeout: tt.timeout,
			})

			assert.Equal(t, tt.baseURL, client.baseURL)
			assert.Equal(t, tt.wantTimeout, client.httpClient.Timeout)
			assert.Equal(t, tt.wantName, client.name)
		})
	}
}

func TestRequestFormatting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		baseURL  string
		path     string
		wantURL  string
		wantCode int
	}{
		{
			name:     "absolute URL",
			baseURL:  "",
			path:     "https://api.example.com/test",
			wantURL:  "/test",
			wantCode: http.StatusOK,
		},
		{
			name:     "relative path with base URL",
			baseURL:  "https://api.example.com",
			path:     "/test",
			wantURL:  "/test",
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.wantURL, r.URL.String())
				assert.Equal(t, "application/json", r.Header.Get("Accept"))
				w.WriteHeader(tt.wantCode)
			}))
			defer server.Close()

			if tt.baseURL == "" {
				tt.path = server.URL + "/test"
			} else {
				tt.baseURL = server.URL
			}

			client := New(Options{
				BaseURL: tt.baseURL,
				Timeout: 5 * time.Second,
			})

			resp, err := client.Get(context.Background(), tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, resp.StatusCode)
		})
	}
}

func TestTimeout(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(Options{
		BaseURL: server.URL,
		Timeout: 100 * time.Millisecond,
	})

	_, err := client.Get(context.Background(), "/test")
	require.Error(t, err)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Contains(t, err.Error(), "Client.Timeout exceeded")
}

func TestGetJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		status      int
		body        string
		wantErr     bool
		checkErr    func(t *testing.T, err error)
		wantOutcome string
	}{
		{
			name:        "success",
			status:      http.StatusOK,
			body:        `{"name":"Park Street","code":1}`,
			wantOutcome: "ok",
		},
		{
			name:    "client error status",
			status:  http.StatusUnauthorized,
			body:    `{"error":"bad key"}`,
			wantErr: true,
			checkErr: func(t *testing.T, err error) {
				var statusErr *HTTPStatusError
				require.ErrorAs(t, err, &statusErr)
				assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
				assert.Contains(t, statusErr.Body, "bad key")
			},
			wantOutcome: "http_status",
		},
		{
			name:    "server error status",
			status:  http.StatusServiceUnavailable,
			body:    ``,
			wantErr: true,
			checkErr: func(t *testing.T, err error) {
				var statusErr *HTTPStatusError
				require.ErrorAs(t, err, &statusErr)
				assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
			},
			wantOutcome: "http_status",
		},
		{
			name:    "invalid json",
			status:  http.StatusOK,
			body:    `<html>nope</html>`,
			wantErr: true,
			checkErr: func(t *testing.T, err error) {
				var decodeErr *DecodeError
				require.ErrorAs(t, err, &decodeErr)
			},
			wantOutcome: "decode",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			recorder := &fakeRecorder{}
			client := New(Options{
				Name:     "test",
				BaseURL:  server.URL,
				Timeout:  time.Second,
				Recorder: recorder,
			})

			var got struct {
				Name string `json:"name"`
				Code int    `json:"code"`
			}
			err := client.GetJSON(context.Background(), "/thing?api_key=secret", &got)

			if tt.wantErr {
				require.Error(t, err)
				tt.checkErr(t, err)
				assert.NotContains(t, err.Error(), "secret")
			} else {
				require.NoError(t, err)
				assert.Equal(t, "Park Street", got.Name)
				assert.Equal(t, 1, got.Code)
			}

			require.Len(t, recorder.calls, 1)
			assert.Equal(t, recordedCall{provider: "test", outcome: tt.wantOutcome}, recorder.calls[0])
		})
	}
}

func TestGetJSON_TransportError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	serverURL := server.URL
	server.Close()

	client := New(Options{BaseURL: serverURL, Timeout: time.Second})

	var v map[string]any
	err := client.GetJSON(context.Background(), "/test", &v)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
}

func TestGetJSON_TransportErrorHidesCredentials(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	serverURL := server.URL
	server.Close()

	client := New(Options{BaseURL: serverURL, Timeout: time.Second})

	var v map[string]any
	err := client.GetJSON(context.Background(), "/stops?api_key=SECRET123&sort=distance", &v)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.NotContains(t, err.Error(), "SECRET123")
	assert.NotContains(t, transportErr.URL, "SECRET123")

	// the dial failure is still reachable
	var urlErr *url.Error
	require.ErrorAs(t, err, &urlErr)
	assert.NotNil(t, urlErr.Err)
}

func TestNewTransportError(t *testing.T) {
	t.Parallel()

	full := "https://api-v3.mbta.com/stops?api_key=SECRET123"
	wrapped := fmt.Errorf("reading body: %w", &url.Error{Op: "Get", URL: full, Err: context.DeadlineExceeded})

	err := newTransportError(full, wrapped)

	assert.NotContains(t, err.Error(), "SECRET123")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	plain := newTransportError(full, errors.New("no response"))
	assert.Equal(t, "requesting https://api-v3.mbta.com/stops?api_key=xxx: no response", plain.Error())
}

func TestGetJSON_UsesGetFunc(t *testing.T) {
	t.Parallel()

	client := &Client{
		GetFunc: func(_ context.Context, path string) (*Response, error) {
			assert.Equal(t, "/coords", path)
			return &Response{StatusCode: http.StatusOK, Body: []byte(`{"lat":42.35519}`)}, nil
		},
	}

	var v map[string]any
	require.NoError(t, client.GetJSON(context.Background(), "/coords", &v))
	assert.Equal(t, "42.35519", v["lat"].(interface{ String() string }).String())
}

func TestGetJSON_GetFuncError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	client := &Client{
		GetFunc: func(_ context.Context, _ string) (*Response, error) {
			return nil, boom
		},
	}

	var v map[string]any
	err := client.GetJSON(context.Background(), "/x", &v)
	assert.ErrorIs(t, err, boom)
}

func TestRedact(t *testing.T) {
	t.Parallel()

	got := redact("https://api.example.com/stops?api_key=secret&filter%5Bstop%5D=place-pktrm")
	assert.NotContains(t, got, "secret")
	assert.NotContains(t, got, "place-pktrm")
	assert.Contains(t, got, "https://api.example.com/stops?")
}

func BenchmarkHTTPClient(b *testing.B) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	client := New(Options{
		BaseURL: server.URL,
		Timeout: 5 * time.Second,
	})

	ctx := context.Background()

	b.Run("Sequential Requests", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			var v map[string]any
			err := client.GetJSON(ctx, "/test", &v)
			require.NoError(b, err)
		}
	})
}
