package httputil

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/wonny/goldcross/pkg/config"
	"github.com/wonny/goldcross/pkg/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:      "development",
		LogLevel: "error", // Reduce log noise
		Providers: config.ProviderConfig{
			RequestTimeout: 10 * time.Second,
		},
	}
}

func TestNew(t *testing.T) {
	cfg := testConfig()
	client := New(cfg, logger.Nop())
	if client == nil {
		t.Fatal("Expected client to be created")
	}

	if client.httpClient == nil {
		t.Error("Expected http.Client to be initialized")
	}

	if client.httpClient.Timeout != cfg.Providers.RequestTimeout {
		t.Errorf("Expected timeout=%v, got %v", cfg.Providers.RequestTimeout, client.httpClient.Timeout)
	}

	if client.retryConfig.MaxRetries != 3 {
		t.Errorf("Expected MaxRetries=3, got %d", client.retryConfig.MaxRetries)
	}
}

func TestNewWithTimeout(t *testing.T) {
	timeout := 5 * time.Second
	client := NewWithTimeout(testConfig(), logger.Nop(), timeout)

	if client.httpClient.Timeout != timeout {
		t.Errorf("Expected timeout=%v, got %v", timeout, client.httpClient.Timeout)
	}
}

func TestWithRetry(t *testing.T) {
	client := New(testConfig(), logger.Nop()).WithRetry(5, 2*time.Second)

	if client.retryConfig.MaxRetries != 5 {
		t.Errorf("Expected MaxRetries=5, got %d", client.retryConfig.MaxRetries)
	}

	if client.retryConfig.InitialDelay != 2*time.Second {
		t.Errorf("Expected InitialDelay=2s, got %v", client.retryConfig.InitialDelay)
	}
}

func TestDisableRetry(t *testing.T) {
	client := New(testConfig(), logger.Nop()).DisableRetry()

	if client.retryConfig.Enabled {
		t.Error("Expected retry to be disabled")
	}
}

func TestGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("Expected GET request, got %s", r.Method)
		}
		if r.Header.Get("User-Agent") == "" {
			t.Error("Expected User-Agent header to be set")
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	client := New(testConfig(), logger.Nop())

	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if string(body) != `{"status":"ok"}` {
		t.Errorf("Unexpected body: %s", body)
	}
}

func TestGetRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(testConfig(), logger.Nop()).WithRetry(3, 10*time.Millisecond)

	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200 after retries, got %d", resp.StatusCode)
	}

	if got := calls.Load(); got != 3 {
		t.Errorf("Expected 3 attempts, got %d", got)
	}
}

type trackedBody struct {
	closed *atomic.Bool
}

func (b trackedBody) Read([]byte) (int, error) { return 0, io.EOF }

func (b trackedBody) Close() error {
	b.closed.Store(true)
	return nil
}

// scriptedTransport serves one canned status per call and records
// whether each handed-out body was closed.
type scriptedTransport struct {
	statuses []int
	calls    int
	closed   []*atomic.Bool
}

func (s *scriptedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	status := s.statuses[s.calls]
	s.calls++
	closed := &atomic.Bool{}
	s.closed = append(s.closed, closed)
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{},
		Body:       trackedBody{closed: closed},
		Request:    req,
	}, nil
}

func TestGetClosesAbandonedRetryBodies(t *testing.T) {
	transport := &scriptedTransport{statuses: []int{
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusOK,
	}}

	client := New(testConfig(), logger.Nop()).WithRetry(2, time.Millisecond)
	client.httpClient.Transport = transport

	resp, err := client.Get(context.Background(), "http://upstream.test/kline")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	resp.Body.Close()

	if transport.calls != 3 {
		t.Fatalf("Expected 3 attempts, got %d", transport.calls)
	}

	for i, closed := range transport.closed[:2] {
		if !closed.Load() {
			t.Errorf("Expected abandoned body of attempt %d to be closed", i+1)
		}
	}
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		statusCode int
		want       bool
	}{
		{http.StatusOK, false},
		{http.StatusNotFound, false},
		{http.StatusTooManyRequests, true},
		{http.StatusInternalServerError, true},
		{http.StatusBadGateway, true},
	}

	for _, tt := range tests {
		if got := IsRetryableError(tt.statusCode); got != tt.want {
			t.Errorf("IsRetryableError(%d) = %v, want %v", tt.statusCode, got, tt.want)
		}
	}
}
