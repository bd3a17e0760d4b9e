package testutil

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/paperstack/paperstack/internal/httpclient"
)

var _ httpclient.Client = (*MockHTTPClient)(nil)

// MockHTTPClient implements a mock HTTP client for testing
type MockHTTPClient struct {
	mu       sync.RWMutex
	routes   map[string]MockResponse
	requests []*httpclient.Request
}

// MockResponse represents a mock HTTP response
type MockResponse struct {
	StatusCode int
	Body       []byte
	Headers    map[string]string
}

// NewMockHTTPClient creates a new mock HTTP client
func NewMockHTTPClient() *MockHTTPClient {
	return &MockHTTPClient{
		routes: make(map[string]MockResponse),
	}
}

// RegisterResponse registers a mock response for a method and URL suffix
func (m *MockHTTPClient) RegisterResponse(method, url string, resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes[method+" "+url] = resp
}

// Send implements the httpclient.Client interface
func (m *MockHTTPClient) Send(ctx context.Context, req *httpclient.Request) (*httpclient.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)

	for route, resp := range m.routes {
		method, suffix, _ := strings.Cut(route, " ")
		if method != req.Method || !strings.HasSuffix(req.URL, suffix) {
			continue
		}
		if resp.StatusCode >= http.StatusBadRequest {
			return nil, httpclient.NewError(resp.StatusCode, resp.Body)
		}
		return &httpclient.Response{
			StatusCode: resp.StatusCode,
			Body:       resp.Body,
			Headers:    resp.Headers,
		}, nil
	}

	return nil, httpclient.NewError(http.StatusNotFound, []byte("Not Found"))
}

// Requests returns every request sent so far
func (m *MockHTTPClient) Requests() []*httpclient.Request {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*httpclient.Request(nil), m.requests...)
}

// Clear removes all registered responses and recorded requests
func (m *MockHTTPClient) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes = make(map[string]MockResponse)
	m.requests = nil
}
