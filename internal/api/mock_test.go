package api

import (
	"bytes"
	"io"
	"sync"

	fhttp "github.com/bogdanfinn/fhttp"
)

// MockHttpClient is a mock implementation of HTTPDoer
type MockHttpClient struct {
	Response *fhttp.Response
	Err      error

	// DoFunc, when set, takes precedence over Response and Err
	DoFunc func(req *fhttp.Request) (*fhttp.Response, error)

	mu       sync.Mutex
	requests []*fhttp.Request
	bodies   [][]byte
}

// Do implements the HTTPDoer interface
func (m *MockHttpClient) Do(req *fhttp.Request) (*fhttp.Response, error) {
	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
	}

	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.bodies = append(m.bodies, body)
	m.mu.Unlock()

	if m.DoFunc != nil {
		return m.DoFunc(req)
	}
	return m.Response, m.Err
}

// Requests returns the number of requests made
func (m *MockHttpClient) Requests() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// LastRequest returns the most recent request and its body
func (m *MockHttpClient) LastRequest() (*fhttp.Request, []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return nil, nil
	}
	return m.requests[len(m.requests)-1], m.bodies[len(m.bodies)-1]
}

// MockResponseBody is a closable body that records whether it was closed
type MockResponseBody struct {
	*bytes.Reader
	Closed bool
}

// Close implements io.Closer
func (b *MockResponseBody) Close() error {
	b.Closed = true
	return nil
}

// NewMockResponseBody wraps data in a MockResponseBody
func NewMockResponseBody(data []byte) *MockResponseBody {
	return &MockResponseBody{Reader: bytes.NewReader(data)}
}

// NewMockHttpClient creates a new MockHttpClient with a fixed response
func NewMockHttpClient(body []byte, statusCode int) *MockHttpClient {
	return &MockHttpClient{
		Response: &fhttp.Response{
			StatusCode: statusCode,
			Body:       NewMockResponseBody(body),
			Header:     make(fhttp.Header),
		},
	}
}

// NewMockHttpClientWithError creates a new MockHttpClient that returns an error
func NewMockHttpClientWithError(err error) *MockHttpClient {
	return &MockHttpClient{Err: err}
}
