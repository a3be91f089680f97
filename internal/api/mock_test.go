package api

import (
	"io"
	"strings"
	"sync"

	fhttp "github.com/bogdanfinn/fhttp"
)

// mockHTTPClient is a mock implementation of httpDoer for testing
type mockHTTPClient struct {
	Response *fhttp.Response
	Err      error

	// Block, when set, makes Do wait for the request context to end
	Block bool

	mu          sync.Mutex
	lastRequest *fhttp.Request
	lastBody    string
	closedIdle  bool
}

// Do implements httpDoer
func (m *mockHTTPClient) Do(req *fhttp.Request) (*fhttp.Response, error) {
	m.mu.Lock()
	m.lastRequest = req
	if req.Body != nil {
		data, _ := io.ReadAll(req.Body)
		m.lastBody = string(data)
	}
	m.mu.Unlock()

	if m.Block {
		<-req.Context().Done()
		return nil, req.Context().Err()
	}
	return m.Response, m.Err
}

// CloseIdleConnections implements httpDoer
func (m *mockHTTPClient) CloseIdleConnections() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closedIdle = true
}

// newMockHTTPClient creates a mock returning body with the given status
func newMockHTTPClient(body string, statusCode int) *mockHTTPClient {
	return &mockHTTPClient{
		Response: &fhttp.Response{
			StatusCode: statusCode,
			Body:       io.NopCloser(strings.NewReader(body)),
			Header:     make(fhttp.Header),
		},
	}
}

// newMockHTTPClientWithError creates a mock whose Do fails with err
func newMockHTTPClientWithError(err error) *mockHTTPClient {
	return &mockHTTPClient{Err: err}
}
