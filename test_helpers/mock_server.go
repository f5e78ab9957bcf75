package test_helpers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"
)

// MockServer provides a configurable mock Medium API server for testing.
// Responses are keyed by method and path, e.g. "GET /v1/me".
type MockServer struct {
	server *httptest.Server

	mu          sync.RWMutex
	responses   map[string]*MockResponse
	defaultResp *MockResponse
	delay       time.Duration

	logMu      sync.Mutex
	requestLog []RequestEntry
	callCount  map[string]int
}

// RequestEntry logs incoming requests for assertions
type RequestEntry struct {
	Method       string
	Path         string
	Headers      http.Header
	Body         string
	Timestamp    time.Time
	ResponseCode int
}

// MockResponse defines a mock API response
type MockResponse struct {
	Status  int
	Body    string
	Headers map[string]string
	Delay   time.Duration
}

// NewMockServer creates a new mock server instance. Unknown routes answer
// 404 with a Medium error envelope.
func NewMockServer() *MockServer {
	ms := &MockServer{
		responses: make(map[string]*MockResponse),
		callCount: make(map[string]int),
		defaultResp: &MockResponse{
			Status: http.StatusNotFound,
			Body:   `{"errors":[{"message":"Not Found","code":404}]}`,
		},
	}
	ms.server = httptest.NewServer(ms)
	return ms
}

// NewMediumMockServer creates a mock server pre-configured with the common
// Medium endpoints for a single user.
func NewMediumMockServer() *MockServer {
	ms := NewMockServer()
	ms.SetupDefaults()
	return ms
}

// URL returns the base URL of the mock server
func (ms *MockServer) URL() string {
	return ms.server.URL
}

// Close shuts down the mock server
func (ms *MockServer) Close() {
	ms.server.Close()
}

func routeKey(method, path string) string {
	return method + " " + path
}

// SetResponse configures a response for a method and path
func (ms *MockServer) SetResponse(method, path string, response *MockResponse) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.responses[routeKey(method, path)] = response
}

// SetJSON is shorthand for a JSON response with the given status.
func (ms *MockServer) SetJSON(method, path string, status int, body string) {
	ms.SetResponse(method, path, &MockResponse{
		Status:  status,
		Body:    body,
		Headers: map[string]string{"Content-Type": "application/json"},
	})
}

// SetDefaultResponse configures the response for unknown routes
func (ms *MockServer) SetDefaultResponse(response *MockResponse) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.defaultResp = response
}

// SetDelay adds delay to all responses
func (ms *MockServer) SetDelay(delay time.Duration) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.delay = delay
}

// SetupError answers every route with a Medium error envelope.
func (ms *MockServer) SetupError(statusCode int, message string, code int) {
	ms.mu.Lock()
	ms.responses = make(map[string]*MockResponse)
	ms.mu.Unlock()

	ms.SetDefaultResponse(&MockResponse{
		Status:  statusCode,
		Body:    fmt.Sprintf(`{"errors":[{"message":%q,"code":%d}]}`, message, code),
		Headers: map[string]string{"Content-Type": "application/json"},
	})
}

// SetupDefaults configures the token endpoint and the read endpoints for
// MockUserID and MockPublicationID.
func (ms *MockServer) SetupDefaults() {
	ms.SetJSON(http.MethodPost, "/v1/oauth/tokens", http.StatusCreated,
		`{"token_type":"Bearer","access_token":"`+MockAccessToken+`","refresh_token":"`+MockRefreshToken+`","scope":["basicProfile","publishPost"],"expires_at":4102444800000}`)
	ms.SetJSON(http.MethodGet, "/v1/me", http.StatusOK,
		`{"data":{"id":"`+MockUserID+`","username":"majelbstoat","name":"Jamie Talbot","url":"https://medium.com/@majelbstoat","imageUrl":"https://images.medium.com/0*fkfQiTzT7TlUGGyI.png"}}`)
	ms.SetJSON(http.MethodGet, "/v1/users/"+MockUserID+"/posts", http.StatusOK,
		`{"data":[{"id":"e6f36a","title":"Liverpool FC","authorId":"`+MockUserID+`","tags":["football"],"url":"https://medium.com/@majelbstoat/liverpool-fc-e6f36a","publishStatus":"public","publishedAt":1442286338435,"license":"all-rights-reserved"}]}`)
	ms.SetJSON(http.MethodPost, "/v1/users/"+MockUserID+"/posts", http.StatusCreated,
		`{"data":{"id":"e6f36a","title":"Liverpool FC","authorId":"`+MockUserID+`","publishStatus":"draft"}}`)
	ms.SetJSON(http.MethodGet, "/v1/users/"+MockUserID+"/publications", http.StatusOK,
		`{"data":[{"id":"`+MockPublicationID+`","name":"About Medium","description":"What is this thing and how does it work?","url":"https://medium.com/about","imageUrl":"https://cdn-images-1.medium.com/fit/c/200/200/0*ae1jbP_od0W6EulE.jpeg"}]}`)
	ms.SetJSON(http.MethodGet, "/v1/publications/"+MockPublicationID+"/contributors", http.StatusOK,
		`{"data":[{"publicationId":"`+MockPublicationID+`","userId":"`+MockUserID+`","role":"editor"}]}`)
	ms.SetJSON(http.MethodPost, "/v1/publications/"+MockPublicationID+"/posts", http.StatusCreated,
		`{"data":{"id":"f1a2b3","title":"Liverpool FC","authorId":"`+MockUserID+`","publicationId":"`+MockPublicationID+`","publishStatus":"draft"}}`)
}

// Fixture identifiers served by SetupDefaults.
const (
	MockUserID        = "5303d74c64f66366f00cb9b2a94f3251bf5"
	MockPublicationID = "b969ac62a46b"
	MockAccessToken   = "mock_access_token"
	MockRefreshToken  = "mock_refresh_token"
)

// ServeHTTP implements http.Handler
func (ms *MockServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	entry := RequestEntry{
		Method:    r.Method,
		Path:      r.URL.Path,
		Headers:   r.Header.Clone(),
		Timestamp: time.Now(),
	}
	if r.Body != nil {
		body, _ := io.ReadAll(r.Body)
		entry.Body = string(body)
	}

	ms.mu.RLock()
	response, exists := ms.responses[routeKey(r.Method, r.URL.Path)]
	if !exists {
		response = ms.defaultResp
	}
	delay := ms.delay + response.Delay
	ms.mu.RUnlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
		}
	}

	// Logged before writing so callers see the entry once they have the response.
	entry.ResponseCode = response.Status
	ms.logMu.Lock()
	ms.requestLog = append(ms.requestLog, entry)
	ms.callCount[routeKey(r.Method, r.URL.Path)]++
	ms.logMu.Unlock()

	for key, value := range response.Headers {
		w.Header().Set(key, value)
	}
	w.WriteHeader(response.Status)
	_, _ = w.Write([]byte(response.Body))
}

// GetRequestLog returns a copy of the request log
func (ms *MockServer) GetRequestLog() []RequestEntry {
	ms.logMu.Lock()
	defer ms.logMu.Unlock()
	return append([]RequestEntry{}, ms.requestLog...)
}

// GetCallCount returns the call count for a method and path
func (ms *MockServer) GetCallCount(method, path string) int {
	ms.logMu.Lock()
	defer ms.logMu.Unlock()
	return ms.callCount[routeKey(method, path)]
}

// TotalCalls returns the number of requests served so far.
func (ms *MockServer) TotalCalls() int {
	ms.logMu.Lock()
	defer ms.logMu.Unlock()
	return len(ms.requestLog)
}

// ClearLog clears the request log and counters
func (ms *MockServer) ClearLog() {
	ms.logMu.Lock()
	defer ms.logMu.Unlock()
	ms.requestLog = ms.requestLog[:0]
	ms.callCount = make(map[string]int)
}

// WaitForRequests waits for a specific number of requests to be made
func (ms *MockServer) WaitForRequests(count int, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for %d requests", count)
		case <-ticker.C:
			if ms.TotalCalls() >= count {
				return nil
			}
		}
	}
}

// GetLastRequest returns the last request made to a method and path
func (ms *MockServer) GetLastRequest(method, path string) (*RequestEntry, error) {
	ms.logMu.Lock()
	defer ms.logMu.Unlock()

	for i := len(ms.requestLog) - 1; i >= 0; i-- {
		if ms.requestLog[i].Method == method && ms.requestLog[i].Path == path {
			entry := ms.requestLog[i]
			return &entry, nil
		}
	}

	return nil, fmt.Errorf("no requests found for %s", routeKey(method, path))
}
