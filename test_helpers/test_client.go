package test_helpers

import (
	"fmt"
	"time"

	medium "github.com/jamesprial/go-medium-api-wrapper"
)

// MockClientConfig provides configuration for mock clients
type MockClientConfig struct {
	UserAgent string
	Timeout   time.Duration
}

// DefaultMockClientConfig returns default configuration for mock clients
func DefaultMockClientConfig() MockClientConfig {
	return MockClientConfig{
		UserAgent: "test-client/1.0",
		Timeout:   2 * time.Second,
	}
}

// TestClient wraps a Medium client pointed at its own mock server
type TestClient struct {
	*medium.Client
	mockServer *MockServer
}

// NewTestClient creates a new test client backed by NewMediumMockServer.
func NewTestClient(config *MockClientConfig) *TestClient {
	if config == nil {
		defaultConfig := DefaultMockClientConfig()
		config = &defaultConfig
	}

	mockServer := NewMediumMockServer()

	client, err := medium.NewClient(&medium.Config{
		ClientID:     "test_client_id",
		ClientSecret: "test_client_secret",
		UserAgent:    config.UserAgent,
		BaseURL:      mockServer.URL(),
		Timeout:      config.Timeout,
	})
	if err != nil {
		mockServer.Close()
		panic(fmt.Sprintf("failed to create medium client: %v", err))
	}

	return &TestClient{
		Client:     client,
		mockServer: mockServer,
	}
}

// MockServer returns the underlying mock server
func (tc *TestClient) MockServer() *MockServer {
	return tc.mockServer
}

// Close closes the mock server
func (tc *TestClient) Close() {
	tc.mockServer.Close()
}
