package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	pkgerrs "github.com/jamesprial/go-medium-api-wrapper/pkg/errors"
)

const (
	// DefaultTimeout bounds a single round trip when no timeout is configured.
	DefaultTimeout = 5 * time.Second

	ContentTypeJSON = "application/json"
	ContentTypeForm = "application/x-www-form-urlencoded"
)

// Request describes one call. It is consumed by a single Do and not retained.
type Request struct {
	Method string
	// Path is relative to the API version and already escaped, e.g. "/me".
	Path string
	// ContentType defaults to application/json.
	ContentType string
	// Body may be nil, a string or []byte (sent verbatim), url.Values
	// (form encoded) or any value that marshals to JSON.
	Body interface{}
}

// Client executes requests against the Medium API.
type Client struct {
	client      *http.Client
	BaseURL     *url.URL
	UserAgent   string
	credentials Credentials
	tokens      *TokenState
	parser      *Parser
	timeout     time.Duration
	logger      *slog.Logger
}

// NewClient returns a new Medium API client.
// If a nil httpClient is provided, http.DefaultClient will be used. The client
// is copied so redirects are handed back to the caller instead of followed.
// A non-positive timeout selects DefaultTimeout.
func NewClient(httpClient *http.Client, creds Credentials, tokens *TokenState, baseURL, userAgent string, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	noRedirect := *httpClient
	noRedirect.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	if tokens == nil {
		tokens = NewTokenState("")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, &pkgerrs.ConfigError{Field: "BaseURL", Message: err.Error()}
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, &pkgerrs.ConfigError{Field: "BaseURL", Message: fmt.Sprintf("%q is not an absolute URL", baseURL)}
	}
	parsedURL.Path = strings.TrimSuffix(parsedURL.Path, "/")

	return &Client{
		client:      &noRedirect,
		BaseURL:     parsedURL,
		UserAgent:   userAgent,
		credentials: creds,
		tokens:      tokens,
		parser:      NewParser(),
		timeout:     timeout,
		logger:      logger,
	}, nil
}

// Credentials returns the client identity used for token exchanges.
func (c *Client) Credentials() Credentials {
	return c.credentials
}

// Tokens returns the token cell read on every request.
func (c *Client) Tokens() *TokenState {
	return c.tokens
}

// Timeout returns the per-request timeout.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// URL resolves a request path against the base URL and API version,
// e.g. "/me" becomes https://api.medium.com/v1/me. Escapes already in path
// are kept as sent.
func (c *Client) URL(path string) string {
	u := *c.BaseURL
	raw := c.BaseURL.EscapedPath() + "/" + c.credentials.APIVersion + path
	if unescaped, err := url.PathUnescape(raw); err == nil {
		u.Path, u.RawPath = unescaped, raw
	} else {
		u.Path, u.RawPath = raw, ""
	}
	return u.String()
}

// NewRequest builds the HTTP request for r, applying the standard headers.
func (c *Client) NewRequest(ctx context.Context, r *Request) (*http.Request, error) {
	body, err := encodeBody(r.Body)
	if err != nil {
		return nil, pkgerrs.NewValidationError("failed to encode request body: "+err.Error(), err)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, c.URL(r.Path), body)
	if err != nil {
		return nil, pkgerrs.NewTransportError(err)
	}

	contentType := r.ContentType
	if contentType == "" {
		contentType = ContentTypeJSON
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+c.tokens.Get())
	req.Header.Set("Accept", ContentTypeJSON)
	req.Header.Set("Accept-Charset", "utf-8")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	return req, nil
}

// Do performs one round trip for r and classifies the response. It never
// retries and never follows redirects. Timeouts, cancellations and connection failures come back as
// transport errors carrying the sentinel code.
func (c *Client) Do(ctx context.Context, r *Request) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := c.NewRequest(ctx, r)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	c.logger.Debug("medium request", "method", r.Method, "path", r.Path)

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("medium request failed", "method", r.Method, "path", r.Path, "error", err, "duration", time.Since(start))
		return nil, pkgerrs.NewTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Debug("medium response read failed", "method", r.Method, "path", r.Path, "error", err)
		return nil, pkgerrs.NewTransportError(err)
	}

	c.logger.Debug("medium response",
		"method", r.Method,
		"path", r.Path,
		"status", resp.StatusCode,
		"bytes", len(body),
		"duration", time.Since(start),
	)

	return c.parser.Classify(resp.StatusCode, body)
}

func encodeBody(body interface{}) (io.Reader, error) {
	switch v := body.(type) {
	case nil:
		return nil, nil
	case string:
		return strings.NewReader(v), nil
	case []byte:
		return bytes.NewReader(v), nil
	case url.Values:
		return strings.NewReader(v.Encode()), nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		return bytes.NewReader(data), nil
	}
}
