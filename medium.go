package medium

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/samber/lo"
	"golang.org/x/oauth2"

	"github.com/jamesprial/go-medium-api-wrapper/internal"
	pkgerrs "github.com/jamesprial/go-medium-api-wrapper/pkg/errors"
	"github.com/jamesprial/go-medium-api-wrapper/pkg/types"
)

const (
	// DefaultBaseURL is the default Medium API base URL
	DefaultBaseURL = "https://api.medium.com"
	// DefaultAuthURL is the page users are sent to in order to grant access
	DefaultAuthURL = "https://medium.com/m/oauth/authorize"
	// DefaultAPIVersion is prefixed to every request path
	DefaultAPIVersion = "v1"
	// DefaultTokenPath is the token endpoint, relative to the API version
	DefaultTokenPath = internal.DefaultTokenPath
	// DefaultUserAgent is the default user agent string
	DefaultUserAgent = "go-medium-api-wrapper/0.1"
	// DefaultTimeout bounds each request
	DefaultTimeout = internal.DefaultTimeout
)

// Config holds the configuration for the Medium client.
//
// Only ClientID and ClientSecret are required. Everything else has a default.
//
//	config := &medium.Config{
//		ClientID:     "your-client-id",
//		ClientSecret: "your-client-secret",
//	}
type Config struct {
	// ClientID and ClientSecret identify the integration. Obtain these from
	// Medium's application settings.
	ClientID     string
	ClientSecret string

	// APIVersion is inserted between BaseURL and every request path.
	// Defaults to DefaultAPIVersion.
	APIVersion string

	// BaseURL for the Medium API. Defaults to DefaultBaseURL.
	BaseURL string

	// AuthURL is the browser-facing authorization page. Defaults to DefaultAuthURL.
	AuthURL string

	// TokenPath is where grants are exchanged. Defaults to DefaultTokenPath.
	TokenPath string

	// UserAgent string to identify your application. Defaults to DefaultUserAgent.
	UserAgent string

	// Timeout for each request. Defaults to DefaultTimeout.
	Timeout time.Duration

	// HTTPClient to use for requests. Defaults to http.DefaultClient.
	// Per-request timeouts are applied through the request context, so a
	// client without its own Timeout is fine.
	HTTPClient *http.Client

	// StrictValidation rejects scopes, content formats, publish statuses and
	// licenses outside the known sets, and canonical URLs that are not
	// absolute http(s) URLs, with a validation error. When false such values
	// are logged as warnings and sent unchanged, so values Medium adds later
	// still work.
	StrictValidation bool

	// Logger for structured diagnostics.
	// Optional. If provided, debug information will be logged during API calls.
	Logger *slog.Logger
}

// Client is the main Medium API client.
//
// A Client holds one access token at a time. It is set by a successful grant
// exchange or by SetAccessToken, and is sent as a bearer token on every call.
// A Client is safe for concurrent use; concurrent token updates are
// last-writer-wins.
type Client struct {
	client    *internal.Client
	auth      *internal.Authenticator
	validator *internal.Validator
	config    *Config
	logger    *slog.Logger
}

// NewClient creates a new Medium client with the provided configuration.
// It validates the configuration and applies defaults. No network call is made.
//
// Returns a *errors.ConfigError if:
//   - config is nil
//   - ClientID or ClientSecret are missing
//   - UserAgent, BaseURL or AuthURL are malformed
func NewClient(config *Config) (*Client, error) {
	if config == nil {
		return nil, &pkgerrs.ConfigError{Message: "config cannot be nil"}
	}

	if config.ClientID == "" {
		return nil, &pkgerrs.ConfigError{Field: "ClientID", Message: "ClientID is required"}
	}
	if config.ClientSecret == "" {
		return nil, &pkgerrs.ConfigError{Field: "ClientSecret", Message: "ClientSecret is required"}
	}

	cfg := *config
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.AuthURL == "" {
		cfg.AuthURL = DefaultAuthURL
	}
	if cfg.TokenPath == "" {
		cfg.TokenPath = DefaultTokenPath
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	validator := internal.NewValidator()
	validator.Strict = cfg.StrictValidation
	validator.Logger = cfg.Logger
	if err := validator.ValidateUserAgent(cfg.UserAgent); err != nil {
		return nil, &pkgerrs.ConfigError{Field: "UserAgent", Message: err.Error()}
	}
	if u, err := url.Parse(cfg.AuthURL); err != nil || !u.IsAbs() {
		return nil, &pkgerrs.ConfigError{Field: "AuthURL", Message: "must be an absolute URL"}
	}

	creds := internal.Credentials{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		APIVersion:   cfg.APIVersion,
	}
	httpClient, err := internal.NewClient(
		cfg.HTTPClient,
		creds,
		internal.NewTokenState(""),
		cfg.BaseURL,
		cfg.UserAgent,
		cfg.Timeout,
		cfg.Logger,
	)
	if err != nil {
		return nil, err
	}

	return &Client{
		client:    httpClient,
		auth:      internal.NewAuthenticator(httpClient, cfg.TokenPath),
		validator: validator,
		config:    &cfg,
		logger:    cfg.Logger,
	}, nil
}

// GetAuthorizationURL builds the URL a user visits to grant this integration
// access. No request is made.
//
// The query carries, in order: client_id, scope (comma-joined),
// response_type=code, state and redirect_uri.
func (c *Client) GetAuthorizationURL(state, redirectURL string, scopes []types.Scope) (string, error) {
	if err := c.validator.ValidateAuthorizationRequest(state, redirectURL, scopes); err != nil {
		return "", err
	}

	scope := strings.Join(lo.Map(scopes, func(s types.Scope, _ int) string {
		return url.QueryEscape(string(s))
	}), ",")

	var b strings.Builder
	b.WriteString(c.config.AuthURL)
	if strings.Contains(c.config.AuthURL, "?") {
		b.WriteByte('&')
	} else {
		b.WriteByte('?')
	}
	b.WriteString("client_id=" + url.QueryEscape(c.config.ClientID))
	b.WriteString("&scope=" + scope)
	b.WriteString("&response_type=code")
	b.WriteString("&state=" + url.QueryEscape(state))
	b.WriteString("&redirect_uri=" + url.QueryEscape(redirectURL))

	c.logger.Debug("medium authorization url built", "scopes", len(scopes))
	return b.String(), nil
}

// ExchangeAuthorizationCode trades the code Medium handed to redirectURL for
// an access token. On success the access token is stored on the client
// before returning.
func (c *Client) ExchangeAuthorizationCode(ctx context.Context, code, redirectURL string) (*types.Token, error) {
	if err := c.validator.Require(true,
		internal.Param{Name: "code", Value: code},
		internal.Param{Name: "redirectUrl", Value: redirectURL},
	); err != nil {
		return nil, err
	}
	return c.auth.ExchangeAuthorizationCode(ctx, code, redirectURL)
}

// ExchangeRefreshToken trades a refresh token for a new access token, which
// is stored on the client before returning.
func (c *Client) ExchangeRefreshToken(ctx context.Context, refreshToken string) (*types.Token, error) {
	if err := c.validator.Require(true, internal.Param{Name: "refreshToken", Value: refreshToken}); err != nil {
		return nil, err
	}
	return c.auth.ExchangeRefreshToken(ctx, refreshToken)
}

// SetAccessToken replaces the stored access token. It returns the client so
// calls can be chained.
func (c *Client) SetAccessToken(token string) *Client {
	c.client.Tokens().Set(token)
	return c
}

// AccessToken returns the stored access token, or "" if none is set.
func (c *Client) AccessToken() string {
	return c.client.Tokens().Get()
}

// TokenSource returns an oauth2.TokenSource that exchanges refreshToken for
// a fresh access token whenever the cached one has expired. Each exchange also
// updates the client's stored token.
func (c *Client) TokenSource(ctx context.Context, refreshToken string) oauth2.TokenSource {
	return c.auth.TokenSource(ctx, nil, refreshToken)
}

// GetUser returns the user the access token belongs to.
func (c *Client) GetUser(ctx context.Context) (*types.User, error) {
	var user types.User
	if err := c.get(ctx, "/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetPostsForUser lists the posts published by a user.
func (c *Client) GetPostsForUser(ctx context.Context, request *types.PostsRequest) ([]*types.Post, error) {
	var userID string
	if request != nil {
		userID = request.UserID
	}
	if err := c.validator.Require(request != nil, internal.Param{Name: "userId", Value: userID}); err != nil {
		return nil, err
	}

	var posts []*types.Post
	if err := c.get(ctx, "/users/"+pathSegment(userID)+"/posts", &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPublicationsForUser lists the publications a user subscribes to,
// writes for or edits.
func (c *Client) GetPublicationsForUser(ctx context.Context, request *types.PublicationsRequest) ([]*types.Publication, error) {
	var userID string
	if request != nil {
		userID = request.UserID
	}
	if err := c.validator.Require(request != nil, internal.Param{Name: "userId", Value: userID}); err != nil {
		return nil, err
	}

	var pubs []*types.Publication
	if err := c.get(ctx, "/users/"+pathSegment(userID)+"/publications", &pubs); err != nil {
		return nil, err
	}
	return pubs, nil
}

// GetContributorsForPublication lists the editors and writers of a publication.
func (c *Client) GetContributorsForPublication(ctx context.Context, request *types.PublicationRequest) ([]*types.Contributor, error) {
	var pubID string
	if request != nil {
		pubID = request.PublicationID
	}
	if err := c.validator.Require(request != nil, internal.Param{Name: "publicationId", Value: pubID}); err != nil {
		return nil, err
	}

	var contributors []*types.Contributor
	if err := c.get(ctx, "/publications/"+pathSegment(pubID)+"/contributors", &contributors); err != nil {
		return nil, err
	}
	return contributors, nil
}

// CreatePost creates a post on the profile of request.UserID. Only the
// fields that are set are sent; nothing is defaulted.
func (c *Client) CreatePost(ctx context.Context, request *types.CreatePostRequest) (*types.Post, error) {
	var userID string
	if request != nil {
		userID = request.UserID
	}
	if err := c.validator.ValidateCreatePost(request, internal.Param{Name: "userId", Value: userID}); err != nil {
		return nil, err
	}
	return c.createPost(ctx, "/users/"+pathSegment(userID)+"/posts", request)
}

// CreatePostInPublication creates a post in request.PublicationID. The
// authenticated user must be a contributor to the publication.
func (c *Client) CreatePostInPublication(ctx context.Context, request *types.CreatePostRequest) (*types.Post, error) {
	var pubID string
	if request != nil {
		pubID = request.PublicationID
	}
	if err := c.validator.ValidateCreatePost(request, internal.Param{Name: "publicationId", Value: pubID}); err != nil {
		return nil, err
	}
	return c.createPost(ctx, "/publications/"+pathSegment(pubID)+"/posts", request)
}

func (c *Client) createPost(ctx context.Context, path string, request *types.CreatePostRequest) (*types.Post, error) {
	payload, err := c.client.Do(ctx, &internal.Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   request,
	})
	if err != nil {
		return nil, err
	}

	var post types.Post
	if err := decode(payload, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// get issues a GET for path and decodes the success payload into v.
func (c *Client) get(ctx context.Context, path string, v interface{}) error {
	payload, err := c.client.Do(ctx, &internal.Request{Method: http.MethodGet, Path: path})
	if err != nil {
		return err
	}
	return decode(payload, v)
}

func decode(payload json.RawMessage, v interface{}) error {
	if err := json.Unmarshal(payload, v); err != nil {
		return pkgerrs.NewParseError(err)
	}
	return nil
}

// pathSegment escapes id as a single path segment. Dot segments are
// percent-encoded so an ID can never address a parent route.
func pathSegment(id string) string {
	if id == "." || id == ".." {
		return strings.ReplaceAll(id, ".", "%2E")
	}
	return url.PathEscape(id)
}
