package internal

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	pkgerrs "github.com/jamesprial/go-medium-api-wrapper/pkg/errors"
	"github.com/jamesprial/go-medium-api-wrapper/pkg/types"
	"github.com/jamesprial/go-medium-api-wrapper/pkg/validation"
	"golang.org/x/oauth2"
)

// DefaultTokenPath is the token endpoint, relative to the API version.
const DefaultTokenPath = "/oauth/tokens"

const (
	GrantTypeAuthorizationCode = "authorization_code"
	GrantTypeRefreshToken      = "refresh_token"
)

// Authenticator exchanges grants for access tokens and stores the result in
// the client's TokenState.
type Authenticator struct {
	client    *Client
	tokenPath string
	logger    *slog.Logger
}

// NewAuthenticator creates a new authenticator.
// The tokenPath parameter can be an empty string to use DefaultTokenPath.
func NewAuthenticator(client *Client, tokenPath string) *Authenticator {
	if tokenPath == "" {
		tokenPath = DefaultTokenPath
	}
	if !strings.HasPrefix(tokenPath, "/") {
		tokenPath = "/" + tokenPath
	}
	return &Authenticator{
		client:    client,
		tokenPath: tokenPath,
		logger:    client.logger,
	}
}

// TokenPath returns the path token requests are posted to.
func (a *Authenticator) TokenPath() string {
	return a.tokenPath
}

// AcquireAccessToken posts params to the token endpoint as a form. On success
// the returned access token is stored before returning. On any failure the
// stored token is left as it was.
func (a *Authenticator) AcquireAccessToken(ctx context.Context, params url.Values) (*types.Token, error) {
	payload, err := a.client.Do(ctx, &Request{
		Method:      http.MethodPost,
		Path:        a.tokenPath,
		ContentType: ContentTypeForm,
		Body:        params.Encode(),
	})
	if err != nil {
		return nil, err
	}

	var token types.Token
	if err := json.Unmarshal(payload, &token); err != nil {
		return nil, pkgerrs.NewParseError(err)
	}
	if err := validation.ValidateToken(&token); err != nil {
		return nil, pkgerrs.NewParseError(err)
	}

	a.client.tokens.Set(token.AccessToken)
	a.logger.Debug("medium access token updated", "grant_type", params.Get("grant_type"), "expires_at", token.Expiry())

	return &token, nil
}

// ExchangeAuthorizationCode trades an authorization code for tokens.
func (a *Authenticator) ExchangeAuthorizationCode(ctx context.Context, code, redirectURL string) (*types.Token, error) {
	params := a.baseGrant(GrantTypeAuthorizationCode)
	params.Set("code", code)
	params.Set("redirect_uri", redirectURL)
	return a.AcquireAccessToken(ctx, params)
}

// ExchangeRefreshToken trades a refresh token for a new access token.
func (a *Authenticator) ExchangeRefreshToken(ctx context.Context, refreshToken string) (*types.Token, error) {
	params := a.baseGrant(GrantTypeRefreshToken)
	params.Set("refresh_token", refreshToken)
	return a.AcquireAccessToken(ctx, params)
}

func (a *Authenticator) baseGrant(grantType string) url.Values {
	creds := a.client.Credentials()
	params := url.Values{}
	params.Set("client_id", creds.ClientID)
	params.Set("client_secret", creds.ClientSecret)
	params.Set("grant_type", grantType)
	return params
}

// refreshTokenSource adapts refresh-token exchanges to oauth2.TokenSource.
type refreshTokenSource struct {
	ctx          context.Context
	auth         *Authenticator
	refreshToken string
}

// Token implements oauth2.TokenSource.
func (s *refreshTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.auth.ExchangeRefreshToken(s.ctx, s.refreshToken)
	if err != nil {
		return nil, err
	}
	// Medium may rotate refresh tokens.
	if tok.RefreshToken != "" {
		s.refreshToken = tok.RefreshToken
	}
	return tok.OAuth2Token(), nil
}

// TokenSource returns an oauth2.TokenSource that refreshes through this
// authenticator whenever the cached token has expired. Each refresh also
// updates the client's TokenState.
func (a *Authenticator) TokenSource(ctx context.Context, current *oauth2.Token, refreshToken string) oauth2.TokenSource {
	return oauth2.ReuseTokenSource(current, &refreshTokenSource{
		ctx:          ctx,
		auth:         a,
		refreshToken: refreshToken,
	})
}
