package types

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// Timestamp is a Unix time in milliseconds, the format Medium uses for
// publishedAt and expires_at.
type Timestamp int64

// Time converts the timestamp to a time.Time. The zero Timestamp yields the zero time.
func (ts Timestamp) Time() time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.UnixMilli(int64(ts))
}

// ScopeList holds the granted scopes of a token.
// Medium sends an array, but a comma or space separated string is accepted too.
type ScopeList []Scope

// UnmarshalJSON implements json.Unmarshaler to handle both array and string forms.
func (s *ScopeList) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*s = nil
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = toScopes(list)
		return nil
	}

	var joined string
	if err := json.Unmarshal(data, &joined); err == nil {
		*s = toScopes(strings.FieldsFunc(joined, func(r rune) bool { return r == ',' || r == ' ' }))
		return nil
	}

	return fmt.Errorf("unrecognized type for 'scope' field: %s", raw)
}

func toScopes(list []string) ScopeList {
	out := make(ScopeList, 0, len(list))
	for _, v := range list {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, Scope(v))
		}
	}
	return out
}

// User is the authenticated Medium account.
type User struct {
	ID       string `json:"id" yaml:"id"`
	Username string `json:"username" yaml:"username"`
	Name     string `json:"name" yaml:"name"`
	URL      string `json:"url" yaml:"url"`
	ImageURL string `json:"imageUrl" yaml:"imageUrl"`
}

// Post is a story as returned by the posts endpoints.
type Post struct {
	ID            string        `json:"id" yaml:"id"`
	Title         string        `json:"title" yaml:"title"`
	AuthorID      string        `json:"authorId" yaml:"authorId"`
	Tags          []string      `json:"tags" yaml:"tags"`
	URL           string        `json:"url" yaml:"url"`
	CanonicalURL  string        `json:"canonicalUrl" yaml:"canonicalUrl"`
	PublishStatus PublishStatus `json:"publishStatus" yaml:"publishStatus"`
	PublishedAt   Timestamp     `json:"publishedAt" yaml:"publishedAt"`
	License       License       `json:"license" yaml:"license"`
	LicenseURL    string        `json:"licenseUrl" yaml:"licenseUrl"`
	PublicationID string        `json:"publicationId,omitempty" yaml:"publicationId,omitempty"`
}

// Publication is a Medium publication the user follows, writes for or edits.
type Publication struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	URL         string `json:"url" yaml:"url"`
	ImageURL    string `json:"imageUrl" yaml:"imageUrl"`
}

// Contributor links a user to a publication with a role ("editor" or "writer").
type Contributor struct {
	PublicationID string `json:"publicationId" yaml:"publicationId"`
	UserID        string `json:"userId" yaml:"userId"`
	Role          string `json:"role" yaml:"role"`
}

// Token is the payload of a successful token exchange.
type Token struct {
	TokenType    string    `json:"token_type" yaml:"token_type"`
	AccessToken  string    `json:"access_token" yaml:"access_token"`
	RefreshToken string    `json:"refresh_token" yaml:"refresh_token"`
	Scope        ScopeList `json:"scope" yaml:"scope"`
	ExpiresAt    Timestamp `json:"expires_at" yaml:"expires_at"`
}

// Expiry returns when the access token stops being valid, or the zero time if unknown.
func (t *Token) Expiry() time.Time {
	return t.ExpiresAt.Time()
}

// OAuth2Token converts the token for use with golang.org/x/oauth2.
// Granted scopes are available through Extra("scope").
func (t *Token) OAuth2Token() *oauth2.Token {
	tokenType := t.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}
	tok := &oauth2.Token{
		AccessToken:  t.AccessToken,
		TokenType:    tokenType,
		RefreshToken: t.RefreshToken,
		Expiry:       t.Expiry(),
	}
	if len(t.Scope) == 0 {
		return tok
	}
	scopes := make([]string, len(t.Scope))
	for i, s := range t.Scope {
		scopes[i] = string(s)
	}
	return tok.WithExtra(map[string]interface{}{"scope": scopes})
}

// PostsRequest identifies the user whose posts should be listed.
type PostsRequest struct {
	UserID string
}

// PublicationsRequest identifies the user whose publications should be listed.
type PublicationsRequest struct {
	UserID string
}

// PublicationRequest identifies a single publication.
type PublicationRequest struct {
	PublicationID string
}

// CreatePostRequest describes a new post. UserID (or PublicationID when posting
// into a publication) selects the endpoint and is not part of the body.
// Every other field is sent only when set; nothing is defaulted.
type CreatePostRequest struct {
	UserID        string `json:"-" yaml:"-"`
	PublicationID string `json:"-" yaml:"-"`

	Title         string        `json:"title,omitempty" yaml:"title,omitempty"`
	Content       string        `json:"content,omitempty" yaml:"content,omitempty"`
	ContentFormat ContentFormat `json:"contentFormat,omitempty" yaml:"contentFormat,omitempty"`
	Tags          []string      `json:"tags,omitempty" yaml:"tags,omitempty"`
	CanonicalURL  string        `json:"canonicalUrl,omitempty" yaml:"canonicalUrl,omitempty"`
	PublishStatus PublishStatus `json:"publishStatus,omitempty" yaml:"publishStatus,omitempty"`
	License       License       `json:"license,omitempty" yaml:"license,omitempty"`
}
