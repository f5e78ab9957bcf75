package types

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

func TestScopeList_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      ScopeList
		wantError bool
	}{
		{
			name:  "array",
			input: `["basicProfile","publishPost"]`,
			want:  ScopeList{ScopeBasicProfile, ScopePublishPost},
		},
		{
			name:  "comma separated string",
			input: `"basicProfile,listPublications"`,
			want:  ScopeList{ScopeBasicProfile, ScopeListPublications},
		},
		{
			name:  "space separated string",
			input: `"basicProfile publishPost"`,
			want:  ScopeList{ScopeBasicProfile, ScopePublishPost},
		},
		{
			name:  "null value",
			input: `null`,
			want:  nil,
		},
		{
			name:      "invalid value",
			input:     `42`,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s ScopeList
			err := json.Unmarshal([]byte(tt.input), &s)

			if (err != nil) != tt.wantError {
				t.Errorf("ScopeList.UnmarshalJSON() error = %v, wantError %v", err, tt.wantError)
				return
			}
			if tt.wantError {
				return
			}
			if !reflect.DeepEqual(s, tt.want) {
				t.Errorf("ScopeList = %v, want %v", s, tt.want)
			}
		})
	}
}

func TestTimestamp_Time(t *testing.T) {
	if !Timestamp(0).Time().IsZero() {
		t.Error("expected zero timestamp to convert to zero time")
	}

	ts := Timestamp(1442286338435)
	want := time.UnixMilli(1442286338435)
	if !ts.Time().Equal(want) {
		t.Errorf("Time() = %v, want %v", ts.Time(), want)
	}
}

func TestToken_Unmarshal(t *testing.T) {
	body := `{
		"token_type": "Bearer",
		"access_token": "at-123",
		"refresh_token": "rt-456",
		"scope": ["basicProfile", "publishPost"],
		"expires_at": 1426281999450
	}`

	var tok Token
	if err := json.Unmarshal([]byte(body), &tok); err != nil {
		t.Fatalf("failed to unmarshal token: %v", err)
	}

	if tok.AccessToken != "at-123" || tok.RefreshToken != "rt-456" {
		t.Errorf("unexpected tokens: %+v", tok)
	}
	if len(tok.Scope) != 2 || tok.Scope[1] != ScopePublishPost {
		t.Errorf("unexpected scope: %v", tok.Scope)
	}
	if !tok.Expiry().Equal(time.UnixMilli(1426281999450)) {
		t.Errorf("unexpected expiry: %v", tok.Expiry())
	}
}

func TestToken_OAuth2Token(t *testing.T) {
	tok := &Token{
		AccessToken:  "at-123",
		RefreshToken: "rt-456",
		Scope:        ScopeList{ScopeBasicProfile},
		ExpiresAt:    Timestamp(time.Now().Add(time.Hour).UnixMilli()),
	}

	o := tok.OAuth2Token()
	if o.AccessToken != "at-123" || o.RefreshToken != "rt-456" {
		t.Errorf("unexpected oauth2 token: %+v", o)
	}
	if o.TokenType != "Bearer" {
		t.Errorf("expected default token type Bearer, got %q", o.TokenType)
	}
	if !o.Valid() {
		t.Error("expected token expiring in an hour to be valid")
	}
	scopes, ok := o.Extra("scope").([]string)
	if !ok || len(scopes) != 1 || scopes[0] != "basicProfile" {
		t.Errorf("unexpected scope extra: %v", o.Extra("scope"))
	}
}

func TestCreatePostRequest_MarshalOmitsUnset(t *testing.T) {
	req := CreatePostRequest{
		UserID:        "5303d74c64f66366f00cb9b2a94f3251bf5",
		Title:         "Liverpool FC",
		ContentFormat: ContentFormatHTML,
		Tags:          []string{"football", "sport"},
	}

	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	var got map[string]interface{}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	want := map[string]interface{}{
		"title":         "Liverpool FC",
		"contentFormat": "html",
		"tags":          []interface{}{"football", "sport"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("marshalled body = %v, want %v", got, want)
	}
}
