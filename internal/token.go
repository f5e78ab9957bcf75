package internal

import "sync/atomic"

// Credentials are the fixed client identity. They never change after construction.
type Credentials struct {
	ClientID     string
	ClientSecret string
	APIVersion   string
}

// TokenState is the single cell holding the active access token.
//
// Every write replaces the token wholesale. There is no merge and no
// read-modify-write, so two token exchanges racing each other leave whichever
// value was stored last.
type TokenState struct {
	token atomic.Pointer[string]
}

// NewTokenState returns a cell holding token, which may be empty.
func NewTokenState(token string) *TokenState {
	s := &TokenState{}
	s.Set(token)
	return s
}

// Get returns the current token, or "" when none has been set.
func (s *TokenState) Get() string {
	if p := s.token.Load(); p != nil {
		return *p
	}
	return ""
}

// Set overwrites the current token.
func (s *TokenState) Set(token string) {
	s.token.Store(&token)
}
