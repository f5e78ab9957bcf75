// Package validation checks Medium payloads against the closed value sets and
// formats the API documents. Checks only look at fields that are set; nothing
// is defaulted or rewritten.
package validation

import (
	"fmt"
	"net/url"
	"regexp"

	"github.com/hashicorp/go-multierror"
	"github.com/samber/lo"

	"github.com/jamesprial/go-medium-api-wrapper/pkg/types"
)

// idRegex matches Medium object IDs, which are lowercase hex strings.
var idRegex = regexp.MustCompile(`^[0-9a-f]+$`)

// IsValidID checks if a string looks like a Medium object ID.
func IsValidID(s string) bool {
	return idRegex.MatchString(s)
}

// IsValidScope checks if s is a known OAuth scope.
func IsValidScope(s types.Scope) bool {
	return lo.Contains(types.Scopes, s)
}

// IsValidPublishStatus checks if s is a known publish status.
func IsValidPublishStatus(s types.PublishStatus) bool {
	return lo.Contains(types.PublishStatuses, s)
}

// IsValidContentFormat checks if f is a known content format.
func IsValidContentFormat(f types.ContentFormat) bool {
	return lo.Contains(types.ContentFormats, f)
}

// IsValidLicense checks if l is a known license.
func IsValidLicense(l types.License) bool {
	return lo.Contains(types.Licenses, l)
}

// IsValidCanonicalURL checks if s is an absolute http or https URL.
func IsValidCanonicalURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ValidateScopes checks that every requested scope is known.
func ValidateScopes(scopes []types.Scope) error {
	var result *multierror.Error
	lo.ForEach(scopes, func(s types.Scope, i int) {
		if !IsValidScope(s) {
			result = multierror.Append(result, fmt.Errorf("scopes[%d]: unknown scope %q", i, s))
		}
	})
	return result.ErrorOrNil()
}

// ValidateCreatePost validates the optional body fields of a new post.
// Required identifiers are checked by the caller.
func ValidateCreatePost(req *types.CreatePostRequest) error {
	if req == nil {
		return fmt.Errorf("create post request is nil")
	}

	var result *multierror.Error

	if req.ContentFormat != "" && !IsValidContentFormat(req.ContentFormat) {
		result = multierror.Append(result, fmt.Errorf("contentFormat: unknown value %q", req.ContentFormat))
	}
	if req.PublishStatus != "" && !IsValidPublishStatus(req.PublishStatus) {
		result = multierror.Append(result, fmt.Errorf("publishStatus: unknown value %q", req.PublishStatus))
	}
	if req.License != "" && !IsValidLicense(req.License) {
		result = multierror.Append(result, fmt.Errorf("license: unknown value %q", req.License))
	}
	if req.CanonicalURL != "" && !IsValidCanonicalURL(req.CanonicalURL) {
		result = multierror.Append(result, fmt.Errorf("canonicalUrl: %q is not an absolute http(s) URL", req.CanonicalURL))
	}

	return result.ErrorOrNil()
}

// ValidateToken validates a token exchange payload.
func ValidateToken(tok *types.Token) error {
	if tok == nil {
		return fmt.Errorf("token is nil")
	}
	if tok.AccessToken == "" {
		return fmt.Errorf("access_token was empty in response")
	}
	return nil
}
