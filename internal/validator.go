package internal

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/samber/lo"

	pkgerrs "github.com/jamesprial/go-medium-api-wrapper/pkg/errors"
	"github.com/jamesprial/go-medium-api-wrapper/pkg/types"
	"github.com/jamesprial/go-medium-api-wrapper/pkg/validation"
)

const (
	// User agent constraints
	maxUserAgentLength = 256
)

// Param is a named call parameter that must be non-empty.
type Param struct {
	Name  string
	Value string
}

// MissingParamError records a single absent parameter.
type MissingParamError struct {
	Name string
}

func (e *MissingParamError) Error() string {
	return fmt.Sprintf("missing required parameter %q", e.Name)
}

// Validator checks call inputs before any request is built.
//
// Missing required params always fail. Values outside the known scope,
// content format, publish status and license sets, and canonical URLs that
// are not absolute, fail only when Strict is set; otherwise they are logged
// at warn level and sent as given.
type Validator struct {
	Strict bool
	Logger *slog.Logger
}

// NewValidator creates a lenient Validator that logs nowhere.
func NewValidator() *Validator {
	return &Validator{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// Require fails when the call's input is undefined or any param is blank.
// All missing params are reported together.
func (v *Validator) Require(defined bool, params ...Param) error {
	if !defined {
		return pkgerrs.NewValidationError(pkgerrs.MsgUndefinedParams, nil)
	}

	var result *multierror.Error
	var missing []string
	lo.ForEach(params, func(p Param, _ int) {
		if strings.TrimSpace(p.Value) == "" {
			missing = append(missing, p.Name)
			result = multierror.Append(result, &MissingParamError{Name: p.Name})
		}
	})
	if result == nil {
		return nil
	}

	return pkgerrs.NewValidationError(missingMessage(missing), result.ErrorOrNil())
}

func missingMessage(names []string) string {
	if len(names) == 1 {
		return fmt.Sprintf("Missing required parameter: %s", names[0])
	}
	return fmt.Sprintf("Missing required parameters: %s", strings.Join(names, ", "))
}

// ValidateCreatePost checks that target (the user or publication ID) is set
// and checks any supplied enumerated field against the known values.
func (v *Validator) ValidateCreatePost(req *types.CreatePostRequest, target Param) error {
	if err := v.Require(req != nil, target); err != nil {
		return err
	}
	return v.known("Invalid post parameters", validation.ValidateCreatePost(req))
}

// ValidateAuthorizationRequest checks the inputs of an authorization URL.
func (v *Validator) ValidateAuthorizationRequest(state, redirectURL string, scopes []types.Scope) error {
	if err := v.Require(true, Param{"state", state}, Param{"redirectUrl", redirectURL}); err != nil {
		return err
	}
	if len(scopes) == 0 {
		return pkgerrs.NewValidationError("Missing required parameter: scope", &MissingParamError{Name: "scope"})
	}
	return v.known("Invalid scope", validation.ValidateScopes(scopes))
}

// known turns a closed-set mismatch into a validation error in strict mode,
// or a warning otherwise.
func (v *Validator) known(prefix string, err error) error {
	if err == nil {
		return nil
	}
	if v.Strict {
		return pkgerrs.NewValidationError(prefix+": "+flatten(err), err)
	}
	if v.Logger != nil {
		v.Logger.Warn("sending values outside the known set", "check", prefix, "problems", flatten(err))
	}
	return nil
}

// ValidateUserAgent validates the User-Agent string to prevent header injection attacks.
func (v *Validator) ValidateUserAgent(ua string) error {
	if len(ua) == 0 {
		return fmt.Errorf("user agent cannot be empty")
	}

	if strings.ContainsAny(ua, "\r\n") {
		return fmt.Errorf("user agent cannot contain newline characters")
	}

	if len(ua) > maxUserAgentLength {
		return fmt.Errorf("user agent too long (max %d characters)", maxUserAgentLength)
	}

	return nil
}

// flatten renders a multierror on one line.
func flatten(err error) string {
	if merr, ok := err.(*multierror.Error); ok {
		return strings.Join(lo.Map(merr.Errors, func(e error, _ int) string { return e.Error() }), "; ")
	}
	return err.Error()
}
