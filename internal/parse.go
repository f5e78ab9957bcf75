package internal

import (
	"bytes"
	"encoding/json"

	pkgerrs "github.com/jamesprial/go-medium-api-wrapper/pkg/errors"
)

// Parser turns a finished HTTP exchange into a payload or an *errors.Error.
type Parser struct{}

// NewParser creates a new Parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// errorEnvelope is the body Medium sends with 4xx and 5xx statuses.
type errorEnvelope struct {
	Errors []struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"errors"`
}

// Classify inspects status and body. The body is parsed before the status is
// looked at, so an unparsable body is a parse error whatever the status.
//
// For 2xx responses the payload is the "data" member when present and not
// null, otherwise the whole body.
func (p *Parser) Classify(status int, body []byte) (json.RawMessage, error) {
	if !json.Valid(body) {
		var v interface{}
		return nil, pkgerrs.NewParseError(json.Unmarshal(body, &v))
	}

	switch status / 100 {
	case 2:
		return p.unwrapData(body), nil
	case 4, 5:
		return nil, p.extractError(body)
	default:
		return nil, pkgerrs.NewUnexpectedStatusError()
	}
}

func (p *Parser) unwrapData(body []byte) json.RawMessage {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		// Valid JSON that is not an object: arrays, strings, numbers.
		return json.RawMessage(body)
	}
	data, ok := envelope["data"]
	if !ok || bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return json.RawMessage(body)
	}
	return data
}

// extractError reads the first entry of the errors array. Bodies without one
// fall back to the unexpected-response error.
func (p *Parser) extractError(body []byte) error {
	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Errors) == 0 {
		return pkgerrs.NewUnexpectedStatusError()
	}
	first := envelope.Errors[0]
	return pkgerrs.NewAPIError(first.Message, first.Code)
}
