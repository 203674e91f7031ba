package spendee

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

const statusSuccess = "SUCCESS"

// unwrapEnvelope strips the service envelope most endpoints answer with:
//
//	{"result": ..., "status": "SUCCESS", "service": "api.user-login", ...}
//
// An object only counts as an envelope when it has "status" next to one of
// "result", "error" or "service"; plain resources such as wallets carry a
// status field of their own. Anything else is returned unchanged.
func unwrapEnvelope(ep Endpoint, statusCode int, raw []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if !json.Valid(trimmed) {
		return nil, &DecodeError{Endpoint: ep.String(), Err: errors.New("response is not valid JSON")}
	}
	if trimmed[0] != '{' {
		return json.RawMessage(trimmed), nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, &DecodeError{Endpoint: ep.String(), Err: err}
	}
	statusRaw, hasStatus := fields["status"]
	_, hasResult := fields["result"]
	_, hasError := fields["error"]
	_, hasService := fields["service"]
	if !hasStatus || !(hasResult || hasError || hasService) {
		return json.RawMessage(trimmed), nil
	}

	var status string
	if err := json.Unmarshal(statusRaw, &status); err != nil {
		return nil, &DecodeError{Endpoint: ep.String(), Err: fmt.Errorf("envelope status: %w", err)}
	}
	if status != statusSuccess {
		msg := errorMessage(trimmed)
		if msg == "" {
			msg = "unexpected error on the Spendee side"
		}
		return nil, &APIError{Endpoint: ep.String(), StatusCode: statusCode, Payload: raw, Message: msg}
	}
	if !hasResult {
		return nil, &DecodeError{Endpoint: ep.String(), Err: errors.New("envelope has no result")}
	}
	return fields["result"], nil
}

// errorMessage pulls error.message out of an upstream body, if present
func errorMessage(raw []byte) string {
	var body struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	return body.Error.Message
}

// requireFields checks that obj is a JSON object holding every listed key
func requireFields(obj json.RawMessage, fields ...string) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(obj, &m); err != nil {
		return fmt.Errorf("expected an object: %w", err)
	}
	if m == nil {
		return errors.New("expected an object, got null")
	}
	for _, f := range fields {
		if _, ok := m[f]; !ok {
			return fmt.Errorf("missing field %q", f)
		}
	}
	return nil
}

// decodeObject decodes a bare resource object
func decodeObject(ep Endpoint, data json.RawMessage, out any, fields ...string) error {
	if err := requireFields(data, fields...); err != nil {
		return &DecodeError{Endpoint: ep.String(), Err: err}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &DecodeError{Endpoint: ep.String(), Err: err}
	}
	return nil
}

// decodeMember decodes a resource object wrapped as {"<key>": {...}}
func decodeMember(ep Endpoint, data json.RawMessage, key string, out any, fields ...string) error {
	inner, err := member(data, key)
	if err != nil {
		return &DecodeError{Endpoint: ep.String(), Err: err}
	}
	return decodeObject(ep, inner, out, fields...)
}

// decodeList decodes a bare array of resource objects
func decodeList(ep Endpoint, data json.RawMessage, out any, fields ...string) error {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return &DecodeError{Endpoint: ep.String(), Err: fmt.Errorf("expected an array: %w", err)}
	}
	if items == nil {
		return &DecodeError{Endpoint: ep.String(), Err: errors.New("expected an array, got null")}
	}
	for i := 0; len(fields) > 0 && i < len(items); i++ {
		if err := requireFields(items[i], fields...); err != nil {
			return &DecodeError{Endpoint: ep.String(), Err: fmt.Errorf("item %d: %w", i, err)}
		}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &DecodeError{Endpoint: ep.String(), Err: err}
	}
	return nil
}

// decodeMemberList decodes an array wrapped as {"<key>": [...]}
func decodeMemberList(ep Endpoint, data json.RawMessage, key string, out any, fields ...string) error {
	inner, err := member(data, key)
	if err != nil {
		return &DecodeError{Endpoint: ep.String(), Err: err}
	}
	return decodeList(ep, inner, out, fields...)
}

// decodeAck accepts the acknowledgements mutations answer with: an empty
// body, an object, or true.
func decodeAck(ep Endpoint, data json.RawMessage) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}
	switch trimmed[0] {
	case '{':
		return nil
	case 't':
		if bytes.Equal(trimmed, []byte("true")) {
			return nil
		}
	}
	return &DecodeError{Endpoint: ep.String(), Err: fmt.Errorf("unexpected acknowledgement %s", trimmed)}
}

func member(data json.RawMessage, key string) (json.RawMessage, error) {
	if err := requireFields(data, key); err != nil {
		return nil, err
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m[key], nil
}
