package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is an upstream identifier. Older endpoints send numbers, newer ones
// strings, so both are accepted. Numeric IDs are sent back as numbers.
type ID string

// String returns the identifier as text
func (id ID) String() string {
	return string(id)
}

// IsZero reports whether the identifier is unset
func (id ID) IsZero() bool {
	return id == ""
}

// MarshalJSON encodes canonical integer IDs as JSON numbers and anything else as a string
func (id ID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalJSON accepts JSON numbers, strings and null
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a number or a string, got %s", data)
	}
	*id = ID(n.String())
	return nil
}
