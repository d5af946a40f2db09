package apidef

import (
	"bytes"
	"encoding/json"
	"math/big"
	"net/url"
)

// ID is a resource identifier exactly as the service wrote it: a JSON string or a JSON number.
// Numbers are kept as their original text, so integers beyond float64 precision are sent back
// unchanged. The zero ID means "not set".
type ID struct {
	raw json.RawMessage
}

// ParseID accepts the JSON text of a string or number. Anything else, including null, is
// rejected.
func ParseID(raw json.RawMessage) (ID, bool) {
	raw = bytes.TrimSpace(raw)
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil || dec.More() {
		return ID{}, false
	}
	switch v.(type) {
	case string, json.Number:
		return ID{raw: append(json.RawMessage(nil), raw...)}, true
	default:
		return ID{}, false
	}
}

func (id ID) IsZero() bool {
	return len(id.raw) == 0
}

func (id ID) MarshalJSON() ([]byte, error) {
	if id.IsZero() {
		return []byte("null"), nil
	}
	return id.raw, nil
}

// String returns the identifier's JSON text, for messages.
func (id ID) String() string {
	if id.IsZero() {
		return "null"
	}
	return string(id.raw)
}

// PathSegment renders the identifier for a URL path: strings escaped, integral numbers as plain
// digits, and other numbers as written.
func (id ID) PathSegment() string {
	if s, ok := id.text(); ok {
		return url.PathEscape(s)
	}
	if n, ok := id.number(); ok && n.IsInt() {
		return n.Num().String()
	}
	return string(id.raw)
}

// Equal reports whether two identifiers are the same string, or numerically equal numbers.
func (id ID) Equal(other ID) bool {
	if a, ok := id.text(); ok {
		b, ok := other.text()
		return ok && a == b
	}
	a, ok := id.number()
	if !ok {
		return false
	}
	b, ok := other.number()
	return ok && a.Cmp(b) == 0
}

func (id ID) text() (string, bool) {
	var s string
	if len(id.raw) == 0 || id.raw[0] != '"' || json.Unmarshal(id.raw, &s) != nil {
		return "", false
	}
	return s, true
}

func (id ID) number() (*big.Rat, bool) {
	if len(id.raw) == 0 || id.raw[0] == '"' {
		return nil, false
	}
	return new(big.Rat).SetString(string(id.raw))
}
