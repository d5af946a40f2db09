package client

import (
	"bytes"
	"encoding/json"
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Body is a response body decoded on a best-effort basis. It is one of: absent (the response had
// no content), a JSON value, or raw text that could not be parsed as JSON.
type Body struct {
	value  ldvalue.Value
	data   []byte
	raw    bool
	absent bool
}

// DecodeBody decodes response content. It never fails: content that is not valid JSON is kept
// as raw text, with invalid UTF-8 sequences replaced.
func DecodeBody(data []byte) Body {
	if len(data) == 0 {
		return Body{absent: true}
	}
	var v ldvalue.Value
	if err := json.Unmarshal(data, &v); err == nil {
		return Body{value: v, data: append([]byte(nil), bytes.TrimSpace(data)...)}
	}
	return Body{value: ldvalue.String(strings.ToValidUTF8(string(data), "\uFFFD")), raw: true}
}

// JSONBody returns a Body holding an already-decoded JSON value.
func JSONBody(v ldvalue.Value) Body {
	return Body{value: v, data: []byte(v.JSONString())}
}

// Value returns the decoded value. For raw text it is a string value; for an absent body it is
// a null value.
func (b Body) Value() ldvalue.Value {
	if b.absent {
		return ldvalue.Null()
	}
	return b.value
}

// IsAbsent is true if the response had no content.
func (b Body) IsAbsent() bool { return b.absent }

// IsRaw is true if the content was not valid JSON.
func (b Body) IsRaw() bool { return b.raw }

// String returns the body for diagnostic output: JSON text, the raw text, or a placeholder if
// there was no content.
func (b Body) String() string {
	switch {
	case b.absent:
		return "(empty body)"
	case b.raw:
		return b.value.StringValue()
	default:
		return b.value.JSONString()
	}
}

// RawAt returns the JSON text of the value at path exactly as the service sent it. Each path
// element is an object key (string) or an array index (int). Unlike Value, numbers keep every
// digit, which matters for integer identifiers too large for a float64.
func (b Body) RawAt(path ...interface{}) (json.RawMessage, bool) {
	if b.absent || b.raw {
		return nil, false
	}
	current := json.RawMessage(b.data)
	for _, step := range path {
		switch s := step.(type) {
		case string:
			var obj map[string]json.RawMessage
			if err := json.Unmarshal(current, &obj); err != nil {
				return nil, false
			}
			next, ok := obj[s]
			if !ok {
				return nil, false
			}
			current = next
		case int:
			var arr []json.RawMessage
			if err := json.Unmarshal(current, &arr); err != nil || s < 0 || s >= len(arr) {
				return nil, false
			}
			current = arr[s]
		default:
			return nil, false
		}
	}
	return current, true
}
