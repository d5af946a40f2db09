package client

import (
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// redacted replaces credentials in debug output. It must stay free of <, > and &, which
// JSONString escapes.
const redacted = "REDACTED"

// Object keys whose values are credentials, compared case-insensitively.
var credentialKeys = map[string]bool{"token": true, "password": true}

// redactValue returns v with the value of every credential key replaced, at any depth.
func redactValue(v ldvalue.Value) ldvalue.Value {
	switch v.Type() {
	case ldvalue.ObjectType:
		b := ldvalue.ObjectBuild()
		for _, k := range v.Keys() {
			if credentialKeys[strings.ToLower(k)] {
				b.Set(k, ldvalue.String(redacted))
			} else {
				b.Set(k, redactValue(v.GetByKey(k)))
			}
		}
		return b.Build()
	case ldvalue.ArrayType:
		b := ldvalue.ArrayBuild()
		for i := 0; i < v.Count(); i++ {
			b.Add(redactValue(v.GetByIndex(i)))
		}
		return b.Build()
	default:
		return v
	}
}

// loggable renders a body for debug output with credentials removed.
func loggable(b Body) string {
	if b.absent || b.raw {
		return b.String()
	}
	return redactValue(b.value).JSONString()
}

func loggablePayload(payload []byte) []byte {
	if payload == nil {
		return nil
	}
	return []byte(redactValue(ldvalue.Parse(payload)).JSONString())
}
