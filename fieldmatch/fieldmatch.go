// Package fieldmatch reads fields out of decoded JSON responses when the service's field names
// may differ from the expected ones in case or punctuation: "id", "Id", "ID" and "log_head_id",
// "LogHeadID", "Log-Head ID" are treated as the same name.
package fieldmatch

import (
	"sort"
	"strings"
	"unicode"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Resolve returns the value of the first candidate name that is an exact key of obj. If there is
// none, it returns the value of the first candidate whose normalized form (see Normalize) matches
// a normalized key of obj. The second return value is false if nothing matched or if obj is not
// a JSON object.
func Resolve(obj ldvalue.Value, names ...string) (ldvalue.Value, bool) {
	key, ok := ResolveKey(obj, names...)
	if !ok {
		return ldvalue.Null(), false
	}
	return obj.GetByKey(key), true
}

// ResolveKey is like Resolve, but returns the key of obj that matched instead of its value.
func ResolveKey(obj ldvalue.Value, names ...string) (string, bool) {
	if obj.Type() != ldvalue.ObjectType {
		return "", false
	}
	keys := obj.Keys()
	exact := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		exact[k] = struct{}{}
	}
	for _, name := range names {
		if _, ok := exact[name]; ok {
			return name, true
		}
	}

	// Keys are sorted so that collisions such as "userId" and "user_id" resolve the same way
	// on every run.
	sort.Strings(keys)
	normalized := make(map[string]string, len(keys))
	for _, k := range keys {
		n := Normalize(k)
		if _, taken := normalized[n]; !taken {
			normalized[n] = k
		}
	}
	for _, name := range names {
		if k, ok := normalized[Normalize(name)]; ok {
			return k, true
		}
	}
	return "", false
}

// Normalize lowercases name and drops every character that is not a letter or digit.
func Normalize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IndexInArray returns the index of the first element of arr for which match returns true, or -1
// if there is none or arr is not a JSON array.
func IndexInArray(arr ldvalue.Value, match func(index int, item ldvalue.Value) bool) int {
	if arr.Type() != ldvalue.ArrayType {
		return -1
	}
	for i := 0; i < arr.Count(); i++ {
		if match(i, arr.GetByIndex(i)) {
			return i
		}
	}
	return -1
}
