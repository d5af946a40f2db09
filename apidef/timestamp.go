package apidef

import "time"

// TimestampFormat is RFC 3339 at second precision with a literal Z, which is the only date
// form the service's create endpoints are tested with.
const TimestampFormat = "2006-01-02T15:04:05Z"

// FormatTimestamp renders t in UTC using TimestampFormat. Fractional seconds are truncated.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(TimestampFormat)
}
