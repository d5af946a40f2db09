package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurlCommandWithoutBody(t *testing.T) {
	assert.Equal(t, "curl -sS -X GET http://localhost:8080/api/log-heads",
		curlCommand("GET", "http://localhost:8080/api/log-heads", false, nil))
}

func TestCurlCommandQuotesArguments(t *testing.T) {
	cmd := curlCommand("POST", "http://h/api/log-contents", true, []byte(`{"content":"it's"}`))
	assert.Equal(t,
		`curl -sS -X POST -H 'Authorization: Bearer REDACTED' -H 'Content-Type: application/json' `+
			`--data '{"content":"it'"'"'s"}' http://h/api/log-contents`,
		cmd)
}
