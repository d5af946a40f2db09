package client

import (
	"strings"

	"github.com/alessio/shellescape"
)

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

// curlCommand renders a request as a curl command line for debug output, so that a failing step
// can be reproduced by hand. The bearer token is never printed; callers redact the payload.
func curlCommand(method, url string, authorized bool, payload []byte) string {
	var b commandBuilder
	b.add("curl", "-sS", "-X", method)
	if authorized {
		b.add("-H", "Authorization: Bearer "+redacted)
	}
	if payload != nil {
		b.add("-H", "Content-Type: application/json", "--data", string(payload))
	}
	b.add(url)
	return b.String()
}
