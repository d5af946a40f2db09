package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/logbook/api-contract-tests/config"
	"github.com/logbook/api-contract-tests/fakeservice"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func noEnv(string) (string, bool) { return "", false }

func envOf(vars map[string]string) config.LookupFunc {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func startFake(t *testing.T, faults fakeservice.Faults) (*fakeservice.Service, *httptest.Server) {
	t.Helper()
	svc := fakeservice.New(config.DefaultAdminUsername, config.DefaultAdminPassword, faults)
	server := httptest.NewServer(svc.Handler())
	t.Cleanup(server.Close)
	return svc, server
}

func runCommand(lookup config.LookupFunc, args ...string) (int, string, string) {
	var out, errOut bytes.Buffer
	status := run(context.Background(), append([]string{"logbook-contract-tests"}, args...), lookup,
		http.DefaultClient, &out, &errOut)
	return status, out.String(), errOut.String()
}

func outputLines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func TestSuccessfulRun(t *testing.T) {
	svc, server := startFake(t, fakeservice.Faults{})

	status, out, _ := runCommand(noEnv, "-url", server.URL+"/")

	assert.Equal(t, 0, status)
	lines := outputLines(out)
	require.Len(t, lines, 14)
	assert.Equal(t, "Testing API at "+server.URL, lines[0])
	assert.Equal(t, "OK: admin login", lines[1])
	assert.Equal(t, "OK: delete member account", lines[12])
	assert.Equal(t, "All endpoint checks passed.", lines[13])
	assert.NotContains(t, out, "DEBUG")
	assert.Len(t, svc.Accounts(), 1)
}

func TestBaseURLFromEnvironment(t *testing.T) {
	_, server := startFake(t, fakeservice.Faults{})

	status, out, _ := runCommand(envOf(map[string]string{config.EnvBaseURL: server.URL}))

	assert.Equal(t, 0, status)
	assert.Contains(t, out, "Testing API at "+server.URL+"\n")
}

func TestKeepDataFromEnvironmentSkipsCleanup(t *testing.T) {
	svc, server := startFake(t, fakeservice.Faults{})

	status, out, _ := runCommand(envOf(map[string]string{
		config.EnvBaseURL:  server.URL,
		config.EnvKeepData: "yes",
	}))

	assert.Equal(t, 0, status)
	assert.Contains(t, out, "SKIPPED: delete log head (data preservation requested (KEEP_DATA))\n")
	assert.Contains(t, out, "SKIPPED: delete member account (data preservation requested (KEEP_DATA))\n")
	assert.Len(t, svc.Accounts(), 2)
	assert.Len(t, svc.LogHeads(), 1)
}

func TestFlagOverridesEnvironment(t *testing.T) {
	svc, server := startFake(t, fakeservice.Faults{})

	status, _, _ := runCommand(envOf(map[string]string{
		config.EnvBaseURL:  "http://unused.invalid",
		config.EnvKeepData: "1",
	}), "-url", server.URL, "-keep-data=false")

	assert.Equal(t, 0, status)
	assert.Len(t, svc.Accounts(), 1)
}

func TestConfigFile(t *testing.T) {
	_, server := startFake(t, fakeservice.Faults{})
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base_url: "+server.URL+"\nadmin_username: admin\n"), 0o600))

	status, out, _ := runCommand(noEnv, "-config", path)

	assert.Equal(t, 0, status)
	assert.Contains(t, out, "Testing API at "+server.URL+"\n")
}

func TestFailedRunEndsWithFailLine(t *testing.T) {
	svc, server := startFake(t, fakeservice.Faults{
		RoleOverride: map[string]string{config.DefaultAdminUsername: "member"},
	})

	status, out, _ := runCommand(noEnv, "-url", server.URL)

	assert.Equal(t, 1, status)
	assert.Equal(t, []string{
		"Testing API at " + server.URL,
		`FAIL: admin login role mismatch: expected "admin", got "member"`,
	}, outputLines(out))
	assert.Len(t, svc.Requests(), 1)
}

func TestDebugOutputOnFailure(t *testing.T) {
	_, server := startFake(t, fakeservice.Faults{
		Status: map[string]int{"GET /api/log-heads": http.StatusInternalServerError},
	})

	status, out, _ := runCommand(noEnv, "-url", server.URL, "-debug")

	assert.Equal(t, 1, status)
	assert.Contains(t, out, debugPrefix)
	assert.Contains(t, out, "curl -sS -X GET -H 'Authorization: Bearer REDACTED'")
	assert.NotContains(t, out, "eyJ")
	lines := outputLines(out)
	assert.Equal(t, `FAIL: GET /api/log-heads expected 200, got 500: {"message":"forced status"}`, lines[len(lines)-1])
}

func TestDebugAllOnSuccess(t *testing.T) {
	_, server := startFake(t, fakeservice.Faults{})

	status, out, _ := runCommand(noEnv, "-url", server.URL, "-debug-all")

	assert.Equal(t, 0, status)
	assert.Contains(t, out, debugPrefix)
	lines := outputLines(out)
	assert.Equal(t, "All endpoint checks passed.", lines[len(lines)-1])
}

func TestInvalidParameters(t *testing.T) {
	status, _, errOut := runCommand(noEnv, "-no-such-flag")
	assert.Equal(t, 1, status)
	assert.Contains(t, errOut, "no-such-flag")

	status, _, errOut = runCommand(noEnv, "extra")
	assert.Equal(t, 1, status)
	assert.Contains(t, errOut, "unexpected arguments")
}

func TestInvalidConfiguration(t *testing.T) {
	status, out, errOut := runCommand(noEnv, "-url", "not a url")

	assert.Equal(t, 1, status)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "Invalid configuration: ")
}
