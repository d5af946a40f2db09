package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"

	"github.com/logbook/api-contract-tests/client"
	"github.com/logbook/api-contract-tests/config"
	"github.com/logbook/api-contract-tests/framework"
	"github.com/logbook/api-contract-tests/scenario"

	"github.com/google/uuid"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	status := run(ctx, os.Args, os.LookupEnv, http.DefaultClient, os.Stdout, os.Stderr)
	stop()
	os.Exit(status)
}

// run performs one contract test run and returns the process exit status.
func run(
	ctx context.Context,
	args []string,
	lookup config.LookupFunc,
	httpClient *http.Client,
	out, errOut io.Writer,
) int {
	var params commandParams
	if !params.Read(args, errOut) {
		return 1
	}

	cfg, err := config.Load(params.configPath, lookup, params.overrides)
	if err != nil {
		fmt.Fprintf(errOut, "Invalid configuration: %s\n", err)
		return 1
	}

	runID := uuid.NewString()
	debugOutput := &framework.CapturingLogger{}
	debugLogger := framework.LoggerWithPrefix(debugOutput, "["+runID+"] ")
	debugLogger.Printf("Base URL %s, admin user %s, keep data %t", cfg.BaseURL, cfg.AdminUsername, cfg.PreserveData)

	api := client.New(cfg.BaseURL, httpClient, debugLogger)
	sc := scenario.New(cfg, api, scenario.WithLogger(debugLogger))
	console := &ConsoleStepLogger{
		Out:                  out,
		DebugOutput:          debugOutput,
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	fmt.Fprintf(out, "Testing API at %s\n", api.BaseURL())
	results := sc.Run(ctx, console)
	console.RunFinished(results)
	if !results.OK() {
		return 1
	}
	return 0
}
