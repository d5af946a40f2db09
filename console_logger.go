package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/logbook/api-contract-tests/framework"

	"github.com/fatih/color"
)

const debugPrefix = "  DEBUG "

var (
	okLabel      = color.New(color.FgGreen).SprintFunc()
	failLabel    = color.New(color.FgRed, color.Bold).SprintFunc()
	skippedLabel = color.New(color.FgYellow).SprintFunc()
)

// ConsoleStepLogger prints one status line per step, and the captured debug output when asked to.
type ConsoleStepLogger struct {
	Out                  io.Writer
	DebugOutput          *framework.CapturingLogger
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

func (c *ConsoleStepLogger) StepStarted(name string) {}

func (c *ConsoleStepLogger) StepPassed(name string) {
	fmt.Fprintf(c.Out, "%s %s\n", okLabel("OK:"), name)
}

// StepFailed prints the debug output first so that the failure is the last thing on the console.
func (c *ConsoleStepLogger) StepFailed(name string, err error) {
	if c.DebugOutputOnFailure {
		c.dumpDebugOutput()
	}
	lines := strings.Split(err.Error(), "\n")
	fmt.Fprintf(c.Out, "%s %s\n", failLabel("FAIL:"), lines[0])
	for _, line := range lines[1:] {
		fmt.Fprintf(c.Out, "  %s\n", line)
	}
}

func (c *ConsoleStepLogger) StepSkipped(name string, reason string) {
	if reason == "" {
		fmt.Fprintf(c.Out, "%s %s\n", skippedLabel("SKIPPED:"), name)
	} else {
		fmt.Fprintf(c.Out, "%s %s (%s)\n", skippedLabel("SKIPPED:"), name, reason)
	}
}

// RunFinished prints the closing line of a successful run. A failed run has already printed its
// FAIL line.
func (c *ConsoleStepLogger) RunFinished(results framework.Results) {
	if !results.OK() {
		return
	}
	if c.DebugOutputOnSuccess {
		c.dumpDebugOutput()
	}
	fmt.Fprintln(c.Out, okLabel("All endpoint checks passed."))
}

func (c *ConsoleStepLogger) dumpDebugOutput() {
	if c.DebugOutput == nil {
		return
	}
	if output := c.DebugOutput.Output(); len(output) > 0 {
		output.Dump(c.Out, debugPrefix)
	}
}
