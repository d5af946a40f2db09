// Package framework contains the low-level implementation of the step runner that the contract
// tests are built on. It is not specific to the logbook service.
//
// The general model is:
//
// 1. A scenario is an ordered list of named steps. Each step's action returns an error; the
// runner stops at the first step that fails, so no later step ever runs against state that an
// earlier step failed to produce.
//
// 2. A step can decline to run by returning the error from Skip. Skipped steps do not stop the
// run and do not count as failures.
//
// 3. Progress is reported to a StepLogger as it happens. Debug output goes to a Logger, which is
// usually a CapturingLogger whose contents are only shown if the caller asks for them.
//
// The domain-specific code that knows what is being tested is responsible for building the steps
// and for producing errors that describe what went wrong.
package framework
