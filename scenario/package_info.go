// Package scenario contains the logbook service's end-to-end contract scenario.
//
// The scenario is a fixed, linear sequence of API calls. Values produced by one step (bearer
// credentials, account and log-head identifiers) are kept on the Scenario and consumed by later
// steps; a step whose inputs were never produced fails without sending anything. Every step
// checks an exact status code, and the lower-level framework package stops the run at the first
// step that returns an error.
package scenario
