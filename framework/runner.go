package framework

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
)

// Step is a single named action in a scenario.
type Step struct {
	Name   string
	Action func(ctx context.Context) error
}

// SkipError is returned by a step action that chose not to run.
type SkipError struct {
	Reason string
}

func (e *SkipError) Error() string {
	return "skipped: " + e.Reason
}

// Skip returns an error that causes the runner to record the current step as skipped rather than
// failed.
func Skip(reason string) error {
	return &SkipError{Reason: reason}
}

// Run executes steps in order and returns the results. It stops at the first step that fails;
// steps after that one are neither run nor reported. A panic in a step action is recovered and
// treated as that step's failure.
func Run(ctx context.Context, steps []Step, logger StepLogger) Results {
	if logger == nil {
		logger = nullStepLogger{}
	}
	var results Results
	for _, step := range steps {
		logger.StepStarted(step.Name)
		result := runStep(ctx, step)
		results.Steps = append(results.Steps, result)
		switch {
		case result.Skipped:
			logger.StepSkipped(step.Name, result.SkipReason)
		case result.Err != nil:
			logger.StepFailed(step.Name, result.Err)
			return results
		default:
			logger.StepPassed(step.Name)
		}
	}
	return results
}

func runStep(ctx context.Context, step Step) (result StepResult) {
	result.Name = step.Name
	defer func() {
		if r := recover(); r != nil {
			result.Err = fmt.Errorf("unexpected panic in step: %+v\n%s", r, string(debug.Stack()))
		}
	}()
	if step.Action == nil {
		result.Err = errors.New("step has no action")
		return result
	}
	err := step.Action(ctx)
	var skip *SkipError
	if errors.As(err, &skip) {
		result.Skipped = true
		result.SkipReason = skip.Reason
		return result
	}
	result.Err = err
	return result
}
