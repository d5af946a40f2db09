package framework

type Results struct {
	Steps []StepResult
}

type StepResult struct {
	Name       string
	Err        error
	Skipped    bool
	SkipReason string
}

// OK is true if no step failed.
func (r Results) OK() bool {
	return r.Failure() == nil
}

// Failure returns the step that stopped the run, or nil if there was none.
func (r Results) Failure() *StepResult {
	for i := range r.Steps {
		if r.Steps[i].Err != nil {
			return &r.Steps[i]
		}
	}
	return nil
}

func (r Results) Passed() int {
	n := 0
	for _, s := range r.Steps {
		if s.Err == nil && !s.Skipped {
			n++
		}
	}
	return n
}

func (r Results) Skipped() int {
	n := 0
	for _, s := range r.Steps {
		if s.Skipped {
			n++
		}
	}
	return n
}
