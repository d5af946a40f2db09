package framework

type StepLogger interface {
	StepStarted(name string)
	StepPassed(name string)
	StepFailed(name string, err error)
	StepSkipped(name string, reason string)
}

type nullStepLogger struct{}

func (n nullStepLogger) StepStarted(string)         {}
func (n nullStepLogger) StepPassed(string)          {}
func (n nullStepLogger) StepFailed(string, error)   {}
func (n nullStepLogger) StepSkipped(string, string) {}
