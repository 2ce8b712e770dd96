package carousel

// StepStatus is the outcome of advancing a step machine by one tick
type StepStatus int

const (
	StepContinue StepStatus = iota
	StepDone
	StepFailed
)

// StepResult carries the failure reason when Status is StepFailed
type StepResult struct {
	Status StepStatus
	Err    error
}

var (
	stepContinue = StepResult{Status: StepContinue}
	stepDone     = StepResult{Status: StepDone}
)

func stepFailed(err error) StepResult {
	return StepResult{Status: StepFailed, Err: err}
}

// stepper is a polling loop split into single ticks
type stepper interface {
	Step() StepResult
}

// runToCompletion advances s until it is done or fails
func runToCompletion(s stepper) error {
	for {
		r := s.Step()
		switch r.Status {
		case StepDone:
			return nil
		case StepFailed:
			return r.Err
		}
	}
}
