package pipeline

import "fmt"

// Step names, in execution order.
const (
	StepMaterialize = "materialize"
	StepGenerate    = "generate"
	StepAssemble    = "assemble"
	StepVerify      = "verify"
)

// StepError identifies which pipeline step aborted the run.
type StepError struct {
	// Step is the step name.
	Step string

	// Err is the underlying failure.
	Err error
}

// Error implements the error interface.
func (e *StepError) Error() string {
	return fmt.Sprintf("step %s: %v", e.Step, e.Err)
}

// Unwrap returns the underlying error.
func (e *StepError) Unwrap() error {
	return e.Err
}
