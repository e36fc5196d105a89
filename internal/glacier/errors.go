package glacier

import "fmt"

// ConfigurationError reports an invalid solver configuration. It is
// returned from New and never retried.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("glacier: invalid configuration: %s: %s", e.Field, e.Reason)
}

// NumericalInstabilityError reports a non-finite thickness or surface
// elevation after a step. It is fatal: the grid fields are left in an
// undefined, partially updated condition and the solver instance must be
// discarded.
type NumericalInstabilityError struct {
	Step int
	Time float64
}

func (e *NumericalInstabilityError) Error() string {
	return fmt.Sprintf("glacier: non-finite state at step %d (t=%.4f)", e.Step, e.Time)
}
