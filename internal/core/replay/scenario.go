// Package replay runs scripted notification scenarios against a
// notify.API. Scenarios are YAML documents of timed create, edit and
// delete steps.
package replay

import (
	"fmt"
	"time"

	"github.com/hay-kot/criterio"

	"github.com/hay-kot/toasts/internal/core/notify"
)

// Op is a scenario step operation.
type Op string

const (
	OpCreate Op = "create"
	OpEdit   Op = "edit"
	OpDelete Op = "delete"
)

// Scenario is a list of steps ordered by time.
type Scenario struct {
	Steps []Step `yaml:"steps"`
	// Settle is how long to keep running after the last step so pending
	// expiries and detaches can fire.
	Settle time.Duration `yaml:"settle"`
}

// Step runs Op at offset At from the start of the scenario. Ref names the
// notification across steps: create binds it to the allocated id, edit and
// delete look it up.
type Step struct {
	At   time.Duration `yaml:"at"`
	Op   Op            `yaml:"op"`
	Ref  string        `yaml:"ref"`
	Info notify.Info   `yaml:"info"`
}

// Validate checks ops, refs and step ordering.
func (s Scenario) Validate() error {
	if len(s.Steps) == 0 {
		return criterio.NewFieldErrors("steps", fmt.Errorf("no steps"))
	}

	var errs criterio.FieldErrorsBuilder
	if s.Settle < 0 {
		errs = errs.Append("settle", fmt.Errorf("must not be negative, got %s", s.Settle))
	}

	created := make(map[string]bool)
	var last time.Duration
	for i, step := range s.Steps {
		field := fmt.Sprintf("steps[%d]", i)

		if step.At < last {
			errs = errs.Append(field+".at", fmt.Errorf("%s is before the previous step (%s)", step.At, last))
		}
		last = max(last, step.At)

		if step.Ref == "" {
			errs = errs.Append(field+".ref", fmt.Errorf("required"))
			continue
		}

		switch step.Op {
		case OpCreate:
			created[step.Ref] = true
		case OpEdit, OpDelete:
			if !created[step.Ref] {
				errs = errs.Append(field+".ref", fmt.Errorf("%q is not created by an earlier step", step.Ref))
			}
		default:
			errs = errs.Append(field+".op", fmt.Errorf("unknown op %q, expected create, edit or delete", step.Op))
		}
	}

	return errs.ToError()
}
