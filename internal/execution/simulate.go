package execution

import (
	"fmt"

	"github.com/2beens/blueprintfitness/internal/setconfig"
)

// Performer decides what the user does for a planned phase.
type Performer func(phase int, target SetData) CompletedSet

// AsPlanned performs every phase exactly as planned. Phases planned without
// an RPE are reported without one.
func AsPlanned(_ int, target SetData) CompletedSet {
	return CompletedSet(target.clone())
}

// Step is one transition of a simulated execution.
type Step struct {
	Performed  *CompletedSet `json:"performed,omitempty"`
	Validation *Validation   `json:"validation,omitempty"`
	State      State         `json:"state"`
}

// Simulate runs cfg from initialization to completion. The first step holds
// the initial state.
func (e *Engine) Simulate(cfg setconfig.Configuration, startingWeight float64, perform Performer) ([]Step, error) {
	if perform == nil {
		perform = AsPlanned
	}

	state, err := e.Initialize(cfg, startingWeight)
	if err != nil {
		return nil, err
	}

	steps := []Step{{State: state}}
	for limit := state.Status().TotalPhases; !state.Status().IsCompleted; limit-- {
		if limit < 0 {
			return steps, fmt.Errorf("%w: execution did not complete", ErrInvalidState)
		}
		status := state.Status()
		set := perform(status.CurrentPhase, status.CurrentSetData)

		validation, err := e.Validate(state, set)
		if err != nil {
			return steps, fmt.Errorf("phase %d: %w", status.CurrentPhase, err)
		}
		state, err = e.Progress(state, set)
		if err != nil {
			return steps, fmt.Errorf("phase %d: %w", status.CurrentPhase, err)
		}
		steps = append(steps, Step{
			Performed:  &set,
			Validation: validation,
			State:      state,
		})
	}
	return steps, nil
}
