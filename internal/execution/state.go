package execution

import (
	"fmt"
	"math"

	"github.com/2beens/blueprintfitness/internal/setconfig"
)

// SetData is the planned target of one phase.
type SetData struct {
	Weight float64  `json:"weight"`
	Counts int      `json:"counts"`
	RPE    *float64 `json:"rpe,omitempty"`
}

func (d SetData) clone() SetData {
	if d.RPE != nil {
		rpe := *d.RPE
		d.RPE = &rpe
	}
	return d
}

func (d *SetData) cloneRef() *SetData {
	if d == nil {
		return nil
	}
	c := d.clone()
	return &c
}

// CompletedSet is what the user actually did in the current phase.
type CompletedSet struct {
	Weight float64  `json:"weight"`
	Counts int      `json:"counts"`
	RPE    *float64 `json:"rpe,omitempty"`
}

func (s CompletedSet) clone() CompletedSet {
	return CompletedSet(SetData(s).clone())
}

// Progress is shared by every scheme state. States are values: transitions
// return a new state and never touch the one passed in.
type Progress struct {
	CurrentPhase      int            `json:"currentPhase"`
	TotalPhases       int            `json:"totalPhases"`
	IsCompleted       bool           `json:"isCompleted"`
	CurrentSetData    SetData        `json:"currentSetData"`
	NextSetData       *SetData       `json:"nextSetData,omitempty"`
	RestPeriodSeconds *int           `json:"restPeriodSeconds,omitempty"`
	CompletedSets     []CompletedSet `json:"completedSets,omitempty"`
}

// Status exposes the shared part of any scheme state.
func (p Progress) Status() Progress {
	return p
}

func (p Progress) Completed() bool {
	return p.IsCompleted
}

// State is implemented by the per-scheme execution states.
type State interface {
	Scheme() setconfig.Type
	Status() Progress
}

func newProgress(totalPhases int, current SetData) Progress {
	return Progress{
		CurrentPhase:   1,
		TotalPhases:    totalPhases,
		CurrentSetData: current,
	}
}

func (p Progress) check() error {
	if p.TotalPhases < 1 || p.CurrentPhase < 1 || p.CurrentPhase > p.TotalPhases {
		return fmt.Errorf("%w: phase %d of %d", ErrInvalidState, p.CurrentPhase, p.TotalPhases)
	}
	return nil
}

// preflight guards every transition. A completed state is rejected before
// anything else is looked at.
func (p Progress) preflight(set CompletedSet) error {
	if p.IsCompleted {
		return ErrAlreadyCompleted
	}
	if err := p.check(); err != nil {
		return err
	}
	return validateSetData(set)
}

// advance records set and moves to the next phase. Reaching the last phase
// completes the execution. A single-phase execution completes in place, in
// which case advanced is false.
func (p Progress) advance(set CompletedSet) (next Progress, advanced bool) {
	completed := make([]CompletedSet, 0, len(p.CompletedSets)+1)
	for _, s := range p.CompletedSets {
		completed = append(completed, s.clone())
	}
	completed = append(completed, set.clone())

	next = Progress{
		CurrentPhase:   p.CurrentPhase,
		TotalPhases:    p.TotalPhases,
		CurrentSetData: p.CurrentSetData.clone(),
		CompletedSets:  completed,
	}
	if p.CurrentPhase < p.TotalPhases {
		next.CurrentPhase++
		advanced = true
	}
	next.IsCompleted = next.CurrentPhase == next.TotalPhases
	return next, advanced
}

// withRest attaches the rest suggestion before the current phase. Completed
// states carry none.
func (p Progress) withRest(seconds int) Progress {
	if p.IsCompleted || seconds <= 0 {
		p.RestPeriodSeconds = nil
		return p
	}
	p.RestPeriodSeconds = &seconds
	return p
}

func (p Progress) clone() Progress {
	c := p
	c.CurrentSetData = p.CurrentSetData.clone()
	c.NextSetData = p.NextSetData.cloneRef()
	if p.RestPeriodSeconds != nil {
		rest := *p.RestPeriodSeconds
		c.RestPeriodSeconds = &rest
	}
	if p.CompletedSets != nil {
		c.CompletedSets = make([]CompletedSet, len(p.CompletedSets))
		for i, s := range p.CompletedSets {
			c.CompletedSets[i] = s.clone()
		}
	}
	return c
}

func validateSetData(set CompletedSet) error {
	if set.Counts <= 0 {
		return fmt.Errorf("%w: counts must be positive, got %d", ErrInvalidSetData, set.Counts)
	}
	if set.Weight < 0 || math.IsNaN(set.Weight) || math.IsInf(set.Weight, 0) {
		return fmt.Errorf("%w: weight must not be negative, got %g", ErrInvalidSetData, set.Weight)
	}
	if set.RPE != nil && (*set.RPE < 1 || *set.RPE > 10 || math.IsNaN(*set.RPE)) {
		return fmt.Errorf("%w: rpe must be within [1, 10], got %g", ErrInvalidSetData, *set.RPE)
	}
	return nil
}

func checkInit(cfg setconfig.Configuration, startingWeight float64) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	if startingWeight < 0 || math.IsNaN(startingWeight) || math.IsInf(startingWeight, 0) {
		return fmt.Errorf("%w: %g", ErrInvalidStartingWeight, startingWeight)
	}
	return nil
}

// targetRPE returns the planned RPE of a one-based phase, if the curve has one.
func targetRPE(curve []float64, phase int) *float64 {
	if phase < 1 || phase > len(curve) {
		return nil
	}
	rpe := curve[phase-1]
	return &rpe
}
