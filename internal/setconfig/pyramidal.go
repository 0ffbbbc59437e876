package setconfig

import (
	"fmt"
	"strconv"
	"strings"
)

var _ Configuration = Pyramidal{}

type PyramidalMode string

const (
	ModeAscending               PyramidalMode = "ascending"
	ModeDescending              PyramidalMode = "descending"
	ModeBothAscendingDescending PyramidalMode = "bothAscendingDescending"
)

func (m PyramidalMode) IsValid() bool {
	switch m {
	case ModeAscending, ModeDescending, ModeBothAscendingDescending:
		return true
	default:
		return false
	}
}

// PyramidDirection is the load direction of a pyramid phase. Ascending means
// the load goes up.
type PyramidDirection string

const (
	PyramidAscending  PyramidDirection = "ascending"
	PyramidDescending PyramidDirection = "descending"
)

// Upper bounds for a pyramid: the count of any step and the number of steps.
const (
	MaxPyramidCounts = 60
	MaxPyramidSteps  = 25
)

// Pyramidal changes the rep count by a fixed step on every set.
type Pyramidal struct {
	StartCounts IntRange      `json:"startCounts"`
	EndCounts   IntRange      `json:"endCounts"`
	Step        IntRange      `json:"step"`
	Mode        PyramidalMode `json:"mode"`
	RPE         *FloatRange   `json:"rpe,omitempty"`
	Counter     CounterType   `json:"counter,omitempty"`
}

func (Pyramidal) isConfiguration() {}

func (p Pyramidal) Type() Type {
	return TypePyramidal
}

// leg walks from the start count toward the end count by the step size.
func (p Pyramidal) leg() []int {
	start, end, step := p.StartCounts.Min, p.EndCounts.Min, p.Step.Min
	if start == end || step <= 0 {
		return []int{start}
	}
	if end < start {
		step = -step
	}

	var leg []int
	for v := start; (step > 0 && v <= end) || (step < 0 && v >= end); v += step {
		leg = append(leg, v)
	}
	return leg
}

// stepCount is len(Sequence()) without building it.
func (p Pyramidal) stepCount() int {
	start, end, step := p.StartCounts.Min, p.EndCounts.Min, p.Step.Min
	n := 1
	if start != end && step > 0 {
		n = abs(end-start)/step + 1
	}
	if p.Mode == ModeBothAscendingDescending {
		return 2*n - 1
	}
	return n
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Sequence returns the rep target of every pyramid step. In both-direction
// mode the first leg is mirrored back to the start value.
func (p Pyramidal) Sequence() []int {
	leg := p.leg()
	if p.Mode != ModeBothAscendingDescending {
		return leg
	}
	seq := make([]int, 0, 2*len(leg)-1)
	seq = append(seq, leg...)
	for i := len(leg) - 2; i >= 0; i-- {
		seq = append(seq, leg[i])
	}
	return seq
}

// SwitchPoint is the zero-based sequence index after which a both-direction
// pyramid turns around. It returns -1 for single-direction pyramids.
func (p Pyramidal) SwitchPoint() int {
	if p.Mode != ModeBothAscendingDescending {
		return -1
	}
	return len(p.leg()) - 1
}

// DirectionAt returns the direction of the phase at the given sequence index.
func (p Pyramidal) DirectionAt(index int) PyramidDirection {
	switch p.Mode {
	case ModeDescending:
		return PyramidDescending
	case ModeBothAscendingDescending:
		if index > p.SwitchPoint() {
			return PyramidDescending
		}
		return PyramidAscending
	default:
		return PyramidAscending
	}
}

func (p Pyramidal) TotalSets() int {
	return len(p.Sequence())
}

func (p Pyramidal) Summary() string {
	seq := p.Sequence()
	steps := make([]string, len(seq))
	for i, v := range seq {
		steps[i] = strconv.Itoa(v)
	}
	summary := fmt.Sprintf("Pyramid %s %s (%s)",
		strings.Join(steps, "-"), counterOrDefault(p.Counter).unit(), p.modeLabel())
	if p.RPE != nil {
		summary += fmt.Sprintf(" @ RPE %s", p.RPE)
	}
	return summary
}

func (p Pyramidal) modeLabel() string {
	if p.Mode == ModeBothAscendingDescending {
		return "up and down"
	}
	return string(p.Mode)
}

func (p Pyramidal) EstimatedDuration(timing Timing) float64 {
	timing = timing.orDefault()
	var total float64
	for _, reps := range p.Sequence() {
		total += float64(reps)*timing.TimePerRep + timing.BaseTimePerSet
	}
	return total
}

func (p Pyramidal) EstimatedRPECurve() []float64 {
	return rpeCurve(rpeStart(p.RPE, 7), p.TotalSets(), 0.5)
}

func (p Pyramidal) EmptySets(profileID string, ids IDGenerator) []PerformedSet {
	seq := p.Sequence()
	sets := make([]PerformedSet, 0, len(seq))
	for _, reps := range seq {
		target := NewIntRange(reps)
		sets = append(sets, newPerformedSet(ids, profileID, p.Counter, RolePyramidStep, setTargets{
			counts: &target,
			rpe:    p.RPE,
		}))
	}
	return sets
}

func (p Pyramidal) Record() Record {
	return Record{
		Type:        TypePyramidal,
		Counter:     p.Counter,
		StartCounts: cloneIntRange(&p.StartCounts),
		EndCounts:   cloneIntRange(&p.EndCounts),
		Step:        cloneIntRange(&p.Step),
		Mode:        p.Mode,
		RPE:         cloneFloatRange(p.RPE),
	}
}

func (p Pyramidal) Clone() Configuration {
	return Pyramidal{
		StartCounts: p.StartCounts.Clone(),
		EndCounts:   p.EndCounts.Clone(),
		Step:        p.Step.Clone(),
		Mode:        p.Mode,
		RPE:         cloneFloatRange(p.RPE),
		Counter:     p.Counter,
	}
}

func (p Pyramidal) Validate() error {
	if err := p.StartCounts.validate("startCounts"); err != nil {
		return err
	}
	if err := p.EndCounts.validate("endCounts"); err != nil {
		return err
	}
	if err := p.Step.validate("step"); err != nil {
		return err
	}
	if p.StartCounts.Min < 1 || p.EndCounts.Min < 1 {
		return fmt.Errorf("start and end counts must be positive")
	}
	if p.StartCounts.Min != p.EndCounts.Min && p.Step.Min < 1 {
		return fmt.Errorf("step: must be positive when start and end differ")
	}
	if p.StartCounts.Min > MaxPyramidCounts || p.EndCounts.Min > MaxPyramidCounts {
		return fmt.Errorf("start and end counts must not exceed %d", MaxPyramidCounts)
	}
	if n := p.stepCount(); n > MaxPyramidSteps {
		return fmt.Errorf("pyramid of %d steps exceeds the maximum of %d", n, MaxPyramidSteps)
	}
	if !p.Mode.IsValid() {
		return fmt.Errorf("unknown pyramidal mode %q", p.Mode)
	}
	if !p.Counter.IsValid() {
		return fmt.Errorf("unknown counter type %q", p.Counter)
	}
	return validateRPE(p.RPE)
}

func newPyramidal(r Record) (Pyramidal, error) {
	if r.StartCounts == nil || r.EndCounts == nil || r.Step == nil {
		return Pyramidal{}, fmt.Errorf("pyramidal: startCounts, endCounts and step are required")
	}
	p := Pyramidal{
		StartCounts: r.StartCounts.Clone(),
		EndCounts:   r.EndCounts.Clone(),
		Step:        r.Step.Clone(),
		Mode:        r.Mode,
		RPE:         cloneFloatRange(r.RPE),
		Counter:     r.Counter,
	}
	return p, p.Validate()
}
