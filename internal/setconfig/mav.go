package setconfig

import (
	"fmt"
)

var _ Configuration = MAV{}

// MAV is a run of straight sets at a fixed load, worked toward the maximum
// adaptive volume for the exercise.
type MAV struct {
	Sets    IntRange    `json:"sets"`
	Counts  IntRange    `json:"counts"`
	RPE     *FloatRange `json:"rpe,omitempty"`
	Counter CounterType `json:"counter,omitempty"`
}

func (MAV) isConfiguration() {}

func (m MAV) Type() Type {
	return TypeMAV
}

func (m MAV) TotalSets() int {
	return m.Sets.Min
}

func (m MAV) Summary() string {
	summary := fmt.Sprintf("MAV %s x %s %s", m.Sets, m.Counts, counterOrDefault(m.Counter).unit())
	if m.RPE != nil {
		summary += fmt.Sprintf(" @ RPE %s", m.RPE)
	}
	return summary
}

func (m MAV) EstimatedDuration(timing Timing) float64 {
	timing = timing.orDefault()
	return float64(m.TotalSets()) * (float64(m.Counts.Min)*timing.TimePerRep + timing.BaseTimePerSet)
}

func (m MAV) EstimatedRPECurve() []float64 {
	return rpeCurve(rpeStart(m.RPE, 7), m.TotalSets(), 0.5)
}

func (m MAV) EmptySets(profileID string, ids IDGenerator) []PerformedSet {
	sets := make([]PerformedSet, 0, m.TotalSets())
	for i := 0; i < m.TotalSets(); i++ {
		sets = append(sets, newPerformedSet(ids, profileID, m.Counter, RoleStraight, setTargets{
			counts: &m.Counts,
			rpe:    m.RPE,
		}))
	}
	return sets
}

func (m MAV) Record() Record {
	return Record{
		Type:    TypeMAV,
		Counter: m.Counter,
		Sets:    cloneIntRange(&m.Sets),
		Counts:  cloneIntRange(&m.Counts),
		RPE:     cloneFloatRange(m.RPE),
	}
}

func (m MAV) Clone() Configuration {
	return MAV{
		Sets:    m.Sets.Clone(),
		Counts:  m.Counts.Clone(),
		RPE:     cloneFloatRange(m.RPE),
		Counter: m.Counter,
	}
}

func (m MAV) Validate() error {
	if err := m.Sets.validate("sets"); err != nil {
		return err
	}
	if m.Sets.Min < 1 {
		return fmt.Errorf("sets: at least one set is required")
	}
	if err := m.Counts.validate("counts"); err != nil {
		return err
	}
	if m.Counts.Min < 1 {
		return fmt.Errorf("counts: min must be positive")
	}
	if !m.Counter.IsValid() {
		return fmt.Errorf("unknown counter type %q", m.Counter)
	}
	return validateRPE(m.RPE)
}

func newMAV(r Record) (MAV, error) {
	if r.Sets == nil || r.Counts == nil {
		return MAV{}, fmt.Errorf("mav: sets and counts are required")
	}
	m := MAV{
		Sets:    r.Sets.Clone(),
		Counts:  r.Counts.Clone(),
		RPE:     cloneFloatRange(r.RPE),
		Counter: r.Counter,
	}
	return m, m.Validate()
}
