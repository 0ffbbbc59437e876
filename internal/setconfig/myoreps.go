package setconfig

import (
	"fmt"
)

var _ Configuration = MyoReps{}

// MyoReps is one activation set followed by short mini-sets with brief rests.
type MyoReps struct {
	ActivationCounts IntRange    `json:"activationCounts"`
	MiniSets         IntRange    `json:"miniSets"`
	MiniSetCounts    IntRange    `json:"miniSetCounts"`
	RPE              *FloatRange `json:"rpe,omitempty"`
	Counter          CounterType `json:"counter,omitempty"`
}

func (MyoReps) isConfiguration() {}

func (m MyoReps) Type() Type {
	return TypeMyoReps
}

func (m MyoReps) TotalSets() int {
	return 1 + m.MiniSets.Min
}

func (m MyoReps) Summary() string {
	summary := fmt.Sprintf("Myo-reps %s + %s x %s %s",
		m.ActivationCounts, m.MiniSets, m.MiniSetCounts, counterOrDefault(m.Counter).unit())
	if m.RPE != nil {
		summary += fmt.Sprintf(" @ RPE %s", m.RPE)
	}
	return summary
}

func (m MyoReps) EstimatedDuration(timing Timing) float64 {
	timing = timing.orDefault()
	total := float64(m.ActivationCounts.Min)*timing.TimePerRep + timing.BaseTimePerSet
	total += float64(m.MiniSets.Min) * (float64(m.MiniSetCounts.Min)*timing.TimePerRep + timing.BaseTimePerSet)
	return total
}

func (m MyoReps) EstimatedRPECurve() []float64 {
	return rpeCurve(rpeStart(m.RPE, 8), m.TotalSets(), 0.5)
}

func (m MyoReps) EmptySets(profileID string, ids IDGenerator) []PerformedSet {
	sets := make([]PerformedSet, 0, m.TotalSets())
	sets = append(sets, newPerformedSet(ids, profileID, m.Counter, RoleActivation, setTargets{
		counts: &m.ActivationCounts,
		rpe:    m.RPE,
	}))
	for i := 0; i < m.MiniSets.Min; i++ {
		sets = append(sets, newPerformedSet(ids, profileID, m.Counter, RoleMiniSet, setTargets{
			counts: &m.MiniSetCounts,
			rpe:    m.RPE,
		}))
	}
	return sets
}

func (m MyoReps) Record() Record {
	return Record{
		Type:             TypeMyoReps,
		Counter:          m.Counter,
		ActivationCounts: cloneIntRange(&m.ActivationCounts),
		MiniSets:         cloneIntRange(&m.MiniSets),
		MiniSetCounts:    cloneIntRange(&m.MiniSetCounts),
		RPE:              cloneFloatRange(m.RPE),
	}
}

func (m MyoReps) Clone() Configuration {
	return MyoReps{
		ActivationCounts: m.ActivationCounts.Clone(),
		MiniSets:         m.MiniSets.Clone(),
		MiniSetCounts:    m.MiniSetCounts.Clone(),
		RPE:              cloneFloatRange(m.RPE),
		Counter:          m.Counter,
	}
}

func (m MyoReps) Validate() error {
	if err := m.ActivationCounts.validate("activationCounts"); err != nil {
		return err
	}
	if m.ActivationCounts.Min < 1 {
		return fmt.Errorf("activationCounts: min must be positive")
	}
	if err := m.MiniSets.validate("miniSets"); err != nil {
		return err
	}
	if err := m.MiniSetCounts.validate("miniSetCounts"); err != nil {
		return err
	}
	if m.MiniSetCounts.Min < 1 {
		return fmt.Errorf("miniSetCounts: min must be positive")
	}
	if !m.Counter.IsValid() {
		return fmt.Errorf("unknown counter type %q", m.Counter)
	}
	return validateRPE(m.RPE)
}

func newMyoReps(r Record) (MyoReps, error) {
	if r.ActivationCounts == nil || r.MiniSets == nil || r.MiniSetCounts == nil {
		return MyoReps{}, fmt.Errorf("myoReps: activationCounts, miniSets and miniSetCounts are required")
	}
	m := MyoReps{
		ActivationCounts: r.ActivationCounts.Clone(),
		MiniSets:         r.MiniSets.Clone(),
		MiniSetCounts:    r.MiniSetCounts.Clone(),
		RPE:              cloneFloatRange(r.RPE),
		Counter:          r.Counter,
	}
	return m, m.Validate()
}
