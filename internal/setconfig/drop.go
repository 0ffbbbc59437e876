package setconfig

import (
	"fmt"
)

var _ Configuration = Drop{}

// dropFatigue discounts the estimated reps of every drop relative to the main set.
const dropFatigue = 0.8

// Drop is a main set followed by a number of drops (load stripped, no rest).
type Drop struct {
	StartCounts IntRange    `json:"startCounts"`
	Drops       IntRange    `json:"drops"`
	RPE         *FloatRange `json:"rpe,omitempty"`
	Counter     CounterType `json:"counter,omitempty"`
}

func (Drop) isConfiguration() {}

func (d Drop) Type() Type {
	return TypeDrop
}

// TotalSets is the main set plus one set per drop.
func (d Drop) TotalSets() int {
	return 1 + d.Drops.Min
}

func (d Drop) Summary() string {
	summary := fmt.Sprintf("%s %s + %s drops", d.StartCounts, counterOrDefault(d.Counter).unit(), d.Drops)
	if d.RPE != nil {
		summary += fmt.Sprintf(" @ RPE %s", d.RPE)
	}
	return summary
}

func (d Drop) EstimatedDuration(timing Timing) float64 {
	timing = timing.orDefault()
	startReps := float64(d.StartCounts.Min)
	total := startReps*timing.TimePerRep + timing.BaseTimePerSet
	for i := 0; i < d.Drops.Min; i++ {
		total += startReps*dropFatigue*timing.TimePerRep + timing.BaseTimePerSet
	}
	return round2(total)
}

func (d Drop) EstimatedRPECurve() []float64 {
	return rpeCurve(rpeStart(d.RPE, 8), d.TotalSets(), 0.5)
}

func (d Drop) EmptySets(profileID string, ids IDGenerator) []PerformedSet {
	sets := make([]PerformedSet, 0, d.TotalSets())
	sets = append(sets, newPerformedSet(ids, profileID, d.Counter, RoleMain, setTargets{
		counts: &d.StartCounts,
		rpe:    d.RPE,
	}))
	for i := 0; i < d.Drops.Min; i++ {
		sets = append(sets, newPerformedSet(ids, profileID, d.Counter, RoleDrop, setTargets{
			rpe: d.RPE,
		}))
	}
	return sets
}

func (d Drop) Record() Record {
	return Record{
		Type:        TypeDrop,
		Counter:     d.Counter,
		StartCounts: cloneIntRange(&d.StartCounts),
		Drops:       cloneIntRange(&d.Drops),
		RPE:         cloneFloatRange(d.RPE),
	}
}

func (d Drop) Clone() Configuration {
	return Drop{
		StartCounts: d.StartCounts.Clone(),
		Drops:       d.Drops.Clone(),
		RPE:         cloneFloatRange(d.RPE),
		Counter:     d.Counter,
	}
}

func (d Drop) Validate() error {
	if err := d.StartCounts.validate("startCounts"); err != nil {
		return err
	}
	if d.StartCounts.Min < 1 {
		return fmt.Errorf("startCounts: min must be positive")
	}
	if err := d.Drops.validate("drops"); err != nil {
		return err
	}
	if !d.Counter.IsValid() {
		return fmt.Errorf("unknown counter type %q", d.Counter)
	}
	return validateRPE(d.RPE)
}

func newDrop(r Record) (Drop, error) {
	if r.StartCounts == nil || r.Drops == nil {
		return Drop{}, fmt.Errorf("drop: startCounts and drops are required")
	}
	d := Drop{
		StartCounts: r.StartCounts.Clone(),
		Drops:       r.Drops.Clone(),
		RPE:         cloneFloatRange(r.RPE),
		Counter:     r.Counter,
	}
	return d, d.Validate()
}
