package setconfig

import (
	"fmt"
	"math"
	"strings"
)

var _ Configuration = Standard{}

// Standard is a plain "sets x reps" scheme, e.g. 4 x 6 @ 85%.
type Standard struct {
	Sets       IntRange    `json:"sets"`
	Counts     IntRange    `json:"counts"`
	Load       *FloatRange `json:"load,omitempty"`
	Percentage *FloatRange `json:"percentage,omitempty"`
	RPE        *FloatRange `json:"rpe,omitempty"`
	Counter    CounterType `json:"counter,omitempty"`
}

func (Standard) isConfiguration() {}

func (s Standard) Type() Type {
	return TypeStandard
}

func (s Standard) TotalSets() int {
	return s.Sets.Min
}

func (s Standard) Summary() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s x %s %s", s.Sets, s.Counts, counterOrDefault(s.Counter).unit()))
	if s.Load != nil {
		sb.WriteString(fmt.Sprintf(" @ %skg", s.Load))
	}
	if s.Percentage != nil {
		sb.WriteString(fmt.Sprintf(" @ %s%%", s.Percentage))
	}
	if s.RPE != nil {
		sb.WriteString(fmt.Sprintf(" @ RPE %s", s.RPE))
	}
	return sb.String()
}

// EstimatedDuration averages the rep bounds; an unbounded max counts as
// max(10, min*1.5).
func (s Standard) EstimatedDuration(timing Timing) float64 {
	timing = timing.orDefault()
	max := math.Max(10, float64(s.Counts.Min)*1.5)
	if s.Counts.Max != nil {
		max = float64(*s.Counts.Max)
	}
	avgReps := (float64(s.Counts.Min) + max) / 2
	perSet := avgReps*timing.TimePerRep + timing.BaseTimePerSet
	return float64(s.TotalSets()) * perSet
}

func (s Standard) EstimatedRPECurve() []float64 {
	n := s.TotalSets()
	if s.RPE != nil && s.RPE.Max != nil && n > 1 {
		inc := (*s.RPE.Max - s.RPE.Min) / float64(n-1)
		return rpeCurve(s.RPE.Min, n, inc)
	}
	return rpeCurve(rpeStart(s.RPE, 7), n, 0.5)
}

func (s Standard) EmptySets(profileID string, ids IDGenerator) []PerformedSet {
	sets := make([]PerformedSet, 0, s.TotalSets())
	for i := 0; i < s.TotalSets(); i++ {
		sets = append(sets, newPerformedSet(ids, profileID, s.Counter, RoleStraight, setTargets{
			counts: &s.Counts,
			load:   s.Load,
			rpe:    s.RPE,
		}))
	}
	return sets
}

func (s Standard) Record() Record {
	return Record{
		Type:       TypeStandard,
		Counter:    s.Counter,
		Sets:       cloneIntRange(&s.Sets),
		Counts:     cloneIntRange(&s.Counts),
		Load:       cloneFloatRange(s.Load),
		Percentage: cloneFloatRange(s.Percentage),
		RPE:        cloneFloatRange(s.RPE),
	}
}

func (s Standard) Clone() Configuration {
	return Standard{
		Sets:       s.Sets.Clone(),
		Counts:     s.Counts.Clone(),
		Load:       cloneFloatRange(s.Load),
		Percentage: cloneFloatRange(s.Percentage),
		RPE:        cloneFloatRange(s.RPE),
		Counter:    s.Counter,
	}
}

func (s Standard) Validate() error {
	if err := s.Sets.validate("sets"); err != nil {
		return err
	}
	if s.Sets.Min < 1 {
		return fmt.Errorf("sets: at least one set is required")
	}
	if err := s.Counts.validate("counts"); err != nil {
		return err
	}
	if s.Counts.Min < 1 {
		return fmt.Errorf("counts: min must be positive")
	}
	if s.Load != nil {
		if err := s.Load.validate("load"); err != nil {
			return err
		}
	}
	if s.Percentage != nil {
		if err := s.Percentage.validate("percentage"); err != nil {
			return err
		}
	}
	if !s.Counter.IsValid() {
		return fmt.Errorf("unknown counter type %q", s.Counter)
	}
	return validateRPE(s.RPE)
}

func newStandard(r Record) (Standard, error) {
	if r.Sets == nil || r.Counts == nil {
		return Standard{}, fmt.Errorf("standard: sets and counts are required")
	}
	s := Standard{
		Sets:       r.Sets.Clone(),
		Counts:     r.Counts.Clone(),
		Load:       cloneFloatRange(r.Load),
		Percentage: cloneFloatRange(r.Percentage),
		RPE:        cloneFloatRange(r.RPE),
		Counter:    r.Counter,
	}
	return s, s.Validate()
}
