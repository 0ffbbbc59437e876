package setconfig

import (
	"fmt"
)

var _ Configuration = RestPause{}

// RestPause is a main set followed by repeated brief pauses and continuation
// mini-sets with the same load.
type RestPause struct {
	Counts           IntRange    `json:"counts"`
	MiniSetCounts    IntRange    `json:"miniSetCounts"`
	RestPauseSeconds IntRange    `json:"restPauseSeconds"`
	MiniSets         IntRange    `json:"miniSets"`
	RPE              *FloatRange `json:"rpe,omitempty"`
	Counter          CounterType `json:"counter,omitempty"`
}

func (RestPause) isConfiguration() {}

func (r RestPause) Type() Type {
	return TypeRestPause
}

func (r RestPause) TotalSets() int {
	return 1 + r.MiniSets.Min
}

func (r RestPause) Summary() string {
	summary := fmt.Sprintf("Rest-pause %s + %s x %s %s (%ss pauses)",
		r.Counts, r.MiniSets, r.MiniSetCounts, counterOrDefault(r.Counter).unit(), r.RestPauseSeconds)
	if r.RPE != nil {
		summary += fmt.Sprintf(" @ RPE %s", r.RPE)
	}
	return summary
}

// EstimatedDuration includes the planned pauses between mini-sets.
func (r RestPause) EstimatedDuration(timing Timing) float64 {
	timing = timing.orDefault()
	total := float64(r.Counts.Min)*timing.TimePerRep + timing.BaseTimePerSet
	perMiniSet := float64(r.MiniSetCounts.Min)*timing.TimePerRep + timing.BaseTimePerSet + float64(r.RestPauseSeconds.Min)
	return total + float64(r.MiniSets.Min)*perMiniSet
}

func (r RestPause) EstimatedRPECurve() []float64 {
	return rpeCurve(rpeStart(r.RPE, 9), r.TotalSets(), 0.5)
}

func (r RestPause) EmptySets(profileID string, ids IDGenerator) []PerformedSet {
	sets := make([]PerformedSet, 0, r.TotalSets())
	sets = append(sets, newPerformedSet(ids, profileID, r.Counter, RoleMain, setTargets{
		counts: &r.Counts,
		rpe:    r.RPE,
	}))
	for i := 0; i < r.MiniSets.Min; i++ {
		sets = append(sets, newPerformedSet(ids, profileID, r.Counter, RoleMiniSet, setTargets{
			counts: &r.MiniSetCounts,
			rpe:    r.RPE,
		}))
	}
	return sets
}

func (r RestPause) Record() Record {
	return Record{
		Type:             TypeRestPause,
		Counter:          r.Counter,
		Counts:           cloneIntRange(&r.Counts),
		MiniSetCounts:    cloneIntRange(&r.MiniSetCounts),
		RestPauseSeconds: cloneIntRange(&r.RestPauseSeconds),
		MiniSets:         cloneIntRange(&r.MiniSets),
		RPE:              cloneFloatRange(r.RPE),
	}
}

func (r RestPause) Clone() Configuration {
	return RestPause{
		Counts:           r.Counts.Clone(),
		MiniSetCounts:    r.MiniSetCounts.Clone(),
		RestPauseSeconds: r.RestPauseSeconds.Clone(),
		MiniSets:         r.MiniSets.Clone(),
		RPE:              cloneFloatRange(r.RPE),
		Counter:          r.Counter,
	}
}

func (r RestPause) Validate() error {
	if err := r.Counts.validate("counts"); err != nil {
		return err
	}
	if r.Counts.Min < 1 {
		return fmt.Errorf("counts: min must be positive")
	}
	if err := r.MiniSetCounts.validate("miniSetCounts"); err != nil {
		return err
	}
	if r.MiniSetCounts.Min < 1 {
		return fmt.Errorf("miniSetCounts: min must be positive")
	}
	if err := r.RestPauseSeconds.validate("restPauseSeconds"); err != nil {
		return err
	}
	if err := r.MiniSets.validate("miniSets"); err != nil {
		return err
	}
	if !r.Counter.IsValid() {
		return fmt.Errorf("unknown counter type %q", r.Counter)
	}
	return validateRPE(r.RPE)
}

func newRestPause(rec Record) (RestPause, error) {
	if rec.Counts == nil || rec.MiniSetCounts == nil || rec.RestPauseSeconds == nil || rec.MiniSets == nil {
		return RestPause{}, fmt.Errorf("restPause: counts, miniSetCounts, restPauseSeconds and miniSets are required")
	}
	r := RestPause{
		Counts:           rec.Counts.Clone(),
		MiniSetCounts:    rec.MiniSetCounts.Clone(),
		RestPauseSeconds: rec.RestPauseSeconds.Clone(),
		MiniSets:         rec.MiniSets.Clone(),
		RPE:              cloneFloatRange(rec.RPE),
		Counter:          rec.Counter,
	}
	return r, r.Validate()
}
