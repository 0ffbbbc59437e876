// Package setconfig holds the planned parameters of a working set scheme
// (standard, drop, pyramidal, myo-reps, rest-pause, MAV) and the pure queries
// derived from them.
package setconfig

import (
	"errors"
	"math"
)

var (
	ErrUnknownType          = errors.New("unknown set configuration type")
	ErrInvalidConfiguration = errors.New("invalid set configuration")
)

// Type is the discriminant stored in the plain record.
type Type string

const (
	TypeStandard  Type = "standard"
	TypeDrop      Type = "drop"
	TypeMyoReps   Type = "myoReps"
	TypePyramidal Type = "pyramidal"
	TypeRestPause Type = "restPause"
	TypeMAV       Type = "mav"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypeStandard,
		TypeDrop,
		TypeMyoReps,
		TypePyramidal,
		TypeRestPause,
		TypeMAV:
		return true
	default:
		return false
	}
}

// CounterType is what a set counts: repetitions or seconds under tension.
type CounterType string

const (
	CounterReps    CounterType = "reps"
	CounterSeconds CounterType = "seconds"
)

func (c CounterType) IsValid() bool {
	switch c {
	case CounterReps, CounterSeconds, "":
		return true
	default:
		return false
	}
}

func (c CounterType) unit() string {
	if c == CounterSeconds {
		return "s"
	}
	return "reps"
}

func counterOrDefault(c CounterType) CounterType {
	if c == "" {
		return CounterReps
	}
	return c
}

// Configuration is implemented by the six scheme variants only.
type Configuration interface {
	Type() Type
	TotalSets() int
	Summary() string
	// EstimatedDuration returns the estimated working time in seconds.
	EstimatedDuration(timing Timing) float64
	// EstimatedRPECurve returns the expected RPE for each planned set.
	EstimatedRPECurve() []float64
	EmptySets(profileID string, ids IDGenerator) []PerformedSet
	Record() Record
	Clone() Configuration
	Validate() error

	isConfiguration()
}

// Record is the plain, persisted form of a configuration. Only the fields
// belonging to Type are populated.
type Record struct {
	Type    Type        `json:"type"`
	Counter CounterType `json:"counter,omitempty"`

	Sets       *IntRange   `json:"sets,omitempty"`
	Counts     *IntRange   `json:"counts,omitempty"`
	Load       *FloatRange `json:"load,omitempty"`
	Percentage *FloatRange `json:"percentage,omitempty"`
	RPE        *FloatRange `json:"rpe,omitempty"`

	StartCounts *IntRange     `json:"startCounts,omitempty"`
	Drops       *IntRange     `json:"drops,omitempty"`
	EndCounts   *IntRange     `json:"endCounts,omitempty"`
	Step        *IntRange     `json:"step,omitempty"`
	Mode        PyramidalMode `json:"mode,omitempty"`

	ActivationCounts *IntRange `json:"activationCounts,omitempty"`
	MiniSets         *IntRange `json:"miniSets,omitempty"`
	MiniSetCounts    *IntRange `json:"miniSetCounts,omitempty"`
	RestPauseSeconds *IntRange `json:"restPauseSeconds,omitempty"`
}

// Timing drives duration estimates.
type Timing struct {
	TimePerRep     float64 `json:"timePerRep"`
	BaseTimePerSet float64 `json:"baseTimePerSet"`
}

func DefaultTiming() Timing {
	return Timing{
		TimePerRep:     3,
		BaseTimePerSet: 5,
	}
}

func (t Timing) orDefault() Timing {
	def := DefaultTiming()
	if t.TimePerRep <= 0 {
		t.TimePerRep = def.TimePerRep
	}
	if t.BaseTimePerSet < 0 {
		t.BaseTimePerSet = def.BaseTimePerSet
	}
	return t
}

// SetRole tells the UI which part of the scheme a placeholder belongs to.
type SetRole string

const (
	RoleStraight    SetRole = "straight"
	RoleMain        SetRole = "main"
	RoleDrop        SetRole = "drop"
	RolePyramidStep SetRole = "pyramidStep"
	RoleActivation  SetRole = "activation"
	RoleMiniSet     SetRole = "miniSet"
)

// PerformedSet is an empty placeholder for a set the user is about to do.
// Targets are carried only for pre-filling the form.
type PerformedSet struct {
	ID          string      `json:"id"`
	ProfileID   string      `json:"profileId"`
	Counter     CounterType `json:"counter"`
	Role        SetRole     `json:"role"`
	ActualCount int         `json:"actualCount"`
	ActualLoad  float64     `json:"actualLoad"`
	Completed   bool        `json:"completed"`

	TargetCounts *IntRange   `json:"targetCounts,omitempty"`
	TargetLoad   *FloatRange `json:"targetLoad,omitempty"`
	TargetRPE    *FloatRange `json:"targetRpe,omitempty"`
}

type setTargets struct {
	counts *IntRange
	load   *FloatRange
	rpe    *FloatRange
}

func newPerformedSet(ids IDGenerator, profileID string, counter CounterType, role SetRole, targets setTargets) PerformedSet {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	return PerformedSet{
		ID:           ids.NewID(),
		ProfileID:    profileID,
		Counter:      counterOrDefault(counter),
		Role:         role,
		TargetCounts: cloneIntRange(targets.counts),
		TargetLoad:   cloneFloatRange(targets.load),
		TargetRPE:    cloneFloatRange(targets.rpe),
	}
}

// rpeCurve starts at start and rises by inc per set, capped at 10.
func rpeCurve(start float64, n int, inc float64) []float64 {
	curve := make([]float64, n)
	for i := range curve {
		curve[i] = math.Min(10, start+float64(i)*inc)
	}
	return curve
}

func rpeStart(rpe *FloatRange, fallback float64) float64 {
	if rpe == nil {
		return fallback
	}
	return rpe.Min
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
