package setconfig

import (
	"fmt"
	"strconv"
)

// Direction tells in which order a min/max pair is displayed when the two differ.
type Direction string

const (
	DirectionAsc  Direction = "asc"
	DirectionDesc Direction = "desc"
)

func (d Direction) IsValid() bool {
	switch d {
	case DirectionAsc, DirectionDesc, "":
		return true
	default:
		return false
	}
}

// IntRange is a whole-number range (sets, reps, seconds). A nil Max means unbounded.
type IntRange struct {
	Min       int       `json:"min"`
	Max       *int      `json:"max,omitempty"`
	Direction Direction `json:"direction,omitempty"`
}

func NewIntRange(min int) IntRange {
	return IntRange{Min: min, Direction: DirectionAsc}
}

func NewIntRangeBetween(min, max int) IntRange {
	return IntRange{Min: min, Max: &max, Direction: DirectionAsc}
}

// Upper returns Max when set, Min otherwise.
func (r IntRange) Upper() int {
	if r.Max != nil {
		return *r.Max
	}
	return r.Min
}

// Clamp bounds v to [Min, Upper()].
func (r IntRange) Clamp(v int) int {
	if v < r.Min {
		return r.Min
	}
	if upper := r.Upper(); v > upper {
		return upper
	}
	return v
}

func (r IntRange) Clone() IntRange {
	c := r
	if r.Max != nil {
		max := *r.Max
		c.Max = &max
	}
	return c
}

func (r IntRange) validate(name string) error {
	if r.Min < 0 {
		return fmt.Errorf("%s: min must not be negative, got %d", name, r.Min)
	}
	if r.Max != nil && *r.Max < r.Min {
		return fmt.Errorf("%s: max %d is lower than min %d", name, *r.Max, r.Min)
	}
	if !r.Direction.IsValid() {
		return fmt.Errorf("%s: unknown direction %q", name, r.Direction)
	}
	return nil
}

func (r IntRange) String() string {
	if r.Max == nil {
		return strconv.Itoa(r.Min)
	}
	if *r.Max == r.Min {
		return strconv.Itoa(r.Min)
	}
	if r.Direction == DirectionDesc {
		return fmt.Sprintf("%d-%d", *r.Max, r.Min)
	}
	return fmt.Sprintf("%d-%d", r.Min, *r.Max)
}

// FloatRange is used for load, percentage and RPE values.
type FloatRange struct {
	Min       float64   `json:"min"`
	Max       *float64  `json:"max,omitempty"`
	Direction Direction `json:"direction,omitempty"`
}

func NewFloatRange(min float64) FloatRange {
	return FloatRange{Min: min, Direction: DirectionAsc}
}

func NewFloatRangeBetween(min, max float64) FloatRange {
	return FloatRange{Min: min, Max: &max, Direction: DirectionAsc}
}

func (r FloatRange) Upper() float64 {
	if r.Max != nil {
		return *r.Max
	}
	return r.Min
}

func (r FloatRange) Clone() FloatRange {
	c := r
	if r.Max != nil {
		max := *r.Max
		c.Max = &max
	}
	return c
}

func (r FloatRange) validate(name string) error {
	if r.Min < 0 {
		return fmt.Errorf("%s: min must not be negative, got %g", name, r.Min)
	}
	if r.Max != nil && *r.Max < r.Min {
		return fmt.Errorf("%s: max %g is lower than min %g", name, *r.Max, r.Min)
	}
	if !r.Direction.IsValid() {
		return fmt.Errorf("%s: unknown direction %q", name, r.Direction)
	}
	return nil
}

func (r FloatRange) String() string {
	min := strconv.FormatFloat(r.Min, 'f', -1, 64)
	if r.Max == nil || *r.Max == r.Min {
		return min
	}
	max := strconv.FormatFloat(*r.Max, 'f', -1, 64)
	if r.Direction == DirectionDesc {
		return max + "-" + min
	}
	return min + "-" + max
}

func cloneFloatRange(r *FloatRange) *FloatRange {
	if r == nil {
		return nil
	}
	c := r.Clone()
	return &c
}

func cloneIntRange(r *IntRange) *IntRange {
	if r == nil {
		return nil
	}
	c := r.Clone()
	return &c
}

func validateRPE(r *FloatRange) error {
	if r == nil {
		return nil
	}
	if err := r.validate("rpe"); err != nil {
		return err
	}
	if r.Min < 1 || r.Upper() > 10 {
		return fmt.Errorf("rpe: must be within [1, 10], got %s", r.String())
	}
	return nil
}
