package execution

import "math"

// Taper is a rest suggestion that shrinks by Step seconds on every phase after
// the second one, never going below Min.
type Taper struct {
	Base int `toml:"base"`
	Step int `toml:"step"`
	Min  int `toml:"min"`
}

func (t Taper) at(phase int) int {
	return max(t.Min, t.Base-t.Step*(phase-2))
}

func (t Taper) orDefault(def Taper) Taper {
	if t == (Taper{}) {
		return def
	}
	return t
}

// Options holds the heuristics the execution services work with. None of the
// numbers are contracts, they are tuned by feel and can be overridden from the
// config file. Zero and negative values fall back to DefaultOptions, so a
// heuristic can be retuned but not switched off by setting it to 0.
type Options struct {
	// Suggested weights are rounded to this increment.
	WeightIncrement float64 `toml:"weight_increment"`

	// Pyramid load changes by this fraction for every rep of difference
	// between two consecutive steps, never dropping below
	// PyramidMinLoadFactor of the previous load.
	PyramidLoadPerRep    float64 `toml:"pyramid_load_per_rep"`
	PyramidMinLoadFactor float64 `toml:"pyramid_min_load_factor"`
	DropLoadRatio     float64 `toml:"drop_load_ratio"`
	DropRepsRatio     float64 `toml:"drop_reps_ratio"`

	// Mini-set targets derived from the reps of the opening set.
	MyoMiniSetRatio       float64 `toml:"myo_mini_set_ratio"`
	RestPauseMiniSetRatio float64 `toml:"rest_pause_mini_set_ratio"`

	// Rep based rest: base + per_rep * (ceiling - reps) up to the ceiling, one
	// second less per rep above it, at least min.
	RepRestBase          int     `toml:"rep_rest_base"`
	RepRestPerRep        int     `toml:"rep_rest_per_rep"`
	RepRestCeiling       int     `toml:"rep_rest_ceiling"`
	RepRestMin           int     `toml:"rep_rest_min"`
	DescendingRestFactor float64 `toml:"descending_rest_factor"`

	MyoRest           Taper `toml:"myo_rest"`
	DropRest          Taper `toml:"drop_rest"`
	MAVRest           Taper `toml:"mav_rest"`
	RestPauseRestStep int   `toml:"rest_pause_rest_step"`
	RestPauseRestMin  int   `toml:"rest_pause_rest_min"`

	// Advisory warning thresholds.
	WeightDeviation      float64 `toml:"weight_deviation"`
	RepsDeviation        int     `toml:"reps_deviation"`
	RPEShortfall         float64 `toml:"rpe_shortfall"`
	OpeningRPEShortfall  float64 `toml:"opening_rpe_shortfall"`
	MiniSetCeilingFactor float64 `toml:"mini_set_ceiling_factor"`
	MAVFailureRPE        float64 `toml:"mav_failure_rpe"`
}

func DefaultOptions() Options {
	return Options{
		WeightIncrement:       0.5,
		PyramidLoadPerRep:     0.025,
		PyramidMinLoadFactor:  0.5,
		DropLoadRatio:         0.8,
		DropRepsRatio:         0.8,
		MyoMiniSetRatio:       0.25,
		RestPauseMiniSetRatio: 0.3,

		RepRestBase:          60,
		RepRestPerRep:        10,
		RepRestCeiling:       15,
		RepRestMin:           15,
		DescendingRestFactor: 1.2,

		MyoRest:           Taper{Base: 20, Step: 2, Min: 10},
		DropRest:          Taper{Base: 15, Step: 2, Min: 10},
		MAVRest:           Taper{Base: 90, Step: 15, Min: 30},
		RestPauseRestStep: 2,
		RestPauseRestMin:  10,

		WeightDeviation:      0.1,
		RepsDeviation:        2,
		RPEShortfall:         2,
		OpeningRPEShortfall:  1,
		MiniSetCeilingFactor: 1.5,
		MAVFailureRPE:        9.5,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	o.WeightIncrement = orFloat(o.WeightIncrement, def.WeightIncrement)
	o.PyramidLoadPerRep = orFloat(o.PyramidLoadPerRep, def.PyramidLoadPerRep)
	o.PyramidMinLoadFactor = orFloat(o.PyramidMinLoadFactor, def.PyramidMinLoadFactor)
	o.DropLoadRatio = orFloat(o.DropLoadRatio, def.DropLoadRatio)
	o.DropRepsRatio = orFloat(o.DropRepsRatio, def.DropRepsRatio)
	o.MyoMiniSetRatio = orFloat(o.MyoMiniSetRatio, def.MyoMiniSetRatio)
	o.RestPauseMiniSetRatio = orFloat(o.RestPauseMiniSetRatio, def.RestPauseMiniSetRatio)

	o.RepRestBase = orInt(o.RepRestBase, def.RepRestBase)
	o.RepRestPerRep = orInt(o.RepRestPerRep, def.RepRestPerRep)
	o.RepRestCeiling = orInt(o.RepRestCeiling, def.RepRestCeiling)
	o.RepRestMin = orInt(o.RepRestMin, def.RepRestMin)
	o.DescendingRestFactor = orFloat(o.DescendingRestFactor, def.DescendingRestFactor)

	o.MyoRest = o.MyoRest.orDefault(def.MyoRest)
	o.DropRest = o.DropRest.orDefault(def.DropRest)
	o.MAVRest = o.MAVRest.orDefault(def.MAVRest)
	o.RestPauseRestStep = orInt(o.RestPauseRestStep, def.RestPauseRestStep)
	o.RestPauseRestMin = orInt(o.RestPauseRestMin, def.RestPauseRestMin)

	o.WeightDeviation = orFloat(o.WeightDeviation, def.WeightDeviation)
	o.RepsDeviation = orInt(o.RepsDeviation, def.RepsDeviation)
	o.RPEShortfall = orFloat(o.RPEShortfall, def.RPEShortfall)
	o.OpeningRPEShortfall = orFloat(o.OpeningRPEShortfall, def.OpeningRPEShortfall)
	o.MiniSetCeilingFactor = orFloat(o.MiniSetCeilingFactor, def.MiniSetCeilingFactor)
	o.MAVFailureRPE = orFloat(o.MAVFailureRPE, def.MAVFailureRPE)
	return o
}

// repRest grows as the rep count drops: heavier sets need longer recovery.
func (o Options) repRest(reps int) int {
	if reps <= o.RepRestCeiling {
		return max(o.RepRestMin, o.RepRestBase+o.RepRestPerRep*(o.RepRestCeiling-reps))
	}
	return max(o.RepRestMin, o.RepRestBase-(reps-o.RepRestCeiling))
}

// roundWeight rounds to the increment. A positive load never rounds to 0.
func (o Options) roundWeight(w float64) float64 {
	if w <= 0 {
		return 0
	}
	return math.Max(o.WeightIncrement, math.Round(w/o.WeightIncrement)*o.WeightIncrement)
}

func orFloat(v, def float64) float64 {
	if v <= 0 {
		return def
	}
	return v
}

func orInt(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
