package execution

import (
	"fmt"
	"math"
)

func rpeShortfall(set CompletedSet, target *float64, shortfall float64) (string, bool) {
	if set.RPE == nil || target == nil {
		return "", false
	}
	if *set.RPE < *target-shortfall {
		return fmt.Sprintf("rpe %g is well below the expected %g", *set.RPE, *target), true
	}
	return "", false
}

func weightDeviation(set CompletedSet, target SetData, tolerance float64) (string, bool) {
	if target.Weight <= 0 {
		return "", false
	}
	deviation := math.Abs(set.Weight-target.Weight) / target.Weight
	if deviation > tolerance {
		return fmt.Sprintf("weight %g deviates %.0f%% from the planned %g", set.Weight, deviation*100, target.Weight), true
	}
	return "", false
}

func repsDeviation(set CompletedSet, target SetData, tolerance int) (string, bool) {
	diff := set.Counts - target.Counts
	if diff < 0 {
		diff = -diff
	}
	if diff > tolerance {
		return fmt.Sprintf("%d reps deviate from the planned %d", set.Counts, target.Counts), true
	}
	return "", false
}

func miniSetOverflow(set CompletedSet, ceiling int, factor float64) (string, bool) {
	if float64(set.Counts) > float64(ceiling)*factor {
		return fmt.Sprintf("%d reps is far above the mini-set ceiling of %d", set.Counts, ceiling), true
	}
	return "", false
}

type warnings []string

// add keeps msg when the check fired.
func (w *warnings) add(msg string, fired bool) {
	if fired {
		*w = append(*w, msg)
	}
}
