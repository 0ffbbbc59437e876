package sets

import (
	"github.com/2beens/blueprintfitness/internal/setconfig"
)

// Preview is everything the planner shows for a configuration before it is
// executed.
type Preview struct {
	Type                     setconfig.Type           `json:"type"`
	TotalSets                int                      `json:"totalSets"`
	Summary                  string                   `json:"summary"`
	EstimatedDurationSeconds float64                  `json:"estimatedDurationSeconds"`
	RPECurve                 []float64                `json:"rpeCurve"`
	EmptySets                []setconfig.PerformedSet `json:"emptySets"`
	Record                   setconfig.Record         `json:"record"`
}

func NewPreview(cfg setconfig.Configuration, profileID string, timing setconfig.Timing, ids setconfig.IDGenerator) Preview {
	return Preview{
		Type:                     cfg.Type(),
		TotalSets:                cfg.TotalSets(),
		Summary:                  cfg.Summary(),
		EstimatedDurationSeconds: cfg.EstimatedDuration(timing),
		RPECurve:                 cfg.EstimatedRPECurve(),
		EmptySets:                cfg.EmptySets(profileID, ids),
		Record:                   cfg.Record(),
	}
}
