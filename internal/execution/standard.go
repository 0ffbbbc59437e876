package execution

import (
	"github.com/2beens/blueprintfitness/internal/setconfig"

	"github.com/sirupsen/logrus"
)

var _ Service[setconfig.Standard, StandardState] = (*StandardService)(nil)

type StandardState struct {
	Progress
	Configuration setconfig.Standard `json:"configuration"`
}

func (StandardState) Scheme() setconfig.Type {
	return setconfig.TypeStandard
}

func (s StandardState) clone() StandardState {
	c := s
	c.Progress = s.Progress.clone()
	c.Configuration = s.Configuration.Clone().(setconfig.Standard)
	return c
}

type StandardService struct {
	base
}

func NewStandardService(logger logrus.FieldLogger, opts Options) *StandardService {
	return &StandardService{base: newBase(logger, opts)}
}

func (s *StandardService) InitializeExecution(cfg setconfig.Standard, startingWeight float64) (StandardState, error) {
	if err := checkInit(cfg, startingWeight); err != nil {
		return StandardState{}, err
	}

	state := StandardState{
		Progress:      newProgress(cfg.TotalSets(), straightSet(startingWeight, cfg.Counts, cfg.EstimatedRPECurve(), 1)),
		Configuration: cfg.Clone().(setconfig.Standard),
	}
	if state.TotalPhases > 1 {
		next := straightSet(startingWeight, cfg.Counts, cfg.EstimatedRPECurve(), 2)
		state.NextSetData = &next
	}

	s.debug(setconfig.TypeStandard, state.Progress, "standard execution initialized")
	return state, nil
}

// straightSet keeps the load of the previous set and the bottom of the rep range.
func straightSet(weight float64, counts setconfig.IntRange, curve []float64, phase int) SetData {
	return SetData{
		Weight: weight,
		Counts: counts.Min,
		RPE:    targetRPE(curve, phase),
	}
}

func (s *StandardService) ProgressToNextPhase(state StandardState, set CompletedSet) (StandardState, error) {
	if err := state.preflight(set); err != nil {
		return StandardState{}, err
	}

	next := state.clone()
	progress, advanced := state.advance(set)
	if advanced {
		curve := next.Configuration.EstimatedRPECurve()
		progress.CurrentSetData = straightSet(set.Weight, next.Configuration.Counts, curve, progress.CurrentPhase)
		if !progress.IsCompleted {
			preview := straightSet(set.Weight, next.Configuration.Counts, curve, progress.CurrentPhase+1)
			progress.NextSetData = &preview
		}
	}
	next.Progress = progress

	next.Progress = next.Progress.withRest(s.SuggestedRestPeriod(next))
	s.debug(setconfig.TypeStandard, next.Progress, "standard phase completed")
	return next, nil
}

func (s *StandardService) ValidatePhaseCompletion(state StandardState, set CompletedSet) (*Validation, error) {
	if err := validateSetData(set); err != nil {
		return nil, err
	}

	target := state.CurrentSetData
	// Anything within the configured rep range is on plan.
	target.Counts = state.Configuration.Counts.Clamp(set.Counts)
	var w warnings
	w.add(weightDeviation(set, target, s.opts.WeightDeviation))
	w.add(repsDeviation(set, target, s.opts.RepsDeviation))
	w.add(rpeShortfall(set, target.RPE, s.opts.RPEShortfall))
	return s.validation(setconfig.TypeStandard, state.Progress, w), nil
}

func (s *StandardService) SuggestedRestPeriod(state StandardState) int {
	if state.CurrentPhase <= 1 || state.IsCompleted {
		return 0
	}
	return s.opts.repRest(state.CurrentSetData.Counts)
}
