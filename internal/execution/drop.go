package execution

import (
	"fmt"
	"math"

	"github.com/2beens/blueprintfitness/internal/setconfig"

	"github.com/sirupsen/logrus"
)

var _ Service[setconfig.Drop, DropState] = (*DropService)(nil)

type DropState struct {
	Progress
	Configuration  setconfig.Drop `json:"configuration"`
	IsMainSet      bool           `json:"isMainSet"`
	DropsCompleted int            `json:"dropsCompleted"`
}

func (DropState) Scheme() setconfig.Type {
	return setconfig.TypeDrop
}

func (s DropState) clone() DropState {
	c := s
	c.Progress = s.Progress.clone()
	c.Configuration = s.Configuration.Clone().(setconfig.Drop)
	return c
}

type DropService struct {
	base
}

func NewDropService(logger logrus.FieldLogger, opts Options) *DropService {
	return &DropService{base: newBase(logger, opts)}
}

func (s *DropService) InitializeExecution(cfg setconfig.Drop, startingWeight float64) (DropState, error) {
	if err := checkInit(cfg, startingWeight); err != nil {
		return DropState{}, err
	}

	curve := cfg.EstimatedRPECurve()
	state := DropState{
		Progress: newProgress(cfg.TotalSets(), SetData{
			Weight: startingWeight,
			Counts: cfg.StartCounts.Min,
			RPE:    targetRPE(curve, 1),
		}),
		Configuration: cfg.Clone().(setconfig.Drop),
		IsMainSet:     true,
	}
	if state.TotalPhases > 1 {
		next := s.dropFrom(startingWeight, cfg.StartCounts.Min, curve, 2)
		state.NextSetData = &next
	}

	s.debug(setconfig.TypeDrop, state.Progress, "drop set execution initialized")
	return state, nil
}

// dropFrom strips the load and expects fewer reps than the set before.
func (s *DropService) dropFrom(weight float64, reps int, curve []float64, phase int) SetData {
	return SetData{
		Weight: s.opts.roundWeight(weight * s.opts.DropLoadRatio),
		Counts: max(1, int(math.Round(float64(reps)*s.opts.DropRepsRatio))),
		RPE:    targetRPE(curve, phase),
	}
}

func (s *DropService) ProgressToNextPhase(state DropState, set CompletedSet) (DropState, error) {
	if err := state.preflight(set); err != nil {
		return DropState{}, err
	}
	if state.IsMainSet != (state.CurrentPhase == 1) {
		return DropState{}, fmt.Errorf("%w: main set flag does not match phase %d", ErrInvalidState, state.CurrentPhase)
	}

	next := state.clone()
	progress, advanced := state.advance(set)
	if !state.IsMainSet {
		next.DropsCompleted++
	}
	next.IsMainSet = false

	if advanced {
		curve := next.Configuration.EstimatedRPECurve()
		progress.CurrentSetData = s.dropFrom(set.Weight, set.Counts, curve, progress.CurrentPhase)
		if !progress.IsCompleted {
			preview := s.dropFrom(progress.CurrentSetData.Weight, progress.CurrentSetData.Counts, curve, progress.CurrentPhase+1)
			progress.NextSetData = &preview
		}
	}
	next.Progress = progress

	next.Progress = next.Progress.withRest(s.SuggestedRestPeriod(next))
	s.debug(setconfig.TypeDrop, next.Progress, "drop set phase completed")
	return next, nil
}

func (s *DropService) ValidatePhaseCompletion(state DropState, set CompletedSet) (*Validation, error) {
	if err := validateSetData(set); err != nil {
		return nil, err
	}

	var w warnings
	if state.IsMainSet {
		w.add(rpeShortfall(set, state.CurrentSetData.RPE, s.opts.OpeningRPEShortfall))
	} else if planned := state.CurrentSetData.Weight; planned > 0 && set.Weight > planned {
		w.add(fmt.Sprintf("drop weight %g is above the planned %g", set.Weight, planned), true)
	}
	return s.validation(setconfig.TypeDrop, state.Progress, w), nil
}

// SuggestedRestPeriod is only the time needed to strip the load.
func (s *DropService) SuggestedRestPeriod(state DropState) int {
	if state.CurrentPhase <= 1 || state.IsCompleted {
		return 0
	}
	return s.opts.DropRest.at(state.CurrentPhase)
}
