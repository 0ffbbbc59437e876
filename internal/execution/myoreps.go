package execution

import (
	"fmt"
	"math"

	"github.com/2beens/blueprintfitness/internal/setconfig"

	"github.com/sirupsen/logrus"
)

var _ Service[setconfig.MyoReps, MyoRepsState] = (*MyoRepsService)(nil)

type MyoRepsState struct {
	Progress
	Configuration     setconfig.MyoReps `json:"configuration"`
	IsActivationPhase bool              `json:"isActivationPhase"`
	MiniSetsCompleted int               `json:"miniSetsCompleted"`
	ActivationReps    *int              `json:"activationReps,omitempty"`
}

func (MyoRepsState) Scheme() setconfig.Type {
	return setconfig.TypeMyoReps
}

func (s MyoRepsState) clone() MyoRepsState {
	c := s
	c.Progress = s.Progress.clone()
	c.Configuration = s.Configuration.Clone().(setconfig.MyoReps)
	if s.ActivationReps != nil {
		reps := *s.ActivationReps
		c.ActivationReps = &reps
	}
	return c
}

type MyoRepsService struct {
	base
}

func NewMyoRepsService(logger logrus.FieldLogger, opts Options) *MyoRepsService {
	return &MyoRepsService{base: newBase(logger, opts)}
}

func (s *MyoRepsService) InitializeExecution(cfg setconfig.MyoReps, startingWeight float64) (MyoRepsState, error) {
	if err := checkInit(cfg, startingWeight); err != nil {
		return MyoRepsState{}, err
	}

	curve := cfg.EstimatedRPECurve()
	state := MyoRepsState{
		Progress: newProgress(cfg.TotalSets(), SetData{
			Weight: startingWeight,
			Counts: cfg.ActivationCounts.Min,
			RPE:    targetRPE(curve, 1),
		}),
		Configuration:     cfg.Clone().(setconfig.MyoReps),
		IsActivationPhase: true,
	}
	if state.TotalPhases > 1 {
		state.NextSetData = &SetData{
			Weight: startingWeight,
			Counts: s.miniSetTarget(cfg, cfg.ActivationCounts.Min),
			RPE:    targetRPE(curve, 2),
		}
	}

	s.debug(setconfig.TypeMyoReps, state.Progress, "myo-reps execution initialized")
	return state, nil
}

// miniSetTarget derives the mini-set reps from the activation set, bounded by
// the configured mini-set range.
func (s *MyoRepsService) miniSetTarget(cfg setconfig.MyoReps, activationReps int) int {
	reps := int(math.Round(float64(activationReps) * s.opts.MyoMiniSetRatio))
	return cfg.MiniSetCounts.Clamp(reps)
}

func (s *MyoRepsService) ProgressToNextPhase(state MyoRepsState, set CompletedSet) (MyoRepsState, error) {
	if err := state.preflight(set); err != nil {
		return MyoRepsState{}, err
	}
	if !state.IsActivationPhase && state.ActivationReps == nil {
		return MyoRepsState{}, fmt.Errorf("%w: mini-set phase without activation reps", ErrInvalidState)
	}

	next := state.clone()
	progress, advanced := state.advance(set)

	var target int
	if state.IsActivationPhase {
		reps := set.Counts
		next.ActivationReps = &reps
		next.IsActivationPhase = false
		target = s.miniSetTarget(next.Configuration, set.Counts)
	} else {
		next.MiniSetsCompleted++
		// Mini-sets never ask for more than the previous one delivered.
		target = next.Configuration.MiniSetCounts.Clamp(min(state.CurrentSetData.Counts, set.Counts))
	}

	if advanced {
		curve := next.Configuration.EstimatedRPECurve()
		progress.CurrentSetData = SetData{
			Weight: set.Weight,
			Counts: target,
			RPE:    targetRPE(curve, progress.CurrentPhase),
		}
		if !progress.IsCompleted {
			progress.NextSetData = &SetData{
				Weight: set.Weight,
				Counts: target,
				RPE:    targetRPE(curve, progress.CurrentPhase+1),
			}
		}
	}
	next.Progress = progress

	next.Progress = next.Progress.withRest(s.SuggestedRestPeriod(next))
	s.debug(setconfig.TypeMyoReps, next.Progress, "myo-reps phase completed")
	return next, nil
}

func (s *MyoRepsService) ValidatePhaseCompletion(state MyoRepsState, set CompletedSet) (*Validation, error) {
	if err := validateSetData(set); err != nil {
		return nil, err
	}

	var w warnings
	if state.IsActivationPhase {
		w.add(rpeShortfall(set, state.CurrentSetData.RPE, s.opts.OpeningRPEShortfall))
	} else {
		w.add(miniSetOverflow(set, state.Configuration.MiniSetCounts.Upper(), s.opts.MiniSetCeilingFactor))
	}
	return s.validation(setconfig.TypeMyoReps, state.Progress, w), nil
}

// SuggestedRestPeriod shortens the breather with every mini-set.
func (s *MyoRepsService) SuggestedRestPeriod(state MyoRepsState) int {
	if state.CurrentPhase <= 1 || state.IsCompleted {
		return 0
	}
	return s.opts.MyoRest.at(state.CurrentPhase)
}
