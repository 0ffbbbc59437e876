package execution

import (
	"fmt"
	"math"

	"github.com/2beens/blueprintfitness/internal/setconfig"

	"github.com/sirupsen/logrus"
)

var _ Service[setconfig.RestPause, RestPauseState] = (*RestPauseService)(nil)

type RestPauseState struct {
	Progress
	Configuration   setconfig.RestPause `json:"configuration"`
	IsMainSet       bool                `json:"isMainSet"`
	PausesCompleted int                 `json:"pausesCompleted"`
	MainSetReps     *int                `json:"mainSetReps,omitempty"`
	TotalReps       int                 `json:"totalReps"`
}

func (RestPauseState) Scheme() setconfig.Type {
	return setconfig.TypeRestPause
}

func (s RestPauseState) clone() RestPauseState {
	c := s
	c.Progress = s.Progress.clone()
	c.Configuration = s.Configuration.Clone().(setconfig.RestPause)
	if s.MainSetReps != nil {
		reps := *s.MainSetReps
		c.MainSetReps = &reps
	}
	return c
}

type RestPauseService struct {
	base
}

func NewRestPauseService(logger logrus.FieldLogger, opts Options) *RestPauseService {
	return &RestPauseService{base: newBase(logger, opts)}
}

func (s *RestPauseService) InitializeExecution(cfg setconfig.RestPause, startingWeight float64) (RestPauseState, error) {
	if err := checkInit(cfg, startingWeight); err != nil {
		return RestPauseState{}, err
	}

	curve := cfg.EstimatedRPECurve()
	state := RestPauseState{
		Progress: newProgress(cfg.TotalSets(), SetData{
			Weight: startingWeight,
			Counts: cfg.Counts.Min,
			RPE:    targetRPE(curve, 1),
		}),
		Configuration: cfg.Clone().(setconfig.RestPause),
		IsMainSet:     true,
	}
	if state.TotalPhases > 1 {
		state.NextSetData = &SetData{
			Weight: startingWeight,
			Counts: s.miniSetTarget(cfg, cfg.Counts.Min),
			RPE:    targetRPE(curve, 2),
		}
	}

	s.debug(setconfig.TypeRestPause, state.Progress, "rest-pause execution initialized")
	return state, nil
}

func (s *RestPauseService) miniSetTarget(cfg setconfig.RestPause, mainSetReps int) int {
	reps := int(math.Round(float64(mainSetReps) * s.opts.RestPauseMiniSetRatio))
	return cfg.MiniSetCounts.Clamp(reps)
}

func (s *RestPauseService) ProgressToNextPhase(state RestPauseState, set CompletedSet) (RestPauseState, error) {
	if err := state.preflight(set); err != nil {
		return RestPauseState{}, err
	}
	if !state.IsMainSet && state.MainSetReps == nil {
		return RestPauseState{}, fmt.Errorf("%w: pause phase without main set reps", ErrInvalidState)
	}

	next := state.clone()
	progress, advanced := state.advance(set)
	next.TotalReps += set.Counts

	var target int
	if state.IsMainSet {
		reps := set.Counts
		next.MainSetReps = &reps
		next.IsMainSet = false
		target = s.miniSetTarget(next.Configuration, set.Counts)
	} else {
		next.PausesCompleted++
		// Every continuation after a short pause yields one rep less.
		target = next.Configuration.MiniSetCounts.Clamp(set.Counts - 1)
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
				Counts: next.Configuration.MiniSetCounts.Clamp(target - 1),
				RPE:    targetRPE(curve, progress.CurrentPhase+1),
			}
		}
	}
	next.Progress = progress

	next.Progress = next.Progress.withRest(s.SuggestedRestPeriod(next))
	s.debug(setconfig.TypeRestPause, next.Progress, "rest-pause phase completed")
	return next, nil
}

func (s *RestPauseService) ValidatePhaseCompletion(state RestPauseState, set CompletedSet) (*Validation, error) {
	if err := validateSetData(set); err != nil {
		return nil, err
	}

	var w warnings
	if state.IsMainSet {
		w.add(rpeShortfall(set, state.CurrentSetData.RPE, s.opts.OpeningRPEShortfall))
	} else {
		w.add(miniSetOverflow(set, state.Configuration.MiniSetCounts.Upper(), s.opts.MiniSetCeilingFactor))
	}
	w.add(weightDeviation(set, state.CurrentSetData, s.opts.WeightDeviation))
	return s.validation(setconfig.TypeRestPause, state.Progress, w), nil
}

// SuggestedRestPeriod starts from the configured pause and shortens it on
// every further continuation.
func (s *RestPauseService) SuggestedRestPeriod(state RestPauseState) int {
	if state.CurrentPhase <= 1 || state.IsCompleted {
		return 0
	}
	taper := Taper{
		Base: state.Configuration.RestPauseSeconds.Min,
		Step: s.opts.RestPauseRestStep,
		Min:  s.opts.RestPauseRestMin,
	}
	return taper.at(state.CurrentPhase)
}
