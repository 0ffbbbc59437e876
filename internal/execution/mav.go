package execution

import (
	"fmt"

	"github.com/2beens/blueprintfitness/internal/setconfig"

	"github.com/sirupsen/logrus"
)

var _ Service[setconfig.MAV, MAVState] = (*MAVService)(nil)

type MAVState struct {
	Progress
	Configuration setconfig.MAV `json:"configuration"`
	TotalVolume   int           `json:"totalVolume"`
}

func (MAVState) Scheme() setconfig.Type {
	return setconfig.TypeMAV
}

func (s MAVState) clone() MAVState {
	c := s
	c.Progress = s.Progress.clone()
	c.Configuration = s.Configuration.Clone().(setconfig.MAV)
	return c
}

type MAVService struct {
	base
}

func NewMAVService(logger logrus.FieldLogger, opts Options) *MAVService {
	return &MAVService{base: newBase(logger, opts)}
}

func (s *MAVService) InitializeExecution(cfg setconfig.MAV, startingWeight float64) (MAVState, error) {
	if err := checkInit(cfg, startingWeight); err != nil {
		return MAVState{}, err
	}

	curve := cfg.EstimatedRPECurve()
	state := MAVState{
		Progress:      newProgress(cfg.TotalSets(), straightSet(startingWeight, cfg.Counts, curve, 1)),
		Configuration: cfg.Clone().(setconfig.MAV),
	}
	if state.TotalPhases > 1 {
		next := straightSet(startingWeight, cfg.Counts, curve, 2)
		state.NextSetData = &next
	}

	s.debug(setconfig.TypeMAV, state.Progress, "mav execution initialized")
	return state, nil
}

func (s *MAVService) ProgressToNextPhase(state MAVState, set CompletedSet) (MAVState, error) {
	if err := state.preflight(set); err != nil {
		return MAVState{}, err
	}

	next := state.clone()
	progress, advanced := state.advance(set)
	next.TotalVolume += set.Counts
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
	s.debug(setconfig.TypeMAV, next.Progress, "mav phase completed")
	return next, nil
}

// ValidatePhaseCompletion flags sets that fall short of the planned volume
// and sets taken too close to failure before the last one.
func (s *MAVService) ValidatePhaseCompletion(state MAVState, set CompletedSet) (*Validation, error) {
	if err := validateSetData(set); err != nil {
		return nil, err
	}

	var w warnings
	if planned := state.CurrentSetData.Counts; set.Counts < planned {
		w.add(fmt.Sprintf("%d reps fall short of the planned %d", set.Counts, planned), true)
	}
	if set.RPE != nil && *set.RPE >= s.opts.MAVFailureRPE && state.CurrentPhase < state.TotalPhases {
		w.add(fmt.Sprintf("rpe %g is close to failure with sets remaining", *set.RPE), true)
	}
	w.add(weightDeviation(set, state.CurrentSetData, s.opts.WeightDeviation))
	return s.validation(setconfig.TypeMAV, state.Progress, w), nil
}

// SuggestedRestPeriod tapers as volume accumulates.
func (s *MAVService) SuggestedRestPeriod(state MAVState) int {
	if state.CurrentPhase <= 1 || state.IsCompleted {
		return 0
	}
	return s.opts.MAVRest.at(state.CurrentPhase)
}
