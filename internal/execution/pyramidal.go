package execution

import (
	"fmt"
	"math"

	"github.com/2beens/blueprintfitness/internal/setconfig"

	"github.com/sirupsen/logrus"
)

var _ Service[setconfig.Pyramidal, PyramidalState] = (*PyramidalService)(nil)

type PyramidalState struct {
	Progress
	Configuration        setconfig.Pyramidal        `json:"configuration"`
	PyramidSequence      []int                      `json:"pyramidSequence"`
	CurrentDirection     setconfig.PyramidDirection `json:"currentDirection"`
	DirectionSwitchPoint *int                       `json:"directionSwitchPoint,omitempty"`
}

func (PyramidalState) Scheme() setconfig.Type {
	return setconfig.TypePyramidal
}

func (s PyramidalState) clone() PyramidalState {
	c := s
	c.Progress = s.Progress.clone()
	c.Configuration = s.Configuration.Clone().(setconfig.Pyramidal)
	c.PyramidSequence = append([]int(nil), s.PyramidSequence...)
	if s.DirectionSwitchPoint != nil {
		sp := *s.DirectionSwitchPoint
		c.DirectionSwitchPoint = &sp
	}
	return c
}

type PyramidalService struct {
	base
}

func NewPyramidalService(logger logrus.FieldLogger, opts Options) *PyramidalService {
	return &PyramidalService{base: newBase(logger, opts)}
}

func (s *PyramidalService) InitializeExecution(cfg setconfig.Pyramidal, startingWeight float64) (PyramidalState, error) {
	if err := checkInit(cfg, startingWeight); err != nil {
		return PyramidalState{}, err
	}

	seq := cfg.Sequence()
	curve := cfg.EstimatedRPECurve()
	state := PyramidalState{
		Progress: newProgress(len(seq), SetData{
			Weight: startingWeight,
			Counts: seq[0],
			RPE:    targetRPE(curve, 1),
		}),
		Configuration:    cfg.Clone().(setconfig.Pyramidal),
		PyramidSequence:  seq,
		CurrentDirection: cfg.DirectionAt(0),
	}
	if sp := cfg.SwitchPoint(); sp >= 0 {
		state.DirectionSwitchPoint = &sp
	}
	if len(seq) > 1 {
		next := s.target(seq, curve, 1, seq[0], startingWeight)
		state.NextSetData = &next
	}

	s.debug(setconfig.TypePyramidal, state.Progress, "pyramid execution initialized")
	return state, nil
}

// target plans the phase at the zero-based index from the weight lifted on
// a phase with prevReps reps. Fewer reps means more load.
func (s *PyramidalService) target(seq []int, curve []float64, index, prevReps int, prevWeight float64) SetData {
	factor := math.Max(s.opts.PyramidMinLoadFactor, 1+s.opts.PyramidLoadPerRep*float64(prevReps-seq[index]))
	return SetData{
		Weight: s.opts.roundWeight(prevWeight * factor),
		Counts: seq[index],
		RPE:    targetRPE(curve, index+1),
	}
}

func (s *PyramidalService) checkState(state PyramidalState) error {
	if len(state.PyramidSequence) != state.TotalPhases {
		return fmt.Errorf("%w: pyramid sequence has %d steps for %d phases",
			ErrInvalidState, len(state.PyramidSequence), state.TotalPhases)
	}
	return nil
}

func (s *PyramidalService) ProgressToNextPhase(state PyramidalState, set CompletedSet) (PyramidalState, error) {
	if err := state.preflight(set); err != nil {
		return PyramidalState{}, err
	}
	if err := s.checkState(state); err != nil {
		return PyramidalState{}, err
	}

	next := state.clone()
	progress, advanced := state.advance(set)
	if advanced {
		seq, curve := next.PyramidSequence, next.Configuration.EstimatedRPECurve()
		idx := progress.CurrentPhase - 1
		progress.CurrentSetData = s.target(seq, curve, idx, seq[idx-1], set.Weight)
		next.CurrentDirection = next.Configuration.DirectionAt(idx)
		if !progress.IsCompleted {
			preview := s.target(seq, curve, idx+1, seq[idx], progress.CurrentSetData.Weight)
			progress.NextSetData = &preview
		}
	}
	next.Progress = progress

	next.Progress = next.Progress.withRest(s.SuggestedRestPeriod(next))
	s.debug(setconfig.TypePyramidal, next.Progress, "pyramid phase completed")
	return next, nil
}

func (s *PyramidalService) ValidatePhaseCompletion(state PyramidalState, set CompletedSet) (*Validation, error) {
	if err := validateSetData(set); err != nil {
		return nil, err
	}

	target := state.CurrentSetData
	var w warnings
	w.add(weightDeviation(set, target, s.opts.WeightDeviation))
	w.add(repsDeviation(set, target, s.opts.RepsDeviation))
	w.add(rpeShortfall(set, target.RPE, s.opts.RPEShortfall))
	return s.validation(setconfig.TypePyramidal, state.Progress, w), nil
}

// SuggestedRestPeriod is longer for lower rep steps and for the descending
// leg, where fatigue has already built up.
func (s *PyramidalService) SuggestedRestPeriod(state PyramidalState) int {
	if state.CurrentPhase <= 1 || state.IsCompleted {
		return 0
	}
	rest := float64(s.opts.repRest(state.CurrentSetData.Counts))
	if state.CurrentDirection == setconfig.PyramidDescending {
		rest *= s.opts.DescendingRestFactor
	}
	return int(math.Round(rest))
}
