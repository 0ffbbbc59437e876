package execution

import (
	"encoding/json"
	"fmt"

	"github.com/2beens/blueprintfitness/internal/setconfig"

	"github.com/sirupsen/logrus"
)

type runner interface {
	initialize(cfg setconfig.Configuration, startingWeight float64) (State, error)
	progress(state State, set CompletedSet) (State, error)
	validate(state State, set CompletedSet) (*Validation, error)
	rest(state State) (int, error)
	decode(data []byte) (State, error)
}

type typedRunner[C setconfig.Configuration, S State] struct {
	svc Service[C, S]
}

func (r typedRunner[C, S]) config(cfg setconfig.Configuration) (C, error) {
	c, ok := cfg.(C)
	if !ok {
		var zero C
		return zero, fmt.Errorf("%w: %s configuration given to the %s service",
			ErrInvalidConfiguration, cfg.Type(), zero.Type())
	}
	return c, nil
}

func (r typedRunner[C, S]) state(state State) (S, error) {
	s, ok := state.(S)
	if !ok {
		var zero S
		return zero, fmt.Errorf("%w: %s state given to the %s service",
			ErrInvalidState, state.Scheme(), zero.Scheme())
	}
	return s, nil
}

func (r typedRunner[C, S]) initialize(cfg setconfig.Configuration, startingWeight float64) (State, error) {
	c, err := r.config(cfg)
	if err != nil {
		return nil, err
	}
	s, err := r.svc.InitializeExecution(c, startingWeight)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r typedRunner[C, S]) progress(state State, set CompletedSet) (State, error) {
	s, err := r.state(state)
	if err != nil {
		return nil, err
	}
	next, err := r.svc.ProgressToNextPhase(s, set)
	if err != nil {
		return nil, err
	}
	return next, nil
}

func (r typedRunner[C, S]) validate(state State, set CompletedSet) (*Validation, error) {
	s, err := r.state(state)
	if err != nil {
		return nil, err
	}
	return r.svc.ValidatePhaseCompletion(s, set)
}

func (r typedRunner[C, S]) rest(state State) (int, error) {
	s, err := r.state(state)
	if err != nil {
		return 0, err
	}
	return r.svc.SuggestedRestPeriod(s), nil
}

func (r typedRunner[C, S]) decode(data []byte) (State, error) {
	var s S
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	return s, nil
}

// Engine dispatches to the scheme services by configuration type, for
// callers that only hold a hydrated Configuration or a serialized state.
type Engine struct {
	runners map[setconfig.Type]runner
}

func NewEngine(logger logrus.FieldLogger, opts Options) *Engine {
	return &Engine{
		runners: map[setconfig.Type]runner{
			setconfig.TypeStandard:  typedRunner[setconfig.Standard, StandardState]{NewStandardService(logger, opts)},
			setconfig.TypeDrop:      typedRunner[setconfig.Drop, DropState]{NewDropService(logger, opts)},
			setconfig.TypePyramidal: typedRunner[setconfig.Pyramidal, PyramidalState]{NewPyramidalService(logger, opts)},
			setconfig.TypeMyoReps:   typedRunner[setconfig.MyoReps, MyoRepsState]{NewMyoRepsService(logger, opts)},
			setconfig.TypeRestPause: typedRunner[setconfig.RestPause, RestPauseState]{NewRestPauseService(logger, opts)},
			setconfig.TypeMAV:       typedRunner[setconfig.MAV, MAVState]{NewMAVService(logger, opts)},
		},
	}
}

func (e *Engine) runner(scheme setconfig.Type) (runner, error) {
	r, ok := e.runners[scheme]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, scheme)
	}
	return r, nil
}

func (e *Engine) stateRunner(state State) (runner, error) {
	if state == nil {
		return nil, fmt.Errorf("%w: missing state", ErrInvalidState)
	}
	return e.runner(state.Scheme())
}

func (e *Engine) Initialize(cfg setconfig.Configuration, startingWeight float64) (State, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: missing configuration", ErrInvalidConfiguration)
	}
	r, err := e.runner(cfg.Type())
	if err != nil {
		return nil, err
	}
	return r.initialize(cfg, startingWeight)
}

func (e *Engine) Progress(state State, set CompletedSet) (State, error) {
	r, err := e.stateRunner(state)
	if err != nil {
		return nil, err
	}
	return r.progress(state, set)
}

func (e *Engine) Validate(state State, set CompletedSet) (*Validation, error) {
	r, err := e.stateRunner(state)
	if err != nil {
		return nil, err
	}
	return r.validate(state, set)
}

func (e *Engine) SuggestedRestPeriod(state State) (int, error) {
	r, err := e.stateRunner(state)
	if err != nil {
		return 0, err
	}
	return r.rest(state)
}

// DecodeState unmarshals a JSON state of the given scheme.
func (e *Engine) DecodeState(scheme setconfig.Type, data []byte) (State, error) {
	r, err := e.runner(scheme)
	if err != nil {
		return nil, err
	}
	return r.decode(data)
}
