// Package execution drives a configured set scheme phase by phase: it builds
// the initial execution state, validates what the user reports for a phase
// and derives the next target and rest suggestion from it.
package execution

import (
	"github.com/2beens/blueprintfitness/internal/setconfig"

	"github.com/sirupsen/logrus"
)

// Service is the execution state machine of one set scheme.
type Service[C setconfig.Configuration, S State] interface {
	InitializeExecution(cfg C, startingWeight float64) (S, error)
	ProgressToNextPhase(state S, set CompletedSet) (S, error)
	ValidatePhaseCompletion(state S, set CompletedSet) (*Validation, error)
	SuggestedRestPeriod(state S) int
}

// Validation is the outcome of a successful phase check. Warnings are
// advisory and never turn a valid set into an invalid one.
type Validation struct {
	Valid    bool     `json:"valid"`
	Warnings []string `json:"warnings,omitempty"`
}

type base struct {
	log  logrus.FieldLogger
	opts Options
}

func newBase(logger logrus.FieldLogger, opts Options) base {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return base{
		log:  logger,
		opts: opts.withDefaults(),
	}
}

func (b base) validation(scheme setconfig.Type, p Progress, warnings []string) *Validation {
	for _, w := range warnings {
		b.log.WithFields(logrus.Fields{
			"scheme":       scheme,
			"phase":        p.CurrentPhase,
			"total_phases": p.TotalPhases,
		}).Warn(w)
	}
	return &Validation{
		Valid:    true,
		Warnings: warnings,
	}
}

func (b base) debug(scheme setconfig.Type, p Progress, msg string) {
	b.log.WithFields(logrus.Fields{
		"scheme":       scheme,
		"phase":        p.CurrentPhase,
		"total_phases": p.TotalPhases,
		"completed":    p.IsCompleted,
	}).Debug(msg)
}
