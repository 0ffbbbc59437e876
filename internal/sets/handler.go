package sets

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/2beens/blueprintfitness/internal/execution"
	"github.com/2beens/blueprintfitness/internal/setconfig"
	"github.com/2beens/blueprintfitness/internal/telemetry/metrics"
	"github.com/2beens/blueprintfitness/internal/telemetry/tracing"
	"github.com/2beens/blueprintfitness/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

//go:generate mockgen -source=$GOFILE -destination=sets_mocks_test.go -package=sets_test

type executionEngine interface {
	Initialize(cfg setconfig.Configuration, startingWeight float64) (execution.State, error)
	Progress(state execution.State, set execution.CompletedSet) (execution.State, error)
	Validate(state execution.State, set execution.CompletedSet) (*execution.Validation, error)
	SuggestedRestPeriod(state execution.State) (int, error)
	DecodeState(scheme setconfig.Type, data []byte) (execution.State, error)
}

type PreviewRequest struct {
	Configuration json.RawMessage `json:"configuration"`
	ProfileID     string          `json:"profileId"`
}

type InitRequest struct {
	Configuration  json.RawMessage `json:"configuration"`
	StartingWeight float64         `json:"startingWeight"`
}

type PhaseRequest struct {
	State        json.RawMessage         `json:"state"`
	CompletedSet *execution.CompletedSet `json:"completedSet,omitempty"`
}

type ProgressResponse struct {
	State    execution.State `json:"state"`
	Warnings []string        `json:"warnings"`
}

type RestResponse struct {
	RestPeriodSeconds int `json:"restPeriodSeconds"`
}

// Handler serves the set planning and execution endpoints. It keeps no
// state: the client sends the current execution state with every call.
type Handler struct {
	engine         executionEngine
	timing         setconfig.Timing
	ids            setconfig.IDGenerator
	metricsManager *metrics.Manager
}

func NewHandler(
	engine executionEngine,
	timing setconfig.Timing,
	ids setconfig.IDGenerator,
	metricsManager *metrics.Manager,
) *Handler {
	if ids == nil {
		ids = setconfig.UUIDGenerator{}
	}
	if metricsManager == nil {
		metricsManager = metrics.NewTestManager()
	}
	return &Handler{
		engine:         engine,
		timing:         timing,
		ids:            ids,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/configurations/preview", handler.HandlePreview).Methods("POST", "OPTIONS").Name("preview-configuration")
	r.HandleFunc("/configurations/hydrate", handler.HandleHydrate).Methods("POST", "OPTIONS").Name("hydrate-configuration")
	r.HandleFunc("/executions/{scheme}/init", handler.HandleInit).Methods("POST", "OPTIONS").Name("init-execution")
	r.HandleFunc("/executions/{scheme}/progress", handler.HandleProgress).Methods("POST", "OPTIONS").Name("progress-execution")
	r.HandleFunc("/executions/{scheme}/validate", handler.HandleValidate).Methods("POST", "OPTIONS").Name("validate-execution")
	r.HandleFunc("/executions/{scheme}/rest", handler.HandleRest).Methods("POST", "OPTIONS").Name("rest-execution")
}

func (handler *Handler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.sets.preview")
	defer span.End()

	var req PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("preview configuration, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	cfg, err := setconfig.Parse(req.Configuration)
	if err != nil {
		writeDomainError(w, span, err)
		return
	}
	span.SetAttributes(attribute.String("configuration.type", cfg.Type().String()))
	handler.metricsManager.CounterConfigPreviews.WithLabelValues(cfg.Type().String()).Inc()

	pkg.WriteJSON(w, NewPreview(cfg, req.ProfileID, handler.timing, handler.ids), http.StatusOK)
}

func (handler *Handler) HandleHydrate(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.sets.hydrate")
	defer span.End()

	var record setconfig.Record
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		log.Tracef("hydrate configuration, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	cfg, err := setconfig.New(record)
	if err != nil {
		writeDomainError(w, span, err)
		return
	}

	pkg.WriteJSON(w, cfg.Record(), http.StatusOK)
}

func (handler *Handler) HandleInit(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.sets.init")
	defer span.End()

	scheme, ok := schemeVar(w, r)
	if !ok {
		return
	}

	var req InitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("init execution, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	cfg, err := setconfig.Parse(req.Configuration)
	if err != nil {
		writeDomainError(w, span, err)
		return
	}
	if cfg.Type() != scheme {
		pkg.WriteJSONError(w, fmt.Sprintf("configuration type %s does not match scheme %s", cfg.Type(), scheme), http.StatusBadRequest)
		return
	}

	state, err := handler.engine.Initialize(cfg, req.StartingWeight)
	if err != nil {
		log.Debugf("init %s execution: %s", scheme, err)
		writeDomainError(w, span, err)
		return
	}

	status := state.Status()
	span.SetAttributes(tracing.PhaseAttributes(scheme.String(), status.CurrentPhase, status.TotalPhases, status.IsCompleted)...)
	handler.metricsManager.CounterExecutionsStarted.WithLabelValues(scheme.String()).Inc()

	pkg.WriteJSON(w, state, http.StatusCreated)
}

func (handler *Handler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.sets.progress")
	defer span.End()

	scheme, state, set, ok := handler.phaseRequest(w, r, span, true)
	if !ok {
		return
	}

	next, err := handler.engine.Progress(state, *set)
	if err != nil {
		handler.rejected(scheme, err)
		writeDomainError(w, span, err)
		return
	}

	// warnings come from the state the set was performed against
	validation, err := handler.engine.Validate(state, *set)
	if err != nil {
		writeDomainError(w, span, err)
		return
	}

	status := next.Status()
	span.SetAttributes(tracing.PhaseAttributes(scheme.String(), status.CurrentPhase, status.TotalPhases, status.IsCompleted)...)
	handler.metricsManager.CounterPhaseTransitions.WithLabelValues(scheme.String()).Inc()
	handler.metricsManager.CounterValidationWarnings.WithLabelValues(scheme.String()).Add(float64(len(validation.Warnings)))
	if status.IsCompleted {
		handler.metricsManager.CounterExecutionsDone.WithLabelValues(scheme.String()).Inc()
	}

	warnings := validation.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	pkg.WriteJSON(w, ProgressResponse{
		State:    next,
		Warnings: warnings,
	}, http.StatusOK)
}

func (handler *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.sets.validate")
	defer span.End()

	scheme, state, set, ok := handler.phaseRequest(w, r, span, true)
	if !ok {
		return
	}

	validation, err := handler.engine.Validate(state, *set)
	if err != nil {
		writeDomainError(w, span, err)
		return
	}
	handler.metricsManager.CounterValidationWarnings.WithLabelValues(scheme.String()).Add(float64(len(validation.Warnings)))

	pkg.WriteJSON(w, validation, http.StatusOK)
}

func (handler *Handler) HandleRest(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.sets.rest")
	defer span.End()

	scheme, state, _, ok := handler.phaseRequest(w, r, span, false)
	if !ok {
		return
	}

	seconds, err := handler.engine.SuggestedRestPeriod(state)
	if err != nil {
		writeDomainError(w, span, err)
		return
	}
	handler.metricsManager.HistogramSuggestedRest.WithLabelValues(scheme.String()).Observe(float64(seconds))

	pkg.WriteJSON(w, RestResponse{RestPeriodSeconds: seconds}, http.StatusOK)
}

// phaseRequest decodes the scheme, state and (optionally) completed set of an
// execution call. On failure the error response is already written.
func (handler *Handler) phaseRequest(
	w http.ResponseWriter,
	r *http.Request,
	span trace.Span,
	needSet bool,
) (setconfig.Type, execution.State, *execution.CompletedSet, bool) {
	scheme, ok := schemeVar(w, r)
	if !ok {
		return "", nil, nil, false
	}

	var req PhaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("%s execution, unmarshal json params: %s", scheme, err)
		pkg.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return "", nil, nil, false
	}
	if len(req.State) == 0 {
		pkg.WriteJSONError(w, "error, state missing", http.StatusBadRequest)
		return "", nil, nil, false
	}
	if needSet && req.CompletedSet == nil {
		pkg.WriteJSONError(w, "error, completed set missing", http.StatusBadRequest)
		return "", nil, nil, false
	}

	state, err := handler.engine.DecodeState(scheme, req.State)
	if err != nil {
		writeDomainError(w, span, err)
		return "", nil, nil, false
	}

	return scheme, state, req.CompletedSet, true
}

func (handler *Handler) rejected(scheme setconfig.Type, err error) {
	handler.metricsManager.CounterRejectedProgress.WithLabelValues(scheme.String(), rejectReason(err)).Inc()
}

func schemeVar(w http.ResponseWriter, r *http.Request) (setconfig.Type, bool) {
	scheme := setconfig.Type(mux.Vars(r)["scheme"])
	if !scheme.IsValid() {
		pkg.WriteJSONError(w, fmt.Sprintf("unsupported scheme %q", scheme), http.StatusNotFound)
		return "", false
	}
	return scheme, true
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, execution.ErrAlreadyCompleted):
		return "already_completed"
	case errors.Is(err, execution.ErrInvalidSetData):
		return "invalid_set"
	case errors.Is(err, execution.ErrInvalidState):
		return "invalid_state"
	default:
		return "other"
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, execution.ErrAlreadyCompleted):
		return http.StatusConflict
	case errors.Is(err, execution.ErrUnsupportedScheme):
		return http.StatusNotFound
	case
		errors.Is(err, execution.ErrInvalidSetData),
		errors.Is(err, execution.ErrInvalidConfiguration),
		errors.Is(err, execution.ErrInvalidStartingWeight),
		errors.Is(err, execution.ErrInvalidState),
		errors.Is(err, setconfig.ErrUnknownType),
		errors.Is(err, setconfig.ErrInvalidConfiguration):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeDomainError(w http.ResponseWriter, span trace.Span, err error) {
	status := statusFor(err)
	span.RecordError(err)
	span.SetAttributes(attribute.Int("http.status_code", status))

	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Errorf("sets handler: %s", err)
		message = "internal error"
	}
	pkg.WriteJSONError(w, message, status)
}
