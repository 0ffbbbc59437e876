package sets_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/2beens/blueprintfitness/internal/execution"
	"github.com/2beens/blueprintfitness/internal/sets"
	"github.com/2beens/blueprintfitness/internal/setconfig"
	"github.com/2beens/blueprintfitness/internal/telemetry/metrics"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const standardConfig = `{"type":"standard","sets":{"min":3},"counts":{"min":8}}`

type fixedIDs struct{ n int }

func (f *fixedIDs) NewID() string {
	f.n++
	return fmt.Sprintf("set-%d", f.n)
}

func newRouter(t *testing.T, engine interface {
	Initialize(setconfig.Configuration, float64) (execution.State, error)
	Progress(execution.State, execution.CompletedSet) (execution.State, error)
	Validate(execution.State, execution.CompletedSet) (*execution.Validation, error)
	SuggestedRestPeriod(execution.State) (int, error)
	DecodeState(setconfig.Type, []byte) (execution.State, error)
}) (*mux.Router, *metrics.Manager) {
	t.Helper()
	metricsManager := metrics.NewTestManager()
	h := sets.NewHandler(engine, setconfig.DefaultTiming(), &fixedIDs{}, metricsManager)
	r := mux.NewRouter()
	h.SetupRoutes(r)
	return r, metricsManager
}

func newEngine() *execution.Engine {
	logger, _ := test.NewNullLogger()
	return execution.NewEngine(logger, execution.DefaultOptions())
}

func post(t *testing.T, r http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest("POST", path, bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_HandlePreview(t *testing.T) {
	r, metricsManager := newRouter(t, newEngine())

	rec := post(t, r, "/configurations/preview", `{"configuration":`+standardConfig+`,"profileId":"profile-1"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var preview sets.Preview
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &preview))
	assert.Equal(t, setconfig.TypeStandard, preview.Type)
	assert.Equal(t, 3, preview.TotalSets)
	assert.Equal(t, "3 x 8 reps", preview.Summary)
	assert.Equal(t, 105.0, preview.EstimatedDurationSeconds)
	assert.Len(t, preview.RPECurve, 3)
	require.Len(t, preview.EmptySets, 3)
	for i, set := range preview.EmptySets {
		assert.Equal(t, fmt.Sprintf("set-%d", i+1), set.ID)
		assert.Equal(t, "profile-1", set.ProfileID)
		assert.False(t, set.Completed)
	}
	assert.Equal(t, 1.0, testutil.ToFloat64(metricsManager.CounterConfigPreviews.WithLabelValues("standard")))
}

func TestHandler_HandlePreview_BadInput(t *testing.T) {
	r, _ := newRouter(t, newEngine())

	rec := post(t, r, "/configurations/preview", `{"configuration":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post(t, r, "/configurations/preview", `{"configuration":{"type":"superset"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown set configuration type")

	rec = post(t, r, "/configurations/preview", `{"configuration":{"type":"standard","sets":{"min":3}}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid set configuration")
}

func TestHandler_HandleHydrate(t *testing.T) {
	r, _ := newRouter(t, newEngine())

	record := `{"type":"pyramidal","startCounts":{"min":12},"endCounts":{"min":6},"step":{"min":2},"mode":"ascending"}`
	rec := post(t, r, "/configurations/hydrate", record)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, record, rec.Body.String())

	rec = post(t, r, "/configurations/hydrate", `{"type":"pyramidal","startCounts":{"min":12},"endCounts":{"min":6},"step":{"min":0},"mode":"ascending"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_ExecutionFlow(t *testing.T) {
	r, metricsManager := newRouter(t, newEngine())

	rec := post(t, r, "/executions/standard/init", `{"configuration":`+standardConfig+`,"startingWeight":100}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var state execution.StandardState
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, 1, state.CurrentPhase)
	assert.Equal(t, 3, state.TotalPhases)
	assert.Equal(t, 100.0, state.CurrentSetData.Weight)
	assert.Equal(t, 8, state.CurrentSetData.Counts)
	require.NotNil(t, state.NextSetData)

	rawState := rec.Body.String()
	for phase := 2; phase <= 3; phase++ {
		rec = post(t, r, "/executions/standard/progress", `{"state":`+rawState+`,"completedSet":{"weight":100,"counts":8}}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp struct {
			State    execution.StandardState `json:"state"`
			Warnings []string                `json:"warnings"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, phase, resp.State.CurrentPhase)
		assert.NotNil(t, resp.Warnings)

		var envelope map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
		rawState = string(envelope["state"])
	}

	rec = post(t, r, "/executions/standard/rest", `{"state":`+rawState+`}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"restPeriodSeconds":0}`, rec.Body.String())

	rec = post(t, r, "/executions/standard/progress", `{"state":`+rawState+`,"completedSet":{"weight":100,"counts":8}}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "already completed")

	assert.Equal(t, 1.0, testutil.ToFloat64(metricsManager.CounterExecutionsStarted.WithLabelValues("standard")))
	assert.Equal(t, 2.0, testutil.ToFloat64(metricsManager.CounterPhaseTransitions.WithLabelValues("standard")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metricsManager.CounterExecutionsDone.WithLabelValues("standard")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metricsManager.CounterRejectedProgress.WithLabelValues("standard", "already_completed")))
}

func TestHandler_HandleRest(t *testing.T) {
	r, _ := newRouter(t, newEngine())

	rec := post(t, r, "/executions/standard/init", `{"configuration":`+standardConfig+`,"startingWeight":100}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = post(t, r, "/executions/standard/progress", `{"state":`+rec.Body.String()+`,"completedSet":{"weight":100,"counts":8}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var envelope map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	rec = post(t, r, "/executions/standard/rest", `{"state":`+string(envelope["state"])+`}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"restPeriodSeconds":130}`, rec.Body.String())
}

func TestHandler_HandleInit_Errors(t *testing.T) {
	r, _ := newRouter(t, newEngine())

	rec := post(t, r, "/executions/superset/init", `{"configuration":`+standardConfig+`,"startingWeight":100}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = post(t, r, "/executions/drop/init", `{"configuration":`+standardConfig+`,"startingWeight":100}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "does not match scheme")

	rec = post(t, r, "/executions/standard/init", `{"configuration":`+standardConfig+`,"startingWeight":-5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid starting weight")

	rec = post(t, r, "/executions/standard/init", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_HandleProgress_MissingFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	engineMock := NewMockexecutionEngine(ctrl)
	r, _ := newRouter(t, engineMock)

	rec := post(t, r, "/executions/drop/progress", `{"completedSet":{"weight":100,"counts":8}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "state missing")

	rec = post(t, r, "/executions/drop/progress", `{"state":{"currentPhase":1}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "completed set missing")
}

func TestHandler_HandleProgress_InvalidSet(t *testing.T) {
	ctrl := gomock.NewController(t)
	engineMock := NewMockexecutionEngine(ctrl)
	r, metricsManager := newRouter(t, engineMock)

	state := execution.DropState{}
	set := execution.CompletedSet{Weight: 100, Counts: 0}
	engineMock.EXPECT().DecodeState(setconfig.TypeDrop, gomock.Any()).Return(state, nil)
	engineMock.EXPECT().
		Progress(state, set).
		Return(nil, fmt.Errorf("%w: counts must be positive", execution.ErrInvalidSetData))

	rec := post(t, r, "/executions/drop/progress", `{"state":{},"completedSet":{"weight":100,"counts":0}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(metricsManager.CounterRejectedProgress.WithLabelValues("drop", "invalid_set")))
}

func TestHandler_HandleProgress_Warnings(t *testing.T) {
	ctrl := gomock.NewController(t)
	engineMock := NewMockexecutionEngine(ctrl)
	r, metricsManager := newRouter(t, engineMock)

	state := execution.MyoRepsState{}
	next := execution.MyoRepsState{Progress: execution.Progress{CurrentPhase: 2, TotalPhases: 4}}
	set := execution.CompletedSet{Weight: 60, Counts: 20}
	gomock.InOrder(
		engineMock.EXPECT().DecodeState(setconfig.TypeMyoReps, gomock.Any()).Return(state, nil),
		engineMock.EXPECT().Progress(state, set).Return(next, nil),
		engineMock.EXPECT().Validate(state, set).Return(&execution.Validation{
			Valid:    true,
			Warnings: []string{"activation reps far above plan"},
		}, nil),
	)

	rec := post(t, r, "/executions/myoReps/progress", `{"state":{},"completedSet":{"weight":60,"counts":20}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "activation reps far above plan")
	assert.Equal(t, 1.0, testutil.ToFloat64(metricsManager.CounterValidationWarnings.WithLabelValues("myoReps")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metricsManager.CounterExecutionsDone.WithLabelValues("myoReps")))
}

func TestHandler_HandleValidate(t *testing.T) {
	ctrl := gomock.NewController(t)
	engineMock := NewMockexecutionEngine(ctrl)
	r, _ := newRouter(t, engineMock)

	state := execution.PyramidalState{}
	set := execution.CompletedSet{Weight: 80, Counts: 10}
	engineMock.EXPECT().DecodeState(setconfig.TypePyramidal, gomock.Any()).Return(state, nil)
	engineMock.EXPECT().Validate(state, set).Return(&execution.Validation{Valid: true}, nil)

	rec := post(t, r, "/executions/pyramidal/validate", `{"state":{},"completedSet":{"weight":80,"counts":10}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"valid":true}`, rec.Body.String())
}

func TestHandler_DecodeAndEngineFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	engineMock := NewMockexecutionEngine(ctrl)
	r, _ := newRouter(t, engineMock)

	engineMock.EXPECT().
		DecodeState(setconfig.TypeRestPause, gomock.Any()).
		Return(nil, fmt.Errorf("%w: bad json", execution.ErrInvalidState))
	rec := post(t, r, "/executions/restPause/rest", `{"state":{"isMainSet":"yes"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	engineMock.EXPECT().DecodeState(setconfig.TypeMAV, gomock.Any()).Return(execution.MAVState{}, nil)
	engineMock.EXPECT().SuggestedRestPeriod(gomock.Any()).Return(0, errors.New("boom"))
	rec = post(t, r, "/executions/mav/rest", `{"state":{}}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, rec.Body.String())
}
