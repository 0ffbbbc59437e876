package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/2beens/blueprintfitness/internal/execution"
	"github.com/2beens/blueprintfitness/internal/sets"
	"github.com/2beens/blueprintfitness/internal/setconfig"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type simulator interface {
	Simulate(cfg setconfig.Configuration, startingWeight float64, perform execution.Performer) ([]execution.Step, error)
}

// Handler handles MCP tool requests: parses input, runs the set configuration
// queries, formats the MCP result.
type Handler struct {
	engine simulator
	timing setconfig.Timing
	ids    setconfig.IDGenerator
}

func NewHandler(engine simulator, timing setconfig.Timing, ids setconfig.IDGenerator) *Handler {
	if ids == nil {
		ids = setconfig.UUIDGenerator{}
	}
	return &Handler{
		engine: engine,
		timing: timing,
		ids:    ids,
	}
}

// PreviewInput is the input for preview_set_configuration.
type PreviewInput struct {
	Configuration setconfig.Record `json:"configuration" jsonschema:"Plain set configuration record; type is one of standard, drop, pyramidal, myoReps, restPause, mav"`
	ProfileID     string           `json:"profile_id,omitempty" jsonschema:"Profile that owns the generated empty sets"`
}

// PreviewSetConfigurationTool returns the MCP tool handler for preview_set_configuration.
func (h *Handler) PreviewSetConfigurationTool() func(context.Context, *mcp.CallToolRequest, PreviewInput) (*mcp.CallToolResult, any, error) {
	return func(_ context.Context, _ *mcp.CallToolRequest, in PreviewInput) (*mcp.CallToolResult, any, error) {
		cfg, err := setconfig.New(in.Configuration)
		if err != nil {
			return errorResult("Invalid configuration: " + err.Error()), nil, nil
		}
		return jsonResult(sets.NewPreview(cfg, in.ProfileID, h.timing, h.ids))
	}
}

// PyramidInput is the input for pyramid_sequence.
type PyramidInput struct {
	StartCounts int    `json:"start_counts" jsonschema:"Rep count of the first pyramid step"`
	EndCounts   int    `json:"end_counts" jsonschema:"Rep count the pyramid walks toward"`
	Step        int    `json:"step" jsonschema:"Rep change between steps (positive)"`
	Mode        string `json:"mode" jsonschema:"ascending, descending or bothAscendingDescending"`
}

// PyramidOutput is the sequence view returned by pyramid_sequence.
type PyramidOutput struct {
	Sequence    []int                        `json:"sequence"`
	Directions  []setconfig.PyramidDirection `json:"directions"`
	SwitchPoint int                          `json:"switch_point"`
	Summary     string                       `json:"summary"`
}

// PyramidSequenceTool returns the MCP tool handler for pyramid_sequence.
func (h *Handler) PyramidSequenceTool() func(context.Context, *mcp.CallToolRequest, PyramidInput) (*mcp.CallToolResult, any, error) {
	return func(_ context.Context, _ *mcp.CallToolRequest, in PyramidInput) (*mcp.CallToolResult, any, error) {
		start := setconfig.NewIntRange(in.StartCounts)
		end := setconfig.NewIntRange(in.EndCounts)
		step := setconfig.NewIntRange(in.Step)
		cfg, err := setconfig.New(setconfig.Record{
			Type:        setconfig.TypePyramidal,
			StartCounts: &start,
			EndCounts:   &end,
			Step:        &step,
			Mode:        setconfig.PyramidalMode(in.Mode),
		})
		if err != nil {
			return errorResult("Invalid pyramid: " + err.Error()), nil, nil
		}

		pyramid := cfg.(setconfig.Pyramidal)
		seq := pyramid.Sequence()
		out := PyramidOutput{
			Sequence:    seq,
			Directions:  make([]setconfig.PyramidDirection, len(seq)),
			SwitchPoint: pyramid.SwitchPoint(),
			Summary:     pyramid.Summary(),
		}
		for i := range seq {
			out.Directions[i] = pyramid.DirectionAt(i)
		}
		return jsonResult(out)
	}
}

// SimulateInput is the input for simulate_execution.
type SimulateInput struct {
	Configuration  setconfig.Record `json:"configuration" jsonschema:"Plain set configuration record to execute"`
	StartingWeight float64          `json:"starting_weight" jsonschema:"Load of the first phase, in kg"`
}

// SimulateExecutionTool returns the MCP tool handler for simulate_execution.
func (h *Handler) SimulateExecutionTool() func(context.Context, *mcp.CallToolRequest, SimulateInput) (*mcp.CallToolResult, any, error) {
	return func(_ context.Context, _ *mcp.CallToolRequest, in SimulateInput) (*mcp.CallToolResult, any, error) {
		cfg, err := setconfig.New(in.Configuration)
		if err != nil {
			return errorResult("Invalid configuration: " + err.Error()), nil, nil
		}
		steps, err := h.engine.Simulate(cfg, in.StartingWeight, execution.AsPlanned)
		if err != nil {
			return errorResult(fmt.Sprintf("Error simulating %s execution: %s", cfg.Type(), err)), nil, nil
		}
		return jsonResult(steps)
	}
}

func jsonResult(v any) (*mcp.CallToolResult, any, error) {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("Error encoding response: " + err.Error()), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(raw)}},
	}, nil, nil
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}
