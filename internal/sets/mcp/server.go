package mcp

import (
	"github.com/2beens/blueprintfitness/internal/setconfig"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer builds an MCP server with the set configuration tools: preview,
// pyramid sequence and execution simulation.
// Served over stdio by cmd/setconfig_mcp and mounted at /mcp by internal/server.
func NewServer(engine simulator, timing setconfig.Timing) *mcp.Server {
	h := NewHandler(engine, timing, nil)
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "blueprint-setconfig",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "preview_set_configuration",
		Description: "Validates a set configuration record and returns its type, total sets, summary, estimated duration in seconds, expected RPE per set and empty set placeholders. Use when planning a workout and you want to see what a scheme (standard, drop, pyramidal, myoReps, restPause, mav) amounts to.",
	}, h.PreviewSetConfigurationTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "pyramid_sequence",
		Description: "Returns the rep target of every step of a pyramid, the load direction per step and the turnaround index for both-direction pyramids. Args: start_counts, end_counts, step, mode (ascending, descending, bothAscendingDescending).",
	}, h.PyramidSequenceTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "simulate_execution",
		Description: "Runs a set configuration from its first phase to completion, performing every phase exactly as planned, and returns each state with its targets, rest suggestion and validation warnings. Args: configuration record, starting_weight (kg).",
	}, h.SimulateExecutionTool())

	return s
}
