package engine

import (
	"encoding/json"

	"github.com/superdef454/web-map/internal/frames"
	"github.com/superdef454/web-map/internal/metrics"
)

// FrameBody is a frame's payload without its timestamp (spec §6.2:
// "calculate?: [ [t_seconds, FrameBody] ]").
type FrameBody struct {
	Buses []frames.VehicleSnapshot `json:"buses"`
	Stops []frames.StopSnapshot    `json:"stops"`
}

// TimelineEntry marshals as the two-element [t_seconds, FrameBody] pair
// spec §6.2 specifies, rather than as a JSON object.
type TimelineEntry struct {
	TSeconds int
	Body     FrameBody
}

func (e TimelineEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{e.TSeconds, e.Body})
}

func framesToTimeline(fs []frames.Frame) []TimelineEntry {
	out := make([]TimelineEntry, len(fs))
	for i, f := range fs {
		out[i] = TimelineEntry{TSeconds: f.TSeconds, Body: FrameBody{Buses: f.Buses, Stops: f.Stops}}
	}
	return out
}

// CalculationResponse is the external JSON response shape (spec §6.2).
type CalculationResponse struct {
	Error          int                     `json:"error"`
	ErrorMessage   string                  `json:"error_message,omitempty"`
	Stage          string                  `json:"stage,omitempty"`
	Hint           string                  `json:"hint,omitempty"`
	Calculate      []TimelineEntry         `json:"calculate,omitempty"`
	DataToReport   *metrics.ReportStructure `json:"data_to_report,omitempty"`
	SimulationID   int                     `json:"simulation_id,omitempty"`
}
