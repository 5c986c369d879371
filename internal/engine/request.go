// Package engine orchestrates the full pipeline — Scenario Resolver
// (C2) into Simulator (C5) into Metrics Aggregator (C6) and Frame
// Recorder (C7) — behind the JSON request/response contracts spec §6
// defines. It is the engine's external interface; everything upstream
// (HTTP handlers, CLI, persistence) is an external collaborator per
// spec.md §1 and is not implemented here.
package engine

// CalculationRequest is the external JSON request shape (spec §6.1).
type CalculationRequest struct {
	DataToCalculate DataToCalculate `json:"data_to_calculate"`
	GetTimeline     *bool           `json:"get_timeline,omitempty"`
	Seed            *int64          `json:"seed,omitempty"`
}

// DataToCalculate is the scenario payload proper.
type DataToCalculate struct {
	CityID   int                    `json:"city_id"`
	Routes   []RouteRequest         `json:"routes"`
	Busstops map[string]StopRequest `json:"busstops"`
}

// RouteRequest references a route by id, with an optional display name
// (unused by resolution; routes are matched by id only, spec §4.2 step
// 1).
type RouteRequest struct {
	ID   int    `json:"id"`
	Name string `json:"name,omitempty"`
}

// DirectionRequest is one destination entry in a stop's demand (spec
// §6.1).
type DirectionRequest struct {
	BusstopID       int `json:"busstop_id"`
	PassengersCount int `json:"passengers_count"`
}

// StopRequest is the per-stop demand payload (spec §6.1).
type StopRequest struct {
	PassengersWithoutDirection int                `json:"passengers_without_direction"`
	Directions                 []DirectionRequest `json:"directions"`
}

// wantTimeline reports whether frames were requested, defaulting to
// true per spec §6.1.
func (r CalculationRequest) wantTimeline() bool {
	if r.GetTimeline == nil {
		return true
	}
	return *r.GetTimeline
}
