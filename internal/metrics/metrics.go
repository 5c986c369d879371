// Package metrics implements the Metrics Aggregator (spec §4.6, C6): it
// folds simulation events into per-route and per-stop accumulators and
// finalizes them into the ReportStructure spec §6.3 describes: a
// richer per-route (journey length, fullness, completed trips, route
// length) and per-stop (initial demand, max waiting time, routes
// through) set of accumulators than a flat per-bus counter would give.
package metrics

import (
	"math"

	"github.com/superdef454/web-map/internal/catalog"
	"github.com/superdef454/web-map/internal/geodesy"
)

// RouteAccumulator tracks the running sums §4.6 describes for one
// route.
type RouteAccumulator struct {
	RouteID              int
	Name                 string
	VehicleTypeLabel     string
	IntervalMin          int
	VehicleCount         int
	Capacity             int
	SumJourneyStops      int
	CountJourneys        int
	SumFullness          int
	CountFullnessSamples int
	CompletedTrips       int
	RouteLengthKM        float64
	StopCount            int
}

// StopAccumulator tracks the running state §4.6 describes for one stop.
type StopAccumulator struct {
	StopID                 int
	Name                   string
	InitialPassengersCount int
	MaxWaitingTimeSeconds  int
	RoutesThrough          int
}

// Aggregator owns every route's and stop's accumulator for one run.
type Aggregator struct {
	Routes map[int]*RouteAccumulator
	Stops  map[int]*StopAccumulator
}

// NewAggregator seeds an Aggregator from the resolved routes and stops
// of a SimInput, computing each route's static length/stop-count fields
// up front (spec §4.6: route_length_km, stop_count) using C3 for
// distance.
func NewAggregator(cat *catalog.Catalog, routes []catalog.Route, stops map[int]catalog.Stop) *Aggregator {
	a := &Aggregator{
		Routes: make(map[int]*RouteAccumulator, len(routes)),
		Stops:  make(map[int]*StopAccumulator, len(stops)),
	}
	stopRouteCount := make(map[int]int)
	for _, r := range routes {
		for _, sid := range r.StopIDs {
			stopRouteCount[sid]++
		}
	}
	for _, r := range routes {
		vt := cat.VehicleTypes[r.VehicleTypeID]
		a.Routes[r.ID] = &RouteAccumulator{
			RouteID:          r.ID,
			Name:             r.Name,
			VehicleTypeLabel: vt.Name,
			IntervalMin:      r.IntervalMin,
			VehicleCount:     r.Amount,
			Capacity:         vt.Capacity,
			RouteLengthKM:    routeLengthKM(r),
			StopCount:        len(r.StopIDs),
		}
	}
	for sid, s := range stops {
		a.Stops[sid] = &StopAccumulator{
			StopID:        sid,
			Name:          s.Name,
			RoutesThrough: stopRouteCount[sid],
		}
	}
	return a
}

func routeLengthKM(r catalog.Route) float64 {
	var total float64
	for i := 0; i+1 < len(r.Polyline); i++ {
		a := geodesy.Point{Lat: r.Polyline[i].Lat, Lon: r.Polyline[i].Lon}
		b := geodesy.Point{Lat: r.Polyline[i+1].Lat, Lon: r.Polyline[i+1].Lon}
		total += geodesy.DistanceKM(a, b)
	}
	return round2(total)
}

// RecordJourney adds one boarded passenger's journey length to routeID's
// running average (spec §4.6 sum_journey_stops/count_journeys).
func (a *Aggregator) RecordJourney(routeID, journeyLen int) {
	if r, ok := a.Routes[routeID]; ok {
		r.SumJourneyStops += journeyLen
		r.CountJourneys++
	}
}

// RecordFullness adds one dispatch-time onboard count sample (spec §4.6
// sum_fullness/count_fullness_samples, "one sample per dispatch").
func (a *Aggregator) RecordFullness(routeID, onboard int) {
	if r, ok := a.Routes[routeID]; ok {
		r.SumFullness += onboard
		r.CountFullnessSamples++
	}
}

// RecordCompletedTrip increments a route's completed-trip counter,
// triggered at every far-terminal turn-around (spec §4.5 step c).
func (a *Aggregator) RecordCompletedTrip(routeID int) {
	if r, ok := a.Routes[routeID]; ok {
		r.CompletedTrips++
	}
}

// SetInitialPassengers records a stop's t=0 waiting-queue size (spec
// §4.6 initial_passengers_count).
func (a *Aggregator) SetInitialPassengers(stopID, count int) {
	if s, ok := a.Stops[stopID]; ok {
		s.InitialPassengersCount = count
	}
}

// ObserveWaiting records that stopID's waiting queue was nonempty at
// time t, updating the stop's max-waiting-time high-water mark (spec
// §4.6 max_waiting_time_min: "the largest t at which a frame still
// showed this stop with waiting passengers").
func (a *Aggregator) ObserveWaiting(stopID, t int) {
	if s, ok := a.Stops[stopID]; ok && t > s.MaxWaitingTimeSeconds {
		s.MaxWaitingTimeSeconds = t
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
