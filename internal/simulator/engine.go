// Package simulator implements the event loop driving vehicle/stop
// state machines (spec §4.5, C5) — the engine's core: a
// container/heap-backed event queue processed by a single
// `for !timeline.IsEmpty() { ... }` loop (alight, board,
// dwell-or-turn-or-advance, reschedule), matching the sequence of
// steps spec §4.5's Arrival handler formalizes.
package simulator

import (
	"math/rand"
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/superdef454/web-map/internal/catalog"
	"github.com/superdef454/web-map/internal/errs"
	"github.com/superdef454/web-map/internal/frames"
	"github.com/superdef454/web-map/internal/geodesy"
	"github.com/superdef454/web-map/internal/metrics"
	"github.com/superdef454/web-map/internal/scenario"
	"github.com/superdef454/web-map/internal/timeline"
)

// BoardAlightSeconds is the per-passenger dwell cost of boarding or
// alighting (spec §4.5 Constants).
const BoardAlightSeconds = 4

// Engine owns one run's Vehicles, StopStates, Timeline and aggregators.
// Not safe for concurrent use — each run is single-threaded and
// deterministic (spec §5); independent runs each own their own Engine.
type Engine struct {
	input  *scenario.SimInput
	routes map[int]catalog.Route
	rng    *rand.Rand
	log    *logrus.Logger

	timeline   *timeline.Timeline
	vehicles   map[int]*Vehicle
	stops      map[int]*StopState
	retired    map[int]bool
	aggregator *metrics.Aggregator
	recorder   *frames.Recorder

	nextVehicleID   int
	nextPassengerID int
}

// New builds an Engine from a resolved SimInput and seed, ready for
// Run. It returns *errs.SimError(NoFleet) if no resolved route has both
// a known vehicle type and a nonzero fleet (spec §7 NoFleet — evaluated
// here, at calculation stage, rather than by the Resolver, since
// spec.md places it at "calculation" and the Resolver's own NoRoutes
// check is a data_preparation-stage concern over stop resolvability
// alone).
func New(cat *catalog.Catalog, input *scenario.SimInput, seed int64, log *logrus.Logger) (*Engine, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	e := &Engine{
		input:      input,
		routes:     make(map[int]catalog.Route, len(input.Routes)),
		rng:        rand.New(rand.NewSource(seed)),
		log:        log,
		timeline:   timeline.New(),
		vehicles:   make(map[int]*Vehicle),
		stops:      make(map[int]*StopState),
		retired:    make(map[int]bool),
		aggregator: metrics.NewAggregator(cat, input.Routes, input.Stops),
		recorder:   frames.NewRecorder(),
	}

	for sid, s := range input.Stops {
		e.stops[sid] = NewStopState(s)
	}

	vehicleCount := 0
	for _, r := range input.Routes {
		e.routes[r.ID] = r
		capacity := cat.Capacity(r)
		if capacity == 0 || r.Amount < 1 {
			e.log.WithFields(logrus.Fields{"route_id": r.ID}).
				Warn("simulator: route has no usable fleet, no vehicles dispatched")
			continue
		}
		routeStops := make(map[int]catalog.Stop, len(r.StopIDs))
		for _, sid := range r.StopIDs {
			if s, ok := input.Stops[sid]; ok {
				routeStops[sid] = s
			}
		}
		polyline, err := BuildPolyline(r, routeStops)
		if err != nil {
			return nil, errs.New(errs.UnresolvablePolylinePoint, err, "route %d: polyline resolution failed", r.ID)
		}
		for k := 1; k <= r.Amount; k++ {
			v := NewVehicle(e.nextVehicleID, r.ID, k, capacity, clonePolyline(polyline))
			e.nextVehicleID++
			e.vehicles[v.ID] = v
			vehicleCount++
			dispatchAt := (k - 1) * r.IntervalMin * 60
			e.timeline.Schedule(dispatchAt, DispatchEvent{VehicleID: v.ID})
		}
	}
	if vehicleCount == 0 {
		return nil, errs.New(errs.NoFleet, nil, "no resolved route has both a vehicle type and a nonzero fleet")
	}

	e.seedDemand()
	return e, nil
}

func clonePolyline(p []PolylinePoint) []PolylinePoint {
	out := make([]PolylinePoint, len(p))
	copy(out, p)
	return out
}

// seedDemand materializes each StopDemand into the origin stop's waiting
// queue, resolving undirected (key 0) demand via a uniform draw over
// the precomputed valid-destination list (spec §4.5 Initialization step
//2).
func (e *Engine) seedDemand() {
	for _, d := range e.input.Demands {
		destKeys := make([]int, 0, len(d.Destinations))
		for destKey := range d.Destinations {
			destKeys = append(destKeys, destKey)
		}
		sort.Ints(destKeys)
		for _, destKey := range destKeys {
			count := d.Destinations[destKey]
			for i := 0; i < count; i++ {
				destID := destKey
				if destKey == 0 {
					picked, ok := scenario.DrawUndirectedDestination(e.rng, e.input.ValidDestinations[d.OriginStopID])
					if !ok {
						continue
					}
					destID = picked
				}
				p := NewPassenger(e.nextPassengerID, 0, d.OriginStopID, destID, passengerName(e.nextPassengerID))
				e.nextPassengerID++
				e.stops[d.OriginStopID].Enqueue(p)
			}
		}
	}
	for sid, ss := range e.stops {
		e.aggregator.SetInitialPassengers(sid, len(ss.Waiting))
	}
}

func passengerName(id int) string {
	return "Passenger " + strconv.Itoa(id)
}

// Run drives the timeline to completion, returning the sorted playback
// frames and the metrics aggregator, which the caller finalizes with
// Aggregator.Finalize. Errors are
// *errs.SimError per spec §7 (InternalInvariantViolated on a
// journey-length anomaly, spec §4.5.2).
func (e *Engine) Run() (out []frames.Frame, agg *metrics.Aggregator, err error) {
	defer func() {
		if r := recover(); r != nil {
			if se, ok := r.(*errs.SimError); ok {
				err = se
				return
			}
			panic(r)
		}
	}()

	for !e.timeline.IsEmpty() {
		t, group := e.timeline.PopEarliest()
		for _, ev := range group {
			switch v := ev.(type) {
			case DispatchEvent:
				e.handleDispatch(t, v.VehicleID)
			case ArriveEvent:
				e.handleArrive(t, v.VehicleID)
			}
		}
	}

	return e.recorder.Frames(), e.aggregator, nil
}

// handleDispatch releases a Vehicle at t: it is already positioned at
// polyline[0] (built in New); Dispatch only enqueues the immediate
// Arrive that the arrival handler processes (spec §4.5 Initialization
// step 1).
func (e *Engine) handleDispatch(t int, vehicleID int) {
	e.timeline.Schedule(t, ArriveEvent{VehicleID: vehicleID})
}

// handleArrive implements the Arrival handler (spec §4.5): alighting,
// boarding, then the dispatch decision (retire, dwell, or advance/turn
// and reschedule).
func (e *Engine) handleArrive(t int, vehicleID int) {
	v := e.vehicles[vehicleID]
	if v == nil || e.retired[vehicleID] {
		return
	}
	route := e.routes[v.RouteID]
	stopID := v.CurrentPoint().StopID
	ss := e.stops[stopID]

	localT := t
	e.emitFrame(localT)

	// (a) Alighting.
	kOff := 0
	for pid, p := range v.Passengers {
		if p.DestStopID == stopID {
			delete(v.Passengers, pid)
			kOff++
		}
	}
	if kOff > 0 {
		localT += kOff * BoardAlightSeconds
		e.emitFrame(localT)
	}

	// (b) Boarding.
	remaining := v.RemainingStopIDs()
	kOn := ss.Board(v, remaining, func(journeyLen int) {
		if journeyLen <= 0 {
			panic(errs.New(errs.InternalInvariantViolated, nil,
				"route %d: journey length %d <= 0 for a boarding passenger", v.RouteID, journeyLen))
		}
		e.aggregator.RecordJourney(v.RouteID, journeyLen)
	})
	if kOn > 0 {
		localT += kOn * BoardAlightSeconds
		e.emitFrame(localT)
	}

	// (c) Dispatch decision.
	if v.AtTerminal() && len(v.Passengers) == 0 && !e.hasDemandAhead(v) {
		e.retired[vehicleID] = true
		return
	}

	if v.AtFarTerminal() {
		headwaySec := route.IntervalMin * 60
		if localT-ss.LastDispatchPerRoute[v.RouteID] < headwaySec {
			dwellAt := localT + headwaySec
			e.timeline.Schedule(dwellAt, ArriveEvent{VehicleID: vehicleID})
			return
		}
	}

	ss.LastDispatchPerRoute[v.RouteID] = localT
	e.aggregator.RecordFullness(v.RouteID, len(v.Passengers))

	prevPoint := v.CurrentPoint()
	if v.AtFarTerminal() {
		v.Turn()
		e.aggregator.RecordCompletedTrip(v.RouteID)
	} else {
		v.Advance()
	}
	nextPoint := v.CurrentPoint()

	travelSec := geodesy.TravelSeconds(
		geodesy.Point{Lat: prevPoint.Lat, Lon: prevPoint.Lon},
		geodesy.Point{Lat: nextPoint.Lat, Lon: nextPoint.Lon},
	)
	e.timeline.Schedule(localT+travelSec, ArriveEvent{VehicleID: vehicleID})
}

// hasDemandAhead reports whether any stop on v's route still has a
// nonempty waiting queue (spec §4.5 step c has_demand_ahead).
func (e *Engine) hasDemandAhead(v *Vehicle) bool {
	for sid := range v.RouteStopIDSet() {
		if ss, ok := e.stops[sid]; ok && ss.HasWaiting() {
			return true
		}
	}
	return false
}

// emitFrame records the current state of every non-retired vehicle and
// every stop with a nonempty waiting queue, and updates each such
// stop's max-waiting-time high-water mark (spec §4.6, §4.7).
func (e *Engine) emitFrame(t int) {
	vehicleIDs := make([]int, 0, len(e.vehicles))
	for id := range e.vehicles {
		vehicleIDs = append(vehicleIDs, id)
	}
	sort.Ints(vehicleIDs)

	var buses []frames.VehicleSnapshot
	for _, id := range vehicleIDs {
		if e.retired[id] {
			continue
		}
		v := e.vehicles[id]
		pt := v.CurrentPoint()

		passengerIDs := make([]int, 0, len(v.Passengers))
		for pid := range v.Passengers {
			passengerIDs = append(passengerIDs, pid)
		}
		sort.Ints(passengerIDs)
		names := make([]string, 0, frames.MaxPassengerNames)
		for _, pid := range passengerIDs {
			if len(names) >= frames.MaxPassengerNames {
				break
			}
			names = append(names, v.Passengers[pid].DisplayName)
		}

		buses = append(buses, frames.VehicleSnapshot{
			BusID:           v.ID,
			RouteID:         v.RouteID,
			Capacity:        v.Capacity,
			StopID:          pt.StopID,
			Lat:             pt.Lat,
			Lon:             pt.Lon,
			PassengersCount: len(v.Passengers),
			PassengerNames:  names,
		})
	}

	stopIDs := make([]int, 0, len(e.stops))
	for sid := range e.stops {
		stopIDs = append(stopIDs, sid)
	}
	sort.Ints(stopIDs)

	var stopSnaps []frames.StopSnapshot
	for _, sid := range stopIDs {
		ss := e.stops[sid]
		if len(ss.Waiting) == 0 {
			continue
		}
		e.aggregator.ObserveWaiting(sid, t)
		stopSnaps = append(stopSnaps, frames.StopSnapshot{StopID: sid, WaitingCount: len(ss.Waiting)})
	}

	e.recorder.Emit(t, buses, stopSnaps)
}
