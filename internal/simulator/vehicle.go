package simulator

import (
	"fmt"

	"github.com/superdef454/web-map/internal/catalog"
)

// Direction is the way a Vehicle is currently traversing its polyline.
type Direction int

const (
	Forward Direction = iota
	Reverse
)

// PolylinePoint is one stop-bearing vertex of a vehicle's route (spec
// §3).
type PolylinePoint struct {
	StopID int
	Lat    float64
	Lon    float64
}

// Vehicle is one dispatched unit serving a route. It owns its own
// (possibly reversed) polyline copy and index rather than delegating
// stop lookups back to a shared Route object.
type Vehicle struct {
	ID             int
	RouteID        int
	VehicleIndex   int // 1..amount
	Capacity       int
	Polyline       []PolylinePoint
	CurrentIndex   int
	Direction      Direction
	Passengers     map[int]*Passenger // keyed by Passenger.ID
	CompletedTrips int
}

// NewVehicle builds a Vehicle at polyline[0], forward, empty, the
// initial state a Dispatch event puts it in (spec §4.5 Initialization
// step 1).
func NewVehicle(id, routeID, vehicleIndex, capacity int, polyline []PolylinePoint) *Vehicle {
	return &Vehicle{
		ID:           id,
		RouteID:      routeID,
		VehicleIndex: vehicleIndex,
		Capacity:     capacity,
		Polyline:     polyline,
		CurrentIndex: 0,
		Direction:    Forward,
		Passengers:   make(map[int]*Passenger),
	}
}

// AtTerminal reports whether the vehicle is at either polyline end.
func (v *Vehicle) AtTerminal() bool {
	return v.CurrentIndex == 0 || v.CurrentIndex == len(v.Polyline)-1
}

// AtFarTerminal reports whether the vehicle is at the last polyline
// position — the terminal it is traveling toward, not the one it
// started from (spec §4.5 step c).
func (v *Vehicle) AtFarTerminal() bool {
	return v.CurrentIndex == len(v.Polyline)-1
}

// CurrentPoint returns the polyline vertex the vehicle currently
// occupies.
func (v *Vehicle) CurrentPoint() PolylinePoint {
	return v.Polyline[v.CurrentIndex]
}

// RemainingStopIDs computes spec §4.5.1's "remaining stops": from the
// current position through the far terminal, or, while the vehicle is
// at the far terminal (before Turn), the whole polyline in reverse
// order — the leg it is about to begin. The current stop is always
// included, as the first element.
func (v *Vehicle) RemainingStopIDs() []int {
	if v.AtFarTerminal() {
		ids := make([]int, len(v.Polyline))
		for i, p := range v.Polyline {
			ids[len(v.Polyline)-1-i] = p.StopID
		}
		return ids
	}
	var ids []int
	for i := v.CurrentIndex; i < len(v.Polyline); i++ {
		ids = append(ids, v.Polyline[i].StopID)
	}
	return ids
}

// RouteStopIDSet returns the full set of stop ids on the vehicle's
// route, used by has_demand_ahead (spec §4.5 step c).
func (v *Vehicle) RouteStopIDSet() map[int]bool {
	set := make(map[int]bool, len(v.Polyline))
	for _, p := range v.Polyline {
		set[p.StopID] = true
	}
	return set
}

// Turn reverses the vehicle's polyline at the far terminal and resets
// current_index to 1, the direction flip spec §4.5 step c mandates
// ("reverse and set current_index = 1").
func (v *Vehicle) Turn() {
	reversed := make([]PolylinePoint, len(v.Polyline))
	for i, p := range v.Polyline {
		reversed[len(v.Polyline)-1-i] = p
	}
	v.Polyline = reversed
	v.CurrentIndex = 1
	if v.Direction == Forward {
		v.Direction = Reverse
	} else {
		v.Direction = Forward
	}
	v.CompletedTrips++
}

// Advance moves to the next polyline position without turning (normal
// mid-route hop).
func (v *Vehicle) Advance() {
	v.CurrentIndex++
}

// BuildPolyline converts a catalog Route's polyline into the vehicle's
// PolylinePoint slice, resolving each vertex's stop id against stops by
// coordinate (catalog.ResolvePolylinePoint) rather than trusting
// route.StopIDs to stay positionally aligned with route.Polyline. It
// returns an error naming the first unresolvable vertex.
func BuildPolyline(route catalog.Route, stops map[int]catalog.Stop) ([]PolylinePoint, error) {
	pts := make([]PolylinePoint, len(route.Polyline))
	for i, ll := range route.Polyline {
		sid, ok := catalog.ResolvePolylinePoint(ll, stops)
		if !ok {
			return nil, fmt.Errorf("route %d: polyline point %d (%.5f,%.5f) resolves to no stop", route.ID, i, ll.Lat, ll.Lon)
		}
		pts[i] = PolylinePoint{StopID: sid, Lat: ll.Lat, Lon: ll.Lon}
	}
	return pts, nil
}
