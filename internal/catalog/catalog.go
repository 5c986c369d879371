// Package catalog is the read-only view over cities, stops, vehicle
// types and routes that a scenario is resolved against.
package catalog

import (
	"fmt"
	"math"
)

// City is a reference point the catalog groups stops and routes under.
type City struct {
	ID   int     `yaml:"id" json:"id"`
	Name string  `yaml:"name" json:"name"`
	Lat  float64 `yaml:"lat" json:"lat"`
	Lon  float64 `yaml:"lon" json:"lon"`
}

// Stop is a fixed geographic point a route's polyline touches.
type Stop struct {
	ID     int     `yaml:"id" json:"id"`
	CityID int     `yaml:"city_id" json:"city_id"`
	Name   string  `yaml:"name" json:"name"`
	Lat    float64 `yaml:"lat" json:"lat"`
	Lon    float64 `yaml:"lon" json:"lon"`
}

// VehicleType names a capacity class of vehicle (bus, tram, minibus...).
type VehicleType struct {
	ID       int    `yaml:"id" json:"id"`
	Name     string `yaml:"name" json:"name"`
	Capacity int    `yaml:"capacity" json:"capacity"`
}

// LatLon is a single polyline vertex.
type LatLon struct {
	Lat float64 `yaml:"lat" json:"lat"`
	Lon float64 `yaml:"lon" json:"lon"`
}

// Route is a city's fixed path served by a vehicle type at a given
// headway, with a fleet size and a polyline whose vertices resolve to
// stops.
type Route struct {
	ID            int      `yaml:"id" json:"id"`
	CityID        int      `yaml:"city_id" json:"city_id"`
	Name          string   `yaml:"name" json:"name"`
	VehicleTypeID int      `yaml:"vehicle_type_id" json:"vehicle_type_id"`
	IntervalMin   int      `yaml:"interval_min" json:"interval_min"`
	Amount        int      `yaml:"amount" json:"amount"`
	Polyline      []LatLon `yaml:"polyline" json:"polyline"`
	StopIDs       []int    `yaml:"stop_ids" json:"stop_ids"`
}

// Validate checks the catalog invariants from spec §6.4: capacity >= 1,
// interval >= 1 and a non-empty polyline. It does not check the fleet
// size (Usable reports whether amount >= 1), nor polyline-to-stop
// resolution, which depends on the full catalog (see
// ResolvePolylinePoint).
func (r Route) Validate(capacity int) error {
	if len(r.Polyline) == 0 {
		return fmt.Errorf("route %d: empty polyline", r.ID)
	}
	if r.IntervalMin < 1 {
		return fmt.Errorf("route %d: interval must be >= 1, got %d", r.ID, r.IntervalMin)
	}
	if capacity < 1 {
		return fmt.Errorf("route %d: vehicle-type capacity must be >= 1, got %d", r.ID, capacity)
	}
	return nil
}

// Usable reports whether r has enough data to be dispatched: at least
// two stops, a known vehicle type and a nonzero fleet.
func (r Route) Usable() bool {
	return len(r.StopIDs) >= 2 && r.VehicleTypeID != 0 && r.Amount >= 1
}

// Catalog is the read-only entity store the engine queries during
// scenario resolution. All accesses happen before a run starts; nothing
// in this package mutates state once loaded.
type Catalog struct {
	Cities       map[int]City
	Stops        map[int]Stop
	VehicleTypes map[int]VehicleType
	Routes       map[int]Route

	// stopRoutes indexes, for each stop id, the routes it participates
	// in, built once at load time.
	stopRoutes map[int][]int
}

// New builds a Catalog from already-loaded entities and computes the
// stop -> routes index used by the Scenario Resolver (spec §4.2 step 2).
func New(cities []City, stops []Stop, vtypes []VehicleType, routes []Route) *Catalog {
	c := &Catalog{
		Cities:       make(map[int]City, len(cities)),
		Stops:        make(map[int]Stop, len(stops)),
		VehicleTypes: make(map[int]VehicleType, len(vtypes)),
		Routes:       make(map[int]Route, len(routes)),
		stopRoutes:   make(map[int][]int),
	}
	for _, city := range cities {
		c.Cities[city.ID] = city
	}
	for _, s := range stops {
		c.Stops[s.ID] = s
	}
	for _, vt := range vtypes {
		c.VehicleTypes[vt.ID] = vt
	}
	for _, r := range routes {
		c.Routes[r.ID] = r
		for _, sid := range r.StopIDs {
			c.stopRoutes[sid] = append(c.stopRoutes[sid], r.ID)
		}
	}
	return c
}

// RouteByCity returns the route with the given id, provided it belongs
// to cityID (spec §4.2 step 1: routes are resolved by (city_id, id)).
func (c *Catalog) RouteByCity(cityID, routeID int) (Route, bool) {
	r, ok := c.Routes[routeID]
	if !ok || r.CityID != cityID {
		return Route{}, false
	}
	return r, true
}

// StopRoutes returns the ids of every route touching stopID.
func (c *Catalog) StopRoutes(stopID int) []int {
	return c.stopRoutes[stopID]
}

// Capacity returns the passenger capacity of a route's vehicle type, or
// 0 if the route references an unknown vehicle type (treated as "no
// fleet" by the Resolver).
func (c *Catalog) Capacity(r Route) int {
	vt, ok := c.VehicleTypes[r.VehicleTypeID]
	if !ok {
		return 0
	}
	return vt.Capacity
}

// HasCity reports whether cityID is a known city.
func (c *Catalog) HasCity(cityID int) bool {
	_, ok := c.Cities[cityID]
	return ok
}

// CoordTolerance is the maximum degree distance between a polyline
// vertex and a stop's coordinate for them to be considered the same
// point (spec §3 Route invariant, §9 "Floating-point decimals for
// coordinates").
const CoordTolerance = 1e-4

// ResolvePolylinePoint finds the stop among stops whose coordinate
// matches pt within CoordTolerance, breaking ties by nearest. It
// returns false if no stop is within tolerance (spec §3: "any polyline
// point must resolve to some stop"; §7 UnresolvablePolylinePoint).
func ResolvePolylinePoint(pt LatLon, stops map[int]Stop) (int, bool) {
	bestID := 0
	bestDist := math.Inf(1)
	found := false
	for id, s := range stops {
		dLat := math.Abs(s.Lat - pt.Lat)
		dLon := math.Abs(s.Lon - pt.Lon)
		if dLat > CoordTolerance || dLon > CoordTolerance {
			continue
		}
		d := dLat*dLat + dLon*dLon
		if !found || d < bestDist || (d == bestDist && id < bestID) {
			bestID = id
			bestDist = d
			found = true
		}
	}
	return bestID, found
}
