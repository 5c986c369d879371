// Package scenario implements the Scenario Resolver (spec §4.2, C2): it
// validates a user request against the Catalog and produces a
// self-contained SimInput by resolving routes by id, unioning their
// stops, and building a per-origin demand map with a special key 0 for
// undirected demand — the three-step shape spec §4.2 formalizes.
package scenario

import (
	"math/rand"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/superdef454/web-map/internal/catalog"
	"github.com/superdef454/web-map/internal/errs"
)

// RouteRef names a route the scenario wants included, by id.
type RouteRef struct {
	ID   int
	Name string
}

// DirectedDemand is one destination entry under a stop's "directions"
// list (spec §6.1).
type DirectedDemand struct {
	BusstopID       int
	PassengersCount int
}

// StopInput is the raw per-stop demand payload from the request.
type StopInput struct {
	PassengersWithoutDirection int
	Directions                 []DirectedDemand
}

// Request is the validated shape of CalculationRequest.data_to_calculate
// (spec §6.1) that the Resolver consumes.
type Request struct {
	CityID   int
	Routes   []RouteRef
	Busstops map[int]StopInput
}

// StopDemand is a resolved origin stop's destination -> passenger-count
// map. Key 0 denotes undirected demand (spec §3, §4.2 step 3).
type StopDemand struct {
	OriginStopID int
	Destinations map[int]int
}

// SimInput is the immutable, self-contained output of resolution (spec
// §3).
type SimInput struct {
	CityID  int
	Routes  []catalog.Route
	Stops   map[int]catalog.Stop
	Demands []StopDemand

	// ValidDestinations is precomputed per origin stop id so the
	// simulator can draw a uniform destination for undirected (key 0)
	// demand at init without re-deriving reachability (spec §4.2 step 5).
	ValidDestinations map[int][]int
}

// Resolve validates req against cat and returns a SimInput, or a typed
// *errs.SimError on failure (spec §4.2, §7).
func Resolve(cat *catalog.Catalog, req Request, log *logrus.Logger) (*SimInput, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if !cat.HasCity(req.CityID) {
		return nil, errs.New(errs.UnknownCity, nil, "unknown city_id %d", req.CityID)
	}

	// Step 1: resolve routes by (city_id, id); missing routes are
	// logged and skipped, not fatal (spec §4.2 step 1, §7 Recovery).
	var resolved []catalog.Route
	for _, ref := range req.Routes {
		r, ok := cat.RouteByCity(req.CityID, ref.ID)
		if !ok {
			log.WithFields(logrus.Fields{"city_id": req.CityID, "route_id": ref.ID}).
				Warn("scenario: unknown route, skipping")
			continue
		}
		if len(r.StopIDs) < 2 {
			log.WithFields(logrus.Fields{"route_id": r.ID}).
				Warn("scenario: route has fewer than two resolvable stops, skipping")
			continue
		}
		resolved = append(resolved, r)
	}
	if len(resolved) == 0 {
		return nil, errs.New(errs.NoRoutes, nil, "no routes resolved for city_id %d", req.CityID)
	}

	// Step 2: stop set = union of stops on any resolved route.
	stopSet := map[int]bool{}
	stopsIndexed := map[int]catalog.Stop{}
	for _, r := range resolved {
		for _, sid := range r.StopIDs {
			if !stopSet[sid] {
				stopSet[sid] = true
				if s, ok := cat.Stops[sid]; ok {
					stopsIndexed[sid] = s
				}
			}
		}
	}

	// Step 3: per-stop demand, restricted to valid destinations reachable
	// via a shared route with no transfers (spec §4.2 step 3).
	validDest := computeValidDestinations(resolved, stopSet)

	var demands []StopDemand
	for originID, in := range req.Busstops {
		if !stopSet[originID] {
			continue
		}
		valid := validDest[originID]
		validSet := make(map[int]bool, len(valid))
		for _, d := range valid {
			validSet[d] = true
		}

		dest := map[int]int{}
		for _, d := range in.Directions {
			if d.BusstopID == originID || d.PassengersCount < 1 {
				continue
			}
			if !validSet[d.BusstopID] {
				continue
			}
			dest[d.BusstopID] += d.PassengersCount
		}
		if in.PassengersWithoutDirection > 0 && len(valid) > 0 {
			dest[0] += in.PassengersWithoutDirection
		}
		if len(dest) == 0 {
			continue
		}
		demands = append(demands, StopDemand{OriginStopID: originID, Destinations: dest})
	}
	if len(demands) == 0 {
		return nil, errs.New(errs.NoDemand, nil, "no non-empty stop demand after filtering")
	}

	return &SimInput{
		CityID:            req.CityID,
		Routes:            resolved,
		Stops:             stopsIndexed,
		Demands:           demands,
		ValidDestinations: validDest,
	}, nil
}

// computeValidDestinations returns, for every stop in stopSet, the list
// of other stops reachable via any route both stops share (no
// transfers), restricted to stopSet (spec §4.2 step 3 "valid
// destinations").
func computeValidDestinations(routes []catalog.Route, stopSet map[int]bool) map[int][]int {
	routesByStop := map[int][]int{}
	for _, r := range routes {
		for _, sid := range r.StopIDs {
			routesByStop[sid] = append(routesByStop[sid], r.ID)
		}
	}
	routeStops := map[int]map[int]bool{}
	for _, r := range routes {
		set := make(map[int]bool, len(r.StopIDs))
		for _, sid := range r.StopIDs {
			set[sid] = true
		}
		routeStops[r.ID] = set
	}

	out := make(map[int][]int, len(stopSet))
	for origin := range stopSet {
		reachable := map[int]bool{}
		for _, rid := range routesByStop[origin] {
			for sid := range routeStops[rid] {
				if sid != origin && stopSet[sid] {
					reachable[sid] = true
				}
			}
		}
		list := make([]int, 0, len(reachable))
		for sid := range reachable {
			list = append(list, sid)
		}
		sort.Ints(list)
		out[origin] = list
	}
	return out
}

// DrawUndirectedDestination uniformly samples a destination for
// undirected (key 0) demand at origin, using rng for determinism (spec
// §4.2 step 5, §9 "Randomness for undirected demand").
func DrawUndirectedDestination(rng *rand.Rand, validDestinations []int) (int, bool) {
	if len(validDestinations) == 0 {
		return 0, false
	}
	return validDestinations[rng.Intn(len(validDestinations))], true
}
