package scenario

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/superdef454/web-map/internal/catalog"
	"github.com/superdef454/web-map/internal/errs"
)

func twoStopCatalog() *catalog.Catalog {
	cities := []catalog.City{{ID: 1, Name: "Testville"}}
	stops := []catalog.Stop{
		{ID: 1, CityID: 1, Name: "A", Lat: 0, Lon: 0},
		{ID: 2, CityID: 1, Name: "B", Lat: 0.036, Lon: 0},
	}
	vtypes := []catalog.VehicleType{{ID: 1, Name: "Bus", Capacity: 50}}
	routes := []catalog.Route{
		{
			ID: 1, CityID: 1, Name: "R1", VehicleTypeID: 1, IntervalMin: 10, Amount: 1,
			Polyline: []catalog.LatLon{{Lat: 0, Lon: 0}, {Lat: 0.036, Lon: 0}},
			StopIDs:  []int{1, 2},
		},
	}
	return catalog.New(cities, stops, vtypes, routes)
}

func TestResolve_S1_EmptyDemandRejected(t *testing.T) {
	cat := twoStopCatalog()
	req := Request{
		CityID: 1,
		Routes: []RouteRef{{ID: 1}},
		Busstops: map[int]StopInput{
			1: {PassengersWithoutDirection: 0, Directions: nil},
		},
	}
	_, err := Resolve(cat, req, nil)
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.NoDemand))
}

func TestResolve_S2_SingleRouteSingleDemand(t *testing.T) {
	cat := twoStopCatalog()
	req := Request{
		CityID: 1,
		Routes: []RouteRef{{ID: 1}},
		Busstops: map[int]StopInput{
			1: {Directions: []DirectedDemand{{BusstopID: 2, PassengersCount: 1}}},
		},
	}
	input, err := Resolve(cat, req, nil)
	require.NoError(t, err)
	require.Len(t, input.Routes, 1)
	require.Len(t, input.Demands, 1)
	assert.Equal(t, 1, input.Demands[0].OriginStopID)
	assert.Equal(t, 1, input.Demands[0].Destinations[2])
}

func TestResolve_UnknownRoutesSkippedNotFatal(t *testing.T) {
	cat := twoStopCatalog()
	req := Request{
		CityID: 1,
		Routes: []RouteRef{{ID: 1}, {ID: 999}},
		Busstops: map[int]StopInput{
			1: {Directions: []DirectedDemand{{BusstopID: 2, PassengersCount: 1}}},
		},
	}
	input, err := Resolve(cat, req, nil)
	require.NoError(t, err)
	assert.Len(t, input.Routes, 1)
}

func TestResolve_NoRoutesWhenAllMissing(t *testing.T) {
	cat := twoStopCatalog()
	req := Request{CityID: 1, Routes: []RouteRef{{ID: 999}}}
	_, err := Resolve(cat, req, nil)
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.NoRoutes))
}

func TestResolve_UnknownCity(t *testing.T) {
	cat := twoStopCatalog()
	req := Request{CityID: 42, Routes: []RouteRef{{ID: 1}}}
	_, err := Resolve(cat, req, nil)
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.UnknownCity))
}

func TestResolve_UndirectedDemandDestinationRestrictedToValidSet(t *testing.T) {
	cat := twoStopCatalog()
	req := Request{
		CityID: 1,
		Routes: []RouteRef{{ID: 1}},
		Busstops: map[int]StopInput{
			1: {PassengersWithoutDirection: 1},
		},
	}
	input, err := Resolve(cat, req, nil)
	require.NoError(t, err)
	require.Len(t, input.Demands, 1)
	assert.Equal(t, 1, input.Demands[0].Destinations[0])
	assert.Equal(t, []int{2}, input.ValidDestinations[1])
}

func TestDrawUndirectedDestination_Deterministic(t *testing.T) {
	valid := []int{2, 3, 4}
	a, ok := DrawUndirectedDestination(rand.New(rand.NewSource(42)), valid)
	require.True(t, ok)
	b, _ := DrawUndirectedDestination(rand.New(rand.NewSource(42)), valid)
	assert.Equal(t, a, b)
}

func TestDrawUndirectedDestination_EmptyValidSet(t *testing.T) {
	_, ok := DrawUndirectedDestination(rand.New(rand.NewSource(1)), nil)
	assert.False(t, ok)
}
