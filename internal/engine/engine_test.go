package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/superdef454/web-map/internal/catalog"
)

func testCatalog() *catalog.Catalog {
	return catalog.New(
		[]catalog.City{{ID: 1, Name: "Testville"}},
		[]catalog.Stop{
			{ID: 1, CityID: 1, Name: "A", Lat: 0, Lon: 0},
			{ID: 2, CityID: 1, Name: "B", Lat: 0.036, Lon: 0},
		},
		[]catalog.VehicleType{{ID: 1, Name: "Bus", Capacity: 50}},
		[]catalog.Route{
			{
				ID: 1, CityID: 1, Name: "R1", VehicleTypeID: 1, IntervalMin: 10, Amount: 1,
				Polyline: []catalog.LatLon{{Lat: 0, Lon: 0}, {Lat: 0.036, Lon: 0}},
				StopIDs:  []int{1, 2},
			},
		},
	)
}

func TestCalculate_S2EndToEnd(t *testing.T) {
	cat := testCatalog()
	req := CalculationRequest{
		DataToCalculate: DataToCalculate{
			CityID: 1,
			Routes: []RouteRequest{{ID: 1}},
			Busstops: map[string]StopRequest{
				"1": {Directions: []DirectionRequest{{BusstopID: 2, PassengersCount: 1}}},
			},
		},
	}

	resp := Calculate(cat, req, nil)

	require.Equal(t, 0, resp.Error)
	require.NotNil(t, resp.DataToReport)
	assert.Equal(t, "Testville", resp.DataToReport.CityName)
	require.Len(t, resp.DataToReport.Routes, 1)
	assert.Equal(t, 1.0, resp.DataToReport.Routes[0].AverageJourneyStops)
	assert.NotEmpty(t, resp.Calculate, "timeline requested by default")
}

func TestCalculate_NoTimelineOmitsFrames(t *testing.T) {
	cat := testCatalog()
	noTimeline := false
	req := CalculationRequest{
		DataToCalculate: DataToCalculate{
			CityID: 1,
			Routes: []RouteRequest{{ID: 1}},
			Busstops: map[string]StopRequest{
				"1": {Directions: []DirectionRequest{{BusstopID: 2, PassengersCount: 1}}},
			},
		},
		GetTimeline: &noTimeline,
	}

	resp := Calculate(cat, req, nil)
	require.Equal(t, 0, resp.Error)
	assert.Empty(t, resp.Calculate)
}

func TestCalculate_InvalidCityID(t *testing.T) {
	cat := testCatalog()
	req := CalculationRequest{DataToCalculate: DataToCalculate{CityID: 0}}
	resp := Calculate(cat, req, nil)
	assert.Equal(t, 1, resp.Error)
	assert.Equal(t, "validation", resp.Stage)
}

func TestCalculate_UnknownCity(t *testing.T) {
	cat := testCatalog()
	req := CalculationRequest{DataToCalculate: DataToCalculate{CityID: 99, Routes: []RouteRequest{{ID: 1}}}}
	resp := Calculate(cat, req, nil)
	assert.Equal(t, 1, resp.Error)
	assert.Equal(t, "validation", resp.Stage)
}

func TestCalculate_NoDemandAfterFiltering(t *testing.T) {
	cat := testCatalog()
	req := CalculationRequest{
		DataToCalculate: DataToCalculate{
			CityID:   1,
			Routes:   []RouteRequest{{ID: 1}},
			Busstops: map[string]StopRequest{"1": {}},
		},
	}
	resp := Calculate(cat, req, nil)
	assert.Equal(t, 1, resp.Error)
	assert.Equal(t, "data_preparation", resp.Stage)
	assert.Nil(t, resp.DataToReport)
}

func TestCalculate_NonIntegerBusstopKeyIsInvalidInput(t *testing.T) {
	cat := testCatalog()
	req := CalculationRequest{
		DataToCalculate: DataToCalculate{
			CityID:   1,
			Routes:   []RouteRequest{{ID: 1}},
			Busstops: map[string]StopRequest{"not-a-number": {PassengersWithoutDirection: 1}},
		},
	}
	resp := Calculate(cat, req, nil)
	assert.Equal(t, 1, resp.Error)
	assert.Equal(t, "validation", resp.Stage)
}

func TestCalculate_SeedControlsSimulationID(t *testing.T) {
	cat := testCatalog()
	seed := int64(42)
	req := CalculationRequest{
		DataToCalculate: DataToCalculate{
			CityID: 1,
			Routes: []RouteRequest{{ID: 1}},
			Busstops: map[string]StopRequest{
				"1": {Directions: []DirectionRequest{{BusstopID: 2, PassengersCount: 1}}},
			},
		},
		Seed: &seed,
	}
	resp := Calculate(cat, req, nil)
	require.Equal(t, 0, resp.Error)
	assert.Equal(t, 42, resp.SimulationID)
}
