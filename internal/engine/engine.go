package engine

import (
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/superdef454/web-map/internal/catalog"
	"github.com/superdef454/web-map/internal/errs"
	"github.com/superdef454/web-map/internal/scenario"
	"github.com/superdef454/web-map/internal/simulator"
)

// Calculate runs the full pipeline — resolve, simulate, aggregate — and
// returns a CalculationResponse shaped per spec §6.2. It never returns a
// Go error: every failure mode is represented in the response itself as
// an error/stage/hint body.
func Calculate(cat *catalog.Catalog, req CalculationRequest, log *logrus.Logger) CalculationResponse {
	if log == nil {
		log = logrus.StandardLogger()
	}

	if req.DataToCalculate.CityID <= 0 {
		return errorResponse(errs.New(errs.InvalidInput, nil, "city_id must be positive"))
	}

	scenarioReq, err := toScenarioRequest(req.DataToCalculate)
	if err != nil {
		return errorResponse(err)
	}

	input, err := scenario.Resolve(cat, scenarioReq, log)
	if err != nil {
		return errorResponse(err)
	}

	seed := int64(0)
	if req.Seed != nil {
		seed = *req.Seed
	}

	eng, err := simulator.New(cat, input, seed, log)
	if err != nil {
		return errorResponse(err)
	}

	recordedFrames, agg, err := eng.Run()
	if err != nil {
		return errorResponse(err)
	}

	cityName := ""
	if city, ok := cat.Cities[req.DataToCalculate.CityID]; ok {
		cityName = city.Name
	}
	report := agg.Finalize(cityName, time.Now())

	resp := CalculationResponse{
		Error:        0,
		DataToReport: &report,
		SimulationID: int(seed),
	}
	if req.wantTimeline() {
		resp.Calculate = framesToTimeline(recordedFrames)
	}
	return resp
}

func errorResponse(err error) CalculationResponse {
	se, ok := err.(*errs.SimError)
	if !ok {
		se = errs.New(errs.InvalidInput, err, "")
	}
	return CalculationResponse{
		Error:        se.Code(),
		ErrorMessage: se.Error(),
		Stage:        string(se.Stage),
		Hint:         se.Hint,
	}
}

// toScenarioRequest converts the wire-format DataToCalculate (string
// stop-id keys, per spec §6.1's JSON object-of-objects) into the typed
// scenario.Request the Resolver consumes.
func toScenarioRequest(d DataToCalculate) (scenario.Request, error) {
	routes := make([]scenario.RouteRef, 0, len(d.Routes))
	for _, r := range d.Routes {
		routes = append(routes, scenario.RouteRef{ID: r.ID, Name: r.Name})
	}

	busstops := make(map[int]scenario.StopInput, len(d.Busstops))
	for key, in := range d.Busstops {
		stopID, convErr := strconv.Atoi(key)
		if convErr != nil {
			return scenario.Request{}, errs.New(errs.InvalidInput, convErr, "busstops key %q is not an integer stop id", key)
		}
		dirs := make([]scenario.DirectedDemand, 0, len(in.Directions))
		for _, dd := range in.Directions {
			dirs = append(dirs, scenario.DirectedDemand{BusstopID: dd.BusstopID, PassengersCount: dd.PassengersCount})
		}
		busstops[stopID] = scenario.StopInput{
			PassengersWithoutDirection: in.PassengersWithoutDirection,
			Directions:                 dirs,
		}
	}

	return scenario.Request{
		CityID:   d.CityID,
		Routes:   routes,
		Busstops: busstops,
	}, nil
}
