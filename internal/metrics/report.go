package metrics

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// BusStopRow is one row of ReportStructure.bus_stops (spec §6.3).
type BusStopRow struct {
	BusName               string `json:"bus_name" csv:"bus_name"`
	InitialPassengerCount int    `json:"initial_passengers_count" csv:"initial_passengers_count"`
	MaxWaitingTimeMin     int    `json:"max_waiting_time_min" csv:"max_waiting_time_min"`
	RoutesCount           int    `json:"routes_count" csv:"routes_count"`
}

// RouteRow is one row of ReportStructure.routes (spec §6.3).
type RouteRow struct {
	Name                string  `json:"name" csv:"name"`
	VehicleTypeLabel    string  `json:"vehicle_type_label" csv:"vehicle_type_label"`
	Interval            int     `json:"interval" csv:"interval"`
	AverageJourneyStops float64 `json:"average_journey_stops" csv:"average_journey_stops"`
	AverageFullnessPct  string  `json:"average_fullness_pct" csv:"average_fullness_pct"`
	StopCount           int     `json:"stop_count" csv:"stop_count"`
	RouteLengthKM       float64 `json:"route_length_km" csv:"route_length_km"`
	VehicleCount        int     `json:"vehicle_count" csv:"vehicle_count"`
	CompletedTrips      int     `json:"completed_trips" csv:"completed_trips"`
}

// ReportStructure is the finalized report the engine returns (spec
// §6.3).
type ReportStructure struct {
	CityName        string       `json:"city_name"`
	Data            string       `json:"data"`
	BusStops        []BusStopRow `json:"bus_stops"`
	Routes          []RouteRow   `json:"routes"`
	TotalTripsCount int          `json:"total_trips_count"`
}

// Finalize computes the report's derived fields from the accumulated
// sums (spec §4.6 finalize rules) and appends the totals row.
func (a *Aggregator) Finalize(cityName string, at time.Time) ReportStructure {
	rep := ReportStructure{
		CityName: cityName,
		Data:     isoTimestampDashed(at),
	}

	routeIDs := make([]int, 0, len(a.Routes))
	for id := range a.Routes {
		routeIDs = append(routeIDs, id)
	}
	sort.Ints(routeIDs)

	totalCompleted := 0
	for _, id := range routeIDs {
		r := a.Routes[id]
		avgJourney := 0.0
		if r.CountJourneys > 0 {
			avgJourney = round2(float64(r.SumJourneyStops) / float64(r.CountJourneys))
		}
		avgFullnessPct := 0.0
		if r.CountFullnessSamples > 0 && r.Capacity > 0 {
			avgFullness := float64(r.SumFullness) / float64(r.CountFullnessSamples)
			avgFullnessPct = round2(avgFullness / float64(r.Capacity) * 100)
		}
		rep.Routes = append(rep.Routes, RouteRow{
			Name:                r.Name,
			VehicleTypeLabel:    r.VehicleTypeLabel,
			Interval:            r.IntervalMin,
			AverageJourneyStops: avgJourney,
			AverageFullnessPct:  fmt.Sprintf("%.2f%%", avgFullnessPct),
			StopCount:           r.StopCount,
			RouteLengthKM:       r.RouteLengthKM,
			VehicleCount:        r.VehicleCount,
			CompletedTrips:      r.CompletedTrips,
		})
		totalCompleted += r.CompletedTrips
	}
	rep.TotalTripsCount = totalCompleted

	stopIDs := make([]int, 0, len(a.Stops))
	for id := range a.Stops {
		stopIDs = append(stopIDs, id)
	}
	sort.Ints(stopIDs)

	sumInitial := 0
	sumMaxWaitMin := 0
	contributing := 0
	for _, id := range stopIDs {
		s := a.Stops[id]
		maxWaitMin := int(round0(float64(s.MaxWaitingTimeSeconds) / 60))
		rep.BusStops = append(rep.BusStops, BusStopRow{
			BusName:               s.Name,
			InitialPassengerCount: s.InitialPassengersCount,
			MaxWaitingTimeMin:     maxWaitMin,
			RoutesCount:           s.RoutesThrough,
		})
		sumInitial += s.InitialPassengersCount
		if s.InitialPassengersCount > 0 || s.MaxWaitingTimeSeconds > 0 {
			sumMaxWaitMin += maxWaitMin
			contributing++
		}
	}
	meanMaxWait := 0
	if contributing > 0 {
		meanMaxWait = int(round0(float64(sumMaxWaitMin) / float64(contributing)))
	}
	rep.BusStops = append(rep.BusStops, BusStopRow{
		BusName:               "Total",
		InitialPassengerCount: sumInitial,
		MaxWaitingTimeMin:     meanMaxWait,
		RoutesCount:           0,
	})

	return rep
}

func round0(v float64) float64 {
	return float64(int(v + 0.5))
}

func isoTimestampDashed(t time.Time) string {
	s := t.UTC().Format(time.RFC3339)
	return strings.ReplaceAll(s, ":", "-")
}
