package metrics

import (
	"os"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
)

// WriteCSVReport writes rep's route and stop rows to two CSV files next
// to basePath (basePath-routes.csv, basePath-stops.csv), using
// struct-tag-driven marshaling via gocsv.
func WriteCSVReport(basePath string, rep ReportStructure) (routesPath, stopsPath string, err error) {
	routesPath = basePath + "-routes.csv"
	stopsPath = basePath + "-stops.csv"

	routesCSV, err := gocsv.MarshalString(&rep.Routes)
	if err != nil {
		return "", "", errors.Wrap(err, "marshaling route rows")
	}
	if err := os.WriteFile(routesPath, []byte(routesCSV), 0o644); err != nil {
		return "", "", errors.Wrap(err, "writing routes csv")
	}

	stopsCSV, err := gocsv.MarshalString(&rep.BusStops)
	if err != nil {
		return "", "", errors.Wrap(err, "marshaling stop rows")
	}
	if err := os.WriteFile(stopsPath, []byte(stopsCSV), 0o644); err != nil {
		return "", "", errors.Wrap(err, "writing stops csv")
	}

	return routesPath, stopsPath, nil
}
