package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/superdef454/web-map/internal/catalog"
	"github.com/superdef454/web-map/internal/engine"
	"github.com/superdef454/web-map/internal/metrics"
)

var calculateCmd = &cobra.Command{
	Use:   "calculate",
	Short: "Resolve a scenario and run the simulation, printing a CalculationResponse",
	RunE:  runCalculate,
}

func runCalculate(cmd *cobra.Command, args []string) error {
	if catalogPath == "" || scenarioPath == "" {
		return fmt.Errorf("both --catalog and --scenario are required")
	}

	cat, err := loadCatalog(catalogPath)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	req, err := loadRequest(scenarioPath)
	if err != nil {
		return fmt.Errorf("loading scenario: %w", err)
	}
	if noTimeline {
		f := false
		req.GetTimeline = &f
	}
	if seed != 0 {
		req.Seed = &seed
	}

	resp := engine.Calculate(cat, req, log)

	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling response: %w", err)
	}
	fmt.Println(string(out))

	if reportPath != "" && resp.Error == 0 && resp.DataToReport != nil {
		if err := writeReport(*resp.DataToReport); err != nil {
			log.WithError(err).Warn("calculate: report export failed")
		}
	}
	return nil
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return catalog.LoadFromReader(f)
}

func loadRequest(path string) (engine.CalculationRequest, error) {
	var req engine.CalculationRequest
	data, err := os.ReadFile(path)
	if err != nil {
		return req, err
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return req, err
	}
	return req, nil
}

func writeReport(rep metrics.ReportStructure) error {
	routesCSV, stopsCSV, err := metrics.WriteCSVReport(reportPath, rep)
	if err != nil {
		return err
	}
	log.WithFields(map[string]any{"routes_csv": routesCSV, "stops_csv": stopsCSV}).Info("calculate: report written")
	return nil
}
