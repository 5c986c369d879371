// Command simrun is the CLI entrypoint for the simulation engine,
// structured the way tidbyt-gtfs/cmd/main.go builds its cobra root
// command and persistent flags, generalized from a single GTFS-tool
// subcommand to the catalog-fixture + scenario-file inputs this engine
// needs.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var log = logrus.StandardLogger()

var rootCmd = &cobra.Command{
	Use:          "simrun",
	Short:        "Transit load simulation engine",
	Long:         "Resolves a scenario against a route catalog and runs the discrete-event simulation.",
	SilenceUsage: true,
}

var (
	catalogPath  string
	scenarioPath string
	reportPath   string
	seed         int64
	noTimeline   bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&catalogPath, "catalog", "c", "", "path to a YAML catalog fixture")
	rootCmd.PersistentFlags().StringVarP(&scenarioPath, "scenario", "s", "", "path to a JSON CalculationRequest file")
	rootCmd.PersistentFlags().StringVarP(&reportPath, "report", "r", "", "base path for CSV report output (optional)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "override the request's random seed")
	rootCmd.PersistentFlags().BoolVar(&noTimeline, "no-timeline", false, "omit playback frames from the response")
	rootCmd.AddCommand(calculateCmd)
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.WithError(err).Debug("no .env file found (this is fine without one)")
	}
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
