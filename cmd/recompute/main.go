// Command recompute loads a catalog fixture and reports each route's
// per-segment and total polyline distance, recomputed from scratch via
// the great-circle distance the simulator itself uses for travel time.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/superdef454/web-map/internal/catalog"
	"github.com/superdef454/web-map/internal/geodesy"
)

func main() {
	log := logrus.StandardLogger()
	if len(os.Args) < 2 {
		fmt.Println("usage: recompute <catalog-fixture.yaml>")
		os.Exit(1)
	}

	f, err := os.Open(os.Args[1])
	if err != nil {
		log.WithError(err).Fatal("recompute: opening fixture")
	}
	defer f.Close()

	cat, err := catalog.LoadFromReader(f)
	if err != nil {
		log.WithError(err).Fatal("recompute: parsing fixture")
	}

	for _, r := range cat.Routes {
		total := 0.0
		fmt.Printf("route %d (%s):\n", r.ID, r.Name)
		for i := 0; i+1 < len(r.Polyline); i++ {
			a := geodesy.Point{Lat: r.Polyline[i].Lat, Lon: r.Polyline[i].Lon}
			b := geodesy.Point{Lat: r.Polyline[i+1].Lat, Lon: r.Polyline[i+1].Lon}
			d := geodesy.DistanceKM(a, b)
			total += d
			fmt.Printf("  segment %d -> %d: %.3f km\n", i, i+1, d)
		}
		fmt.Printf("  total: %.3f km\n", total)
	}
}
