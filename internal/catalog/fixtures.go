package catalog

import (
	"io"

	"gopkg.in/yaml.v3"
)

// fixtureFile is the on-disk shape of a catalog fixture: a flat bag of
// cities, stops, vehicle types and routes covering a full catalog
// rather than a single hard-coded route.
type fixtureFile struct {
	Cities       []City        `yaml:"cities"`
	Stops        []Stop        `yaml:"stops"`
	VehicleTypes []VehicleType `yaml:"vehicle_types"`
	Routes       []Route       `yaml:"routes"`
}

// LoadFromReader reads a YAML catalog fixture and builds a Catalog from
// it, covering the full City/Stop/VehicleType/Route entity set the
// Scenario Resolver (C2) needs.
func LoadFromReader(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var ff fixtureFile
	if err := yaml.Unmarshal(data, &ff); err != nil {
		return nil, err
	}
	return New(ff.Cities, ff.Stops, ff.VehicleTypes, ff.Routes), nil
}
