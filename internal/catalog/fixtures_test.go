package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFixtureYAML = `
cities:
  - id: 1
    name: Testville
stops:
  - id: 1
    city_id: 1
    name: A
    lat: 0
    lon: 0
  - id: 2
    city_id: 1
    name: B
    lat: 0.036
    lon: 0
vehicle_types:
  - id: 1
    name: Bus
    capacity: 50
routes:
  - id: 1
    city_id: 1
    name: R1
    vehicle_type_id: 1
    interval_min: 10
    amount: 1
    stop_ids: [1, 2]
    polyline:
      - lat: 0
        lon: 0
      - lat: 0.036
        lon: 0
`

func TestLoadFromReader_ParsesFullFixture(t *testing.T) {
	cat, err := LoadFromReader(strings.NewReader(sampleFixtureYAML))
	require.NoError(t, err)

	assert.Len(t, cat.Cities, 1)
	assert.Len(t, cat.Stops, 2)
	assert.Len(t, cat.VehicleTypes, 1)
	require.Len(t, cat.Routes, 1)

	r := cat.Routes[1]
	assert.Equal(t, "R1", r.Name)
	assert.True(t, r.Usable())
}

func TestLoadFromReader_InvalidYAMLErrors(t *testing.T) {
	_, err := LoadFromReader(strings.NewReader("not: [valid yaml"))
	assert.Error(t, err)
}
