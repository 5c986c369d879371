package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/superdef454/web-map/internal/frames"
)

func TestTimelineEntry_MarshalsAsTwoElementArray(t *testing.T) {
	entry := TimelineEntry{
		TSeconds: 364,
		Body: FrameBody{
			Buses: []frames.VehicleSnapshot{{BusID: 1, RouteID: 1, StopID: 2}},
		},
	}

	data, err := json.Marshal(entry)
	require.NoError(t, err)

	var raw []json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 2)

	var t0 int
	require.NoError(t, json.Unmarshal(raw[0], &t0))
	assert.Equal(t, 364, t0)

	var body FrameBody
	require.NoError(t, json.Unmarshal(raw[1], &body))
	require.Len(t, body.Buses, 1)
	assert.Equal(t, 2, body.Buses[0].StopID)
}

func TestFramesToTimeline_PreservesOrderAndCount(t *testing.T) {
	fs := []frames.Frame{
		{TSeconds: 0},
		{TSeconds: 4},
		{TSeconds: 364},
	}
	out := framesToTimeline(fs)
	require.Len(t, out, 3)
	assert.Equal(t, 0, out[0].TSeconds)
	assert.Equal(t, 364, out[2].TSeconds)
}
