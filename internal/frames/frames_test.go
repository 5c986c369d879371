package frames

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrames_SortedStablyByTime(t *testing.T) {
	r := NewRecorder()
	r.Emit(10, nil, nil)
	r.Emit(0, []VehicleSnapshot{{BusID: 1}}, nil)
	r.Emit(5, nil, nil)
	r.Emit(5, []VehicleSnapshot{{BusID: 2}}, nil)

	out := r.Frames()
	var times []int
	for _, f := range out {
		times = append(times, f.TSeconds)
	}
	assert.Equal(t, []int{0, 5, 5, 10}, times)
	// Ties preserve emission order.
	assert.Equal(t, 2, out[2].Buses[0].BusID)
}

func TestFrames_EmptyRecorderYieldsEmptySlice(t *testing.T) {
	r := NewRecorder()
	assert.Empty(t, r.Frames())
}
