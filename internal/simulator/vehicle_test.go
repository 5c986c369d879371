package simulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func threeStopPolyline() []PolylinePoint {
	return []PolylinePoint{
		{StopID: 1, Lat: 0, Lon: 0},
		{StopID: 2, Lat: 0.036, Lon: 0},
		{StopID: 3, Lat: 0.072, Lon: 0},
	}
}

func TestRemainingStopIDs_AtStartTerminalIsForwardFromZero(t *testing.T) {
	v := NewVehicle(1, 1, 1, 50, threeStopPolyline())
	assert.Equal(t, []int{1, 2, 3}, v.RemainingStopIDs())
}

func TestRemainingStopIDs_MidRouteStartsAtCurrentStop(t *testing.T) {
	v := NewVehicle(1, 1, 1, 50, threeStopPolyline())
	v.CurrentIndex = 1
	assert.Equal(t, []int{2, 3}, v.RemainingStopIDs())
}

func TestRemainingStopIDs_AtFarTerminalIsReversedWithCurrentStopFirst(t *testing.T) {
	v := NewVehicle(1, 1, 1, 50, threeStopPolyline())
	v.CurrentIndex = 2 // far terminal, stop 3
	remaining := v.RemainingStopIDs()
	assert.Equal(t, []int{3, 2, 1}, remaining)
	assert.Equal(t, v.CurrentPoint().StopID, remaining[0])
}

func TestTurn_ReversesPolylineAndResetsIndex(t *testing.T) {
	v := NewVehicle(1, 1, 1, 50, threeStopPolyline())
	v.CurrentIndex = 2
	v.Turn()
	assert.Equal(t, Reverse, v.Direction)
	assert.Equal(t, 1, v.CurrentIndex)
	assert.Equal(t, []int{3, 2, 1}, []int{v.Polyline[0].StopID, v.Polyline[1].StopID, v.Polyline[2].StopID})
	assert.Equal(t, 1, v.CompletedTrips)
}

func TestAtTerminal_TrueAtBothEnds(t *testing.T) {
	v := NewVehicle(1, 1, 1, 50, threeStopPolyline())
	assert.True(t, v.AtTerminal())
	v.CurrentIndex = 1
	assert.False(t, v.AtTerminal())
	v.CurrentIndex = 2
	assert.True(t, v.AtTerminal())
	assert.True(t, v.AtFarTerminal())
}
