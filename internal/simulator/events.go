package simulator

// DispatchEvent is the initial release of a Vehicle at t = k*interval*60
// (spec §3 Event, §4.5 Initialization step 1).
type DispatchEvent struct {
	VehicleID int
}

// ArriveEvent is a Vehicle reaching its current polyline position,
// triggering the alight/board/dispatch-decision handler (spec §4.5).
type ArriveEvent struct {
	VehicleID int
}
