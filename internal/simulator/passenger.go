package simulator

// Passenger is one rider traveling from an origin to a destination stop
// (spec §3): identity, origin/destination and a display name for frame
// snapshots (spec §4.7).
type Passenger struct {
	ID            int
	RouteID       int
	OriginStopID  int
	DestStopID    int
	DisplayName   string
}

// NewPassenger builds a Passenger. destStopID must already be resolved
// (undirected demand is resolved to a concrete stop before passengers
// are materialized, spec §4.5 Initialization step 2).
func NewPassenger(id, routeID, originStopID, destStopID int, displayName string) *Passenger {
	return &Passenger{
		ID:           id,
		RouteID:      routeID,
		OriginStopID: originStopID,
		DestStopID:   destStopID,
		DisplayName:  displayName,
	}
}
