package simulator

import "github.com/superdef454/web-map/internal/catalog"

// StopState is the per-run mutable state of a Stop: its waiting queue
// and, per route, the last time a vehicle dispatched from it (spec §3).
// Stop identity stays in catalog.Stop; only run-local state lives here,
// matching spec §9's "arena-plus-id graph" design note.
type StopState struct {
	Stop                 catalog.Stop
	Waiting              []*Passenger // FIFO by insertion order
	LastDispatchPerRoute map[int]int  // route id -> last dispatch time (seconds)
}

// NewStopState creates an empty StopState for s. Spec §4.5 Initialization
// step 3: every stop gets a StopState even with no demand, so the
// simulator can address it by id.
func NewStopState(s catalog.Stop) *StopState {
	return &StopState{
		Stop:                 s,
		LastDispatchPerRoute: make(map[int]int),
	}
}

// Enqueue appends p to the waiting queue (FIFO).
func (ss *StopState) Enqueue(p *Passenger) {
	ss.Waiting = append(ss.Waiting, p)
}

// removeAt removes the passenger at index i from the waiting queue,
// preserving the order of the rest.
func (ss *StopState) removeAt(i int) {
	ss.Waiting = append(ss.Waiting[:i], ss.Waiting[i+1:]...)
}

// Board scans the waiting queue in order and moves onto v every
// passenger whose destination is in remaining and for whom there is
// still capacity, recording each boarded passenger's journey length via
// record (spec §4.5 step b). It returns the number boarded.
func (ss *StopState) Board(v *Vehicle, remaining []int, record func(journeyLen int)) int {
	remainingIdx := make(map[int]int, len(remaining))
	for i, sid := range remaining {
		if _, exists := remainingIdx[sid]; !exists {
			remainingIdx[sid] = i
		}
	}

	boarded := 0
	i := 0
	for i < len(ss.Waiting) {
		p := ss.Waiting[i]
		if len(v.Passengers) >= v.Capacity {
			break
		}
		idx, ok := remainingIdx[p.DestStopID]
		if !ok {
			i++
			continue
		}
		ss.removeAt(i)
		v.Passengers[p.ID] = p
		boarded++
		// The boarding stop is always remaining[0] (spec §4.5.1), so its
		// position is 0 and journey_length = idx - 0.
		journeyLen := idx
		if record != nil {
			record(journeyLen)
		}
		// do not advance i: removeAt shifted the next element into i
	}
	return boarded
}

// HasWaiting reports whether the stop's waiting queue is nonempty,
// whatever the waiting passengers' destinations — the has_demand_ahead
// predicate (spec §4.5 step c) evaluated for a single stop.
func (ss *StopState) HasWaiting() bool {
	return len(ss.Waiting) > 0
}
