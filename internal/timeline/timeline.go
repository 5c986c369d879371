// Package timeline implements the simulator's priority structure of
// pending events keyed by absolute simulated seconds (spec §4.4, C4).
// A container/heap priority queue of (time, sequence) tuples, carrying
// an opaque event payload instead of a hard-coded event type.
package timeline

import "container/heap"

// Event is an opaque payload scheduled at a point in simulated time.
// The timeline never inspects or mutates it.
type Event interface{}

type entry struct {
	t     int
	seq   int
	event Event
}

// entryHeap is a min-heap ordered by (t, seq) so that pops within the
// same instant come out in schedule order ("tie order within a group
// is the insertion order", §4.4).
type entryHeap []entry

func (h entryHeap) Len() int { return len(h) }
func (h entryHeap) Less(i, j int) bool {
	if h[i].t != h[j].t {
		return h[i].t < h[j].t
	}
	return h[i].seq < h[j].seq
}
func (h entryHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *entryHeap) Push(x any)   { *h = append(*h, x.(entry)) }
func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Timeline is a container of future events keyed by absolute second.
// Not safe for concurrent use; the simulator that owns one is
// single-threaded (spec §5).
type Timeline struct {
	heap    entryHeap
	nextSeq int
}

// New returns an empty Timeline.
func New() *Timeline {
	t := &Timeline{}
	heap.Init(&t.heap)
	return t
}

// Schedule appends an event at absolute time t. Multiple events may
// share t; Schedule does not reorder or coalesce them.
func (tl *Timeline) Schedule(t int, event Event) {
	heap.Push(&tl.heap, entry{t: t, seq: tl.nextSeq, event: event})
	tl.nextSeq++
}

// IsEmpty reports whether the timeline has no pending events.
func (tl *Timeline) IsEmpty() bool {
	return tl.heap.Len() == 0
}

// PopEarliest removes and returns every event tied at the smallest
// pending time, in the order they were scheduled. It panics if the
// timeline is empty; callers must check IsEmpty first.
func (tl *Timeline) PopEarliest() (int, []Event) {
	if tl.heap.Len() == 0 {
		panic("timeline: PopEarliest on empty timeline")
	}
	first := heap.Pop(&tl.heap).(entry)
	t := first.t
	group := []Event{first.event}
	for tl.heap.Len() > 0 && tl.heap[0].t == t {
		e := heap.Pop(&tl.heap).(entry)
		group = append(group, e.event)
	}
	return t, group
}
