package raptor

import (
	"fmt"
	"sort"
)

// Query holds the parameters of one routing request.
type Query struct {
	Source           StopID
	Destination      StopID
	DepartureTimeSec int
	MaxTransfer      int
	NumberOfCriteria int
	// CostModel defaults to DefaultCostModel when nil.
	CostModel CostModel
}

// LabelStore is the round-indexed result of a query: round -> stop ->
// bag. It is immutable once a query returns it.
type LabelStore struct {
	maxTransfer int
	bags        map[int]map[StopID]Bag
}

// Bag returns the bag installed at stop p after round k.
func (ls *LabelStore) Bag(k int, p StopID) Bag {
	return ls.bags[k][p]
}

// MaxTransfer is the round count the store was sized for.
func (ls *LabelStore) MaxTransfer() int { return ls.maxTransfer }

// TerminalLabels returns every non-infinite label reached at the
// destination across rounds 1..MaxTransfer, paired with the round that
// produced it.
func (ls *LabelStore) TerminalLabels(destination StopID) []struct {
	Round int
	Label Label
} {
	out := make([]struct {
		Round int
		Label Label
	}, 0)
	for k := 1; k <= ls.maxTransfer; k++ {
		for _, l := range ls.bags[k][destination] {
			if l.V[ArrivalIndex] != infiniteArrivalSec {
				out = append(out, struct {
					Round int
					Label Label
				}{Round: k, Label: l})
			}
		}
	}
	return out
}

// markedSet tracks the stops with unscanned improvements, iterated in
// mark order so that the final LabelStore contents are reproducible
// across runs. Redundant marks of the same stop are idempotent.
type markedSet struct {
	order   []StopID
	present map[StopID]bool
}

func newMarkedSet() *markedSet {
	return &markedSet{present: make(map[StopID]bool)}
}

func (m *markedSet) mark(p StopID) {
	if !m.present[p] {
		m.present[p] = true
		m.order = append(m.order, p)
	}
}

func (m *markedSet) isEmpty() bool { return len(m.order) == 0 }

// drain empties the set and returns its contents in mark order.
func (m *markedSet) drain() []StopID {
	out := m.order
	m.order = nil
	m.present = make(map[StopID]bool)
	return out
}

// snapshot copies the set's current contents without clearing it, used
// by footpath relaxation which must not remove stops that route
// installs just marked for next round's route collection.
func (m *markedSet) snapshot() []StopID {
	out := make([]StopID, len(m.order))
	copy(out, m.order)
	return out
}

// Engine runs multi-criteria round-based queries against a fixed
// timetable and footpath graph. Both collaborators are treated as
// logically immutable for the duration of a query, so a single Engine
// may serve concurrent queries without synchronization.
type Engine struct {
	tt *StaticTimetable
	fg FootpathGraph
}

// NewEngine builds a Round Engine over a timetable and footpath graph.
func NewEngine(tt *StaticTimetable, fg FootpathGraph) *Engine {
	return &Engine{tt: tt, fg: fg}
}

// Run initializes the round-0 label at the source, runs up to
// q.MaxTransfer rounds, and returns the full round-indexed label
// store.
func (e *Engine) Run(q Query) (*LabelStore, error) {
	cm := q.CostModel
	if cm == nil {
		cm = DefaultCostModel{}
	}

	if err := e.validate(q, cm); err != nil {
		return nil, err
	}

	ls := &LabelStore{
		maxTransfer: q.MaxTransfer,
		bags:        make(map[int]map[StopID]Bag, q.MaxTransfer+1),
	}
	infinite := Label{V: cm.InfiniteVector(), Trip: NoTrip}
	for k := 0; k <= q.MaxTransfer; k++ {
		stopBags := make(map[StopID]Bag, len(e.tt.stops))
		for _, s := range e.tt.stops {
			stopBags[s] = Bag{{V: cloneVector(infinite.V), Trip: NoTrip}}
		}
		ls.bags[k] = stopBags
	}

	starFrontier := make(map[StopID]Bag, len(e.tt.stops))
	for _, s := range e.tt.stops {
		starFrontier[s] = Bag{{V: cloneVector(infinite.V), Trip: NoTrip}}
	}

	initial := Label{V: cm.InitialVector(q.DepartureTimeSec), Trip: NoTrip}
	ls.bags[0][q.Source] = Bag{initial}
	starFrontier[q.Source] = Bag{initial}

	marked := newMarkedSet()
	marked.mark(q.Source)

	for k := 1; k <= q.MaxTransfer; k++ {
		if marked.isEmpty() {
			break
		}
		if err := e.round(k, q, cm, ls, starFrontier, marked); err != nil {
			return nil, err
		}
	}

	return ls, nil
}

func (e *Engine) validate(q Query, cm CostModel) error {
	if !e.tt.HasStop(q.Source) {
		return fmt.Errorf("%w: source stop %d is not in the timetable", ErrInvalidInput, q.Source)
	}
	if !e.tt.HasStop(q.Destination) {
		return fmt.Errorf("%w: destination stop %d is not in the timetable", ErrInvalidInput, q.Destination)
	}
	if q.MaxTransfer < 1 {
		return fmt.Errorf("%w: max_transfer must be at least 1, got %d", ErrInvalidInput, q.MaxTransfer)
	}
	if q.NumberOfCriteria < 1 {
		return fmt.Errorf("%w: number_of_criteria must be at least 1, got %d", ErrInvalidInput, q.NumberOfCriteria)
	}
	if q.NumberOfCriteria != cm.NumberOfCriteria() {
		return fmt.Errorf("%w: number_of_criteria %d does not match the cost model's %d criteria", ErrInvalidInput, q.NumberOfCriteria, cm.NumberOfCriteria())
	}
	return nil
}

// round collects entry points for every route touching a marked stop,
// scans those routes, then relaxes footpaths from the improved stops.
func (e *Engine) round(k int, q Query, cm CostModel, ls *LabelStore, starFrontier map[StopID]Bag, marked *markedSet) error {
	// Step A -- route collection.
	markedStops := marked.drain()
	routeQ := make(map[RouteID]StopID)
	for _, p := range markedStops {
		for _, r := range e.tt.RoutesOfStop(p) {
			entry, has := routeQ[r]
			if !has {
				routeQ[r] = p
				continue
			}
			pIdx, _ := e.tt.IndexOf(r, p)
			entryIdx, _ := e.tt.IndexOf(r, entry)
			if pIdx < entryIdx {
				routeQ[r] = p
			}
		}
	}

	routes := make([]RouteID, 0, len(routeQ))
	for r := range routeQ {
		routes = append(routes, r)
	}
	sort.Slice(routes, func(i, j int) bool { return routes[i] < routes[j] })

	// Step B -- route scan.
	for _, r := range routes {
		if err := e.scanRoute(k, r, routeQ[r], q, cm, ls, starFrontier, marked); err != nil {
			return err
		}
	}

	// Step C -- foot-transfer relaxation.
	return e.relaxFootpaths(k, cm, ls, starFrontier, marked)
}

func (e *Engine) scanRoute(k int, r RouteID, p0 StopID, q Query, cm CostModel, ls *LabelStore, starFrontier map[StopID]Bag, marked *markedSet) error {
	stops := e.tt.StopsOfRoute(r)
	startIdx, ok := e.tt.IndexOf(r, p0)
	if !ok {
		return fmt.Errorf("%w: marked stop %d is not on route %d", ErrInvalidInput, p0, r)
	}

	var br Bag
	var prevStop StopID
	it := NewSliceIterator(stops).From(startIdx)
	first := true
	for it.HasNext() {
		s := it.Next()

		// Step 1 -- advance carried labels onto this stop.
		if !first {
			advanced := make(Bag, len(br))
			for i, l := range br {
				arrivalAtPrev, ok := e.tt.Arrival(l.Trip, prevStop)
				if !ok {
					return &InconsistentTimetableError{Trip: l.Trip, Stop: prevStop}
				}
				arrivalAtCurr, ok := e.tt.Arrival(l.Trip, s)
				if !ok {
					return &InconsistentTimetableError{Trip: l.Trip, Stop: s}
				}
				advanced[i] = Label{V: cm.Advance(l.V, arrivalAtPrev, arrivalAtCurr), Trip: l.Trip}
			}
			br = advanced
		}

		// Step 2 -- prune against the star frontiers at s and the destination.
		brNew := make(Bag, 0, len(br))
		for _, l := range br {
			if IsNonDominated(l, starFrontier[s]) && IsNonDominated(l, starFrontier[q.Destination]) {
				brNew = append(brNew, l)
				starFrontier[s] = ParetoFilter(append(Bag{l}, starFrontier[s]...))
			}
		}

		// Step 3 -- install into the stop's round bag.
		merged, newly := Merge(ls.bags[k][s], brNew)
		ls.bags[k][s] = merged
		if len(newly) > 0 {
			marked.mark(s)
		}

		// Step 4 -- board using the prior round's bag at s.
		brMerged, newlyInBr := Merge(br, ls.bags[k-1][s])
		updated := make(Bag, 0, len(brMerged))
		for _, l := range brMerged {
			if _, isNew := findByVector(newlyInBr, l.V); isNew {
				trip, found, err := e.earliestFeasibleTrip(r, s, l.V[ArrivalIndex])
				if err != nil {
					return err
				}
				if !found {
					continue
				}
				updated = append(updated, Label{V: l.V, Trip: trip})
			} else {
				updated = append(updated, l)
			}
		}
		br = updated

		prevStop = s
		first = false
	}
	return nil
}

// earliestFeasibleTrip returns the first trip of the route, in stored
// ascending order, arriving at p at or after tau: the earliest trip
// still boardable without time-travel. Multi-criteria RAPTOR writeups
// often call this the "latest trip" query; the semantics here are
// earliest-feasible.
func (e *Engine) earliestFeasibleTrip(r RouteID, p StopID, tau int) (TripID, bool, error) {
	for _, t := range e.tt.TripsOfRoute(r) {
		arrival, ok := e.tt.Arrival(t, p)
		if !ok {
			return 0, false, &InconsistentTimetableError{Trip: t, Stop: p}
		}
		if arrival >= tau {
			return t, true, nil
		}
	}
	return NoTrip, false, nil
}

func (e *Engine) relaxFootpaths(k int, cm CostModel, ls *LabelStore, starFrontier map[StopID]Bag, marked *markedSet) error {
	snapshot := marked.snapshot()
	for _, p := range snapshot {
		neighbors, err := e.fg.Neighbors(p)
		if err != nil {
			return err
		}
		for _, n := range neighbors {
			temp := make(Bag, len(ls.bags[k][p]))
			for i, l := range ls.bags[k][p] {
				// A walked label is a fresh transfer state: whatever
				// trip got the traveler to p does not carry through
				// a footpath.
				temp[i] = Label{V: cm.Walk(l.V, n.WalkSeconds), Trip: NoTrip}
			}

			merged, newly := Merge(ls.bags[k][n.Stop], temp)
			ls.bags[k][n.Stop] = merged
			starFrontier[n.Stop] = ParetoFilter(append(append(Bag{}, temp...), starFrontier[n.Stop]...))
			if len(newly) > 0 {
				marked.mark(n.Stop)
			}
		}
	}
	return nil
}
