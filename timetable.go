package raptor

import "fmt"

// StaticTimetable is an immutable indexed view of a transit network:
// routes, each route's ordered stop sequence, the trips of each route
// in non-decreasing start order, per-trip stop arrivals, and the
// reverse (route, stop) lookups the round engine needs in constant
// time. It is built once per feed and shared read-only across
// concurrent queries.
type StaticTimetable struct {
	stops        []StopID
	stopKnown    map[StopID]bool
	stopsOfRoute map[RouteID][]StopID
	routesOfStop map[StopID][]RouteID
	tripsOfRoute map[RouteID][]TripID
	tripArrivals map[TripID]map[StopID]int
	indexOfStop  map[RouteID]map[StopID]int
}

// NewStaticTimetable validates and indexes raw GTFS-shaped tables into
// a StaticTimetable. routes maps a route to its ordered, distinct stop
// sequence; tripsByRoute maps a route to its trips in non-decreasing
// start order; tripArrivals maps a trip to the arrival time (seconds)
// it records at each stop it serves.
func NewStaticTimetable(
	stops []StopID,
	routes map[RouteID][]StopID,
	tripsByRoute map[RouteID][]TripID,
	tripArrivals map[TripID]map[StopID]int,
) (*StaticTimetable, error) {
	stopKnown := make(map[StopID]bool, len(stops))
	for _, s := range stops {
		stopKnown[s] = true
	}

	routesOfStop := make(map[StopID][]RouteID)
	indexOfStop := make(map[RouteID]map[StopID]int, len(routes))

	for route, seq := range routes {
		seen := make(map[StopID]bool, len(seq))
		idx := make(map[StopID]int, len(seq))
		for i, s := range seq {
			if !stopKnown[s] {
				return nil, fmt.Errorf("%w: route %d references unknown stop %d", ErrInvalidInput, route, s)
			}
			if seen[s] {
				return nil, fmt.Errorf("%w: route %d repeats stop %d", ErrInvalidInput, route, s)
			}
			seen[s] = true
			idx[s] = i
			routesOfStop[s] = append(routesOfStop[s], route)
		}
		indexOfStop[route] = idx
	}

	tripRoute := make(map[TripID]RouteID)
	for route, trips := range tripsByRoute {
		for _, t := range trips {
			tripRoute[t] = route
		}
	}

	for trip, arrivals := range tripArrivals {
		route, ok := tripRoute[trip]
		if !ok {
			return nil, fmt.Errorf("%w: trip %d is not attached to any route", ErrInvalidInput, trip)
		}
		for stop, sec := range arrivals {
			if sec < 0 {
				return nil, fmt.Errorf("%w: trip %d has negative arrival %d at stop %d", ErrInvalidInput, trip, sec, stop)
			}
			if _, onRoute := indexOfStop[route][stop]; !onRoute {
				return nil, fmt.Errorf("%w: trip %d records an arrival at stop %d, which is not on its route %d", ErrInvalidInput, trip, stop, route)
			}
		}
	}

	return &StaticTimetable{
		stops:        append([]StopID{}, stops...),
		stopKnown:    stopKnown,
		stopsOfRoute: routes,
		routesOfStop: routesOfStop,
		tripsOfRoute: tripsByRoute,
		tripArrivals: tripArrivals,
		indexOfStop:  indexOfStop,
	}, nil
}

// Stops returns every stop id the timetable was built with.
func (tt *StaticTimetable) Stops() []StopID { return tt.stops }

// HasStop reports whether p is a known stop.
func (tt *StaticTimetable) HasStop(p StopID) bool { return tt.stopKnown[p] }

// StopsOfRoute returns the ordered, distinct stop sequence of r.
func (tt *StaticTimetable) StopsOfRoute(r RouteID) []StopID { return tt.stopsOfRoute[r] }

// RoutesOfStop returns every route serving p.
func (tt *StaticTimetable) RoutesOfStop(p StopID) []RouteID { return tt.routesOfStop[p] }

// TripsOfRoute returns r's trips in non-decreasing start order.
func (tt *StaticTimetable) TripsOfRoute(r RouteID) []TripID { return tt.tripsOfRoute[r] }

// Arrival returns the arrival time of trip t at stop p and whether t
// records an arrival there at all. A false return on a trip the round
// engine is actively scanning signals InconsistentTimetableError.
func (tt *StaticTimetable) Arrival(t TripID, p StopID) (int, bool) {
	byStop, ok := tt.tripArrivals[t]
	if !ok {
		return 0, false
	}
	sec, ok := byStop[p]
	return sec, ok
}

// IndexOf returns p's position within r's stop sequence.
func (tt *StaticTimetable) IndexOf(r RouteID, p StopID) (int, bool) {
	idx, ok := tt.indexOfStop[r][p]
	return idx, ok
}

// Stats summarizes the timetable's size, used by the CLI to print a
// network-details banner before running a query.
type Stats struct {
	Routes    int
	Trips     int
	Stops     int
	Footpaths int
}

func (tt *StaticTimetable) Stats() Stats {
	trips := 0
	for _, ts := range tt.tripsOfRoute {
		trips += len(ts)
	}
	return Stats{
		Routes: len(tt.stopsOfRoute),
		Trips:  trips,
		Stops:  len(tt.stops),
	}
}
