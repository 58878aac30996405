package gtfsbuild

import "github.com/SukantoMette/McRAPTOR"

// IDTable is the bidirectional mapping between the string ids a GTFS feed
// uses (stop_id, route_id, trip_id) and the dense integer ids the raptor
// package's Timetable Model requires. Built once per feed and kept
// alongside the StaticTimetable so a CLI can translate query results back
// into GTFS ids for reporting.
type IDTable struct {
	stopID   map[string]raptor.StopID
	stopStr  map[raptor.StopID]string
	routeID  map[string]raptor.RouteID
	routeStr map[raptor.RouteID]string
	tripID   map[string]raptor.TripID
	tripStr  map[raptor.TripID]string
}

func newIDTable() *IDTable {
	return &IDTable{
		stopID:   make(map[string]raptor.StopID),
		stopStr:  make(map[raptor.StopID]string),
		routeID:  make(map[string]raptor.RouteID),
		routeStr: make(map[raptor.RouteID]string),
		tripID:   make(map[string]raptor.TripID),
		tripStr:  make(map[raptor.TripID]string),
	}
}

func (t *IDTable) internStop(id string) raptor.StopID {
	if sid, ok := t.stopID[id]; ok {
		return sid
	}
	sid := raptor.StopID(len(t.stopID))
	t.stopID[id] = sid
	t.stopStr[sid] = id
	return sid
}

func (t *IDTable) internRoute(id string) raptor.RouteID {
	if rid, ok := t.routeID[id]; ok {
		return rid
	}
	rid := raptor.RouteID(len(t.routeID))
	t.routeID[id] = rid
	t.routeStr[rid] = id
	return rid
}

func (t *IDTable) internTrip(id string) raptor.TripID {
	if tid, ok := t.tripID[id]; ok {
		return tid
	}
	tid := raptor.TripID(len(t.tripID))
	t.tripID[id] = tid
	t.tripStr[tid] = id
	return tid
}

// StopGtfsID returns the feed's original stop_id for a raptor.StopID.
func (t *IDTable) StopGtfsID(s raptor.StopID) (string, bool) {
	id, ok := t.stopStr[s]
	return id, ok
}

// StopID returns the raptor.StopID interned for a feed stop_id, if any.
func (t *IDTable) StopID(gtfsID string) (raptor.StopID, bool) {
	s, ok := t.stopID[gtfsID]
	return s, ok
}

// RouteGtfsID returns the feed's original route_id for a raptor.RouteID.
func (t *IDTable) RouteGtfsID(r raptor.RouteID) (string, bool) {
	id, ok := t.routeStr[r]
	return id, ok
}

// TripGtfsID returns the feed's original trip_id for a raptor.TripID.
func (t *IDTable) TripGtfsID(tr raptor.TripID) (string, bool) {
	id, ok := t.tripStr[tr]
	return id, ok
}
