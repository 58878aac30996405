// Package gtfsbuild turns a parsed GTFS feed into the indexed
// structures the raptor package's round engine operates on: a
// raptor.StaticTimetable and a footpathgraph.Graph. The build runs once
// per network; internal/gtfscache can persist its output so later runs
// skip the parse.
package gtfsbuild

import (
	"fmt"
	"log"
	"sort"

	"github.com/patrickbr/gtfsparser"
	"github.com/patrickbr/gtfsparser/gtfs"

	"github.com/SukantoMette/McRAPTOR"
	"github.com/SukantoMette/McRAPTOR/internal/footpathgraph"
)

const secondsPerDay = 86400

// ServicedayWindow splits a departure timestamp (seconds since the
// feed's epoch) into the service day it falls on and the
// seconds-since-midnight offset within that day. offset is the
// depart-at time handed to the round engine; the function does not
// choose a calendar service (that is Options.ServiceID).
func ServicedayWindow(depSec int) (dayStart, offset int) {
	dayStart = depSec - (depSec % secondsPerDay)
	return dayStart, depSec - dayStart
}

// Options configures how a feed is turned into a timetable. ServiceID,
// when non-empty, keeps only trips whose calendar service matches it
// exactly, restricting the timetable to a single service day.
type Options struct {
	ServiceID string
	Logger    *log.Logger
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.Default()
}

// Result bundles everything a query driver needs: the indexed timetable,
// the footpath graph, and the id table used to translate back to the
// feed's own GTFS ids when reporting results.
type Result struct {
	Timetable *raptor.StaticTimetable
	Footpaths *footpathgraph.Graph
	IDs       *IDTable
	Stats     raptor.Stats
	Edges     []FootpathEdge
}

// FootpathEdge is one directed transfer edge, the serializable form of a
// footpathgraph.Graph entry used by Snapshot.
type FootpathEdge struct {
	From, To    raptor.StopID
	WalkSeconds int
}

// Snapshot is the exported, gob-encodable form of everything Build
// extracts from a feed, so internal/gtfscache can persist and reload it
// without re-parsing the source feed.
type Snapshot struct {
	Stops        []raptor.StopID
	Routes       map[raptor.RouteID][]raptor.StopID
	TripsByRoute map[raptor.RouteID][]raptor.TripID
	TripArrivals map[raptor.TripID]map[raptor.StopID]int
	Footpaths    []FootpathEdge
	StopGtfsID   map[raptor.StopID]string
	RouteGtfsID  map[raptor.RouteID]string
	TripGtfsID   map[raptor.TripID]string
}

// Materialize rebuilds a Result from a Snapshot, the reload half of the
// cache round trip: it reconstructs the StaticTimetable, the footpath
// graph and the id table without touching a GTFS feed.
func Materialize(snap *Snapshot) (*Result, error) {
	tt, err := raptor.NewStaticTimetable(snap.Stops, snap.Routes, snap.TripsByRoute, snap.TripArrivals)
	if err != nil {
		return nil, fmt.Errorf("gtfsbuild: materializing timetable: %w", err)
	}

	fg := footpathgraph.New()
	for _, e := range snap.Footpaths {
		if err := fg.AddFootpath(e.From, e.To, e.WalkSeconds); err != nil {
			return nil, fmt.Errorf("gtfsbuild: materializing footpaths: %w", err)
		}
	}

	ids := newIDTable()
	for s, gtfsID := range snap.StopGtfsID {
		ids.stopID[gtfsID] = s
		ids.stopStr[s] = gtfsID
	}
	for r, gtfsID := range snap.RouteGtfsID {
		ids.routeID[gtfsID] = r
		ids.routeStr[r] = gtfsID
	}
	for t, gtfsID := range snap.TripGtfsID {
		ids.tripID[gtfsID] = t
		ids.tripStr[t] = gtfsID
	}

	stats := tt.Stats()
	stats.Footpaths = len(snap.Footpaths)

	return &Result{Timetable: tt, Footpaths: fg, IDs: ids, Stats: stats, Edges: snap.Footpaths}, nil
}

// Build parses the GTFS feed rooted at path (a directory or a zip, per
// gtfsparser.Feed.Parse) and indexes it into a Result.
func Build(path string, opts Options) (*Result, error) {
	logger := opts.logger()

	feed := gtfsparser.NewFeed()
	feed.SetParseOpts(gtfsparser.ParseOptions{
		UseDefValueOnError: true,
		DropErroneous:      true,
	})

	logger.Printf("gtfsbuild: parsing feed at %s", path)
	if err := feed.Parse(path); err != nil {
		return nil, fmt.Errorf("gtfsbuild: parsing %s: %w", path, err)
	}
	logger.Printf("gtfsbuild: parsed %d stops, %d routes, %d trips", len(feed.Stops), len(feed.Routes), len(feed.Trips))

	ids := newIDTable()

	stopGtfsIDs := make([]string, 0, len(feed.Stops))
	for id := range feed.Stops {
		stopGtfsIDs = append(stopGtfsIDs, id)
	}
	sort.Strings(stopGtfsIDs)
	stops := make([]raptor.StopID, 0, len(stopGtfsIDs))
	for _, id := range stopGtfsIDs {
		stops = append(stops, ids.internStop(id))
	}

	tripsByRouteGtfs := make(map[string][]*gtfs.Trip)
	for _, t := range feed.Trips {
		if t.Route == nil || len(t.StopTimes) == 0 {
			continue
		}
		if opts.ServiceID != "" && (t.Service == nil || t.Service.Id() != opts.ServiceID) {
			continue
		}
		tripsByRouteGtfs[t.Route.Id] = append(tripsByRouteGtfs[t.Route.Id], t)
	}

	routeGtfsIDs := make([]string, 0, len(tripsByRouteGtfs))
	for id := range tripsByRouteGtfs {
		routeGtfsIDs = append(routeGtfsIDs, id)
	}
	sort.Strings(routeGtfsIDs)

	routes := make(map[raptor.RouteID][]raptor.StopID, len(routeGtfsIDs))
	tripsByRoute := make(map[raptor.RouteID][]raptor.TripID, len(routeGtfsIDs))
	tripArrivals := make(map[raptor.TripID]map[raptor.StopID]int)

	for _, routeGtfsID := range routeGtfsIDs {
		route := ids.internRoute(routeGtfsID)
		trips := tripsByRouteGtfs[routeGtfsID]
		sort.Slice(trips, func(i, j int) bool { return trips[i].Id < trips[j].Id })

		routeStops := routeStopSequence(trips)
		stopSeq := make([]raptor.StopID, 0, len(routeStops))
		for _, s := range routeStops {
			stopSeq = append(stopSeq, ids.internStop(s))
		}
		routes[route] = stopSeq

		type tripArr struct {
			trip  raptor.TripID
			start int
		}
		arrs := make([]tripArr, 0, len(trips))
		for _, t := range trips {
			tid := ids.internTrip(t.Id)
			byStop := make(map[raptor.StopID]int, len(t.StopTimes))
			earliest := -1
			for _, st := range t.StopTimes {
				stopID := ids.internStop(st.Stop().Id)
				sec := st.Arrival_time().SecondsSinceMidnight()
				byStop[stopID] = sec
				if earliest < 0 || sec < earliest {
					earliest = sec
				}
			}
			tripArrivals[tid] = byStop
			arrs = append(arrs, tripArr{trip: tid, start: earliest})
		}
		sort.SliceStable(arrs, func(i, j int) bool { return arrs[i].start < arrs[j].start })

		tripIDs := make([]raptor.TripID, len(arrs))
		for i, a := range arrs {
			tripIDs[i] = a.trip
		}
		tripsByRoute[route] = tripIDs
	}

	tt, err := raptor.NewStaticTimetable(stops, routes, tripsByRoute, tripArrivals)
	if err != nil {
		return nil, fmt.Errorf("gtfsbuild: indexing timetable: %w", err)
	}

	fg, edges, err := buildFootpaths(feed, ids)
	if err != nil {
		return nil, fmt.Errorf("gtfsbuild: indexing footpaths: %w", err)
	}

	stats := tt.Stats()
	stats.Footpaths = len(edges)
	logger.Printf("gtfsbuild: indexed %d routes, %d trips, %d stops, %d footpaths", stats.Routes, stats.Trips, stats.Stops, stats.Footpaths)

	return &Result{Timetable: tt, Footpaths: fg, IDs: ids, Stats: stats, Edges: edges}, nil
}

// ToSnapshot re-derives a Snapshot from a Result built by Build, the save
// half of the cache round trip internal/gtfscache drives.
func ToSnapshot(res *Result) *Snapshot {
	snap := &Snapshot{
		Stops:        append([]raptor.StopID{}, res.Timetable.Stops()...),
		Routes:       make(map[raptor.RouteID][]raptor.StopID),
		TripsByRoute: make(map[raptor.RouteID][]raptor.TripID),
		TripArrivals: make(map[raptor.TripID]map[raptor.StopID]int),
		Footpaths:    res.Edges,
		StopGtfsID:   make(map[raptor.StopID]string),
		RouteGtfsID:  make(map[raptor.RouteID]string),
		TripGtfsID:   make(map[raptor.TripID]string),
	}
	for s, id := range res.IDs.stopStr {
		snap.StopGtfsID[s] = id
	}
	for r, id := range res.IDs.routeStr {
		snap.RouteGtfsID[r] = id
		snap.Routes[r] = res.Timetable.StopsOfRoute(r)
		snap.TripsByRoute[r] = res.Timetable.TripsOfRoute(r)
	}
	for t, id := range res.IDs.tripStr {
		snap.TripGtfsID[t] = id
	}
	for _, s := range snap.Stops {
		for _, r := range res.Timetable.RoutesOfStop(s) {
			for _, tr := range res.Timetable.TripsOfRoute(r) {
				if sec, ok := res.Timetable.Arrival(tr, s); ok {
					if snap.TripArrivals[tr] == nil {
						snap.TripArrivals[tr] = make(map[raptor.StopID]int)
					}
					snap.TripArrivals[tr][s] = sec
				}
			}
		}
	}
	return snap
}

// routeStopSequence is the union of every trip's stops on a route,
// ordered by stop_sequence and de-duplicated on first occurrence. Trips
// were already sorted by id, so the result is deterministic.
func routeStopSequence(trips []*gtfs.Trip) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, t := range trips {
		sts := wrapStopTimes(t)
		sort.SliceStable(sts, func(i, j int) bool { return sts[i].sequence < sts[j].sequence })
		for _, st := range sts {
			if seen[st.stopID] {
				continue
			}
			seen[st.stopID] = true
			out = append(out, st.stopID)
		}
	}
	return out
}

type gtfsStopTime struct {
	stopID   string
	sequence int
}

func wrapStopTimes(t *gtfs.Trip) []gtfsStopTime {
	out := make([]gtfsStopTime, len(t.StopTimes))
	for i, st := range t.StopTimes {
		out[i] = gtfsStopTime{stopID: st.Stop().Id, sequence: st.Sequence()}
	}
	return out
}

// buildFootpaths expands transfers.txt into the footpath graph. A
// transfer naming a parent station is expanded into direct transfers
// between every pair of its child stops.
func buildFootpaths(feed *gtfsparser.Feed, ids *IDTable) (*footpathgraph.Graph, []FootpathEdge, error) {
	childrenOf := make(map[string][]string)
	for _, s := range feed.Stops {
		if s.Parent_station != nil {
			childrenOf[s.Parent_station.Id] = append(childrenOf[s.Parent_station.Id], s.Id)
		}
	}
	expand := func(gtfsID string) []string {
		if children, ok := childrenOf[gtfsID]; ok && len(children) > 0 {
			return children
		}
		return []string{gtfsID}
	}

	fg := footpathgraph.New()
	edges := make([]FootpathEdge, 0)
	for key, transfer := range feed.Transfers {
		if key.From_stop == nil || key.To_stop == nil || transfer == nil {
			continue
		}
		froms := expand(key.From_stop.Id)
		tos := expand(key.To_stop.Id)
		for _, from := range froms {
			for _, to := range tos {
				if from == to {
					continue
				}
				walk := transfer.Min_transfer_time
				if walk < 0 {
					walk = 0
				}
				fromID := ids.internStop(from)
				toID := ids.internStop(to)
				if err := fg.AddFootpath(fromID, toID, walk); err != nil {
					return nil, nil, err
				}
				edges = append(edges, FootpathEdge{From: fromID, To: toID, WalkSeconds: walk})
			}
		}
	}
	return fg, edges, nil
}
