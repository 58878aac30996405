// Copyright 2026
//
// mcraptor runs a single multi-criteria transit query against a GTFS
// feed from the command line: parse (or load a cached index of) the
// feed, run the Round Engine, and print the Pareto-optimal labels
// reaching the destination, round by round.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/SukantoMette/McRAPTOR"
	"github.com/SukantoMette/McRAPTOR/internal/gtfsbuild"
	"github.com/SukantoMette/McRAPTOR/internal/gtfscache"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "mcraptor - multi-criteria round-based transit routing\n\nUsage:\n\n  %s [<options>] <GTFS path>\n\nAllowed options:\n\n", os.Args[0])
		flag.PrintDefaults()
	}

	source := flag.IntP("source", "s", -1, "source stop id (internal, post-indexing)")
	destination := flag.IntP("destination", "d", -1, "destination stop id (internal, post-indexing)")
	departAt := flag.IntP("depart-at", "t", 0, "departure time, seconds since midnight")
	maxTransfer := flag.IntP("max-transfer", "k", 5, "maximum number of rounds (transfers + 1)")
	serviceID := flag.StringP("service", "c", "", "calendar service id to restrict trips to (empty: all trips)")
	cachePath := flag.StringP("cache", "C", "", "path to a cached index (read if present, written if missing)")
	listStops := flag.BoolP("list-stops", "l", false, "list every stop's internal id and GTFS id, then exit")
	help := flag.BoolP("help", "?", false, "this message")

	flag.Parse()

	if *help {
		flag.Usage()
		return
	}

	gtfsPaths := flag.Args()
	if len(gtfsPaths) != 1 {
		fmt.Fprintln(os.Stderr, "exactly one GTFS location must be specified, see --help")
		os.Exit(1)
	}
	gtfsPath := gtfsPaths[0]

	logger := log.New(os.Stderr, "", log.LstdFlags)
	opts := gtfsbuild.Options{ServiceID: *serviceID, Logger: logger}

	var res *gtfsbuild.Result
	var err error
	if *cachePath != "" {
		res, err = gtfscache.BuildOrLoad(gtfsPath, *cachePath, opts)
	} else {
		res, err = gtfsbuild.Build(gtfsPath, opts)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error building timetable:", err)
		os.Exit(1)
	}

	printNetworkDetails(res)

	if *listStops {
		printStopList(res)
		return
	}

	if *source < 0 || *destination < 0 {
		fmt.Fprintln(os.Stderr, "--source and --destination are required unless --list-stops is given")
		os.Exit(1)
	}

	// Arrival times in the index are seconds since midnight, so a
	// departure timestamp beyond one day is folded onto its service day.
	if dayStart, offset := gtfsbuild.ServicedayWindow(*departAt); dayStart > 0 {
		logger.Printf("departure %d is %d seconds into the service day starting at %d", *departAt, offset, dayStart)
		*departAt = offset
	}

	q := raptor.Query{
		Source:           raptor.StopID(*source),
		Destination:      raptor.StopID(*destination),
		DepartureTimeSec: *departAt,
		MaxTransfer:      *maxTransfer,
		NumberOfCriteria: raptor.DefaultCostModel{}.NumberOfCriteria(),
	}
	printQueryParameters(q, filepath.Base(gtfsPath))

	engine := raptor.NewEngine(res.Timetable, res.Footpaths)
	ls, err := engine.Run(q)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error running query:", err)
		os.Exit(1)
	}

	printJourneys(ls, q)
}
