package main

import (
	"fmt"
	"sort"

	"github.com/SukantoMette/McRAPTOR"
	"github.com/SukantoMette/McRAPTOR/internal/gtfsbuild"
)

// printNetworkDetails prints a small table (header and one row of
// counts) of the indexed network's size.
func printNetworkDetails(res *gtfsbuild.Result) {
	fmt.Println("___________________________Network Details__________________________")
	fmt.Println("| No. of Routes |  No. of Trips | No. of Stops | No. of Footpaths |")
	fmt.Printf("|     %-9d |  %-12d | %-12d | %-16d |\n", res.Stats.Routes, res.Stats.Trips, res.Stats.Stops, res.Stats.Footpaths)
	fmt.Println("____________________________________________________________________")
}

// printQueryParameters echoes the query before the engine runs.
func printQueryParameters(q raptor.Query, network string) {
	fmt.Println()
	fmt.Println("___________________Query Parameters__________________")
	fmt.Printf("Network: %s\n", network)
	fmt.Printf("SOURCE stop id: %d\n", q.Source)
	fmt.Printf("DESTINATION stop id: %d\n", q.Destination)
	fmt.Printf("Departure Time: %s\n", formatSecondsSinceMidnight(q.DepartureTimeSec))
	fmt.Printf("No. of Criteria: %d\n", q.NumberOfCriteria)
	fmt.Printf("Maximum Transfer allowed: %d\n", q.MaxTransfer)
	fmt.Println()
}

// printJourneys prints every non-infinite destination label, grouped
// by the round that produced it.
func printJourneys(ls *raptor.LabelStore, q raptor.Query) {
	fmt.Println("___________________Output__________________")

	found := false
	for k := 1; k <= q.MaxTransfer; k++ {
		for _, l := range ls.Bag(k, q.Destination) {
			if l.V[raptor.ArrivalIndex] == raptor.InfiniteArrivalSec() {
				continue
			}
			found = true
			ivttMinutes := float64(l.V[raptor.IVTTIndex]) / 60.0
			fmt.Printf("time= %s  no. of stops= %d  ivtt= %.2f min  trip= %d  (round %d)\n",
				formatSecondsSinceMidnight(l.V[raptor.ArrivalIndex]), l.V[raptor.StopCountIndex], ivttMinutes, l.Trip, k)
		}
	}

	if !found {
		fmt.Printf("NO JOURNEY IS AVAILABLE WITHIN %d TRANSFERS\n", q.MaxTransfer-1)
	}
}

// printStopList lists every stop's internal id alongside its GTFS id, the
// lookup a user needs before picking --source/--destination values.
func printStopList(res *gtfsbuild.Result) {
	stops := res.Timetable.Stops()
	sort.Slice(stops, func(i, j int) bool { return stops[i] < stops[j] })
	for _, s := range stops {
		gtfsID, _ := res.IDs.StopGtfsID(s)
		fmt.Printf("%d\t%s\n", s, gtfsID)
	}
}

func formatSecondsSinceMidnight(secs int) string {
	hours := secs / 3600
	minutes := (secs % 3600) / 60
	seconds := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
