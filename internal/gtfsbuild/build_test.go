package gtfsbuild

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SukantoMette/McRAPTOR"
)

func TestServicedayWindow(t *testing.T) {
	cases := []struct {
		name              string
		depSec            int
		wantDay, wantOffs int
	}{
		{"midnight of day zero", 0, 0, 0},
		{"within day zero", 3600, 0, 3600},
		{"exactly one day", 86400, 86400, 0},
		{"into the second day", 86400 + 7200, 86400, 7200},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			day, offs := ServicedayWindow(tc.depSec)
			assert.Equal(t, tc.wantDay, day)
			assert.Equal(t, tc.wantOffs, offs)
		})
	}
}

func TestIDTable_InternIsStable(t *testing.T) {
	ids := newIDTable()

	a := ids.internStop("STOP_A")
	b := ids.internStop("STOP_B")
	again := ids.internStop("STOP_A")

	assert.Equal(t, a, again)
	assert.NotEqual(t, a, b)

	gtfsID, ok := ids.StopGtfsID(a)
	require.True(t, ok)
	assert.Equal(t, "STOP_A", gtfsID)

	back, ok := ids.StopID("STOP_B")
	require.True(t, ok)
	assert.Equal(t, b, back)

	_, ok = ids.StopID("STOP_MISSING")
	assert.False(t, ok)
}

func testSnapshot() *Snapshot {
	return &Snapshot{
		Stops: []raptor.StopID{0, 1, 2},
		Routes: map[raptor.RouteID][]raptor.StopID{
			0: {0, 1, 2},
		},
		TripsByRoute: map[raptor.RouteID][]raptor.TripID{
			0: {0},
		},
		TripArrivals: map[raptor.TripID]map[raptor.StopID]int{
			0: {0: 100, 1: 200, 2: 300},
		},
		Footpaths: []FootpathEdge{
			{From: 1, To: 2, WalkSeconds: 90},
		},
		StopGtfsID:  map[raptor.StopID]string{0: "A", 1: "B", 2: "C"},
		RouteGtfsID: map[raptor.RouteID]string{0: "R1"},
		TripGtfsID:  map[raptor.TripID]string{0: "T1"},
	}
}

func TestMaterialize_RebuildsTimetableAndFootpaths(t *testing.T) {
	res, err := Materialize(testSnapshot())
	require.NoError(t, err)

	require.Equal(t, []raptor.StopID{0, 1, 2}, res.Timetable.StopsOfRoute(0))
	sec, ok := res.Timetable.Arrival(0, 1)
	require.True(t, ok)
	assert.Equal(t, 200, sec)

	neighbors, err := res.Footpaths.Neighbors(1)
	require.NoError(t, err)
	require.Len(t, neighbors, 1)
	assert.Equal(t, raptor.Neighbor{Stop: 2, WalkSeconds: 90}, neighbors[0])

	gtfsID, ok := res.IDs.StopGtfsID(2)
	require.True(t, ok)
	assert.Equal(t, "C", gtfsID)

	assert.Equal(t, 1, res.Stats.Footpaths)
	assert.Len(t, res.Edges, 1)
}

func TestMaterialize_RejectsCorruptSnapshot(t *testing.T) {
	snap := testSnapshot()
	snap.Routes[0] = []raptor.StopID{0, 99} // unknown stop
	_, err := Materialize(snap)
	require.Error(t, err)
}

func TestMaterialize_RunsQueriesEndToEnd(t *testing.T) {
	res, err := Materialize(testSnapshot())
	require.NoError(t, err)

	engine := raptor.NewEngine(res.Timetable, res.Footpaths)
	ls, err := engine.Run(raptor.Query{
		Source:           0,
		Destination:      2,
		DepartureTimeSec: 0,
		MaxTransfer:      1,
		NumberOfCriteria: 3,
	})
	require.NoError(t, err)

	bag := ls.Bag(1, 2)
	require.Len(t, bag, 1)
	assert.Equal(t, []int{300, 3, 200}, bag[0].V)
	assert.Equal(t, raptor.TripID(0), bag[0].Trip)
}
