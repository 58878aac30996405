package raptor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewStaticTimetable_Accessors(t *testing.T) {
	stops := []StopID{1, 2, 3}
	routes := map[RouteID][]StopID{10: {1, 2, 3}}
	trips := map[RouteID][]TripID{10: {100}}
	arrivals := map[TripID]map[StopID]int{
		100: {1: 0, 2: 100, 3: 200},
	}

	tt, err := NewStaticTimetable(stops, routes, trips, arrivals)
	require.NoError(t, err)

	require.True(t, tt.HasStop(2))
	require.False(t, tt.HasStop(99))

	require.ElementsMatch(t, []StopID{1, 2, 3}, tt.StopsOfRoute(10))
	require.ElementsMatch(t, []RouteID{10}, tt.RoutesOfStop(2))
	require.Equal(t, []TripID{100}, tt.TripsOfRoute(10))

	idx, ok := tt.IndexOf(10, 3)
	require.True(t, ok)
	require.Equal(t, 2, idx)

	sec, ok := tt.Arrival(100, 2)
	require.True(t, ok)
	require.Equal(t, 100, sec)

	_, ok = tt.Arrival(100, 99)
	require.False(t, ok)
}

func TestNewStaticTimetable_RejectsUnknownStopOnRoute(t *testing.T) {
	_, err := NewStaticTimetable(
		[]StopID{1, 2},
		map[RouteID][]StopID{10: {1, 99}},
		map[RouteID][]TripID{},
		map[TripID]map[StopID]int{},
	)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrInvalidInput))
}

func TestNewStaticTimetable_RejectsRepeatedStopInRoute(t *testing.T) {
	_, err := NewStaticTimetable(
		[]StopID{1, 2},
		map[RouteID][]StopID{10: {1, 2, 1}},
		map[RouteID][]TripID{},
		map[TripID]map[StopID]int{},
	)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrInvalidInput))
}

func TestNewStaticTimetable_RejectsNegativeArrival(t *testing.T) {
	_, err := NewStaticTimetable(
		[]StopID{1, 2},
		map[RouteID][]StopID{10: {1, 2}},
		map[RouteID][]TripID{10: {100}},
		map[TripID]map[StopID]int{100: {1: 0, 2: -5}},
	)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrInvalidInput))
}

func TestNewStaticTimetable_RejectsTripWithoutRoute(t *testing.T) {
	_, err := NewStaticTimetable(
		[]StopID{1, 2},
		map[RouteID][]StopID{10: {1, 2}},
		map[RouteID][]TripID{},
		map[TripID]map[StopID]int{100: {1: 0, 2: 5}},
	)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrInvalidInput))
}

func TestNewStaticTimetable_RejectsArrivalAtStopNotOnRoute(t *testing.T) {
	_, err := NewStaticTimetable(
		[]StopID{1, 2, 3},
		map[RouteID][]StopID{10: {1, 2}},
		map[RouteID][]TripID{10: {100}},
		map[TripID]map[StopID]int{100: {1: 0, 3: 5}},
	)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrInvalidInput))
}
