package raptor

import "time"

// NoTrip is the sentinel trip id meaning "no trip currently attached to
// this label" -- the label is a transfer state and must acquire a
// concrete trip before it can advance through a route scan.
const NoTrip TripID = -1

// Default cost model layout: the first three criterion slots always
// carry arrival time, stop count and in-vehicle travel time in that
// order. Criteria beyond these three are carried unmodified by
// DefaultCostModel.
const (
	ArrivalIndex   = 0
	StopCountIndex = 1
	IVTTIndex      = 2
)

// infiniteArrivalSec is the "unreachable" arrival sentinel every bag
// starts with until a round improves it: seconds between the epoch and
// 2021-06-10 23:59:59.
var infiniteArrivalSec = int(time.Date(2021, time.June, 10, 23, 59, 59, 0, time.UTC).Unix())

const (
	infiniteStopCount = 100000
	infiniteIVTT      = 10000000000
)

// InfiniteArrivalSec exposes the arrival-time sentinel used throughout
// a query. Any large value exceeding all plausible arrival times would
// do; what matters is that one query uses a single constant throughout.
func InfiniteArrivalSec() int { return infiniteArrivalSec }
