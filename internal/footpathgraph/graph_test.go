package footpathgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SukantoMette/McRAPTOR"
)

func TestAddFootpath_RejectsSelfLoop(t *testing.T) {
	fg := New()
	err := fg.AddFootpath(5, 5, 60)
	require.ErrorIs(t, err, raptor.ErrInvalidInput)
}

func TestAddFootpath_RejectsNegativeDuration(t *testing.T) {
	fg := New()
	err := fg.AddFootpath(1, 2, -30)
	require.ErrorIs(t, err, raptor.ErrInvalidInput)
}

func TestNeighbors_UnknownStopHasNone(t *testing.T) {
	fg := New()
	require.NoError(t, fg.AddFootpath(1, 2, 60))

	neighbors, err := fg.Neighbors(99)
	require.NoError(t, err)
	assert.Empty(t, neighbors)
}

func TestNeighbors_DirectedEdgesAreNotMirrored(t *testing.T) {
	fg := New()
	require.NoError(t, fg.AddFootpath(1, 2, 60))

	out, err := fg.Neighbors(1)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, raptor.Neighbor{Stop: 2, WalkSeconds: 60}, out[0])

	back, err := fg.Neighbors(2)
	require.NoError(t, err)
	assert.Empty(t, back, "footpaths are directed; the reverse edge must be added explicitly")
}

func TestNeighbors_MultipleEdgesFromOneStop(t *testing.T) {
	fg := New()
	require.NoError(t, fg.AddFootpath(1, 2, 60))
	require.NoError(t, fg.AddFootpath(1, 3, 120))

	out, err := fg.Neighbors(1)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.ElementsMatch(t, []raptor.Neighbor{
		{Stop: 2, WalkSeconds: 60},
		{Stop: 3, WalkSeconds: 120},
	}, out)
}

func TestAddFootpath_ZeroDurationAllowed(t *testing.T) {
	fg := New()
	require.NoError(t, fg.AddFootpath(1, 2, 0))

	out, err := fg.Neighbors(1)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 0, out[0].WalkSeconds)
}
