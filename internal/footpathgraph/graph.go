// Package footpathgraph models short walking transfers between stops
// on top of lvlath's general-purpose directed graph
// (github.com/katalvlaran/lvlath/core), rather than a bespoke adjacency
// map: footpaths are directed, weighted edges between stop vertices,
// which is exactly what core.Graph models.
package footpathgraph

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/katalvlaran/lvlath/core"

	"github.com/SukantoMette/McRAPTOR"
)

// Graph is a directed, weighted footpath network: neighbors(p) returns
// every (q, walk_seconds) reachable by a direct foot transfer from p.
// The relation need not be symmetric.
type Graph struct {
	g     *core.Graph
	known map[raptor.StopID]bool
}

// New builds an empty footpath graph.
func New() *Graph {
	return &Graph{
		g:     core.NewGraph(core.WithDirected(true), core.WithWeighted(), core.WithMultiEdges()),
		known: make(map[raptor.StopID]bool),
	}
}

func vertexID(p raptor.StopID) string {
	return strconv.Itoa(int(p))
}

// AddFootpath registers a directed walk of walkSeconds from `from` to
// `to`. Self-loops and negative durations are rejected.
func (fg *Graph) AddFootpath(from, to raptor.StopID, walkSeconds int) error {
	if from == to {
		return fmt.Errorf("%w: footpath from stop %d to itself is not allowed", raptor.ErrInvalidInput, from)
	}
	if walkSeconds < 0 {
		return fmt.Errorf("%w: footpath from %d to %d has negative duration %d", raptor.ErrInvalidInput, from, to, walkSeconds)
	}

	fromID, toID := vertexID(from), vertexID(to)
	if err := fg.g.AddVertex(fromID); err != nil {
		return err
	}
	if err := fg.g.AddVertex(toID); err != nil {
		return err
	}
	fg.known[from] = true
	fg.known[to] = true

	if _, err := fg.g.AddEdge(fromID, toID, int64(walkSeconds)); err != nil {
		return err
	}
	return nil
}

// Neighbors implements raptor.FootpathGraph.
func (fg *Graph) Neighbors(p raptor.StopID) ([]raptor.Neighbor, error) {
	if !fg.known[p] {
		return nil, nil
	}

	edges, err := fg.g.Neighbors(vertexID(p))
	if err != nil {
		if errors.Is(err, core.ErrVertexNotFound) {
			return nil, nil
		}
		return nil, err
	}

	out := make([]raptor.Neighbor, 0, len(edges))
	for _, e := range edges {
		to, convErr := strconv.Atoi(e.To)
		if convErr != nil {
			return nil, fmt.Errorf("footpathgraph: vertex id %q is not a stop id: %w", e.To, convErr)
		}
		out = append(out, raptor.Neighbor{Stop: raptor.StopID(to), WalkSeconds: int(e.Weight)})
	}
	return out, nil
}
