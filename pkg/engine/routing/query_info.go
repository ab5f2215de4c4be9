package routing

import (
	da "github.com/lintang-b-s/evacroute/pkg/datastructure"
)

// vertexInfo is the search label of a node: tentative distance, the edge it was reached by,
// and its queue entry while it is still unsettled.
type vertexInfo struct {
	dist       float64
	parentEdge *da.Edge
	heapNode   *da.PriorityQueueNode[string]
	settled    bool
}

func newVertexInfo(dist float64, parentEdge *da.Edge, heapNode *da.PriorityQueueNode[string]) *vertexInfo {
	return &vertexInfo{
		dist:       dist,
		parentEdge: parentEdge,
		heapNode:   heapNode,
	}
}

func (vi *vertexInfo) getDist() float64 {
	return vi.dist
}

func (vi *vertexInfo) getParentEdge() *da.Edge {
	return vi.parentEdge
}
