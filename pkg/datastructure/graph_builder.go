package datastructure

import (
	"fmt"

	"github.com/golang/geo/s2"
	"github.com/lintang-b-s/evacroute/pkg"
	"github.com/lintang-b-s/evacroute/pkg/geo"
)

// GraphBuilder turns road segments into a routing graph. Only the first and last point of a
// segment become nodes; endpoints closer than the merge tolerance share a node.
type GraphBuilder struct {
	tolerance float64
	cellLevel int
}

func NewGraphBuilder() *GraphBuilder {
	return &GraphBuilder{
		tolerance: pkg.NODE_MERGE_TOLERANCE_METERS,
		cellLevel: geo.NODE_CELL_LEVEL,
	}
}

// nodeIndex buckets created nodes by s2 cell so the nearby-node lookup only scans the query
// cell and its neighbors.
type nodeIndex struct {
	cells map[s2.CellID][]indexedNode
	seq   int
}

type indexedNode struct {
	node *Node
	seq  int
}

func (gb *GraphBuilder) Build(segments []*RoadSegment) *Graph {
	graph := NewGraph()
	idx := &nodeIndex{cells: make(map[s2.CellID][]indexedNode)}

	for _, segment := range segments {
		startNode := gb.getOrCreateNode(segment.GetStart(), idx, graph)
		endNode := gb.getOrCreateNode(segment.GetEnd(), idx, graph)

		graph.addEdge(Edge{
			from:      startNode.id,
			to:        endNode.id,
			weight:    segment.GetLengthMeters(),
			hazardous: segment.IsHazardous(),
			segmentID: segment.GetID(),
		})

		if !segment.IsOneway() {
			graph.addEdge(Edge{
				from:      endNode.id,
				to:        startNode.id,
				weight:    segment.GetLengthMeters(),
				hazardous: segment.IsHazardous(),
				segmentID: segment.GetID(),
			})
		}
	}

	return graph
}

func (gb *GraphBuilder) getOrCreateNode(coord geo.Coordinate, idx *nodeIndex, graph *Graph) *Node {
	if node := gb.findNearbyNode(coord, idx); node != nil {
		return node
	}

	nodeID := generateNodeID(coord)
	if _, exists := graph.nodes[nodeID]; exists {
		nodeID = fmt.Sprintf("%s_%d", nodeID, idx.seq)
	}
	node := NewNode(nodeID, coord)
	graph.addNode(node)

	cell := geo.CellID(coord, gb.cellLevel)
	idx.cells[cell] = append(idx.cells[cell], indexedNode{node: node, seq: idx.seq})
	idx.seq++
	return node
}

// findNearbyNode returns the earliest created node strictly within tolerance of coord.
// A node exactly at the tolerance distance is not merged.
func (gb *GraphBuilder) findNearbyNode(coord geo.Coordinate, idx *nodeIndex) *Node {
	var (
		best    *Node
		bestSeq = -1
	)
	for _, cell := range geo.CellWithNeighbors(coord, gb.cellLevel) {
		for _, in := range idx.cells[cell] {
			if in.node.coord.DistanceTo(coord) >= gb.tolerance {
				continue
			}
			if bestSeq == -1 || in.seq < bestSeq {
				best = in.node
				bestSeq = in.seq
			}
		}
	}
	return best
}

func generateNodeID(coord geo.Coordinate) string {
	return fmt.Sprintf("node_%.6f_%.6f", coord.GetLat(), coord.GetLon())
}
