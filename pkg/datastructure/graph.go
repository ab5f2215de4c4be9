package datastructure

import (
	"errors"
	"math"
	"strings"

	"github.com/lintang-b-s/evacroute/pkg/geo"
	"github.com/lintang-b-s/evacroute/pkg/util"
)

var ErrInvalidEdge = errors.New("invalid graph edge")

type Node struct {
	id    string
	coord geo.Coordinate
}

func NewNode(id string, coord geo.Coordinate) *Node {
	return &Node{id: id, coord: coord}
}

func (n *Node) GetID() string {
	return n.id
}

func (n *Node) GetCoordinate() geo.Coordinate {
	return n.coord
}

// Edge is a directed connection created from a road segment. weight and hazardous are copied
// from the segment when the edge is created.
type Edge struct {
	from      string
	to        string
	weight    float64
	hazardous bool
	segmentID string
}

func NewEdge(from, to string, weight float64, hazardous bool, segmentID string) (Edge, error) {
	if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
		return Edge{}, util.WrapErrorf(ErrInvalidEdge, util.ErrBadParamInput, "edge node ids cannot be blank")
	}
	if weight < 0 || math.IsNaN(weight) {
		return Edge{}, util.WrapErrorf(ErrInvalidEdge, util.ErrBadParamInput, "edge weight cannot be negative, got: %f", weight)
	}
	return Edge{
		from:      from,
		to:        to,
		weight:    weight,
		hazardous: hazardous,
		segmentID: segmentID,
	}, nil
}

func (e Edge) GetFrom() string {
	return e.from
}

func (e Edge) GetTo() string {
	return e.to
}

func (e Edge) GetWeight() float64 {
	return e.weight
}

func (e Edge) IsHazardous() bool {
	return e.hazardous
}

func (e Edge) GetSegmentID() string {
	return e.segmentID
}

// Graph. directed weighted multigraph. Only GraphBuilder adds to it, afterwards it is read-only
// and safe for concurrent readers.
type Graph struct {
	nodes     map[string]*Node
	nodeOrder []*Node
	adjList   map[string][]Edge
	numEdges  int
}

func NewGraph() *Graph {
	return &Graph{
		nodes:     make(map[string]*Node),
		nodeOrder: make([]*Node, 0),
		adjList:   make(map[string][]Edge),
	}
}

func (g *Graph) addNode(node *Node) {
	if _, ok := g.nodes[node.id]; !ok {
		g.nodeOrder = append(g.nodeOrder, node)
	}
	g.nodes[node.id] = node
	if _, ok := g.adjList[node.id]; !ok {
		g.adjList[node.id] = make([]Edge, 0)
	}
}

func (g *Graph) addEdge(edge Edge) {
	g.adjList[edge.from] = append(g.adjList[edge.from], edge)
	g.numEdges++
}

func (g *Graph) GetNode(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// GetOutEdges. outgoing edges of a node in insertion order. Callers must not modify the slice.
func (g *Graph) GetOutEdges(id string) []Edge {
	return g.adjList[id]
}

// ForNodes visits every node in creation order.
func (g *Graph) ForNodes(handle func(n *Node)) {
	for _, n := range g.nodeOrder {
		handle(n)
	}
}

func (g *Graph) NumberOfNodes() int {
	return len(g.nodeOrder)
}

func (g *Graph) NumberOfEdges() int {
	return g.numEdges
}
