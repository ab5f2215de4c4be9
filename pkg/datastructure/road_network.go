package datastructure

import (
	"errors"
	"math"

	"github.com/lintang-b-s/evacroute/pkg/geo"
	"github.com/lintang-b-s/evacroute/pkg/util"
)

var ErrInvalidRoadNetwork = errors.New("invalid road network")

// HazardDetector classifies which road segments intersect flood zones.
type HazardDetector interface {
	DetectHazardousSegments(segments []*RoadSegment, zones []*FloodZone) map[string]struct{}
}

// RoadNetwork pairs the segment collection with the graph built from it.
// It is never mutated after construction; ApplyFloodZones produces a new one.
type RoadNetwork struct {
	segments     map[string]*RoadSegment
	segmentOrder []string
	graph        *Graph
}

func NewRoadNetwork(segments []*RoadSegment, graph *Graph) (*RoadNetwork, error) {
	if len(segments) == 0 {
		return nil, util.WrapErrorf(ErrInvalidRoadNetwork, util.ErrBadParamInput, "road network must contain at least one segment")
	}
	if graph == nil {
		return nil, util.WrapErrorf(ErrInvalidRoadNetwork, util.ErrBadParamInput, "road network graph cannot be nil")
	}

	segMap := make(map[string]*RoadSegment, len(segments))
	order := make([]string, 0, len(segments))
	for _, s := range segments {
		if _, dup := segMap[s.GetID()]; dup {
			return nil, util.WrapErrorf(ErrInvalidRoadNetwork, util.ErrBadParamInput, "duplicate segment id: %s", s.GetID())
		}
		segMap[s.GetID()] = s
		order = append(order, s.GetID())
	}

	return &RoadNetwork{
		segments:     segMap,
		segmentOrder: order,
		graph:        graph,
	}, nil
}

// BuildRoadNetwork builds the graph for segments and wraps both in a RoadNetwork.
func BuildRoadNetwork(segments []*RoadSegment) (*RoadNetwork, error) {
	return NewRoadNetwork(segments, NewGraphBuilder().Build(segments))
}

// ApplyFloodZones returns a network whose segments and graph edges carry the hazard flags
// detected for zones. The receiver is left unchanged. When no segment is hazardous the
// receiver itself is returned.
func (rn *RoadNetwork) ApplyFloodZones(zones []*FloodZone, detector HazardDetector) *RoadNetwork {
	hazardous := detector.DetectHazardousSegments(rn.GetSegments(), zones)
	if len(hazardous) == 0 {
		return rn
	}

	updated := make([]*RoadSegment, 0, len(rn.segmentOrder))
	for _, id := range rn.segmentOrder {
		s := rn.segments[id]
		if _, ok := hazardous[id]; ok {
			s = s.WithHazardous(true)
		}
		updated = append(updated, s)
	}

	segMap := make(map[string]*RoadSegment, len(updated))
	for _, s := range updated {
		segMap[s.GetID()] = s
	}

	order := make([]string, len(rn.segmentOrder))
	copy(order, rn.segmentOrder)

	return &RoadNetwork{
		segments:     segMap,
		segmentOrder: order,
		graph:        NewGraphBuilder().Build(updated),
	}
}

func (rn *RoadNetwork) GetGraph() *Graph {
	return rn.graph
}

// GetSegments returns the segments in their original order.
func (rn *RoadNetwork) GetSegments() []*RoadSegment {
	segs := make([]*RoadSegment, 0, len(rn.segmentOrder))
	for _, id := range rn.segmentOrder {
		segs = append(segs, rn.segments[id])
	}
	return segs
}

func (rn *RoadNetwork) FindSegment(id string) (*RoadSegment, bool) {
	s, ok := rn.segments[id]
	return s, ok
}

func (rn *RoadNetwork) NumberOfSegments() int {
	return len(rn.segmentOrder)
}

// FindNearestNode scans every graph node. Ties keep the first node in creation order.
func (rn *RoadNetwork) FindNearestNode(c geo.Coordinate) (*Node, bool) {
	var (
		nearest *Node
		minDist = math.Inf(1)
	)
	rn.graph.ForNodes(func(n *Node) {
		d := n.coord.DistanceTo(c)
		if d < minDist {
			minDist = d
			nearest = n
		}
	})
	return nearest, nearest != nil
}
