package routing

import (
	"errors"
	"time"

	"github.com/lintang-b-s/evacroute/pkg"
	"github.com/lintang-b-s/evacroute/pkg/costfunction"
	da "github.com/lintang-b-s/evacroute/pkg/datastructure"
	"github.com/lintang-b-s/evacroute/pkg/geo"
	"github.com/lintang-b-s/evacroute/pkg/util"
	"go.uber.org/zap"
)

var (
	ErrRouteNotFound       = errors.New("route not found")
	ErrInconsistentNetwork = errors.New("graph edge references an unknown road segment")
)

// RouteCalculationService snaps both endpoints to the nearest graph node and runs a
// hazard-penalized dijkstra between them.
type RouteCalculationService struct {
	log          *zap.Logger
	costFunction CostFunction
	now          func() time.Time
}

func NewRouteCalculationService(log *zap.Logger) *RouteCalculationService {
	return &RouteCalculationService{
		log:          log,
		costFunction: costfunction.NewHazardCostFunction(),
		now:          time.Now,
	}
}

func NewRouteCalculationServiceWithCost(log *zap.Logger, costFunction CostFunction) *RouteCalculationService {
	rs := NewRouteCalculationService(log)
	rs.costFunction = costFunction
	return rs
}

func (rs *RouteCalculationService) CalculateRoute(network *da.RoadNetwork, start, end geo.Coordinate) (*da.Route, error) {
	startTime := time.Now()

	startNode, ok := network.FindNearestNode(start)
	if !ok {
		return nil, util.WrapErrorf(ErrRouteNotFound, util.ErrNotFound, "No road network near start coordinate")
	}
	endNode, ok := network.FindNearestNode(end)
	if !ok {
		return nil, util.WrapErrorf(ErrRouteNotFound, util.ErrNotFound, "No road network near end coordinate")
	}

	if startNode.GetID() == endNode.GetID() {
		md, err := da.NewRouteMetadata(0, time.Since(startTime), 0, pkg.EMPTY_ROUTE_SAFETY_SCORE, rs.now(), false)
		if err != nil {
			return nil, err
		}
		rs.log.Info("start and end snap to the same node", zap.String("node", startNode.GetID()))
		return da.NewRoute(nil, nil, md), nil
	}

	dijkstra := NewDijkstra(network.GetGraph(), rs.costFunction)
	_, pathEdges, found := dijkstra.ShortestPath(startNode.GetID(), endNode.GetID())
	if !found {
		return nil, util.WrapErrorf(ErrRouteNotFound, util.ErrNotFound, "no route available between specified points")
	}

	segments, forward, err := rs.resolveSegments(network, pathEdges)
	if err != nil {
		return nil, err
	}

	distance, hazardousCount := 0.0, 0
	for _, s := range segments {
		distance += s.GetLengthMeters()
		if s.IsHazardous() {
			hazardousCount++
		}
	}

	safetyScore := pkg.EMPTY_ROUTE_SAFETY_SCORE
	if len(segments) > 0 {
		safetyScore = util.Clamp(1.0-float64(hazardousCount)/float64(len(segments)), 0.0, 1.0)
	}
	allPathsHazardous := len(segments) > 0 && hazardousCount == len(segments)

	md, err := da.NewRouteMetadata(distance, time.Since(startTime), hazardousCount, safetyScore, rs.now(), allPathsHazardous)
	if err != nil {
		return nil, err
	}

	rs.log.Info("route calculated",
		zap.Float64("distanceMeters", distance),
		zap.Int("segments", len(segments)),
		zap.Int("hazardousSegments", hazardousCount),
		zap.Float64("safetyScore", safetyScore),
		zap.Int("settledNodes", dijkstra.GetNumSettledNodes()),
		zap.Duration("took", md.GetComputationTime()))

	return da.NewRoute(segments, forward, md), nil
}

// resolveSegments maps path edges to the network's current segments. An edge is traversed
// forward when its tail lies at the segment's start point.
func (rs *RouteCalculationService) resolveSegments(network *da.RoadNetwork, pathEdges []da.Edge) ([]*da.RoadSegment, []bool, error) {
	graph := network.GetGraph()
	segments := make([]*da.RoadSegment, 0, len(pathEdges))
	forward := make([]bool, 0, len(pathEdges))

	for _, e := range pathEdges {
		segment, ok := network.FindSegment(e.GetSegmentID())
		if !ok {
			return nil, nil, util.WrapErrorf(ErrInconsistentNetwork, util.ErrInternalServerError,
				"edge %s -> %s references unknown segment %s", e.GetFrom(), e.GetTo(), e.GetSegmentID())
		}

		isForward := true
		if from, ok := graph.GetNode(e.GetFrom()); ok {
			c := from.GetCoordinate()
			isForward = c.DistanceTo(segment.GetStart()) <= c.DistanceTo(segment.GetEnd())
		}

		segments = append(segments, segment)
		forward = append(forward, isForward)
	}
	return segments, forward, nil
}
