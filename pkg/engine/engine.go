package engine

import (
	"context"
	"errors"
	"time"

	"github.com/lintang-b-s/evacroute/pkg/datastructure"
	"github.com/lintang-b-s/evacroute/pkg/geo"
	"github.com/lintang-b-s/evacroute/pkg/util"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var ErrRouteTooLong = errors.New("route endpoints are too far apart")

type RoadRepository interface {
	Load(ctx context.Context) ([]*datastructure.RoadSegment, error)
}

type FloodZoneRepository interface {
	LoadActiveAt(ctx context.Context, t time.Time) ([]*datastructure.FloodZone, error)
}

type RouteCalculator interface {
	CalculateRoute(network *datastructure.RoadNetwork, start, end geo.Coordinate) (*datastructure.Route, error)
}

// Engine answers evacuation route queries. Every query loads road data and the flood zones
// active at query time, builds a network and applies the zones to it before searching.
type Engine struct {
	roads                  RoadRepository
	floodZones             FloodZoneRepository
	detector               datastructure.HazardDetector
	calculator             RouteCalculator
	logger                 *zap.Logger
	maxRouteDistanceMeters float64
	now                    func() time.Time
}

func NewEngine(roads RoadRepository, floodZones FloodZoneRepository, detector datastructure.HazardDetector,
	calculator RouteCalculator, maxRouteDistanceMeters float64, logger *zap.Logger) *Engine {
	return &Engine{
		roads:                  roads,
		floodZones:             floodZones,
		detector:               detector,
		calculator:             calculator,
		logger:                 logger,
		maxRouteDistanceMeters: maxRouteDistanceMeters,
		now:                    time.Now,
	}
}

// SetClock replaces the clock used to pick active flood zones.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

func (e *Engine) CalculateRoute(ctx context.Context, start, end geo.Coordinate) (*datastructure.Route, error) {
	if dist := start.DistanceTo(end); dist > e.maxRouteDistanceMeters {
		return nil, util.WrapErrorf(ErrRouteTooLong, util.ErrBadParamInput,
			"Distance between start and end exceeds maximum: %.0f km (%.1f km requested)", e.maxRouteDistanceMeters/1000, dist/1000)
	}

	at := e.now()
	var (
		segments []*datastructure.RoadSegment
		zones    []*datastructure.FloodZone
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		segments, err = e.roads.Load(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		zones, err = e.floodZones.LoadActiveAt(gctx, at)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	type result struct {
		route *datastructure.Route
		err   error
	}
	resChan := make(chan result, 1)

	go func() {
		network, err := datastructure.BuildRoadNetwork(segments)
		if err != nil {
			resChan <- result{err: err}
			return
		}
		if util.StopConcurrentOperation(ctx) {
			resChan <- result{err: ctx.Err()}
			return
		}
		if len(zones) > 0 {
			network = network.ApplyFloodZones(zones, e.detector)
		}
		route, err := e.calculator.CalculateRoute(network, start, end)
		resChan <- result{route: route, err: err}
	}()

	select {
	case <-ctx.Done():
		e.logger.Warn("route calculation canceled", zap.Error(ctx.Err()))
		return nil, ctx.Err()
	case res := <-resChan:
		return res.route, res.err
	}
}

// NetworkReport summarizes the connectivity of the loaded road network.
type NetworkReport struct {
	Segments             int
	Nodes                int
	Edges                int
	Components           int
	LargestComponentSize int
}

// Warmup loads the road network once, priming the repository cache, and reports its
// strongly connected components. Many small components usually mean a badly noded input.
func (e *Engine) Warmup(ctx context.Context) (NetworkReport, error) {
	segments, err := e.roads.Load(ctx)
	if err != nil {
		return NetworkReport{}, err
	}
	network, err := datastructure.BuildRoadNetwork(segments)
	if err != nil {
		return NetworkReport{}, err
	}

	graph := network.GetGraph()
	components := graph.StronglyConnectedComponents()
	report := NetworkReport{
		Segments:             network.NumberOfSegments(),
		Nodes:                graph.NumberOfNodes(),
		Edges:                graph.NumberOfEdges(),
		Components:           len(components),
		LargestComponentSize: datastructure.LargestComponentSize(components),
	}

	e.logger.Info("road network loaded",
		zap.Int("segments", report.Segments),
		zap.Int("nodes", report.Nodes),
		zap.Int("edges", report.Edges),
		zap.Int("components", report.Components),
		zap.Int("largest_component", report.LargestComponentSize))
	if report.Components > 1 {
		e.logger.Warn("road network is not strongly connected, some routes will not be found",
			zap.Int("unreachable_nodes", report.Nodes-report.LargestComponentSize))
	}
	return report, nil
}
