package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/lintang-b-s/evacroute/pkg/datastructure"
	"github.com/lintang-b-s/evacroute/pkg/geo"
	"github.com/lintang-b-s/evacroute/pkg/util"
	"go.uber.org/zap"
)

const (
	OutcomeFound    = "ok"
	OutcomeNotFound = "not_found"
	OutcomeInvalid  = "invalid"
	OutcomeTimeout  = "timeout"
	OutcomeError    = "error"
)

type RoutingService struct {
	log      *zap.Logger
	engine   RoutingEngine
	observer RouteObserver
	timeout  time.Duration
}

// NewRoutingService bounds every route computation by timeout. A zero timeout disables the bound.
func NewRoutingService(log *zap.Logger, engine RoutingEngine, observer RouteObserver, timeout time.Duration) *RoutingService {
	return &RoutingService{
		log:      log,
		engine:   engine,
		observer: observer,
		timeout:  timeout,
	}
}

func (rs *RoutingService) CalculateRoute(ctx context.Context, start, end geo.Coordinate) (*datastructure.Route, error) {
	if rs.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, rs.timeout)
		defer cancel()
	}

	began := time.Now()
	route, err := rs.engine.CalculateRoute(ctx, start, end)
	took := time.Since(began)

	outcome := classifyOutcome(err)
	if err != nil {
		rs.observe(outcome, took, 0)
		return nil, err
	}

	rs.observe(outcome, took, route.GetMetadata().GetSafetyScore())
	rs.log.Debug("route request served",
		zap.Duration("took", took),
		zap.Float64("distanceMeters", route.GetMetadata().GetDistanceMeters()),
		zap.Int("hazardousSegments", route.GetMetadata().GetHazardousSegments()))
	return route, nil
}

func (rs *RoutingService) observe(outcome string, took time.Duration, score float64) {
	if rs.observer == nil {
		return
	}
	rs.observer.ObserveRoute(outcome, took, score)
}

func classifyOutcome(err error) string {
	if err == nil {
		return OutcomeFound
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return OutcomeTimeout
	}
	switch util.ErrorCode(err) {
	case util.ErrNotFound:
		return OutcomeNotFound
	case util.ErrBadParamInput:
		return OutcomeInvalid
	default:
		return OutcomeError
	}
}
