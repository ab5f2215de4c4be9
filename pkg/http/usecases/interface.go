package usecases

import (
	"context"
	"time"

	"github.com/lintang-b-s/evacroute/pkg/datastructure"
	"github.com/lintang-b-s/evacroute/pkg/geo"
)

type RoutingEngine interface {
	CalculateRoute(ctx context.Context, start, end geo.Coordinate) (*datastructure.Route, error)
}

type RouteObserver interface {
	ObserveRoute(outcome string, took time.Duration, safetyScore float64)
}
