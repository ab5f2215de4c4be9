package controllers

import (
	"context"

	"github.com/lintang-b-s/evacroute/pkg/datastructure"
	"github.com/lintang-b-s/evacroute/pkg/geo"
)

type RoutingService interface {
	CalculateRoute(ctx context.Context, start, end geo.Coordinate) (*datastructure.Route, error)
}
