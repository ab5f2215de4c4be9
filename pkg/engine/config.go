package engine

import (
	"github.com/lintang-b-s/evacroute/pkg/costfunction"
	"github.com/lintang-b-s/evacroute/pkg/engine/routing"
	"github.com/lintang-b-s/evacroute/pkg/hazard"
	"github.com/lintang-b-s/evacroute/pkg/roadparser"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// NewEngineFromConfig builds an Engine from ROAD_NETWORK_PATH, FLOOD_ZONES_PATH, ROAD_CACHE_SIZE,
// HAZARD_DETECTION_WORKERS, HAZARD_PENALTY_FACTOR and MAX_ROUTE_DISTANCE_METERS.
func NewEngineFromConfig(logger *zap.Logger) (*Engine, error) {
	roads, err := roadparser.NewRoadRepository(viper.GetString("ROAD_NETWORK_PATH"), viper.GetInt("ROAD_CACHE_SIZE"), logger)
	if err != nil {
		return nil, err
	}
	floodZones := roadparser.NewFloodZoneRepository(viper.GetString("FLOOD_ZONES_PATH"), logger)
	detector := hazard.NewRtreeDetector(logger, viper.GetInt("HAZARD_DETECTION_WORKERS"))
	calculator := routing.NewRouteCalculationServiceWithCost(logger,
		costfunction.NewHazardCostFunctionWithPenalty(viper.GetFloat64("HAZARD_PENALTY_FACTOR")))

	return NewEngine(roads, floodZones, detector, calculator,
		viper.GetFloat64("MAX_ROUTE_DISTANCE_METERS"), logger), nil
}
