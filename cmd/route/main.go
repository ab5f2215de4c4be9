package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/lintang-b-s/evacroute/pkg"
	"github.com/lintang-b-s/evacroute/pkg/engine"
	"github.com/lintang-b-s/evacroute/pkg/geo"
	"github.com/lintang-b-s/evacroute/pkg/http/router/controllers"
	"github.com/lintang-b-s/evacroute/pkg/logger"
	"github.com/lintang-b-s/evacroute/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	configDir = flag.String("config", "./data", "directory holding config.yaml")
	roadsPath = flag.String("roads", "", "road network file, .geojson or .osm.pbf (default ROAD_NETWORK_PATH)")
	zonesPath = flag.String("zones", "", "flood zone geojson file (default FLOOD_ZONES_PATH)")
	startFlag = flag.String("start", "", "start coordinate as lat,lon")
	endFlag   = flag.String("end", "", "end coordinate as lat,lon")
	at        = flag.String("at", "", "RFC3339 instant used to select active flood zones (default now)")
	timeout   = flag.Duration("timeout", 0, "route computation timeout (default API_TIMEOUT)")
)

func main() {
	flag.Parse()
	if err := util.ReadConfig(*configDir); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	logger, err := logger.New()
	if err != nil {
		return err
	}
	defer logger.Sync()

	if *roadsPath != "" {
		viper.Set("ROAD_NETWORK_PATH", *roadsPath)
	}
	if *zonesPath != "" {
		viper.Set("FLOOD_ZONES_PATH", *zonesPath)
	}

	start, err := parseCoordinate(*startFlag)
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}
	end, err := parseCoordinate(*endFlag)
	if err != nil {
		return fmt.Errorf("end: %w", err)
	}

	e, err := engine.NewEngineFromConfig(logger)
	if err != nil {
		return err
	}

	if *at != "" {
		instant, err := time.Parse(time.RFC3339, *at)
		if err != nil {
			return fmt.Errorf("at: %w", err)
		}
		e.SetClock(func() time.Time { return instant })
	}

	d := *timeout
	if d == 0 {
		d = viper.GetDuration("API_TIMEOUT")
	}
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()

	route, err := e.CalculateRoute(ctx, start, end)
	if err != nil {
		return err
	}
	logger.Info("route calculated", zap.Int("segments", len(route.GetSegments())),
		zap.Float64("safety_score", route.GetMetadata().GetSafetyScore()))

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(controllers.NewRouteFeature(route))
}

func parseCoordinate(raw string) (geo.Coordinate, error) {
	latStr, lonStr, ok := strings.Cut(raw, ",")
	if !ok {
		return geo.Coordinate{}, fmt.Errorf("expected lat,lon, got %q", raw)
	}
	lat, err := util.StringToFloat64(latStr)
	if err != nil {
		return geo.Coordinate{}, err
	}
	lon, err := util.StringToFloat64(lonStr)
	if err != nil {
		return geo.Coordinate{}, err
	}
	return geo.NewCoordinate(util.RoundFloat(lat, pkg.COORDINATE_PRECISION), util.RoundFloat(lon, pkg.COORDINATE_PRECISION))
}
