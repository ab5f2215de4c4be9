package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/lintang-b-s/evacroute/pkg/engine"
	"github.com/lintang-b-s/evacroute/pkg/http"
	"github.com/lintang-b-s/evacroute/pkg/http/usecases"
	"github.com/lintang-b-s/evacroute/pkg/logger"
	"github.com/lintang-b-s/evacroute/pkg/metrics"
	"github.com/lintang-b-s/evacroute/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	configDir = flag.String("config", "./data", "directory holding config.yaml")
)

func main() {
	flag.Parse()
	if err := util.ReadConfig(*configDir); err != nil {
		panic(err)
	}
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	routingEngine, err := engine.NewEngineFromConfig(logger)
	if err != nil {
		logger.Fatal("failed to create routing engine", zap.Error(err))
	}

	if _, err := routingEngine.Warmup(context.Background()); err != nil {
		logger.Fatal("failed to load road network", zap.Error(err))
	}

	m := metrics.NewMetrics()
	routingService := usecases.NewRoutingService(logger, routingEngine, m, viper.GetDuration("API_TIMEOUT"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Evacuation Routing Engine Server Started",
		zap.String("roads", viper.GetString("ROAD_NETWORK_PATH")),
		zap.String("flood_zones", viper.GetString("FLOOD_ZONES_PATH")))

	api := http.NewServer(logger)
	err = api.Use(ctx, viper.GetBool("USE_RATE_LIMIT"), routingService, m)
	if err != nil && ctx.Err() == nil {
		logger.Error("server stopped", zap.Error(err))
		return
	}
	logger.Info("Evacuation Routing Engine Server Stopped")
}
