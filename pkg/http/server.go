package http

import (
	"context"

	http_router "github.com/lintang-b-s/evacroute/pkg/http/router"
	"github.com/lintang-b-s/evacroute/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/evacroute/pkg/http/server"
	"github.com/lintang-b-s/evacroute/pkg/metrics"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Server struct {
	Log *zap.Logger
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log}
}

// Use serves the API until ctx is canceled or the listener fails.
func (s *Server) Use(
	ctx context.Context,
	useRateLimit bool,
	routingService controllers.RoutingService,
	m *metrics.Metrics,
) error {
	config := http_server.Config{
		Port:    viper.GetInt("API_PORT"),
		Timeout: viper.GetDuration("API_TIMEOUT"),
	}

	api := http_router.NewAPI(s.Log, m)
	return api.Run(ctx, config, useRateLimit, routingService)
}
