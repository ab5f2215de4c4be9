package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/lintang-b-s/evacroute/pkg/http/router/controllers"
	router_helper "github.com/lintang-b-s/evacroute/pkg/http/router/routerhelper"
	http_server "github.com/lintang-b-s/evacroute/pkg/http/server"
	"github.com/lintang-b-s/evacroute/pkg/metrics"
	"github.com/rs/cors"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type API struct {
	log     *zap.Logger
	metrics *metrics.Metrics
}

func NewAPI(log *zap.Logger, m *metrics.Metrics) *API {
	return &API{log: log, metrics: m}
}

// Handler wires the routes and the middleware chain.
func (api *API) Handler(useRateLimit bool, routingService controllers.RoutingService) http.Handler {
	router := httprouter.New()

	corsHandler := cors.New(cors.Options{ //nolint:gocritic // ignore
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, //nolint:mnd // ignore
	})

	router.GET("/doc/*any", swaggerHandler)

	if api.metrics != nil {
		router.Handler(http.MethodGet, "/metrics", api.metrics.Handler())
	}

	group := router_helper.NewRouteGroup(router, "/api")

	evacRoutes := controllers.New(routingService, api.log)
	evacRoutes.Routes(group)

	trustedProxies, invalid := ParseTrustedProxies(viper.GetStringSlice("TRUSTED_PROXIES"))
	if len(invalid) > 0 {
		api.log.Warn("ignoring invalid trusted proxies", zap.Strings("entries", invalid))
	}

	mwChain := []alice.Constructor{corsHandler.Handler, EnforceJSONHandler, api.recoverPanic,
		RealIP(trustedProxies), Heartbeat("healthz"), Logger(api.log)}
	if useRateLimit {
		mwChain = append(mwChain, Limit(viper.GetFloat64("RATE_LIMIT_RPS"), viper.GetInt("RATE_LIMIT_BURST")))
	}
	if api.metrics != nil {
		mwChain = append(mwChain, api.metrics.PromeHttpMiddleware(routeLabel(router)))
	}
	return alice.New(mwChain...).Then(router)
}

// routeLabel maps a request to the template of the route it matches, or metrics.OtherPath.
func routeLabel(router *httprouter.Router) func(r *http.Request) string {
	return func(r *http.Request) string {
		handle, ps, _ := router.Lookup(r.Method, r.URL.Path)
		if handle == nil {
			return metrics.OtherPath
		}
		label := r.URL.Path
		for _, p := range ps {
			if strings.HasPrefix(p.Value, "/") {
				label = strings.TrimSuffix(label, p.Value) + "/*" + p.Key
				continue
			}
			label = strings.Replace(label, "/"+p.Value, "/:"+p.Key, 1)
		}
		return label
	}
}

func (api *API) Run(
	ctx context.Context,
	config http_server.Config,
	useRateLimit bool,
	routingService controllers.RoutingService,
) error {
	api.log.Info("Run httprouter API")

	srv := http_server.New(ctx, api.Handler(useRateLimit, routingService), config)
	api.log.Info(fmt.Sprintf("API run on port %d", config.Port))

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		api.log.Error("HTTP server stopped", zap.Error(err))
		return err
	case <-ctx.Done():
		api.log.Info("Context canceled, shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), viper.GetDuration("HTTP_SERVER_SHUTDOWN_TIMEOUT"))
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	}
}
