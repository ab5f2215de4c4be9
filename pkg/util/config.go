package util

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/lintang-b-s/evacroute/pkg"
	"github.com/spf13/viper"
)

func SetConfigDefaults() {
	viper.SetDefault("API_PORT", 6060)
	viper.SetDefault("API_TIMEOUT", "30s")
	viper.SetDefault("HTTP_SERVER_READ_TIMEOUT", "10s")
	viper.SetDefault("HTTP_SERVER_WRITE_TIMEOUT", "10s")
	viper.SetDefault("HTTP_SERVER_IDLE_TIMEOUT", "60s")
	viper.SetDefault("HTTP_SERVER_READ_HEADER_TIMEOUT", "5s")
	viper.SetDefault("HTTP_SERVER_SHUTDOWN_TIMEOUT", "10s")

	viper.SetDefault("ROAD_NETWORK_PATH", "./data/roads.geojson")
	viper.SetDefault("FLOOD_ZONES_PATH", "./data/flood_zones.geojson")
	viper.SetDefault("MAX_ROUTE_DISTANCE_METERS", pkg.MAX_ROUTE_DISTANCE_METERS)
	viper.SetDefault("HAZARD_DETECTION_WORKERS", runtime.NumCPU())
	viper.SetDefault("HAZARD_PENALTY_FACTOR", pkg.HAZARD_PENALTY_FACTOR)
	viper.SetDefault("ROAD_CACHE_SIZE", 8)

	viper.SetDefault("USE_RATE_LIMIT", false)
	viper.SetDefault("RATE_LIMIT_RPS", 20.0)
	viper.SetDefault("RATE_LIMIT_BURST", 40)
	viper.SetDefault("TRUSTED_PROXIES", []string{})

	viper.SetDefault("LOG_LEVEL", "info")
}

// ReadConfig loads config.yaml from configDir on top of the defaults. Environment variables
// override both. A missing config file is not an error.
func ReadConfig(configDir string) error {
	SetConfigDefaults()
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}
