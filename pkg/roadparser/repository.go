package roadparser

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/lintang-b-s/evacroute/pkg/datastructure"
	"github.com/lintang-b-s/evacroute/pkg/osmparser"
	"github.com/lintang-b-s/evacroute/pkg/util"
	"go.uber.org/zap"
)

type roadCacheKey struct {
	path    string
	modTime int64
	size    int64
}

// RoadRepository loads road segments from a GeoJSON or .osm.pbf file. Parsed segments are
// cached by path, modification time and size, so an edited file is parsed again.
type RoadRepository struct {
	path   string
	logger *zap.Logger
	cache  *lru.Cache[roadCacheKey, []*datastructure.RoadSegment]
}

func NewRoadRepository(path string, cacheSize int, logger *zap.Logger) (*RoadRepository, error) {
	if cacheSize < 1 {
		cacheSize = 1
	}
	cache, err := lru.New[roadCacheKey, []*datastructure.RoadSegment](cacheSize)
	if err != nil {
		return nil, err
	}
	return &RoadRepository{path: path, logger: logger, cache: cache}, nil
}

func (r *RoadRepository) Load(ctx context.Context) ([]*datastructure.RoadSegment, error) {
	info, err := os.Stat(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, util.WrapErrorf(ErrNoRoadSegments, util.ErrInternalServerError, "road network file not found: %s", r.path)
		}
		return nil, util.WrapErrorf(err, util.ErrInternalServerError, "failed to stat road network file: %s", r.path)
	}

	key := roadCacheKey{path: r.path, modTime: info.ModTime().UnixNano(), size: info.Size()}
	if segments, ok := r.cache.Get(key); ok {
		return segments, nil
	}

	r.logger.Info("[DATA_LOAD] Loading road network", zap.String("path", r.path))
	start := time.Now()

	var segments []*datastructure.RoadSegment
	if strings.HasSuffix(r.path, ".pbf") {
		segments, err = osmparser.NewOSMParser(r.logger).Parse(ctx, r.path)
	} else {
		var data []byte
		data, err = os.ReadFile(r.path)
		if err == nil {
			segments, err = ParseRoads(data, r.logger)
		}
	}
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrInternalServerError, "failed to load road network from: %s", r.path)
	}
	if len(segments) == 0 {
		return nil, util.WrapErrorf(ErrNoRoadSegments, util.ErrInternalServerError, "no valid road segments found in: %s", r.path)
	}

	r.cache.Add(key, segments)
	r.logger.Info("[DATA_LOAD] Loaded road network",
		zap.Int("segments", len(segments)),
		zap.Duration("took", time.Since(start)))
	return segments, nil
}

// FloodZoneRepository loads flood zones from a GeoJSON file on every call. A missing or
// unreadable file means no flood zones.
type FloodZoneRepository struct {
	path   string
	logger *zap.Logger
}

func NewFloodZoneRepository(path string, logger *zap.Logger) *FloodZoneRepository {
	return &FloodZoneRepository{path: path, logger: logger}
}

// LoadActiveAt returns the zones valid at t.
func (r *FloodZoneRepository) LoadActiveAt(ctx context.Context, t time.Time) ([]*datastructure.FloodZone, error) {
	r.logger.Info("[DATA_LOAD] Loading flood zones", zap.String("path", r.path))
	start := time.Now()

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.logger.Warn("flood zones file not found, assuming no flood zones", zap.String("path", r.path))
		} else {
			r.logger.Error("failed to read flood zones", zap.String("path", r.path), zap.Error(err))
		}
		return []*datastructure.FloodZone{}, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	zones, err := ParseFloodZones(data, r.logger)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrInternalServerError, "failed to load flood zones from: %s", r.path)
	}

	active := make([]*datastructure.FloodZone, 0, len(zones))
	for _, z := range zones {
		if z.IsValidAt(t) {
			active = append(active, z)
		}
	}

	r.logger.Info("[DATA_LOAD] Loaded flood zones",
		zap.Int("zones", len(zones)),
		zap.Int("active", len(active)),
		zap.Time("at", t),
		zap.Duration("took", time.Since(start)))
	return active, nil
}
