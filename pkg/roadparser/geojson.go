package roadparser

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lintang-b-s/evacroute/pkg/datastructure"
	"github.com/lintang-b-s/evacroute/pkg/geo"
	"github.com/lintang-b-s/evacroute/pkg/util"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

const (
	PROPERTY_ONEWAY      = "oneway"
	PROPERTY_ID          = "id"
	PROPERTY_VALID_FROM  = "validFrom"
	PROPERTY_VALID_UNTIL = "validUntil"
)

var ErrNoRoadSegments = errors.New("no valid road segments found")

// ParseRoads converts a GeoJSON FeatureCollection into road segments. A LineString feature
// yields one segment, a MultiLineString yields one per part with id <featureID>_<i>.
// Other geometry types are skipped.
func ParseRoads(data []byte, logger *zap.Logger) ([]*datastructure.RoadSegment, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "invalid road network geojson")
	}

	segments := make([]*datastructure.RoadSegment, 0, len(fc.Features))
	for i, f := range fc.Features {
		if f.Geometry == nil {
			continue
		}
		id := featureID(f, i)
		oneway := parseBoolean(f.Properties[PROPERTY_ONEWAY])

		switch g := f.Geometry.(type) {
		case orb.LineString:
			s, err := newSegment(id, g, oneway)
			if err != nil {
				return nil, err
			}
			segments = append(segments, s)
		case orb.MultiLineString:
			for j, ls := range g {
				s, err := newSegment(fmt.Sprintf("%s_%d", id, j), ls, oneway)
				if err != nil {
					return nil, err
				}
				segments = append(segments, s)
			}
		default:
			logger.Warn("unsupported road geometry type", zap.String("type", f.Geometry.GeoJSONType()),
				zap.String("featureID", id))
		}
	}
	return segments, nil
}

// ParseFloodZones converts a GeoJSON FeatureCollection into flood zones. A Polygon feature
// yields one zone, a MultiPolygon yields one per polygon with id <featureID>_<i>.
// validFrom/validUntil are RFC3339 instants.
func ParseFloodZones(data []byte, logger *zap.Logger) ([]*datastructure.FloodZone, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "invalid flood zone geojson")
	}

	zones := make([]*datastructure.FloodZone, 0, len(fc.Features))
	for i, f := range fc.Features {
		if f.Geometry == nil {
			continue
		}
		id := featureID(f, i)

		validFrom, err := parseInstant(f.Properties[PROPERTY_VALID_FROM])
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrBadParamInput, "flood zone %s has invalid %s", id, PROPERTY_VALID_FROM)
		}
		validUntil, err := parseInstant(f.Properties[PROPERTY_VALID_UNTIL])
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrBadParamInput, "flood zone %s has invalid %s", id, PROPERTY_VALID_UNTIL)
		}

		switch g := f.Geometry.(type) {
		case orb.Polygon:
			z, err := newFloodZone(id, g, validFrom, validUntil)
			if err != nil {
				return nil, err
			}
			zones = append(zones, z)
		case orb.MultiPolygon:
			for j, p := range g {
				z, err := newFloodZone(fmt.Sprintf("%s_%d", id, j), p, validFrom, validUntil)
				if err != nil {
					return nil, err
				}
				zones = append(zones, z)
			}
		default:
			logger.Warn("unsupported flood zone geometry type", zap.String("type", f.Geometry.GeoJSONType()),
				zap.String("featureID", id))
		}
	}
	return zones, nil
}

// featureID prefers the feature id, then an "id" property, then the feature position.
func featureID(f *geojson.Feature, i int) string {
	if f.ID != nil {
		if id := strings.TrimSpace(fmt.Sprint(f.ID)); id != "" {
			return id
		}
	}
	if v, ok := f.Properties[PROPERTY_ID]; ok && v != nil {
		if id := strings.TrimSpace(fmt.Sprint(v)); id != "" {
			return id
		}
	}
	return fmt.Sprintf("feature-%d", i)
}

func parseBoolean(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case float64:
		return val == 1
	case string:
		s := strings.TrimSpace(val)
		return strings.EqualFold(s, "yes") || strings.EqualFold(s, "true") || s == "1"
	default:
		return false
	}
}

func parseInstant(v interface{}) (*time.Time, error) {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(s))
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func newSegment(id string, ls orb.LineString, oneway bool) (*datastructure.RoadSegment, error) {
	coords, err := pointsToCoords(ls)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "road %s: %s", id, err.Error())
	}
	return datastructure.NewRoadSegment(id, coords, oneway)
}

func newFloodZone(id string, p orb.Polygon, validFrom, validUntil *time.Time) (*datastructure.FloodZone, error) {
	rings := make([][]geo.Coordinate, 0, len(p))
	for _, r := range p {
		coords, err := pointsToCoords(r)
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrBadParamInput, "flood zone %s: %s", id, err.Error())
		}
		rings = append(rings, coords)
	}
	return datastructure.NewFloodZone(id, rings, validFrom, validUntil)
}

// pointsToCoords converts lon/lat points.
func pointsToCoords(points []orb.Point) ([]geo.Coordinate, error) {
	coords := make([]geo.Coordinate, 0, len(points))
	for _, p := range points {
		c, err := geo.NewCoordinate(p.Lat(), p.Lon())
		if err != nil {
			return nil, err
		}
		coords = append(coords, c)
	}
	return coords, nil
}
