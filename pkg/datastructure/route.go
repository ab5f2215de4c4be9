package datastructure

import (
	"errors"
	"math"
	"time"

	"github.com/lintang-b-s/evacroute/pkg/geo"
	"github.com/lintang-b-s/evacroute/pkg/util"
)

var ErrInvalidMetadata = errors.New("invalid route metadata")

type RouteMetadata struct {
	distanceMeters    float64
	computationTime   time.Duration
	hazardousSegments int
	safetyScore       float64
	timestamp         time.Time
	allPathsHazardous bool
}

func NewRouteMetadata(distanceMeters float64, computationTime time.Duration, hazardousSegments int,
	safetyScore float64, timestamp time.Time, allPathsHazardous bool) (RouteMetadata, error) {
	if distanceMeters < 0 || math.IsNaN(distanceMeters) {
		return RouteMetadata{}, util.WrapErrorf(ErrInvalidMetadata, util.ErrBadParamInput, "distance cannot be negative, got: %f", distanceMeters)
	}
	if computationTime < 0 {
		return RouteMetadata{}, util.WrapErrorf(ErrInvalidMetadata, util.ErrBadParamInput, "computation time cannot be negative, got: %v", computationTime)
	}
	if hazardousSegments < 0 {
		return RouteMetadata{}, util.WrapErrorf(ErrInvalidMetadata, util.ErrBadParamInput, "hazardous segment count cannot be negative, got: %d", hazardousSegments)
	}
	if safetyScore < 0 || safetyScore > 1 || math.IsNaN(safetyScore) {
		return RouteMetadata{}, util.WrapErrorf(ErrInvalidMetadata, util.ErrBadParamInput, "safety score must be within [0, 1], got: %f", safetyScore)
	}
	if timestamp.IsZero() {
		return RouteMetadata{}, util.WrapErrorf(ErrInvalidMetadata, util.ErrBadParamInput, "timestamp is required")
	}
	return RouteMetadata{
		distanceMeters:    distanceMeters,
		computationTime:   computationTime,
		hazardousSegments: hazardousSegments,
		safetyScore:       safetyScore,
		timestamp:         timestamp,
		allPathsHazardous: allPathsHazardous,
	}, nil
}

func (m RouteMetadata) GetDistanceMeters() float64 {
	return m.distanceMeters
}

func (m RouteMetadata) GetComputationTime() time.Duration {
	return m.computationTime
}

func (m RouteMetadata) GetHazardousSegments() int {
	return m.hazardousSegments
}

func (m RouteMetadata) GetSafetyScore() float64 {
	return m.safetyScore
}

func (m RouteMetadata) GetTimestamp() time.Time {
	return m.timestamp
}

func (m RouteMetadata) IsAllPathsHazardous() bool {
	return m.allPathsHazardous
}

// Route is an ordered list of traversed segments. forward[i] is false when segment i was
// traversed from its end point to its start point.
type Route struct {
	segments []*RoadSegment
	forward  []bool
	metadata RouteMetadata
}

func NewRoute(segments []*RoadSegment, forward []bool, metadata RouteMetadata) *Route {
	segs := make([]*RoadSegment, len(segments))
	copy(segs, segments)

	fw := make([]bool, len(segments))
	for i := range fw {
		fw[i] = true
		if i < len(forward) {
			fw[i] = forward[i]
		}
	}
	return &Route{segments: segs, forward: fw, metadata: metadata}
}

func (r *Route) GetSegments() []*RoadSegment {
	segs := make([]*RoadSegment, len(r.segments))
	copy(segs, r.segments)
	return segs
}

func (r *Route) GetMetadata() RouteMetadata {
	return r.metadata
}

func (r *Route) IsEmpty() bool {
	return len(r.segments) == 0
}

// Coordinates returns the route geometry in travel order. Shared joint points between
// consecutive segments appear once.
func (r *Route) Coordinates() []geo.Coordinate {
	coords := make([]geo.Coordinate, 0)
	for i, s := range r.segments {
		segCoords := s.GetCoordinates()
		if !r.forward[i] {
			segCoords = util.ReverseG(segCoords)
		}
		if len(coords) > 0 && coords[len(coords)-1].Equal(segCoords[0]) {
			segCoords = segCoords[1:]
		}
		coords = append(coords, segCoords...)
	}
	return coords
}
