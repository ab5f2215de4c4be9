package datastructure

import (
	"errors"
	"strings"

	"github.com/lintang-b-s/evacroute/pkg/geo"
	"github.com/lintang-b-s/evacroute/pkg/util"
	"github.com/paulmach/orb"
)

var ErrInvalidSegment = errors.New("invalid road segment")

const MIN_SEGMENT_COORDINATES = 2

// RoadSegment is an immutable road polyline. Marking it hazardous yields a new value.
type RoadSegment struct {
	id           string
	coordinates  []geo.Coordinate
	lengthMeters float64
	oneway       bool
	hazardous    bool
}

func NewRoadSegment(id string, coordinates []geo.Coordinate, oneway bool) (*RoadSegment, error) {
	if strings.TrimSpace(id) == "" {
		return nil, util.WrapErrorf(ErrInvalidSegment, util.ErrBadParamInput, "segment id cannot be blank")
	}
	if len(coordinates) < MIN_SEGMENT_COORDINATES {
		return nil, util.WrapErrorf(ErrInvalidSegment, util.ErrBadParamInput,
			"segment %s must have at least %d points, got: %d", id, MIN_SEGMENT_COORDINATES, len(coordinates))
	}

	coords := make([]geo.Coordinate, len(coordinates))
	copy(coords, coordinates)

	length := 0.0
	for i := 0; i+1 < len(coords); i++ {
		length += coords[i].DistanceTo(coords[i+1])
	}

	return &RoadSegment{
		id:           id,
		coordinates:  coords,
		lengthMeters: length,
		oneway:       oneway,
	}, nil
}

func (s *RoadSegment) WithHazardous(hazardous bool) *RoadSegment {
	if s.hazardous == hazardous {
		return s
	}
	cp := *s
	cp.hazardous = hazardous
	return &cp
}

func (s *RoadSegment) GetID() string {
	return s.id
}

// GetCoordinates returns a copy of the polyline.
func (s *RoadSegment) GetCoordinates() []geo.Coordinate {
	coords := make([]geo.Coordinate, len(s.coordinates))
	copy(coords, s.coordinates)
	return coords
}

func (s *RoadSegment) GetStart() geo.Coordinate {
	return s.coordinates[0]
}

func (s *RoadSegment) GetEnd() geo.Coordinate {
	return s.coordinates[len(s.coordinates)-1]
}

func (s *RoadSegment) GetLengthMeters() float64 {
	return s.lengthMeters
}

func (s *RoadSegment) IsOneway() bool {
	return s.oneway
}

func (s *RoadSegment) IsHazardous() bool {
	return s.hazardous
}

// LineString. segment geometry in lon/lat order.
func (s *RoadSegment) LineString() orb.LineString {
	ls := make(orb.LineString, 0, len(s.coordinates))
	for _, c := range s.coordinates {
		ls = append(ls, orb.Point{c.GetLon(), c.GetLat()})
	}
	return ls
}
