package datastructure

import (
	"errors"
	"strings"
	"time"

	"github.com/lintang-b-s/evacroute/pkg/geo"
	"github.com/lintang-b-s/evacroute/pkg/util"
	"github.com/paulmach/orb"
)

var ErrInvalidFloodZone = errors.New("invalid flood zone")

const MIN_RING_POINTS = 3

// FloodZone is a hazard polygon. rings[0] is the outer boundary, the rest are holes.
// A nil validFrom/validUntil leaves that side of the validity window open.
type FloodZone struct {
	id         string
	rings      [][]geo.Coordinate
	validFrom  *time.Time
	validUntil *time.Time
	polygon    orb.Polygon
}

func NewFloodZone(id string, rings [][]geo.Coordinate, validFrom, validUntil *time.Time) (*FloodZone, error) {
	if strings.TrimSpace(id) == "" {
		return nil, util.WrapErrorf(ErrInvalidFloodZone, util.ErrBadParamInput, "flood zone id cannot be blank")
	}
	if len(rings) == 0 {
		return nil, util.WrapErrorf(ErrInvalidFloodZone, util.ErrBadParamInput,
			"flood zone %s must have at least one polygon ring", id)
	}
	if validFrom != nil && validUntil != nil && validUntil.Before(*validFrom) {
		return nil, util.WrapErrorf(ErrInvalidFloodZone, util.ErrBadParamInput,
			"flood zone %s validUntil is before validFrom", id)
	}

	cpRings := make([][]geo.Coordinate, len(rings))
	polygon := make(orb.Polygon, len(rings))
	for i, ring := range rings {
		if len(ring) < MIN_RING_POINTS {
			return nil, util.WrapErrorf(ErrInvalidFloodZone, util.ErrBadParamInput,
				"polygon ring %d of flood zone %s must have at least %d points, got: %d", i, id, MIN_RING_POINTS, len(ring))
		}
		cpRings[i] = make([]geo.Coordinate, len(ring))
		copy(cpRings[i], ring)

		orbRing := make(orb.Ring, 0, len(ring))
		for _, c := range ring {
			orbRing = append(orbRing, orb.Point{c.GetLon(), c.GetLat()})
		}
		polygon[i] = orbRing
	}

	return &FloodZone{
		id:         id,
		rings:      cpRings,
		validFrom:  copyTime(validFrom),
		validUntil: copyTime(validUntil),
		polygon:    polygon,
	}, nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	cp := *t
	return &cp
}

func (z *FloodZone) GetID() string {
	return z.id
}

func (z *FloodZone) GetRings() [][]geo.Coordinate {
	rings := make([][]geo.Coordinate, len(z.rings))
	for i, r := range z.rings {
		rings[i] = make([]geo.Coordinate, len(r))
		copy(rings[i], r)
	}
	return rings
}

func (z *FloodZone) GetValidFrom() *time.Time {
	return copyTime(z.validFrom)
}

func (z *FloodZone) GetValidUntil() *time.Time {
	return copyTime(z.validUntil)
}

// IsValidAt. t within [validFrom, validUntil], both bounds inclusive and optional.
func (z *FloodZone) IsValidAt(t time.Time) bool {
	if z.validFrom == nil && z.validUntil == nil {
		return true
	}
	afterStart := z.validFrom == nil || !t.Before(*z.validFrom)
	beforeEnd := z.validUntil == nil || !t.After(*z.validUntil)
	return afterStart && beforeEnd
}

// Polygon. zone geometry in lon/lat order. Callers must not modify it.
func (z *FloodZone) Polygon() orb.Polygon {
	return z.polygon
}

func (z *FloodZone) Bound() orb.Bound {
	return z.polygon.Bound()
}
