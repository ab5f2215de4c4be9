package routing

import (
	"testing"

	da "github.com/lintang-b-s/evacroute/pkg/datastructure"
	"github.com/lintang-b-s/evacroute/pkg/geo"
	"github.com/lintang-b-s/evacroute/pkg/hazard"
	"github.com/lintang-b-s/evacroute/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seg(t *testing.T, id string, oneway bool, coords ...[2]float64) *da.RoadSegment {
	t.Helper()
	cs := make([]geo.Coordinate, 0, len(coords))
	for _, c := range coords {
		cs = append(cs, geo.MustCoordinate(c[0], c[1]))
	}
	s, err := da.NewRoadSegment(id, cs, oneway)
	require.NoError(t, err)
	return s
}

func network(t *testing.T, segments ...*da.RoadSegment) *da.RoadNetwork {
	t.Helper()
	rn, err := da.BuildRoadNetwork(segments)
	require.NoError(t, err)
	return rn
}

func segmentIDs(r *da.Route) []string {
	ids := make([]string, 0)
	for _, s := range r.GetSegments() {
		ids = append(ids, s.GetID())
	}
	return ids
}

func TestCalculateRouteEndToEnd(t *testing.T) {
	rn := network(t,
		seg(t, "segment-1", false, [2]float64{52.0, 21.0}, [2]float64{52.1, 21.1}),
		seg(t, "segment-2", false, [2]float64{52.1, 21.1}, [2]float64{52.2, 21.2}),
	)
	rs := NewRouteCalculationService(zap.NewNop())

	route, err := rs.CalculateRoute(rn, geo.MustCoordinate(52.0, 21.0), geo.MustCoordinate(52.2, 21.2))
	require.NoError(t, err)

	assert.Equal(t, []string{"segment-1", "segment-2"}, segmentIDs(route))
	md := route.GetMetadata()
	assert.Greater(t, md.GetDistanceMeters(), 0.0)
	assert.Equal(t, 1.0, md.GetSafetyScore())
	assert.Equal(t, 0, md.GetHazardousSegments())
	assert.False(t, md.IsAllPathsHazardous())
	assert.False(t, md.GetTimestamp().IsZero())

	coords := route.Coordinates()
	require.Len(t, coords, 3)
	assert.Equal(t, 52.2, coords[2].GetLat())
}

func TestCalculateRouteReverseDirection(t *testing.T) {
	rn := network(t,
		seg(t, "segment-1", false, [2]float64{52.0, 21.0}, [2]float64{52.1, 21.1}),
		seg(t, "segment-2", false, [2]float64{52.1, 21.1}, [2]float64{52.2, 21.2}),
	)
	rs := NewRouteCalculationService(zap.NewNop())

	route, err := rs.CalculateRoute(rn, geo.MustCoordinate(52.2, 21.2), geo.MustCoordinate(52.0, 21.0))
	require.NoError(t, err)
	assert.Equal(t, []string{"segment-2", "segment-1"}, segmentIDs(route))

	coords := route.Coordinates()
	require.Len(t, coords, 3)
	assert.Equal(t, 52.2, coords[0].GetLat())
	assert.Equal(t, 52.1, coords[1].GetLat())
	assert.Equal(t, 52.0, coords[2].GetLat())
}

func TestCalculateRouteSameNode(t *testing.T) {
	rn := network(t, seg(t, "segment-1", false, [2]float64{52.0, 21.0}, [2]float64{52.1, 21.1}))
	rs := NewRouteCalculationService(zap.NewNop())

	// both snap to the 52.0,21.0 node
	route, err := rs.CalculateRoute(rn, geo.MustCoordinate(52.0, 21.0), geo.MustCoordinate(52.001, 21.001))
	require.NoError(t, err)

	assert.True(t, route.IsEmpty())
	md := route.GetMetadata()
	assert.Equal(t, 0.0, md.GetDistanceMeters())
	assert.Equal(t, 1.0, md.GetSafetyScore())
	assert.Equal(t, 0, md.GetHazardousSegments())
	assert.False(t, md.IsAllPathsHazardous())
	assert.False(t, md.GetTimestamp().IsZero())
}

func TestCalculateRouteNotFound(t *testing.T) {
	testCases := []struct {
		name     string
		segments func(t *testing.T) []*da.RoadSegment
		start    geo.Coordinate
		end      geo.Coordinate
	}{
		{
			name: "disconnected components",
			segments: func(t *testing.T) []*da.RoadSegment {
				return []*da.RoadSegment{
					seg(t, "a", false, [2]float64{52.0, 21.0}, [2]float64{52.1, 21.1}),
					seg(t, "b", false, [2]float64{53.0, 22.0}, [2]float64{53.1, 22.1}),
				}
			},
			start: geo.MustCoordinate(52.0, 21.0),
			end:   geo.MustCoordinate(53.1, 22.1),
		},
		{
			name: "against oneway",
			segments: func(t *testing.T) []*da.RoadSegment {
				return []*da.RoadSegment{
					seg(t, "a", true, [2]float64{52.0, 21.0}, [2]float64{52.1, 21.1}),
				}
			},
			start: geo.MustCoordinate(52.1, 21.1),
			end:   geo.MustCoordinate(52.0, 21.0),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rs := NewRouteCalculationService(zap.NewNop())
			_, err := rs.CalculateRoute(network(t, tc.segments(t)...), tc.start, tc.end)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrRouteNotFound)
			assert.Equal(t, util.ErrNotFound, util.ErrorCode(err))
			assert.Equal(t, "no route available between specified points", err.Error())
		})
	}
}

func TestCalculateRouteAvoidsHazard(t *testing.T) {
	// direct A-B is ~1.1 km and hazardous, detour A-C-B is ~3.1 km
	direct := seg(t, "direct", false, [2]float64{0.0, 0.0}, [2]float64{0.0, 0.01}).WithHazardous(true)
	detour1 := seg(t, "detour-1", false, [2]float64{0.0, 0.0}, [2]float64{0.01, 0.005})
	detour2 := seg(t, "detour-2", false, [2]float64{0.01, 0.005}, [2]float64{0.0, 0.01})

	rs := NewRouteCalculationService(zap.NewNop())
	route, err := rs.CalculateRoute(network(t, direct, detour1, detour2),
		geo.MustCoordinate(0.0, 0.0), geo.MustCoordinate(0.0, 0.01))
	require.NoError(t, err)

	assert.Equal(t, []string{"detour-1", "detour-2"}, segmentIDs(route))
	assert.Equal(t, 1.0, route.GetMetadata().GetSafetyScore())
	assert.Equal(t, 0, route.GetMetadata().GetHazardousSegments())
}

func TestCalculateRoutePrefersShortHazardOverHugeDetour(t *testing.T) {
	// hazardous edge ~1.1 m, safe detour ~22 km (> 10,000x)
	direct := seg(t, "direct", false, [2]float64{0.0, 0.0}, [2]float64{0.0, 0.00001}).WithHazardous(true)
	detour1 := seg(t, "detour-1", false, [2]float64{0.0, 0.0}, [2]float64{0.1, 0.0})
	detour2 := seg(t, "detour-2", false, [2]float64{0.1, 0.0}, [2]float64{0.0, 0.00001})

	rs := NewRouteCalculationService(zap.NewNop())
	route, err := rs.CalculateRoute(network(t, direct, detour1, detour2),
		geo.MustCoordinate(0.0, 0.0), geo.MustCoordinate(0.0, 0.00001))
	require.NoError(t, err)

	assert.Equal(t, []string{"direct"}, segmentIDs(route))
	assert.True(t, route.GetMetadata().IsAllPathsHazardous())
}

func TestCalculateRouteOnlyHazardousPath(t *testing.T) {
	rn := network(t,
		seg(t, "a", false, [2]float64{52.0, 21.0}, [2]float64{52.1, 21.1}).WithHazardous(true),
		seg(t, "b", false, [2]float64{52.1, 21.1}, [2]float64{52.2, 21.2}).WithHazardous(true),
	)
	rs := NewRouteCalculationService(zap.NewNop())

	route, err := rs.CalculateRoute(rn, geo.MustCoordinate(52.0, 21.0), geo.MustCoordinate(52.2, 21.2))
	require.NoError(t, err)

	md := route.GetMetadata()
	assert.Equal(t, []string{"a", "b"}, segmentIDs(route))
	assert.True(t, md.IsAllPathsHazardous())
	assert.Equal(t, 0.0, md.GetSafetyScore())
	assert.Equal(t, 2, md.GetHazardousSegments())
}

func TestCalculateRoutePartiallyHazardous(t *testing.T) {
	rn := network(t,
		seg(t, "a", false, [2]float64{52.0, 21.0}, [2]float64{52.1, 21.1}),
		seg(t, "b", false, [2]float64{52.1, 21.1}, [2]float64{52.2, 21.2}).WithHazardous(true),
	)
	rs := NewRouteCalculationService(zap.NewNop())

	route, err := rs.CalculateRoute(rn, geo.MustCoordinate(52.0, 21.0), geo.MustCoordinate(52.2, 21.2))
	require.NoError(t, err)

	md := route.GetMetadata()
	assert.Equal(t, 0.5, md.GetSafetyScore())
	assert.Equal(t, 1, md.GetHazardousSegments())
	assert.False(t, md.IsAllPathsHazardous())
}

func TestCalculateRouteWithDetectedFloodZone(t *testing.T) {
	direct := seg(t, "direct", false, [2]float64{0.0, 0.0}, [2]float64{0.0, 0.01})
	detour1 := seg(t, "detour-1", false, [2]float64{0.0, 0.0}, [2]float64{0.01, 0.005})
	detour2 := seg(t, "detour-2", false, [2]float64{0.01, 0.005}, [2]float64{0.0, 0.01})
	base := network(t, direct, detour1, detour2)

	zone, err := da.NewFloodZone("flood", [][]geo.Coordinate{{
		geo.MustCoordinate(-0.001, 0.004),
		geo.MustCoordinate(-0.001, 0.006),
		geo.MustCoordinate(0.001, 0.006),
		geo.MustCoordinate(0.001, 0.004),
	}}, nil, nil)
	require.NoError(t, err)

	flooded := base.ApplyFloodZones([]*da.FloodZone{zone}, hazard.NewRtreeDetector(zap.NewNop(), 1))
	rs := NewRouteCalculationService(zap.NewNop())

	route, err := rs.CalculateRoute(flooded, geo.MustCoordinate(0.0, 0.0), geo.MustCoordinate(0.0, 0.01))
	require.NoError(t, err)
	assert.Equal(t, []string{"detour-1", "detour-2"}, segmentIDs(route))

	// the base network is unchanged and still routes through the direct road
	route, err = rs.CalculateRoute(base, geo.MustCoordinate(0.0, 0.0), geo.MustCoordinate(0.0, 0.01))
	require.NoError(t, err)
	assert.Equal(t, []string{"direct"}, segmentIDs(route))
}

func TestCalculateRouteInconsistentNetwork(t *testing.T) {
	a := seg(t, "a", false, [2]float64{52.0, 21.0}, [2]float64{52.1, 21.1})
	ghost := seg(t, "ghost", false, [2]float64{52.1, 21.1}, [2]float64{52.2, 21.2})

	graph := da.NewGraphBuilder().Build([]*da.RoadSegment{a, ghost})
	rn, err := da.NewRoadNetwork([]*da.RoadSegment{a}, graph)
	require.NoError(t, err)

	rs := NewRouteCalculationService(zap.NewNop())
	_, err = rs.CalculateRoute(rn, geo.MustCoordinate(52.0, 21.0), geo.MustCoordinate(52.2, 21.2))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInconsistentNetwork)
	assert.Equal(t, util.ErrInternalServerError, util.ErrorCode(err))
}
