package datastructure

import (
	"testing"

	"github.com/lintang-b-s/evacroute/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedDetector struct {
	ids   []string
	calls int
}

func (d *fixedDetector) DetectHazardousSegments(segments []*RoadSegment, zones []*FloodZone) map[string]struct{} {
	d.calls++
	out := make(map[string]struct{}, len(d.ids))
	for _, id := range d.ids {
		out[id] = struct{}{}
	}
	return out
}

func twoSegmentNetwork(t *testing.T) *RoadNetwork {
	t.Helper()
	rn, err := BuildRoadNetwork([]*RoadSegment{
		newTestSegment(t, "a", false, [2]float64{52.0, 21.0}, [2]float64{52.1, 21.1}),
		newTestSegment(t, "b", false, [2]float64{52.1, 21.1}, [2]float64{52.2, 21.2}),
	})
	require.NoError(t, err)
	return rn
}

func TestNewRoadNetwork(t *testing.T) {
	_, err := BuildRoadNetwork(nil)
	assert.ErrorIs(t, err, ErrInvalidRoadNetwork)

	dup := []*RoadSegment{
		newTestSegment(t, "a", false, [2]float64{52.0, 21.0}, [2]float64{52.1, 21.1}),
		newTestSegment(t, "a", false, [2]float64{52.1, 21.1}, [2]float64{52.2, 21.2}),
	}
	_, err = BuildRoadNetwork(dup)
	assert.ErrorIs(t, err, ErrInvalidRoadNetwork)

	rn := twoSegmentNetwork(t)
	assert.Equal(t, 2, rn.NumberOfSegments())
	segs := rn.GetSegments()
	assert.Equal(t, "a", segs[0].GetID())
	assert.Equal(t, "b", segs[1].GetID())
}

func TestApplyFloodZones(t *testing.T) {
	t.Run("flags segments and graph edges without touching receiver", func(t *testing.T) {
		rn := twoSegmentNetwork(t)
		det := &fixedDetector{ids: []string{"b"}}

		updated := rn.ApplyFloodZones(nil, det)
		require.NotSame(t, rn, updated)
		assert.Equal(t, 1, det.calls)

		b, ok := updated.FindSegment("b")
		require.True(t, ok)
		assert.True(t, b.IsHazardous())
		a, _ := updated.FindSegment("a")
		assert.False(t, a.IsHazardous())

		orig, _ := rn.FindSegment("b")
		assert.False(t, orig.IsHazardous())

		for _, e := range updated.GetGraph().GetOutEdges("node_52.100000_21.100000") {
			assert.Equal(t, e.GetSegmentID() == "b", e.IsHazardous())
		}
		for _, e := range rn.GetGraph().GetOutEdges("node_52.100000_21.100000") {
			assert.False(t, e.IsHazardous())
		}
	})

	t.Run("nothing detected returns receiver", func(t *testing.T) {
		rn := twoSegmentNetwork(t)
		assert.Same(t, rn, rn.ApplyFloodZones(nil, &fixedDetector{}))
	})
}

func TestFindNearestNode(t *testing.T) {
	rn := twoSegmentNetwork(t)

	n, ok := rn.FindNearestNode(geo.MustCoordinate(52.09, 21.09))
	require.True(t, ok)
	assert.Equal(t, "node_52.100000_21.100000", n.GetID())

	n, ok = rn.FindNearestNode(geo.MustCoordinate(51.0, 20.0))
	require.True(t, ok)
	assert.Equal(t, "node_52.000000_21.000000", n.GetID())

	// equidistant from both ends of a single segment, first created node wins
	single, err := BuildRoadNetwork([]*RoadSegment{
		newTestSegment(t, "x", false, [2]float64{0.0, -1.0}, [2]float64{0.0, 1.0}),
	})
	require.NoError(t, err)
	n, ok = single.FindNearestNode(geo.MustCoordinate(0.0, 0.0))
	require.True(t, ok)
	assert.Equal(t, "node_0.000000_-1.000000", n.GetID())
}
