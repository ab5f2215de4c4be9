package roadparser

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lintang-b-s/evacroute/pkg/datastructure"
	"github.com/lintang-b-s/evacroute/pkg/geo"
	"github.com/lintang-b-s/evacroute/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const roadsGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "id": "segment-1", "properties": {"highway": "primary"},
     "geometry": {"type": "LineString", "coordinates": [[21.0, 52.0], [21.1, 52.1]]}},
    {"type": "Feature", "id": "segment-2", "properties": {"oneway": "yes"},
     "geometry": {"type": "LineString", "coordinates": [[21.1, 52.1], [21.2, 52.2]]}},
    {"type": "Feature", "id": "multi", "properties": {"oneway": true},
     "geometry": {"type": "MultiLineString", "coordinates": [[[21.2, 52.2], [21.3, 52.3]], [[21.3, 52.3], [21.4, 52.4]]]}},
    {"type": "Feature", "properties": {"id": "from-property", "oneway": "no"},
     "geometry": {"type": "LineString", "coordinates": [[21.4, 52.4], [21.5, 52.5]]}},
    {"type": "Feature", "id": "point", "properties": {},
     "geometry": {"type": "Point", "coordinates": [21.0, 52.0]}}
  ]
}`

const floodGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "id": "always", "properties": {},
     "geometry": {"type": "Polygon", "coordinates": [
       [[21.0, 52.0], [21.1, 52.0], [21.1, 52.1], [21.0, 52.1], [21.0, 52.0]],
       [[21.03, 52.03], [21.07, 52.03], [21.07, 52.07], [21.03, 52.07], [21.03, 52.03]]]}},
    {"type": "Feature", "id": "window", "properties": {"validFrom": "2025-01-01T00:00:00Z", "validUntil": "2025-01-02T00:00:00Z"},
     "geometry": {"type": "Polygon", "coordinates": [[[22.0, 53.0], [22.1, 53.0], [22.1, 53.1], [22.0, 53.0]]]}},
    {"type": "Feature", "id": "mp", "properties": {},
     "geometry": {"type": "MultiPolygon", "coordinates": [
       [[[23.0, 54.0], [23.1, 54.0], [23.1, 54.1], [23.0, 54.0]]],
       [[[24.0, 55.0], [24.1, 55.0], [24.1, 55.1], [24.0, 55.0]]]]}}
  ]
}`

func TestParseRoads(t *testing.T) {
	segments, err := ParseRoads([]byte(roadsGeoJSON), zap.NewNop())
	require.NoError(t, err)
	require.Len(t, segments, 5)

	ids := make([]string, 0, len(segments))
	for _, s := range segments {
		ids = append(ids, s.GetID())
	}
	assert.Equal(t, []string{"segment-1", "segment-2", "multi_0", "multi_1", "from-property"}, ids)

	assert.False(t, segments[0].IsOneway())
	assert.True(t, segments[1].IsOneway())
	assert.True(t, segments[2].IsOneway())
	assert.False(t, segments[4].IsOneway())

	assert.Equal(t, 52.0, segments[0].GetStart().GetLat())
	assert.Equal(t, 21.0, segments[0].GetStart().GetLon())
}

func TestParseRoadsInvalid(t *testing.T) {
	_, err := ParseRoads([]byte(`{"type": "FeatureCollection", "features": [`), zap.NewNop())
	assert.Error(t, err)

	_, err = ParseRoads([]byte(`{"type": "FeatureCollection", "features": [
		{"type": "Feature", "id": "x", "properties": {},
		 "geometry": {"type": "LineString", "coordinates": [[21.0, 95.0], [21.1, 52.1]]}}]}`), zap.NewNop())
	assert.ErrorIs(t, err, geo.ErrInvalidCoordinate)

	_, err = ParseRoads([]byte(`{"type": "FeatureCollection", "features": [
		{"type": "Feature", "id": "x", "properties": {},
		 "geometry": {"type": "LineString", "coordinates": [[21.0, 52.0]]}}]}`), zap.NewNop())
	assert.ErrorIs(t, err, datastructure.ErrInvalidSegment)
}

func TestParseFloodZones(t *testing.T) {
	zones, err := ParseFloodZones([]byte(floodGeoJSON), zap.NewNop())
	require.NoError(t, err)
	require.Len(t, zones, 4)

	assert.Equal(t, "always", zones[0].GetID())
	assert.Len(t, zones[0].GetRings(), 2)
	assert.Nil(t, zones[0].GetValidFrom())

	assert.Equal(t, "window", zones[1].GetID())
	require.NotNil(t, zones[1].GetValidFrom())
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), zones[1].GetValidFrom().UTC())

	assert.Equal(t, "mp_0", zones[2].GetID())
	assert.Equal(t, "mp_1", zones[3].GetID())
}

func TestParseFloodZonesInvalidInstant(t *testing.T) {
	_, err := ParseFloodZones([]byte(`{"type": "FeatureCollection", "features": [
		{"type": "Feature", "id": "z", "properties": {"validFrom": "yesterday"},
		 "geometry": {"type": "Polygon", "coordinates": [[[22.0, 53.0], [22.1, 53.0], [22.1, 53.1], [22.0, 53.0]]]}}]}`), zap.NewNop())
	assert.Error(t, err)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRoadRepositoryLoad(t *testing.T) {
	path := writeFile(t, "roads.geojson", roadsGeoJSON)
	repo, err := NewRoadRepository(path, 2, zap.NewNop())
	require.NoError(t, err)

	first, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, first, 5)

	second, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Same(t, first[0], second[0])
	assert.Equal(t, 1, repo.cache.Len())
}

func TestRoadRepositoryErrors(t *testing.T) {
	missing, err := NewRoadRepository(filepath.Join(t.TempDir(), "nope.geojson"), 1, zap.NewNop())
	require.NoError(t, err)
	_, err = missing.Load(context.Background())
	assert.ErrorIs(t, err, ErrNoRoadSegments)

	empty, err := NewRoadRepository(writeFile(t, "empty.geojson", `{"type": "FeatureCollection", "features": []}`), 1, zap.NewNop())
	require.NoError(t, err)
	_, err = empty.Load(context.Background())
	assert.ErrorIs(t, err, ErrNoRoadSegments)
}

func TestFloodZoneRepositoryLoadActiveAt(t *testing.T) {
	repo := NewFloodZoneRepository(writeFile(t, "flood.geojson", floodGeoJSON), zap.NewNop())

	inWindow, err := repo.LoadActiveAt(context.Background(), time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, inWindow, 4)

	outside, err := repo.LoadActiveAt(context.Background(), time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, outside, 3)

	missing := NewFloodZoneRepository(filepath.Join(t.TempDir(), "none.geojson"), zap.NewNop())
	zones, err := missing.LoadActiveAt(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Empty(t, zones)
}

func TestFloodZoneRepositoryCorruptFile(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{name: "not geojson", content: `{"type": "nope"`},
		{name: "ring with two points", content: `{"type": "FeatureCollection", "features": [
			{"type": "Feature", "id": "z", "properties": {},
			 "geometry": {"type": "Polygon", "coordinates": [[[21.0, 52.0], [21.1, 52.0]]]}}]}`},
		{name: "bad validFrom", content: `{"type": "FeatureCollection", "features": [
			{"type": "Feature", "id": "z", "properties": {"validFrom": "yesterday"},
			 "geometry": {"type": "Polygon", "coordinates": [[[21.0, 52.0], [21.1, 52.0], [21.1, 52.1], [21.0, 52.0]]]}}]}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := NewFloodZoneRepository(writeFile(t, "flood.geojson", tc.content), zap.NewNop())

			zones, err := repo.LoadActiveAt(context.Background(), time.Now())
			require.Error(t, err)
			assert.Nil(t, zones)
			assert.Equal(t, util.ErrInternalServerError, util.ErrorCode(err))
		})
	}
}
