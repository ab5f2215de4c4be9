package datastructure

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRouteMetadata(t *testing.T) {
	now := time.Now()
	testCases := []struct {
		name     string
		distance float64
		elapsed  time.Duration
		hazards  int
		score    float64
		ts       time.Time
		wantErr  bool
	}{
		{name: "valid", distance: 100, elapsed: time.Millisecond, score: 1, ts: now},
		{name: "zero distance", distance: 0, score: 0.5, ts: now},
		{name: "negative distance", distance: -1, score: 1, ts: now, wantErr: true},
		{name: "negative duration", distance: 1, elapsed: -time.Second, score: 1, ts: now, wantErr: true},
		{name: "negative hazard count", distance: 1, hazards: -1, score: 1, ts: now, wantErr: true},
		{name: "score above one", distance: 1, score: 1.1, ts: now, wantErr: true},
		{name: "score below zero", distance: 1, score: -0.1, ts: now, wantErr: true},
		{name: "missing timestamp", distance: 1, score: 1, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewRouteMetadata(tc.distance, tc.elapsed, tc.hazards, tc.score, tc.ts, false)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidMetadata)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRouteCoordinates(t *testing.T) {
	md, err := NewRouteMetadata(0, 0, 0, 1, time.Now(), false)
	require.NoError(t, err)

	a := newTestSegment(t, "a", false, [2]float64{52.0, 21.0}, [2]float64{52.05, 21.05}, [2]float64{52.1, 21.1})
	// stored end-to-start relative to travel direction
	b := newTestSegment(t, "b", false, [2]float64{52.2, 21.2}, [2]float64{52.1, 21.1})

	r := NewRoute([]*RoadSegment{a, b}, []bool{true, false}, md)
	coords := r.Coordinates()
	require.Len(t, coords, 4)
	assert.Equal(t, 52.0, coords[0].GetLat())
	assert.Equal(t, 52.05, coords[1].GetLat())
	assert.Equal(t, 52.1, coords[2].GetLat())
	assert.Equal(t, 52.2, coords[3].GetLat())

	empty := NewRoute(nil, nil, md)
	assert.True(t, empty.IsEmpty())
	assert.Empty(t, empty.Coordinates())
}
