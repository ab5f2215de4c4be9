package osmparser

import (
	"testing"

	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func way(id int64, tags map[string]string, nodeIDs ...int64) *osm.Way {
	w := &osm.Way{ID: osm.WayID(id)}
	for _, n := range nodeIDs {
		w.Nodes = append(w.Nodes, osm.WayNode{ID: osm.NodeID(n)})
	}
	for k, v := range tags {
		w.Tags = append(w.Tags, osm.Tag{Key: k, Value: v})
	}
	return w
}

func feed(p *OsmParser, ways []*osm.Way, nodes []*osm.Node) {
	for _, w := range ways {
		p.markWayNodes(w)
	}
	for _, n := range nodes {
		p.addNode(n)
	}
	for _, w := range ways {
		p.addWay(w)
	}
}

func TestBuildSegmentsSplitsAtJunctions(t *testing.T) {
	nodes := []*osm.Node{
		{ID: 1, Lat: 52.0, Lon: 21.0},
		{ID: 2, Lat: 52.1, Lon: 21.1},
		{ID: 3, Lat: 52.2, Lon: 21.2},
		{ID: 4, Lat: 52.3, Lon: 21.3},
		{ID: 5, Lat: 52.1, Lon: 21.3},
		{ID: 99, Lat: 10, Lon: 10},
	}
	ways := []*osm.Way{
		way(100, map[string]string{"highway": "primary"}, 1, 2, 3, 4),
		way(200, map[string]string{"highway": "residential", "oneway": "yes"}, 3, 5),
		way(300, map[string]string{"highway": "footway"}, 4, 99),
		way(400, map[string]string{"highway": "primary"}, 1),
	}

	p := NewOSMParser(zap.NewNop())
	feed(p, ways, nodes)
	segments := p.BuildSegments()

	require.Len(t, segments, 3)
	assert.Equal(t, "100_0", segments[0].GetID())
	assert.Len(t, segments[0].GetCoordinates(), 3)
	assert.Equal(t, 52.2, segments[0].GetEnd().GetLat())
	assert.False(t, segments[0].IsOneway())

	assert.Equal(t, "100_1", segments[1].GetID())
	assert.Len(t, segments[1].GetCoordinates(), 2)

	assert.Equal(t, "200_0", segments[2].GetID())
	assert.True(t, segments[2].IsOneway())

	// footway nodes never get coordinates
	_, ok := p.acceptedNodeMap[99]
	assert.False(t, ok)
}

func TestBuildSegmentsReversedOneway(t *testing.T) {
	nodes := []*osm.Node{
		{ID: 1, Lat: 52.0, Lon: 21.0},
		{ID: 2, Lat: 52.1, Lon: 21.1},
	}
	p := NewOSMParser(zap.NewNop())
	feed(p, []*osm.Way{way(7, map[string]string{"highway": "secondary", "oneway": "-1"}, 1, 2)}, nodes)

	segments := p.BuildSegments()
	require.Len(t, segments, 1)
	assert.True(t, segments[0].IsOneway())
	assert.Equal(t, 52.1, segments[0].GetStart().GetLat())
	assert.Equal(t, 52.0, segments[0].GetEnd().GetLat())
}

func TestAcceptOsmWay(t *testing.T) {
	assert.True(t, acceptOsmWay(way(1, map[string]string{"highway": "tertiary"}, 1, 2)))
	assert.True(t, acceptOsmWay(way(1, map[string]string{"junction": "roundabout"}, 1, 2)))
	assert.False(t, acceptOsmWay(way(1, map[string]string{"highway": "cycleway"}, 1, 2)))
	assert.False(t, acceptOsmWay(way(1, map[string]string{"building": "yes"}, 1, 2)))
}
