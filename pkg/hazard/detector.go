package hazard

import (
	"time"

	"github.com/lintang-b-s/evacroute/pkg/concurrent"
	"github.com/lintang-b-s/evacroute/pkg/datastructure"
	"github.com/lintang-b-s/evacroute/pkg/spatialindex"
	"github.com/paulmach/orb"
	"go.uber.org/zap"
)

// segments per worker job
const detectionBatchSize = 1024

// RtreeDetector flags road segments that intersect a flood zone polygon. Zone bounding boxes
// are indexed in an r-tree built per call; candidates are confirmed with an exact
// polygon/linestring test, so holes are honored and touching a boundary counts.
type RtreeDetector struct {
	log        *zap.Logger
	numWorkers int
}

func NewRtreeDetector(log *zap.Logger, numWorkers int) *RtreeDetector {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &RtreeDetector{log: log, numWorkers: numWorkers}
}

type zoneIndex struct {
	tree     *spatialindex.Rtree
	polygons []orb.Polygon
}

type segmentBatch struct {
	segments []*datastructure.RoadSegment
}

func (d *RtreeDetector) DetectHazardousSegments(segments []*datastructure.RoadSegment,
	zones []*datastructure.FloodZone) map[string]struct{} {
	hazardous := make(map[string]struct{})
	if len(zones) == 0 || len(segments) == 0 {
		return hazardous
	}

	start := time.Now()
	idx := buildZoneIndex(zones)

	if d.numWorkers == 1 || len(segments) <= detectionBatchSize {
		for _, id := range idx.classify(segments) {
			hazardous[id] = struct{}{}
		}
	} else {
		batches := make([]segmentBatch, 0, len(segments)/detectionBatchSize+1)
		for i := 0; i < len(segments); i += detectionBatchSize {
			end := min(i+detectionBatchSize, len(segments))
			batches = append(batches, segmentBatch{segments: segments[i:end]})
		}

		results := concurrent.Run(d.numWorkers, batches, func(b segmentBatch) []string {
			return idx.classify(b.segments)
		})
		for _, ids := range results {
			for _, id := range ids {
				hazardous[id] = struct{}{}
			}
		}
	}

	d.log.Debug("hazard detection done",
		zap.Int("segments", len(segments)),
		zap.Int("zones", len(zones)),
		zap.Int("hazardous", len(hazardous)),
		zap.Duration("took", time.Since(start)))
	return hazardous
}

func buildZoneIndex(zones []*datastructure.FloodZone) *zoneIndex {
	polygons := make([]orb.Polygon, len(zones))
	bounds := make([]orb.Bound, len(zones))
	for i, z := range zones {
		polygons[i] = z.Polygon()
		bounds[i] = z.Bound()
	}
	tree := spatialindex.NewRtree()
	tree.Build(bounds)
	return &zoneIndex{tree: tree, polygons: polygons}
}

// classify returns the ids of segments intersecting at least one indexed zone.
func (zi *zoneIndex) classify(segments []*datastructure.RoadSegment) []string {
	ids := make([]string, 0)
	for _, s := range segments {
		ls := s.LineString()
		for _, candidate := range zi.tree.SearchIntersect(ls.Bound()) {
			if datastructure.PolygonIntersectsLineString(zi.polygons[candidate], ls) {
				ids = append(ids, s.GetID())
				break
			}
		}
	}
	return ids
}
