package osmparser

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/lintang-b-s/evacroute/pkg/datastructure"
	"github.com/lintang-b-s/evacroute/pkg/geo"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"go.uber.org/zap"
)

// OsmParser reads drivable ways from an .osm.pbf file and splits them into road segments at
// nodes shared by more than one way.
type OsmParser struct {
	wayNodeMap      map[int64]NodeType
	acceptedNodeMap map[int64]nodeCoord
	ways            []osmWay
	logger          *zap.Logger
}

func NewOSMParser(logger *zap.Logger) *OsmParser {
	return &OsmParser{
		wayNodeMap:      make(map[int64]NodeType),
		acceptedNodeMap: make(map[int64]nodeCoord),
		ways:            make([]osmWay, 0),
		logger:          logger,
	}
}

func (p *OsmParser) Parse(ctx context.Context, mapFile string) ([]*datastructure.RoadSegment, error) {
	f, err := os.Open(mapFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// first pass marks which way nodes are junctions
	scanner := osmpbf.New(ctx, f, 0)
	countWays := 0
	for scanner.Scan() {
		if way, ok := scanner.Object().(*osm.Way); ok {
			if p.markWayNodes(way) {
				countWays++
				if countWays%50000 == 0 {
					p.logger.Sugar().Infof("scanning openstreetmap ways: %d...", countWays)
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, err
	}
	scanner.Close()

	if _, err = f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	scanner = osmpbf.New(ctx, f, 0)
	defer scanner.Close()
	for scanner.Scan() {
		switch o := scanner.Object().(type) {
		case *osm.Node:
			p.addNode(o)
		case *osm.Way:
			p.addWay(o)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	segments := p.BuildSegments()
	p.logger.Info("openstreetmap road data parsed",
		zap.Int("ways", len(p.ways)),
		zap.Int("nodes", len(p.acceptedNodeMap)),
		zap.Int("segments", len(segments)))
	return segments, nil
}

// markWayNodes records the node types of an accepted way. Returns false for skipped ways.
func (p *OsmParser) markWayNodes(way *osm.Way) bool {
	if len(way.Nodes) < 2 || !acceptOsmWay(way) {
		return false
	}
	for i, node := range way.Nodes {
		if _, ok := p.wayNodeMap[int64(node.ID)]; !ok {
			if i == 0 || i == len(way.Nodes)-1 {
				p.wayNodeMap[int64(node.ID)] = END_NODE
			} else {
				p.wayNodeMap[int64(node.ID)] = BETWEEN_NODE
			}
		} else {
			p.wayNodeMap[int64(node.ID)] = JUNCTION_NODE
		}
	}
	return true
}

func (p *OsmParser) addNode(node *osm.Node) {
	if _, ok := p.wayNodeMap[int64(node.ID)]; ok {
		p.acceptedNodeMap[int64(node.ID)] = nodeCoord{lat: node.Lat, lon: node.Lon}
	}
}

func (p *OsmParser) addWay(way *osm.Way) {
	if len(way.Nodes) < 2 || !acceptOsmWay(way) {
		return
	}

	okvf, okmvf, okvb, okmvb := getReversedOneWay(way)
	oneWay := false
	if val := way.Tags.Find("oneway"); val == "yes" || val == "true" || val == "1" || val == "-1" ||
		okvf || okmvf || okvb || okmvb {
		oneWay = true
	}
	// okvf / okmvf = not allowed forward
	forward := !(way.Tags.Find("oneway") == "-1" || okvf || okmvf)

	nodes := make([]int64, 0, len(way.Nodes))
	for _, n := range way.Nodes {
		nodes = append(nodes, int64(n.ID))
	}
	p.ways = append(p.ways, osmWay{
		id:      int64(way.ID),
		nodes:   nodes,
		oneWay:  oneWay,
		forward: forward,
	})
}

// BuildSegments splits every collected way at junction nodes. Ways that are one-way against
// their node order get their polyline reversed. Nodes without coordinates are skipped.
func (p *OsmParser) BuildSegments() []*datastructure.RoadSegment {
	segments := make([]*datastructure.RoadSegment, 0, len(p.ways))
	for _, way := range p.ways {
		part := 0
		current := make([]geo.Coordinate, 0)
		for i, nodeID := range way.nodes {
			nc, ok := p.acceptedNodeMap[nodeID]
			if !ok {
				continue
			}
			c, err := geo.NewCoordinate(nc.lat, nc.lon)
			if err != nil {
				continue
			}
			current = append(current, c)

			last := i == len(way.nodes)-1
			if len(current) >= 2 && (last || p.wayNodeMap[nodeID] == JUNCTION_NODE) {
				if s := p.newSegment(way, part, current); s != nil {
					segments = append(segments, s)
					part++
				}
				current = []geo.Coordinate{c}
			}
		}
	}
	return segments
}

func (p *OsmParser) newSegment(way osmWay, part int, coords []geo.Coordinate) *datastructure.RoadSegment {
	polyline := make([]geo.Coordinate, len(coords))
	copy(polyline, coords)
	if !way.forward {
		for i, j := 0, len(polyline)-1; i < j; i, j = i+1, j-1 {
			polyline[i], polyline[j] = polyline[j], polyline[i]
		}
	}

	s, err := datastructure.NewRoadSegment(fmt.Sprintf("%d_%d", way.id, part), polyline, way.oneWay)
	if err != nil {
		p.logger.Warn("skipping openstreetmap way part", zap.Int64("wayID", way.id), zap.Error(err))
		return nil
	}
	return s
}

func acceptOsmWay(way *osm.Way) bool {
	highway := way.Tags.Find("highway")
	junction := way.Tags.Find("junction")
	if highway != "" {
		if _, ok := acceptedHighway[highway]; ok {
			return true
		}
	} else if junction != "" {
		return true
	}
	return false
}

func isRestricted(value string) bool {
	return value == "no" || value == "restricted"
}

func getReversedOneWay(way *osm.Way) (bool, bool, bool, bool) {
	vehicleForward := way.Tags.Find("vehicle:forward")
	motorVehicleForward := way.Tags.Find("motor_vehicle:forward")
	vehicleBackward := way.Tags.Find("vehicle:backward")
	motorVehicleBackward := way.Tags.Find("motor_vehicle:backward")
	return isRestricted(vehicleForward), isRestricted(motorVehicleForward), isRestricted(vehicleBackward), isRestricted(motorVehicleBackward)
}
