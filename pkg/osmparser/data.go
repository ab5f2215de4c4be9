package osmparser

type NodeType int

const (
	END_NODE NodeType = iota
	BETWEEN_NODE
	JUNCTION_NODE
)

var acceptedHighway = map[string]struct{}{
	"motorway":         {},
	"motorway_link":    {},
	"trunk":            {},
	"trunk_link":       {},
	"primary":          {},
	"primary_link":     {},
	"secondary":        {},
	"secondary_link":   {},
	"residential":      {},
	"residential_link": {},
	"service":          {},
	"tertiary":         {},
	"tertiary_link":    {},
	"road":             {},
	"track":            {},
	"unclassified":     {},
	"undefined":        {},
	"unknown":          {},
	"living_street":    {},
	"private":          {},
	"motorroad":        {},
}

type nodeCoord struct {
	lat float64
	lon float64
}

type osmWay struct {
	id      int64
	nodes   []int64
	oneWay  bool
	forward bool
}
