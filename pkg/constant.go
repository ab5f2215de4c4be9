package pkg

const (
	INF_WEIGHT float64 = 1e15

	// HAZARD_PENALTY_FACTOR multiplies the weight of a hazardous edge during route search.
	// 1 m of hazardous road costs the same as 10 km of safe road.
	HAZARD_PENALTY_FACTOR = 10_000.0

	// NODE_MERGE_TOLERANCE_METERS. road endpoints closer than this (strictly) share a graph node.
	NODE_MERGE_TOLERANCE_METERS = 1.0

	EMPTY_ROUTE_SAFETY_SCORE = 1.0

	MAX_ROUTE_DISTANCE_METERS = 200_000.0

	// COORDINATE_PRECISION. decimal places kept when parsing request coordinates (~0.11 m).
	COORDINATE_PRECISION = 6
)
