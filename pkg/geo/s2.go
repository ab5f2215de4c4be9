package geo

import (
	"github.com/golang/geo/s2"
)

// NODE_CELL_LEVEL. s2 level used to bucket graph nodes. Cells at this level are roughly 10-20 m
// wide, well above the node merge tolerance, so a point within tolerance of a node always lies in
// the node's cell or one of its neighbors.
const NODE_CELL_LEVEL = 19

func CellID(c Coordinate, level int) s2.CellID {
	return s2.CellIDFromLatLng(s2.LatLngFromDegrees(c.lat, c.lon)).Parent(level)
}

// CellWithNeighbors returns the cell containing c at the given level followed by all of its
// edge and vertex neighbors.
func CellWithNeighbors(c Coordinate, level int) []s2.CellID {
	cell := CellID(c, level)
	return append([]s2.CellID{cell}, cell.AllNeighbors(level)...)
}
