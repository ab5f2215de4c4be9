package geo

import (
	"github.com/twpayne/go-polyline"
)

// PolylineFromCoords encodes coords with google's polyline algorithm (precision 5).
func PolylineFromCoords(coords []Coordinate) string {
	s := make([][]float64, 0, len(coords))
	for _, c := range coords {
		s = append(s, []float64{c.lat, c.lon})
	}
	return string(polyline.EncodeCoords(s))
}
