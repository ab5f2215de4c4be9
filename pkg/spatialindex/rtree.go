package spatialindex

import (
	"github.com/paulmach/orb"
	"github.com/tidwall/rtree"
)

// Rtree indexes bounding boxes in lon/lat order. Each entry carries the position of the
// indexed item in the caller's slice.
type Rtree struct {
	tr *rtree.RTreeG[int]
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[int]
	return &Rtree{
		tr: &tr,
	}
}

// Build. index every bound with its slice position.
func (rt *Rtree) Build(bounds []orb.Bound) {
	for i, b := range bounds {
		rt.Insert(b, i)
	}
}

func (rt *Rtree) Insert(b orb.Bound, item int) {
	rt.tr.Insert([2]float64{b.Min.Lon(), b.Min.Lat()}, [2]float64{b.Max.Lon(), b.Max.Lat()}, item)
}

// SearchIntersect returns the items whose bounding box overlaps b. Touching boxes count.
func (rt *Rtree) SearchIntersect(b orb.Bound) []int {
	results := make([]int, 0, 4)
	rt.tr.Search([2]float64{b.Min.Lon(), b.Min.Lat()}, [2]float64{b.Max.Lon(), b.Max.Lat()},
		func(min, max [2]float64, data int) bool {
			results = append(results, data)
			return true
		})
	return results
}

func (rt *Rtree) Len() int {
	return rt.tr.Len()
}
