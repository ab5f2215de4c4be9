package controllers

import (
	"time"

	"github.com/lintang-b-s/evacroute/pkg/datastructure"
	"github.com/lintang-b-s/evacroute/pkg/geo"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

type coordinateRequest struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lon float64 `json:"lon" validate:"min=-180,max=180"`
}

// NewRouteFeature renders a route as a GeoJSON Feature with a lon/lat LineString.
func NewRouteFeature(route *datastructure.Route) *geojson.Feature {
	coords := route.Coordinates()
	ls := make(orb.LineString, 0, len(coords))
	for _, c := range coords {
		ls = append(ls, orb.Point{c.GetLon(), c.GetLat()})
	}

	md := route.GetMetadata()
	f := geojson.NewFeature(ls)
	f.Properties = geojson.Properties{
		"distanceMeters":    md.GetDistanceMeters(),
		"computationTimeMs": md.GetComputationTime().Milliseconds(),
		"hazardousSegments": md.GetHazardousSegments(),
		"safetyScore":       md.GetSafetyScore(),
		"timestamp":         md.GetTimestamp().UTC().Format(time.RFC3339Nano),
		"allPathsHazardous": md.IsAllPathsHazardous(),
		"polyline":          geo.PolylineFromCoords(coords),
	}
	return f
}

type errorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	RequestID string `json:"requestId"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}
