package geo

import (
	"errors"
	"math"

	"github.com/lintang-b-s/evacroute/pkg/util"
)

var ErrInvalidCoordinate = errors.New("invalid coordinate")

const (
	MIN_LATITUDE  = -90.0
	MAX_LATITUDE  = 90.0
	MIN_LONGITUDE = -180.0
	MAX_LONGITUDE = 180.0

	earthRadiusM = 6_371_000.0
)

// Coordinate is a WGS84 position in decimal degrees. The zero value is (0,0), which is valid.
type Coordinate struct {
	lat float64
	lon float64
}

func NewCoordinate(lat, lon float64) (Coordinate, error) {
	if math.IsNaN(lat) || lat < MIN_LATITUDE || lat > MAX_LATITUDE {
		return Coordinate{}, util.WrapErrorf(ErrInvalidCoordinate, util.ErrBadParamInput,
			"latitude must be [%.1f, %.1f], got: %.6f", MIN_LATITUDE, MAX_LATITUDE, lat)
	}
	if math.IsNaN(lon) || lon < MIN_LONGITUDE || lon > MAX_LONGITUDE {
		return Coordinate{}, util.WrapErrorf(ErrInvalidCoordinate, util.ErrBadParamInput,
			"longitude must be [%.1f, %.1f], got: %.6f", MIN_LONGITUDE, MAX_LONGITUDE, lon)
	}
	return Coordinate{lat: lat, lon: lon}, nil
}

// MustCoordinate is NewCoordinate for literals known to be valid.
func MustCoordinate(lat, lon float64) Coordinate {
	c, err := NewCoordinate(lat, lon)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Coordinate) GetLat() float64 {
	return c.lat
}

func (c Coordinate) GetLon() float64 {
	return c.lon
}

// DistanceTo. great-circle distance in meters.
func (c Coordinate) DistanceTo(other Coordinate) float64 {
	return CalculateHaversineDistance(c.lat, c.lon, other.lat, other.lon)
}

func (c Coordinate) Equal(other Coordinate) bool {
	return c.lat == other.lat && c.lon == other.lon
}

// CalculateHaversineDistance. haversine distance in meters, longitude delta wrapped into (-pi, pi].
func CalculateHaversineDistance(latOne, longOne, latTwo, longTwo float64) float64 {
	lat1 := util.DegreeToRadians(latOne)
	lat2 := util.DegreeToRadians(latTwo)
	dLat := util.DegreeToRadians(latTwo - latOne)
	dLon := util.DegreeToRadians(longTwo - longOne)

	if math.Abs(dLon) > math.Pi {
		if dLon > 0 {
			dLon -= 2 * math.Pi
		} else {
			dLon += 2 * math.Pi
		}
	}

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	centralAngle := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusM * centralAngle
}
