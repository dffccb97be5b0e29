package domain

import "math"

const earthRadiusKm = 6371

// Coordinate is an immutable WGS84 point.
type Coordinate struct {
	Lat float64 `json:"latitude"`
	Lon float64 `json:"longitude"`
}

func (c Coordinate) Validate() error {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lon) {
		return ErrInvalidCoordinate
	}
	if c.Lat < -90 || c.Lat > 90 {
		return ErrInvalidCoordinate
	}
	if c.Lon < -180 || c.Lon > 180 {
		return ErrInvalidCoordinate
	}
	return nil
}

// DistanceKm returns the great-circle distance between a and b in kilometers
// (Haversine on the spherical Earth approximation).
func DistanceKm(a, b Coordinate) (float64, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}
	if err := b.Validate(); err != nil {
		return 0, err
	}
	dLat := toRad(b.Lat - a.Lat)
	dLon := toRad(b.Lon - a.Lon)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h)), nil
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

type ZoneType string

const (
	ZoneHome     ZoneType = "home"
	ZoneSchool   ZoneType = "school"
	ZoneRelative ZoneType = "relative"
	ZoneActivity ZoneType = "activity"
)

// SafeZone is a named circular geofence owned by a school. The engine only
// reads zones; they are maintained by the surrounding CRUD layer.
type SafeZone struct {
	ID           int64      `json:"id"`
	SchoolID     int64      `json:"school_id"`
	Name         string     `json:"name"`
	Type         ZoneType   `json:"type"`
	Center       Coordinate `json:"center"`
	RadiusMeters int        `json:"radius_meters"`
	Active       bool       `json:"active"`
}
