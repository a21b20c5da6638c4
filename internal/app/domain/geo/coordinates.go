package geo

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/eduardismund/tastetrails-web/internal/app/models"
)

// ValidCoordinates checks that a point is inside WGS84 bounds. The (0,0)
// null island point is treated as missing data, not a real location.
func ValidCoordinates(c models.Coordinates) bool {
	if c.Lat == 0 && c.Lng == 0 {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// ParseCoordinates parses a "lat,lng" pair as stored on activities.
func ParseCoordinates(s string) (models.Coordinates, error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return models.Coordinates{}, fmt.Errorf("malformed coordinates %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("malformed latitude %q", parts[0])
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("malformed longitude %q", parts[1])
	}
	c := models.Coordinates{Lat: lat, Lng: lng}
	if !ValidCoordinates(c) {
		return models.Coordinates{}, fmt.Errorf("coordinates %q out of range", s)
	}
	return c, nil
}

// FormatCoordinates renders a point in the "lat,lng" wire shape.
func FormatCoordinates(c models.Coordinates) string {
	return strconv.FormatFloat(c.Lat, 'f', 6, 64) + "," + strconv.FormatFloat(c.Lng, 'f', 6, 64)
}

// CenterPoint averages the valid points, falling back to the given point
// when none are valid.
func CenterPoint(points []models.Coordinates, fallback models.Coordinates) models.Coordinates {
	var latSum, lngSum float64
	var n int
	for _, p := range points {
		if !ValidCoordinates(p) {
			continue
		}
		latSum += p.Lat
		lngSum += p.Lng
		n++
	}
	if n == 0 {
		return fallback
	}
	return models.Coordinates{Lat: latSum / float64(n), Lng: lngSum / float64(n)}
}

// Bounds is a lat/lng bounding box.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLng float64 `json:"max_lng"`
}

// BoundingBox returns the box enclosing the valid points and whether any
// valid point existed.
func BoundingBox(points []models.Coordinates) (Bounds, bool) {
	b := Bounds{
		MinLat: math.MaxFloat64,
		MaxLat: -math.MaxFloat64,
		MinLng: math.MaxFloat64,
		MaxLng: -math.MaxFloat64,
	}
	any := false
	for _, p := range points {
		if !ValidCoordinates(p) {
			continue
		}
		any = true
		b.MinLat = math.Min(b.MinLat, p.Lat)
		b.MaxLat = math.Max(b.MaxLat, p.Lat)
		b.MinLng = math.Min(b.MinLng, p.Lng)
		b.MaxLng = math.Max(b.MaxLng, p.Lng)
	}
	if !any {
		return Bounds{}, false
	}
	return b, true
}
