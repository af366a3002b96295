// File: /services/event_filter.go
package services

import (
	"math"
	"strings"
	"time"

	"localevents-api/models"
)

// SearchRadiusKm is the fixed discovery radius around a geocoded location.
const SearchRadiusKm = 30.0

// kmPerDegreeLat approximates one degree of latitude.
const kmPerDegreeLat = 111.32

// minCosLat guards the longitude correction near the poles, where
// cos(lat) -> 0 would blow the span up to infinity.
const minCosLat = 1e-6

// BoundingBox converts a center point and radius into a rectangular
// prefilter. The box circumscribes the true circle: corners include points
// slightly beyond the radius, nothing inside it is excluded.
func BoundingBox(lat, lng, radiusKm float64) models.GeoBounds {
	deltaLat := radiusKm / kmPerDegreeLat

	bounds := models.GeoBounds{
		MinLat: lat - deltaLat,
		MaxLat: lat + deltaLat,
	}

	cosLat := math.Cos(lat * math.Pi / 180)
	if math.Abs(cosLat) < minCosLat {
		return bounds
	}

	deltaLng := radiusKm / (kmPerDegreeLat * math.Abs(cosLat))
	bounds.MinLng = lng - deltaLng
	bounds.MaxLng = lng + deltaLng
	bounds.HasLng = true
	return bounds
}

// Date buckets resolvable by ResolveDateBucket.
const (
	BucketToday    = "today"
	BucketTomorrow = "tomorrow"
	BucketWeekend  = "weekend"
	BucketAll      = "all"
)

// ResolveDateBucket turns a symbolic bucket into a concrete half-open
// interval relative to now. The second return is false when the bucket
// imposes no constraint ("all", empty, or unrecognized).
//
// Weekend is resolved against the current Sunday-first week and never rolls
// forward: the window is Friday 00:00 through the end of Sunday of the week
// containing now.
func ResolveDateBucket(bucket string, now time.Time) (models.DateRange, bool) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch strings.ToLower(bucket) {
	case BucketToday:
		return models.DateRange{GTE: dayStart, LT: dayStart.AddDate(0, 0, 1)}, true
	case BucketTomorrow:
		return models.DateRange{GTE: dayStart.AddDate(0, 0, 1), LT: dayStart.AddDate(0, 0, 2)}, true
	case BucketWeekend:
		// time.Weekday is 0=Sunday, matching the source convention
		weekStart := dayStart.AddDate(0, 0, -int(now.Weekday()))
		return models.DateRange{
			GTE: weekStart.AddDate(0, 0, 5),
			LT:  weekStart.AddDate(0, 0, 8),
		}, true
	default:
		return models.DateRange{}, false
	}
}

// FilterCategories narrows requested tokens against the known category set.
// Unknown tokens are dropped, never rejected; an empty result means "match
// any category".
func FilterCategories(tokens []string) []models.Category {
	var valid []models.Category
	for _, token := range tokens {
		category := models.Category(strings.TrimSpace(token))
		if category.Valid() {
			valid = append(valid, category)
		}
	}
	return valid
}
