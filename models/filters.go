// File: /models/filters.go
package models

import (
	"time"
)

// EventFilter carries the raw, per-request search criteria. Nil/empty fields
// mean "no constraint".
type EventFilter struct {
	Latitude   *float64
	Longitude  *float64
	DateBucket string
	Categories []string
}

// GeoBounds is an axis-aligned lat/lng box. HasLng is false near the poles,
// where the longitude span degenerates and the bound is skipped.
type GeoBounds struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
	HasLng bool
}

// DateRange is a half-open interval [GTE, LT).
type DateRange struct {
	GTE time.Time
	LT  time.Time
}

// EventQuery is the fully resolved predicate set handed to the repository.
// Nil members contribute no restriction.
type EventQuery struct {
	Bounds     *GeoBounds
	Date       *DateRange
	Categories []Category
	Offset     int
	Limit      int
}
