// File: /utils/validators.go
package utils

import (
	"regexp"
)

var eventNameRegex = regexp.MustCompile(`^[a-zA-Z0-9 ]+$`)

// IsValidEventName enforces the 3-50 character, alphanumeric-plus-space rule
// applied on both create and update.
func IsValidEventName(name string) bool {
	if len(name) < 3 || len(name) > 50 {
		return false
	}
	return eventNameRegex.MatchString(name)
}

func IsValidLatitude(lat float64) bool {
	return lat >= -90 && lat <= 90
}

func IsValidLongitude(lng float64) bool {
	return lng >= -180 && lng <= 180
}
