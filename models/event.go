// File: /models/event.go
package models

import (
	"time"
)

// Category is a closed set; unknown values are rejected at the API edge on
// writes and silently dropped from read filters.
type Category string

const (
	CategoryMusic     Category = "Music"
	CategorySports    Category = "Sports"
	CategoryTech      Category = "Tech"
	CategoryArt       Category = "Art"
	CategoryEducation Category = "Education"
	CategoryHealth    Category = "Health"
	CategoryBusiness  Category = "Business"
)

var AllCategories = []Category{
	CategoryMusic,
	CategorySports,
	CategoryTech,
	CategoryArt,
	CategoryEducation,
	CategoryHealth,
	CategoryBusiness,
}

func (c Category) Valid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

type Event struct {
	ID          string   `json:"id" gorm:"primaryKey;size:191"`
	Name        string   `json:"name" gorm:"not null;size:50"`
	Location    string   `json:"location" gorm:"size:255"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Description string   `json:"description" gorm:"type:text"`
	Link        string   `json:"link" gorm:"not null;size:500"`
	Paid        bool     `json:"paid"`
	Category    Category `json:"category" gorm:"not null;size:50;index"`

	// Creator snapshot, denormalized at write time. Profile edits do not
	// rewrite these on existing events.
	UserID    string `json:"userId" gorm:"not null;size:191;index"`
	UserName  string `json:"userName" gorm:"not null;size:255"`
	UserImage string `json:"userImage" gorm:"size:500"`

	EventDate time.Time `json:"eventDate" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Owner User `json:"-" gorm:"foreignKey:UserID"`
}
