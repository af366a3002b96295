// File: /repositories/event_repository.go
package repositories

import (
	"gorm.io/gorm"

	"localevents-api/models"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Search applies the resolved predicate set, counts the full match before
// pagination, then fetches one page ordered by event date (id tiebreak keeps
// page walks deterministic).
func (r *EventRepository) Search(query models.EventQuery) ([]models.Event, int64, error) {
	tx := r.db.Model(&models.Event{})

	if b := query.Bounds; b != nil {
		tx = tx.Where("latitude >= ? AND latitude <= ?", b.MinLat, b.MaxLat)
		if b.HasLng {
			tx = tx.Where("longitude >= ? AND longitude <= ?", b.MinLng, b.MaxLng)
		}
	}

	if d := query.Date; d != nil {
		tx = tx.Where("event_date >= ? AND event_date < ?", d.GTE, d.LT)
	}

	if len(query.Categories) > 0 {
		tx = tx.Where("category IN ?", query.Categories)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []models.Event
	if err := tx.Order("event_date ASC, id ASC").
		Offset(query.Offset).Limit(query.Limit).
		Find(&events).Error; err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

func (r *EventRepository) FindByID(id string) (*models.Event, error) {
	var event models.Event
	if err := r.db.First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *EventRepository) Create(event *models.Event) error {
	return r.db.Create(event).Error
}

// UpdateFields applies a partial column map and returns the fresh row.
func (r *EventRepository) UpdateFields(id string, updates map[string]interface{}) (*models.Event, error) {
	if err := r.db.Model(&models.Event{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.FindByID(id)
}

func (r *EventRepository) Delete(event *models.Event) error {
	return r.db.Delete(event).Error
}
