// File: /services/event_service.go
package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"localevents-api/models"
	"localevents-api/repositories"
)

// ErrEventNotFound covers both a missing event and a caller without rights.
// Collapsing the two keeps responses from leaking whether an id exists.
var ErrEventNotFound = errors.New("event not found")

// Principal is the authenticated identity attached to a request.
type Principal struct {
	ID   string
	Role models.Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

// CanMutate is re-evaluated on every mutation, never cached.
func CanMutate(event *models.Event, principal Principal) bool {
	if event == nil {
		return false
	}
	return principal.IsAdmin() || event.UserID == principal.ID
}

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// NormalizePaging clamps invalid paging input to the defaults rather than
// rejecting it, and caps the page size.
func NormalizePaging(page, pageSize int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

type EventService struct {
	repo *repositories.EventRepository
}

func NewEventService(repo *repositories.EventRepository) *EventService {
	return &EventService{repo: repo}
}

// Search resolves the filter criteria into predicates, AND-s them, and
// returns one page plus the total match count before pagination.
func (s *EventService) Search(filter models.EventFilter, page, pageSize int) ([]models.Event, int64, error) {
	page, pageSize = NormalizePaging(page, pageSize)

	query := models.EventQuery{
		Offset: (page - 1) * pageSize,
		Limit:  pageSize,
	}

	if filter.Latitude != nil && filter.Longitude != nil {
		bounds := BoundingBox(*filter.Latitude, *filter.Longitude, SearchRadiusKm)
		query.Bounds = &bounds
	}

	if dateRange, ok := ResolveDateBucket(filter.DateBucket, time.Now()); ok {
		query.Date = &dateRange
	}

	query.Categories = FilterCategories(filter.Categories)

	return s.repo.Search(query)
}

// Get fetches a single event with no authorization gate; reads are public.
func (s *EventService) Get(id string) (*models.Event, error) {
	event, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

// Create persists a new event. The owner always comes from the principal,
// never from the payload.
func (s *EventService) Create(event *models.Event, principal Principal) (*models.Event, error) {
	event.ID = uuid.New().String()
	event.UserID = principal.ID

	if err := s.repo.Create(event); err != nil {
		return nil, err
	}
	return event, nil
}

// Update loads the event, gates the caller, then applies only the supplied
// columns. Omitted fields are untouched.
func (s *EventService) Update(id string, updates map[string]interface{}, principal Principal) (*models.Event, error) {
	event, err := s.load(id, principal)
	if err != nil {
		return nil, err
	}

	if len(updates) == 0 {
		return event, nil
	}

	return s.repo.UpdateFields(id, updates)
}

// Delete removes the event permanently and returns its prior state.
func (s *EventService) Delete(id string, principal Principal) (*models.Event, error) {
	event, err := s.load(id, principal)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) load(id string, principal Principal) (*models.Event, error) {
	event, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	if !CanMutate(event, principal) {
		return nil, ErrEventNotFound
	}
	return event, nil
}
