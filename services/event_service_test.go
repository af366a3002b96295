// File: /services/event_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"localevents-api/models"
	"localevents-api/repositories"
)

func newTestService(t *testing.T) (*EventService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// the schema lives in a single connection
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Event{}))

	return NewEventService(repositories.NewEventRepository(db)), db
}

func tomorrowNoon() time.Time {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return midnight.Add(36 * time.Hour)
}

func sampleEvent(name string, category models.Category, date time.Time) *models.Event {
	return &models.Event{
		Name:        name,
		Location:    "Test Venue",
		Latitude:    47.4979,
		Longitude:   19.0402,
		Description: "A test event",
		Link:        "https://example.com/event",
		Paid:        false,
		Category:    category,
		UserName:    "owner",
		UserImage:   "/uploads/owner.png",
		EventDate:   date,
	}
}

var (
	owner    = Principal{ID: "owner-1", Role: models.RoleUser}
	admin    = Principal{ID: "admin-1", Role: models.RoleAdmin}
	stranger = Principal{ID: "other-1", Role: models.RoleUser}
)

func TestCanMutate(t *testing.T) {
	event := &models.Event{ID: "e1", UserID: owner.ID}

	assert.True(t, CanMutate(event, owner))
	assert.True(t, CanMutate(event, admin))
	assert.False(t, CanMutate(event, stranger))
	assert.False(t, CanMutate(nil, admin))
}

func TestNormalizePaging(t *testing.T) {
	cases := []struct {
		page, pageSize         int
		wantPage, wantPageSize int
	}{
		{1, 10, 1, 10},
		{0, 0, 1, 10},
		{-3, -7, 1, 10},
		{2, 25, 2, 25},
		{5, 500, 5, 50},
	}

	for _, tc := range cases {
		page, pageSize := NormalizePaging(tc.page, tc.pageSize)
		assert.Equal(t, tc.wantPage, page)
		assert.Equal(t, tc.wantPageSize, pageSize)
	}
}

func TestCreateAssignsOwnerFromPrincipal(t *testing.T) {
	svc, _ := newTestService(t)

	event := sampleEvent("Jazz Night", models.CategoryMusic, tomorrowNoon())
	event.UserID = "spoofed-owner" // must be ignored

	created, err := svc.Create(event, owner)
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, owner.ID, created.UserID)
}

func TestCreateThenListByBucketAndCategory(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(sampleEvent("Jazz Night", models.CategoryMusic, tomorrowNoon()), owner)
	require.NoError(t, err)
	_, err = svc.Create(sampleEvent("Go Meetup", models.CategoryTech, tomorrowNoon()), owner)
	require.NoError(t, err)

	events, total, err := svc.Search(models.EventFilter{
		DateBucket: BucketTomorrow,
		Categories: []string{"Music"},
	}, 1, 10)
	require.NoError(t, err)

	require.GreaterOrEqual(t, total, int64(1))
	require.Len(t, events, 1)
	assert.Equal(t, "Jazz Night", events[0].Name)
}

func TestSearchEmptyCategoryListMatchesAny(t *testing.T) {
	svc, _ := newTestService(t)

	date := tomorrowNoon()
	for i, cat := range []models.Category{models.CategoryMusic, models.CategoryTech, models.CategoryArt} {
		_, err := svc.Create(sampleEvent("Event Number "+string(rune('A'+i)), cat, date), owner)
		require.NoError(t, err)
	}

	_, totalNoFilter, err := svc.Search(models.EventFilter{}, 1, 10)
	require.NoError(t, err)

	_, totalInvalid, err := svc.Search(models.EventFilter{Categories: []string{"Cooking", "Gaming"}}, 1, 10)
	require.NoError(t, err)

	_, totalEmpty, err := svc.Search(models.EventFilter{Categories: []string{}}, 1, 10)
	require.NoError(t, err)

	assert.Equal(t, totalNoFilter, totalInvalid)
	assert.Equal(t, totalNoFilter, totalEmpty)
	assert.Equal(t, int64(3), totalNoFilter)
}

func TestSearchGeoBoundsFilter(t *testing.T) {
	svc, _ := newTestService(t)

	near := sampleEvent("Near Event", models.CategoryArt, tomorrowNoon())
	near.Latitude, near.Longitude = 47.50, 19.05

	far := sampleEvent("Far Event", models.CategoryArt, tomorrowNoon())
	far.Latitude, far.Longitude = 48.50, 21.00 // well over 30 km away

	for _, e := range []*models.Event{near, far} {
		_, err := svc.Create(e, owner)
		require.NoError(t, err)
	}

	lat, lng := 47.4979, 19.0402
	events, total, err := svc.Search(models.EventFilter{Latitude: &lat, Longitude: &lng}, 1, 10)
	require.NoError(t, err)

	require.Equal(t, int64(1), total)
	assert.Equal(t, "Near Event", events[0].Name)

	// no coordinates: geography does not restrict at all
	_, total, err = svc.Search(models.EventFilter{}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestSearchPaginationWalksAllRows(t *testing.T) {
	svc, _ := newTestService(t)

	date := tomorrowNoon()
	for i := 0; i < 7; i++ {
		event := sampleEvent("Paged Event", models.CategoryHealth, date.Add(time.Duration(i)*time.Minute))
		_, err := svc.Create(event, owner)
		require.NoError(t, err)
	}

	var walked int
	var firstPage []models.Event
	for page := 1; ; page++ {
		events, total, err := svc.Search(models.EventFilter{}, page, 3)
		require.NoError(t, err)
		require.Equal(t, int64(7), total)

		if page == 1 {
			firstPage = events
		}
		if len(events) == 0 {
			break
		}
		walked += len(events)
	}
	assert.Equal(t, 7, walked)

	// same request twice returns the same page
	again, _, err := svc.Search(models.EventFilter{}, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, firstPage, again)
}

func TestSearchOrderedByEventDate(t *testing.T) {
	svc, _ := newTestService(t)

	base := tomorrowNoon()
	_, err := svc.Create(sampleEvent("Later Event", models.CategoryMusic, base.Add(2*time.Hour)), owner)
	require.NoError(t, err)
	_, err = svc.Create(sampleEvent("Earlier Event", models.CategoryMusic, base), owner)
	require.NoError(t, err)

	events, _, err := svc.Search(models.EventFilter{}, 1, 10)
	require.NoError(t, err)

	require.Len(t, events, 2)
	assert.Equal(t, "Earlier Event", events[0].Name)
	assert.Equal(t, "Later Event", events[1].Name)
}

func TestUpdatePartialPreservesUntouchedFields(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(sampleEvent("Original Name", models.CategoryMusic, tomorrowNoon()), owner)
	require.NoError(t, err)

	updated, err := svc.Update(created.ID, map[string]interface{}{
		"description": "new text",
	}, owner)
	require.NoError(t, err)

	assert.Equal(t, "new text", updated.Description)
	assert.Equal(t, "Original Name", updated.Name)
	assert.Equal(t, "Test Venue", updated.Location)
	assert.Equal(t, models.CategoryMusic, updated.Category)
}

func TestUpdateDeniedForStrangerAndMissing(t *testing.T) {
	svc, db := newTestService(t)

	created, err := svc.Create(sampleEvent("Private Event", models.CategoryTech, tomorrowNoon()), owner)
	require.NoError(t, err)

	_, err = svc.Update(created.ID, map[string]interface{}{"name": "Hijacked"}, stranger)
	assert.ErrorIs(t, err, ErrEventNotFound)

	// a missing id fails identically, leaking nothing
	_, err = svc.Update("no-such-id", map[string]interface{}{"name": "Hijacked"}, stranger)
	assert.ErrorIs(t, err, ErrEventNotFound)

	// storage unchanged after the denied attempt
	var stored models.Event
	require.NoError(t, db.First(&stored, "id = ?", created.ID).Error)
	assert.Equal(t, "Private Event", stored.Name)
}

func TestAdminMayMutateAnyEvent(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(sampleEvent("Owned Event", models.CategoryArt, tomorrowNoon()), owner)
	require.NoError(t, err)

	updated, err := svc.Update(created.ID, map[string]interface{}{"name": "Moderated Name"}, admin)
	require.NoError(t, err)
	assert.Equal(t, "Moderated Name", updated.Name)
}

func TestDeleteRemovesFromListingAndReturnsPriorState(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(sampleEvent("Doomed Event", models.CategoryBusiness, tomorrowNoon()), owner)
	require.NoError(t, err)
	_, err = svc.Create(sampleEvent("Surviving Event", models.CategoryBusiness, tomorrowNoon()), owner)
	require.NoError(t, err)

	_, before, err := svc.Search(models.EventFilter{}, 1, 10)
	require.NoError(t, err)

	deleted, err := svc.Delete(created.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, "Doomed Event", deleted.Name)

	events, after, err := svc.Search(models.EventFilter{}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, before-1, after)
	for _, e := range events {
		assert.NotEqual(t, created.ID, e.ID)
	}

	// the stranger cannot delete, and delete of a deleted event is a 404
	_, err = svc.Delete(created.ID, owner)
	assert.ErrorIs(t, err, ErrEventNotFound)
}
