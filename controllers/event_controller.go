// File: /controllers/event_controller.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"localevents-api/models"
	"localevents-api/services"
	"localevents-api/utils"
)

type EventController struct {
	events *services.EventService
}

func NewEventController(events *services.EventService) *EventController {
	return &EventController{events: events}
}

type CreateEventRequest struct {
	Name        string    `json:"name" binding:"required"`
	Location    string    `json:"location"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	Description string    `json:"description" binding:"required"`
	Link        string    `json:"link" binding:"required,url"`
	Paid        *bool     `json:"paid" binding:"required"`
	UserImage   string    `json:"userImage" binding:"required"`
	UserName    string    `json:"userName" binding:"required"`
	EventDate   time.Time `json:"eventDate" binding:"required"`
	Category    string    `json:"category" binding:"required"`
}

type UpdateEventRequest struct {
	Name        *string    `json:"name"`
	Location    *string    `json:"location"`
	Latitude    *float64   `json:"latitude"`
	Longitude   *float64   `json:"longitude"`
	Description *string    `json:"description"`
	Link        *string    `json:"link"`
	Paid        *bool      `json:"paid"`
	UserImage   *string    `json:"userImage"`
	UserName    *string    `json:"userName"`
	EventDate   *time.Time `json:"eventDate"`
	Category    *string    `json:"category"`
}

// ListEvents handles GET /api/events. Public; every filter is optional and a
// skipped filter applies no restriction.
func (ec *EventController) ListEvents(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	page, pageSize = services.NormalizePaging(page, pageSize)

	filter := models.EventFilter{
		DateBucket: c.Query("date"),
	}

	if categories := c.Query("categories"); categories != "" {
		filter.Categories = strings.Split(categories, ",")
	}

	// Coordinates come from the client's geocoder; a failed or skipped
	// lookup means no location predicate at all.
	if lat, err := strconv.ParseFloat(c.Query("latitude"), 64); err == nil {
		if lng, err := strconv.ParseFloat(c.Query("longitude"), 64); err == nil {
			if utils.IsValidLatitude(lat) && utils.IsValidLongitude(lng) {
				filter.Latitude = &lat
				filter.Longitude = &lng
			}
		}
	}

	events, total, err := ec.events.Search(filter, page, pageSize)
	if err != nil {
		utils.SendServerError(c, "Failed to fetch events", err)
		return
	}

	if events == nil {
		events = []models.Event{}
	}

	utils.SendPaginated(c, events, page, pageSize, total)
}

// GetEvent handles GET /api/events/:id.
func (ec *EventController) GetEvent(c *gin.Context) {
	event, err := ec.events.Get(c.Param("id"))
	if err != nil {
		utils.SendError(c, http.StatusNotFound, "Event not found")
		return
	}

	utils.SendData(c, event)
}

// CreateEvent handles POST /api/events.
func (ec *EventController) CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendFieldErrors(c, utils.FieldErrorsFromBinding(err))
		return
	}

	if fieldErrs := validateEventFields(&req.Name, &req.Category, req.Latitude, req.Longitude); len(fieldErrs) > 0 {
		utils.SendFieldErrors(c, fieldErrs)
		return
	}

	event := models.Event{
		Name:        req.Name,
		Location:    req.Location,
		Description: req.Description,
		Link:        req.Link,
		Paid:        *req.Paid,
		UserImage:   req.UserImage,
		UserName:    req.UserName,
		EventDate:   req.EventDate,
		Category:    models.Category(req.Category),
	}
	if req.Latitude != nil {
		event.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		event.Longitude = *req.Longitude
	}

	created, err := ec.events.Create(&event, principalFrom(c))
	if err != nil {
		utils.SendServerError(c, "Failed to create event", err)
		return
	}

	utils.SendData(c, created)
}

// UpdateEvent handles PUT /api/events/:id. Only fields present in the body
// are applied; everything else is left as stored.
func (ec *EventController) UpdateEvent(c *gin.Context) {
	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendFieldErrors(c, utils.FieldErrorsFromBinding(err))
		return
	}

	if fieldErrs := validateEventFields(req.Name, req.Category, req.Latitude, req.Longitude); len(fieldErrs) > 0 {
		utils.SendFieldErrors(c, fieldErrs)
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Latitude != nil {
		updates["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		updates["longitude"] = *req.Longitude
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Link != nil {
		updates["link"] = *req.Link
	}
	if req.Paid != nil {
		updates["paid"] = *req.Paid
	}
	if req.UserImage != nil {
		updates["user_image"] = *req.UserImage
	}
	if req.UserName != nil {
		updates["user_name"] = *req.UserName
	}
	if req.EventDate != nil {
		updates["event_date"] = *req.EventDate
	}
	if req.Category != nil {
		updates["category"] = models.Category(*req.Category)
	}

	event, err := ec.events.Update(c.Param("id"), updates, principalFrom(c))
	if err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			utils.SendError(c, http.StatusNotFound, "Event not found")
			return
		}
		utils.SendServerError(c, "Failed to update event", err)
		return
	}

	utils.SendData(c, event)
}

// DeleteEvent handles DELETE /api/events/:id and returns the removed record.
func (ec *EventController) DeleteEvent(c *gin.Context) {
	event, err := ec.events.Delete(c.Param("id"), principalFrom(c))
	if err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			utils.SendError(c, http.StatusNotFound, "Event not found")
			return
		}
		utils.SendServerError(c, "Failed to delete event", err)
		return
	}

	utils.SendData(c, event)
}

// validateEventFields applies the constraints the binding tags cannot
// express. Nil pointers mean the field was not supplied.
func validateEventFields(name, category *string, lat, lng *float64) []utils.FieldError {
	var errs []utils.FieldError

	if name != nil && !utils.IsValidEventName(*name) {
		errs = append(errs, utils.FieldError{
			Field:   "name",
			Message: "must be 3-50 characters, letters, digits and spaces only",
		})
	}
	if category != nil && !models.Category(*category).Valid() {
		errs = append(errs, utils.FieldError{
			Field:   "category",
			Message: "is not a known category",
		})
	}
	if lat != nil && !utils.IsValidLatitude(*lat) {
		errs = append(errs, utils.FieldError{Field: "latitude", Message: "is out of range"})
	}
	if lng != nil && !utils.IsValidLongitude(*lng) {
		errs = append(errs, utils.FieldError{Field: "longitude", Message: "is out of range"})
	}

	return errs
}

func principalFrom(c *gin.Context) services.Principal {
	return services.Principal{
		ID:   c.GetString("user_id"),
		Role: models.Role(c.GetString("user_role")),
	}
}
