package webserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MANIXH-Z8/GlobalTrotter/pkg/db"
	"github.com/MANIXH-Z8/GlobalTrotter/pkg/models"
	"github.com/MANIXH-Z8/GlobalTrotter/pkg/utils"
)

// CreateActivityRequest represents an activity creation request. Either
// a catalog activity_id or a free-form name must be given.
type CreateActivityRequest struct {
	ActivityID    *uint    `json:"activity_id,omitempty"`
	Name          string   `json:"name,omitempty"`
	Description   string   `json:"description,omitempty"`
	ScheduledAt   string   `json:"scheduled_at,omitempty"`
	DurationHours float64  `json:"duration_hours,omitempty"`
	EstimatedCost *float64 `json:"estimated_cost,omitempty"`
	Category      string   `json:"category,omitempty"`
}

// UpdateActivityRequest represents an activity update request
type UpdateActivityRequest struct {
	Name          *string  `json:"name,omitempty"`
	Description   *string  `json:"description,omitempty"`
	ScheduledAt   *string  `json:"scheduled_at,omitempty"`
	DurationHours *float64 `json:"duration_hours,omitempty"`
	EstimatedCost *float64 `json:"estimated_cost,omitempty"`
	Category      *string  `json:"category,omitempty"`
}

// parseTimestamp parses an RFC3339 timestamp, also accepting a bare
// calendar date. Empty input is treated as "not scheduled".
func parseTimestamp(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// loadOwnedActivity resolves the :id parameter to an activity whose trip
// belongs to the authenticated user.
func (s *Server) loadOwnedActivity(c *gin.Context) (*models.TripActivity, bool) {
	user, err := s.getCurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("User not found"))
		return nil, false
	}

	activityID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid activity ID"))
		return nil, false
	}

	repo := db.NewRepository(s.db)
	activity, err := repo.GetActivityByID(uint(activityID))
	if err != nil {
		c.JSON(http.StatusNotFound, utils.NewErrorResponse("Activity not found"))
		return nil, false
	}

	stop, err := repo.GetStopByID(activity.TripStopID)
	if err != nil {
		c.JSON(http.StatusNotFound, utils.NewErrorResponse("Activity not found"))
		return nil, false
	}

	trip, err := repo.GetTripRecordByID(stop.TripID)
	if err != nil || trip.UserID != user.ID {
		s.logger.LogSecurity("activity_access_denied", user.ID, c.ClientIP(), map[string]interface{}{
			"activity_id": activity.ID,
		})
		c.JSON(http.StatusNotFound, utils.NewErrorResponse("Activity not found"))
		return nil, false
	}

	return activity, true
}

// getActivities lists the activities of a stop in display order
func (s *Server) getActivities(c *gin.Context) {
	stop, _, ok := s.loadOwnedStop(c)
	if !ok {
		return
	}

	repo := db.NewRepository(s.db)
	activities, err := repo.GetActivitiesByStopID(stop.ID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list activities")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to retrieve activities"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse(activities, "Activities retrieved successfully"))
}

// createActivity attaches an activity to a stop, either from the
// catalog or entered by hand.
func (s *Server) createActivity(c *gin.Context) {
	stop, _, ok := s.loadOwnedStop(c)
	if !ok {
		return
	}

	var req CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid request: "+err.Error()))
		return
	}

	scheduledAt, err := parseTimestamp(req.ScheduledAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid scheduled time"))
		return
	}

	repo := db.NewRepository(s.db)

	activity := &models.TripActivity{
		TripStopID:    stop.ID,
		ScheduledAt:   scheduledAt,
		DurationHours: req.DurationHours,
		Category:      req.Category,
		Description:   req.Description,
		IsCustom:      true,
	}

	// Catalog entries seed the display fields; explicit request values
	// still win.
	if req.ActivityID != nil {
		catalog, err := repo.GetCatalogActivityByID(*req.ActivityID)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Unknown catalog activity"))
			return
		}
		activity.ActivityID = req.ActivityID
		activity.IsCustom = false
		activity.Name = catalog.Name
		if activity.Description == "" {
			activity.Description = catalog.Description
		}
		if activity.Category == "" {
			activity.Category = catalog.Category
		}
		if activity.DurationHours == 0 {
			activity.DurationHours = catalog.DurationHours
		}
		activity.EstimatedCost = catalog.AverageCost
	}

	if req.Name != "" {
		activity.Name = s.validator.SanitizeInput(req.Name)
	}
	if activity.Name == "" {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Activity name is required"))
		return
	}
	if req.EstimatedCost != nil {
		activity.EstimatedCost = *req.EstimatedCost
	}

	orderIndex, err := repo.GetNextActivityOrderIndex(stop.ID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to compute activity order")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to create activity"))
		return
	}
	activity.OrderIndex = orderIndex

	if err := repo.CreateActivity(activity); err != nil {
		s.logger.WithError(err).Error("Failed to create activity")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to create activity"))
		return
	}

	c.JSON(http.StatusCreated, utils.NewSuccessResponse(activity, "Activity created successfully"))
}

// updateActivity updates activity details
func (s *Server) updateActivity(c *gin.Context) {
	activity, ok := s.loadOwnedActivity(c)
	if !ok {
		return
	}

	var req UpdateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid request: "+err.Error()))
		return
	}

	if req.Name != nil {
		name := s.validator.SanitizeInput(*req.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Activity name cannot be empty"))
			return
		}
		activity.Name = name
	}
	if req.Description != nil {
		activity.Description = *req.Description
	}
	if req.ScheduledAt != nil {
		scheduledAt, err := parseTimestamp(*req.ScheduledAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid scheduled time"))
			return
		}
		activity.ScheduledAt = scheduledAt
	}
	if req.DurationHours != nil {
		activity.DurationHours = *req.DurationHours
	}
	if req.EstimatedCost != nil {
		activity.EstimatedCost = *req.EstimatedCost
	}
	if req.Category != nil {
		activity.Category = *req.Category
	}

	repo := db.NewRepository(s.db)
	if err := repo.UpdateActivity(activity); err != nil {
		s.logger.WithError(err).Error("Failed to update activity")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to update activity"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse(activity, "Activity updated successfully"))
}

// deleteActivity removes an activity from its stop
func (s *Server) deleteActivity(c *gin.Context) {
	activity, ok := s.loadOwnedActivity(c)
	if !ok {
		return
	}

	repo := db.NewRepository(s.db)
	if err := repo.DeleteActivity(activity.ID); err != nil {
		s.logger.WithError(err).Error("Failed to delete activity")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to delete activity"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse(nil, "Activity deleted successfully"))
}
