package webserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MANIXH-Z8/GlobalTrotter/pkg/db"
	"github.com/MANIXH-Z8/GlobalTrotter/pkg/itinerary"
	"github.com/MANIXH-Z8/GlobalTrotter/pkg/models"
	"github.com/MANIXH-Z8/GlobalTrotter/pkg/utils"
)

const dateLayout = "2006-01-02"

// CreateTripRequest represents a trip creation request
type CreateTripRequest struct {
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description,omitempty"`
	StartDate     string  `json:"start_date,omitempty"`
	EndDate       string  `json:"end_date,omitempty"`
	CoverImageURL string  `json:"cover_image_url,omitempty"`
	TotalBudget   float64 `json:"total_budget,omitempty"`
}

// UpdateTripRequest represents a trip update request
type UpdateTripRequest struct {
	Name          *string  `json:"name,omitempty"`
	Description   *string  `json:"description,omitempty"`
	StartDate     *string  `json:"start_date,omitempty"`
	EndDate       *string  `json:"end_date,omitempty"`
	CoverImageURL *string  `json:"cover_image_url,omitempty"`
	TotalBudget   *float64 `json:"total_budget,omitempty"`
}

// parseDate parses a calendar date in YYYY-MM-DD form. Empty input is
// treated as "not set".
func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// validDateRange rejects an end date before the start date. Either side
// may be nil while the trip is still being sketched out.
func validDateRange(start, end *time.Time) bool {
	if start == nil || end == nil {
		return true
	}
	return !end.Before(*start)
}

// paginationParams reads page/limit query parameters with sane bounds
func paginationParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

// loadOwnedTrip resolves the :id parameter to a trip owned by the
// authenticated user, writing the error response itself on failure. Only
// the trip row is loaded; callers fetch stops and activities themselves.
func (s *Server) loadOwnedTrip(c *gin.Context) (*models.Trip, bool) {
	return s.resolveOwnedTrip(c, false)
}

// loadOwnedTripGraph is loadOwnedTrip with the stops and their
// activities loaded as well.
func (s *Server) loadOwnedTripGraph(c *gin.Context) (*models.Trip, bool) {
	return s.resolveOwnedTrip(c, true)
}

func (s *Server) resolveOwnedTrip(c *gin.Context, withGraph bool) (*models.Trip, bool) {
	user, err := s.getCurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("User not found"))
		return nil, false
	}

	tripID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid trip ID"))
		return nil, false
	}

	repo := db.NewRepository(s.db)
	var trip *models.Trip
	if withGraph {
		trip, err = repo.GetTripByID(uint(tripID))
	} else {
		trip, err = repo.GetTripRecordByID(uint(tripID))
	}
	if err != nil {
		c.JSON(http.StatusNotFound, utils.NewErrorResponse("Trip not found"))
		return nil, false
	}

	if trip.UserID != user.ID {
		s.logger.LogSecurity("trip_access_denied", user.ID, c.ClientIP(), map[string]interface{}{
			"trip_id": trip.ID,
		})
		c.JSON(http.StatusNotFound, utils.NewErrorResponse("Trip not found"))
		return nil, false
	}

	return trip, true
}

// getTrips lists the authenticated user's trips
func (s *Server) getTrips(c *gin.Context) {
	user, err := s.getCurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("User not found"))
		return
	}

	page, limit := paginationParams(c)

	repo := db.NewRepository(s.db)
	total, err := repo.GetTripsCount(user.ID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to count trips")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to retrieve trips"))
		return
	}

	pagination := utils.NewPagination(page, limit, total)
	trips, err := repo.GetTripsByUserID(user.ID, pagination.Limit, pagination.GetOffset())
	if err != nil {
		s.logger.WithError(err).Error("Failed to list trips")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to retrieve trips"))
		return
	}

	c.JSON(http.StatusOK, utils.NewPaginatedResponse(trips, pagination, "Trips retrieved successfully"))
}

// createTrip creates a new trip for the authenticated user
func (s *Server) createTrip(c *gin.Context) {
	user, err := s.getCurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("User not found"))
		return
	}

	var req CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid request: "+err.Error()))
		return
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid start date, expected YYYY-MM-DD"))
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid end date, expected YYYY-MM-DD"))
		return
	}
	if !validDateRange(start, end) {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("End date cannot be before start date"))
		return
	}

	trip := &models.Trip{
		UserID:        user.ID,
		Name:          s.validator.SanitizeInput(req.Name),
		Description:   req.Description,
		StartDate:     start,
		EndDate:       end,
		CoverImageURL: req.CoverImageURL,
		TotalBudget:   req.TotalBudget,
	}

	repo := db.NewRepository(s.db)
	if err := repo.CreateTrip(trip); err != nil {
		s.logger.LogTrip(0, user.ID, "create", false)
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to create trip"))
		return
	}

	s.logger.LogTrip(trip.ID, user.ID, "create", true)
	c.JSON(http.StatusCreated, utils.NewSuccessResponse(trip, "Trip created successfully"))
}

// getTrip returns a single trip with its stops and activities
func (s *Server) getTrip(c *gin.Context) {
	trip, ok := s.loadOwnedTripGraph(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse(trip, "Trip retrieved successfully"))
}

// updateTrip updates trip details
func (s *Server) updateTrip(c *gin.Context) {
	trip, ok := s.loadOwnedTrip(c)
	if !ok {
		return
	}

	var req UpdateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid request: "+err.Error()))
		return
	}

	if req.Name != nil {
		name := s.validator.SanitizeInput(*req.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Trip name cannot be empty"))
			return
		}
		trip.Name = name
	}
	if req.Description != nil {
		trip.Description = *req.Description
	}
	if req.StartDate != nil {
		start, err := parseDate(*req.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid start date, expected YYYY-MM-DD"))
			return
		}
		trip.StartDate = start
	}
	if req.EndDate != nil {
		end, err := parseDate(*req.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid end date, expected YYYY-MM-DD"))
			return
		}
		trip.EndDate = end
	}
	if !validDateRange(trip.StartDate, trip.EndDate) {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("End date cannot be before start date"))
		return
	}
	if req.CoverImageURL != nil {
		trip.CoverImageURL = *req.CoverImageURL
	}
	if req.TotalBudget != nil {
		if *req.TotalBudget < 0 {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Budget cannot be negative"))
			return
		}
		trip.TotalBudget = *req.TotalBudget
	}

	repo := db.NewRepository(s.db)
	if err := repo.UpdateTrip(trip); err != nil {
		s.logger.LogTrip(trip.ID, trip.UserID, "update", false)
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to update trip"))
		return
	}

	s.logger.LogTrip(trip.ID, trip.UserID, "update", true)
	c.JSON(http.StatusOK, utils.NewSuccessResponse(trip, "Trip updated successfully"))
}

// deleteTrip removes a trip and everything attached to it
func (s *Server) deleteTrip(c *gin.Context) {
	trip, ok := s.loadOwnedTrip(c)
	if !ok {
		return
	}

	repo := db.NewRepository(s.db)
	if err := repo.DeleteTrip(trip.ID); err != nil {
		s.logger.LogTrip(trip.ID, trip.UserID, "delete", false)
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to delete trip"))
		return
	}

	s.logger.LogTrip(trip.ID, trip.UserID, "delete", true)
	c.JSON(http.StatusOK, utils.NewSuccessResponse(nil, "Trip deleted successfully"))
}

// getTripSummary returns the derived view of a trip: cost breakdown,
// duration, pace, remaining budget and conflict alerts. The stop list is
// fetched first, then every stop's activities concurrently; any failed
// fetch fails the whole request rather than summarizing a partial graph.
func (s *Server) getTripSummary(c *gin.Context) {
	trip, ok := s.loadOwnedTrip(c)
	if !ok {
		return
	}

	repo := db.NewRepository(s.db)
	stops, err := repo.GetStopsByTripID(trip.ID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load stops for summary")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to compute trip summary"))
		return
	}

	stops, err = itinerary.LoadActivities(c.Request.Context(), repo, stops)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load activities for summary")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to compute trip summary"))
		return
	}

	summary := itinerary.Summarize(*trip, stops)
	c.JSON(http.StatusOK, utils.NewSuccessResponse(summary, "Trip summary computed successfully"))
}
