package webserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MANIXH-Z8/GlobalTrotter/pkg/db"
	"github.com/MANIXH-Z8/GlobalTrotter/pkg/itinerary"
	"github.com/MANIXH-Z8/GlobalTrotter/pkg/models"
	"github.com/MANIXH-Z8/GlobalTrotter/pkg/utils"
)

// CreateStopRequest represents a stop creation request
type CreateStopRequest struct {
	CityID            *uint   `json:"city_id,omitempty"`
	CityName          string  `json:"city_name" binding:"required"`
	Country           string  `json:"country,omitempty"`
	StartDate         string  `json:"start_date,omitempty"`
	EndDate           string  `json:"end_date,omitempty"`
	TransportCost     float64 `json:"transport_cost,omitempty"`
	AccommodationCost float64 `json:"accommodation_cost,omitempty"`
	Notes             string  `json:"notes,omitempty"`
}

// UpdateStopRequest represents a stop update request
type UpdateStopRequest struct {
	CityID            *uint    `json:"city_id,omitempty"`
	CityName          *string  `json:"city_name,omitempty"`
	Country           *string  `json:"country,omitempty"`
	StartDate         *string  `json:"start_date,omitempty"`
	EndDate           *string  `json:"end_date,omitempty"`
	TransportCost     *float64 `json:"transport_cost,omitempty"`
	AccommodationCost *float64 `json:"accommodation_cost,omitempty"`
	Notes             *string  `json:"notes,omitempty"`
}

// MoveStopRequest represents a stop reorder request
type MoveStopRequest struct {
	Direction string `json:"direction" binding:"required"`
}

// loadOwnedStop resolves the :id parameter to a stop whose trip belongs
// to the authenticated user, writing the error response itself on
// failure.
func (s *Server) loadOwnedStop(c *gin.Context) (*models.TripStop, *models.Trip, bool) {
	user, err := s.getCurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("User not found"))
		return nil, nil, false
	}

	stopID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid stop ID"))
		return nil, nil, false
	}

	repo := db.NewRepository(s.db)
	stop, err := repo.GetStopByID(uint(stopID))
	if err != nil {
		c.JSON(http.StatusNotFound, utils.NewErrorResponse("Stop not found"))
		return nil, nil, false
	}

	trip, err := repo.GetTripRecordByID(stop.TripID)
	if err != nil || trip.UserID != user.ID {
		s.logger.LogSecurity("stop_access_denied", user.ID, c.ClientIP(), map[string]interface{}{
			"stop_id": stop.ID,
		})
		c.JSON(http.StatusNotFound, utils.NewErrorResponse("Stop not found"))
		return nil, nil, false
	}

	return stop, trip, true
}

// getStops lists the stops of a trip in display order
func (s *Server) getStops(c *gin.Context) {
	trip, ok := s.loadOwnedTrip(c)
	if !ok {
		return
	}

	repo := db.NewRepository(s.db)
	stops, err := repo.GetStopsByTripID(trip.ID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list stops")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to retrieve stops"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse(stops, "Stops retrieved successfully"))
}

// createStop appends a new stop to a trip
func (s *Server) createStop(c *gin.Context) {
	trip, ok := s.loadOwnedTrip(c)
	if !ok {
		return
	}

	var req CreateStopRequest
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

	repo := db.NewRepository(s.db)

	cityName := s.validator.SanitizeInput(req.CityName)
	country := req.Country

	// A catalog reference fills in the display fields
	if req.CityID != nil {
		city, err := repo.GetCityByID(*req.CityID)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Unknown city"))
			return
		}
		cityName = city.Name
		country = city.Country
	}

	orderIndex, err := repo.GetNextStopOrderIndex(trip.ID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to compute stop order")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to create stop"))
		return
	}

	stop := &models.TripStop{
		TripID:            trip.ID,
		CityID:            req.CityID,
		CityName:          cityName,
		Country:           country,
		StartDate:         start,
		EndDate:           end,
		OrderIndex:        orderIndex,
		TransportCost:     req.TransportCost,
		AccommodationCost: req.AccommodationCost,
		Notes:             req.Notes,
	}

	if err := repo.CreateStop(stop); err != nil {
		s.logger.WithError(err).Error("Failed to create stop")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to create stop"))
		return
	}

	c.JSON(http.StatusCreated, utils.NewSuccessResponse(stop, "Stop created successfully"))
}

// updateStop updates stop details
func (s *Server) updateStop(c *gin.Context) {
	stop, _, ok := s.loadOwnedStop(c)
	if !ok {
		return
	}

	var req UpdateStopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid request: "+err.Error()))
		return
	}

	repo := db.NewRepository(s.db)

	if req.CityID != nil {
		city, err := repo.GetCityByID(*req.CityID)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Unknown city"))
			return
		}
		stop.CityID = req.CityID
		stop.CityName = city.Name
		stop.Country = city.Country
	}
	if req.CityName != nil {
		name := s.validator.SanitizeInput(*req.CityName)
		if name == "" {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse("City name cannot be empty"))
			return
		}
		stop.CityName = name
	}
	if req.Country != nil {
		stop.Country = *req.Country
	}
	if req.StartDate != nil {
		start, err := parseDate(*req.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid start date, expected YYYY-MM-DD"))
			return
		}
		stop.StartDate = start
	}
	if req.EndDate != nil {
		end, err := parseDate(*req.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid end date, expected YYYY-MM-DD"))
			return
		}
		stop.EndDate = end
	}
	if !validDateRange(stop.StartDate, stop.EndDate) {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("End date cannot be before start date"))
		return
	}
	if req.TransportCost != nil {
		stop.TransportCost = *req.TransportCost
	}
	if req.AccommodationCost != nil {
		stop.AccommodationCost = *req.AccommodationCost
	}
	if req.Notes != nil {
		stop.Notes = *req.Notes
	}

	if err := repo.UpdateStop(stop); err != nil {
		s.logger.WithError(err).Error("Failed to update stop")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to update stop"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse(stop, "Stop updated successfully"))
}

// deleteStop removes a stop and its activities
func (s *Server) deleteStop(c *gin.Context) {
	stop, _, ok := s.loadOwnedStop(c)
	if !ok {
		return
	}

	repo := db.NewRepository(s.db)
	if err := repo.DeleteStop(stop.ID); err != nil {
		s.logger.WithError(err).Error("Failed to delete stop")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to delete stop"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse(nil, "Stop deleted successfully"))
}

// moveStop swaps a stop with its neighbour in the requested direction.
// Moving past either end of the trip is a no-op, not an error.
func (s *Server) moveStop(c *gin.Context) {
	stop, trip, ok := s.loadOwnedStop(c)
	if !ok {
		return
	}

	var req MoveStopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid request: "+err.Error()))
		return
	}

	direction := itinerary.Direction(req.Direction)
	if !direction.Valid() {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Direction must be \"up\" or \"down\""))
		return
	}

	repo := db.NewRepository(s.db)
	stops, err := repo.GetStopsByTripID(trip.ID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load stops for reorder")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to move stop"))
		return
	}

	moved, err := itinerary.MoveStop(repo, stops, stop.ID, direction)
	if err != nil {
		s.logger.WithError(err).Error("Failed to move stop")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to move stop"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse(map[string]interface{}{
		"moved": moved,
		"stops": stops,
	}, "Stop order updated"))
}
