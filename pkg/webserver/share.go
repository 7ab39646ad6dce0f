package webserver

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MANIXH-Z8/GlobalTrotter/pkg/db"
	"github.com/MANIXH-Z8/GlobalTrotter/pkg/itinerary"
	"github.com/MANIXH-Z8/GlobalTrotter/pkg/utils"
)

// maxImportSize bounds the accepted export document body (5 MB)
const maxImportSize = 5 << 20

// shareTrip makes a trip publicly reachable through its share code. The
// code survives unshare/reshare cycles so old links keep working.
func (s *Server) shareTrip(c *gin.Context) {
	trip, ok := s.loadOwnedTrip(c)
	if !ok {
		return
	}

	if trip.ShareCode == "" {
		trip.ShareCode = s.tokens.GenerateShareCode()
	}
	trip.IsPublic = true

	repo := db.NewRepository(s.db)
	if err := repo.UpdateTrip(trip); err != nil {
		s.logger.LogShare(trip.ShareCode, trip.ID, "share", false)
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to share trip"))
		return
	}

	s.logger.LogShare(trip.ShareCode, trip.ID, "share", true)
	c.JSON(http.StatusOK, utils.NewSuccessResponse(map[string]interface{}{
		"share_code": trip.ShareCode,
		"share_url":  fmt.Sprintf("/shared?share=%s", trip.ShareCode),
	}, "Trip shared successfully"))
}

// unshareTrip withdraws public access to a trip
func (s *Server) unshareTrip(c *gin.Context) {
	trip, ok := s.loadOwnedTrip(c)
	if !ok {
		return
	}

	trip.IsPublic = false

	repo := db.NewRepository(s.db)
	if err := repo.UpdateTrip(trip); err != nil {
		s.logger.LogShare(trip.ShareCode, trip.ID, "unshare", false)
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to unshare trip"))
		return
	}

	s.logger.LogShare(trip.ShareCode, trip.ID, "unshare", true)
	c.JSON(http.StatusOK, utils.NewSuccessResponse(nil, "Trip is no longer shared"))
}

// getSharedTrip serves a publicly shared itinerary without
// authentication.
func (s *Server) getSharedTrip(c *gin.Context) {
	code := c.Query("share")
	if !s.validator.ValidateShareCode(code) {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid share code"))
		return
	}

	repo := db.NewRepository(s.db)
	trip, err := repo.GetTripByShareCode(code)
	if err != nil {
		c.JSON(http.StatusNotFound, utils.NewErrorResponse("Shared trip not found"))
		return
	}

	s.logger.LogShare(code, trip.ID, "view", true)
	c.JSON(http.StatusOK, utils.NewSuccessResponse(trip, "Shared trip retrieved successfully"))
}

// copyTrip duplicates a trip with all its stops and activities under the
// same owner. The copy starts private.
func (s *Server) copyTrip(c *gin.Context) {
	trip, ok := s.loadOwnedTripGraph(c)
	if !ok {
		return
	}

	repo := db.NewRepository(s.db)
	result, err := itinerary.Duplicate(repo, *trip)
	if err != nil {
		s.logger.LogTrip(trip.ID, trip.UserID, "copy", false)
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to copy trip"))
		return
	}

	s.logger.LogTrip(result.Trip.ID, trip.UserID, "copy", true)
	c.JSON(http.StatusCreated, utils.NewSuccessResponse(result.Trip, "Trip copied successfully"))
}

// exportTrip downloads a trip as a portable JSON document
func (s *Server) exportTrip(c *gin.Context) {
	trip, ok := s.loadOwnedTripGraph(c)
	if !ok {
		return
	}

	flatTrip, stops, activities := itinerary.Flatten(*trip)
	doc := itinerary.Export(flatTrip, stops, activities, time.Now().UTC())

	filename := utils.ExportFilename(trip.Name, time.Now().UTC())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.JSON(http.StatusOK, doc)
}

// importTrip recreates a trip from an export document under the
// authenticated user's account.
func (s *Server) importTrip(c *gin.Context) {
	user, err := s.getCurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("User not found"))
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportSize))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Failed to read request body"))
		return
	}

	doc, err := itinerary.ValidateExport(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid export document: "+err.Error()))
		return
	}

	prepared := itinerary.PrepareForInsert(*doc, user.ID)

	repo := db.NewRepository(s.db)
	result, err := itinerary.Import(repo, prepared)
	if err != nil {
		s.logger.LogImport(user.ID, 0, 0, 0, 0, false)
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to import trip"))
		return
	}

	s.logger.LogImport(user.ID, result.Trip.ID, result.StopsCreated, result.ActivitiesCreated, result.ActivitiesDropped, true)
	c.JSON(http.StatusCreated, utils.NewSuccessResponse(map[string]interface{}{
		"trip":               result.Trip,
		"stops_created":      result.StopsCreated,
		"activities_created": result.ActivitiesCreated,
		"activities_dropped": result.ActivitiesDropped,
	}, "Trip imported successfully"))
}
