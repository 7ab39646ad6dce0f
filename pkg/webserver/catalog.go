package webserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MANIXH-Z8/GlobalTrotter/pkg/db"
	"github.com/MANIXH-Z8/GlobalTrotter/pkg/utils"
)

// getCities searches the destination catalog, most popular first
func (s *Server) getCities(c *gin.Context) {
	search := s.validator.SanitizeInput(c.Query("search"))
	page, limit := paginationParams(c)

	repo := db.NewRepository(s.db)
	total, err := repo.GetCitiesCount(search)
	if err != nil {
		s.logger.WithError(err).Error("Failed to count cities")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to retrieve cities"))
		return
	}

	pagination := utils.NewPagination(page, limit, total)
	cities, err := repo.GetCities(search, pagination.Limit, pagination.GetOffset())
	if err != nil {
		s.logger.WithError(err).Error("Failed to list cities")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to retrieve cities"))
		return
	}

	c.JSON(http.StatusOK, utils.NewPaginatedResponse(cities, pagination, "Cities retrieved successfully"))
}

// getCity returns a single catalog city
func (s *Server) getCity(c *gin.Context) {
	cityID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid city ID"))
		return
	}

	repo := db.NewRepository(s.db)
	city, err := repo.GetCityByID(uint(cityID))
	if err != nil {
		c.JSON(http.StatusNotFound, utils.NewErrorResponse("City not found"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse(city, "City retrieved successfully"))
}

// getCatalogActivities searches the activity catalog
func (s *Server) getCatalogActivities(c *gin.Context) {
	search := s.validator.SanitizeInput(c.Query("search"))
	category := s.validator.SanitizeInput(c.Query("category"))
	page, limit := paginationParams(c)

	repo := db.NewRepository(s.db)
	total, err := repo.GetCatalogActivitiesCount(search, category)
	if err != nil {
		s.logger.WithError(err).Error("Failed to count catalog activities")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to retrieve activities"))
		return
	}

	pagination := utils.NewPagination(page, limit, total)
	activities, err := repo.GetCatalogActivities(search, category, pagination.Limit, pagination.GetOffset())
	if err != nil {
		s.logger.WithError(err).Error("Failed to list catalog activities")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to retrieve activities"))
		return
	}

	c.JSON(http.StatusOK, utils.NewPaginatedResponse(activities, pagination, "Activities retrieved successfully"))
}

// getCatalogActivity returns a single catalog activity
func (s *Server) getCatalogActivity(c *gin.Context) {
	activityID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid activity ID"))
		return
	}

	repo := db.NewRepository(s.db)
	activity, err := repo.GetCatalogActivityByID(uint(activityID))
	if err != nil {
		c.JSON(http.StatusNotFound, utils.NewErrorResponse("Activity not found"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse(activity, "Activity retrieved successfully"))
}
