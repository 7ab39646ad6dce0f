package webserver

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MANIXH-Z8/GlobalTrotter/pkg/db"
	"github.com/MANIXH-Z8/GlobalTrotter/pkg/models"
	"github.com/MANIXH-Z8/GlobalTrotter/pkg/utils"
)

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest represents a profile update request
type UpdateProfileRequest struct {
	Name         *string `json:"name,omitempty"`
	AvatarURL    *string `json:"avatar_url,omitempty"`
	HomeCurrency *string `json:"home_currency,omitempty"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// register creates a new user account
func (s *Server) register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid request: "+err.Error()))
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if !s.validator.ValidateEmail(req.Email) {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid email address"))
		return
	}

	repo := db.NewRepository(s.db)

	// Reject duplicate accounts
	if _, err := repo.GetUserByEmail(req.Email); err == nil {
		c.JSON(http.StatusConflict, utils.NewErrorResponse("An account with this email already exists"))
		return
	} else if err != gorm.ErrRecordNotFound {
		s.logger.WithError(err).Error("Failed to check existing user")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to create account"))
		return
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.WithError(err).Error("Failed to hash password")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to create account"))
		return
	}

	user := &models.User{
		Email:        req.Email,
		Name:         s.validator.SanitizeInput(req.Name),
		PasswordHash: hash,
	}

	if err := repo.CreateUser(user); err != nil {
		s.logger.WithError(err).Error("Failed to create user")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to create account"))
		return
	}

	token, err := s.jwtManager.GenerateToken(user.ID, user.Email, user.Name)
	if err != nil {
		s.logger.WithError(err).Error("Failed to generate token")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to create account"))
		return
	}

	s.setSession(c, user.ID)
	s.logger.LogAuth(user.ID, user.Email, "register", true)

	c.JSON(http.StatusCreated, utils.NewSuccessResponse(AuthResponse{
		Token: token,
		User:  user,
	}, "Account created successfully"))
}

// login authenticates a user
func (s *Server) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid request: "+err.Error()))
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	repo := db.NewRepository(s.db)
	user, err := repo.GetUserByEmail(req.Email)
	if err != nil {
		s.logger.LogAuth(0, req.Email, "login", false)
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("Invalid email or password"))
		return
	}

	if !s.hasher.Compare(user.PasswordHash, req.Password) {
		s.logger.LogAuth(user.ID, user.Email, "login", false)
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("Invalid email or password"))
		return
	}

	token, err := s.jwtManager.GenerateToken(user.ID, user.Email, user.Name)
	if err != nil {
		s.logger.WithError(err).Error("Failed to generate token")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to log in"))
		return
	}

	s.setSession(c, user.ID)
	s.logger.LogAuth(user.ID, user.Email, "login", true)

	c.JSON(http.StatusOK, utils.NewSuccessResponse(AuthResponse{
		Token: token,
		User:  user,
	}, "Logged in successfully"))
}

// logout clears the session
func (s *Server) logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{MaxAge: -1})
	if err := session.Save(); err != nil {
		s.logger.WithError(err).Error("Failed to clear session")
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse(nil, "Logged out successfully"))
}

// getProfile returns the authenticated user
func (s *Server) getProfile(c *gin.Context) {
	user, err := s.getCurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("User not found"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse(user, "Profile retrieved successfully"))
}

// updateProfile updates the authenticated user's details
func (s *Server) updateProfile(c *gin.Context) {
	user, err := s.getCurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("User not found"))
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid request: "+err.Error()))
		return
	}

	if req.Name != nil {
		name := s.validator.SanitizeInput(*req.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Name cannot be empty"))
			return
		}
		user.Name = name
	}
	if req.AvatarURL != nil {
		user.AvatarURL = *req.AvatarURL
	}
	if req.HomeCurrency != nil {
		user.HomeCurrency = strings.ToUpper(strings.TrimSpace(*req.HomeCurrency))
	}

	repo := db.NewRepository(s.db)
	if err := repo.UpdateUser(user); err != nil {
		s.logger.WithError(err).Error("Failed to update user")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to update profile"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse(user, "Profile updated successfully"))
}

// deleteProfile removes the authenticated user's account
func (s *Server) deleteProfile(c *gin.Context) {
	user, err := s.getCurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("User not found"))
		return
	}

	repo := db.NewRepository(s.db)
	if err := repo.DeleteUser(user.ID); err != nil {
		s.logger.WithError(err).Error("Failed to delete user")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to delete account"))
		return
	}

	s.logger.LogAuth(user.ID, user.Email, "delete_account", true)

	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{MaxAge: -1})
	_ = session.Save()

	c.JSON(http.StatusOK, utils.NewSuccessResponse(nil, "Account deleted successfully"))
}

// setSession stores the user id in the cookie session
func (s *Server) setSession(c *gin.Context, userID uint) {
	session := sessions.Default(c)
	session.Set("user_id", userID)
	if err := session.Save(); err != nil {
		s.logger.WithError(err).Error("Failed to save session")
	}
}
