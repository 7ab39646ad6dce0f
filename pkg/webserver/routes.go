package webserver

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", s.healthCheck)

	// API v1 routes
	v1 := s.router.Group("/api/v1")
	{
		// Public routes
		auth := v1.Group("/auth")
		{
			auth.POST("/register", s.register)
			auth.POST("/login", s.login)
			auth.POST("/logout", s.logout)
		}

		// Publicly shared itineraries
		v1.GET("/shared", s.getSharedTrip)

		// Protected routes
		protected := v1.Group("")
		protected.Use(s.authMiddleware())
		{
			// User profile
			protected.GET("/me", s.getProfile)
			protected.PUT("/me", s.updateProfile)
			protected.DELETE("/me", s.deleteProfile)

			// Trips
			trips := protected.Group("/trips")
			{
				trips.GET("", s.getTrips)
				trips.POST("", s.createTrip)
				trips.GET("/:id", s.getTrip)
				trips.PUT("/:id", s.updateTrip)
				trips.DELETE("/:id", s.deleteTrip)
				trips.GET("/:id/summary", s.getTripSummary)
				trips.POST("/:id/share", s.shareTrip)
				trips.DELETE("/:id/share", s.unshareTrip)
				trips.POST("/:id/copy", s.copyTrip)
				trips.GET("/:id/export", s.exportTrip)
				trips.GET("/:id/stops", s.getStops)
				trips.POST("/:id/stops", s.createStop)
			}

			// Trip imports take a full export document, not a trip id
			protected.POST("/import", s.importTrip)

			// Stops
			stops := protected.Group("/stops")
			{
				stops.PUT("/:id", s.updateStop)
				stops.DELETE("/:id", s.deleteStop)
				stops.POST("/:id/move", s.moveStop)
				stops.GET("/:id/activities", s.getActivities)
				stops.POST("/:id/activities", s.createActivity)
			}

			// Activities
			activities := protected.Group("/activities")
			{
				activities.PUT("/:id", s.updateActivity)
				activities.DELETE("/:id", s.deleteActivity)
			}

			// Destination catalog
			protected.GET("/cities", s.getCities)
			protected.GET("/cities/:id", s.getCity)
			protected.GET("/catalog/activities", s.getCatalogActivities)
			protected.GET("/catalog/activities/:id", s.getCatalogActivity)
		}
	}
}
