// File: /routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"localevents-api/config"
	"localevents-api/controllers"
	"localevents-api/middleware"
	"localevents-api/repositories"
	"localevents-api/services"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, tokens *services.TokenService, email *services.EmailService) {
	eventRepo := repositories.NewEventRepository(db)
	eventService := services.NewEventService(eventRepo)

	eventController := controllers.NewEventController(eventService)
	userController := controllers.NewUserController(db, cfg, tokens, email)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong", "status": "healthy"})
	})

	r.Static("/uploads", cfg.UploadDir)

	// Event routes: listing and single reads are public, mutations require
	// an authenticated principal.
	events := r.Group("/api/events")
	{
		events.GET("", eventController.ListEvents)
		events.GET("/:id", eventController.GetEvent)

		protected := events.Group("")
		protected.Use(middleware.Auth(tokens))
		{
			protected.POST("", eventController.CreateEvent)
			protected.PUT("/:id", eventController.UpdateEvent)
			protected.DELETE("/:id", eventController.DeleteEvent)
		}
	}

	// User routes
	user := r.Group("/user")
	{
		user.POST("", userController.SignUp)
		user.POST("/signin", userController.SignIn)
		user.POST("/logout", userController.Logout)
		user.POST("/refresh-token", userController.RefreshToken)

		profile := user.Group("/profile")
		profile.Use(middleware.Auth(tokens))
		{
			profile.GET("", userController.GetProfile)
			profile.PATCH("", userController.UpdateProfile)
			profile.POST("/image", userController.UploadImage)
		}
	}
}
