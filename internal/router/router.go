package router

import (
	"log"

	"github.com/MaximSupreme/api-final-yatube/internal/handlers"
	"github.com/MaximSupreme/api-final-yatube/internal/middleware"
	"github.com/MaximSupreme/api-final-yatube/internal/models"
	"github.com/MaximSupreme/api-final-yatube/internal/relation"
	"github.com/MaximSupreme/api-final-yatube/internal/repositories"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *gorm.DB) {
	// AutoMigrate models
	err := db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("Auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewGormUserRepository(db)
	groupRepo := repositories.NewGormGroupRepository(db)
	postRepo := repositories.NewGormPostRepository(db)
	commentRepo := repositories.NewGormCommentRepository(db)
	followRepo := repositories.NewGormFollowRepository(db)

	relationValidator := relation.NewValidator(followRepo, postRepo)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo)
	authHandler.RegisterAuthRoutes(authGroup)
	// Token-auth alias kept for clients of the original API surface.
	e.POST("/api/v1/api-token-auth", authHandler.SignIn)
	log.Println("Auth routes configured.")

	// --- Resource routes ---
	// Reads are public, so authentication is optional here; each
	// handler passes the principal to the authorization engine, which
	// decides per action whether anonymous is acceptable.
	api := e.Group("/api/v1")
	api.Use(middleware.OptionalJWTAuthMiddleware())
	log.Println("Optional JWT authentication middleware applied to /api/v1 group.")

	// Post routes
	postHandler := handlers.NewPostHandler(postRepo, groupRepo)
	postHandler.RegisterPostRoutes(api)
	log.Println("Post routes configured.")

	// Group routes (read-only)
	groupHandler := handlers.NewGroupHandler(groupRepo)
	groupHandler.RegisterGroupRoutes(api)
	log.Println("Group routes configured.")

	// Comment routes (nested under posts)
	commentHandler := handlers.NewCommentHandler(commentRepo, relationValidator)
	commentHandler.RegisterCommentRoutes(api)
	log.Println("Comment routes configured.")

	// Follow routes
	followHandler := handlers.NewFollowHandler(followRepo, userRepo, relationValidator)
	followHandler.RegisterFollowRoutes(api)
	log.Println("Follow routes configured.")

	log.Println("All routes configured.")
}
