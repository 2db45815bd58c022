package router

import (
	"log"

	"github.com/akulakov/blogicum/internal/handlers"
	"github.com/akulakov/blogicum/internal/middleware"
	"github.com/akulakov/blogicum/internal/models"
	"github.com/akulakov/blogicum/internal/repositories"
	"github.com/akulakov/blogicum/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, cfg *config.Config) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.Logger())
	e.Use(middleware.ViewerContext(cfg.JWTSecret))
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *gorm.DB, cfg *config.Config) {
	// AutoMigrate PostgreSQL models
	err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Location{},
		&models.Post{},
		&models.Comment{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	if err := repositories.Seed(db); err != nil {
		log.Fatalf("Failed to seed default data: %v", err)
	}

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// Static assets and uploaded images
	e.Static("/static", "assets")
	e.Static("/uploads", cfg.UploadDir)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	categoryRepo := repositories.NewPostgresCategoryRepository(db)
	locationRepo := repositories.NewPostgresLocationRepository(db)

	// Mutation routes redirect anonymous viewers to the login page
	requireLogin := middleware.LoginRequired(cfg.JWTSecret)

	// Auth routes
	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(e)
	log.Println("Auth routes configured.")

	// Post routes
	postHandler := handlers.NewPostHandler(postRepo, commentRepo, categoryRepo, locationRepo, cfg.PageSize, cfg.UploadDir)
	postHandler.RegisterPostRoutes(e, requireLogin)
	log.Println("Post routes configured.")

	// Comment routes
	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo)
	commentHandler.RegisterCommentRoutes(e, requireLogin)
	log.Println("Comment routes configured.")

	// Profile routes
	profileHandler := handlers.NewProfileHandler(userRepo, postRepo, cfg.PageSize)
	profileHandler.RegisterProfileRoutes(e, requireLogin)
	log.Println("Profile routes configured.")

	// Category routes
	categoryHandler := handlers.NewCategoryHandler(categoryRepo, postRepo, cfg.PageSize)
	categoryHandler.RegisterCategoryRoutes(e)
	log.Println("Category routes configured.")

	// Static pages
	pagesHandler := handlers.NewPagesHandler()
	pagesHandler.RegisterPageRoutes(e)
	log.Println("All routes configured.")
}
