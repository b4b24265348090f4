package main

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/zuri-studios/zuri-api/config"
	"github.com/zuri-studios/zuri-api/controllers"
	"github.com/zuri-studios/zuri-api/middleware"
	"github.com/zuri-studios/zuri-api/models"
	"github.com/zuri-studios/zuri-api/services"
)

func main() {
	// Basic logging
	log.Println("Starting Zuri Studios API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.Profile{},
		&models.CustomOrderSubmission{},
		&models.FoodOrder{},
		&models.FoodOrderItem{},
		&models.MenuItem{},
		&models.FashionDesign{},
		&models.ContactMessage{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Initialize storage-backed services
	storage, err := services.InitStorageService()
	if err != nil {
		log.Fatalf("Failed to initialize storage service: %v", err)
	}
	services.InitImageService(storage)
	services.InitOrderService(storage)

	// Initialize the session store against the hosted auth provider, and
	// the profile resolver subscribed to its session changes
	provider := services.NewAuthProvider(cfg)
	sessions := services.InitSessionService(provider, "")
	profiles := services.InitProfileService(storage, sessions)
	defer sessions.Close()
	defer profiles.Close()

	// Load the catalog and order collections
	services.InitMenuStore()
	services.InitDesignStore()
	services.InitFoodOrderStore()

	router := setupRouter(cfg)

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter builds the Gin engine with CORS, auth population, and the
// public / session-required / guarded route groups.
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.CORSOrigins, ",")
	corsConfig.AllowCredentials = true
	corsConfig.AddAllowHeaders("Authorization")
	router.Use(cors.New(corsConfig))

	verify := middleware.NewTokenVerifier(cfg)
	router.Use(middleware.Authenticate(verify))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Database status endpoint
		v1.GET("/database/status", databaseStatus)

		// Public storefront
		v1.GET("/menu-items", controllers.ListMenuItems)
		v1.GET("/fashion-designs", controllers.ListFashionDesigns)
		v1.POST("/custom-orders", controllers.SubmitCustomOrder)
		v1.POST("/food-orders", controllers.CreateFoodOrder)
		v1.POST("/contact", controllers.SubmitContactMessage)

		// Auth endpoints backed by the hosted provider
		auth := v1.Group("/auth")
		{
			auth.POST("/signup", controllers.SignUp)
			auth.POST("/signin", controllers.SignIn)
			auth.POST("/signout", controllers.SignOut)
			auth.POST("/reset-password", controllers.ResetPassword)
		}

		// Account area: any signed-in user
		me := v1.Group("")
		me.Use(middleware.RequireSession())
		{
			me.GET("/users/me", controllers.GetMyProfile)
			me.PUT("/users/me", controllers.UpdateMyProfile)
			me.POST("/users/me/avatar", controllers.UploadAvatar)
			me.GET("/my/custom-orders", controllers.ListMyCustomOrders)
		}

		// Admin dashboard: guarded by role, redirect semantics
		admin := v1.Group("/admin")
		admin.Use(middleware.Guard(models.RoleAdmin, models.RoleManager, models.RoleStaff))
		{
			admin.GET("/menu-items", controllers.ListAllMenuItems)
			admin.POST("/menu-items", controllers.CreateMenuItem)
			admin.PUT("/menu-items/:id", controllers.UpdateMenuItem)

			admin.GET("/fashion-designs", controllers.ListAllFashionDesigns)
			admin.POST("/fashion-designs", controllers.CreateFashionDesign)
			admin.PUT("/fashion-designs/:id", controllers.UpdateFashionDesign)

			admin.GET("/custom-orders", controllers.ListCustomOrders)
			admin.PUT("/custom-orders/:id/status", controllers.UpdateCustomOrderStatus)

			admin.GET("/food-orders", controllers.ListFoodOrders)
			admin.POST("/food-orders/refetch", controllers.RefetchFoodOrders)
			admin.PUT("/food-orders/:id/status", controllers.UpdateFoodOrderStatus)
			admin.PUT("/food-orders/:id/payment", controllers.UpdateFoodOrderPayment)

			admin.GET("/contact-messages", controllers.ListContactMessages)
			admin.PUT("/contact-messages/:id/status", controllers.UpdateContactStatus)

			admin.POST("/uploads", controllers.UploadCatalogImage)

			// Destructive operations are admin-only
			adminOnly := admin.Group("")
			adminOnly.Use(middleware.Guard(models.RoleAdmin))
			{
				adminOnly.DELETE("/menu-items/:id", controllers.DeleteMenuItem)
				adminOnly.DELETE("/fashion-designs/:id", controllers.DeleteFashionDesign)
			}
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Zuri Studios API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	// Ping the database to verify connection
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	// Get list of tables
	var tables []string
	if err := db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public'").Scan(&tables).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
