package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"jobbuddy/config"
	"jobbuddy/controllers"
	"jobbuddy/database"
	"jobbuddy/middleware"
	"jobbuddy/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using environment")
	}

	cfg := config.GetAppConfig()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}

	browser := services.NewBrowserManager(cfg.Browser)
	hub := services.NewProgressHub()
	jwtService := services.NewJWTService(cfg.JWTSecret)
	coverLetters := services.NewCoverLetterWriter(cfg.GeneratedDir)

	s3Service, err := services.NewS3Service(cfg.S3)
	if err != nil {
		log.Printf("S3 not available, screenshots will be stored locally: %v", err)
		s3Service = nil
	}
	screenshots := services.NewScreenshotService(s3Service, "./static")

	authController := controllers.NewAuthController(db, jwtService)
	browserController := controllers.NewBrowserController(browser)
	jobController := controllers.NewJobController(db, browser, hub, cfg)
	applicationController := controllers.NewApplicationController(db, browser, hub, coverLetters, screenshots)
	eventsController := controllers.NewEventsController(hub)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.FrontendURL, "http://localhost:5173", "http://localhost:3000"}
	corsConfig.AllowCredentials = true
	corsConfig.AddAllowHeaders("Authorization")
	r.Use(cors.New(corsConfig))

	r.Static("/static", "./static")
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	v1 := r.Group("/api/v1")
	{
		v1.POST("/auth/register", authController.Register)
		v1.POST("/auth/login", authController.Login)

		authed := v1.Group("")
		authed.Use(middleware.RequireAuth(jwtService))
		{
			authed.GET("/users/me", authController.GetProfile)
			authed.PUT("/users/me", authController.UpdateProfile)

			authed.POST("/browser/start", browserController.StartBrowser)
			authed.GET("/browser/status", browserController.BrowserStatus)
			authed.POST("/browser/login/:platform", browserController.OpenLogin)
			authed.POST("/browser/close", browserController.CloseBrowser)

			authed.POST("/jobs/search", jobController.Search)
			authed.GET("/jobs", jobController.ListJobs)
			authed.GET("/jobs/:id", jobController.GetJob)
			authed.POST("/jobs/:id/approve", jobController.ApproveJob)

			authed.GET("/applications", applicationController.ListApplications)
			authed.GET("/applications/:id", applicationController.GetApplication)
			authed.POST("/applications/:id/prepare", applicationController.PrepareDocuments)
			authed.POST("/applications/:id/fill-form", applicationController.FillForm)

			authed.GET("/events", eventsController.Stream)
		}
	}

	// Close the browser session on shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		log.Printf("Shutting down, closing browser session")
		if err := browser.Close(); err != nil {
			log.Printf("Error closing browser: %v", err)
		}
		os.Exit(0)
	}()

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
