package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"learnhub/backend/config"
	"learnhub/backend/middleware"
	"learnhub/backend/routes"
	"learnhub/backend/services"
	"learnhub/backend/store"
	"learnhub/backend/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}

	// Initialize logger
	logger := utils.InitLogger()

	st := store.NewGormStore(db)

	// Services
	gradeSvc := services.NewGradeService(st, logger)
	deps := routes.Deps{
		Progress:      services.NewProgressService(st, logger),
		Enrollments:   services.NewEnrollmentService(st, logger),
		Grades:        gradeSvc,
		Courses:       services.NewCourseService(st, logger, gradeSvc),
		Insights:      services.NewInsightsService(st, logger, gradeSvc),
		Notifications: services.NewNotificationService(st, logger),
	}

	deps.Notifications.StartGradeWatcher()
	defer deps.Notifications.Stop()

	scheduler := services.NewReminderScheduler(st, logger)
	if err := scheduler.Start(cfg.ReminderCron); err != nil {
		log.Fatalf("Error starting reminder scheduler: %v", err)
	}
	defer scheduler.Stop()

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Setup routes
	routes.SetupRoutes(app, st, cfg, deps)

	// Start server
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}
