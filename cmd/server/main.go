package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"gorm.io/gorm"

	"github.com/zemlex/estate-catalog/internal/config"
	"github.com/zemlex/estate-catalog/internal/database"
	"github.com/zemlex/estate-catalog/internal/handlers"
	"github.com/zemlex/estate-catalog/internal/middleware"

	_ "github.com/zemlex/estate-catalog/docs/api" // Swagger docs
)

// @title Estate Catalog API
// @version 1.0.0
// @description Real estate catalog backend with schema-driven property attributes
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/zemlex/estate-catalog

// @license.name MIT

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("estate_catalog")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	registerRoutes(app, db, cfg)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

func registerRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	api := app.Group("/api")
	api.Use(middleware.VersionMiddleware())

	admin := middleware.AuthAdmin(cfg.JWTSecret)

	catalogHandler := &handlers.CatalogHandler{DB: db}
	landPlotHandler := &handlers.LandPlotHandler{DB: db}
	referenceHandler := &handlers.ReferenceHandler{DB: db}
	mediaHandler := &handlers.MediaHandler{DB: db, MediaRoot: cfg.MediaRoot}
	analyticsHandler := &handlers.AnalyticsHandler{DB: db}
	requestHandler := &handlers.RequestHandler{DB: db}
	newsHandler := &handlers.NewsHandler{DB: db}
	quizHandler := &handlers.QuizHandler{DB: db}
	healthHandler := &handlers.HealthHandler{DB: db}
	contactHandler := &handlers.ContactHandler{DB: db}

	api.Get("/health", healthHandler.GetHealth)

	catalog := api.Group("/catalog")

	catalog.Get("/property-types", catalogHandler.ListPropertyTypes)
	catalog.Get("/property-types/:identifier", catalogHandler.GetPropertyType)
	catalog.Get("/property-types/:identifier/filters", catalogHandler.GetPropertyTypeFilters)
	catalog.Post("/property-types", admin, catalogHandler.DefinePropertyType)
	catalog.Delete("/property-types/:identifier", admin, catalogHandler.DeletePropertyType)

	catalog.Get("/properties", catalogHandler.ListProperties)
	catalog.Get("/properties/:identifier", catalogHandler.GetProperty)
	catalog.Post("/properties", admin, catalogHandler.CreateProperty)
	catalog.Patch("/properties/:identifier", admin, catalogHandler.UpdateProperty)
	catalog.Delete("/properties/:identifier", admin, catalogHandler.DeleteProperty)

	catalog.Get("/land-plots", landPlotHandler.ListLandPlots)
	catalog.Get("/land-plots/:identifier", landPlotHandler.GetLandPlot)
	catalog.Post("/land-plots", admin, landPlotHandler.CreateLandPlot)
	catalog.Patch("/land-plots/:identifier", admin, landPlotHandler.UpdateLandPlot)
	catalog.Delete("/land-plots/:identifier", admin, landPlotHandler.DeleteLandPlot)

	catalog.Get("/locations", referenceHandler.ListLocations)
	catalog.Post("/locations", admin, referenceHandler.CreateLocation)
	catalog.Patch("/locations/:id", admin, referenceHandler.UpdateLocation)
	catalog.Delete("/locations/:id", admin, referenceHandler.DeleteLocation)

	catalog.Get("/features", referenceHandler.ListFeatures)
	catalog.Post("/features", admin, referenceHandler.CreateFeature)
	catalog.Delete("/features/:id", admin, referenceHandler.DeleteFeature)

	catalog.Get("/land-use-types", referenceHandler.ListLandUseTypes)
	catalog.Post("/land-use-types", admin, referenceHandler.CreateLandUseType)
	catalog.Delete("/land-use-types/:id", admin, referenceHandler.DeleteLandUseType)

	catalog.Get("/land-categories", referenceHandler.ListLandCategories)
	catalog.Post("/land-categories", admin, referenceHandler.CreateLandCategory)
	catalog.Delete("/land-categories/:id", admin, referenceHandler.DeleteLandCategory)

	media := api.Group("/media")
	media.Get("/", mediaHandler.ListMedia)
	media.Get("/:id/owner", mediaHandler.GetMediaOwner)
	media.Post("/", admin, mediaHandler.UploadMedia)
	media.Delete("/:id", admin, mediaHandler.DeleteMedia)

	analytics := api.Group("/analytics")
	analytics.Post("/view", analyticsHandler.RecordView)
	analytics.Get("/requests/by-type", admin, analyticsHandler.RequestsByType)
	analytics.Get("/requests/by-status", admin, analyticsHandler.RequestsByStatus)

	requests := api.Group("/requests")
	requests.Post("/", requestHandler.CreateRequest)
	requests.Get("/", admin, requestHandler.ListRequests)
	requests.Get("/:id", admin, requestHandler.GetRequest)
	requests.Get("/:id/owner", admin, requestHandler.GetRequestOwner)
	requests.Patch("/:id/status", admin, requestHandler.UpdateRequestStatus)
	requests.Post("/:id/comments", admin, requestHandler.AddComment)

	news := api.Group("/news")
	news.Get("/categories", newsHandler.ListCategories)
	news.Post("/categories", admin, newsHandler.CreateCategory)
	news.Delete("/categories/:id", admin, newsHandler.DeleteCategory)
	news.Get("/", newsHandler.ListArticles)
	news.Get("/:id", newsHandler.GetArticle)
	news.Post("/", admin, newsHandler.CreateArticle)
	news.Patch("/:id", admin, newsHandler.UpdateArticle)
	news.Delete("/:id", admin, newsHandler.DeleteArticle)

	quizzes := api.Group("/quizzes")
	quizzes.Get("/", quizHandler.ListQuizzes)
	quizzes.Get("/:identifier", quizHandler.GetQuiz)
	quizzes.Post("/", admin, quizHandler.CreateQuiz)
	quizzes.Patch("/:identifier", admin, quizHandler.UpdateQuiz)
	quizzes.Delete("/:identifier", admin, quizHandler.DeleteQuiz)

	api.Get("/contacts", contactHandler.GetContact)
	api.Put("/contacts", admin, contactHandler.UpsertContact)
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
	})
}
