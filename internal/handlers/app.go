package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// multipartOverhead is added to the upload limit to leave room for form
// fields and boundaries around the file itself.
const multipartOverhead = 1 << 20

type Handlers struct {
	CV       *CVHandler
	Photo    *PhotoHandler
	Language *LanguageHandler
}

// NewApp creates the Fiber app with middleware and all routes registered.
func NewApp(h Handlers, maxFileSize int64) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "AI CV Rewriter API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(maxFileSize) + multipartOverhead,
		ErrorHandler: ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path} ${respHeader:X-Request-ID}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowMethods:  "GET,POST,OPTIONS",
		AllowHeaders:  "Origin, Content-Type, Accept, X-Api-Key",
		ExposeHeaders: "Content-Disposition, X-Request-ID, X-Image-Width, X-Image-Height, X-Source-Format",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Get("/languages", h.Language.HandleList)
	api.Post("/cv/rewrite", h.CV.HandleRewrite)
	api.Post("/cv/rewrite/preview", h.CV.HandlePreview)
	api.Post("/photo/border", h.Photo.HandleBorder)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "AI CV Rewriter API",
			"version": "1.0.0",
			"endpoints": []string{
				"GET /api/v1/languages",
				"POST /api/v1/cv/rewrite",
				"POST /api/v1/cv/rewrite/preview",
				"POST /api/v1/photo/border",
			},
		})
	})

	return app
}
