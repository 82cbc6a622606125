package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	_ "voicecoach/api-gateway/docs" // registers the swagger spec
	"voicecoach/api-gateway/middleware"
	"voicecoach/api-gateway/utils"
)

// AppConfig holds the HTTP-level settings of the API.
type AppConfig struct {
	BodyLimit   int
	CORSOrigins string
}

// NewApp builds the fiber application with middleware and routes.
func NewApp(h *ApplicationHandler, cfg AppConfig) *fiber.App {
	origins := cfg.CORSOrigins
	if origins == "" {
		origins = "*"
	}

	app := fiber.New(fiber.Config{
		AppName:               "voicecoach",
		BodyLimit:             cfg.BodyLimit,
		DisableStartupMessage: true,
		ErrorHandler:          h.ErrorHandler,
	})

	// Middleware
	app.Use(middleware.RequestLogger(h.Logger))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowHeaders:  "Origin, Content-Type, Accept, " + middleware.RequestIDHeader,
		ExposeHeaders: middleware.RequestIDHeader,
	}))

	app.Get("/health", h.Health)
	app.Post("/analyze", h.AnalyzeAudio)

	// API v1 routes
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/health", h.Health)
	apiV1.Post("/analyze", h.AnalyzeAudio)

	app.Get("/swagger/*", fiberSwagger.WrapHandler)

	return app
}

// ErrorHandler renders errors that escaped a handler as JSON.
func (h *ApplicationHandler) ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}
	if code >= fiber.StatusInternalServerError {
		h.Logger.WithField("request_id", middleware.RequestID(c)).WithError(err).Error("Unhandled error")
	}
	return utils.RespondWithError(c, code, message)
}
