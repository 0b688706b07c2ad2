// Package router provides HTTP routing, middleware configuration, and server setup for the web application
package router

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/rcsuite/console/app/dto"
	"github.com/rcsuite/console/app/handlers"
	"github.com/rcsuite/console/app/middleware"
	"github.com/rcsuite/console/docs"
	"github.com/rcsuite/console/utils"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/compress"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/swaggo/swag"
)

// Router interface for HTTP routing
type Router interface {
	SetupRoutes()
	Start(address string) error
	GetApp() *fiber.App
}

// FiberRouter implements Router using Fiber v3
type FiberRouter struct {
	app             *fiber.App
	authHandler     handlers.AuthHandlerInterface
	contactHandler  handlers.ContactHandlerInterface
	templateHandler handlers.TemplateHandlerInterface
	campaignHandler handlers.CampaignHandlerInterface
	mediaHandler    handlers.MediaHandlerInterface
	authMiddleware  *middleware.AuthMiddleware
	enableMetrics   bool
}

// NewFiberRouter creates a new Fiber router
func NewFiberRouter(
	authHandler handlers.AuthHandlerInterface,
	contactHandler handlers.ContactHandlerInterface,
	templateHandler handlers.TemplateHandlerInterface,
	campaignHandler handlers.CampaignHandlerInterface,
	mediaHandler handlers.MediaHandlerInterface,
	authMiddleware *middleware.AuthMiddleware,
	enableMetrics bool,
) Router {
	app := fiber.New(fiber.Config{
		AppName:      "RCS Console API",
		ServerHeader: "rcs-console",
		ErrorHandler: errorHandler,
		BodyLimit:    16 * 1024 * 1024, // spreadsheets and card media
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	return &FiberRouter{
		app:             app,
		authHandler:     authHandler,
		contactHandler:  contactHandler,
		templateHandler: templateHandler,
		campaignHandler: campaignHandler,
		mediaHandler:    mediaHandler,
		authMiddleware:  authMiddleware,
		enableMetrics:   enableMetrics,
	}
}

// SetupRoutes configures all application routes
func (r *FiberRouter) SetupRoutes() {
	log.Println("Setting up routes...")

	r.setupMiddleware()

	api := r.app.Group("/api/v1")

	// Health check route (no rate limiting)
	api.Get("/health", r.healthCheck)

	// API documentation (development only)
	if os.Getenv("APP_ENV") == "development" || os.Getenv("APP_ENV") == "local" {
		api.Get("/swagger.json", r.serveSwaggerJSON)
		r.app.Get("/swagger", r.serveSwaggerUI)
		log.Println("API documentation enabled for development")
	}

	// General rate limiting for all API routes
	api.Use(limiter.New(limiter.Config{
		Max:        2000,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: rateLimitReached,
		Next: func(c fiber.Ctx) bool {
			return c.Path() == "/api/v1/health"
		},
	}))

	// Auth routes with stricter rate limiting
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: rateLimitReached,
	}))

	auth.Get("/captcha", r.authHandler.GenerateCaptcha)
	auth.Post("/login", r.authHandler.Login)
	auth.Post("/refresh", r.authHandler.RefreshSession)
	auth.Post("/logout", r.authMiddleware.Authenticate(), r.authHandler.Logout)

	// Console routes require an authenticated customer
	authenticated := r.authMiddleware.Authenticate()

	contacts := api.Group("/contacts", authenticated)
	contacts.Get("/", r.contactHandler.ListContacts)
	contacts.Post("/import", r.contactHandler.ImportContacts)
	contacts.Post("/import/spreadsheet", r.contactHandler.ImportSpreadsheet)
	contacts.Get("/import/template", r.contactHandler.DownloadTemplate)
	contacts.Post("/deduplicate", r.contactHandler.RemoveDuplicates)
	contacts.Post("/clear", r.contactHandler.ClearContacts)
	contacts.Put("/:uuid", r.contactHandler.EditContact)
	contacts.Delete("/:uuid", r.contactHandler.DeleteContact)

	templates := api.Group("/templates", authenticated)
	templates.Post("/", r.templateHandler.CreateTemplate)
	templates.Get("/", r.templateHandler.ListTemplates)
	templates.Get("/:uuid", r.templateHandler.GetTemplate)
	templates.Put("/:uuid", r.templateHandler.UpdateTemplate)
	templates.Delete("/:uuid", r.templateHandler.DeleteTemplate)

	campaigns := api.Group("/campaigns", authenticated)
	campaigns.Post("/", r.campaignHandler.CreateCampaign)
	campaigns.Get("/", r.campaignHandler.ListCampaigns)
	campaigns.Get("/:uuid", r.campaignHandler.GetCampaign)
	campaigns.Put("/:uuid", r.campaignHandler.UpdateCampaign)
	campaigns.Post("/:uuid/send", r.campaignHandler.SendCampaign)

	api.Get("/wallet/balance", authenticated, r.campaignHandler.GetWalletBalance)

	media := api.Group("/media", authenticated)
	media.Post("/upload", r.mediaHandler.Upload)
	media.Get("/", r.mediaHandler.ListMedia)
	media.Get("/:uuid", r.mediaHandler.Download)
	media.Delete("/:uuid", r.mediaHandler.DeleteMedia)

	r.app.Use(r.notFoundHandler)

	log.Println("Routes configured successfully")
}

// setupMiddleware configures global middleware
func (r *FiberRouter) setupMiddleware() {
	// Request ID middleware runs first so every log line carries it
	r.app.Use(requestid.New(requestid.Config{
		Header: "X-Request-ID",
		Generator: func() string {
			return generateRequestID()
		},
	}))

	r.app.Use(helmet.New(helmet.Config{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'; img-src 'self' data: https:; frame-ancestors 'none';",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	r.app.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"https://console.rcsuite.io",
			"https://api.rcsuite.io",
		},
		AllowMethods: []string{
			"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"Authorization",
			"X-Requested-With",
			"X-Request-ID",
			"Cache-Control",
		},
		ExposeHeaders: []string{
			"X-Request-ID",
		},
		AllowCredentials: true,
		MaxAge:           utils.CORSMaxAge,
	}))

	r.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
		Next: func(c fiber.Ctx) bool {
			contentType := c.Get("Content-Type")
			return len(contentType) >= 6 && contentType[:6] == "image/"
		},
	}))

	if r.enableMetrics {
		r.app.Use(middleware.Metrics())
	}

	r.app.Use(logger.New(logger.Config{
		Format:     `{"time":"${time}","pid":"${pid}","request_id":"${locals:requestid}","level":"info","method":"${method}","path":"${path}","ip":"${ip}","user_agent":"${ua}","status":${status},"latency":"${latency}","bytes_in":${bytesReceived},"bytes_out":${bytesSent}}` + "\n",
		TimeFormat: time.RFC3339,
		TimeZone:   "UTC",
		Next: func(c fiber.Ctx) bool {
			return c.Path() == "/api/v1/health"
		},
	}))

	r.app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e interface{}) {
			log.Printf(`{"time":"%s","level":"error","request_id":"%s","event":"panic","error":"%v","path":"%s","method":"%s","ip":"%s"}`,
				utils.UTCNow().Format(time.RFC3339),
				c.Locals("requestid"),
				e,
				c.Path(),
				c.Method(),
				c.IP(),
			)
		},
	}))
}

// Start starts the HTTP server
func (r *FiberRouter) Start(address string) error {
	log.Printf("Starting server on %s", address)
	return r.app.Listen(address)
}

// GetApp returns the Fiber app instance
func (r *FiberRouter) GetApp() *fiber.App {
	return r.app
}

// healthCheck reports service liveness
func (r *FiberRouter) healthCheck(c fiber.Ctx) error {
	return c.JSON(dto.OK("Service is healthy", fiber.Map{
		"status":    "ok",
		"timestamp": utils.UTCNow().Unix(),
		"version":   "1.0.0",
		"service":   "rcs-console-api",
	}))
}

// serveSwaggerUI serves the Swagger UI HTML page
func (r *FiberRouter) serveSwaggerUI(c fiber.Ctx) error {
	htmlContent := `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>RCS Console API - Swagger UI</title>
    <link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@5.9.0/swagger-ui.css" />
</head>
<body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5.9.0/swagger-ui-bundle.js"></script>
    <script>
        window.onload = function() {
            SwaggerUIBundle({
                url: '/api/v1/swagger.json',
                dom_id: '#swagger-ui',
                deepLinking: true,
                validatorUrl: null
            });
        };
    </script>
</body>
</html>`

	c.Set("Content-Type", "text/html")
	return c.SendString(htmlContent)
}

// serveSwaggerJSON serves the generated OpenAPI specification
func (r *FiberRouter) serveSwaggerJSON(c fiber.Ctx) error {
	doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Err(
			"Failed to load Swagger documentation", "SWAGGER_LOAD_ERROR", nil))
	}

	c.Set("Content-Type", "application/json")
	return c.SendString(doc)
}

// notFoundHandler answers unmatched routes
func (r *FiberRouter) notFoundHandler(c fiber.Ctx) error {
	requestID := c.Locals("requestid")

	return c.Status(fiber.StatusNotFound).JSON(dto.Err(
		"The requested resource was not found", "NOT_FOUND", fiber.Map{
			"path":       c.Path(),
			"method":     c.Method(),
			"request_id": requestID,
		}))
}

// errorHandler is the global Fiber error handler
func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	log.Printf("Error %d: %v", code, err)

	requestID := c.Locals("requestid")
	return c.Status(code).JSON(dto.Err(
		"An internal server error occurred", "INTERNAL_ERROR", fiber.Map{
			"timestamp":  utils.UTCNow().Unix(),
			"request_id": requestID,
		}))
}

// rateLimitReached answers requests rejected by a limiter
func rateLimitReached(c fiber.Ctx) error {
	return c.Status(fiber.StatusTooManyRequests).JSON(dto.Err(
		"Too many requests. Please try again later.", "RATE_LIMIT_EXCEEDED", nil))
}

// generateRequestID creates a unique request ID
func generateRequestID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
