package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"campusdocs/internal/http/middleware"
	"campusdocs/internal/i18n"
	"campusdocs/internal/quota"
	"campusdocs/internal/service"
)

// RegisterRoutes attaches the HTTP surface to the provided Fiber app. The
// docs and health routes are public; everything under /contents and /users
// requires an authenticated principal.
func RegisterRoutes(app *fiber.App, db *sql.DB, contents service.ContentService, gate service.AccessGate, stats *quota.Engine, loc *i18n.Localizer, jwtSecret []byte) {
	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	// Health: readiness checks DB connectivity, liveness is dependency-free.
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	// Everything registered below requires an authenticated principal.
	app.Use(middleware.Principal(jwtSecret))

	// Content catalog
	app.Get("/contents", ListContents(contents, loc))
	app.Post("/contents", UploadContent(contents, loc))
	app.Get("/contents/:id", GetContent(contents, loc))
	app.Delete("/contents/:id", DeleteContent(contents, loc))
	app.Patch("/contents/:id/approval", SetContentApproval(contents, loc))

	// Delivery
	app.Get("/contents/:id/stream", StreamContent(gate, loc))
	app.Get("/contents/:id/pages", ContentPages(gate, loc))
	app.Get("/contents/:id/page-count", ContentPageCount(gate, loc))

	// Quota and analytics
	app.Get("/contents/:id/quota", ContentQuota(gate, loc))
	app.Get("/contents/:id/access-stats", ContentAccessStats(contents, stats, loc))
	app.Get("/users/:id/access-stats", UserAccessStats(stats, loc))

	// Admin export path
	app.Get("/contents/:id/download-url", ContentDownloadURL(gate, loc))
}
