package server

import (
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/favicon"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"

	"github.com/dmcfuji/studiosite/app/controllers"
	"github.com/dmcfuji/studiosite/internal/pkg/constants"
	"github.com/dmcfuji/studiosite/internal/pkg/env"
	"github.com/dmcfuji/studiosite/internal/pkg/ratelimit"
	"github.com/dmcfuji/studiosite/internal/pkg/router"
)

// FindBasePath locates the directory holding views/ so the binary runs from the repo root
// or from a nested working directory.
func FindBasePath() string {
	basePaths := []string{
		"./",     // Current directory
		"../",    // From cmd/
		"../../", // Fallback
	}
	for _, path := range basePaths {
		if _, err := os.Stat(path + "views"); !os.IsNotExist(err) {
			return path
		}
	}
	return ""
}

// NewApplication builds the fiber app on top of svcs. basePath must contain views/ and public/.
func NewApplication(svcs *Services, basePath string) *fiber.App {
	engine := html.New(basePath+"views", ".html")
	engine.Reload(env.IsDev())

	// init fiber app
	app := fiber.New(fiber.Config{
		Views:     engine,
		BodyLimit: 1 << 20, // contact form only
	})

	// ignore and cache favicon
	app.Use(favicon.New(favicon.Config{
		File:         basePath + constants.AssetsPath + "/icons/favicon.ico",
		URL:          "/favicon.ico",
		CacheControl: "public, max-age=604800",
	}))

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// fiber metrics
	app.Get("/metrics", basicauth.New(basicauth.Config{
		Users: map[string]string{
			env.GetEnv("METRICS_USER", "admin"): env.GetEnv("METRICS_PASSWORD", "change-me"),
		},
	}), monitor.New(monitor.Config{Title: "studiosite metrics"}))

	// static files
	app.Static(constants.PublicRoute, basePath+constants.AssetsPath, fiber.Static{
		CacheDuration: 15 * time.Second,
		Compress:      true,
		MaxAge:        3600,
	})

	// SWAGGER / OPENAPI
	app.Use(swagger.New(swagger.Config{
		BasePath: "/docs/api/",
		FilePath: basePath + "public/docs/v1/openapi.yml",
		Path:     "v1",
		Title:    "Studio site API",
	}))

	// ROUTER
	router.InstallRouter(app, router.Controllers{
		Pages:          controllers.NewPageController(svcs.SiteURL),
		Gallery:        controllers.NewGalleryController(svcs.Gallery, svcs.Proxy),
		Images:         controllers.NewImageController(svcs.Proxy),
		Contact:        controllers.NewContactController(svcs.Contact),
		LimiterStorage: ratelimit.NewRedisStorage(svcs.Redis),
	})

	return app
}
