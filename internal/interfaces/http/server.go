package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/vendor-management/pkg/logger"
)

// AppConfig opciones del servidor fiber.
type AppConfig struct {
	Name        string
	MaxUploadMB int
	Log         *logger.Logger
	Observer    httpObserver // opcional
}

// NewApp crea la app fiber con recover, log de requests y el ErrorHandler de dominio.
func NewApp(cfg AppConfig) *fiber.App {
	bodyLimit := fiber.DefaultBodyLimit
	if cfg.MaxUploadMB > 0 {
		// margen para varios archivos más los campos del formulario
		bodyLimit = (cfg.MaxUploadMB*4 + 1) * 1024 * 1024
	}
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    bodyLimit,
		ErrorHandler: ErrorHandler(cfg.Log),
	})
	app.Use(RequestLogger(cfg.Log, cfg.Observer))
	app.Use(recover.New())
	return app
}
