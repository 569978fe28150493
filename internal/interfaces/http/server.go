package http

import (
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/invoice-manager/pkg/logger"
)

// multipartOverhead margen para cabeceras y boundaries sobre el tamaño del archivo.
const multipartOverhead = 1 << 20

// ServerConfig opciones de la app Fiber de la API.
type ServerConfig struct {
	AppName        string
	MaxUploadBytes int64
	// SwaggerFile ruta al swagger.json; vacío o inexistente desactiva /docs.
	SwaggerFile string
}

// NewApp construye la app Fiber con middlewares y rutas registradas.
func NewApp(cfg ServerConfig, deps RouterDeps) *fiber.App {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
		deps.Logger = log
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		BodyLimit:    int(cfg.MaxUploadBytes) + multipartOverhead,
		ReadTimeout:  time.Second * 60,
		WriteTimeout: time.Second * 60,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: ErrorHandler(log.Named("http")),
	})
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(RequestLogger(log.Named("http.access")))

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.SwaggerFile != "" {
		if _, err := os.Stat(cfg.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.SwaggerFile,
				Path:     "docs",
				Title:    "Invoice Manager API",
			}))
		} else {
			log.Warn().Str("file", cfg.SwaggerFile).Msg("swagger.json no encontrado, /docs deshabilitado")
		}
	}

	Router(app, deps)
	return app
}
