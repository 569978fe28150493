package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"

	apphttp "github.com/jhoicas/invoice-manager/internal/interfaces/http"
	"github.com/jhoicas/invoice-manager/pkg/logger"
)

// Config opciones del servidor web.
type Config struct {
	AppName      string
	PublicAPIURL string
	MaxBytes     int64
}

// errorPage datos de la página de error.
type errorPage struct {
	basePage
	Status int
}

// NewApp construye la app Fiber del cliente web.
func NewApp(cfg Config, api API, log *logger.Logger) *fiber.App {
	if log == nil {
		log = logger.Nop()
	}

	// fiber.New invoca Load sobre el motor de vistas.
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		Views:        NewViews(),
		ViewsLayout:  LayoutView,
		BodyLimit:    int(cfg.MaxBytes) + 1<<20,
		ReadTimeout:  time.Second * 60,
		WriteTimeout: time.Second * 60,
		ErrorHandler: errorHandler(log.Named("web")),
	})
	app.Use(recover.New())
	app.Use(apphttp.RequestLogger(log.Named("web.access")))
	app.Use("/static", filesystem.New(filesystem.Config{Root: http.FS(StaticFS())}))

	h := NewHandler(api, cfg.PublicAPIURL, cfg.MaxBytes, log.Named("web.pages"))
	Router(app, h)
	return app
}

// Router registra las rutas del cliente web. Las rutas fijas van antes de /:id.
func Router(app *fiber.App, h *Handler) {
	app.Get("/", h.Home)

	invoices := app.Group("/invoices")
	invoices.Get("/", h.List)
	invoices.Get("/upload", h.UploadForm)
	invoices.Post("/upload", h.Upload)
	invoices.Get("/:id", h.Edit)
	invoices.Post("/:id", h.EditAction)
	invoices.Post("/:id/delete", h.Delete)
}

func errorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		msg := "Something went wrong"
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			msg = fe.Message
		}
		if code >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("path", c.Path()).Msg("error en página")
		}
		return c.Status(code).Render("error", errorPage{
			basePage: basePage{Title: "Error", Alert: msg},
			Status:   code,
		})
	}
}
