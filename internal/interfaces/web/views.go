package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// LayoutView plantilla que envuelve todas las páginas; cada página se inserta con {{embed}}.
const LayoutView = "layout"

// StaticFS archivos estáticos (JS/CSS) servidos bajo /static.
func StaticFS() fs.FS {
	return mustSub(staticFS, "static")
}

// NewViews motor html de Fiber sobre las plantillas embebidas.
func NewViews() *html.Engine {
	engine := html.NewFileSystem(http.FS(mustSub(templatesFS, "templates")), ".html")
	engine.AddFunc("money", FormatMoney)
	return engine
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
