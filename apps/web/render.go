package web

import (
	"embed"
	"io"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const baseLayout = "layouts/base"

//go:embed templates
var templatesFS embed.FS

// Renderer renders the embedded .gohtml views inside the base layout.
type Renderer struct {
	engine *html.Engine
}

var _ echo.Renderer = (*Renderer)(nil)

// NewRenderer parses every view under templates/. View names are their paths without
// extension (eg. "gradebook/points").
func NewRenderer(debug bool) (*Renderer, error) {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		return nil, errors.Wrap(err, "opening templates")
	}

	engine := html.NewFileSystem(http.FS(sub), ".gohtml")
	engine.Debug(debug)
	if err = engine.Load(); err != nil {
		return nil, errors.Wrap(err, "parsing templates")
	}
	return &Renderer{engine: engine}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.engine.Render(w, name, data, baseLayout)
}
