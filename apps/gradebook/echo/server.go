package echogradebook

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"

	"github.com/trezcool/gradebook/apps/web"
	"github.com/trezcool/gradebook/core"
)

type ServerDeps struct {
	Conf           *core.Config
	Logger         core.Logger
	DB             *sqlx.DB
	Validate       *validator.Validate
	Translator     ut.Translator
	DisableReqLogs bool
}

func NewServer(address string, deps ServerDeps) (*web.Server, error) {
	app, err := web.NewEcho(web.Options{
		Debug:          deps.Conf.Debug,
		TestMode:       deps.Conf.TestMode,
		DisableReqLogs: deps.DisableReqLogs,
		Logger:         deps.Logger,
	})
	if err != nil {
		return nil, err
	}

	app.GET("/", home)

	g := app.Group("", sessionMiddleware(deps.DB))
	registerGradebookRoutes(g, deps.Validate, deps.Translator)

	return web.NewServer(app, address), nil
}

func home(ctx echo.Context) error {
	return ctx.Render(http.StatusOK, "gradebook/index", echo.Map{"Title": "Gradebook"})
}
