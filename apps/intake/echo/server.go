package echointake

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/gradebook/apps/web"
	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/intake"
)

type ServerDeps struct {
	Conf           *core.Config
	Logger         core.Logger
	IntakeSvc      *intake.Service
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

	registerIntakeRoutes(app, deps.IntakeSvc, deps.Validate, deps.Translator)

	return web.NewServer(app, address), nil
}
