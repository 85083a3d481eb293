package web

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/gradebook/core"
)

type Options struct {
	Debug          bool
	TestMode       bool
	DisableReqLogs bool
	Logger         core.Logger
}

// NewEcho returns an echo instance with the middlewares, renderer and error handler shared by the apps.
func NewEcho(opts Options) (*echo.Echo, error) {
	renderer, err := NewRenderer(opts.Debug)
	if err != nil {
		return nil, err
	}

	app := echo.New()
	app.HideBanner = true
	app.HidePort = true
	app.Debug = opts.Debug
	app.Renderer = renderer
	app.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	app.Pre(middleware.RemoveTrailingSlash())
	app.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	if !opts.DisableReqLogs {
		app.Use(requestLogger(opts.Logger))
	}
	// do not recover in DEV|TEST mode
	if !(opts.Debug || opts.TestMode) {
		app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	return app, nil
}

func requestLogger(logger core.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogLatency:   true,
		LogMethod:    true,
		LogURI:       true,
		LogRequestID: true,
		LogStatus:    true,
		LogError:     true,
		HandleError:  true, // status is final once the error handler ran
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			fields := map[string]interface{}{
				"request_id": v.RequestID,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
			}
			if v.Error != nil {
				fields["error"] = v.Error.Error()
			}
			logger.Info("request", fields)
			return nil
		},
	})
}
