package web

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core"
)

var ErrHttpNotFound = echo.NewHTTPError(http.StatusNotFound, "not found")

// NewHTTPErrorHandler returns a custom echo.HTTPErrorHandler rendering the error page.
// Errors that are not *echo.HTTPError are server errors: they are logged and hidden from users.
func NewHTTPErrorHandler(logger core.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		// the request logger may have handled err already
		if ctx.Response().Committed {
			return
		}

		var (
			code    int
			message string
		)

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = fmt.Sprint(origErr.Message)
		default: // any other error is a server error
			code = http.StatusInternalServerError
			message = http.StatusText(code)
			logger.Error(message, errors.Wrap(err, message), map[string]interface{}{
				"request_id": ctx.Response().Header().Get(echo.HeaderXRequestID),
				"method":     ctx.Request().Method,
				"uri":        ctx.Request().RequestURI,
			})
			if ctx.Echo().Debug {
				message = err.Error()
			}
		}

		// Send response
		if ctx.Request().Method == http.MethodHead {
			err = ctx.NoContent(code)
		} else {
			err = ctx.Render(code, "error", echo.Map{
				"Title":   http.StatusText(code),
				"Code":    code,
				"Message": message,
			})
		}
		if err != nil {
			logger.Error("rendering error page", err)
		}
	}
}
