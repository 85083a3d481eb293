package echogradebook

import (
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core/gradebook"
	sqlxrepos "github.com/trezcool/gradebook/storage/database/sqlx"
)

const serviceCtxKey = "gradebookSvc"

var errSvcNotFoundInCtx = errors.New("gradebook service not found in echo.Context")

// sessionMiddleware binds a gradebook service to one pooled connection for the whole request.
// The connection goes back to the pool once the handler returns, whatever the outcome.
func sessionMiddleware(db *sqlx.DB) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			conn, err := db.Connx(ctx.Request().Context())
			if err != nil {
				return errors.Wrap(err, "acquiring db session")
			}
			defer func() { _ = conn.Close() }()

			ctx.Set(serviceCtxKey, gradebook.NewService(sqlxrepos.NewGradebookRepository(conn)))
			return next(ctx)
		}
	}
}

func getContextService(ctx echo.Context) (*gradebook.Service, error) {
	svc, ok := ctx.Get(serviceCtxKey).(*gradebook.Service)
	if !ok {
		return nil, errSvcNotFoundInCtx
	}
	return svc, nil
}
