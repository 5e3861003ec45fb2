package echoweb

import (
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core"
)

const dbConnKey = "dbConn"

// dbConnMiddleware holds one DB connection for the whole request and releases it on every exit path.
func dbConnMiddleware(pool core.ConnPool, logger core.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			conn, err := pool.Connx(ctx.Request().Context())
			if err != nil {
				return errors.Wrap(err, "acquiring DB connection")
			}
			defer func() {
				if err := conn.Close(); err != nil {
					logger.Error("releasing DB connection", err, ctx.Request())
				}
			}()

			ctx.Set(dbConnKey, conn)
			return next(ctx)
		}
	}
}

// dbExec returns the request's connection as service executor args; empty without one.
func dbExec(ctx echo.Context) []core.DBExecutor {
	if conn, ok := ctx.Get(dbConnKey).(*sqlx.Conn); ok && conn != nil {
		return []core.DBExecutor{conn}
	}
	return nil
}
