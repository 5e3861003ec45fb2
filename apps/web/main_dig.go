package main

import (
	"github.com/jmoiron/sqlx"

	"github.com/trezcool/gradebook/apps/web/di"
	echoweb "github.com/trezcool/gradebook/apps/web/echo"
	"github.com/trezcool/gradebook/core"
)

func startWithDig() {
	c := di.New("web")

	must(c.Invoke(func(
		conf *core.Config,
		logger core.Logger,
		dbLoggerParam di.DBLoggerParam,
		db *sqlx.DB,
		server *echoweb.Server,
	) {
		defer func() {
			if err := db.Close(); err != nil {
				dbLoggerParam.Logger.Error("Failed to close", err)
			}
		}()

		serve(conf, logger, server)
	}))
}
