package main

import (
	"log"
	"os"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/gradebook/apps/web/di"
	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/gradebook"
)

func main() {
	c := di.New("admin")

	var exitCode int
	err := c.Invoke(func(
		logger core.Logger,
		db *sqlx.DB,
		gradebookSvc gradebook.Service,
		mailSvc core.EmailService,
	) {
		defer func() {
			if err := db.Close(); err != nil {
				logger.Error("Failed to close db", err)
			}
		}()

		cli := commandLine{
			db:           db.DB,
			gradebookSvc: gradebookSvc,
			mailSvc:      mailSvc,
			out:          os.Stdout,
		}
		if err := cli.run(os.Args); err != nil {
			if err != errHelp {
				logger.Error("command failed: "+err.Error(), err)
			}
			exitCode = 1
		}
	})
	if err != nil {
		log.Fatal(err)
	}
	os.Exit(exitCode)
}
