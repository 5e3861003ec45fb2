package di

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"go.uber.org/dig"

	echoweb "github.com/trezcool/gradebook/apps/web/echo"
	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/gradebook"
)

func TestContainer_resolvesGraph(t *testing.T) {
	c := newContainer("web", dig.DryRun(true))

	err := c.Invoke(func(
		conf *core.Config,
		logger core.Logger,
		dbLoggerParam DBLoggerParam,
		db *sqlx.DB,
		mailSvc core.EmailService,
		gradebookSvc gradebook.Service,
		server *echoweb.Server,
	) {
	})
	assert.NoError(t, err)
}

func TestContainer_missingDependency(t *testing.T) {
	c := newContainer("web", dig.DryRun(true))

	type unknown struct{}
	err := c.Invoke(func(*unknown) {})
	assert.Error(t, err)
}
