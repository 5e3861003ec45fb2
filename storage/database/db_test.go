package database

import (
	"database/sql"
	"errors"
	"net/url"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/gradebook/core"
)

func testConfig() *core.Config {
	return &core.Config{
		Database: core.DatabaseConfig{
			Engine:        "postgres",
			Host:          "db.local",
			Port:          5433,
			Name:          "gradebook",
			User:          "app",
			Password:      "s3cret",
			AdminUser:     "postgres",
			AdminPassword: "root",
			DisableTLS:    true,
		},
	}
}

func Test_dsn(t *testing.T) {
	conf := testConfig()

	tests := []struct {
		name       string
		dbName     string
		admin      bool
		disableTLS bool
		wantUser   string
		wantPwd    string
		wantSSL    string
	}{
		{name: "app user", dbName: "gradebook", disableTLS: true, wantUser: "app", wantPwd: "s3cret", wantSSL: "disable"},
		{name: "admin user", dbName: "postgres", admin: true, disableTLS: true, wantUser: "postgres", wantPwd: "root", wantSSL: "disable"},
		{name: "tls", dbName: "gradebook", wantUser: "app", wantPwd: "s3cret", wantSSL: "require"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf.Database.DisableTLS = tt.disableTLS

			u, err := url.Parse(dsn(tt.dbName, tt.admin, conf))
			require.NoError(t, err)

			assert.Equal(t, "postgres", u.Scheme)
			assert.Equal(t, "db.local:5433", u.Host)
			assert.Equal(t, "/"+tt.dbName, u.Path)
			assert.Equal(t, tt.wantUser, u.User.Username())
			pwd, _ := u.User.Password()
			assert.Equal(t, tt.wantPwd, pwd)
			assert.Equal(t, tt.wantSSL, u.Query().Get("sslmode"))
			assert.Equal(t, "utc", u.Query().Get("timezone"))
		})
	}
}

func Test_dsn_adminFallsBackToAppUser(t *testing.T) {
	conf := testConfig()
	conf.Database.AdminUser = ""

	u, err := url.Parse(dsn("postgres", true, conf))
	require.NoError(t, err)
	assert.Equal(t, "app", u.User.Username())
}

func TestRunMigrations(t *testing.T) {
	defer func() { gooseRunFunc = goose.Run }()

	var gotCmd, gotDir string
	var gotArgs []string
	gooseRunFunc = func(command string, db *sql.DB, dir string, args ...string) error {
		gotCmd, gotDir, gotArgs = command, dir, args
		if command == "lol" {
			return errors.New("no such command")
		}
		return nil
	}

	require.NoError(t, RunMigrations(nil, "up-to", "1"))
	assert.Equal(t, "up-to", gotCmd)
	assert.Equal(t, migrationsDir, gotDir)
	assert.Equal(t, []string{"1"}, gotArgs)

	require.NoError(t, Migrate(nil))
	assert.Equal(t, "up", gotCmd)

	err := RunMigrations(nil, "lol")
	if assert.Error(t, err) {
		assert.Equal(t, `running migrations "lol": no such command`, err.Error())
	}
}
