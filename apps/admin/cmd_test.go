package main

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/term"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/assignment"
	"github.com/trezcool/gradebook/core/grade"
	"github.com/trezcool/gradebook/core/gradebook"
	"github.com/trezcool/gradebook/core/student"
	emailsvc "github.com/trezcool/gradebook/services/email"
	inmemdb "github.com/trezcool/gradebook/storage/database/inmem"
	"github.com/trezcool/gradebook/testutil"
)

var (
	studentRepo    student.Repository
	assignmentRepo assignment.Repository
	gradeRepo      grade.Repository
	mailSvc        *emailsvc.ConsoleService
)

func setup(t *testing.T) (*commandLine, *bytes.Buffer) {
	t.Helper()

	// set up DB & repos
	db := inmemdb.NewDB()
	studentRepo = inmemdb.NewStudentRepository(db)
	assignmentRepo = inmemdb.NewAssignmentRepository(db)
	gradeRepo = inmemdb.NewGradeRepository(db)

	conf := &core.Config{AppName: "Gradebook", DefaultFromEmail: "noreply@school.test"}
	mailSvc = emailsvc.NewConsoleServiceMock(conf)

	out := new(bytes.Buffer)
	return &commandLine{
		gradebookSvc: gradebook.NewService(
			student.NewService(studentRepo),
			assignment.NewService(assignmentRepo),
			grade.NewService(gradeRepo),
		),
		mailSvc: mailSvc,
		out:     out,
	}, out
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	extra      interface{}
}

func (tt cliTest) check(t *testing.T, err error) {
	t.Helper()
	switch {
	case tt.wantErr != nil:
		assert.Equal(t, tt.wantErr, err)
	case tt.wantErrStr != "":
		if assert.Error(t, err) {
			assert.Equal(t, tt.wantErrStr, err.Error())
		}
	default:
		assert.NoError(t, err)
	}
}

func Test_commandLine_run(t *testing.T) {
	cli, out := setup(t)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			tt.check(t, cli.run(args))
			assert.Contains(t, out.String(), "Usage:")
		})
	}
}

func Test_commandLine_migrate(t *testing.T) {
	cli, _ := setup(t)

	runMigrationsFunc = func(db *sql.DB, command string, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to":
			if len(args) == 0 {
				return fmt.Errorf("up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		case "create":
			if len(args) == 0 {
				return fmt.Errorf("create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]")
			}
		case "down-to":
			if len(args) == 0 {
				return fmt.Errorf("down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "create: no args", args: []string{"migrate", "create"}, wantErrStr: "create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]"},
		{name: "down-to: no args", args: []string{"migrate", "down-to"}, wantErrStr: "down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION"},
		{name: "down-to: non-int arg", args: []string{"migrate", "down-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-by-one", args: []string{"migrate", "up-by-one"}},
		{name: "up-to", args: []string{"migrate", "up-to", "2"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "down-to", args: []string{"migrate", "down-to", "1"}},
		{name: "redo", args: []string{"migrate", "redo"}},
		{name: "reset", args: []string{"migrate", "reset"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "version", args: []string{"migrate", "version"}},
		{name: "create", args: []string{"migrate", "create", "attendance", "sql"}},
		{name: "fix", args: []string{"migrate", "fix"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, cli.run(args))
		})
	}
}

func Test_commandLine_mailGrades(t *testing.T) {
	cli, out := setup(t)

	ada := testutil.CreateStudent(t, studentRepo, "Ada", "Lovelace", "ada")
	alan := testutil.CreateStudent(t, studentRepo, "Alan", "Turing", "alan")
	_, err := studentRepo.CreateStudent(context.Background(), student.Student{FirstName: "Grace", LastName: "Hopper"})
	require.NoError(t, err)

	essay := testutil.CreateAssignment(t, assignmentRepo, "Essay", 10, true)
	testutil.CreateGrade(t, gradeRepo, ada, essay, 9, "Great work")
	testutil.CreateGrade(t, gradeRepo, alan, essay, 7, "")

	type extra struct {
		terminal bool
		answer   string
	}
	tests := []struct {
		cliTest
		wantSent int
	}{
		{cliTest: cliTest{name: "unknown flag", args: []string{"mailgrades", "-lol"}, wantErrStr: "flag provided but not defined: -lol"}},
		{cliTest: cliTest{name: "dry run", args: []string{"mailgrades", "-dry-run"}}},
		{cliTest: cliTest{name: "declined", args: []string{"mailgrades"}, extra: extra{terminal: true, answer: "n\n"}, wantErr: errAborted}},
		{cliTest: cliTest{name: "no answer", args: []string{"mailgrades"}, extra: extra{terminal: true}, wantErr: errAborted}},
		{cliTest: cliTest{name: "confirmed", args: []string{"mailgrades"}, extra: extra{terminal: true, answer: "y\n"}}, wantSent: 2},
		{cliTest: cliTest{name: "confirmation skipped", args: []string{"mailgrades", "-yes"}, extra: extra{terminal: true}}, wantSent: 2},
		{cliTest: cliTest{name: "non interactive", args: []string{"mailgrades"}}, wantSent: 2},
	}
	defer func() { isTerminalFunc, stdin = term.IsTerminal, os.Stdin }()
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)
		ex, _ := tt.extra.(extra)

		isTerminalFunc = func(int) bool { return ex.terminal }
		stdin = strings.NewReader(ex.answer)

		t.Run(tt.name, func(t *testing.T) {
			before := len(mailSvc.SentMessages())
			out.Reset()

			tt.check(t, cli.run(args))

			sent := mailSvc.SentMessages()[before:]
			assert.Len(t, sent, tt.wantSent)
			if tt.wantErr == nil && tt.wantErrStr == "" {
				assert.Contains(t, out.String(), "ada@school.test")
				assert.Contains(t, out.String(), "alan@school.test")
				assert.NotContains(t, out.String(), "Grace")
			}
		})
	}
}

func Test_commandLine_mailGrades_nobody(t *testing.T) {
	cli, out := setup(t)

	require.NoError(t, cli.run([]string{"admin", "mailgrades", "-yes"}))
	assert.Contains(t, out.String(), "no student to mail")
	assert.Empty(t, mailSvc.SentMessages())
}
