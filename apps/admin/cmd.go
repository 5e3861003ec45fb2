package main

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/gradebook"
)

var (
	isTerminalFunc           = term.IsTerminal // mockable
	stdin          io.Reader = os.Stdin        // mockable

	errHelp    = errors.New("help provided")
	errAborted = errors.New("aborted")
)

type commandLine struct {
	db           *sql.DB
	gradebookSvc gradebook.Service
	mailSvc      core.EmailService
	out          io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS] - run a migrations command: up, up-by-one, up-to VERSION, down, down-to VERSION, redo, reset, status, version, create NAME [go|sql], fix")
	fmt.Fprintln(cli.out, "  mailgrades [-dry-run] [-yes] - email every student a report of their public grades")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	mailGradesCmd := flag.NewFlagSet("mailgrades", flag.ContinueOnError)
	mailGradesCmd.SetOutput(cli.out)
	mailGradesDryRun := mailGradesCmd.Bool("dry-run", false, "List the reports without sending them.")
	mailGradesYes := mailGradesCmd.Bool("yes", false, "Do not ask for confirmation.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "mailgrades":
		if err := mailGradesCmd.Parse(args[2:]); err != nil {
			if err == flag.ErrHelp {
				return errHelp
			}
			return err
		}
		return cli.mailGrades(context.Background(), *mailGradesDryRun, *mailGradesYes)
	default:
		cli.printUsage()
		return errHelp
	}
}

// confirm asks a yes/no question when stdin is a terminal. Non interactive runs are confirmed.
func (cli *commandLine) confirm(question string) bool {
	if !isTerminalFunc(int(os.Stdin.Fd())) {
		return true
	}
	fmt.Fprintf(cli.out, "%s [y/N]: ", question)
	answer, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
