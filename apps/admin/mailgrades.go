package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core/gradebook"
)

func (cli *commandLine) mailGrades(ctx context.Context, dryRun, yes bool) error {
	pg, err := cli.gradebookSvc.PublicGradebook(ctx)
	if err != nil {
		return errors.Wrap(err, "building public gradebook")
	}

	messages := gradebook.ReportMessages(pg)
	if len(messages) == 0 {
		fmt.Fprintln(cli.out, "no student to mail")
		return nil
	}

	for _, msg := range messages {
		fmt.Fprintf(cli.out, "  %s\n", msg.To[0].String())
	}
	if dryRun {
		fmt.Fprintf(cli.out, "%d report(s) would be sent\n", len(messages))
		return nil
	}

	if !yes && !cli.confirm(fmt.Sprintf("Send %d report(s)?", len(messages))) {
		return errAborted
	}
	if err = cli.mailSvc.SendMessages(messages...); err != nil {
		return errors.Wrap(err, "sending reports")
	}
	fmt.Fprintf(cli.out, "%d report(s) sent\n", len(messages))
	return nil
}
