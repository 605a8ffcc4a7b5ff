package cmd

import (
	"context"

	"github.com/pterm/pterm"
)

// RecoverCmd locates a session from a free-form legacy record, e.g. a paper
// note saying "Müller, last friday"
type RecoverCmd struct {
	Employee string `arg:"" help:"Employee reference (matched as substring of stored IDs)"`
	Date     string `arg:"" help:"Free-form date expression (e.g. 'last friday', '2.3.2026')"`
}

// Run executes the recover command
func (r *RecoverCmd) Run(cli *CLI) error {
	sess, err := cli.Container.RecoveryService.FindLegacySession(context.Background(), r.Employee, r.Date)
	if err != nil {
		return err
	}

	out := "open"
	if sess.ClockOut != nil {
		out = sess.ClockOut.Format("15:04")
	}

	printTable([][]string{
		{"SESSION", "EMPLOYEE", "PROJECT", "DAY", "IN", "OUT"},
		{
			sess.ID,
			sess.EmployeeID,
			sess.ProjectID,
			sess.ClockIn.Format("2006-01-02"),
			sess.ClockIn.Format("15:04"),
			out,
		},
	})

	pterm.Success.Printfln("Found session %s", sess.ID)

	return nil
}
