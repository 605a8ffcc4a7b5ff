package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pterm/pterm"

	"stempel/internal/services"
)

// ReportCmd shows worked time for a day or the pause breakdown of one session
type ReportCmd struct {
	Day     string `help:"Day to report on (YYYY-MM-DD, defaults to today)"`
	Session string `help:"Show the pause breakdown of this session instead of a day summary"`
	HTML    string `help:"Write the day report as HTML to this file"`
}

// Run executes the report command
func (r *ReportCmd) Run(cli *CLI) error {
	ctx := context.Background()

	if r.Session != "" {
		return r.renderBreakdown(ctx, cli)
	}

	day := time.Now()
	if r.Day != "" {
		parsed, err := time.Parse("2006-01-02", r.Day)
		if err != nil {
			return fmt.Errorf("invalid day %q, expected YYYY-MM-DD: %w", r.Day, err)
		}
		day = parsed
	}

	report, err := cli.Container.ReportService.DayReport(ctx, cli.Employee, day)
	if err != nil {
		return err
	}

	if len(report.Rows) == 0 {
		pterm.Info.Printfln("No sessions for %s on %s", report.EmployeeID, report.Day.Format("2006-01-02"))
		return nil
	}

	r.renderDayTable(report)

	if r.HTML != "" {
		if err := r.writeHTML(cli, report); err != nil {
			return err
		}
		pterm.Success.Printfln("HTML report written to %s", r.HTML)
	}

	return nil
}

func (r *ReportCmd) renderDayTable(report *services.DayReport) {
	data := [][]string{
		{"SESSION", "PROJECT", "IN", "OUT", "WORKED", "PAUSED", "PAUSES"},
	}

	for _, row := range report.Rows {
		out := "open"
		if row.ClockOut != nil {
			out = row.ClockOut.Format("15:04")
		}
		data = append(data, []string{
			row.SessionID,
			row.ProjectID,
			row.ClockIn.Format("15:04"),
			out,
			formatMinutes(row.WorkedMinutes),
			formatMinutes(row.PauseMinutes),
			fmt.Sprintf("%d", row.PauseCount),
		})
	}

	data = append(data, []string{
		"TOTAL", "", "", "",
		formatMinutes(report.TotalWorkedMinutes),
		formatMinutes(report.TotalPauseMinutes),
		"",
	})

	printTable(data)
}

func (r *ReportCmd) renderBreakdown(ctx context.Context, cli *CLI) error {
	breakdown, err := cli.Container.ReportService.Breakdown(ctx, r.Session)
	if err != nil {
		return err
	}

	if len(breakdown.Rows) == 0 && breakdown.InProgressSince == nil {
		pterm.Info.Println("No pauses on this session")
		return nil
	}

	data := [][]string{
		{"START", "END", "DURATION", "STARTED BY", "ENDED BY"},
	}
	for _, row := range breakdown.Rows {
		data = append(data, []string{
			row.Start.Format("15:04"),
			row.End.Format("15:04"),
			formatMinutes(row.DurationMinutes),
			row.StartedBy,
			row.EndedBy,
		})
	}
	printTable(data)

	if breakdown.InProgressSince != nil {
		pterm.Info.Printfln("Pause in progress since %s (started by %s)",
			breakdown.InProgressSince.Format("15:04"), breakdown.InProgressBy)
	}

	return nil
}

func (r *ReportCmd) writeHTML(cli *CLI, report *services.DayReport) error {
	f, err := os.Create(r.HTML)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", r.HTML, err)
	}
	defer f.Close()

	return cli.Container.ReportService.WriteHTML(f, report)
}

func printTable(data [][]string) {
	table := pterm.DefaultTable
	table.Boxed = true

	str, err := table.WithHasHeader().WithData(data).Srender()
	if err != nil {
		pterm.Error.Printfln("Failed to render table: %s", err.Error())
		return
	}

	fmt.Println(str)
}
