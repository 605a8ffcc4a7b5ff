package services

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"time"

	"stempel/internal/domain"
	"stempel/internal/logging"
	"stempel/internal/ports"
)

// ReportService builds read-only projections over stored work sessions
type ReportService struct {
	clock    ports.Clock
	sessions ports.SessionReader
}

// NewReportService creates a new ReportService
func NewReportService(sessions ports.SessionReader, clock ports.Clock) *ReportService {
	return &ReportService{
		clock:    clock,
		sessions: sessions,
	}
}

// DayReport summarizes all sessions of an employee that clocked in on the
// given calendar day. Open sessions are measured against the current time.
func (s *ReportService) DayReport(ctx context.Context, employeeID string, day time.Time) (*DayReport, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	to := from.Add(24 * time.Hour)

	sessions, err := s.sessions.ListByEmployee(ctx, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	now := s.clock.Now()

	report := &DayReport{
		EmployeeID: employeeID,
		Day:        from,
	}

	for _, sess := range sessions {
		minutes, err := sess.WorkedMinutes(now)
		if err != nil {
			logging.Logger.Warn("Skipping session with invalid duration",
				"session", sess.ID,
				"error", err)
			continue
		}

		pauseMinutes := int(sess.TotalPausedDuration() / time.Minute)

		report.Rows = append(report.Rows, DayReportRow{
			SessionID:     sess.ID,
			ProjectID:     sess.ProjectID,
			ClockIn:       sess.ClockIn,
			ClockOut:      sess.ClockOut,
			WorkedMinutes: minutes,
			PauseMinutes:  pauseMinutes,
			PauseCount:    len(sess.Pauses),
		})
		report.TotalWorkedMinutes += minutes
		report.TotalPauseMinutes += pauseMinutes
	}

	return report, nil
}

// Breakdown returns the pause breakdown of a single session. Completed pauses
// and a still-open pause are reported separately so an in-progress pause is
// never shown with a fabricated end time.
func (s *ReportService) Breakdown(ctx context.Context, sessionID string) (*domain.PauseBreakdown, error) {
	sess, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	breakdown := sess.Breakdown()
	return &breakdown, nil
}

var reportTemplate = template.Must(template.New("day-report").Parse(`<!DOCTYPE html>
<html>
<head><title>Time report {{.EmployeeID}} {{.Day.Format "2006-01-02"}}</title></head>
<body>
<h1>Time report for {{.EmployeeID}} on {{.Day.Format "2006-01-02"}}</h1>
<table border="1" cellpadding="4">
<tr><th>Session</th><th>Project</th><th>Clock in</th><th>Clock out</th><th>Worked (min)</th><th>Paused (min)</th><th>Pauses</th></tr>
{{range .Rows}}<tr>
<td>{{.SessionID}}</td>
<td>{{.ProjectID}}</td>
<td>{{.ClockIn.Format "15:04"}}</td>
<td>{{if .ClockOut}}{{.ClockOut.Format "15:04"}}{{else}}open{{end}}</td>
<td>{{.WorkedMinutes}}</td>
<td>{{.PauseMinutes}}</td>
<td>{{.PauseCount}}</td>
</tr>{{end}}
<tr><th colspan="4">Total</th><th>{{.TotalWorkedMinutes}}</th><th>{{.TotalPauseMinutes}}</th><th></th></tr>
</table>
</body>
</html>
`))

// WriteHTML renders a day report as a standalone HTML page
func (s *ReportService) WriteHTML(w io.Writer, report *DayReport) error {
	if err := reportTemplate.Execute(w, report); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}
