package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stempel/internal/adapters/identity"
	"stempel/internal/ports"
)

func TestDayReport_SummarizesSessions(t *testing.T) {
	start := time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)
	repo := newFakeRepo()
	clock := &fixedClock{now: start}
	tracking := NewTrackingService(repo, &fakeBlobStore{}, identity.Static{ID: "foreman-7"}, clock)
	reports := NewReportService(repo, clock)
	ctx := context.Background()

	// Morning shift, 07:00-11:30 with a 30 minute pause
	morning, err := tracking.ClockIn(ctx, ClockInParams{EmployeeID: "emp-1", ProjectID: "site-42"})
	require.NoError(t, err)
	clock.advance(2 * time.Hour)
	_, err = tracking.StartPause(ctx, morning.ID)
	require.NoError(t, err)
	clock.advance(30 * time.Minute)
	_, err = tracking.EndPause(ctx, morning.ID)
	require.NoError(t, err)
	clock.advance(2 * time.Hour)
	_, err = tracking.ClockOut(ctx, ClockOutParams{SessionID: morning.ID})
	require.NoError(t, err)

	// Afternoon shift still open, running for one hour
	clock.advance(time.Hour)
	afternoon, err := tracking.ClockIn(ctx, ClockInParams{EmployeeID: "emp-1", ProjectID: "site-43"})
	require.NoError(t, err)
	clock.advance(time.Hour)

	report, err := reports.DayReport(ctx, "emp-1", start)
	require.NoError(t, err)

	require.Len(t, report.Rows, 2)
	assert.Equal(t, 240, report.Rows[0].WorkedMinutes)
	assert.Equal(t, 30, report.Rows[0].PauseMinutes)
	assert.Equal(t, 1, report.Rows[0].PauseCount)
	assert.Equal(t, afternoon.ID, report.Rows[1].SessionID)
	assert.Equal(t, 60, report.Rows[1].WorkedMinutes)
	assert.Nil(t, report.Rows[1].ClockOut)
	assert.Equal(t, 300, report.TotalWorkedMinutes)
	assert.Equal(t, 30, report.TotalPauseMinutes)
}

func TestDayReport_FloorsPartialMinutes(t *testing.T) {
	start := time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)
	repo := newFakeRepo()
	clock := &fixedClock{now: start}
	tracking := NewTrackingService(repo, &fakeBlobStore{}, identity.Static{ID: "foreman-7"}, clock)
	reports := NewReportService(repo, clock)
	ctx := context.Background()

	sess, err := tracking.ClockIn(ctx, ClockInParams{EmployeeID: "emp-1", ProjectID: "site-42"})
	require.NoError(t, err)

	clock.advance(59*time.Minute + 59*time.Second)
	_, err = tracking.ClockOut(ctx, ClockOutParams{SessionID: sess.ID})
	require.NoError(t, err)

	report, err := reports.DayReport(ctx, "emp-1", start)
	require.NoError(t, err)
	require.Len(t, report.Rows, 1)
	assert.Equal(t, 59, report.Rows[0].WorkedMinutes)
}

func TestDayReport_EmptyDay(t *testing.T) {
	start := time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)
	repo := newFakeRepo()
	clock := &fixedClock{now: start}
	reports := NewReportService(repo, clock)

	report, err := reports.DayReport(context.Background(), "emp-1", start)
	require.NoError(t, err)
	assert.Empty(t, report.Rows)
	assert.Zero(t, report.TotalWorkedMinutes)
}

func TestBreakdown_SeparatesOpenPause(t *testing.T) {
	start := time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)
	repo := newFakeRepo()
	clock := &fixedClock{now: start}
	tracking := NewTrackingService(repo, &fakeBlobStore{}, identity.Static{ID: "foreman-7"}, clock)
	reports := NewReportService(repo, clock)
	ctx := context.Background()

	sess, err := tracking.ClockIn(ctx, ClockInParams{EmployeeID: "emp-1", ProjectID: "site-42"})
	require.NoError(t, err)

	clock.advance(time.Hour)
	_, err = tracking.StartPause(ctx, sess.ID)
	require.NoError(t, err)
	clock.advance(20 * time.Minute)
	_, err = tracking.EndPause(ctx, sess.ID)
	require.NoError(t, err)

	clock.advance(time.Hour)
	pauseStart := clock.Now()
	_, err = tracking.StartPause(ctx, sess.ID)
	require.NoError(t, err)

	breakdown, err := reports.Breakdown(ctx, sess.ID)
	require.NoError(t, err)

	require.Len(t, breakdown.Rows, 1)
	assert.Equal(t, 20, breakdown.Rows[0].DurationMinutes)
	require.NotNil(t, breakdown.InProgressSince)
	assert.Equal(t, pauseStart, *breakdown.InProgressSince)
	assert.Equal(t, "foreman-7", breakdown.InProgressBy)
}

func TestWriteHTML_RendersReport(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	reports := NewReportService(newFakeRepo(), &fixedClock{now: start})

	clockOut := start.Add(8 * time.Hour)
	report := &DayReport{
		EmployeeID: "emp-1",
		Day:        start,
		Rows: []DayReportRow{{
			SessionID:     "s-1",
			ProjectID:     "site-42",
			ClockIn:       start.Add(7 * time.Hour),
			ClockOut:      &clockOut,
			WorkedMinutes: 60,
			PauseMinutes:  0,
		}},
		TotalWorkedMinutes: 60,
	}

	var buf strings.Builder
	require.NoError(t, reports.WriteHTML(&buf, report))

	html := buf.String()
	assert.Contains(t, html, "emp-1")
	assert.Contains(t, html, "site-42")
	assert.Contains(t, html, "2026-03-02")
	assert.Contains(t, html, "<td>60</td>")
}

var _ ports.SessionReader = (*fakeRepo)(nil)
