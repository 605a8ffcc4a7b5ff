package domain

import "time"

// PauseRow is one closed pause prepared for display
type PauseRow struct {
	Start           time.Time
	End             time.Time
	DurationMinutes int
	StartedBy       string
	EndedBy         string
}

// PauseBreakdown lists the closed pauses of a session plus, separately, an
// in-progress indicator. The open pause never contributes to the sum.
type PauseBreakdown struct {
	Rows            []PauseRow
	InProgressSince *time.Time
	InProgressBy    string
}

// TotalMinutes sums the closed rows
func (b PauseBreakdown) TotalMinutes() int {
	var total int
	for _, r := range b.Rows {
		total += r.DurationMinutes
	}
	return total
}

// WorkedDuration returns clock-out minus clock-in minus closed pause time.
// For an open session nowIfOpen stands in as a provisional end for display;
// it is never persisted. A negative result is a data-integrity fault and is
// reported instead of clamped.
func (s *WorkSession) WorkedDuration(nowIfOpen time.Time) (time.Duration, error) {
	end := nowIfOpen
	if s.ClockOut != nil {
		end = *s.ClockOut
	}

	worked := end.Sub(s.ClockIn) - s.PauseTotal
	if worked < 0 {
		return 0, ErrInvalidDuration
	}

	return worked, nil
}

// WorkedMinutes is WorkedDuration floored to whole minutes
func (s *WorkSession) WorkedMinutes(nowIfOpen time.Time) (int, error) {
	worked, err := s.WorkedDuration(nowIfOpen)
	if err != nil {
		return 0, err
	}

	return int(worked / time.Minute), nil
}

// Breakdown projects the pause state of a session into display-ready rows
func (s *WorkSession) Breakdown() PauseBreakdown {
	b := PauseBreakdown{
		Rows: make([]PauseRow, 0, len(s.Pauses)),
	}

	for _, p := range s.Pauses {
		b.Rows = append(b.Rows, PauseRow{
			Start:           p.Start,
			End:             p.End,
			DurationMinutes: int(p.Duration() / time.Minute),
			StartedBy:       p.StartedBy,
			EndedBy:         p.EndedBy,
		})
	}

	if s.CurrentPause != nil {
		since := s.CurrentPause.Start
		b.InProgressSince = &since
		b.InProgressBy = s.CurrentPause.StartedBy
	}

	return b
}
