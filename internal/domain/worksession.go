package domain

import "time"

// SessionState represents the lifecycle state of a work session
type SessionState string

const (
	StateOpen   SessionState = "open"
	StatePaused SessionState = "paused"
	StateClosed SessionState = "closed"
)

// Attachment is the normalized reference to an externally stored blob.
// It is produced once at the blob store boundary; nothing past that
// boundary needs to care what shape the upload input had.
type Attachment struct {
	ID      string
	URL     string
	Comment string
}

// PauseInterval is one closed pause inside a work session
type PauseInterval struct {
	Start     time.Time
	End       time.Time
	StartedBy string
	EndedBy   string
}

// Duration returns the length of a closed interval
func (p PauseInterval) Duration() time.Duration {
	return p.End.Sub(p.Start)
}

// OpenPause is the single in-progress pause of a session, if any
type OpenPause struct {
	Start     time.Time
	StartedBy string
}

// DocumentationEntry is one timestamped note with optional attachments,
// added while the session is running or at clock-out
type DocumentationEntry struct {
	Timestamp time.Time
	Notes     string
	Images    []Attachment
	Documents []Attachment
	AddedBy   string
}

// WorkSession represents one clock-in of an employee on a project (domain entity).
// ClockOut is nil while the session is open. PauseTotal only ever grows and
// always equals the sum over Pauses; an open pause does not count until closed.
type WorkSession struct {
	ID               string
	EmployeeID       string
	ProjectID        string
	ClockIn          time.Time
	ClockOut         *time.Time
	ClockInLocation  string
	ClockOutLocation string
	PauseTotal       time.Duration
	Pauses           []PauseInterval
	CurrentPause     *OpenPause
	Notes            string
	Documentation    []DocumentationEntry
}

// State derives the lifecycle state from the session fields
func (s *WorkSession) State() SessionState {
	switch {
	case s.ClockOut != nil:
		return StateClosed
	case s.CurrentPause != nil:
		return StatePaused
	default:
		return StateOpen
	}
}

// Closed reports whether the session has been clocked out
func (s *WorkSession) Closed() bool {
	return s.ClockOut != nil
}

// AppendNotes merges additional notes without overwriting existing ones
func (s *WorkSession) AppendNotes(notes string) {
	if notes == "" {
		return
	}
	if s.Notes == "" {
		s.Notes = notes
		return
	}
	s.Notes += "\n" + notes
}

// AttachDocumentation appends one documentation entry. Closed sessions
// reject further documentation so the audit trail ends at clock-out.
func (s *WorkSession) AttachDocumentation(entry DocumentationEntry) error {
	if s.Closed() {
		return ErrSessionClosed
	}

	s.Documentation = append(s.Documentation, entry)
	return nil
}

// Close clocks the session out at now. A trailing open pause is force-closed
// at now first; a trailing pause of zero or negative length is dropped since
// it contributes nothing. Close refuses to produce a session whose worked
// duration would be negative.
func (s *WorkSession) Close(notes, location string, now time.Time) error {
	if s.Closed() {
		return ErrSessionClosed
	}

	// validate before mutating so a refused close leaves the session untouched
	if !now.After(s.ClockIn) {
		return ErrInvalidDuration
	}

	pauseTotal := s.PauseTotal
	var trailing *PauseInterval

	if s.CurrentPause != nil && now.After(s.CurrentPause.Start) {
		trailing = &PauseInterval{
			Start:     s.CurrentPause.Start,
			End:       now,
			StartedBy: s.CurrentPause.StartedBy,
			EndedBy:   s.CurrentPause.StartedBy,
		}
		pauseTotal += trailing.Duration()
	}

	if now.Sub(s.ClockIn)-pauseTotal < 0 {
		return ErrInvalidDuration
	}

	if trailing != nil {
		s.Pauses = append(s.Pauses, *trailing)
	}
	s.PauseTotal = pauseTotal
	s.CurrentPause = nil

	s.AppendNotes(notes)
	s.ClockOutLocation = location
	s.ClockOut = &now

	return nil
}
