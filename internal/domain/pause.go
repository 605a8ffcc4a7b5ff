package domain

import "time"

// StartPause opens a pause on the session at now. A session can hold at most
// one open pause, and a closed session cannot be paused.
func (s *WorkSession) StartPause(initiator string, now time.Time) error {
	if s.Closed() {
		return ErrSessionClosed
	}
	if s.CurrentPause != nil {
		return ErrAlreadyPaused
	}

	s.CurrentPause = &OpenPause{
		Start:     now,
		StartedBy: initiator,
	}

	return nil
}

// EndPause closes the open pause at now, appends the closed interval and adds
// its duration to the running total. Ending an already-ended pause (duplicate
// submit) observes the pause gone and reports ErrNoPauseInProgress instead of
// double-counting. An end instant at or before the start (clock skew) is
// rejected rather than recorded as a zero or negative interval.
func (s *WorkSession) EndPause(initiator string, now time.Time) error {
	if s.CurrentPause == nil {
		return ErrNoPauseInProgress
	}
	if !now.After(s.CurrentPause.Start) {
		return ErrNonPositiveDuration
	}

	interval := PauseInterval{
		Start:     s.CurrentPause.Start,
		End:       now,
		StartedBy: s.CurrentPause.StartedBy,
		EndedBy:   initiator,
	}

	s.Pauses = append(s.Pauses, interval)
	s.PauseTotal += interval.Duration()
	s.CurrentPause = nil

	return nil
}

// TotalPausedDuration returns the accumulated duration of closed pauses.
// An in-progress pause is not counted until it ends.
func (s *WorkSession) TotalPausedDuration() time.Duration {
	return s.PauseTotal
}
