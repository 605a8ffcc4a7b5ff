package domain

import "errors"

var (
	ErrAlreadyClockedIn    = errors.New("employee already has an open work session")
	ErrAlreadyPaused       = errors.New("a pause is already in progress")
	ErrInvalidDuration     = errors.New("worked duration would be negative")
	ErrNoPauseInProgress   = errors.New("no pause in progress")
	ErrNonPositiveDuration = errors.New("pause end must be after pause start")
	ErrSessionClosed       = errors.New("work session is already closed")
	ErrSessionNotFound     = errors.New("work session not found")
)
