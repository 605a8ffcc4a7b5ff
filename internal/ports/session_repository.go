package ports

import (
	"context"
	"time"

	"stempel/internal/domain"
)

// SessionReader reads work session data
type SessionReader interface {
	GetByID(ctx context.Context, id string) (*domain.WorkSession, error)
	// FindOpenByEmployee returns the employee's open session, or
	// domain.ErrSessionNotFound when none exists
	FindOpenByEmployee(ctx context.Context, employeeID string) (*domain.WorkSession, error)
	// ListByEmployee returns sessions whose clock-in falls within [from, to)
	ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]domain.WorkSession, error)
}

// SessionIndex scans sessions across employees, used by legacy record
// recovery
type SessionIndex interface {
	// ListByClockInRange returns all sessions whose clock-in falls within
	// [from, to), regardless of employee
	ListByClockInRange(ctx context.Context, from, to time.Time) ([]domain.WorkSession, error)
}

// SessionWriter creates and updates work sessions
type SessionWriter interface {
	Create(ctx context.Context, session *domain.WorkSession) error
	// Save persists the mutable fields of an existing session within one
	// transaction: pause state, notes, documentation, and clock-out
	Save(ctx context.Context, session *domain.WorkSession) error
}

// SessionRepository is the composite interface
type SessionRepository interface {
	SessionReader
	SessionIndex
	SessionWriter
	Close() error
}
