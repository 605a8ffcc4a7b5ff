package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"

	"stempel/internal/domain"
	"stempel/internal/logging"
	"stempel/internal/ports"
)

// RecoveryService locates sessions from free-form legacy records, e.g. paper
// notes saying "Müller, last friday". The date is parsed fuzzily relative to
// the current time and the employee reference is matched as a
// case-insensitive substring of the stored employee ID. Anything ambiguous is
// refused rather than guessed.
type RecoveryService struct {
	clock    ports.Clock
	sessions ports.SessionIndex
}

// NewRecoveryService creates a new RecoveryService
func NewRecoveryService(sessions ports.SessionIndex, clock ports.Clock) *RecoveryService {
	return &RecoveryService{
		clock:    clock,
		sessions: sessions,
	}
}

// FindLegacySession resolves a fuzzy date expression and an employee
// reference to exactly one stored session
func (s *RecoveryService) FindLegacySession(ctx context.Context, employeeRef, dateExpr string) (*domain.WorkSession, error) {
	employeeRef = strings.TrimSpace(employeeRef)
	if employeeRef == "" {
		return nil, fmt.Errorf("employee reference is empty")
	}

	now := s.clock.Now()

	parsed, err := dateparser.Parse(&dateparser.Configuration{
		CurrentTime: now,
	}, dateExpr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse date %q: %w", dateExpr, err)
	}

	day := parsed.Time
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	to := from.Add(24 * time.Hour)

	logging.Logger.Info("Recovering legacy session",
		"employee_ref", employeeRef,
		"date_expr", dateExpr,
		"resolved_day", from.Format("2006-01-02"))

	sessions, err := s.sessions.ListByClockInRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to scan sessions: %w", err)
	}

	ref := strings.ToLower(employeeRef)

	var matches []domain.WorkSession
	for _, sess := range sessions {
		if strings.Contains(strings.ToLower(sess.EmployeeID), ref) {
			matches = append(matches, sess)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no session found for %q on %s: %w",
			employeeRef, from.Format("2006-01-02"), domain.ErrSessionNotFound)
	case 1:
		return &matches[0], nil
	default:
		ids := make([]string, 0, len(matches))
		for _, m := range matches {
			ids = append(ids, m.ID)
		}
		return nil, fmt.Errorf("ambiguous legacy record: %q on %s matches %d sessions (%s)",
			employeeRef, from.Format("2006-01-02"), len(matches), strings.Join(ids, ", "))
	}
}
