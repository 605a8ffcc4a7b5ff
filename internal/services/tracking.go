package services

import (
	"context"
	"errors"
	"fmt"

	"stempel/internal/domain"
	"stempel/internal/logging"
	"stempel/internal/ports"
)

// TrackingService handles the work session lifecycle: clock-in, clock-out,
// pauses, and live documentation
type TrackingService struct {
	blobs    ports.BlobStore
	clock    ports.Clock
	identity ports.IdentityProvider
	sessions ports.SessionRepository
}

// NewTrackingService creates a new TrackingService
func NewTrackingService(
	sessions ports.SessionRepository,
	blobs ports.BlobStore,
	identity ports.IdentityProvider,
	clock ports.Clock,
) *TrackingService {
	return &TrackingService{
		blobs:    blobs,
		clock:    clock,
		identity: identity,
		sessions: sessions,
	}
}

// ClockIn starts a new work session for an employee. An employee can hold at
// most one open session; the repository re-checks this inside its transaction
// so two racing clock-ins cannot both succeed.
func (s *TrackingService) ClockIn(ctx context.Context, params ClockInParams) (*domain.WorkSession, error) {
	now := s.clock.Now()

	logging.Logger.Info("Clocking in",
		"employee", params.EmployeeID,
		"project", params.ProjectID,
		"location", params.Location)

	existing, err := s.sessions.FindOpenByEmployee(ctx, params.EmployeeID)
	if err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return nil, fmt.Errorf("failed to check for open session: %w", err)
	}
	if existing != nil {
		logging.Logger.Warn("Clock-in rejected, open session exists",
			"employee", params.EmployeeID,
			"session", existing.ID)
		return nil, domain.ErrAlreadyClockedIn
	}

	sess := &domain.WorkSession{
		EmployeeID:      params.EmployeeID,
		ProjectID:       params.ProjectID,
		ClockIn:         now,
		ClockInLocation: params.Location,
	}

	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, err
	}

	logging.Logger.Info("Clocked in", "session", sess.ID, "employee", params.EmployeeID)

	return sess, nil
}

// ClockOut ends a work session. A trailing open pause is force-closed at now,
// notes are appended, and attachments are stored as a final documentation
// entry. Individual upload failures are skipped and counted; a negative
// worked duration refuses the whole operation without persisting anything.
func (s *TrackingService) ClockOut(ctx context.Context, params ClockOutParams) (*ClockOutResult, error) {
	now := s.clock.Now()

	sess, err := s.sessions.GetByID(ctx, params.SessionID)
	if err != nil {
		return nil, err
	}

	initiator, err := s.identity.CurrentInitiator()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve initiator: %w", err)
	}

	var failed int
	if len(params.Attachments) > 0 {
		batch, err := s.blobs.UploadBatch(ctx, params.Attachments)
		if err != nil {
			return nil, fmt.Errorf("failed to upload attachments: %w", err)
		}
		failed = batch.Failed

		if len(batch.Stored) > 0 {
			entry := domain.DocumentationEntry{
				Timestamp: now,
				Images:    batch.Stored,
				AddedBy:   initiator,
			}
			if err := sess.AttachDocumentation(entry); err != nil {
				return nil, err
			}
		}
	}

	if err := sess.Close(params.Notes, params.Location, now); err != nil {
		logging.Logger.Warn("Clock-out refused",
			"session", sess.ID,
			"error", err)
		return nil, err
	}

	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}

	minutes, err := sess.WorkedMinutes(now)
	if err != nil {
		return nil, err
	}

	logging.Logger.Info("Clocked out",
		"session", sess.ID,
		"worked_minutes", minutes,
		"failed_uploads", failed)

	return &ClockOutResult{
		Session:       sess,
		WorkedMinutes: minutes,
		FailedUploads: failed,
	}, nil
}

// StartPause opens a pause on the employee's session
func (s *TrackingService) StartPause(ctx context.Context, sessionID string) (*domain.WorkSession, error) {
	now := s.clock.Now()

	sess, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	initiator, err := s.identity.CurrentInitiator()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve initiator: %w", err)
	}

	if err := sess.StartPause(initiator, now); err != nil {
		return nil, err
	}

	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}

	logging.Logger.Info("Pause started", "session", sess.ID, "initiator", initiator)

	return sess, nil
}

// EndPause closes the open pause on the employee's session
func (s *TrackingService) EndPause(ctx context.Context, sessionID string) (*domain.WorkSession, error) {
	now := s.clock.Now()

	sess, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	initiator, err := s.identity.CurrentInitiator()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve initiator: %w", err)
	}

	if err := sess.EndPause(initiator, now); err != nil {
		return nil, err
	}

	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}

	logging.Logger.Info("Pause ended",
		"session", sess.ID,
		"initiator", initiator,
		"pause_total", sess.PauseTotal)

	return sess, nil
}

// AddDocumentation attaches one documentation entry with optional images and
// documents to an open session. One failed upload never aborts the batch or
// the notes; failures are counted in the result.
func (s *TrackingService) AddDocumentation(ctx context.Context, params AddDocumentationParams) (*AddDocumentationResult, error) {
	now := s.clock.Now()

	sess, err := s.sessions.GetByID(ctx, params.SessionID)
	if err != nil {
		return nil, err
	}
	if sess.Closed() {
		return nil, domain.ErrSessionClosed
	}

	initiator, err := s.identity.CurrentInitiator()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve initiator: %w", err)
	}

	entry := domain.DocumentationEntry{
		Timestamp: now,
		Notes:     params.Notes,
		AddedBy:   initiator,
	}

	var failed int

	if len(params.Images) > 0 {
		batch, err := s.blobs.UploadBatch(ctx, params.Images)
		if err != nil {
			return nil, fmt.Errorf("failed to upload images: %w", err)
		}
		entry.Images = batch.Stored
		failed += batch.Failed
	}

	if len(params.Documents) > 0 {
		batch, err := s.blobs.UploadBatch(ctx, params.Documents)
		if err != nil {
			return nil, fmt.Errorf("failed to upload documents: %w", err)
		}
		entry.Documents = batch.Stored
		failed += batch.Failed
	}

	if err := sess.AttachDocumentation(entry); err != nil {
		return nil, err
	}

	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}

	logging.Logger.Info("Documentation added",
		"session", sess.ID,
		"images", len(entry.Images),
		"documents", len(entry.Documents),
		"failed_uploads", failed)

	return &AddDocumentationResult{
		Entry:         entry,
		FailedUploads: failed,
	}, nil
}
