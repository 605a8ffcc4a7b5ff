package storage

import (
	"time"

	"stempel/internal/domain"
)

const (
	kindImage    = "image"
	kindDocument = "document"
)

// sessionModelToDomain converts a WorkSessionModel (GORM) plus its child rows
// to a domain.WorkSession
func sessionModelToDomain(
	m WorkSessionModel,
	pauses []PauseIntervalModel,
	entries []DocumentationEntryModel,
	attachments map[uint][]AttachmentModel,
) domain.WorkSession {
	sess := domain.WorkSession{
		ID:               m.ID,
		EmployeeID:       m.EmployeeID,
		ProjectID:        m.ProjectID,
		ClockIn:          m.ClockIn,
		ClockOut:         m.ClockOut,
		ClockInLocation:  m.ClockInLocation,
		ClockOutLocation: m.ClockOutLocation,
		PauseTotal:       time.Duration(m.PauseTotalSeconds) * time.Second,
		Notes:            m.Notes,
	}

	if m.CurrentPauseStart != nil {
		sess.CurrentPause = &domain.OpenPause{
			Start:     *m.CurrentPauseStart,
			StartedBy: m.CurrentPauseStartedBy,
		}
	}

	for _, p := range pauses {
		sess.Pauses = append(sess.Pauses, domain.PauseInterval{
			Start:     p.Start,
			End:       p.End,
			StartedBy: p.StartedBy,
			EndedBy:   p.EndedBy,
		})
	}

	for _, e := range entries {
		entry := domain.DocumentationEntry{
			Timestamp: e.Timestamp,
			Notes:     e.Notes,
			AddedBy:   e.AddedBy,
		}

		for _, a := range attachments[e.ID] {
			att := domain.Attachment{ID: a.ID, URL: a.URL, Comment: a.Comment}
			if a.Kind == kindDocument {
				entry.Documents = append(entry.Documents, att)
			} else {
				entry.Images = append(entry.Images, att)
			}
		}

		sess.Documentation = append(sess.Documentation, entry)
	}

	return sess
}

// domainToSessionModel converts a domain.WorkSession to its GORM row.
// Child rows are handled separately by the repository.
func domainToSessionModel(s *domain.WorkSession) WorkSessionModel {
	m := WorkSessionModel{
		ID:                s.ID,
		EmployeeID:        s.EmployeeID,
		ProjectID:         s.ProjectID,
		ClockIn:           s.ClockIn,
		ClockOut:          s.ClockOut,
		ClockInLocation:   s.ClockInLocation,
		ClockOutLocation:  s.ClockOutLocation,
		PauseTotalSeconds: int64(s.PauseTotal / time.Second),
		Notes:             s.Notes,
	}

	if s.CurrentPause != nil {
		start := s.CurrentPause.Start
		m.CurrentPauseStart = &start
		m.CurrentPauseStartedBy = s.CurrentPause.StartedBy
	}

	return m
}

// pauseToModel converts one closed interval to its GORM row
func pauseToModel(sessionID string, position int, p domain.PauseInterval) PauseIntervalModel {
	return PauseIntervalModel{
		SessionID: sessionID,
		Position:  position,
		Start:     p.Start,
		End:       p.End,
		StartedBy: p.StartedBy,
		EndedBy:   p.EndedBy,
	}
}

// entryToModel converts one documentation entry to its GORM row
func entryToModel(sessionID string, position int, e domain.DocumentationEntry) DocumentationEntryModel {
	return DocumentationEntryModel{
		SessionID: sessionID,
		Position:  position,
		Timestamp: e.Timestamp,
		Notes:     e.Notes,
		AddedBy:   e.AddedBy,
	}
}

// attachmentsToModels converts the attachments of one entry to GORM rows
func attachmentsToModels(entryID uint, e domain.DocumentationEntry) []AttachmentModel {
	models := make([]AttachmentModel, 0, len(e.Images)+len(e.Documents))

	for _, a := range e.Images {
		models = append(models, AttachmentModel{
			ID:      a.ID,
			EntryID: entryID,
			Kind:    kindImage,
			URL:     a.URL,
			Comment: a.Comment,
		})
	}
	for _, a := range e.Documents {
		models = append(models, AttachmentModel{
			ID:      a.ID,
			EntryID: entryID,
			Kind:    kindDocument,
			URL:     a.URL,
			Comment: a.Comment,
		})
	}

	return models
}
