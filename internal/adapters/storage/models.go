package storage

import "time"

// WorkSessionModel is the GORM model for the work_sessions table
type WorkSessionModel struct {
	ID                    string     `gorm:"primaryKey"`
	EmployeeID            string     `gorm:"not null;index:idx_employee"`
	ProjectID             string     `gorm:"not null;index:idx_project"`
	ClockIn               time.Time  `gorm:"not null;index:idx_clock_in"`
	ClockOut              *time.Time `gorm:"index:idx_clock_out;default:null"`
	ClockInLocation       string     `gorm:"default:''"`
	ClockOutLocation      string     `gorm:"default:''"`
	PauseTotalSeconds     int64      `gorm:"not null;default:0"`
	CurrentPauseStart     *time.Time `gorm:"default:null"`
	CurrentPauseStartedBy string     `gorm:"default:''"`
	Notes                 string     `gorm:"default:''"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// TableName specifies the table name for GORM
func (WorkSessionModel) TableName() string { return "work_sessions" }

// PauseIntervalModel is the GORM model for closed pause intervals
type PauseIntervalModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	SessionID string    `gorm:"not null;index:idx_pause_session"`
	Position  int       `gorm:"not null"`
	Start     time.Time `gorm:"not null"`
	End       time.Time `gorm:"not null"`
	StartedBy string    `gorm:"not null;default:''"`
	EndedBy   string    `gorm:"not null;default:''"`
	CreatedAt time.Time
}

// TableName specifies the table name for GORM
func (PauseIntervalModel) TableName() string { return "pause_intervals" }

// DocumentationEntryModel is the GORM model for live documentation entries
type DocumentationEntryModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	SessionID string    `gorm:"not null;index:idx_doc_session"`
	Position  int       `gorm:"not null"`
	Timestamp time.Time `gorm:"not null"`
	Notes     string    `gorm:"default:''"`
	AddedBy   string    `gorm:"not null;default:''"`
	CreatedAt time.Time
}

// TableName specifies the table name for GORM
func (DocumentationEntryModel) TableName() string { return "documentation_entries" }

// AttachmentModel is the GORM model for blob references on a documentation entry
type AttachmentModel struct {
	ID        string `gorm:"primaryKey"`
	EntryID   uint   `gorm:"not null;index:idx_attachment_entry"`
	Kind      string `gorm:"not null;check:kind IN ('image','document')"`
	URL       string `gorm:"not null;default:''"`
	Comment   string `gorm:"default:''"`
	CreatedAt time.Time
}

// TableName specifies the table name for GORM
func (AttachmentModel) TableName() string { return "documentation_attachments" }
