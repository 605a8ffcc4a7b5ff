package services

import (
	"time"

	"stempel/internal/domain"
	"stempel/internal/ports"
)

// ClockInParams contains parameters for starting a work session
type ClockInParams struct {
	EmployeeID string
	ProjectID  string
	Location   string
}

// ClockOutParams contains parameters for ending a work session
type ClockOutParams struct {
	SessionID   string
	Notes       string
	Location    string
	Attachments []ports.BlobUpload
}

// ClockOutResult contains the result of ending a work session
type ClockOutResult struct {
	Session       *domain.WorkSession
	WorkedMinutes int
	FailedUploads int
}

// AddDocumentationParams contains parameters for attaching live documentation
type AddDocumentationParams struct {
	SessionID string
	Notes     string
	Images    []ports.BlobUpload
	Documents []ports.BlobUpload
}

// AddDocumentationResult contains the result of attaching documentation
type AddDocumentationResult struct {
	Entry         domain.DocumentationEntry
	FailedUploads int
}

// DayReportRow is one session of an employee's day
type DayReportRow struct {
	SessionID     string
	ProjectID     string
	ClockIn       time.Time
	ClockOut      *time.Time
	WorkedMinutes int
	PauseMinutes  int
	PauseCount    int
}

// DayReport aggregates an employee's sessions for one day
type DayReport struct {
	EmployeeID         string
	Day                time.Time
	Rows               []DayReportRow
	TotalWorkedMinutes int
	TotalPauseMinutes  int
}
