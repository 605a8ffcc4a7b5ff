package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"stempel/internal/domain"
	"stempel/internal/logging"
	"stempel/internal/ports"
)

// SQLiteRepository implements ports.SessionRepository using GORM
type SQLiteRepository struct {
	db *gorm.DB
}

// Verify interface compliance at compile time
var _ ports.SessionRepository = (*SQLiteRepository)(nil)

// gormLogger wraps the stempel logger for GORM
type gormLogger struct {
	level logger.LogLevel
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &gormLogger{level: level}
}

func (l *gormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Info {
		logging.Logger.Info(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Warn {
		logging.Logger.Warn(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Error {
		logging.Logger.Error(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level < logger.Info {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logging.Logger.Error("gorm query error",
			"error", err,
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	} else if elapsed > 200*time.Millisecond {
		logging.Logger.Warn("slow query",
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	} else {
		logging.Logger.Debug("gorm query",
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	}
}

func newGormLogger() logger.Interface {
	if os.Getenv("STEMPEL_DEBUG") == "1" {
		return (&gormLogger{}).LogMode(logger.Info)
	}
	return (&gormLogger{}).LogMode(logger.Silent)
}

// NewSQLiteRepository creates a new SQLiteRepository
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	// Expand home directory if present
	if len(dbPath) > 0 && dbPath[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(homeDir, dbPath[1:])
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	// Open database with WAL mode
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		PrepareStmt: false,
		NowFunc:     func() time.Time { return time.Now().UTC() },
		Logger:      newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for concurrent access
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")
	db.Exec("PRAGMA synchronous=NORMAL")
	db.Exec("PRAGMA foreign_keys=ON")

	if err := db.AutoMigrate(
		&WorkSessionModel{},
		&PauseIntervalModel{},
		&DocumentationEntryModel{},
		&AttachmentModel{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Create implements SessionWriter.Create. The open-session precondition is
// re-checked inside the transaction so two racing clock-ins cannot both
// create a record.
func (r *SQLiteRepository) Create(ctx context.Context, session *domain.WorkSession) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}

	return withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var count int64
			if err := tx.Model(&WorkSessionModel{}).
				Where("employee_id = ? AND clock_out IS NULL", session.EmployeeID).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return domain.ErrAlreadyClockedIn
			}

			model := domainToSessionModel(session)
			if err := tx.Create(&model).Error; err != nil {
				return fmt.Errorf("failed to create work session: %w", err)
			}

			return nil
		})
	}, 3)
}

// GetByID implements SessionReader.GetByID
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*domain.WorkSession, error) {
	var result *domain.WorkSession

	err := withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var model WorkSessionModel
			if err := tx.Where("id = ?", id).First(&model).Error; err != nil {
				return err
			}

			sess, err := loadSession(tx, model)
			if err != nil {
				return err
			}

			result = sess
			return nil
		})
	}, 3)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("work session %s: %w", id, domain.ErrSessionNotFound)
		}
		return nil, err
	}

	return result, nil
}

// FindOpenByEmployee implements SessionReader.FindOpenByEmployee
func (r *SQLiteRepository) FindOpenByEmployee(ctx context.Context, employeeID string) (*domain.WorkSession, error) {
	var result *domain.WorkSession

	err := withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var model WorkSessionModel
			if err := tx.Where("employee_id = ? AND clock_out IS NULL", employeeID).
				Order("clock_in DESC").
				First(&model).Error; err != nil {
				return err
			}

			sess, err := loadSession(tx, model)
			if err != nil {
				return err
			}

			result = sess
			return nil
		})
	}, 3)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("no open session for employee %s: %w", employeeID, domain.ErrSessionNotFound)
		}
		return nil, err
	}

	return result, nil
}

// ListByEmployee implements SessionReader.ListByEmployee
func (r *SQLiteRepository) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]domain.WorkSession, error) {
	var sessions []domain.WorkSession

	err := withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var models []WorkSessionModel
			if err := tx.Where("employee_id = ? AND clock_in >= ? AND clock_in < ?", employeeID, from, to).
				Order("clock_in ASC").
				Find(&models).Error; err != nil {
				return err
			}

			sessions = make([]domain.WorkSession, 0, len(models))
			for _, model := range models {
				sess, err := loadSession(tx, model)
				if err != nil {
					return err
				}
				sessions = append(sessions, *sess)
			}

			return nil
		})
	}, 3)

	if err != nil {
		return nil, err
	}

	return sessions, nil
}

func (r *SQLiteRepository) ListByClockInRange(ctx context.Context, from, to time.Time) ([]domain.WorkSession, error) {
	var sessions []domain.WorkSession

	err := withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var models []WorkSessionModel
			if err := tx.Where("clock_in >= ? AND clock_in < ?", from, to).
				Order("clock_in ASC").
				Find(&models).Error; err != nil {
				return err
			}

			sessions = make([]domain.WorkSession, 0, len(models))
			for _, model := range models {
				sess, err := loadSession(tx, model)
				if err != nil {
					return err
				}
				sessions = append(sessions, *sess)
			}

			return nil
		})
	}, 3)

	if err != nil {
		return nil, err
	}

	return sessions, nil
}

// Save implements SessionWriter.Save. Scalar fields are overwritten; the
// append-only child sequences (pauses, documentation) are extended with
// whatever the session holds beyond the stored rows.
func (r *SQLiteRepository) Save(ctx context.Context, session *domain.WorkSession) error {
	return withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var existing WorkSessionModel
			if err := tx.Where("id = ?", session.ID).First(&existing).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("work session %s: %w", session.ID, domain.ErrSessionNotFound)
				}
				return err
			}

			model := domainToSessionModel(session)
			updates := map[string]any{
				"clock_out":                model.ClockOut,
				"clock_out_location":       model.ClockOutLocation,
				"pause_total_seconds":      model.PauseTotalSeconds,
				"current_pause_start":      model.CurrentPauseStart,
				"current_pause_started_by": model.CurrentPauseStartedBy,
				"notes":                    model.Notes,
			}
			if err := tx.Model(&WorkSessionModel{}).Where("id = ?", session.ID).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update work session: %w", err)
			}

			if err := appendPauses(tx, session); err != nil {
				return err
			}

			return appendDocumentation(tx, session)
		})
	}, 3)
}

// appendPauses inserts pause rows the store does not have yet
func appendPauses(tx *gorm.DB, session *domain.WorkSession) error {
	var stored int64
	if err := tx.Model(&PauseIntervalModel{}).
		Where("session_id = ?", session.ID).
		Count(&stored).Error; err != nil {
		return err
	}

	for i := int(stored); i < len(session.Pauses); i++ {
		model := pauseToModel(session.ID, i, session.Pauses[i])
		if err := tx.Create(&model).Error; err != nil {
			return fmt.Errorf("failed to append pause interval: %w", err)
		}
	}

	return nil
}

// appendDocumentation inserts documentation rows the store does not have yet,
// together with their attachments
func appendDocumentation(tx *gorm.DB, session *domain.WorkSession) error {
	var stored int64
	if err := tx.Model(&DocumentationEntryModel{}).
		Where("session_id = ?", session.ID).
		Count(&stored).Error; err != nil {
		return err
	}

	for i := int(stored); i < len(session.Documentation); i++ {
		entry := session.Documentation[i]
		model := entryToModel(session.ID, i, entry)
		if err := tx.Create(&model).Error; err != nil {
			return fmt.Errorf("failed to append documentation entry: %w", err)
		}

		for _, att := range attachmentsToModels(model.ID, entry) {
			if err := tx.Create(&att).Error; err != nil {
				return fmt.Errorf("failed to append attachment: %w", err)
			}
		}
	}

	return nil
}

// loadSession assembles a domain session from its row and child rows
func loadSession(tx *gorm.DB, model WorkSessionModel) (*domain.WorkSession, error) {
	var pauses []PauseIntervalModel
	if err := tx.Where("session_id = ?", model.ID).
		Order("position ASC").
		Find(&pauses).Error; err != nil {
		return nil, err
	}

	var entries []DocumentationEntryModel
	if err := tx.Where("session_id = ?", model.ID).
		Order("position ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}

	attachments := make(map[uint][]AttachmentModel)
	if len(entries) > 0 {
		entryIDs := make([]uint, len(entries))
		for i, e := range entries {
			entryIDs[i] = e.ID
		}

		var rows []AttachmentModel
		if err := tx.Where("entry_id IN ?", entryIDs).
			Order("created_at ASC").
			Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, row := range rows {
			attachments[row.EntryID] = append(attachments[row.EntryID], row)
		}
	}

	sess := sessionModelToDomain(model, pauses, entries, attachments)
	return &sess, nil
}

// withRetry retries operations on SQLITE_BUSY with exponential backoff
func withRetry(fn func() error, maxRetries int) error {
	for i := 0; i < maxRetries; i++ {
		err := fn()
		if err == nil {
			return nil
		}

		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && (sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked) {
			time.Sleep(time.Millisecond * time.Duration(50*(i+1)))
			continue
		}

		return err
	}
	return fmt.Errorf("operation failed after %d retries", maxRetries)
}
