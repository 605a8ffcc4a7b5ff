package cmd

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"stempel/internal/config"
	"stempel/internal/logging"
	"stempel/internal/paths"
)

// CLI represents the command-line interface structure
type CLI struct {
	Version     kong.VersionFlag `help:"Show version information"`
	Debug       bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile   string           `help:"Custom path for debug log file (disables automatic cleanup)"`
	MaxLogFiles int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"10"`
	Database    string           `help:"Path to the session database (defaults to $STEMPEL_HOME/sessions.db)"`
	BlobDir     string           `help:"Directory for uploaded documentation files (defaults to $STEMPEL_HOME/blobs)"`
	Employee    string           `help:"Employee ID acting on sessions" env:"STEMPEL_EMPLOYEE"`

	In       InCmd       `cmd:"in" help:"Clock in and start a work session"`
	Out      OutCmd      `cmd:"out" help:"Clock out and close the current work session"`
	Pause    PauseCmd    `cmd:"pause" help:"Start a pause on the current work session"`
	Resume   ResumeCmd   `cmd:"resume" help:"End the current pause"`
	Note     NoteCmd     `cmd:"note" help:"Attach live documentation to the current work session"`
	Report   ReportCmd   `cmd:"report" help:"Show a worked-time report for a day"`
	Recover  RecoverCmd  `cmd:"recover" help:"Locate a session from a free-form legacy record"`
	Settings SettingsCmd `cmd:"settings" help:"Manage settings"`

	// Internal fields (not flags)
	Container *Container       `kong:"-"`
	settings  *config.Settings `kong:"-"`
}

// SetSettings sets the settings on the CLI struct
func (c *CLI) SetSettings(settings *config.Settings) {
	c.settings = settings
}

// AfterApply initializes logging after CLI parsing and applies settings
func (c *CLI) AfterApply() error {
	// Apply settings with proper precedence: CLI flags > env vars > settings.json > defaults
	// Only apply if flag is at default value and env var is not set

	if c.settings != nil {
		if c.MaxLogFiles == 10 {
			if _, hasEnv := os.LookupEnv("STEMPEL_MAX_LOG_FILES"); !hasEnv {
				if c.settings.MaxLogFiles != nil {
					c.MaxLogFiles = *c.settings.MaxLogFiles
				}
			}
		}

		if !c.Debug {
			if _, hasEnv := os.LookupEnv("STEMPEL_DEBUG"); !hasEnv {
				if c.settings.Debug != nil && *c.settings.Debug {
					c.Debug = true
				}
			}
		}

		if c.Database == "" {
			c.Database = c.settings.DatabasePath
		}
		if c.BlobDir == "" {
			c.BlobDir = c.settings.BlobDir
		}
		if c.Employee == "" {
			c.Employee = c.settings.EmployeeID
		}
	}

	if c.Database == "" {
		c.Database = paths.GetDBPath()
	}
	if c.BlobDir == "" {
		c.BlobDir = paths.GetBlobPath()
	}

	// Initialize logging first and get the log file path
	logFilePath, err := logging.Initialize(c.Debug, c.DebugFile, c.MaxLogFiles)
	if err != nil {
		return err
	}

	// Set environment variables AFTER initialization so child processes inherit
	// debug settings and use the SAME log file
	if c.Debug || c.DebugFile != "" {
		os.Setenv("STEMPEL_DEBUG", "1")
		if logFilePath != "" {
			os.Setenv("STEMPEL_DEBUG_FILE", logFilePath)
		}
	}
	if c.MaxLogFiles != 10 {
		os.Setenv("STEMPEL_MAX_LOG_FILES", fmt.Sprintf("%d", c.MaxLogFiles))
	}

	// Create container AFTER logging is initialized so GORM's logger has a
	// working logging.Logger
	container, err := NewContainer(c.Database, c.BlobDir, c.identityConfig())
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	c.Container = container

	return nil
}

func (c *CLI) identityConfig() IdentityConfig {
	cfg := IdentityConfig{EmployeeID: c.Employee}
	if c.settings != nil {
		cfg.Token = c.settings.IdentityToken
		cfg.TokenSecret = c.settings.TokenSecret
	}
	return cfg
}

// Close closes all resources held by the CLI
func (c *CLI) Close() error {
	if c.Container != nil {
		return c.Container.Close()
	}
	return nil
}
