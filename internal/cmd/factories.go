package cmd

import (
	"context"

	adapterblob "stempel/internal/adapters/blob"
	adapteridentity "stempel/internal/adapters/identity"
	adapterstorage "stempel/internal/adapters/storage"
	"stempel/internal/ports"
	"stempel/internal/services"
)

// IdentityConfig selects how the acting initiator is resolved. When a signed
// token and its secret are configured the token subject wins; otherwise the
// plain employee ID is used.
type IdentityConfig struct {
	EmployeeID  string
	Token       string
	TokenSecret string
}

// Container holds all dependencies for the application
type Container struct {
	// Services
	RecoveryService *services.RecoveryService
	ReportService   *services.ReportService
	TrackingService *services.TrackingService

	// Internal - for cleanup only
	sessionRepo ports.SessionRepository
}

// NewContainer creates a new Container with all dependencies wired
func NewContainer(dbPath, blobDir string, identityCfg IdentityConfig) (*Container, error) {
	sessionRepo, err := adapterstorage.NewSQLiteRepository(dbPath)
	if err != nil {
		return nil, err
	}

	blobStore, err := adapterblob.NewFilesystemStore(blobDir)
	if err != nil {
		return nil, err
	}

	var identity ports.IdentityProvider
	if identityCfg.Token != "" && identityCfg.TokenSecret != "" {
		identity, err = adapteridentity.NewTokenProvider(identityCfg.Token, []byte(identityCfg.TokenSecret))
		if err != nil {
			return nil, err
		}
	} else {
		identity = adapteridentity.Static{ID: identityCfg.EmployeeID}
	}

	clock := ports.SystemClock{}

	return &Container{
		RecoveryService: services.NewRecoveryService(sessionRepo, clock),
		ReportService:   services.NewReportService(sessionRepo, clock),
		TrackingService: services.NewTrackingService(sessionRepo, blobStore, identity, clock),
		sessionRepo:     sessionRepo,
	}, nil
}

// OpenSessionID returns the ID of the employee's open session
func (c *Container) OpenSessionID(ctx context.Context, employeeID string) (string, error) {
	sess, err := c.sessionRepo.FindOpenByEmployee(ctx, employeeID)
	if err != nil {
		return "", err
	}
	return sess.ID, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	if c.sessionRepo != nil {
		return c.sessionRepo.Close()
	}
	return nil
}
