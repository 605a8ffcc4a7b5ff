// Package blob stores uploaded files on the local filesystem and hands back
// normalized attachment references.
package blob

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"stempel/internal/domain"
	"stempel/internal/logging"
	"stempel/internal/ports"
)

// uploadConcurrency bounds parallel writes in a batch
const uploadConcurrency = 4

var errEmptyContent = errors.New("upload has no content")

// FilesystemStore implements ports.BlobStore on a local directory
type FilesystemStore struct {
	baseDir string
}

// Verify interface compliance at compile time
var _ ports.BlobStore = (*FilesystemStore)(nil)

// NewFilesystemStore creates the base directory if needed
func NewFilesystemStore(baseDir string) (*FilesystemStore, error) {
	if len(baseDir) > 0 && baseDir[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		baseDir = filepath.Join(homeDir, baseDir[1:])
	}

	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create blob directory: %w", err)
	}

	return &FilesystemStore{baseDir: baseDir}, nil
}

// Upload stores one file under a uuid name and returns its reference
func (s *FilesystemStore) Upload(ctx context.Context, upload ports.BlobUpload) (domain.Attachment, error) {
	if err := ctx.Err(); err != nil {
		return domain.Attachment{}, err
	}
	if len(upload.Content) == 0 {
		return domain.Attachment{}, errEmptyContent
	}

	id := uuid.New().String()

	name := id
	if ext := filepath.Ext(upload.Name); ext != "" {
		name += ext
	}

	path := filepath.Join(s.baseDir, name)
	if err := os.WriteFile(path, upload.Content, 0644); err != nil {
		return domain.Attachment{}, fmt.Errorf("failed to write blob: %w", err)
	}

	return domain.Attachment{
		ID:      id,
		URL:     "file://" + path,
		Comment: upload.Comment,
	}, nil
}

// UploadBatch stores every uploadable file concurrently. A failed upload is
// logged and counted; it never aborts the rest of the batch.
func (s *FilesystemStore) UploadBatch(ctx context.Context, uploads []ports.BlobUpload) (ports.BatchResult, error) {
	stored := make([]*domain.Attachment, len(uploads))

	var mu sync.Mutex
	failed := 0

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(uploadConcurrency)

	for i, upload := range uploads {
		i, upload := i, upload
		g.Go(func() error {
			att, err := s.Upload(ctx, upload)
			if err != nil {
				logging.Logger.Warn("blob upload failed, skipping file",
					"name", upload.Name,
					"error", err)

				mu.Lock()
				failed++
				mu.Unlock()
				return nil
			}

			stored[i] = &att
			return nil
		})
	}

	// workers never return an error; Wait only propagates ctx cancellation
	if err := g.Wait(); err != nil {
		return ports.BatchResult{}, err
	}

	result := ports.BatchResult{Failed: failed}
	for _, att := range stored {
		if att != nil {
			result.Stored = append(result.Stored, *att)
		}
	}

	return result, nil
}
