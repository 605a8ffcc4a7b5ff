package ports

import (
	"context"

	"stempel/internal/domain"
)

// BlobUpload is one file handed to the blob store
type BlobUpload struct {
	Name        string
	Content     []byte
	ContentType string
	Comment     string
}

// BatchResult reports a batch upload. Failed counts files that could not be
// stored; the batch itself never fails because of a single file.
type BatchResult struct {
	Stored []domain.Attachment
	Failed int
}

// BlobStore stores opaque file content and hands back a retrievable reference
type BlobStore interface {
	Upload(ctx context.Context, upload BlobUpload) (domain.Attachment, error)
	// UploadBatch stores every uploadable file and skips the rest,
	// reporting per-file failures in the result
	UploadBatch(ctx context.Context, uploads []BlobUpload) (BatchResult, error)
}
