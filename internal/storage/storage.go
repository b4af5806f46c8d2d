package storage

import (
	"context"
	"time"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

// ExportArchive defines the interface for keeping copies of export files in
// object storage. Archiving is optional; when disabled the export is only
// streamed back to the caller.
type ExportArchive interface {
	// Put uploads an export file under the given object key.
	Put(ctx context.Context, objectKey string, contentType string, data []byte) error

	// GeneratePresignedDownloadURL creates a temporary URL that allows GET
	// requests for downloading an archived export directly from the provider.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// DeleteObject removes an archived export.
	DeleteObject(ctx context.Context, objectKey string) error
}
