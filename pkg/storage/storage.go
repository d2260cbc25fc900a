// Package storage archives submitted documents on the local filesystem,
// grouped by the batch that carried them.
package storage

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

// FileInfo contains metadata about a stored document
type FileInfo struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	Path      string    `json:"path"` // Internal storage path
	CreatedAt time.Time `json:"created_at"`
}

// Storage defines the interface for document archive operations
type Storage interface {
	// Store archives a document under a batch and returns its metadata
	Store(ctx context.Context, batchID uuid.UUID, filename string, r io.Reader) (*FileInfo, error)

	// Open retrieves an archived document by its ID
	Open(ctx context.Context, batchID uuid.UUID, fileID uuid.UUID) (io.ReadCloser, *FileInfo, error)

	// List returns all documents archived under a batch
	List(ctx context.Context, batchID uuid.UUID) ([]*FileInfo, error)

	// Delete removes an archived document by its ID
	Delete(ctx context.Context, batchID uuid.UUID, fileID uuid.UUID) error
}
