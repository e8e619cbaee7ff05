package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"jsonlens/internal/catalog"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrDocumentTooLarge = errors.New("document exceeds size limit")
)

// DocumentRepository defines the interface for document access
type DocumentRepository interface {
	Load(ctx context.Context, path string) ([]byte, error)
	Sample() []byte
}

type fsDocumentRepository struct {
	maxBytes int64
}

// NewDocumentRepository creates a filesystem-backed DocumentRepository.
// Documents larger than maxBytes are rejected; maxBytes <= 0 disables the
// limit.
func NewDocumentRepository(maxBytes int64) DocumentRepository {
	return &fsDocumentRepository{maxBytes: maxBytes}
}

// Load reads the document at path, enforcing the size limit before reading.
func (r *fsDocumentRepository) Load(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat document: %w", err)
	}
	if r.maxBytes > 0 && info.Size() > r.maxBytes {
		return nil, fmt.Errorf("%w: %s is %d bytes, limit is %d", ErrDocumentTooLarge, path, info.Size(), r.maxBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return data, nil
}

// Sample returns the embedded canonical document.
func (r *fsDocumentRepository) Sample() []byte {
	return catalog.Sample()
}
