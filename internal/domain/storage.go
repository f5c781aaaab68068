package domain

import (
	"context"
	"fmt"
)

// ObjectStorage defines the interface for the external blob service holding
// building assets (SVG artwork). Keys are flat; the returned URL is public.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// StorageServiceError represents a blob service error with status code
type StorageServiceError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface
func (e *StorageServiceError) Error() string {
	return fmt.Sprintf("storage service error (%d): %s", e.StatusCode, e.Message)
}
