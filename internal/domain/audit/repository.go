package audit

import "context"

// Repository defines the interface for audit record persistence
type Repository interface {
	// Save persists a record and returns where it was written
	Save(ctx context.Context, record *Record) (string, error)

	// Load reads a previously saved record back
	Load(ctx context.Context, location string) (*Record, error)
}
