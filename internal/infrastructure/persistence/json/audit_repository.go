package json

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/khanhnv2901/industrilock/internal/domain/audit"
	consts "github.com/khanhnv2901/industrilock/internal/shared/constants"
	sharedErrors "github.com/khanhnv2901/industrilock/internal/shared/errors"
	"github.com/khanhnv2901/industrilock/internal/shared/security"
)

// AuditRepository implements the audit.Repository interface using JSON files.
// The file name is fixed when the repository is created, so two runs in the
// same process never write to the same file unless they share a repository.
type AuditRepository struct {
	resultsDir string
	fileName   string
	mu         sync.Mutex
}

// NewAuditRepository creates a JSON audit repository whose file name embeds createdAt.
func NewAuditRepository(resultsDir string, createdAt time.Time) (*AuditRepository, error) {
	if resultsDir == "" {
		return nil, fmt.Errorf("results directory cannot be empty")
	}

	if err := os.MkdirAll(resultsDir, consts.DefaultDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create results directory: %w", err)
	}

	return &AuditRepository{
		resultsDir: resultsDir,
		fileName:   FileName(createdAt),
	}, nil
}

// FileName returns the audit file name for a construction time.
func FileName(createdAt time.Time) string {
	return consts.AuditFilePrefix + createdAt.Format(consts.AuditStampLayout) + ".json"
}

// Path returns the absolute location the record will be written to.
func (r *AuditRepository) Path() (string, error) {
	if err := security.CheckFileName(r.fileName); err != nil {
		return "", err
	}
	return security.ResolveWithin(r.resultsDir, r.fileName)
}

// Save persists the record as indented JSON.
func (r *AuditRepository) Save(ctx context.Context, record *audit.Record) (string, error) {
	if record == nil {
		return "", fmt.Errorf("%w: nil record", sharedErrors.ErrInvalidData)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	filePath, err := r.Path()
	if err != nil {
		return "", fmt.Errorf("invalid audit path: %w", err)
	}

	data, err := json.MarshalIndent(record, "", "    ")
	if err != nil {
		return "", fmt.Errorf("%w: %v", sharedErrors.ErrSerializationFailed, err)
	}

	if err := os.WriteFile(filePath, append(data, '\n'), consts.DefaultFilePerm); err != nil {
		return "", fmt.Errorf("failed to write audit file: %w", err)
	}

	return filePath, nil
}

// Load reads a record written by Save.
func (r *AuditRepository) Load(ctx context.Context, location string) (*audit.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Clean(location))
	if err != nil {
		return nil, fmt.Errorf("failed to read audit file: %w", err)
	}

	var record audit.Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("%w: %v", sharedErrors.ErrInvalidData, err)
	}
	if record.Results == nil {
		record.Results = []string{}
	}

	return &record, nil
}
