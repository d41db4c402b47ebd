package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/khanhnv2901/industrilock/internal/domain/audit"
	"github.com/khanhnv2901/industrilock/internal/domain/finding"
	sharedErrors "github.com/khanhnv2901/industrilock/internal/shared/errors"
	"go.uber.org/zap"
)

// Reporter turns the findings of a finished run into a persisted audit record
type Reporter struct {
	repo   audit.Repository
	logger *zap.SugaredLogger
	now    func() time.Time
}

// NewReporter creates a new reporter
func NewReporter(repo audit.Repository, logger *zap.SugaredLogger) *Reporter {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Reporter{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// Report builds the record and saves it. Failures are logged and returned
// wrapped in ErrReportWrite; callers decide whether they matter.
func (r *Reporter) Report(ctx context.Context, target audit.Target, findings []finding.Finding) (string, error) {
	record, err := audit.NewRecord(target, findings, r.now())
	if err != nil {
		r.logger.Errorf("Audit log generation failed: %v", err)
		return "", fmt.Errorf("%w: %v", sharedErrors.ErrReportWrite, err)
	}

	path, err := r.repo.Save(ctx, record)
	if err != nil {
		r.logger.Errorf("Audit log generation failed: %v", err)
		return "", fmt.Errorf("%w: %v", sharedErrors.ErrReportWrite, err)
	}

	r.logger.Infof("Audit log generated: %s", path)
	return path, nil
}
