package application

import (
	"fmt"
	"time"

	auditapp "github.com/khanhnv2901/industrilock/internal/application/audit"
	checkapp "github.com/khanhnv2901/industrilock/internal/application/check"
	"github.com/khanhnv2901/industrilock/internal/domain/audit"
	"github.com/khanhnv2901/industrilock/internal/infrastructure/persistence/json"
	"go.uber.org/zap"
)

// Container holds all application services and repositories
// This is a simple dependency injection container
type Container struct {
	// Repositories
	AuditRepo audit.Repository

	// Services
	Reporter     *auditapp.Reporter
	Orchestrator *checkapp.Orchestrator
}

// NewContainer wires a run. createdAt fixes the audit file name.
func NewContainer(cfg checkapp.Config, resultsDir string, createdAt time.Time, logger *zap.SugaredLogger) (*Container, error) {
	auditRepo, err := json.NewAuditRepository(resultsDir, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create audit repository: %w", err)
	}

	reporter := auditapp.NewReporter(auditRepo, logger)

	orchestrator, err := checkapp.NewOrchestrator(cfg, reporter, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create orchestrator: %w", err)
	}

	return &Container{
		AuditRepo:    auditRepo,
		Reporter:     reporter,
		Orchestrator: orchestrator,
	}, nil
}
