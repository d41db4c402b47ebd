package check

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	auditapp "github.com/khanhnv2901/industrilock/internal/application/audit"
	"github.com/khanhnv2901/industrilock/internal/domain/audit"
	"github.com/khanhnv2901/industrilock/internal/domain/finding"
	"github.com/khanhnv2901/industrilock/internal/infrastructure/probe"
	sharedErrors "github.com/khanhnv2901/industrilock/internal/shared/errors"
	"go.uber.org/zap"
)

// State is the lifecycle position of an Orchestrator.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateReported
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateReported:
		return "reported"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Config selects which probes run and how they are paced.
type Config struct {
	Target      audit.Target
	BaudRate    int
	ReadTimeout time.Duration
	Delay       time.Duration
	HTTPTimeout time.Duration

	// Optional transport overrides
	OpenPort   probe.PortOpener
	HTTPClient func() *http.Client
}

// Summary describes a finished run.
type Summary struct {
	Probes     []string
	Findings   []finding.Finding
	ReportPath string
	ReportErr  error
	Duration   time.Duration
}

// Orchestrator runs the enabled probes concurrently, waits for all of them,
// then reports exactly once.
type Orchestrator struct {
	target   audit.Target
	probes   []probe.Probe
	reporter *auditapp.Reporter
	logger   *zap.SugaredLogger

	mu    sync.Mutex
	state State
}

// NewOrchestrator creates a new orchestrator. Serial and API probes are
// enabled only when their setting is present; the SCADA probe always runs.
func NewOrchestrator(cfg Config, reporter *auditapp.Reporter, logger *zap.SugaredLogger) (*Orchestrator, error) {
	if cfg.Target.Host == "" {
		return nil, sharedErrors.ErrEmptyTarget
	}
	if reporter == nil {
		return nil, fmt.Errorf("reporter is required")
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	return &Orchestrator{
		target:   cfg.Target,
		probes:   buildProbes(cfg, logger),
		reporter: reporter,
		logger:   logger,
		state:    StateIdle,
	}, nil
}

func buildProbes(cfg Config, logger *zap.SugaredLogger) []probe.Probe {
	client := func() *http.Client {
		if cfg.HTTPClient != nil {
			return cfg.HTTPClient()
		}
		return nil
	}

	var probes []probe.Probe
	if cfg.Target.SerialPort != "" {
		probes = append(probes, &probe.SerialPinProbe{
			Port:        cfg.Target.SerialPort,
			BaudRate:    cfg.BaudRate,
			ReadTimeout: cfg.ReadTimeout,
			Delay:       cfg.Delay,
			Open:        cfg.OpenPort,
			Logger:      logger.With("probe", "serial"),
		})
	} else {
		logger.Warn("No serial port specified, skipping serial brute-force.")
	}

	if cfg.Target.APIEndpoint != "" {
		probes = append(probes, &probe.APIPinProbe{
			Endpoint: cfg.Target.APIEndpoint,
			Timeout:  cfg.HTTPTimeout,
			Delay:    cfg.Delay,
			Client:   client(),
			Logger:   logger.With("probe", "api"),
		})
	} else {
		logger.Warn("No API endpoint specified, skipping API brute-force.")
	}

	probes = append(probes, &probe.ScadaAuthProbe{
		Target:  cfg.Target.Host,
		Timeout: cfg.HTTPTimeout,
		Client:  client(),
		Logger:  logger.With("probe", "scada"),
	})

	return probes
}

// Probes returns the names of the scheduled probes in launch order.
func (o *Orchestrator) Probes() []string {
	names := make([]string, 0, len(o.probes))
	for _, p := range o.probes {
		names = append(names, p.Name())
	}
	return names
}

// State returns the current lifecycle state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Run launches every probe, joins them, then writes the audit record. A
// report failure is carried in the summary, not returned as an error.
func (o *Orchestrator) Run(ctx context.Context) (*Summary, error) {
	o.mu.Lock()
	if o.state != StateIdle {
		o.mu.Unlock()
		return nil, sharedErrors.ErrAlreadyRun
	}
	o.state = StateRunning
	o.mu.Unlock()

	start := time.Now()
	sink := finding.NewSink()

	var wg sync.WaitGroup
	for _, p := range o.probes {
		wg.Add(1)
		go func(p probe.Probe) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					o.logger.Errorf("Unexpected error in %s probe: %v", p.Name(), r)
				}
			}()
			p.Run(ctx, sink)
		}(p)
	}
	wg.Wait()

	findings := sink.Snapshot()
	path, err := o.reporter.Report(ctx, o.target, findings)

	o.mu.Lock()
	o.state = StateReported
	o.mu.Unlock()

	return &Summary{
		Probes:     o.Probes(),
		Findings:   findings,
		ReportPath: path,
		ReportErr:  err,
		Duration:   time.Since(start),
	}, nil
}
