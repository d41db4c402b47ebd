package check

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	auditapp "github.com/khanhnv2901/industrilock/internal/application/audit"
	"github.com/khanhnv2901/industrilock/internal/domain/audit"
	"github.com/khanhnv2901/industrilock/internal/domain/finding"
	jsonrepo "github.com/khanhnv2901/industrilock/internal/infrastructure/persistence/json"
	"github.com/khanhnv2901/industrilock/internal/infrastructure/probe"
	sharedErrors "github.com/khanhnv2901/industrilock/internal/shared/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type keypadPort struct {
	mu      sync.Mutex
	grant   string
	pending bytes.Buffer
}

func (k *keypadPort) Write(p []byte) (int, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if strings.TrimSpace(string(p)) == k.grant {
		k.pending.WriteString("ACCESS GRANTED\n")
	} else {
		k.pending.WriteString("ACCESS DENIED\n")
	}
	return len(p), nil
}

func (k *keypadPort) Read(p []byte) (int, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.pending.Len() == 0 {
		return 0, nil
	}
	return k.pending.Read(p)
}

func (k *keypadPort) Close() error { return nil }

func newReporter(t *testing.T, dir string) (*auditapp.Reporter, *jsonrepo.AuditRepository) {
	t.Helper()
	repo, err := jsonrepo.NewAuditRepository(dir, time.Now())
	if err != nil {
		t.Fatalf("NewAuditRepository: %v", err)
	}
	return auditapp.NewReporter(repo, nil), repo
}

func newControllerServer(t *testing.T, scadaStatus int, grantPIN string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/scada":
			w.WriteHeader(scadaStatus)
		case "/api":
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body["pin"] == grantPIN {
				_, _ = w.Write([]byte(`{"status":"success"}`))
				return
			}
			_, _ = w.Write([]byte(`{"status":"invalid pin"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestNewOrchestratorRequiresTarget(t *testing.T) {
	reporter, _ := newReporter(t, t.TempDir())
	if _, err := NewOrchestrator(Config{}, reporter, nil); !errors.Is(err, sharedErrors.ErrEmptyTarget) {
		t.Fatalf("expected ErrEmptyTarget, got %v", err)
	}
	if _, err := NewOrchestrator(Config{Target: audit.Target{Host: "door"}}, nil, nil); err == nil {
		t.Fatal("expected error without reporter")
	}
}

func TestOrchestratorProbeSelection(t *testing.T) {
	reporter, _ := newReporter(t, t.TempDir())

	tests := []struct {
		name   string
		target audit.Target
		want   []string
	}{
		{"scada only", audit.Target{Host: "door"}, []string{"scada"}},
		{"serial", audit.Target{Host: "door", SerialPort: "/dev/ttyUSB0"}, []string{"serial", "scada"}},
		{"api", audit.Target{Host: "door", APIEndpoint: "http://door/api"}, []string{"api", "scada"}},
		{"all", audit.Target{Host: "door", SerialPort: "COM3", APIEndpoint: "http://door/api"}, []string{"serial", "api", "scada"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := NewOrchestrator(Config{Target: tt.target}, reporter, nil)
			if err != nil {
				t.Fatalf("NewOrchestrator: %v", err)
			}
			got := o.Probes()
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("Probes() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOrchestratorScadaOnlyRun(t *testing.T) {
	server := newControllerServer(t, http.StatusOK, "")
	defer server.Close()

	dir := t.TempDir()
	reporter, repo := newReporter(t, dir)
	o, err := NewOrchestrator(Config{Target: audit.Target{Host: strings.TrimPrefix(server.URL, "http://")}}, reporter, nil)
	if err != nil {
		t.Fatalf("NewOrchestrator: %v", err)
	}
	if o.State() != StateIdle {
		t.Fatalf("expected idle state, got %s", o.State())
	}

	summary, err := o.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if o.State() != StateReported {
		t.Fatalf("expected reported state, got %s", o.State())
	}
	if summary.ReportErr != nil {
		t.Fatalf("unexpected report error: %v", summary.ReportErr)
	}

	record, err := repo.Load(context.Background(), summary.ReportPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if record.SerialPort != nil || record.APIEndpoint != nil {
		t.Errorf("expected null serial_port and api_endpoint")
	}
	if len(record.Results) != 1 || record.Results[0] != "SCADA integration vulnerable: Accepts invalid auth" {
		t.Errorf("unexpected results %v", record.Results)
	}
}

func TestOrchestratorRunsAllProbes(t *testing.T) {
	server := newControllerServer(t, http.StatusForbidden, "0042")
	defer server.Close()

	host := strings.TrimPrefix(server.URL, "http://")
	reporter, repo := newReporter(t, t.TempDir())
	cfg := Config{
		Target: audit.Target{
			Host:        host,
			SerialPort:  "/dev/ttyFAKE",
			APIEndpoint: server.URL + "/api",
		},
		OpenPort: func(string, int, time.Duration) (io.ReadWriteCloser, error) {
			return &keypadPort{grant: "0413"}, nil
		},
	}

	o, err := NewOrchestrator(cfg, reporter, nil)
	if err != nil {
		t.Fatalf("NewOrchestrator: %v", err)
	}

	summary, err := o.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	record, err := repo.Load(context.Background(), summary.ReportPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	got := append([]string(nil), record.Results...)
	sort.Strings(got)
	want := []string{
		"API PIN cracked: 0042",
		"SCADA integration secure: Rejects invalid auth",
		"Serial PIN cracked: 0413",
	}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("results = %v, want %v", got, want)
	}
	if record.SerialPort == nil || *record.SerialPort != "/dev/ttyFAKE" {
		t.Errorf("unexpected serial_port %v", record.SerialPort)
	}
	if record.APIEndpoint == nil || *record.APIEndpoint != server.URL+"/api" {
		t.Errorf("unexpected api_endpoint %v", record.APIEndpoint)
	}
}

func TestOrchestratorFailedProbesStillReport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	host := strings.TrimPrefix(server.URL, "http://")
	server.Close()

	reporter, repo := newReporter(t, t.TempDir())
	cfg := Config{
		Target: audit.Target{Host: host, SerialPort: "/dev/ttyMISSING", APIEndpoint: "http://" + host + "/api"},
		OpenPort: func(string, int, time.Duration) (io.ReadWriteCloser, error) {
			return nil, errors.New("no such device")
		},
		HTTPTimeout: time.Second,
	}
	o, err := NewOrchestrator(cfg, reporter, nil)
	if err != nil {
		t.Fatalf("NewOrchestrator: %v", err)
	}

	summary, err := o.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(summary.Findings) != 0 {
		t.Fatalf("expected no findings, got %v", summary.Findings)
	}

	record, err := repo.Load(context.Background(), summary.ReportPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(record.Results) != 0 {
		t.Fatalf("expected empty results, got %v", record.Results)
	}
}

func TestOrchestratorRunsOnce(t *testing.T) {
	server := newControllerServer(t, http.StatusUnauthorized, "")
	defer server.Close()

	reporter, _ := newReporter(t, t.TempDir())
	o, err := NewOrchestrator(Config{Target: audit.Target{Host: strings.TrimPrefix(server.URL, "http://")}}, reporter, nil)
	if err != nil {
		t.Fatalf("NewOrchestrator: %v", err)
	}

	if _, err := o.Run(context.Background()); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	if _, err := o.Run(context.Background()); !errors.Is(err, sharedErrors.ErrAlreadyRun) {
		t.Fatalf("expected ErrAlreadyRun, got %v", err)
	}
}

func TestOrchestratorReportFailureIsNotFatal(t *testing.T) {
	server := newControllerServer(t, http.StatusOK, "")
	defer server.Close()

	dir := filepath.Join(t.TempDir(), "results")
	reporter, _ := newReporter(t, dir)
	if err := os.RemoveAll(dir); err != nil {
		t.Fatalf("remove: %v", err)
	}

	o, err := NewOrchestrator(Config{Target: audit.Target{Host: strings.TrimPrefix(server.URL, "http://")}}, reporter, nil)
	if err != nil {
		t.Fatalf("NewOrchestrator: %v", err)
	}

	summary, err := o.Run(context.Background())
	if err != nil {
		t.Fatalf("Run should not fail on report error: %v", err)
	}
	if !errors.Is(summary.ReportErr, sharedErrors.ErrReportWrite) {
		t.Fatalf("expected ErrReportWrite in summary, got %v", summary.ReportErr)
	}
	if o.State() != StateReported {
		t.Fatalf("expected reported state, got %s", o.State())
	}
}

type panickingProbe struct{}

func (panickingProbe) Name() string { return "broken" }

func (panickingProbe) Run(context.Context, *finding.Sink) { panic("boom") }

func TestOrchestratorRecoversProbePanic(t *testing.T) {
	reporter, _ := newReporter(t, t.TempDir())
	o, err := NewOrchestrator(Config{Target: audit.Target{Host: "door"}}, reporter, nil)
	if err != nil {
		t.Fatalf("NewOrchestrator: %v", err)
	}
	o.probes = []probe.Probe{panickingProbe{}}

	summary, err := o.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.ReportErr != nil {
		t.Fatalf("unexpected report error: %v", summary.ReportErr)
	}
}

func TestStateString(t *testing.T) {
	tests := map[State]string{
		StateIdle:     "idle",
		StateRunning:  "running",
		StateReported: "reported",
		State(9):      "state(9)",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", int(s), got, want)
		}
	}
}

func TestOrchestratorWarnsOnceForSkippedProbes(t *testing.T) {
	server := newControllerServer(t, http.StatusUnauthorized, "")
	defer server.Close()

	core, logs := observer.New(zap.InfoLevel)
	reporter, _ := newReporter(t, t.TempDir())
	o, err := NewOrchestrator(Config{Target: audit.Target{Host: strings.TrimPrefix(server.URL, "http://")}}, reporter, zap.New(core).Sugar())
	if err != nil {
		t.Fatalf("NewOrchestrator: %v", err)
	}

	if _, err := o.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	for _, msg := range []string{"skipping serial brute-force", "skipping API brute-force"} {
		if n := logs.FilterMessageSnippet(msg).Len(); n != 1 {
			t.Errorf("expected one %q warning, got %d", msg, n)
		}
	}
	if n := logs.FilterLevelExact(zap.WarnLevel).Len(); n != 2 {
		t.Errorf("expected exactly two warnings, got %d: %v", n, logs.All())
	}
}
