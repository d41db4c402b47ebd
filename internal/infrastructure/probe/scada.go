package probe

import (
	"context"
	"net/http"
	"time"

	"github.com/khanhnv2901/industrilock/internal/domain/finding"
	consts "github.com/khanhnv2901/industrilock/internal/shared/constants"
	"go.uber.org/zap"
)

type scadaCommand struct {
	Command string `json:"command"`
	Auth    string `json:"auth"`
}

// ScadaAuthProbe sends one door command with a bogus key to the SCADA
// integration. Any 200 counts as accepted; the body is not inspected.
type ScadaAuthProbe struct {
	Target  string
	Timeout time.Duration
	Client  *http.Client
	Logger  *zap.SugaredLogger
}

// Name returns the probe identifier.
func (p *ScadaAuthProbe) Name() string {
	return "scada"
}

// URL returns the SCADA endpoint derived from the target.
func (p *ScadaAuthProbe) URL() string {
	return "http://" + p.Target + consts.ScadaPath
}

// Run appends exactly one finding when the request completes.
func (p *ScadaAuthProbe) Run(ctx context.Context, sink *finding.Sink) {
	log := loggerOrNop(p.Logger)

	client := p.Client
	if client == nil {
		client = newHTTPClient(p.Timeout)
	}

	log.Infof("Testing SCADA integration with %s", p.Target)

	status, _, err := postJSON(ctx, client, p.URL(), scadaCommand{Command: "open_door", Auth: "invalid_key"})
	if err != nil {
		log.Errorf("SCADA integration test failed: %v", err)
		return
	}

	if status == http.StatusOK {
		sink.Append(finding.ScadaVulnerable())
		log.Warn("SCADA integration accepts invalid auth")
		return
	}

	sink.Append(finding.ScadaSecure())
	log.Infof("SCADA integration rejects invalid auth (status %d)", status)
}
