package audit

import (
	"time"

	"github.com/khanhnv2901/industrilock/internal/domain/finding"
	sharedErrors "github.com/khanhnv2901/industrilock/internal/shared/errors"
)

// Target describes what a run was pointed at.
type Target struct {
	Host        string
	SerialPort  string
	APIEndpoint string
}

// Record is the persisted summary of one run. It is built once at the end
// of a run and never modified afterwards.
type Record struct {
	Target      string    `json:"target"`
	Timestamp   time.Time `json:"timestamp"`
	Results     []string  `json:"results"`
	SerialPort  *string   `json:"serial_port"`
	APIEndpoint *string   `json:"api_endpoint"`
}

// NewRecord renders findings in order and maps empty optional settings to null.
func NewRecord(target Target, findings []finding.Finding, now time.Time) (*Record, error) {
	if target.Host == "" {
		return nil, sharedErrors.ErrEmptyTarget
	}

	results := make([]string, 0, len(findings))
	for _, f := range findings {
		results = append(results, f.String())
	}

	return &Record{
		Target:      target.Host,
		Timestamp:   now,
		Results:     results,
		SerialPort:  optional(target.SerialPort),
		APIEndpoint: optional(target.APIEndpoint),
	}, nil
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
