package finding

import "fmt"

// Kind identifies which probe produced a finding and what it means.
type Kind string

const (
	KindSerialCracked   Kind = "serial_cracked"
	KindAPICracked      Kind = "api_cracked"
	KindScadaVulnerable Kind = "scada_vulnerable"
	KindScadaSecure     Kind = "scada_secure"
)

// Severity ranks a finding for the console summary.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityInfo     Severity = "info"
)

// Finding is one discovered fact about the target's authentication posture.
// Its String form is what lands in the audit record.
type Finding struct {
	Kind     Kind
	PIN      string
	Severity Severity
}

// SerialCracked records a PIN accepted over the serial line.
func SerialCracked(pin string) Finding {
	return Finding{Kind: KindSerialCracked, PIN: pin, Severity: SeverityCritical}
}

// APICracked records a PIN accepted by the HTTP PIN endpoint.
func APICracked(pin string) Finding {
	return Finding{Kind: KindAPICracked, PIN: pin, Severity: SeverityCritical}
}

// ScadaVulnerable records that the SCADA endpoint accepted an invalid key.
func ScadaVulnerable() Finding {
	return Finding{Kind: KindScadaVulnerable, Severity: SeverityHigh}
}

// ScadaSecure records that the SCADA endpoint rejected an invalid key.
func ScadaSecure() Finding {
	return Finding{Kind: KindScadaSecure, Severity: SeverityInfo}
}

func (f Finding) String() string {
	switch f.Kind {
	case KindSerialCracked:
		return fmt.Sprintf("Serial PIN cracked: %s", f.PIN)
	case KindAPICracked:
		return fmt.Sprintf("API PIN cracked: %s", f.PIN)
	case KindScadaVulnerable:
		return "SCADA integration vulnerable: Accepts invalid auth"
	case KindScadaSecure:
		return "SCADA integration secure: Rejects invalid auth"
	}
	return string(f.Kind)
}

// IsVulnerable reports whether the finding describes a weakness.
func (f Finding) IsVulnerable() bool {
	return f.Kind != KindScadaSecure
}
