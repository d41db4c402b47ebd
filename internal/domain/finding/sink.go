package finding

import "sync"

// Sink is an append-only, concurrency-safe collection of findings.
// The zero value is ready to use.
type Sink struct {
	mu       sync.Mutex
	findings []Finding
}

// NewSink returns an empty sink.
func NewSink() *Sink {
	return &Sink{}
}

// Append adds a finding. Safe for concurrent use.
func (s *Sink) Append(f Finding) {
	s.mu.Lock()
	s.findings = append(s.findings, f)
	s.mu.Unlock()
}

// Len returns the number of findings collected so far.
func (s *Sink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.findings)
}

// Snapshot returns a copy of the findings in append order.
func (s *Sink) Snapshot() []Finding {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Finding, len(s.findings))
	copy(out, s.findings)
	return out
}

// Strings renders the findings in append order.
func (s *Sink) Strings() []string {
	snapshot := s.Snapshot()
	out := make([]string, 0, len(snapshot))
	for _, f := range snapshot {
		out = append(out, f.String())
	}
	return out
}
