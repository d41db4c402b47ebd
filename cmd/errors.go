package cmd

import "fmt"

// InvalidTargetError indicates the positional target is not a bare host.
type InvalidTargetError struct {
	Target string
	Reason string
}

func (e *InvalidTargetError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid target %q: %s", e.Target, e.Reason)
	}
	return fmt.Sprintf("invalid target %q", e.Target)
}

// InvalidEndpointError signals that --api is not an absolute http(s) URL.
type InvalidEndpointError struct {
	Endpoint string
	Err      error
}

func (e *InvalidEndpointError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid API endpoint %q: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("invalid API endpoint %q", e.Endpoint)
}

func (e *InvalidEndpointError) Unwrap() error {
	return e.Err
}
