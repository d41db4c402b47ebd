package cmd

import (
	"fmt"
	"net/url"
	"strings"

	sharedErrors "github.com/khanhnv2901/industrilock/internal/shared/errors"
)

func validateTarget(target string) error {
	if strings.TrimSpace(target) == "" {
		return &InvalidTargetError{Target: target, Reason: sharedErrors.ErrEmptyTarget.Error()}
	}
	if strings.Contains(target, "://") {
		return &InvalidTargetError{Target: target, Reason: "expected an IP or hostname, not a URL"}
	}
	if strings.ContainsAny(target, "/ ") {
		return &InvalidTargetError{Target: target, Reason: "must not contain a path or spaces"}
	}
	return nil
}

func validateEndpoint(endpoint string) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return &InvalidEndpointError{Endpoint: endpoint, Err: fmt.Errorf("%w: %v", sharedErrors.ErrInvalidEndpoint, err)}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &InvalidEndpointError{Endpoint: endpoint, Err: fmt.Errorf("%w: scheme must be http or https", sharedErrors.ErrInvalidEndpoint)}
	}
	if u.Host == "" {
		return &InvalidEndpointError{Endpoint: endpoint, Err: fmt.Errorf("%w: missing host", sharedErrors.ErrInvalidEndpoint)}
	}
	return nil
}
