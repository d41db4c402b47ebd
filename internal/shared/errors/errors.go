package errors

import "errors"

// Domain errors
var (
	// Configuration errors
	ErrEmptyTarget     = errors.New("target cannot be empty")
	ErrInvalidEndpoint = errors.New("invalid API endpoint")
	ErrInvalidPIN      = errors.New("PIN outside of the 4-digit space")

	// Probe errors
	ErrTransport = errors.New("transport failure")
	ErrPortOpen  = errors.New("serial port could not be opened")

	// Run errors
	ErrAlreadyRun  = errors.New("orchestrator already ran")
	ErrReportWrite = errors.New("audit record could not be written")

	// Repository errors
	ErrSerializationFailed = errors.New("serialization failed")
	ErrInvalidData         = errors.New("invalid data")
)
