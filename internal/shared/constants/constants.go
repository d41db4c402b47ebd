package constants

import (
	"io/fs"
	"time"
)

const (
	// DefaultDirPerm is the default permission used when creating directories.
	DefaultDirPerm fs.FileMode = 0o755
	// DefaultFilePerm is the default permission used when creating files.
	DefaultFilePerm fs.FileMode = 0o644
)

const (
	// PINWidth is the number of digits in every candidate PIN.
	PINWidth = 4
	// PINSpaceSize is the number of candidates in the PIN space (0000..9999).
	PINSpaceSize = 10000
)

const (
	// DefaultBaudRate is the serial line speed used for door controllers.
	DefaultBaudRate = 9600
	// DefaultSerialReadTimeout bounds a single line read on the serial port.
	DefaultSerialReadTimeout = 1 * time.Second
	// DefaultAttemptDelay is the fixed pause between two PIN attempts.
	DefaultAttemptDelay = 100 * time.Millisecond
	// DefaultHTTPTimeout is the per-request timeout for the HTTP probes.
	DefaultHTTPTimeout = 5 * time.Second
	// ResponseBodyLimitBytes caps how much of an HTTP response body is inspected.
	ResponseBodyLimitBytes = 64 * 1024
)

const (
	// SerialSuccessMarker is matched case-sensitively against serial responses.
	SerialSuccessMarker = "ACCESS GRANTED"
	// APISuccessMarker is matched case-insensitively against API response bodies.
	APISuccessMarker = "success"
	// ScadaPath is appended to the target host for the SCADA probe.
	ScadaPath = "/scada"
)

const (
	// DefaultLogFile is the diagnostic log written next to the audit reports.
	DefaultLogFile = "industrilock.log"
	// AuditFilePrefix prefixes every persisted audit record.
	AuditFilePrefix = "industrilock_audit_"
	// AuditStampLayout formats the construction-time stamp in audit file names.
	AuditStampLayout = "20060102_150405"
)
