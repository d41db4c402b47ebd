// Package constants centralizes defaults shared across the CLI and probes.
//
// Baud rate, pacing, timeouts and success markers live here so cmd/ and
// internal/ reference one value without introducing import cycles.
package constants
