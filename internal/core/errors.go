// Package core defines sentinel errors.
package core

import "errors"

// Sentinel errors. Decode sites wrap these with fmt.Errorf("...: %w", err)
// so callers can match with errors.Is.
var (
	// Frame decoding errors
	ErrTruncatedFrame     = errors.New("airtrace: truncated frame")
	ErrUnsupportedVersion = errors.New("airtrace: unsupported 802.11 protocol version")

	// Capture errors
	ErrUnsupportedLinkType = errors.New("airtrace: unsupported link type")
	ErrSourceNotStarted    = errors.New("airtrace: capture source not started")

	// Pipeline errors
	ErrPipelineStopped = errors.New("airtrace: pipeline stopped")

	// Configuration errors
	ErrConfigInvalid = errors.New("airtrace: invalid configuration")
)
