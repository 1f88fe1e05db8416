// Package core defines core data structures with zero external dependencies.
package core

import "time"

// RawFrame is one 802.11 MAC frame as delivered by a capture source,
// with the radiotap header (if any) already stripped.
type RawFrame struct {
	Data       []byte    // Raw frame bytes, zero-copy slice
	Timestamp  time.Time // Capture timestamp (kernel timestamp preferred)
	CaptureLen uint32    // Actual captured length
	OrigLen    uint32    // Original frame length on air
	Interface  string    // Capture interface name, empty for file replay
}
