// Package sink defines where decoded frames go.
package sink

import (
	"github.com/airtrace/airtrace/internal/core"
	"github.com/airtrace/airtrace/internal/dot11"
)

// Sink consumes decoded headers. Write must not retain the frame's Data
// slice past the call.
type Sink interface {
	Write(h *dot11.Header, frame core.RawFrame) error
	Close() error
}
