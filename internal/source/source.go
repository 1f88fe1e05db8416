// Package source defines the capture source contract.
package source

import (
	"context"

	"github.com/google/gopacket/layers"

	"github.com/airtrace/airtrace/internal/core"
)

// Source delivers raw link-layer frames from a capture file or a live
// interface. Implementations own their handle; Stop releases it.
type Source interface {
	Start(ctx context.Context) error
	ReadFrame() (core.RawFrame, error)
	LinkType() layers.LinkType
	Stop() error
}
