// Package pipeline runs the capture loop: read a frame from the source,
// strip radiotap, decode the MAC header, hand it to the sink.
package pipeline

import (
	"context"
	"errors"
	"io"
	"sync/atomic"

	"github.com/airtrace/airtrace/internal/core"
	"github.com/airtrace/airtrace/internal/dot11"
	"github.com/airtrace/airtrace/internal/sink"
	"github.com/airtrace/airtrace/internal/source"
	"github.com/airtrace/airtrace/pkg/log"
)

// Stats is a snapshot of pipeline counters.
type Stats struct {
	Frames             uint64 // frames read from the source
	Decoded            uint64 // frames decoded and delivered to the sink
	Filtered           uint64 // frames dropped by the frame-type filter
	Truncated          uint64 // frames skipped: shorter than a MAC header
	UnsupportedVersion uint64 // frames skipped: protocol version != 0
	LinkErrors         uint64 // frames skipped: radiotap/link-layer problems
}

type Pipeline struct {
	source source.Source
	sink   sink.Sink
	log    log.Logger

	// accept is nil when no frame-type filter is configured.
	accept map[dot11.FrameType]bool

	frames             atomic.Uint64
	decoded            atomic.Uint64
	filtered           atomic.Uint64
	truncated          atomic.Uint64
	unsupportedVersion atomic.Uint64
	linkErrors         atomic.Uint64
}

func New(src source.Source, snk sink.Sink, frameTypes []dot11.FrameType) *Pipeline {
	p := &Pipeline{
		source: src,
		sink:   snk,
		log:    log.GetLogger().WithField("component", "pipeline"),
	}
	if len(frameTypes) > 0 {
		p.accept = make(map[dot11.FrameType]bool, len(frameTypes))
		for _, ft := range frameTypes {
			p.accept[ft] = true
		}
	}
	return p
}

// Run pulls frames until the context is cancelled or the source is
// exhausted (io.EOF, file replay). A malformed frame never stops the
// loop: header decode failures are counted and the loop moves on to the
// next frame, which is the caller-skips policy the decoder is built for.
func (p *Pipeline) Run(ctx context.Context) error {
	linkType := p.source.LinkType()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		frame, err := p.source.ReadFrame()
		if err != nil {
			if errors.Is(err, io.EOF) {
				p.log.Infof("source exhausted after %d frames", p.frames.Load())
				return nil
			}
			return err
		}
		p.frames.Add(1)

		data, err := source.StripRadioTap(linkType, frame.Data)
		if err != nil {
			p.linkErrors.Add(1)
			p.debugSkip("link", err)
			continue
		}

		h, err := dot11.DecodeHeader(data)
		if err != nil {
			switch {
			case errors.Is(err, core.ErrTruncatedFrame):
				p.truncated.Add(1)
			case errors.Is(err, core.ErrUnsupportedVersion):
				p.unsupportedVersion.Add(1)
			default:
				p.linkErrors.Add(1)
			}
			p.debugSkip("decode", err)
			continue
		}

		if p.accept != nil && !p.accept[h.FrameControl.Type] {
			p.filtered.Add(1)
			continue
		}

		if err := p.sink.Write(h, frame); err != nil {
			return err
		}
		p.decoded.Add(1)
	}
}

func (p *Pipeline) debugSkip(stage string, err error) {
	if p.log.IsDebugEnabled() {
		p.log.WithError(err).Debugf("skipping frame at %s stage", stage)
	}
}

// Stats returns a consistent-enough snapshot of the counters.
func (p *Pipeline) Stats() Stats {
	return Stats{
		Frames:             p.frames.Load(),
		Decoded:            p.decoded.Load(),
		Filtered:           p.filtered.Load(),
		Truncated:          p.truncated.Load(),
		UnsupportedVersion: p.unsupportedVersion.Load(),
		LinkErrors:         p.linkErrors.Load(),
	}
}
