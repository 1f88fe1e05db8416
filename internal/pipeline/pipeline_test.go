package pipeline

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/gopacket/layers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airtrace/airtrace/internal/core"
	"github.com/airtrace/airtrace/internal/dot11"
)

// fakeSource replays a fixed set of plain 802.11 frames.
type fakeSource struct {
	frames [][]byte
	next   int
}

func (f *fakeSource) Start(ctx context.Context) error { return nil }

func (f *fakeSource) ReadFrame() (core.RawFrame, error) {
	if f.next >= len(f.frames) {
		return core.RawFrame{}, io.EOF
	}
	data := f.frames[f.next]
	f.next++
	return core.RawFrame{Data: data, Timestamp: time.Now()}, nil
}

func (f *fakeSource) LinkType() layers.LinkType { return layers.LinkTypeIEEE802_11 }
func (f *fakeSource) Stop() error               { return nil }

// captureSink records every header it receives.
type captureSink struct {
	headers []*dot11.Header
}

func (c *captureSink) Write(h *dot11.Header, _ core.RawFrame) error {
	c.headers = append(c.headers, h)
	return nil
}

func (c *captureSink) Close() error { return nil }

func beaconFrame() []byte {
	frame := []byte{0x80, 0x00, 0x00, 0x00}
	for i := 0; i < 3; i++ {
		frame = append(frame, 0x00, 0x11, 0x22, 0x33, 0x44, byte(0x50+i))
	}
	// seq ctl, then addr4
	frame = append(frame, 0x10, 0x00)
	frame = append(frame, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00)
	return frame
}

func dataFrame() []byte {
	frame := beaconFrame()
	frame[0] = 0x08
	return frame
}

func TestRunDecodesAndStopsOnEOF(t *testing.T) {
	src := &fakeSource{frames: [][]byte{beaconFrame(), beaconFrame()}}
	snk := &captureSink{}

	p := New(src, snk, nil)
	require.NoError(t, p.Run(context.Background()))

	assert.Len(t, snk.headers, 2)
	assert.Equal(t, dot11.SubtypeBeacon, snk.headers[0].FrameControl.Subtype)

	stats := p.Stats()
	assert.Equal(t, uint64(2), stats.Frames)
	assert.Equal(t, uint64(2), stats.Decoded)
}

// One bad frame must not take down the loop.
func TestRunSkipsMalformedFrames(t *testing.T) {
	truncated := []byte{0x80, 0x00, 0x00}
	badVersion := append([]byte{0x81}, beaconFrame()[1:]...)
	src := &fakeSource{frames: [][]byte{
		truncated,
		beaconFrame(),
		badVersion,
		beaconFrame(),
	}}
	snk := &captureSink{}

	p := New(src, snk, nil)
	require.NoError(t, p.Run(context.Background()))

	assert.Len(t, snk.headers, 2)

	stats := p.Stats()
	assert.Equal(t, uint64(4), stats.Frames)
	assert.Equal(t, uint64(2), stats.Decoded)
	assert.Equal(t, uint64(1), stats.Truncated)
	assert.Equal(t, uint64(1), stats.UnsupportedVersion)
}

func TestRunFrameTypeFilter(t *testing.T) {
	src := &fakeSource{frames: [][]byte{beaconFrame(), dataFrame(), beaconFrame()}}
	snk := &captureSink{}

	p := New(src, snk, []dot11.FrameType{dot11.FrameTypeManagement})
	require.NoError(t, p.Run(context.Background()))

	assert.Len(t, snk.headers, 2)
	for _, h := range snk.headers {
		assert.Equal(t, dot11.FrameTypeManagement, h.FrameControl.Type)
	}
	assert.Equal(t, uint64(1), p.Stats().Filtered)
}

func TestRunHonorsContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &fakeSource{frames: [][]byte{beaconFrame()}}
	p := New(src, &captureSink{}, nil)

	err := p.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
