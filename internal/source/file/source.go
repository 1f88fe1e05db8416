// Package file implements a capture source replaying frames from a pcap file.
package file

import (
	"context"
	"fmt"
	"io"

	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcap"

	"github.com/airtrace/airtrace/internal/core"
	"github.com/airtrace/airtrace/internal/source"
)

type Source struct {
	path   string
	handle *pcap.Handle
}

func NewSource(path string) (*Source, error) {
	if path == "" {
		return nil, fmt.Errorf("file: path is required: %w", core.ErrConfigInvalid)
	}
	return &Source{path: path}, nil
}

var _ source.Source = (*Source)(nil)

func (s *Source) Start(ctx context.Context) error {
	handle, err := pcap.OpenOffline(s.path)
	if err != nil {
		return fmt.Errorf("file: failed to open pcap file %s: %w", s.path, err)
	}
	s.handle = handle
	return nil
}

// ReadFrame returns the next frame from the file, or io.EOF once the
// file is exhausted.
func (s *Source) ReadFrame() (core.RawFrame, error) {
	if s.handle == nil {
		return core.RawFrame{}, core.ErrSourceNotStarted
	}

	data, ci, err := s.handle.ReadPacketData()
	if err != nil {
		if err == io.EOF {
			return core.RawFrame{}, io.EOF
		}
		return core.RawFrame{}, fmt.Errorf("file: failed to read frame: %w", err)
	}

	return core.RawFrame{
		Data:       data,
		Timestamp:  ci.Timestamp,
		CaptureLen: uint32(ci.CaptureLength),
		OrigLen:    uint32(ci.Length),
	}, nil
}

func (s *Source) LinkType() layers.LinkType {
	if s.handle == nil {
		return layers.LinkTypeIEEE80211Radio // monitor-mode captures default to radiotap
	}
	return s.handle.LinkType()
}

func (s *Source) Stop() error {
	if s.handle != nil {
		s.handle.Close()
		s.handle = nil
	}
	return nil
}
