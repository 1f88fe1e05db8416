package dot11

import (
	"fmt"

	"github.com/airtrace/airtrace/internal/core"
)

// MAC header layout, offsets relative to frame start:
//
//	[0:2)   frame control
//	[2:4)   duration / ID
//	[4:10)  addr1
//	[10:16) addr2
//	[16:22) addr3
//	[22:24) sequence control
//	[24:30) addr4 (meaningful only when both DS flags are set)
//	[30:)   frame body
const (
	headerMinLen = 30

	// addressWindowLen covers addr1 through addr4 including the
	// interstitial sequence control field.
	addressWindowLen = 26

	seqCtlOffset = 18 // within the address window
)

// Header is the decode result for one 802.11 MAC frame. Duration and
// SeqCtl are kept as raw bytes; no field of a Header aliases the input
// buffer except Info payloads, which are owned copies where retained.
type Header struct {
	FrameControl FrameControl
	Duration     [2]byte
	Dst          string
	Src          string
	BSSID        string // empty for four-address (WDS) frames
	SeqCtl       [2]byte
	Info         BodyInformation
}

// DecodeHeader decodes a raw 802.11 MAC frame into a Header. Inputs
// shorter than the 30-byte MAC header fail with core.ErrTruncatedFrame;
// frame control failures propagate as-is. The frame body never fails the
// decode: unparsable management bodies come back as zero-valued fields
// and non-management bodies as Unhandled.
func DecodeHeader(data []byte) (*Header, error) {
	if len(data) < headerMinLen {
		return nil, fmt.Errorf("dot11: header needs %d bytes, have %d: %w",
			headerMinLen, len(data), core.ErrTruncatedFrame)
	}

	fc, err := DecodeFrameControl(data[0:2])
	if err != nil {
		return nil, err
	}

	dst, src, bssid, err := resolveAddresses(fc, data[4:4+addressWindowLen])
	if err != nil {
		return nil, err
	}

	h := &Header{
		FrameControl: fc,
		Dst:          dst,
		Src:          src,
		BSSID:        bssid,
	}
	copy(h.Duration[:], data[2:4])

	// The sequence control bytes sit inside the address window; they are
	// read once, here, rather than again from the input.
	copy(h.SeqCtl[:], data[4+seqCtlOffset:4+seqCtlOffset+2])

	h.Info = decodeBody(fc, data[headerMinLen:])

	return h, nil
}

// frameAddresses holds the four raw address slots of the MAC header.
type frameAddresses struct {
	addr1 [macLen]byte
	addr2 [macLen]byte
	addr3 [macLen]byte
	addr4 [macLen]byte
}

func splitAddresses(window []byte) (frameAddresses, error) {
	if len(window) < addressWindowLen {
		return frameAddresses{}, fmt.Errorf("dot11: address window needs %d bytes, have %d: %w",
			addressWindowLen, len(window), core.ErrTruncatedFrame)
	}

	var a frameAddresses
	copy(a.addr1[:], window[0:6])
	copy(a.addr2[:], window[6:12])
	copy(a.addr3[:], window[12:18])
	// window[18:20] is the sequence control field.
	copy(a.addr4[:], window[20:26])
	return a, nil
}

// resolveAddresses assigns destination, source and BSSID from the four
// address slots. Which slot plays which role depends solely on the
// ToDS/FromDS combination:
//
//	to_ds | from_ds | dst   | src   | bssid
//	  1   |    1    | addr3 | addr4 | (unset)
//	  1   |    0    | addr2 | addr3 | addr1
//	  0   |    1    | addr3 | addr1 | addr2
//	  0   |    0    | addr1 | addr2 | addr3
func resolveAddresses(fc FrameControl, window []byte) (dst, src, bssid string, err error) {
	a, err := splitAddresses(window)
	if err != nil {
		return "", "", "", err
	}

	switch {
	case fc.ToDS && fc.FromDS:
		// WDS four-address frame: no single BSSID slot exists.
		dst = FormatMAC(a.addr3[:])
		src = FormatMAC(a.addr4[:])
	case fc.ToDS:
		dst = FormatMAC(a.addr2[:])
		src = FormatMAC(a.addr3[:])
		bssid = FormatMAC(a.addr1[:])
	case fc.FromDS:
		dst = FormatMAC(a.addr3[:])
		src = FormatMAC(a.addr1[:])
		bssid = FormatMAC(a.addr2[:])
	default:
		dst = FormatMAC(a.addr1[:])
		src = FormatMAC(a.addr2[:])
		bssid = FormatMAC(a.addr3[:])
	}

	return dst, src, bssid, nil
}
