package source

import (
	"encoding/binary"
	"fmt"

	"github.com/google/gopacket/layers"

	"github.com/airtrace/airtrace/internal/core"
)

// radiotapMinLen is the fixed radiotap preamble: version(1) pad(1)
// it_len(2) it_present(4).
const radiotapMinLen = 8

// StripRadioTap returns the 802.11 MAC frame within a captured link-layer
// frame. Plain 802.11 link types pass through untouched; radiotap frames
// are skipped past the little-endian it_len field. Radiotap field content
// is not parsed.
func StripRadioTap(lt layers.LinkType, data []byte) ([]byte, error) {
	switch lt {
	case layers.LinkTypeIEEE802_11:
		return data, nil
	case layers.LinkTypeIEEE80211Radio:
		if len(data) < radiotapMinLen {
			return nil, fmt.Errorf("source: radiotap preamble needs %d bytes, have %d: %w",
				radiotapMinLen, len(data), core.ErrTruncatedFrame)
		}
		headerLen := int(binary.LittleEndian.Uint16(data[2:4]))
		if headerLen < radiotapMinLen || headerLen > len(data) {
			return nil, fmt.Errorf("source: radiotap header length %d out of range: %w",
				headerLen, core.ErrTruncatedFrame)
		}
		return data[headerLen:], nil
	default:
		return nil, fmt.Errorf("source: link type %v: %w", lt, core.ErrUnsupportedLinkType)
	}
}
