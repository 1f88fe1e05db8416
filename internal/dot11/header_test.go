package dot11

import (
	"errors"
	"reflect"
	"testing"

	"github.com/airtrace/airtrace/internal/core"
)

var (
	macA = []byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55}
	macB = []byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF}
	macC = []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xAB}
	macD = []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x00, 0x01}
)

// buildFrame assembles a minimal MAC header: frame control, duration,
// addr1-3, sequence control, addr4, then the body.
func buildFrame(b0, flags byte, addr1, addr2, addr3, addr4 []byte, body []byte) []byte {
	frame := []byte{b0, flags, 0x00, 0x00}
	frame = append(frame, addr1...)
	frame = append(frame, addr2...)
	frame = append(frame, addr3...)
	frame = append(frame, 0x10, 0x86) // sequence control
	frame = append(frame, addr4...)
	return append(frame, body...)
}

func TestResolveAddressesAllDSCombinations(t *testing.T) {
	tests := []struct {
		name            string
		toDS, fromDS    bool
		dst, src, bssid string
	}{
		{"wds", true, true, FormatMAC(macC), FormatMAC(macD), ""},
		{"to-ds", true, false, FormatMAC(macB), FormatMAC(macC), FormatMAC(macA)},
		{"from-ds", false, true, FormatMAC(macC), FormatMAC(macA), FormatMAC(macB)},
		{"ibss", false, false, FormatMAC(macA), FormatMAC(macB), FormatMAC(macC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var flags byte
			if tt.toDS {
				flags |= 1 << 0
			}
			if tt.fromDS {
				flags |= 1 << 1
			}
			frame := buildFrame(0x80, flags, macA, macB, macC, macD, nil)

			h, err := DecodeHeader(frame)
			if err != nil {
				t.Fatalf("DecodeHeader failed: %v", err)
			}
			if h.Dst != tt.dst {
				t.Errorf("dst = %q, want %q", h.Dst, tt.dst)
			}
			if h.Src != tt.src {
				t.Errorf("src = %q, want %q", h.Src, tt.src)
			}
			if h.BSSID != tt.bssid {
				t.Errorf("bssid = %q, want %q", h.BSSID, tt.bssid)
			}
		})
	}
}

func TestDecodeHeaderBeacon(t *testing.T) {
	body := []byte{
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, // timestamp
		0x64, 0x00, // beacon interval: 100 TU
		0x11, 0x04, // capability info
		0x00, 0x04, 'h', 'o', 'm', 'e', // SSID element
		0x03, 0x01, 0x06, // DS parameter set: channel 6
	}
	frame := buildFrame(0x80, 0x00, macA, macB, macC, macD, body)

	h, err := DecodeHeader(frame)
	if err != nil {
		t.Fatalf("DecodeHeader failed: %v", err)
	}

	if h.FrameControl.Type != FrameTypeManagement {
		t.Errorf("expected management type, got %v", h.FrameControl.Type)
	}
	if h.FrameControl.Subtype != SubtypeBeacon {
		t.Errorf("expected beacon subtype, got %v", h.FrameControl.Subtype)
	}
	if h.Dst != "00:11:22:33:44:55" || h.Src != "aa:bb:cc:dd:ee:ff" || h.BSSID != "01:23:45:67:89:ab" {
		t.Errorf("unexpected addresses: dst=%q src=%q bssid=%q", h.Dst, h.Src, h.BSSID)
	}
	if h.SeqCtl != [2]byte{0x10, 0x86} {
		t.Errorf("seq ctl = %v, want [10 86]", h.SeqCtl)
	}

	beacon, ok := h.Info.(Beacon)
	if !ok {
		t.Fatalf("expected Beacon body, got %T", h.Info)
	}
	if beacon.Timestamp != 0x0807060504030201 {
		t.Errorf("timestamp = %#x", beacon.Timestamp)
	}
	if beacon.Interval != 100 {
		t.Errorf("interval = %d, want 100", beacon.Interval)
	}
	if beacon.SSID != "home" {
		t.Errorf("ssid = %q, want \"home\"", beacon.SSID)
	}
	if beacon.Channel != 6 {
		t.Errorf("channel = %d, want 6", beacon.Channel)
	}
}

// A header-only beacon frame (exactly 30 bytes) must still decode; its
// body comes back zero-valued, not as an error.
func TestDecodeHeaderEmptyBody(t *testing.T) {
	frame := buildFrame(0x80, 0x00, macA, macB, macC, macD, nil)
	if len(frame) != headerMinLen {
		t.Fatalf("fixture is %d bytes, want %d", len(frame), headerMinLen)
	}

	h, err := DecodeHeader(frame)
	if err != nil {
		t.Fatalf("DecodeHeader failed: %v", err)
	}
	beacon, ok := h.Info.(Beacon)
	if !ok {
		t.Fatalf("expected Beacon body, got %T", h.Info)
	}
	if !reflect.DeepEqual(beacon, Beacon{}) {
		t.Errorf("expected zero-valued beacon, got %+v", beacon)
	}
}

func TestDecodeHeaderTooShort(t *testing.T) {
	frame := buildFrame(0x80, 0x00, macA, macB, macC, macD, nil)
	for length := 0; length < headerMinLen; length++ {
		_, err := DecodeHeader(frame[:length])
		if !errors.Is(err, core.ErrTruncatedFrame) {
			t.Errorf("length %d: expected ErrTruncatedFrame, got %v", length, err)
		}
	}
}

func TestDecodeHeaderBadVersion(t *testing.T) {
	frame := buildFrame(0x81, 0x00, macA, macB, macC, macD, nil)
	_, err := DecodeHeader(frame)
	if !errors.Is(err, core.ErrUnsupportedVersion) {
		t.Errorf("expected ErrUnsupportedVersion, got %v", err)
	}
}

// Data frames with subtype code 9 hit the gap in the data subtype table:
// the subtype decodes to unhandled and so does the body.
func TestDecodeHeaderDataSubtypeGap(t *testing.T) {
	frame := buildFrame(0x98, 0x00, macA, macB, macC, macD, []byte{0xDE, 0xAD})

	h, err := DecodeHeader(frame)
	if err != nil {
		t.Fatalf("DecodeHeader failed: %v", err)
	}
	if h.FrameControl.Type != FrameTypeData {
		t.Errorf("expected data type, got %v", h.FrameControl.Type)
	}
	if h.FrameControl.Subtype != SubtypeUnhandled {
		t.Errorf("expected unhandled subtype, got %v", h.FrameControl.Subtype)
	}
	if _, ok := h.Info.(Unhandled); !ok {
		t.Errorf("expected Unhandled body, got %T", h.Info)
	}
}

// Decoding is a pure function of the input bytes: the same buffer must
// produce structurally equal headers every time.
func TestDecodeHeaderIdempotent(t *testing.T) {
	body := []byte{
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
		0x64, 0x00,
		0x11, 0x04,
		0x00, 0x03, 'l', 'a', 'b',
	}
	frame := buildFrame(0x80, 0x08, macA, macB, macC, macD, body)

	first, err := DecodeHeader(frame)
	if err != nil {
		t.Fatalf("DecodeHeader failed: %v", err)
	}
	second, err := DecodeHeader(frame)
	if err != nil {
		t.Fatalf("DecodeHeader failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated decode differs:\n first: %+v\nsecond: %+v", first, second)
	}
}

func BenchmarkDecodeHeader(b *testing.B) {
	body := []byte{
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
		0x64, 0x00,
		0x11, 0x04,
		0x00, 0x04, 'h', 'o', 'm', 'e',
		0x03, 0x01, 0x06,
	}
	frame := buildFrame(0x80, 0x00, macA, macB, macC, macD, body)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := DecodeHeader(frame); err != nil {
			b.Fatal(err)
		}
	}
}
