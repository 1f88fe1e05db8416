package dot11

import "fmt"

// macLen is the length of an 802.11 hardware address.
const macLen = 6

// FormatMAC renders a 6-byte hardware address in the canonical lowercase
// colon-separated form, e.g. "00:11:22:33:44:55". Callers must supply
// exactly macLen bytes.
func FormatMAC(b []byte) string {
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x",
		b[0], b[1], b[2], b[3], b[4], b[5])
}
