// Package core defines core types.
package core

// Labels represents key-value metadata attached to a decoded frame by sinks.
type Labels map[string]string

// Label naming constants following {protocol}.{field} convention.
const (
	LabelDot11Type    = "dot11.type"    // Frame type name (mgmt/ctrl/data/unknown)
	LabelDot11Subtype = "dot11.subtype" // Frame subtype name
	LabelDot11Dst     = "dot11.dst"     // Destination MAC (colon-hex)
	LabelDot11Src     = "dot11.src"     // Source MAC (colon-hex)
	LabelDot11BSSID   = "dot11.bssid"   // BSSID, empty for WDS frames
	LabelDot11Retry   = "dot11.retry"   // Retry bit ("true"/"false")
	LabelDot11WEP     = "dot11.wep"     // Protected-frame bit ("true"/"false")
	LabelDot11SSID    = "dot11.ssid"    // SSID from management body, when present
	LabelDot11Channel = "dot11.channel" // DS parameter set channel, when present
)
