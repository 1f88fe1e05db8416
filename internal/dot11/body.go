package dot11

import "encoding/binary"

// Management body fixed-field sizes.
const (
	beaconFixedLen    = 12 // timestamp(8) + interval(2) + capability(2)
	assocReqFixedLen  = 4  // capability(2) + listen interval(2)
	assocRespFixedLen = 6  // capability(2) + status(2) + AID(2)
)

// Information element IDs extracted from management bodies.
const (
	elementIDSSID    = 0
	elementIDRates   = 1
	elementIDDSParam = 3
)

// BodyInformation is the tagged union of decoded frame bodies. Exactly
// one variant is produced per frame; Unhandled is the explicit fallback
// for everything the dispatcher does not route.
type BodyInformation interface {
	bodyInformation()
}

// Beacon is the body of a management/beacon frame.
type Beacon struct {
	Timestamp      uint64
	Interval       uint16
	Capability     uint16
	SSID           string
	SupportedRates []byte
	Channel        uint8
}

// ProbeRequest is the body of a management/probe-req frame. It has no
// fixed fields, only information elements.
type ProbeRequest struct {
	SSID           string
	SupportedRates []byte
}

// ProbeResponse is the body of a management/probe-resp frame; its layout
// matches Beacon.
type ProbeResponse struct {
	Timestamp      uint64
	Interval       uint16
	Capability     uint16
	SSID           string
	SupportedRates []byte
	Channel        uint8
}

// AssociationRequest is the body of a management/assoc-req frame.
type AssociationRequest struct {
	Capability     uint16
	ListenInterval uint16
	SSID           string
	SupportedRates []byte
}

// AssociationResponse is the body of a management/assoc-resp frame.
type AssociationResponse struct {
	Capability     uint16
	StatusCode     uint16
	AssociationID  uint16
	SupportedRates []byte
}

// Unhandled marks frames whose body has no decoder: every non-management
// frame and the management subtypes not listed in decodeBody.
type Unhandled struct{}

func (Beacon) bodyInformation()              {}
func (ProbeRequest) bodyInformation()        {}
func (ProbeResponse) bodyInformation()       {}
func (AssociationRequest) bodyInformation()  {}
func (AssociationResponse) bodyInformation() {}
func (Unhandled) bodyInformation()           {}

// decodeBody routes the frame body to the decoder for its subtype. Body
// decoders are best-effort and never fail: short or malformed bodies
// yield zero-valued fields, not an error, so one broken body cannot sink
// the whole frame.
func decodeBody(fc FrameControl, body []byte) BodyInformation {
	if fc.Type != FrameTypeManagement {
		return Unhandled{}
	}

	switch fc.Subtype {
	case SubtypeBeacon:
		return decodeBeacon(body)
	case SubtypeProbeReq:
		return decodeProbeRequest(body)
	case SubtypeProbeResp:
		return decodeProbeResponse(body)
	case SubtypeAssoReq:
		return decodeAssociationRequest(body)
	case SubtypeAssoResp:
		return decodeAssociationResponse(body)
	default:
		return Unhandled{}
	}
}

func decodeBeacon(body []byte) Beacon {
	var b Beacon
	if len(body) < beaconFixedLen {
		return b
	}
	b.Timestamp = binary.LittleEndian.Uint64(body[0:8])
	b.Interval = binary.LittleEndian.Uint16(body[8:10])
	b.Capability = binary.LittleEndian.Uint16(body[10:12])

	walkElements(body[beaconFixedLen:], func(id uint8, info []byte) {
		switch id {
		case elementIDSSID:
			b.SSID = string(info)
		case elementIDRates:
			b.SupportedRates = append([]byte(nil), info...)
		case elementIDDSParam:
			if len(info) >= 1 {
				b.Channel = info[0]
			}
		}
	})
	return b
}

func decodeProbeRequest(body []byte) ProbeRequest {
	var p ProbeRequest
	walkElements(body, func(id uint8, info []byte) {
		switch id {
		case elementIDSSID:
			p.SSID = string(info)
		case elementIDRates:
			p.SupportedRates = append([]byte(nil), info...)
		}
	})
	return p
}

func decodeProbeResponse(body []byte) ProbeResponse {
	b := decodeBeacon(body)
	return ProbeResponse(b)
}

func decodeAssociationRequest(body []byte) AssociationRequest {
	var a AssociationRequest
	if len(body) < assocReqFixedLen {
		return a
	}
	a.Capability = binary.LittleEndian.Uint16(body[0:2])
	a.ListenInterval = binary.LittleEndian.Uint16(body[2:4])

	walkElements(body[assocReqFixedLen:], func(id uint8, info []byte) {
		switch id {
		case elementIDSSID:
			a.SSID = string(info)
		case elementIDRates:
			a.SupportedRates = append([]byte(nil), info...)
		}
	})
	return a
}

func decodeAssociationResponse(body []byte) AssociationResponse {
	var a AssociationResponse
	if len(body) < assocRespFixedLen {
		return a
	}
	a.Capability = binary.LittleEndian.Uint16(body[0:2])
	a.StatusCode = binary.LittleEndian.Uint16(body[2:4])
	a.AssociationID = binary.LittleEndian.Uint16(body[4:6])

	walkElements(body[assocRespFixedLen:], func(id uint8, info []byte) {
		if id == elementIDRates {
			a.SupportedRates = append([]byte(nil), info...)
		}
	})
	return a
}

// walkElements iterates the (id, length, value) information elements that
// trail the fixed fields of a management body. A truncated element ends
// the walk silently.
func walkElements(data []byte, fn func(id uint8, info []byte)) {
	for len(data) >= 2 {
		id := data[0]
		length := int(data[1])
		if len(data) < 2+length {
			return
		}
		fn(id, data[2:2+length])
		data = data[2+length:]
	}
}
