// Package dot11 implements 802.11 MAC header decoding.
package dot11

import (
	"github.com/airtrace/airtrace/internal/core"
)

const frameControlLen = 2

// FrameType is the 2-bit frame type from the frame control field.
type FrameType uint8

const (
	FrameTypeManagement FrameType = iota
	FrameTypeControl
	FrameTypeData
	FrameTypeUnknown
)

// String provides a human readable string for FrameType.
func (t FrameType) String() string {
	switch t {
	case FrameTypeManagement:
		return "mgmt"
	case FrameTypeControl:
		return "ctrl"
	case FrameTypeData:
		return "data"
	default:
		return "unknown"
	}
}

// FrameSubtype is the decoded 4-bit frame subtype. The raw code is
// interpreted against one of two disjoint tables depending on the frame
// type, so a single enum covers both namespaces.
type FrameSubtype uint8

const (
	// Management / control subtypes
	SubtypeAssoReq FrameSubtype = iota
	SubtypeAssoResp
	SubtypeReassoReq
	SubtypeReassoResp
	SubtypeProbeReq
	SubtypeProbeResp
	SubtypeBeacon
	SubtypeAtim
	SubtypeDisasso
	SubtypeAuth
	SubtypeDeauth

	// Data subtypes
	SubtypeData
	SubtypeDataCfAck
	SubtypeDataCfPull
	SubtypeDataCfAckCfPull
	SubtypeNullData
	SubtypeCfAck
	SubtypeCfPull
	SubtypeCfAckCfPull
	SubtypeQoS
	SubtypeQoSCfPull
	SubtypeQoSCfAckCfPull
	SubtypeQoSNullData
	SubtypeReserved

	// SubtypeUnhandled is the catch-all for subtype codes that have no
	// entry in the table for their frame type.
	SubtypeUnhandled
)

// String provides a human readable string for FrameSubtype.
func (s FrameSubtype) String() string {
	switch s {
	case SubtypeAssoReq:
		return "assoc-req"
	case SubtypeAssoResp:
		return "assoc-resp"
	case SubtypeReassoReq:
		return "reassoc-req"
	case SubtypeReassoResp:
		return "reassoc-resp"
	case SubtypeProbeReq:
		return "probe-req"
	case SubtypeProbeResp:
		return "probe-resp"
	case SubtypeBeacon:
		return "beacon"
	case SubtypeAtim:
		return "atim"
	case SubtypeDisasso:
		return "disassoc"
	case SubtypeAuth:
		return "auth"
	case SubtypeDeauth:
		return "deauth"
	case SubtypeData:
		return "data"
	case SubtypeDataCfAck:
		return "data-cf-ack"
	case SubtypeDataCfPull:
		return "data-cf-poll"
	case SubtypeDataCfAckCfPull:
		return "data-cf-ack-poll"
	case SubtypeNullData:
		return "null"
	case SubtypeCfAck:
		return "cf-ack"
	case SubtypeCfPull:
		return "cf-poll"
	case SubtypeCfAckCfPull:
		return "cf-ack-poll"
	case SubtypeQoS:
		return "qos-data"
	case SubtypeQoSCfPull:
		return "qos-cf-poll"
	case SubtypeQoSCfAckCfPull:
		return "qos-cf-ack-poll"
	case SubtypeQoSNullData:
		return "qos-null"
	case SubtypeReserved:
		return "reserved"
	default:
		return "unhandled"
	}
}

// FrameControl is the decoded 2-byte frame control field at the start of
// every 802.11 MAC header. Immutable once decoded.
type FrameControl struct {
	Type    FrameType
	Subtype FrameSubtype

	// Flag bits from the second byte, in bit order.
	ToDS     bool
	FromDS   bool
	MoreFrag bool
	Retry    bool
	PwrMgmt  bool
	MoreData bool
	WEP      bool
	Order    bool
}

// DecodeFrameControl parses the frame control field. It fails with
// core.ErrTruncatedFrame on short input and core.ErrUnsupportedVersion
// when the protocol version bits are nonzero; only version 0 frames are
// decodable.
func DecodeFrameControl(data []byte) (FrameControl, error) {
	if len(data) < frameControlLen {
		return FrameControl{}, core.ErrTruncatedFrame
	}

	// Byte 0: version(1:0) type(3:2) subtype(7:4)
	if data[0]&0x03 != 0 {
		return FrameControl{}, core.ErrUnsupportedVersion
	}

	frameType := decodeFrameType(data[0])
	subtypeCode := (data[0] & 0xF0) >> 4

	var subtype FrameSubtype
	if frameType == FrameTypeData {
		subtype = decodeDataSubtype(subtypeCode)
	} else {
		subtype = decodeMgmtSubtype(subtypeCode)
	}

	// Byte 1: one independent flag per bit
	flags := data[1]
	fc := FrameControl{
		Type:     frameType,
		Subtype:  subtype,
		ToDS:     flags&(1<<0) != 0,
		FromDS:   flags&(1<<1) != 0,
		MoreFrag: flags&(1<<2) != 0,
		Retry:    flags&(1<<3) != 0,
		PwrMgmt:  flags&(1<<4) != 0,
		MoreData: flags&(1<<5) != 0,
		WEP:      flags&(1<<6) != 0,
		Order:    flags&(1<<7) != 0,
	}

	return fc, nil
}

func decodeFrameType(b byte) FrameType {
	switch (b & 0x0C) >> 2 {
	case 0:
		return FrameTypeManagement
	case 1:
		return FrameTypeControl
	case 2:
		return FrameTypeData
	default:
		return FrameTypeUnknown
	}
}

// decodeMgmtSubtype interprets the subtype code for management, control
// and unknown frame types.
func decodeMgmtSubtype(code byte) FrameSubtype {
	switch code {
	case 0:
		return SubtypeAssoReq
	case 1:
		return SubtypeAssoResp
	case 2:
		return SubtypeReassoReq
	case 3:
		return SubtypeReassoResp
	case 4:
		return SubtypeProbeReq
	case 5:
		return SubtypeProbeResp
	case 8:
		return SubtypeBeacon
	case 9:
		return SubtypeAtim
	case 10:
		return SubtypeDisasso
	case 11:
		return SubtypeAuth
	case 12:
		return SubtypeDeauth
	default:
		return SubtypeUnhandled
	}
}

// decodeDataSubtype interprets the subtype code for data frames. Codes 9
// and 14-15 have no entry and fall through to SubtypeUnhandled.
func decodeDataSubtype(code byte) FrameSubtype {
	switch code {
	case 0:
		return SubtypeData
	case 1:
		return SubtypeDataCfAck
	case 2:
		return SubtypeDataCfPull
	case 3:
		return SubtypeDataCfAckCfPull
	case 4:
		return SubtypeNullData
	case 5:
		return SubtypeCfAck
	case 6:
		return SubtypeCfPull
	case 7:
		return SubtypeCfAckCfPull
	case 8:
		return SubtypeQoS
	case 10:
		return SubtypeQoSCfPull
	case 11:
		return SubtypeQoSCfAckCfPull
	case 12:
		return SubtypeQoSNullData
	case 13:
		return SubtypeReserved
	default:
		return SubtypeUnhandled
	}
}
