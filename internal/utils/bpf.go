// Package utils provides capture helpers.
package utils

import (
	"fmt"
	"strings"

	"golang.org/x/net/bpf"
)

// 802.11 frame type codes as they appear in bits [3:2] of the first MAC
// header byte. The filter matches on the masked byte, so the values are
// stored pre-shifted.
const (
	frameTypeMask = 0x0C

	frameTypeManagement = 0x00
	frameTypeControl    = 0x04
	frameTypeData       = 0x08
)

// maxFrameLen is the accept length returned by the filter; large enough
// for any 802.11 frame.
const maxFrameLen = 65535

// CompileFrameFilter builds a raw BPF program accepting only the listed
// 802.11 frame types ("management", "control", "data"). An empty list
// compiles to an accept-all program. The program assumes the frame starts
// at the MAC header, i.e. a plain 802.11 link type without a radiotap
// prefix; radiotap captures must be filtered after the header strip.
func CompileFrameFilter(frameTypes []string) ([]bpf.RawInstruction, error) {
	prog, err := frameFilterProgram(frameTypes)
	if err != nil {
		return nil, err
	}
	return bpf.Assemble(prog)
}

func frameFilterProgram(frameTypes []string) ([]bpf.Instruction, error) {
	if len(frameTypes) == 0 {
		return []bpf.Instruction{bpf.RetConstant{Val: maxFrameLen}}, nil
	}

	values := make([]uint32, 0, len(frameTypes))
	for _, ft := range frameTypes {
		switch strings.ToLower(strings.TrimSpace(ft)) {
		case "management", "mgmt":
			values = append(values, frameTypeManagement)
		case "control", "ctrl":
			values = append(values, frameTypeControl)
		case "data":
			values = append(values, frameTypeData)
		default:
			return nil, fmt.Errorf("unknown frame type %q", ft)
		}
	}

	// ldb [0]; and #0x0c; one jeq per wanted type; reject; accept.
	prog := []bpf.Instruction{
		bpf.LoadAbsolute{Off: 0, Size: 1},
		bpf.ALUOpConstant{Op: bpf.ALUOpAnd, Val: frameTypeMask},
	}
	for i, v := range values {
		// A hit skips the remaining comparisons and the reject.
		prog = append(prog, bpf.JumpIf{
			Cond:     bpf.JumpEqual,
			Val:      v,
			SkipTrue: uint8(len(values) - i),
		})
	}
	prog = append(prog,
		bpf.RetConstant{Val: 0},
		bpf.RetConstant{Val: maxFrameLen},
	)
	return prog, nil
}
