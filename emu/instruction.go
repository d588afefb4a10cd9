package emu

import "fmt"

// Op identifies a decoded instruction variant.
type Op uint8

const (
	OpUnknown Op = iota
	OpSys        // 0NNN
	OpCls        // 00E0
	OpRet        // 00EE
	OpJump       // 1NNN
	OpCall       // 2NNN
	OpSkipEqImm  // 3XNN
	OpSkipNeImm  // 4XNN
	OpSkipEqReg  // 5XY0
	OpLoadImm    // 6XNN
	OpAddImm     // 7XNN
	OpMove       // 8XY0
	OpOr         // 8XY1
	OpAnd        // 8XY2
	OpXor        // 8XY3
	OpAdd        // 8XY4
	OpSub        // 8XY5
	OpShr        // 8XY6
	OpSubn       // 8XY7
	OpShl        // 8XYE
	OpSkipNeReg  // 9XY0
	OpLoadIndex  // ANNN
	OpJumpV0     // BNNN
	OpRand       // CXNN
	OpDraw       // DXYN
	OpSkipKey    // EX9E
	OpSkipNoKey  // EXA1
	OpLoadDelay  // FX07
	OpWaitKey    // FX0A
	OpSetDelay   // FX15
	OpSetSound   // FX18
	OpAddIndex   // FX1E
	OpLoadGlyph  // FX29
	OpBCD        // FX33
	OpStoreRegs  // FX55
	OpLoadRegs   // FX65
)

var opNames = [...]string{
	OpUnknown:   "???",
	OpSys:       "SYS",
	OpCls:       "CLS",
	OpRet:       "RET",
	OpJump:      "JP",
	OpCall:      "CALL",
	OpSkipEqImm: "SE",
	OpSkipNeImm: "SNE",
	OpSkipEqReg: "SE",
	OpLoadImm:   "LD",
	OpAddImm:    "ADD",
	OpMove:      "LD",
	OpOr:        "OR",
	OpAnd:       "AND",
	OpXor:       "XOR",
	OpAdd:       "ADD",
	OpSub:       "SUB",
	OpShr:       "SHR",
	OpSubn:      "SUBN",
	OpShl:       "SHL",
	OpSkipNeReg: "SNE",
	OpLoadIndex: "LD",
	OpJumpV0:    "JP",
	OpRand:      "RND",
	OpDraw:      "DRW",
	OpSkipKey:   "SKP",
	OpSkipNoKey: "SKNP",
	OpLoadDelay: "LD",
	OpWaitKey:   "LD",
	OpSetDelay:  "LD",
	OpSetSound:  "LD",
	OpAddIndex:  "ADD",
	OpLoadGlyph: "LD",
	OpBCD:       "LD",
	OpStoreRegs: "LD",
	OpLoadRegs:  "LD",
}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("Op(%d)", o)
}

// Instruction is a decoded opcode with its operand fields extracted.
type Instruction struct {
	Op     Op
	Opcode uint16
	X      uint8  // second nibble
	Y      uint8  // third nibble
	N      uint8  // fourth nibble
	NN     uint8  // low byte
	NNN    uint16 // low 12 bits
}

// Decode splits opcode into its nibbles and selects the instruction variant.
// Words that match no instruction decode to OpUnknown.
func Decode(opcode uint16) Instruction {
	n1 := uint8(opcode >> 12)
	inst := Instruction{
		Opcode: opcode,
		X:      uint8(opcode>>8) & 0x0F,
		Y:      uint8(opcode>>4) & 0x0F,
		N:      uint8(opcode) & 0x0F,
		NN:     uint8(opcode),
		NNN:    opcode & AddressMask,
	}

	switch n1 {
	case 0x0:
		switch opcode {
		case 0x00E0:
			inst.Op = OpCls
		case 0x00EE:
			inst.Op = OpRet
		default:
			inst.Op = OpSys
		}
	case 0x1:
		inst.Op = OpJump
	case 0x2:
		inst.Op = OpCall
	case 0x3:
		inst.Op = OpSkipEqImm
	case 0x4:
		inst.Op = OpSkipNeImm
	case 0x5:
		if inst.N == 0x0 {
			inst.Op = OpSkipEqReg
		}
	case 0x6:
		inst.Op = OpLoadImm
	case 0x7:
		inst.Op = OpAddImm
	case 0x8:
		inst.Op = decodeALU(inst.N)
	case 0x9:
		if inst.N == 0x0 {
			inst.Op = OpSkipNeReg
		}
	case 0xA:
		inst.Op = OpLoadIndex
	case 0xB:
		inst.Op = OpJumpV0
	case 0xC:
		inst.Op = OpRand
	case 0xD:
		inst.Op = OpDraw
	case 0xE:
		switch inst.NN {
		case 0x9E:
			inst.Op = OpSkipKey
		case 0xA1:
			inst.Op = OpSkipNoKey
		}
	case 0xF:
		inst.Op = decodeMisc(inst.NN)
	}

	return inst
}

func decodeALU(n uint8) Op {
	switch n {
	case 0x0:
		return OpMove
	case 0x1:
		return OpOr
	case 0x2:
		return OpAnd
	case 0x3:
		return OpXor
	case 0x4:
		return OpAdd
	case 0x5:
		return OpSub
	case 0x6:
		return OpShr
	case 0x7:
		return OpSubn
	case 0xE:
		return OpShl
	}
	return OpUnknown
}

func decodeMisc(nn uint8) Op {
	switch nn {
	case 0x07:
		return OpLoadDelay
	case 0x0A:
		return OpWaitKey
	case 0x15:
		return OpSetDelay
	case 0x18:
		return OpSetSound
	case 0x1E:
		return OpAddIndex
	case 0x29:
		return OpLoadGlyph
	case 0x33:
		return OpBCD
	case 0x55:
		return OpStoreRegs
	case 0x65:
		return OpLoadRegs
	}
	return OpUnknown
}
