package emu

import "testing"

// TestDecode_Variants verifies every opcode family decodes to its variant
func TestDecode_Variants(t *testing.T) {
	tests := []struct {
		opcode uint16
		op     Op
	}{
		{0x00E0, OpCls},
		{0x00EE, OpRet},
		{0x0123, OpSys},
		{0x1234, OpJump},
		{0x2345, OpCall},
		{0x3A12, OpSkipEqImm},
		{0x4A12, OpSkipNeImm},
		{0x5AB0, OpSkipEqReg},
		{0x5AB1, OpUnknown},
		{0x6A12, OpLoadImm},
		{0x7A12, OpAddImm},
		{0x8AB0, OpMove},
		{0x8AB1, OpOr},
		{0x8AB2, OpAnd},
		{0x8AB3, OpXor},
		{0x8AB4, OpAdd},
		{0x8AB5, OpSub},
		{0x8AB6, OpShr},
		{0x8AB7, OpSubn},
		{0x8ABE, OpShl},
		{0x8AB8, OpUnknown},
		{0x9AB0, OpSkipNeReg},
		{0x9AB5, OpUnknown},
		{0xA123, OpLoadIndex},
		{0xB123, OpJumpV0},
		{0xCA12, OpRand},
		{0xDAB5, OpDraw},
		{0xEA9E, OpSkipKey},
		{0xEAA1, OpSkipNoKey},
		{0xEA00, OpUnknown},
		{0xFA07, OpLoadDelay},
		{0xFA0A, OpWaitKey},
		{0xFA15, OpSetDelay},
		{0xFA18, OpSetSound},
		{0xFA1E, OpAddIndex},
		{0xFA29, OpLoadGlyph},
		{0xFA33, OpBCD},
		{0xFA55, OpStoreRegs},
		{0xFA65, OpLoadRegs},
		{0xFAFF, OpUnknown},
	}

	for _, tt := range tests {
		inst := Decode(tt.opcode)
		if inst.Op != tt.op {
			t.Errorf("Decode(%04X): expected %v (%d), got %v (%d)", tt.opcode, tt.op, tt.op, inst.Op, inst.Op)
		}
		if inst.Opcode != tt.opcode {
			t.Errorf("Decode(%04X): opcode field %04X", tt.opcode, inst.Opcode)
		}
	}
}

// TestDecode_Fields verifies operand extraction
func TestDecode_Fields(t *testing.T) {
	inst := Decode(0xD5A7)

	if inst.X != 0x5 {
		t.Errorf("X: expected 0x5, got 0x%X", inst.X)
	}
	if inst.Y != 0xA {
		t.Errorf("Y: expected 0xA, got 0x%X", inst.Y)
	}
	if inst.N != 0x7 {
		t.Errorf("N: expected 0x7, got 0x%X", inst.N)
	}
	if inst.NN != 0xA7 {
		t.Errorf("NN: expected 0xA7, got 0x%02X", inst.NN)
	}
	if inst.NNN != 0x5A7 {
		t.Errorf("NNN: expected 0x5A7, got 0x%03X", inst.NNN)
	}
}

// TestOp_String verifies mnemonics
func TestOp_String(t *testing.T) {
	if OpDraw.String() != "DRW" {
		t.Errorf("OpDraw: expected DRW, got %s", OpDraw.String())
	}
	if OpSubn.String() != "SUBN" {
		t.Errorf("OpSubn: expected SUBN, got %s", OpSubn.String())
	}
	if Op(200).String() != "Op(200)" {
		t.Errorf("Op(200): expected Op(200), got %s", Op(200).String())
	}
}
