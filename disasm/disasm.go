// Package disasm turns CHIP-8 opcodes into assembly text. Mnemonics come from
// the retrogolib CHIP-8 opcode table; operands are formatted the same way the
// retroenv disassembler prints them.
package disasm

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

const opcodeSize = 2

// Line is one disassembled instruction or data word.
type Line struct {
	Address uint16
	Opcode  uint16
	Text    string
	Data    bool // no instruction matched; Text is a data directive
}

func (l Line) String() string {
	return fmt.Sprintf("$%03X  %04X  %s", l.Address, l.Opcode, l.Text)
}

// Lookup finds the retrogolib opcode entry matching word.
func Lookup(word uint16) (chip8.Opcode, bool) {
	for _, op := range chip8.Opcodes[int(word>>12)] {
		if op.Info.Mask&word == op.Info.Value && op.Instruction != nil {
			return op, true
		}
	}
	return chip8.Opcode{}, false
}

// Format returns the assembly text for word, or a data directive when no
// instruction matches.
func Format(word uint16) string {
	op, ok := Lookup(word)
	if !ok {
		return formatData(word)
	}

	name := op.Instruction.Name
	if params := formatParams(name, word); params != "" {
		return name + " " + params
	}
	return name
}

// Disassemble decodes rom linearly, labelling the first byte with base.
// A trailing odd byte is emitted as data.
func Disassemble(rom []byte, base uint16) []Line {
	lines := make([]Line, 0, (len(rom)+1)/opcodeSize)

	for offset := 0; offset < len(rom); offset += opcodeSize {
		addr := base + uint16(offset)
		if offset+1 >= len(rom) {
			word := uint16(rom[offset]) << 8
			lines = append(lines, Line{Address: addr, Opcode: word, Text: fmt.Sprintf("db $%02X", rom[offset]), Data: true})
			break
		}

		word := uint16(rom[offset])<<8 | uint16(rom[offset+1])
		_, known := Lookup(word)
		lines = append(lines, Line{
			Address: addr,
			Opcode:  word,
			Text:    Format(word),
			Data:    !known,
		})
	}

	return lines
}

func formatData(word uint16) string {
	return fmt.Sprintf("dw $%04X", word)
}

// formatParams formats the operands for the instruction name.
func formatParams(name string, word uint16) string {
	x := registerX(word)
	y := registerY(word)

	switch name {
	case chip8.ClsInst.Name, chip8.RetInst.Name:
		return ""
	case chip8.JpInst.Name:
		if word&0xF000 == 0xB000 {
			return fmt.Sprintf("V0, $%03X", word&0x0FFF)
		}
		return fmt.Sprintf("$%03X", word&0x0FFF)
	case chip8.CallInst.Name:
		return fmt.Sprintf("$%03X", word&0x0FFF)
	case chip8.SeInst.Name, chip8.SneInst.Name:
		switch word & 0xF000 {
		case 0x3000, 0x4000:
			return fmt.Sprintf("V%X, $%02X", x, word&0x00FF)
		case 0x5000, 0x9000:
			return fmt.Sprintf("V%X, V%X", x, y)
		}
	case chip8.LdInst.Name:
		return formatLoad(word)
	case chip8.AddInst.Name:
		switch word & 0xF000 {
		case 0x7000:
			return fmt.Sprintf("V%X, $%02X", x, word&0x00FF)
		case 0x8000:
			return fmt.Sprintf("V%X, V%X", x, y)
		case 0xF000:
			return fmt.Sprintf("I, V%X", x)
		}
	case chip8.OrInst.Name, chip8.AndInst.Name, chip8.XorInst.Name, chip8.SubInst.Name, chip8.SubnInst.Name:
		return fmt.Sprintf("V%X, V%X", x, y)
	case chip8.ShrInst.Name, chip8.ShlInst.Name, chip8.SkpInst.Name, chip8.SknpInst.Name:
		return fmt.Sprintf("V%X", x)
	case chip8.RndInst.Name:
		return fmt.Sprintf("V%X, $%02X", x, word&0x00FF)
	case chip8.DrwInst.Name:
		return fmt.Sprintf("V%X, V%X, $%X", x, y, word&0x000F)
	}
	return ""
}

// formatLoad covers every LD form, including the FX-- register transfers.
func formatLoad(word uint16) string {
	x := registerX(word)
	switch word & 0xF000 {
	case 0x6000:
		return fmt.Sprintf("V%X, $%02X", x, word&0x00FF)
	case 0x8000:
		return fmt.Sprintf("V%X, V%X", x, registerY(word))
	case 0xA000:
		return fmt.Sprintf("I, $%03X", word&0x0FFF)
	case 0xF000:
		switch word & 0x00FF {
		case 0x07:
			return fmt.Sprintf("V%X, DT", x)
		case 0x0A:
			return fmt.Sprintf("V%X, K", x)
		case 0x15:
			return fmt.Sprintf("DT, V%X", x)
		case 0x18:
			return fmt.Sprintf("ST, V%X", x)
		case 0x29:
			return fmt.Sprintf("F, V%X", x)
		case 0x33:
			return fmt.Sprintf("B, V%X", x)
		case 0x55:
			return fmt.Sprintf("[I], V%X", x)
		case 0x65:
			return fmt.Sprintf("V%X, [I]", x)
		}
	}
	return ""
}

func registerX(word uint16) uint16 {
	return (word & 0x0F00) >> 8
}

func registerY(word uint16) uint16 {
	return (word & 0x00F0) >> 4
}
