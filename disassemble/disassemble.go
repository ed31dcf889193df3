// Package disassemble renders 6502/65C02/Rockwell 65C02 instructions as
// text. It does not interpret control flow (a JMP target is printed, not
// followed); callers wanting a trace walk bytes linearly via Step.
package disassemble

import (
	"fmt"

	"github.com/m65xx/m65xx/bus"
	"github.com/m65xx/m65xx/cpu"
)

// mode is the addressing mode of one opcode entry, used only to decide
// how many operand bytes to print and how to format them.
type mode int

const (
	modeImplied mode = iota
	modeAccumulator
	modeImmediate
	modeZP
	modeZPX
	modeZPY
	modeIndirectX
	modeIndirectY
	modeIndirectZP
	modeAbsolute
	modeAbsoluteX
	modeAbsoluteY
	modeIndirect
	modeIndirectAbsX
	modeRelative
	modeZPRelative // Rockwell BBR/BBS: zero page then relative offset
)

type entry struct {
	mnemonic string
	mode     mode
}

// table holds the variant-independent mnemonic for the vast majority of
// opcodes; variant-specific overrides are layered on in tableFor.
var table = buildBaseTable()

func buildBaseTable() [256]entry {
	var t [256]entry
	for i := range t {
		t[i] = entry{"NOP", modeImplied}
	}
	set := func(op uint8, mnem string, m mode) { t[op] = entry{mnem, m} }

	set(0x00, "BRK", modeImplied)
	set(0x01, "ORA", modeIndirectX)
	set(0x05, "ORA", modeZP)
	set(0x06, "ASL", modeZP)
	set(0x08, "PHP", modeImplied)
	set(0x09, "ORA", modeImmediate)
	set(0x0A, "ASL", modeAccumulator)
	set(0x0D, "ORA", modeAbsolute)
	set(0x0E, "ASL", modeAbsolute)
	set(0x10, "BPL", modeRelative)
	set(0x11, "ORA", modeIndirectY)
	set(0x15, "ORA", modeZPX)
	set(0x16, "ASL", modeZPX)
	set(0x18, "CLC", modeImplied)
	set(0x19, "ORA", modeAbsoluteY)
	set(0x1D, "ORA", modeAbsoluteX)
	set(0x1E, "ASL", modeAbsoluteX)

	set(0x20, "JSR", modeAbsolute)
	set(0x21, "AND", modeIndirectX)
	set(0x24, "BIT", modeZP)
	set(0x25, "AND", modeZP)
	set(0x26, "ROL", modeZP)
	set(0x28, "PLP", modeImplied)
	set(0x29, "AND", modeImmediate)
	set(0x2A, "ROL", modeAccumulator)
	set(0x2C, "BIT", modeAbsolute)
	set(0x2D, "AND", modeAbsolute)
	set(0x2E, "ROL", modeAbsolute)
	set(0x30, "BMI", modeRelative)
	set(0x31, "AND", modeIndirectY)
	set(0x35, "AND", modeZPX)
	set(0x36, "ROL", modeZPX)
	set(0x38, "SEC", modeImplied)
	set(0x39, "AND", modeAbsoluteY)
	set(0x3D, "AND", modeAbsoluteX)
	set(0x3E, "ROL", modeAbsoluteX)

	set(0x40, "RTI", modeImplied)
	set(0x41, "EOR", modeIndirectX)
	set(0x45, "EOR", modeZP)
	set(0x46, "LSR", modeZP)
	set(0x48, "PHA", modeImplied)
	set(0x49, "EOR", modeImmediate)
	set(0x4A, "LSR", modeAccumulator)
	set(0x4C, "JMP", modeAbsolute)
	set(0x4D, "EOR", modeAbsolute)
	set(0x4E, "LSR", modeAbsolute)
	set(0x50, "BVC", modeRelative)
	set(0x51, "EOR", modeIndirectY)
	set(0x55, "EOR", modeZPX)
	set(0x56, "LSR", modeZPX)
	set(0x58, "CLI", modeImplied)
	set(0x59, "EOR", modeAbsoluteY)
	set(0x5D, "EOR", modeAbsoluteX)
	set(0x5E, "LSR", modeAbsoluteX)

	set(0x60, "RTS", modeImplied)
	set(0x61, "ADC", modeIndirectX)
	set(0x65, "ADC", modeZP)
	set(0x66, "ROR", modeZP)
	set(0x68, "PLA", modeImplied)
	set(0x69, "ADC", modeImmediate)
	set(0x6A, "ROR", modeAccumulator)
	set(0x6C, "JMP", modeIndirect)
	set(0x6D, "ADC", modeAbsolute)
	set(0x6E, "ROR", modeAbsolute)
	set(0x70, "BVS", modeRelative)
	set(0x71, "ADC", modeIndirectY)
	set(0x75, "ADC", modeZPX)
	set(0x76, "ROR", modeZPX)
	set(0x78, "SEI", modeImplied)
	set(0x79, "ADC", modeAbsoluteY)
	set(0x7D, "ADC", modeAbsoluteX)
	set(0x7E, "ROR", modeAbsoluteX)

	set(0x81, "STA", modeIndirectX)
	set(0x84, "STY", modeZP)
	set(0x85, "STA", modeZP)
	set(0x86, "STX", modeZP)
	set(0x88, "DEY", modeImplied)
	set(0x8A, "TXA", modeImplied)
	set(0x8C, "STY", modeAbsolute)
	set(0x8D, "STA", modeAbsolute)
	set(0x8E, "STX", modeAbsolute)
	set(0x90, "BCC", modeRelative)
	set(0x91, "STA", modeIndirectY)
	set(0x94, "STY", modeZPX)
	set(0x95, "STA", modeZPX)
	set(0x96, "STX", modeZPY)
	set(0x98, "TYA", modeImplied)
	set(0x99, "STA", modeAbsoluteY)
	set(0x9A, "TXS", modeImplied)
	set(0x9D, "STA", modeAbsoluteX)

	set(0xA0, "LDY", modeImmediate)
	set(0xA1, "LDA", modeIndirectX)
	set(0xA2, "LDX", modeImmediate)
	set(0xA4, "LDY", modeZP)
	set(0xA5, "LDA", modeZP)
	set(0xA6, "LDX", modeZP)
	set(0xA8, "TAY", modeImplied)
	set(0xA9, "LDA", modeImmediate)
	set(0xAA, "TAX", modeImplied)
	set(0xAC, "LDY", modeAbsolute)
	set(0xAD, "LDA", modeAbsolute)
	set(0xAE, "LDX", modeAbsolute)
	set(0xB0, "BCS", modeRelative)
	set(0xB1, "LDA", modeIndirectY)
	set(0xB4, "LDY", modeZPX)
	set(0xB5, "LDA", modeZPX)
	set(0xB6, "LDX", modeZPY)
	set(0xB8, "CLV", modeImplied)
	set(0xB9, "LDA", modeAbsoluteY)
	set(0xBA, "TSX", modeImplied)
	set(0xBC, "LDY", modeAbsoluteX)
	set(0xBD, "LDA", modeAbsoluteX)
	set(0xBE, "LDX", modeAbsoluteY)

	set(0xC0, "CPY", modeImmediate)
	set(0xC1, "CMP", modeIndirectX)
	set(0xC4, "CPY", modeZP)
	set(0xC5, "CMP", modeZP)
	set(0xC6, "DEC", modeZP)
	set(0xC8, "INY", modeImplied)
	set(0xC9, "CMP", modeImmediate)
	set(0xCA, "DEX", modeImplied)
	set(0xCC, "CPY", modeAbsolute)
	set(0xCD, "CMP", modeAbsolute)
	set(0xCE, "DEC", modeAbsolute)
	set(0xD0, "BNE", modeRelative)
	set(0xD1, "CMP", modeIndirectY)
	set(0xD5, "CMP", modeZPX)
	set(0xD6, "DEC", modeZPX)
	set(0xD8, "CLD", modeImplied)
	set(0xD9, "CMP", modeAbsoluteY)
	set(0xDD, "CMP", modeAbsoluteX)
	set(0xDE, "DEC", modeAbsoluteX)

	set(0xE0, "CPX", modeImmediate)
	set(0xE1, "SBC", modeIndirectX)
	set(0xE4, "CPX", modeZP)
	set(0xE5, "SBC", modeZP)
	set(0xE6, "INC", modeZP)
	set(0xE8, "INX", modeImplied)
	set(0xE9, "SBC", modeImmediate)
	set(0xEA, "NOP", modeImplied)
	set(0xEC, "CPX", modeAbsolute)
	set(0xED, "SBC", modeAbsolute)
	set(0xEE, "INC", modeAbsolute)
	set(0xF0, "BEQ", modeRelative)
	set(0xF1, "SBC", modeIndirectY)
	set(0xF5, "SBC", modeZPX)
	set(0xF6, "INC", modeZPX)
	set(0xF8, "SED", modeImplied)
	set(0xF9, "SBC", modeAbsoluteY)
	set(0xFD, "SBC", modeAbsoluteX)
	set(0xFE, "INC", modeAbsoluteX)

	// NMOS undocumented opcodes: printed with their common mnemonics for
	// NMOS6502 and NMOS6502NoUndocumented alike; cmosOverrides replaces
	// them with NOP for the CMOS variants.
	set(0x03, "SLO", modeIndirectX)
	set(0x07, "SLO", modeZP)
	set(0x0F, "SLO", modeAbsolute)
	set(0x13, "SLO", modeIndirectY)
	set(0x17, "SLO", modeZPX)
	set(0x1B, "SLO", modeAbsoluteY)
	set(0x1F, "SLO", modeAbsoluteX)
	set(0x23, "RLA", modeIndirectX)
	set(0x27, "RLA", modeZP)
	set(0x2F, "RLA", modeAbsolute)
	set(0x33, "RLA", modeIndirectY)
	set(0x37, "RLA", modeZPX)
	set(0x3B, "RLA", modeAbsoluteY)
	set(0x3F, "RLA", modeAbsoluteX)
	set(0x43, "SRE", modeIndirectX)
	set(0x47, "SRE", modeZP)
	set(0x4F, "SRE", modeAbsolute)
	set(0x53, "SRE", modeIndirectY)
	set(0x57, "SRE", modeZPX)
	set(0x5B, "SRE", modeAbsoluteY)
	set(0x5F, "SRE", modeAbsoluteX)
	set(0x63, "RRA", modeIndirectX)
	set(0x67, "RRA", modeZP)
	set(0x6F, "RRA", modeAbsolute)
	set(0x73, "RRA", modeIndirectY)
	set(0x77, "RRA", modeZPX)
	set(0x7B, "RRA", modeAbsoluteY)
	set(0x7F, "RRA", modeAbsoluteX)
	set(0x83, "SAX", modeIndirectX)
	set(0x87, "SAX", modeZP)
	set(0x8F, "SAX", modeAbsolute)
	set(0x97, "SAX", modeZPY)
	set(0xA3, "LAX", modeIndirectX)
	set(0xA7, "LAX", modeZP)
	set(0xAF, "LAX", modeAbsolute)
	set(0xB3, "LAX", modeIndirectY)
	set(0xB7, "LAX", modeZPY)
	set(0xBF, "LAX", modeAbsoluteY)
	set(0xC3, "DCP", modeIndirectX)
	set(0xC7, "DCP", modeZP)
	set(0xCF, "DCP", modeAbsolute)
	set(0xD3, "DCP", modeIndirectY)
	set(0xD7, "DCP", modeZPX)
	set(0xDB, "DCP", modeAbsoluteY)
	set(0xDF, "DCP", modeAbsoluteX)
	set(0xE3, "ISC", modeIndirectX)
	set(0xE7, "ISC", modeZP)
	set(0xEF, "ISC", modeAbsolute)
	set(0xF3, "ISC", modeIndirectY)
	set(0xF7, "ISC", modeZPX)
	set(0xFB, "ISC", modeAbsoluteY)
	set(0xFF, "ISC", modeAbsoluteX)
	set(0x0B, "ANC", modeImmediate)
	set(0x2B, "ANC", modeImmediate)
	set(0x4B, "ALR", modeImmediate)
	set(0x6B, "ARR", modeImmediate)
	set(0x8B, "XAA", modeImmediate)
	set(0xAB, "LXA", modeImmediate)
	set(0xCB, "AXS", modeImmediate)
	set(0xEB, "SBC", modeImmediate)
	set(0xBB, "LAS", modeAbsoluteY)
	set(0x93, "SHA", modeIndirectY)
	set(0x9F, "SHA", modeAbsoluteY)
	set(0x9C, "SHY", modeAbsoluteX)
	set(0x9E, "SHX", modeAbsoluteY)
	set(0x9B, "TAS", modeAbsoluteY)

	return t
}

// cmosOverrides layers the 65C02/Rockwell additions onto a copy of the
// base table for the slots WDC/Rockwell repurposed.
func cmosOverrides(variant cpu.Variant) [256]entry {
	t := table
	set := func(op uint8, mnem string, m mode) { t[op] = entry{mnem, m} }

	// Drop the NMOS undocumented mnemonics: on the CMOS parts the
	// $x3/$x7/$xB/$xF slots are one-byte NOPs unless set again below.
	for op := range t {
		switch op & 0x0F {
		case 0x03, 0x07, 0x0B, 0x0F:
			t[op] = entry{"NOP", modeImplied}
		}
	}

	set(0x04, "TSB", modeZP)
	set(0x0C, "TSB", modeAbsolute)
	set(0x12, "ORA", modeIndirectZP)
	set(0x14, "TRB", modeZP)
	set(0x1A, "INC", modeAccumulator)
	set(0x1C, "TRB", modeAbsolute)
	set(0x32, "AND", modeIndirectZP)
	set(0x34, "BIT", modeZPX)
	set(0x3A, "DEC", modeAccumulator)
	set(0x3C, "BIT", modeAbsoluteX)
	set(0x52, "EOR", modeIndirectZP)
	set(0x5A, "PHY", modeImplied)
	set(0x64, "STZ", modeZP)
	set(0x72, "ADC", modeIndirectZP)
	set(0x74, "STZ", modeZPX)
	set(0x7A, "PLY", modeImplied)
	set(0x7C, "JMP", modeIndirectAbsX)
	set(0x80, "BRA", modeRelative)
	set(0x89, "BIT", modeImmediate)
	set(0x92, "STA", modeIndirectZP)
	set(0x9C, "STZ", modeAbsolute)
	set(0x9E, "STZ", modeAbsoluteX)
	set(0xB2, "LDA", modeIndirectZP)
	set(0xD2, "CMP", modeIndirectZP)
	set(0xDA, "PHX", modeImplied)
	set(0xF2, "SBC", modeIndirectZP)
	set(0xFA, "PLX", modeImplied)
	set(0xCB, "WAI", modeImplied)
	set(0xDB, "STP", modeImplied)

	if variant == cpu.Rockwell65C02 {
		for n := uint8(0); n < 8; n++ {
			t[0x07+n*0x10] = entry{fmt.Sprintf("RMB%d", n), modeZP}
			t[0x87+n*0x10] = entry{fmt.Sprintf("SMB%d", n), modeZP}
			t[0x0F+n*0x10] = entry{fmt.Sprintf("BBR%d", n), modeZPRelative}
			t[0x8F+n*0x10] = entry{fmt.Sprintf("BBS%d", n), modeZPRelative}
		}
		t[0xCB] = entry{"NOP", modeImplied}
		t[0xDB] = entry{"NOP", modeImplied}
	}
	return t
}

func tableFor(variant cpu.Variant) [256]entry {
	if variant == cpu.WDC65C02 || variant == cpu.Rockwell65C02 {
		return cmosOverrides(variant)
	}
	return table
}

// Step disassembles the instruction at pc and returns its text plus the
// number of bytes it occupies, reading through peek (never Read: a
// disassembler must not perturb cycle-accounted state). It always reads
// the two bytes after pc, so callers must ensure those addresses are
// mapped.
func Step(pc uint16, variant cpu.Variant, b bus.Bus) (string, int) {
	t := tableFor(variant)
	opcode := b.Peek(pc)
	e := t[opcode]
	op1 := b.Peek(pc + 1)
	op2 := b.Peek(pc + 2)

	switch e.mode {
	case modeImplied, modeAccumulator:
		if e.mode == modeAccumulator {
			return fmt.Sprintf("%s A", e.mnemonic), 1
		}
		return e.mnemonic, 1
	case modeImmediate:
		return fmt.Sprintf("%s #$%02X", e.mnemonic, op1), 2
	case modeZP:
		return fmt.Sprintf("%s $%02X", e.mnemonic, op1), 2
	case modeZPX:
		return fmt.Sprintf("%s $%02X,X", e.mnemonic, op1), 2
	case modeZPY:
		return fmt.Sprintf("%s $%02X,Y", e.mnemonic, op1), 2
	case modeIndirectX:
		return fmt.Sprintf("%s ($%02X,X)", e.mnemonic, op1), 2
	case modeIndirectY:
		return fmt.Sprintf("%s ($%02X),Y", e.mnemonic, op1), 2
	case modeIndirectZP:
		return fmt.Sprintf("%s ($%02X)", e.mnemonic, op1), 2
	case modeAbsolute:
		return fmt.Sprintf("%s $%02X%02X", e.mnemonic, op2, op1), 3
	case modeAbsoluteX:
		return fmt.Sprintf("%s $%02X%02X,X", e.mnemonic, op2, op1), 3
	case modeAbsoluteY:
		return fmt.Sprintf("%s $%02X%02X,Y", e.mnemonic, op2, op1), 3
	case modeIndirect:
		return fmt.Sprintf("%s ($%02X%02X)", e.mnemonic, op2, op1), 3
	case modeIndirectAbsX:
		return fmt.Sprintf("%s ($%02X%02X,X)", e.mnemonic, op2, op1), 3
	case modeRelative:
		target := uint16(int32(pc) + 2 + int32(int8(op1)))
		return fmt.Sprintf("%s $%04X", e.mnemonic, target), 2
	case modeZPRelative:
		target := uint16(int32(pc) + 3 + int32(int8(op2)))
		return fmt.Sprintf("%s $%02X,$%04X", e.mnemonic, op1, target), 3
	default:
		return e.mnemonic, 1
	}
}
