package cpu

// Table is the 256 entry opcode-to-schedule map for one Variant. It's
// built once (NewTable) and is read-only afterward, so a single Table
// can be shared by many CPU instances of the same variant.
type Table struct {
	schedules [256][]microOp
}

// NewTable builds the decode table for variant. Every opcode slot is
// populated: documented instructions, the 65C02/Rockwell additions,
// NMOS undocumented opcodes (only for NMOS6502), and NOP/JAM filler for
// whatever remains, matching what each real chip actually does with an
// opcode byte it was never given a defined meaning for.
func NewTable(variant Variant, options Options) *Table {
	t := &Table{}
	switch variant {
	case NMOS6502:
		fillNMOSBase(t)
		fillNMOSUndocumented(t)
	case NMOS6502NoUndocumented:
		fillNMOSBase(t)
		fillNMOSFillerAsNOP(t)
	case WDC65C02:
		fillNMOSBase(t)
		fillCMOSCommon(t, options)
		fillCMOSFillerNOPs(t)
	case Rockwell65C02:
		fillNMOSBase(t)
		fillCMOSCommon(t, options)
		fillRockwellOnly(t)
		fillCMOSFillerNOPs(t)
	default:
		for i := range t.schedules {
			t.schedules[i] = schedJAM(options)
		}
	}
	return t
}

// fillNMOSBase populates every documented 6502 opcode, common to all
// four variants (65C02 entries below override a handful of these slots
// that silicon repurposed).
func fillNMOSBase(t *Table) {
	s := t.schedules

	s[0x00] = schedBRK()
	s[0x01] = schedIndirectXRead(ora)
	s[0x05] = schedZPRead(ora)
	s[0x06] = schedZPRMW(asl)
	s[0x08] = schedPHP()
	s[0x09] = schedImmediateRead(ora)
	s[0x0A] = schedAccumulator(asl)
	s[0x0D] = schedAbsoluteRead(ora)
	s[0x0E] = schedAbsoluteRMW(asl)

	s[0x10] = schedBranch(condPL)
	s[0x11] = schedIndirectYRead(ora)
	s[0x15] = schedZPIndexedRead(selX, ora)
	s[0x16] = schedZPIndexedRMW(selX, asl)
	s[0x18] = schedImplied(opCLC)
	s[0x19] = schedAbsoluteIndexedRead(selY, ora)
	s[0x1D] = schedAbsoluteIndexedRead(selX, ora)
	s[0x1E] = schedAbsoluteIndexedRMW(selX, asl)

	s[0x20] = schedJSR()
	s[0x21] = schedIndirectXRead(and)
	s[0x24] = schedZPRead(bit)
	s[0x25] = schedZPRead(and)
	s[0x26] = schedZPRMW(rol)
	s[0x28] = schedPLP()
	s[0x29] = schedImmediateRead(and)
	s[0x2A] = schedAccumulator(rol)
	s[0x2C] = schedAbsoluteRead(bit)
	s[0x2D] = schedAbsoluteRead(and)
	s[0x2E] = schedAbsoluteRMW(rol)

	s[0x30] = schedBranch(condMI)
	s[0x31] = schedIndirectYRead(and)
	s[0x35] = schedZPIndexedRead(selX, and)
	s[0x36] = schedZPIndexedRMW(selX, rol)
	s[0x38] = schedImplied(opSEC)
	s[0x39] = schedAbsoluteIndexedRead(selY, and)
	s[0x3D] = schedAbsoluteIndexedRead(selX, and)
	s[0x3E] = schedAbsoluteIndexedRMW(selX, rol)

	s[0x40] = schedRTI()
	s[0x41] = schedIndirectXRead(eor)
	s[0x45] = schedZPRead(eor)
	s[0x46] = schedZPRMW(lsr)
	s[0x48] = schedPHA()
	s[0x49] = schedImmediateRead(eor)
	s[0x4A] = schedAccumulator(lsr)
	s[0x4C] = schedJMPAbsolute()
	s[0x4D] = schedAbsoluteRead(eor)
	s[0x4E] = schedAbsoluteRMW(lsr)

	s[0x50] = schedBranch(condVC)
	s[0x51] = schedIndirectYRead(eor)
	s[0x55] = schedZPIndexedRead(selX, eor)
	s[0x56] = schedZPIndexedRMW(selX, lsr)
	s[0x58] = schedImplied(opCLI)
	s[0x59] = schedAbsoluteIndexedRead(selY, eor)
	s[0x5D] = schedAbsoluteIndexedRead(selX, eor)
	s[0x5E] = schedAbsoluteIndexedRMW(selX, lsr)

	s[0x60] = schedRTS()
	s[0x61] = schedIndirectXRead(adc)
	s[0x65] = schedZPRead(adc)
	s[0x66] = schedZPRMW(ror)
	s[0x68] = schedPLA()
	s[0x69] = schedImmediateRead(adc)
	s[0x6A] = schedAccumulator(ror)
	s[0x6C] = nil // filled per variant below (page-wrap bug vs fix)
	s[0x6D] = schedAbsoluteRead(adc)
	s[0x6E] = schedAbsoluteRMW(ror)

	s[0x70] = schedBranch(condVS)
	s[0x71] = schedIndirectYRead(adc)
	s[0x75] = schedZPIndexedRead(selX, adc)
	s[0x76] = schedZPIndexedRMW(selX, ror)
	s[0x78] = schedImplied(opSEI)
	s[0x79] = schedAbsoluteIndexedRead(selY, adc)
	s[0x7D] = schedAbsoluteIndexedRead(selX, adc)
	s[0x7E] = schedAbsoluteIndexedRMW(selX, ror)

	s[0x81] = schedIndirectXStore(staVal)
	s[0x84] = schedZPStore(styVal)
	s[0x85] = schedZPStore(staVal)
	s[0x86] = schedZPStore(stxVal)
	s[0x88] = schedImplied(opDEY)
	s[0x8A] = schedImplied(opTXA)
	s[0x8C] = schedAbsoluteStore(styVal)
	s[0x8D] = schedAbsoluteStore(staVal)
	s[0x8E] = schedAbsoluteStore(stxVal)

	s[0x90] = schedBranch(condCC)
	s[0x91] = schedIndirectYStore(staVal)
	s[0x94] = schedZPIndexedStore(selX, styVal)
	s[0x95] = schedZPIndexedStore(selX, staVal)
	s[0x96] = schedZPIndexedStore(selY, stxVal)
	s[0x98] = schedImplied(opTYA)
	s[0x99] = schedAbsoluteIndexedStore(selY, staVal)
	s[0x9A] = schedImplied(opTXS)
	s[0x9D] = schedAbsoluteIndexedStore(selX, staVal)

	s[0xA0] = schedImmediateRead(ldy)
	s[0xA1] = schedIndirectXRead(lda)
	s[0xA2] = schedImmediateRead(ldx)
	s[0xA4] = schedZPRead(ldy)
	s[0xA5] = schedZPRead(lda)
	s[0xA6] = schedZPRead(ldx)
	s[0xA8] = schedImplied(opTAY)
	s[0xA9] = schedImmediateRead(lda)
	s[0xAA] = schedImplied(opTAX)
	s[0xAC] = schedAbsoluteRead(ldy)
	s[0xAD] = schedAbsoluteRead(lda)
	s[0xAE] = schedAbsoluteRead(ldx)

	s[0xB0] = schedBranch(condCS)
	s[0xB1] = schedIndirectYRead(lda)
	s[0xB4] = schedZPIndexedRead(selX, ldy)
	s[0xB5] = schedZPIndexedRead(selX, lda)
	s[0xB6] = schedZPIndexedRead(selY, ldx)
	s[0xB8] = schedImplied(opCLV)
	s[0xB9] = schedAbsoluteIndexedRead(selY, lda)
	s[0xBA] = schedImplied(opTSX)
	s[0xBC] = schedAbsoluteIndexedRead(selX, ldy)
	s[0xBD] = schedAbsoluteIndexedRead(selX, lda)
	s[0xBE] = schedAbsoluteIndexedRead(selY, ldx)

	s[0xC0] = schedImmediateRead(cmpY)
	s[0xC1] = schedIndirectXRead(cmpA)
	s[0xC4] = schedZPRead(cmpY)
	s[0xC5] = schedZPRead(cmpA)
	s[0xC6] = schedZPRMW(decVal)
	s[0xC8] = schedImplied(opINY)
	s[0xC9] = schedImmediateRead(cmpA)
	s[0xCA] = schedImplied(opDEX)
	s[0xCC] = schedAbsoluteRead(cmpY)
	s[0xCD] = schedAbsoluteRead(cmpA)
	s[0xCE] = schedAbsoluteRMW(decVal)

	s[0xD0] = schedBranch(condNE)
	s[0xD1] = schedIndirectYRead(cmpA)
	s[0xD5] = schedZPIndexedRead(selX, cmpA)
	s[0xD6] = schedZPIndexedRMW(selX, decVal)
	s[0xD8] = schedImplied(opCLD)
	s[0xD9] = schedAbsoluteIndexedRead(selY, cmpA)
	s[0xDD] = schedAbsoluteIndexedRead(selX, cmpA)
	s[0xDE] = schedAbsoluteIndexedRMW(selX, decVal)

	s[0xE0] = schedImmediateRead(cmpX)
	s[0xE1] = schedIndirectXRead(sbc)
	s[0xE4] = schedZPRead(cmpX)
	s[0xE5] = schedZPRead(sbc)
	s[0xE6] = schedZPRMW(incVal)
	s[0xE8] = schedImplied(opINX)
	s[0xE9] = schedImmediateRead(sbc)
	s[0xEA] = schedImplied(opNOP)
	s[0xEC] = schedAbsoluteRead(cmpX)
	s[0xED] = schedAbsoluteRead(sbc)
	s[0xEE] = schedAbsoluteRMW(incVal)

	s[0xF0] = schedBranch(condEQ)
	s[0xF1] = schedIndirectYRead(sbc)
	s[0xF5] = schedZPIndexedRead(selX, sbc)
	s[0xF6] = schedZPIndexedRMW(selX, incVal)
	s[0xF8] = schedImplied(opSED)
	s[0xF9] = schedAbsoluteIndexedRead(selY, sbc)
	s[0xFD] = schedAbsoluteIndexedRead(selX, sbc)
	s[0xFE] = schedAbsoluteIndexedRMW(selX, incVal)

	t.schedules = s
	t.schedules[0x6C] = schedJMPIndirect(NMOS6502)
}

// fillNMOSUndocumented wires the well known NMOS illegal opcodes and
// fills any opcode byte real NMOS silicon still has no defined behavior
// for with JAM, matching the halt-on-illegal-opcode behavior those
// remaining slots actually produce.
func fillNMOSUndocumented(t *Table) {
	s := &t.schedules

	s[0x03] = schedIndirectXRMW(sloApply)
	s[0x07] = schedZPRMW(sloApply)
	s[0x0F] = schedAbsoluteRMW(sloApply)
	s[0x13] = schedIndirectYRMW(sloApply)
	s[0x17] = schedZPIndexedRMW(selX, sloApply)
	s[0x1B] = schedAbsoluteIndexedRMW(selY, sloApply)
	s[0x1F] = schedAbsoluteIndexedRMW(selX, sloApply)

	s[0x23] = schedIndirectXRMW(rlaApply)
	s[0x27] = schedZPRMW(rlaApply)
	s[0x2F] = schedAbsoluteRMW(rlaApply)
	s[0x33] = schedIndirectYRMW(rlaApply)
	s[0x37] = schedZPIndexedRMW(selX, rlaApply)
	s[0x3B] = schedAbsoluteIndexedRMW(selY, rlaApply)
	s[0x3F] = schedAbsoluteIndexedRMW(selX, rlaApply)

	s[0x43] = schedIndirectXRMW(sreApply)
	s[0x47] = schedZPRMW(sreApply)
	s[0x4F] = schedAbsoluteRMW(sreApply)
	s[0x53] = schedIndirectYRMW(sreApply)
	s[0x57] = schedZPIndexedRMW(selX, sreApply)
	s[0x5B] = schedAbsoluteIndexedRMW(selY, sreApply)
	s[0x5F] = schedAbsoluteIndexedRMW(selX, sreApply)

	s[0x63] = schedIndirectXRMW(rraApply)
	s[0x67] = schedZPRMW(rraApply)
	s[0x6F] = schedAbsoluteRMW(rraApply)
	s[0x73] = schedIndirectYRMW(rraApply)
	s[0x77] = schedZPIndexedRMW(selX, rraApply)
	s[0x7B] = schedAbsoluteIndexedRMW(selY, rraApply)
	s[0x7F] = schedAbsoluteIndexedRMW(selX, rraApply)

	s[0x83] = schedIndirectXStore(saxVal)
	s[0x87] = schedZPStore(saxVal)
	s[0x8F] = schedAbsoluteStore(saxVal)
	s[0x97] = schedZPIndexedStore(selY, saxVal)

	s[0xA3] = schedIndirectXRead(lax)
	s[0xA7] = schedZPRead(lax)
	s[0xAF] = schedAbsoluteRead(lax)
	s[0xB3] = schedIndirectYRead(lax)
	s[0xB7] = schedZPIndexedRead(selY, lax)
	s[0xBF] = schedAbsoluteIndexedRead(selY, lax)

	s[0xC3] = schedIndirectXRMW(dcp)
	s[0xC7] = schedZPRMW(dcp)
	s[0xCF] = schedAbsoluteRMW(dcp)
	s[0xD3] = schedIndirectYRMW(dcp)
	s[0xD7] = schedZPIndexedRMW(selX, dcp)
	s[0xDB] = schedAbsoluteIndexedRMW(selY, dcp)
	s[0xDF] = schedAbsoluteIndexedRMW(selX, dcp)

	s[0xE3] = schedIndirectXRMW(iscApply)
	s[0xE7] = schedZPRMW(iscApply)
	s[0xEF] = schedAbsoluteRMW(iscApply)
	s[0xF3] = schedIndirectYRMW(iscApply)
	s[0xF7] = schedZPIndexedRMW(selX, iscApply)
	s[0xFB] = schedAbsoluteIndexedRMW(selY, iscApply)
	s[0xFF] = schedAbsoluteIndexedRMW(selX, iscApply)

	s[0x0B] = schedImmediateRead(anc)
	s[0x2B] = schedImmediateRead(anc)
	s[0x4B] = schedImmediateRead(alr)
	s[0x6B] = schedImmediateRead(arr)
	s[0x8B] = schedImmediateRead(xaa)
	s[0xAB] = schedImmediateRead(lxa)
	s[0xCB] = schedImmediateRead(axs)
	s[0xEB] = schedImmediateRead(sbc) // undocumented duplicate of 0xE9

	s[0xBB] = schedAbsoluteIndexedRead(selY, las)
	s[0x93] = schedIndirectYStore(unstableStoreVal(func(c *CPU) uint8 { return c.A & c.X }, effectiveAddrHi))
	s[0x9F] = schedAbsoluteIndexedStore(selY, unstableStoreVal(func(c *CPU) uint8 { return c.A & c.X }, effectiveAddrHi))
	s[0x9C] = schedAbsoluteIndexedStore(selX, unstableStoreVal(func(c *CPU) uint8 { return c.Y }, effectiveAddrHi))
	s[0x9E] = schedAbsoluteIndexedStore(selY, unstableStoreVal(func(c *CPU) uint8 { return c.X }, effectiveAddrHi))
	s[0x9B] = schedAbsoluteIndexedStore(selY, tasVal)

	fillNMOSFillerNOPs(t)

	for op := range t.schedules {
		if t.schedules[op] == nil {
			t.schedules[op] = schedJAM(Options{})
		}
	}
}

// fillNMOSFillerAsNOP is used by NMOS6502NoUndocumented: the NOP-filler
// slots get the same NOPs of matching width that fillNMOSFillerNOPs wires
// for NMOS6502, and every other slot without a documented instruction,
// including the stable undocumented opcodes (LAX, SAX, SLO, DCP, ...),
// gets JAM; none of those opcodes runs as a NOP on this variant.
func fillNMOSFillerAsNOP(t *Table) {
	fillNMOSFillerNOPs(t)
	for op := range t.schedules {
		if t.schedules[op] == nil {
			t.schedules[op] = schedJAM(Options{})
		}
	}
}

// fillNMOSFillerNOPs wires the documented-width NOP filler opcodes
// common to NMOS chips, used both as real instructions (for
// NMOS6502NoUndocumented) and as the schedule for opcode bytes that
// don't otherwise do anything useful.
func fillNMOSFillerNOPs(t *Table) {
	s := &t.schedules
	oneByte := []uint8{0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA}
	for _, op := range oneByte {
		s[op] = schedImplied(opNOP)
	}
	immediate := []uint8{0x80, 0x82, 0x89, 0xC2, 0xE2}
	for _, op := range immediate {
		s[op] = schedNOPImmediate()
	}
	zp := []uint8{0x04, 0x44, 0x64}
	for _, op := range zp {
		s[op] = schedNOPZP()
	}
	zpIndexed := []uint8{0x14, 0x34, 0x54, 0x74, 0xD4, 0xF4}
	for _, op := range zpIndexed {
		s[op] = schedNOPZPIndexed()
	}
	s[0x0C] = schedNOPAbsolute()
	absIndexed := []uint8{0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC}
	for _, op := range absIndexed {
		s[op] = schedNOPAbsoluteIndexed()
	}
}

// fillCMOSCommon overrides the handful of NMOS opcode slots that WDC
// repurposed for new instructions, shared by both CMOS variants, and
// fixes the JMP (abs) page-wrap bug.
func fillCMOSCommon(t *Table, options Options) {
	s := &t.schedules

	s[0x04] = schedZPRMW(func(c *CPU, val uint8) uint8 { return tsbOp(c, val) })
	s[0x0C] = schedAbsoluteRMW(func(c *CPU, val uint8) uint8 { return tsbOp(c, val) })
	s[0x12] = schedZPIndirectRead(ora)
	s[0x14] = schedZPRMW(func(c *CPU, val uint8) uint8 { return trb(c, val) })
	s[0x1A] = schedAccumulator(incVal)
	s[0x1C] = schedAbsoluteRMW(func(c *CPU, val uint8) uint8 { return trb(c, val) })

	s[0x32] = schedZPIndirectRead(and)
	s[0x34] = schedZPIndexedRead(selX, bit)
	s[0x3A] = schedAccumulator(decVal)
	s[0x3C] = schedAbsoluteIndexedReadCMOS(selX, bit)

	s[0x52] = schedZPIndirectRead(eor)
	s[0x5A] = schedPHY()
	s[0x64] = schedZPStore(stzVal)
	s[0x72] = schedZPIndirectRead(adc)
	s[0x74] = schedZPIndexedStore(selX, stzVal)
	s[0x7A] = schedPLY()
	s[0x7C] = schedJMPIndexedIndirect()

	s[0x80] = schedBranch(condAlways) // BRA
	s[0x89] = schedImmediateRead(bitImmediate)
	s[0x92] = schedZPIndirectStore(staVal)
	s[0x9C] = schedAbsoluteStore(stzVal)
	s[0x9E] = schedAbsoluteIndexedStore(selX, stzVal)

	s[0xB2] = schedZPIndirectRead(lda)
	s[0xD2] = schedZPIndirectRead(cmpA)
	s[0xDA] = schedPHX()
	s[0xF2] = schedZPIndirectRead(sbc)
	s[0xFA] = schedPLX()

	s[0x6C] = schedJMPIndirect(WDC65C02)

	s[0xDB] = schedSTP(options)
	s[0xCB] = schedWAI(options)

	fillCMOSIndexedPenalty(t)
}

// fillCMOSIndexedPenalty overrides the indexed-read opcodes fillNMOSBase
// wired with the NMOS wrong-address penalty, substituting the CMOS
// redesign's own-opcode-stream penalty read (see
// schedAbsoluteIndexedReadCMOS/schedIndirectYReadCMOS). Both CMOS variants
// share this fix: Rockwell's later pass never touches these slots.
func fillCMOSIndexedPenalty(t *Table) {
	s := &t.schedules

	s[0x19] = schedAbsoluteIndexedReadCMOS(selY, ora)
	s[0x1D] = schedAbsoluteIndexedReadCMOS(selX, ora)
	s[0x39] = schedAbsoluteIndexedReadCMOS(selY, and)
	s[0x3D] = schedAbsoluteIndexedReadCMOS(selX, and)
	s[0x59] = schedAbsoluteIndexedReadCMOS(selY, eor)
	s[0x5D] = schedAbsoluteIndexedReadCMOS(selX, eor)
	s[0x79] = schedAbsoluteIndexedReadCMOS(selY, adc)
	s[0x7D] = schedAbsoluteIndexedReadCMOS(selX, adc)
	s[0xB9] = schedAbsoluteIndexedReadCMOS(selY, lda)
	s[0xBC] = schedAbsoluteIndexedReadCMOS(selX, ldy)
	s[0xBD] = schedAbsoluteIndexedReadCMOS(selX, lda)
	s[0xBE] = schedAbsoluteIndexedReadCMOS(selY, ldx)
	s[0xD9] = schedAbsoluteIndexedReadCMOS(selY, cmpA)
	s[0xDD] = schedAbsoluteIndexedReadCMOS(selX, cmpA)
	s[0xF9] = schedAbsoluteIndexedReadCMOS(selY, sbc)
	s[0xFD] = schedAbsoluteIndexedReadCMOS(selX, sbc)

	s[0x11] = schedIndirectYReadCMOS(ora)
	s[0x31] = schedIndirectYReadCMOS(and)
	s[0x51] = schedIndirectYReadCMOS(eor)
	s[0x71] = schedIndirectYReadCMOS(adc)
	s[0xB1] = schedIndirectYReadCMOS(lda)
	s[0xD1] = schedIndirectYReadCMOS(cmpA)
	s[0xF1] = schedIndirectYReadCMOS(sbc)
}

// trb is TRB: clear bits of memory selected by A, set Z from A&mem.
func trb(c *CPU, val uint8) uint8 {
	c.P &^= FlagZero
	if c.A&val == 0 {
		c.P |= FlagZero
	}
	return val &^ c.A
}

// tsbOp is TSB: set bits of memory selected by A, set Z from A&mem.
func tsbOp(c *CPU, val uint8) uint8 {
	c.P &^= FlagZero
	if c.A&val == 0 {
		c.P |= FlagZero
	}
	return val | c.A
}

// fillCMOSFillerNOPs gives every opcode slot neither chip defines a new
// instruction for the WDC-documented NOP of the matching width, since
// unlike NMOS, CMOS silicon never jams on an unknown opcode. The widths
// reuse the same per-addressing-mode builders fillNMOSFillerNOPs wires for
// NMOS, since a throwaway operand fetch is a throwaway operand fetch
// regardless of which chip skips over it.
func fillCMOSFillerNOPs(t *Table) {
	s := &t.schedules
	for op := 0; op < 256; op++ {
		if s[op] != nil {
			continue
		}
		switch uint8(op) {
		case 0x44:
			s[op] = schedNOPZP()
		case 0x54, 0xD4, 0xF4:
			s[op] = schedNOPZPIndexed()
		case 0x5C, 0xDC, 0xFC:
			s[op] = schedNOPAbsolute8()
		case 0x02, 0x22, 0x42, 0x62, 0x82, 0xC2, 0xE2:
			s[op] = schedNOPImmediate()
		default:
			// WDC leaves RMB/SMB/BBR/BBS's opcode slots (low nibble 7/F)
			// undefined too; Rockwell fills them in a later pass over the
			// same nils, so on WDC they fall through to this 1-cycle form
			// alongside the rest of the $x3/$x7/$xB/$xF reserved slots.
			switch uint8(op) & 0x0F {
			case 0x03, 0x07, 0x0B, 0x0F:
				s[op] = schedNOPSingleCycle()
			default:
				s[op] = schedImplied(opNOP)
			}
		}
	}
}

// fillRockwellOnly layers RMB/SMB/BBR/BBS over the slots WDC just left as
// NOPs, and turns STP/WAI back into plain NOPs since the Rockwell part
// never implemented them.
func fillRockwellOnly(t *Table) {
	s := &t.schedules
	for n := uint(0); n < 8; n++ {
		rmbOp := uint8(0x07 + n*0x10)
		smbOp := uint8(0x87 + n*0x10)
		bbrOp := uint8(0x0F + n*0x10)
		bbsOp := uint8(0x8F + n*0x10)
		s[rmbOp] = schedZPRMW(rmbSmb(n, false))
		s[smbOp] = schedZPRMW(rmbSmb(n, true))
		s[bbrOp] = schedBitBranch(n, false)
		s[bbsOp] = schedBitBranch(n, true)
	}
	s[0xDB] = schedRockwellNOP()
	s[0xCB] = schedRockwellNOP()
}

// --- RMW forms for the indexed-indirect and indirect-indexed
// addressing modes, used only by the NMOS undocumented opcodes; no
// documented instruction needs these two combinations. ---

func schedIndirectXRMW(apply rmwApply) []microOp {
	return []microOp{
		fetchOpcode,
		func(c *CPU, b Bus) {
			c.TempAddress = uint16(fetchOperand(c, b))
		},
		func(c *CPU, b Bus) {
			b.Read(c.TempAddress)
			c.TempAddress = uint16(uint8(c.TempAddress) + c.X)
		},
		func(c *CPU, b Bus) {
			c.PenaltyAddress = uint16(b.Read(c.TempAddress))
		},
		func(c *CPU, b Bus) {
			hi := b.Read(uint16(uint8(c.TempAddress) + 1))
			c.TempAddress = uint16(hi)<<8 | c.PenaltyAddress
		},
		func(c *CPU, b Bus) {
			c.TempValue = uint16(b.Read(c.TempAddress))
		},
		func(c *CPU, b Bus) {
			b.Write(c.TempAddress, uint8(c.TempValue))
		},
		func(c *CPU, b Bus) {
			b.Write(c.TempAddress, apply(c, uint8(c.TempValue)))
		},
	}
}

func schedIndirectYRMW(apply rmwApply) []microOp {
	return []microOp{
		fetchOpcode,
		func(c *CPU, b Bus) {
			c.TempAddress = uint16(fetchOperand(c, b))
		},
		func(c *CPU, b Bus) {
			c.PenaltyAddress = uint16(b.Read(c.TempAddress))
		},
		func(c *CPU, b Bus) {
			hi := b.Read(uint16(uint8(c.TempAddress) + 1))
			c.TempAddress = uint16(hi)<<8 + c.PenaltyAddress + uint16(c.Y)
		},
		func(c *CPU, b Bus) {
			b.Read(c.TempAddress) // always paid, no conditional skip for RMW
		},
		func(c *CPU, b Bus) {
			c.TempValue = uint16(b.Read(c.TempAddress))
		},
		func(c *CPU, b Bus) {
			b.Write(c.TempAddress, uint8(c.TempValue))
		},
		func(c *CPU, b Bus) {
			b.Write(c.TempAddress, apply(c, uint8(c.TempValue)))
		},
	}
}
