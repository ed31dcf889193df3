package cpu

// Accumulator ALU operations: ADC/SBC (with full decimal-mode handling,
// distinct between NMOS and CMOS semantics), AND/ORA/EOR, BIT, and the
// compare family. Each is a readApply bound to c.A by the decode table.

// adc applies binary or decimal addition with carry, matching the
// NMOS/CMOS divergence: NMOS computes N/Z/V from the raw binary
// intermediate even in decimal mode (a well known silicon quirk) and
// never spends an extra cycle; CMOS computes flags from the corrected
// BCD result and spends one extra bus cycle doing so, a penalty read that
// payDecimalPenalty splices into the running schedule.
func adc(c *CPU, b Bus, val uint8) {
	if c.P&FlagDecimal != 0 {
		adcDecimal(c, val)
		payDecimalPenalty(c)
		return
	}
	adcBinary(c, val)
}

// payDecimalPenalty splices in the extra bus cycle a CMOS part spends
// re-reading while it corrects BCD flags; NMOS never pays it. The address
// read is fixed per part (WDC always reads $007F; Rockwell reads $0059 for
// the immediate form) or, for every other addressing mode, the operand
// address already resolved into c.TempAddress.
func payDecimalPenalty(c *CPU) {
	if !c.variant.isCMOS() {
		return
	}
	c.pipe.insertAfterCursor(func(c *CPU, b Bus) {
		b.Read(decimalPenaltyAddress(c))
	})
}

func decimalPenaltyAddress(c *CPU) uint16 {
	switch c.variant {
	case WDC65C02:
		return 0x007F
	case Rockwell65C02:
		if isImmediateOpcode(c.CurrentOpcode) {
			return 0x0059
		}
		return c.TempAddress
	default:
		return c.TempAddress
	}
}

func isImmediateOpcode(opcode uint8) bool {
	switch opcode {
	case 0x69, 0xE9, 0xEB:
		return true
	default:
		return false
	}
}

func adcBinary(c *CPU, val uint8) {
	carry := uint16(0)
	if c.P&FlagCarry != 0 {
		carry = 1
	}
	a := c.A
	sum := uint16(a) + uint16(val) + carry
	c.setOverflow(a, val, uint8(sum))
	c.setCarry(sum)
	c.A = uint8(sum)
	c.setZN(c.A)
}

func adcDecimal(c *CPU, val uint8) {
	carry := uint16(0)
	if c.P&FlagCarry != 0 {
		carry = 1
	}
	a := c.A
	binSum := uint16(a) + uint16(val) + carry

	lo := (a & 0x0F) + (val & 0x0F) + uint8(carry)
	hi := (a >> 4) + (val >> 4)
	if lo > 9 {
		lo += 6
		hi++
	}
	carryOut := false
	if hi > 9 {
		hi += 6
		carryOut = true
	}
	result := (hi << 4) | (lo & 0x0F)

	if !c.variant.isCMOS() {
		// NMOS: N/Z/V are derived from the binary sum, not the BCD result.
		c.setOverflow(a, val, uint8(binSum))
		c.P &^= FlagZero | FlagNegative
		if uint8(binSum) == 0 {
			c.P |= FlagZero
		}
		if binSum&0x80 != 0 {
			c.P |= FlagNegative
		}
	} else {
		c.setOverflow(a, val, result)
		c.setZN(result)
	}
	c.P &^= FlagCarry
	if carryOut {
		c.P |= FlagCarry
	}
	c.A = result
}

// sbc mirrors adc: binary subtraction is addition of the ones'
// complement; decimal subtraction corrects each nibble downward instead
// of up.
func sbc(c *CPU, b Bus, val uint8) {
	if c.P&FlagDecimal != 0 {
		sbcDecimal(c, val)
		payDecimalPenalty(c)
		return
	}
	adcBinary(c, ^val)
}

func sbcDecimal(c *CPU, val uint8) {
	carry := uint16(0)
	if c.P&FlagCarry != 0 {
		carry = 1
	}
	a := c.A
	binDiff := int16(a) - int16(val) - int16(1-carry)

	loNib := int16(a&0x0F) - int16(val&0x0F) - int16(1-carry)
	hiNib := int16(a>>4) - int16(val>>4)
	if loNib < 0 {
		loNib -= 6
		hiNib--
	}
	if hiNib < 0 {
		hiNib -= 6
	}
	result := uint8(hiNib<<4) | uint8(loNib&0x0F)

	carryOut := binDiff >= 0
	if !c.variant.isCMOS() {
		c.setOverflow(a, ^val, uint8(binDiff))
		c.P &^= FlagZero | FlagNegative
		if uint8(binDiff) == 0 {
			c.P |= FlagZero
		}
		if uint8(binDiff)&0x80 != 0 {
			c.P |= FlagNegative
		}
	} else {
		c.setOverflow(a, ^val, uint8(binDiff))
		c.setZN(result)
	}
	c.P &^= FlagCarry
	if carryOut {
		c.P |= FlagCarry
	}
	c.A = result
}

func and(c *CPU, b Bus, val uint8) {
	c.A &= val
	c.setZN(c.A)
}

func ora(c *CPU, b Bus, val uint8) {
	c.A |= val
	c.setZN(c.A)
}

func eor(c *CPU, b Bus, val uint8) {
	c.A ^= val
	c.setZN(c.A)
}

// bit sets Z from A&val, and for the non-immediate forms additionally
// copies bits 7 and 6 of val into N and V; BIT #imm (65C02 only) leaves N
// and V untouched, matching real silicon.
func bit(c *CPU, b Bus, val uint8) {
	c.P &^= FlagZero
	if c.A&val == 0 {
		c.P |= FlagZero
	}
	c.P &^= FlagNegative | FlagOverflow
	c.P |= val & (FlagNegative | FlagOverflow)
}

func bitImmediate(c *CPU, b Bus, val uint8) {
	c.P &^= FlagZero
	if c.A&val == 0 {
		c.P |= FlagZero
	}
}

func compareWith(reg func(c *CPU) uint8) readApply {
	return func(c *CPU, b Bus, val uint8) {
		r := reg(c)
		diff := uint16(r) - uint16(val)
		c.P &^= FlagCarry
		if r >= val {
			c.P |= FlagCarry
		}
		c.setZN(uint8(diff))
	}
}

var (
	cmpA = compareWith(func(c *CPU) uint8 { return c.A })
	cmpX = compareWith(func(c *CPU) uint8 { return c.X })
	cmpY = compareWith(func(c *CPU) uint8 { return c.Y })
)

// lda/ldx/ldy are readApply; sta/stx/sty are storeValue.
func lda(c *CPU, b Bus, val uint8) { c.A = val; c.setZN(c.A) }
func ldx(c *CPU, b Bus, val uint8) { c.X = val; c.setZN(c.X) }
func ldy(c *CPU, b Bus, val uint8) { c.Y = val; c.setZN(c.Y) }

func staVal(c *CPU) uint8 { return c.A }
func stxVal(c *CPU) uint8 { return c.X }
func styVal(c *CPU) uint8 { return c.Y }

// stzVal implements 65C02 STZ: always stores zero.
func stzVal(c *CPU) uint8 { return 0 }
