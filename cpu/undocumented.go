package cpu

import "math/rand"

// NMOS undocumented opcodes. These only ever get wired into the decode
// table for NMOS6502; NMOS6502NoUndocumented maps every one of these
// opcode slots to JAM instead (see fillNMOSFillerAsNOP), and neither CMOS
// variant has them at all.

// lax loads both A and X from the operand in one instruction, the
// documented behavior of the otherwise-illegal opcode.
func lax(c *CPU, b Bus, val uint8) {
	c.A = val
	c.X = val
	c.setZN(val)
}

// saxVal stores A&X, used by SAX's store-family schedule.
func saxVal(c *CPU) uint8 { return c.A & c.X }

// dcp decrements memory then compares it against A (DEC+CMP fused).
func dcp(c *CPU, val uint8) uint8 {
	res := val - 1
	diff := uint16(c.A) - uint16(res)
	c.P &^= FlagCarry
	if c.A >= res {
		c.P |= FlagCarry
	}
	c.setZN(uint8(diff))
	return res
}

// iscApply performs INC then runs SBC's arithmetic against the
// incremented value (INC+SBC fused).
func iscApply(c *CPU, val uint8) uint8 {
	res := val + 1
	sbc(c, nil, res)
	return res
}

func sloApply(c *CPU, val uint8) uint8 {
	res := asl(c, val)
	c.A |= res
	c.setZN(c.A)
	return res
}

func rlaApply(c *CPU, val uint8) uint8 {
	res := rol(c, val)
	c.A &= res
	c.setZN(c.A)
	return res
}

func sreApply(c *CPU, val uint8) uint8 {
	res := lsr(c, val)
	c.A ^= res
	c.setZN(c.A)
	return res
}

func rraApply(c *CPU, val uint8) uint8 {
	res := ror(c, val)
	adc(c, nil, res)
	return res
}

// anc is AND #imm followed by copying N into C, as if the result had
// been shifted into carry.
func anc(c *CPU, b Bus, val uint8) {
	c.A &= val
	c.setZN(c.A)
	c.P &^= FlagCarry
	if c.A&0x80 != 0 {
		c.P |= FlagCarry
	}
}

// alr is AND #imm then LSR A.
func alr(c *CPU, b Bus, val uint8) {
	c.A &= val
	c.A = lsr(c, c.A)
}

// arr is AND #imm then ROR A, with C/V set from a quirky combination of
// the pre-rotate bits rather than the rotate's own carry-out.
func arr(c *CPU, b Bus, val uint8) {
	c.A &= val
	if c.P&FlagDecimal != 0 {
		arrDecimal(c)
		return
	}
	carryIn := uint8(0)
	if c.P&FlagCarry != 0 {
		carryIn = 0x80
	}
	res := (c.A >> 1) | carryIn
	c.setZN(res)
	c.P &^= FlagCarry | FlagOverflow
	if res&0x40 != 0 {
		c.P |= FlagCarry
	}
	if (res>>6)^(res>>5)&1 != 0 {
		c.P |= FlagOverflow
	}
	c.A = res
}

func arrDecimal(c *CPU) {
	carryIn := uint8(0)
	if c.P&FlagCarry != 0 {
		carryIn = 0x80
	}
	unrotated := c.A
	res := (unrotated >> 1) | carryIn
	c.setZN(res)
	c.P &^= FlagOverflow
	if (res>>6)^(res>>5)&1 != 0 {
		c.P |= FlagOverflow
	}
	lo := unrotated & 0x0F
	if carryIn != 0 {
		lo |= 0x10
	}
	if lo > 0x05 {
		res = (res & 0xF0) | ((res + 6) & 0x0F)
	}
	c.P &^= FlagCarry
	if unrotated&0xF0 > 0x50 || (unrotated&0xF0 == 0x50 && unrotated&0x0F > 5) {
		res += 0x60
		c.P |= FlagCarry
	}
	c.A = res
}

// axs (also called SBX) computes (A&X) - #imm into X, setting C as if an
// unsigned subtraction without borrow-in occurred; no decimal mode.
func axs(c *CPU, b Bus, val uint8) {
	base := c.A & c.X
	diff := uint16(base) - uint16(val)
	c.P &^= FlagCarry
	if base >= val {
		c.P |= FlagCarry
	}
	c.X = uint8(diff)
	c.setZN(c.X)
}

// xaa (ANE) is notoriously unstable on real silicon, depending on analog
// bus capacitance; this models the commonly documented (A|magic)&X&val
// approximation with a fixed magic constant.
func xaa(c *CPU, b Bus, val uint8) {
	const magic = 0xEE
	c.A = (c.A | magic) & c.X & val
	c.setZN(c.A)
}

// lxa (LAX #imm / OAL) is similarly unstable; this models it as a 50/50
// split between the XAA-style constant-OR behavior and a clean (X=A=val)
// load, matching commonly observed chip behavior.
func lxa(c *CPU, b Bus, val uint8) {
	const magic = 0xEE
	if rand.Intn(2) == 0 {
		c.A = (c.A | magic) & val
	} else {
		c.A = val
	}
	c.X = c.A
	c.setZN(c.A)
}

// las ANDs the stack pointer with the operand and loads the result into
// A, X, and S all at once.
func las(c *CPU, b Bus, val uint8) {
	res := c.S & val
	c.A, c.X, c.S = res, res, res
	c.setZN(res)
}

// unstableStoreVal implements the SHA/SHX/SHY/TAS family: the stored
// value is reg&(high byte of the effective address + 1), and on a page
// crossing the address's high byte used for the AND is itself corrupted
// to the ANDed value (an address bus glitch this reference does not
// attempt to model beyond the documented non-page-crossing behavior).
func unstableStoreVal(reg func(c *CPU) uint8, addrHi func(c *CPU) uint8) storeValue {
	return func(c *CPU) uint8 {
		return reg(c) & (addrHi(c) + 1)
	}
}

func effectiveAddrHi(c *CPU) uint8 { return uint8(c.TempAddress >> 8) }

// tasVal additionally loads S with A&X before computing the stored byte.
func tasVal(c *CPU) uint8 {
	c.S = c.A & c.X
	return c.S & (effectiveAddrHi(c) + 1)
}
