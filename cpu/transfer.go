package cpu

// Register transfers, increment/decrement, flag set/clear, stack push and
// pull, and NOP: all implied-addressing, all built with schedImplied
// except the stack ops which have their own cycle counts.

// The 6502 transfer instructions each have a fixed, distinct source and
// destination, so rather than thread a generic register-pair table
// through here, each is spelled out directly; this matches how plainly
// the teacher's switch-based dispatch lists them.

func opTAX(c *CPU, b Bus) { c.X = c.A; c.setZN(c.X) }
func opTAY(c *CPU, b Bus) { c.Y = c.A; c.setZN(c.Y) }
func opTXA(c *CPU, b Bus) { c.A = c.X; c.setZN(c.A) }
func opTYA(c *CPU, b Bus) { c.A = c.Y; c.setZN(c.A) }
func opTSX(c *CPU, b Bus) { c.X = c.S; c.setZN(c.X) }
func opTXS(c *CPU, b Bus) { c.S = c.X } // does not touch flags

func opINX(c *CPU, b Bus) { c.X++; c.setZN(c.X) }
func opDEX(c *CPU, b Bus) { c.X--; c.setZN(c.X) }
func opINY(c *CPU, b Bus) { c.Y++; c.setZN(c.Y) }
func opDEY(c *CPU, b Bus) { c.Y--; c.setZN(c.Y) }

// opINCA/opDECA are the 65C02/Rockwell accumulator increment/decrement,
// absent on NMOS where those opcodes are NOPs or illegal.
func opINCA(c *CPU, b Bus) { c.A++; c.setZN(c.A) }
func opDECA(c *CPU, b Bus) { c.A--; c.setZN(c.A) }

func opCLC(c *CPU, b Bus) { c.P &^= FlagCarry }
func opSEC(c *CPU, b Bus) { c.P |= FlagCarry }
func opCLI(c *CPU, b Bus) { c.P &^= FlagInterrupt }
func opSEI(c *CPU, b Bus) { c.P |= FlagInterrupt }
func opCLV(c *CPU, b Bus) { c.P &^= FlagOverflow }
func opCLD(c *CPU, b Bus) { c.P &^= FlagDecimal }
func opSED(c *CPU, b Bus) { c.P |= FlagDecimal }

// opNOP is a bare implied instruction, used both for the genuine NOP
// opcode and every WDC-documented single-byte NOP filler.
func opNOP(c *CPU, b Bus) {}

// schedNOPImmediate/schedNOPZP/schedNOPAbsolute give the 65C02's
// undefined-opcode NOP fillers the exact cycle counts WDC documents for
// them: a throwaway operand fetch of the matching width, no effect.
func schedNOPImmediate() []microOp {
	return schedImmediateRead(func(c *CPU, b Bus, val uint8) {})
}

func schedNOPZP() []microOp {
	return schedZPRead(func(c *CPU, b Bus, val uint8) {})
}

func schedNOPAbsolute() []microOp {
	return schedAbsoluteRead(func(c *CPU, b Bus, val uint8) {})
}

func schedNOPZPIndexed() []microOp {
	return schedZPIndexedRead(selX, func(c *CPU, b Bus, val uint8) {})
}

func schedNOPAbsoluteIndexed() []microOp {
	return schedAbsoluteIndexedRead(selX, func(c *CPU, b Bus, val uint8) {})
}

// schedNOPSingleCycle is the WDC/Rockwell reserved-opcode NOP that never
// even spends a second cycle reading the next opcode byte: the slots
// ending in $3/$7/$B/$F that neither chip gave a defined instruction to.
func schedNOPSingleCycle() []microOp {
	return []microOp{fetchOpcode}
}

// schedNOPAbsolute8 is the WDC-documented 8 cycle NOP ($5C and the two
// absolute,X-style slots that share its filler treatment here): a 3 byte
// fetch followed by a run of discarded reads that never touch guest state.
func schedNOPAbsolute8() []microOp {
	return []microOp{
		fetchOpcode,
		func(c *CPU, b Bus) {
			c.TempAddress = uint16(fetchOperand(c, b))
		},
		func(c *CPU, b Bus) {
			hi := fetchOperand(c, b)
			c.TempAddress |= uint16(hi) << 8
		},
		func(c *CPU, b Bus) { b.Read(c.TempAddress) },
		func(c *CPU, b Bus) { b.Read(0xFFFF) },
		func(c *CPU, b Bus) { b.Read(0xFFFF) },
		func(c *CPU, b Bus) { b.Read(0xFFFF) },
		func(c *CPU, b Bus) { b.Read(0xFFFF) },
	}
}

// --- Stack ---

func schedPHA() []microOp {
	return []microOp{
		fetchOpcode,
		func(c *CPU, b Bus) {
			b.Read(c.PC) // dummy read
		},
		func(c *CPU, b Bus) {
			c.pushStack(b, c.A)
		},
	}
}

func schedPHX() []microOp {
	return []microOp{
		fetchOpcode,
		func(c *CPU, b Bus) { b.Read(c.PC) },
		func(c *CPU, b Bus) { c.pushStack(b, c.X) },
	}
}

func schedPHY() []microOp {
	return []microOp{
		fetchOpcode,
		func(c *CPU, b Bus) { b.Read(c.PC) },
		func(c *CPU, b Bus) { c.pushStack(b, c.Y) },
	}
}

func schedPHP() []microOp {
	return []microOp{
		fetchOpcode,
		func(c *CPU, b Bus) { b.Read(c.PC) },
		func(c *CPU, b Bus) {
			c.pushStack(b, c.P|FlagUnused|FlagBreak)
		},
	}
}

func schedPLA() []microOp {
	return []microOp{
		fetchOpcode,
		func(c *CPU, b Bus) { b.Read(c.PC) },
		func(c *CPU, b Bus) { b.Read(stackBase | uint16(c.S)) },
		func(c *CPU, b Bus) {
			c.A = c.popStack(b)
			c.setZN(c.A)
		},
	}
}

func schedPLX() []microOp {
	return []microOp{
		fetchOpcode,
		func(c *CPU, b Bus) { b.Read(c.PC) },
		func(c *CPU, b Bus) { b.Read(stackBase | uint16(c.S)) },
		func(c *CPU, b Bus) {
			c.X = c.popStack(b)
			c.setZN(c.X)
		},
	}
}

func schedPLY() []microOp {
	return []microOp{
		fetchOpcode,
		func(c *CPU, b Bus) { b.Read(c.PC) },
		func(c *CPU, b Bus) { b.Read(stackBase | uint16(c.S)) },
		func(c *CPU, b Bus) {
			c.Y = c.popStack(b)
			c.setZN(c.Y)
		},
	}
}

func schedPLP() []microOp {
	return []microOp{
		fetchOpcode,
		func(c *CPU, b Bus) { b.Read(c.PC) },
		func(c *CPU, b Bus) { b.Read(stackBase | uint16(c.S)) },
		func(c *CPU, b Bus) {
			v := c.popStack(b)
			c.P = (v &^ FlagBreak) | FlagUnused
		},
	}
}
