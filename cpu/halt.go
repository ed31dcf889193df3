package cpu

// Control flow (JMP/JSR/RTS/RTI/BRK) and the halt-class instructions
// (STP/WAI and NMOS illegal JAM opcodes).

func schedJMPAbsolute() []microOp {
	return []microOp{
		fetchOpcode,
		func(c *CPU, b Bus) {
			c.TempAddress = uint16(fetchOperand(c, b))
		},
		func(c *CPU, b Bus) {
			hi := fetchOperand(c, b)
			c.PC = uint16(hi)<<8 | c.TempAddress
		},
	}
}

// schedJMPIndirect resolves JMP (abs). NMOS has the famous page-wrap bug:
// if the pointer's low byte is 0xFF, the high byte is fetched from the
// start of the same page instead of the next one. CMOS fixes the bug by
// spending one extra cycle to fetch the pointer correctly.
func schedJMPIndirect(variant Variant) []microOp {
	base := []microOp{
		fetchOpcode,
		func(c *CPU, b Bus) {
			c.TempAddress = uint16(fetchOperand(c, b))
		},
		func(c *CPU, b Bus) {
			hi := fetchOperand(c, b)
			c.TempAddress |= uint16(hi) << 8
		},
	}
	if variant.isCMOS() {
		return append(base,
			func(c *CPU, b Bus) {
				b.Read(c.TempAddress) // extra cycle paid for the bugfix
			},
			func(c *CPU, b Bus) {
				c.TempValue = uint16(b.Read(c.TempAddress))
			},
			func(c *CPU, b Bus) {
				hi := b.Read(c.TempAddress + 1)
				c.PC = uint16(hi)<<8 | c.TempValue
			},
		)
	}
	return append(base,
		func(c *CPU, b Bus) {
			c.TempValue = uint16(b.Read(c.TempAddress))
		},
		func(c *CPU, b Bus) {
			hiAddr := (c.TempAddress & 0xFF00) | uint16(uint8(c.TempAddress)+1)
			hi := b.Read(hiAddr)
			c.PC = uint16(hi)<<8 | c.TempValue
		},
	)
}

// schedJMPIndexedIndirect resolves the 65C02 JMP (abs,X), reading the
// pointer from base+X with no page-wrap bug (the index addition is done
// as a full 16 bit add before the indirection).
func schedJMPIndexedIndirect() []microOp {
	return []microOp{
		fetchOpcode,
		func(c *CPU, b Bus) {
			c.TempAddress = uint16(fetchOperand(c, b))
		},
		func(c *CPU, b Bus) {
			hi := fetchOperand(c, b)
			c.TempAddress |= uint16(hi) << 8
		},
		func(c *CPU, b Bus) {
			b.Read(c.PC) // internal cycle forming base+X
			c.TempAddress += uint16(c.X)
		},
		func(c *CPU, b Bus) {
			c.TempValue = uint16(b.Read(c.TempAddress))
		},
		func(c *CPU, b Bus) {
			hi := b.Read(c.TempAddress + 1)
			c.PC = uint16(hi)<<8 | c.TempValue
		},
	}
}

// schedJSR is the classic 6 cycle subroutine call: fetch low, a dummy
// stack read/internal cycle, push PC high then low (PC now pointing at
// the last byte of the operand, per silicon), then fetch the high byte
// and jump.
func schedJSR() []microOp {
	return []microOp{
		fetchOpcode,
		func(c *CPU, b Bus) {
			c.TempAddress = uint16(fetchOperand(c, b))
		},
		func(c *CPU, b Bus) {
			b.Read(stackBase | uint16(c.S)) // internal delay
		},
		func(c *CPU, b Bus) {
			c.pushStack(b, uint8(c.PC>>8))
		},
		func(c *CPU, b Bus) {
			c.pushStack(b, uint8(c.PC))
		},
		func(c *CPU, b Bus) {
			hi := b.Read(c.PC)
			c.PC = uint16(hi)<<8 | c.TempAddress
		},
	}
}

func schedRTS() []microOp {
	return []microOp{
		fetchOpcode,
		func(c *CPU, b Bus) { b.Read(c.PC) },
		func(c *CPU, b Bus) { b.Read(stackBase | uint16(c.S)) },
		func(c *CPU, b Bus) {
			c.TempAddress = uint16(c.popStack(b))
		},
		func(c *CPU, b Bus) {
			hi := c.popStack(b)
			c.PC = uint16(hi)<<8 | c.TempAddress
		},
		func(c *CPU, b Bus) {
			b.Read(c.PC)
			c.PC++
		},
	}
}

func schedRTI() []microOp {
	return []microOp{
		fetchOpcode,
		func(c *CPU, b Bus) { b.Read(c.PC) },
		func(c *CPU, b Bus) { b.Read(stackBase | uint16(c.S)) },
		func(c *CPU, b Bus) {
			v := c.popStack(b)
			c.P = (v &^ FlagBreak) | FlagUnused
		},
		func(c *CPU, b Bus) {
			c.TempAddress = uint16(c.popStack(b))
		},
		func(c *CPU, b Bus) {
			hi := c.popStack(b)
			c.PC = uint16(hi)<<8 | c.TempAddress
		},
	}
}

// schedBRK is a 7 cycle software interrupt: fetch (and discard) a padding
// byte, then the same push sequence as a hardware interrupt but with B
// set in the pushed P, vectoring to NMI instead of IRQ if an NMI raced in
// ahead of the BRK at the instruction boundary.
func schedBRK() []microOp {
	return []microOp{
		fetchOpcode,
		func(c *CPU, b Bus) {
			b.Read(c.PC) // padding byte, discarded; PC still advances
			c.PC++
		},
		func(c *CPU, b Bus) {
			c.pushStack(b, uint8(c.PC>>8))
		},
		func(c *CPU, b Bus) {
			c.pushStack(b, uint8(c.PC))
		},
		func(c *CPU, b Bus) {
			c.pushStack(b, c.P|FlagUnused|FlagBreak)
			if c.variant.isCMOS() {
				c.P &^= FlagDecimal
			}
			c.P |= FlagInterrupt
		},
		func(c *CPU, b Bus) {
			vector := IRQVector
			if c.Pending == PendingNMI {
				vector = NMIVector
				c.Pending = PendingNone
			}
			c.TempAddress = vector
			c.TempValue = uint16(b.Read(vector))
		},
		func(c *CPU, b Bus) {
			hi := b.Read(c.TempAddress + 1)
			c.PC = uint16(hi)<<8 | c.TempValue
		},
	}
}

// schedSTP halts the processor (WDC/Rockwell STP). On NMOS the opcode
// (0xDB) is simply illegal and unused here; on classic NMOS-without-CMOS
// builds the decode table never routes an opcode to this builder.
func schedSTP(options Options) []microOp {
	return []microOp{
		fetchOpcode,
		func(c *CPU, b Bus) {
			if options.IgnoreHaltStopWait {
				c.Status = Bypassed
				return
			}
			c.Status = Stopped
		},
	}
}

// schedWAI suspends the processor until an interrupt is serviced: the
// instruction completes after its second cycle with Status set to
// Waiting, and from then on Clock returns true without any bus activity
// until HandlePendingInterrupt services a pending interrupt (an IRQ too,
// even with I set) and restores Running.
func schedWAI(options Options) []microOp {
	return []microOp{
		fetchOpcode,
		func(c *CPU, b Bus) {
			if options.IgnoreHaltStopWait {
				c.Status = Bypassed
				return
			}
			c.Status = Waiting
		},
	}
}

// schedJAM models the NMOS illegal halt opcodes: the processor locks up
// and only a reset recovers it.
func schedJAM(options Options) []microOp {
	return []microOp{
		fetchOpcode,
		func(c *CPU, b Bus) {
			if options.IgnoreHaltStopWait {
				c.Status = Bypassed
				return
			}
			c.Status = Jammed
		},
	}
}

// schedRockwellNOP is what WAI/STP become on the Rockwell variant: plain
// two cycle NOPs, since that silicon never implemented the halt opcodes.
func schedRockwellNOP() []microOp {
	return schedImplied(opNOP)
}
