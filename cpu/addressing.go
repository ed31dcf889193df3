package cpu

// This file builds the micro-op schedules for every addressing mode. Each
// builder returns a []microOp ending in whatever action the caller
// supplies (a read-and-use, a read-modify-write, or a store), matching
// the bus cycle count real silicon spends resolving that mode: one
// micro-op per cycle, in address order, with page-crossing and
// decimal-mode penalties inserted at runtime rather than baked into a
// separate schedule variant.

// readApply consumes an operand value fetched by an addressing mode and
// updates CPU state (the final cycle of a load/compare/ALU instruction).
type readApply func(c *CPU, b Bus, val uint8)

// rmwApply computes the new value of a read-modify-write instruction from
// the value just read; flags are updated inside it.
type rmwApply func(c *CPU, val uint8) uint8

// storeValue computes the byte a store instruction writes.
type storeValue func(c *CPU) uint8

// fetchOpcode is the first micro-op of every schedule: it performs the
// actual bus read of the opcode byte (the schedule itself was already
// selected via Peek) and advances PC past it.
func fetchOpcode(c *CPU, b Bus) {
	c.OpcodeAddress = c.PC
	c.CurrentOpcode = b.Read(c.PC)
	c.PC++
}

// fetchOperand reads the byte immediately following the opcode, the
// common second cycle of every multi-byte instruction.
func fetchOperand(c *CPU, b Bus) uint8 {
	v := b.Read(c.PC)
	c.PC++
	return v
}

// --- Implied / accumulator / stack-relative: no operand fetch ---

// schedImplied is for one-byte instructions whose single post-fetch cycle
// is a dummy read of the next opcode's address, discarded, then the
// operation runs. Real 6502 implied instructions always spend a second
// cycle this way.
func schedImplied(apply func(c *CPU, b Bus)) []microOp {
	return []microOp{
		fetchOpcode,
		func(c *CPU, b Bus) {
			b.Read(c.PC) // dummy read, discarded
			apply(c, b)
		},
	}
}

// --- Immediate ---

func schedImmediateRead(apply readApply) []microOp {
	return []microOp{
		fetchOpcode,
		func(c *CPU, b Bus) {
			v := fetchOperand(c, b)
			apply(c, b, v)
		},
	}
}

// --- Zero page ---

func schedZPRead(apply readApply) []microOp {
	return []microOp{
		fetchOpcode,
		func(c *CPU, b Bus) {
			c.TempAddress = uint16(fetchOperand(c, b))
		},
		func(c *CPU, b Bus) {
			v := b.Read(c.TempAddress)
			apply(c, b, v)
		},
	}
}

func schedZPStore(value storeValue) []microOp {
	return []microOp{
		fetchOpcode,
		func(c *CPU, b Bus) {
			c.TempAddress = uint16(fetchOperand(c, b))
		},
		func(c *CPU, b Bus) {
			b.Write(c.TempAddress, value(c))
		},
	}
}

func schedZPRMW(apply rmwApply) []microOp {
	return []microOp{
		fetchOpcode,
		func(c *CPU, b Bus) {
			c.TempAddress = uint16(fetchOperand(c, b))
		},
		func(c *CPU, b Bus) {
			c.TempValue = uint16(b.Read(c.TempAddress))
		},
		func(c *CPU, b Bus) {
			b.Write(c.TempAddress, uint8(c.TempValue)) // dummy write-back
		},
		func(c *CPU, b Bus) {
			b.Write(c.TempAddress, apply(c, uint8(c.TempValue)))
		},
	}
}

// indexSel picks the index register (X or Y) an indexed mode adds.
type indexSel func(c *CPU) uint8

func selX(c *CPU) uint8 { return c.X }
func selY(c *CPU) uint8 { return c.Y }

func schedZPIndexedRead(sel indexSel, apply readApply) []microOp {
	return []microOp{
		fetchOpcode,
		func(c *CPU, b Bus) {
			c.TempAddress = uint16(fetchOperand(c, b))
		},
		func(c *CPU, b Bus) {
			b.Read(c.TempAddress) // dummy read before index add
			c.TempAddress = uint16(uint8(c.TempAddress) + sel(c))
		},
		func(c *CPU, b Bus) {
			v := b.Read(c.TempAddress)
			apply(c, b, v)
		},
	}
}

func schedZPIndexedStore(sel indexSel, value storeValue) []microOp {
	return []microOp{
		fetchOpcode,
		func(c *CPU, b Bus) {
			c.TempAddress = uint16(fetchOperand(c, b))
		},
		func(c *CPU, b Bus) {
			b.Read(c.TempAddress)
			c.TempAddress = uint16(uint8(c.TempAddress) + sel(c))
		},
		func(c *CPU, b Bus) {
			b.Write(c.TempAddress, value(c))
		},
	}
}

func schedZPIndexedRMW(sel indexSel, apply rmwApply) []microOp {
	return []microOp{
		fetchOpcode,
		func(c *CPU, b Bus) {
			c.TempAddress = uint16(fetchOperand(c, b))
		},
		func(c *CPU, b Bus) {
			b.Read(c.TempAddress)
			c.TempAddress = uint16(uint8(c.TempAddress) + sel(c))
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

// --- Absolute ---

func schedAbsoluteRead(apply readApply) []microOp {
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
			v := b.Read(c.TempAddress)
			apply(c, b, v)
		},
	}
}

func schedAbsoluteStore(value storeValue) []microOp {
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
			b.Write(c.TempAddress, value(c))
		},
	}
}

func schedAbsoluteRMW(apply rmwApply) []microOp {
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

// schedAbsoluteIndexedRead resolves abs,X/abs,Y. The third cycle fetches
// the high operand byte and forms the corrected address; if the index
// addition crossed a page, a penalty cycle is spliced in with
// insertAfterCursor that dummy-reads the uncorrected wrong-page address
// (base high byte : low byte + index), before the final cycle reads the
// corrected address and apply runs.
func schedAbsoluteIndexedRead(sel indexSel, apply readApply) []microOp {
	return []microOp{
		fetchOpcode,
		func(c *CPU, b Bus) {
			c.TempAddress = uint16(fetchOperand(c, b))
		},
		func(c *CPU, b Bus) {
			hi := fetchOperand(c, b)
			base := uint16(hi)<<8 | (c.TempAddress & 0xFF)
			sum := (c.TempAddress & 0xFF) + uint16(sel(c))
			c.TempAddress = (uint16(hi) << 8) + uint16(sel(c)) + (c.TempAddress & 0xFF)
			crossed := sum > 0xFF
			wrong := base&0xFF00 | (c.TempAddress & 0xFF)
			if crossed {
				c.PenaltyAddress = wrong
				c.pipe.insertAfterCursor(func(c *CPU, b Bus) {
					b.Read(c.PenaltyAddress) // dummy read at wrong-page address
				})
			}
		},
		func(c *CPU, b Bus) {
			v := b.Read(c.TempAddress)
			apply(c, b, v)
		},
	}
}

// schedAbsoluteIndexedReadCMOS resolves abs,X/abs,Y the way WDC65C02 and
// Rockwell65C02 silicon does: on a page cross the extra cycle re-reads the
// instruction's own high-operand byte (a fixed, harmless address) rather
// than the NMOS wrong-page address, since the CMOS redesign fetches the
// correct address one cycle sooner and spends the spare cycle on an
// opcode-stream read instead of a speculative data read.
func schedAbsoluteIndexedReadCMOS(sel indexSel, apply readApply) []microOp {
	return []microOp{
		fetchOpcode,
		func(c *CPU, b Bus) {
			c.TempAddress = uint16(fetchOperand(c, b))
		},
		func(c *CPU, b Bus) {
			hi := fetchOperand(c, b)
			sum := (c.TempAddress & 0xFF) + uint16(sel(c))
			c.TempAddress = (uint16(hi) << 8) + uint16(sel(c)) + (c.TempAddress & 0xFF)
			if sum > 0xFF {
				c.pipe.insertAfterCursor(func(c *CPU, b Bus) {
					b.Read(c.OpcodeAddress + 2)
				})
			}
		},
		func(c *CPU, b Bus) {
			v := b.Read(c.TempAddress)
			apply(c, b, v)
		},
	}
}

func schedAbsoluteIndexedStore(sel indexSel, value storeValue) []microOp {
	return []microOp{
		fetchOpcode,
		func(c *CPU, b Bus) {
			c.TempAddress = uint16(fetchOperand(c, b))
		},
		func(c *CPU, b Bus) {
			hi := fetchOperand(c, b)
			c.TempAddress = (uint16(hi) << 8) + uint16(sel(c)) + (c.TempAddress & 0xFF)
		},
		func(c *CPU, b Bus) {
			b.Read(c.TempAddress) // store modes always pay the dummy cycle
		},
		func(c *CPU, b Bus) {
			b.Write(c.TempAddress, value(c))
		},
	}
}

func schedAbsoluteIndexedRMW(sel indexSel, apply rmwApply) []microOp {
	return []microOp{
		fetchOpcode,
		func(c *CPU, b Bus) {
			c.TempAddress = uint16(fetchOperand(c, b))
		},
		func(c *CPU, b Bus) {
			hi := fetchOperand(c, b)
			c.TempAddress = (uint16(hi) << 8) + uint16(sel(c)) + (c.TempAddress & 0xFF)
		},
		func(c *CPU, b Bus) {
			b.Read(c.TempAddress)
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

// --- Indexed indirect (zp,X) ---

func schedIndirectXRead(apply readApply) []microOp {
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
			c.TempValue = uint16(b.Read(c.TempAddress))
		},
		func(c *CPU, b Bus) {
			hi := b.Read(uint16(uint8(c.TempAddress) + 1))
			c.TempAddress = uint16(hi)<<8 | c.TempValue
		},
		func(c *CPU, b Bus) {
			v := b.Read(c.TempAddress)
			apply(c, b, v)
		},
	}
}

func schedIndirectXStore(value storeValue) []microOp {
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
			c.TempValue = uint16(b.Read(c.TempAddress))
		},
		func(c *CPU, b Bus) {
			hi := b.Read(uint16(uint8(c.TempAddress) + 1))
			c.TempAddress = uint16(hi)<<8 | c.TempValue
		},
		func(c *CPU, b Bus) {
			b.Write(c.TempAddress, value(c))
		},
	}
}

// --- Indirect indexed (zp),Y ---

func schedIndirectYRead(apply readApply) []microOp {
	return []microOp{
		fetchOpcode,
		func(c *CPU, b Bus) {
			c.TempAddress = uint16(fetchOperand(c, b))
		},
		func(c *CPU, b Bus) {
			c.TempValue = uint16(b.Read(c.TempAddress))
		},
		func(c *CPU, b Bus) {
			hi := b.Read(uint16(uint8(c.TempAddress) + 1))
			base := uint16(hi) << 8
			sum := c.TempValue + uint16(c.Y)
			c.TempAddress = base + sum
			if sum > 0xFF {
				c.PenaltyAddress = base | (sum & 0xFF)
				c.pipe.insertAfterCursor(func(c *CPU, b Bus) {
					b.Read(c.PenaltyAddress)
				})
			}
		},
		func(c *CPU, b Bus) {
			v := b.Read(c.TempAddress)
			apply(c, b, v)
		},
	}
}

// schedIndirectYReadCMOS is (zp),Y's CMOS counterpart to
// schedAbsoluteIndexedReadCMOS: the page-cross penalty cycle re-reads the
// instruction's high-operand byte instead of the NMOS wrong-page address.
func schedIndirectYReadCMOS(apply readApply) []microOp {
	return []microOp{
		fetchOpcode,
		func(c *CPU, b Bus) {
			c.TempAddress = uint16(fetchOperand(c, b))
		},
		func(c *CPU, b Bus) {
			c.TempValue = uint16(b.Read(c.TempAddress))
		},
		func(c *CPU, b Bus) {
			hi := b.Read(uint16(uint8(c.TempAddress) + 1))
			base := uint16(hi) << 8
			sum := c.TempValue + uint16(c.Y)
			c.TempAddress = base + sum
			if sum > 0xFF {
				c.pipe.insertAfterCursor(func(c *CPU, b Bus) {
					b.Read(c.OpcodeAddress + 2)
				})
			}
		},
		func(c *CPU, b Bus) {
			v := b.Read(c.TempAddress)
			apply(c, b, v)
		},
	}
}

func schedIndirectYStore(value storeValue) []microOp {
	return []microOp{
		fetchOpcode,
		func(c *CPU, b Bus) {
			c.TempAddress = uint16(fetchOperand(c, b))
		},
		func(c *CPU, b Bus) {
			c.TempValue = uint16(b.Read(c.TempAddress))
		},
		func(c *CPU, b Bus) {
			hi := b.Read(uint16(uint8(c.TempAddress) + 1))
			base := uint16(hi) << 8
			sum := c.TempValue + uint16(c.Y)
			c.TempAddress = base + sum
		},
		func(c *CPU, b Bus) {
			b.Read(c.TempAddress) // store mode always pays the penalty cycle
		},
		func(c *CPU, b Bus) {
			b.Write(c.TempAddress, value(c))
		},
	}
}

// --- 65C02/Rockwell indirect zero page (zp), no index ---

func schedZPIndirectRead(apply readApply) []microOp {
	return []microOp{
		fetchOpcode,
		func(c *CPU, b Bus) {
			c.TempAddress = uint16(fetchOperand(c, b))
		},
		func(c *CPU, b Bus) {
			c.TempValue = uint16(b.Read(c.TempAddress))
		},
		func(c *CPU, b Bus) {
			hi := b.Read(uint16(uint8(c.TempAddress) + 1))
			c.TempAddress = uint16(hi)<<8 | c.TempValue
		},
		func(c *CPU, b Bus) {
			v := b.Read(c.TempAddress)
			apply(c, b, v)
		},
	}
}

func schedZPIndirectStore(value storeValue) []microOp {
	return []microOp{
		fetchOpcode,
		func(c *CPU, b Bus) {
			c.TempAddress = uint16(fetchOperand(c, b))
		},
		func(c *CPU, b Bus) {
			c.TempValue = uint16(b.Read(c.TempAddress))
		},
		func(c *CPU, b Bus) {
			hi := b.Read(uint16(uint8(c.TempAddress) + 1))
			c.TempAddress = uint16(hi)<<8 | c.TempValue
		},
		func(c *CPU, b Bus) {
			b.Write(c.TempAddress, value(c))
		},
	}
}
