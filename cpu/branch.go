package cpu

// Relative branches. The base schedule is only two cycles (fetch opcode,
// fetch offset and test the condition); a taken branch splices in a third
// cycle with insertAfterCursor, and a taken branch that also crosses a
// page splices in a fourth with appendEnd, exactly the two penalty
// primitives the pipeline exists to support.

type branchCond func(c *CPU) bool

func schedBranch(cond branchCond) []microOp {
	return []microOp{
		fetchOpcode,
		func(c *CPU, b Bus) {
			offset := int8(fetchOperand(c, b))
			if !cond(c) {
				return
			}
			oldPC := c.PC
			newPC := uint16(int32(oldPC) + int32(offset))
			c.BranchOldPC = oldPC
			c.TempAddress = newPC
			c.pipe.insertAfterCursor(func(c *CPU, b Bus) {
				b.Read(oldPC)
				if oldPC&0xFF00 == c.TempAddress&0xFF00 {
					c.PC = c.TempAddress
					return
				}
				wrong := oldPC&0xFF00 | (c.TempAddress & 0x00FF)
				c.PenaltyAddress = wrong
				c.pipe.appendEnd(func(c *CPU, b Bus) {
					b.Read(c.PenaltyAddress)
					c.PC = c.TempAddress
				})
			})
		},
	}
}

func condCC(c *CPU) bool { return c.PrevP&FlagCarry == 0 }
func condCS(c *CPU) bool { return c.PrevP&FlagCarry != 0 }
func condEQ(c *CPU) bool { return c.PrevP&FlagZero != 0 }
func condNE(c *CPU) bool { return c.PrevP&FlagZero == 0 }
func condPL(c *CPU) bool { return c.PrevP&FlagNegative == 0 }
func condMI(c *CPU) bool { return c.PrevP&FlagNegative != 0 }
func condVC(c *CPU) bool { return c.PrevP&FlagOverflow == 0 }
func condVS(c *CPU) bool { return c.PrevP&FlagOverflow != 0 }
func condAlways(c *CPU) bool { return true } // 65C02 BRA

// schedBitBranch implements Rockwell BBR/BBS: test bit n of the zero
// page operand, then branch relative if it matches setWhen. Unlike a
// plain branch this form always pays for the zero page read regardless
// of outcome, so only the branch-taken cycle is conditionally appended.
func schedBitBranch(n uint, setWhen bool) []microOp {
	return []microOp{
		fetchOpcode,
		func(c *CPU, b Bus) {
			c.TempAddress = uint16(fetchOperand(c, b))
		},
		func(c *CPU, b Bus) {
			c.TempValue = uint16(b.Read(c.TempAddress))
		},
		func(c *CPU, b Bus) {
			offset := int8(fetchOperand(c, b))
			bitSet := uint8(c.TempValue)&(1<<n) != 0
			if bitSet != setWhen {
				return
			}
			oldPC := c.PC
			newPC := uint16(int32(oldPC) + int32(offset))
			c.pipe.appendEnd(func(c *CPU, b Bus) {
				b.Read(oldPC)
				c.PC = newPC
			})
		},
	}
}
