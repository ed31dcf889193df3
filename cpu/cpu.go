package cpu

// CPU is the register file, scratch state and pipeline cursor for one
// 65xx-family processor instance. The decode tables it dispatches through
// are immutable after construction and may be shared across instances of
// the same Variant.
//
// Persisted state layout, if a host wants to serialize: the register
// file (A, X, Y, P, S, PC, Status), the scratch fields (TempAddress,
// TempValue, CurrentOpcode, OpcodeAddress), the pipeline cursor/length
// (instruction completion is cursor == length; there is no separate
// completion flag), and Pending. The working buffer need not be
// serialized if serialization happens only at an instruction boundary,
// where cursor == length.
type CPU struct {
	// Register file.
	A, X, Y uint8
	P       uint8
	S       uint8
	PC      uint16
	Status  Status

	// Pending is the latched interrupt slot, serviced at instruction
	// boundaries by HandlePendingInterrupt.
	Pending Pending

	// Scratch state, not guest-visible.
	TempAddress   uint16
	TempValue     uint16
	CurrentOpcode uint8
	OpcodeAddress uint16
	PenaltyAddress uint16
	BranchOldPC   uint16

	// PrevP/PrevPC are the committed flag byte and PC at the start of the
	// current instruction, refreshed once per instruction so branch
	// predicates see pre-instruction flags without paying for a full
	// snapshot every cycle.
	PrevP  uint8
	PrevPC uint16

	variant Variant
	options Options
	table   *Table
	pipe    pipeline
}

// New constructs a CPU of the given variant bound to table (see
// NewTable, which a host can build once and share across many CPU
// instances of the same variant) and performs the power-on Reset
// sequence against b, the same bus the host will continue to pass to
// Clock/Step.
func New(variant Variant, table *Table, options Options, b Bus) (*CPU, error) {
	if variant <= variantUnimplemented || variant >= variantMax {
		return nil, InvalidState{Reason: "variant out of range"}
	}
	c := &CPU{
		variant: variant,
		options: options,
		table:   table,
	}
	c.Reset(b)
	return c, nil
}

// Variant returns the CPU's fixed dispatch variant.
func (c *CPU) Variant() Variant {
	return c.variant
}

// Options returns the CPU's configuration.
func (c *CPU) Options() Options {
	return c.options
}

// Clock executes exactly one bus cycle: at most one micro-op. It returns
// true iff the instruction running completed on this cycle. If Status is
// Stopped, Jammed or Waiting the call does nothing and returns true
// immediately, as if an (empty) instruction completed, so an outer
// scheduler can still poll for interrupts while halted. Bypassed keeps
// executing like Running.
func (c *CPU) Clock(b Bus) bool {
	if c.Status != Running && c.Status != Bypassed {
		return true
	}
	if c.pipe.atBoundary() {
		opcode := b.Peek(c.PC)
		c.pipe.reset(c.table.schedules[opcode])
		c.PrevP = c.P
		c.PrevPC = c.PC
	}
	op := c.pipe.current()
	op(c, b)
	c.pipe.advance()
	return c.pipe.atBoundary()
}

// stepSafetyCap bounds the number of micro-ops Step will run for a single
// instruction, guarding against a schedule that never reaches a boundary.
const stepSafetyCap = 100

// Step runs Clock until the current instruction completes or a safety cap
// of cycles is reached, returning the number of cycles consumed.
func (c *CPU) Step(b Bus) int {
	cycles := 0
	for cycles < stepSafetyCap {
		cycles++
		if c.Clock(b) {
			break
		}
	}
	return cycles
}

// Run executes exactly n cycles regardless of instruction boundaries and
// returns n.
func (c *CPU) Run(b Bus, n int) int {
	for i := 0; i < n; i++ {
		c.Clock(b)
	}
	return n
}

// Reset reinitializes registers, clears scratch and pipeline state, and
// loads PC from the reset vector. The bus reads it performs count as
// cycles on b, matching the real reset sequence; this implementation
// performs the whole sequence in a single call rather than spreading it
// across six Clock calls, since a host never needs to observe
// intermediate reset state.
func (c *CPU) Reset(b Bus) {
	c.A, c.X, c.Y = 0, 0, 0
	c.S = 0xFD
	c.P = FlagUnused | FlagInterrupt
	c.Status = Running
	c.Pending = PendingNone
	c.TempAddress, c.TempValue = 0, 0
	c.CurrentOpcode, c.OpcodeAddress = 0, 0
	c.PenaltyAddress, c.BranchOldPC = 0, 0
	c.pipe = pipeline{}
	lo := b.Read(ResetVector)
	hi := b.Read(ResetVector + 1)
	c.PC = uint16(hi)<<8 | uint16(lo)
	c.PrevP, c.PrevPC = c.P, c.PC
}

// SignalIRQ latches an IRQ if no interrupt is currently pending.
func (c *CPU) SignalIRQ() {
	if c.Pending == PendingNone {
		c.Pending = PendingIRQ
	}
}

// SignalNMI latches an NMI unless a Reset is already pending; NMI always
// overwrites a merely-pending IRQ.
func (c *CPU) SignalNMI() {
	if c.Pending != PendingReset {
		c.Pending = PendingNMI
	}
}

// SignalReset latches a Reset, overriding anything else pending.
func (c *CPU) SignalReset() {
	c.Pending = PendingReset
}

// ClearIRQ clears the pending slot if (and only if) it currently holds
// IRQ, leaving a pending NMI or Reset untouched.
func (c *CPU) ClearIRQ() {
	if c.Pending == PendingIRQ {
		c.Pending = PendingNone
	}
}

// HandlePendingInterrupt services whatever is latched in Pending, if
// eligible, as a deliberate sequence at an instruction boundary: Reset
// reinitializes the processor without touching the stack; NMI always
// pushes PC/P and loads the NMI vector; IRQ does the same but only when I
// is clear or Status is Waiting. It returns whether an interrupt was
// actually serviced.
func (c *CPU) HandlePendingInterrupt(b Bus) bool {
	switch c.Pending {
	case PendingReset:
		c.Reset(b)
		return true
	case PendingNMI:
		c.enterInterrupt(b, NMIVector, false)
		c.Pending = PendingNone
		return true
	case PendingIRQ:
		if c.P&FlagInterrupt != 0 && c.Status != Waiting {
			return false
		}
		c.enterInterrupt(b, IRQVector, false)
		c.Pending = PendingNone
		return true
	default:
		return false
	}
}

// enterInterrupt performs the push sequence shared by NMI/IRQ entry and
// BRK: PC-high, PC-low, then P with U=1 and B set only for a software
// break. I is set afterward; D is additionally cleared for CMOS variants.
// If the processor was Waiting it resumes Running.
func (c *CPU) enterInterrupt(b Bus, vector uint16, isBRK bool) {
	c.pushStack(b, uint8(c.PC>>8))
	c.pushStack(b, uint8(c.PC))
	push := c.P | FlagUnused
	if isBRK {
		push |= FlagBreak
	} else {
		push &^= FlagBreak
	}
	c.pushStack(b, push)
	c.P |= FlagInterrupt
	if c.variant.isCMOS() {
		c.P &^= FlagDecimal
	}
	lo := b.Read(vector)
	hi := b.Read(vector + 1)
	c.PC = uint16(hi)<<8 | uint16(lo)
	if c.Status == Waiting {
		c.Status = Running
	}
}

// pushStack writes val to the stack page at the current SP and
// decrements SP.
func (c *CPU) pushStack(b Bus, val uint8) {
	b.Write(stackBase|uint16(c.S), val)
	c.S--
}

// popStack increments SP and reads the byte now at the top of the stack.
func (c *CPU) popStack(b Bus) uint8 {
	c.S++
	return b.Read(stackBase | uint16(c.S))
}

// setZN sets the Z and N flags from reg, the standard post-load/transfer
// flag update.
func (c *CPU) setZN(reg uint8) {
	c.P &^= FlagZero | FlagNegative
	if reg == 0 {
		c.P |= FlagZero
	}
	if reg&0x80 != 0 {
		c.P |= FlagNegative
	}
}

// setCarry sets C from whether an 8 bit ALU result (computed as 16 bits)
// carried out, i.e. res >= 0x100. BCD fixups can legitimately produce
// 0x200, which still counts as a carry.
func (c *CPU) setCarry(res uint16) {
	c.P &^= FlagCarry
	if res >= 0x100 {
		c.P |= FlagCarry
	}
}

// setOverflow sets V when the ALU result's sign differs from both inputs'
// shared sign, the standard two's-complement overflow test.
func (c *CPU) setOverflow(a, operand, res uint8) {
	c.P &^= FlagOverflow
	if (a^res)&(operand^res)&0x80 != 0 {
		c.P |= FlagOverflow
	}
}
