package cpu

// Snapshot is an immutable copy of everything about a CPU a debugger or
// trace tool might want to inspect, taken at an instruction boundary.
// Deriving predicates from two Snapshots (rather than threading booleans
// through the pipeline itself) keeps the hot path free of bookkeeping no
// guest program can observe.
type Snapshot struct {
	A, X, Y uint8
	P       uint8
	S       uint8
	PC      uint16
	Status  Status
	Pending Pending
	Opcode  uint8
	// Cycles is the number of bus cycles the instruction that just
	// completed actually took, i.e. the final (possibly
	// penalty-extended) schedule length. It's what lets BranchTaken
	// distinguish a taken zero-offset branch from a branch not taken:
	// both leave PC unchanged relative to a naive delta, but only the
	// taken one spent the extra cycle.
	Cycles int
}

// Snapshot captures the CPU's current register file. Call it at an
// instruction boundary (Step/Clock returning true) to get a clean
// before/after pair for the predicate functions below.
func (c *CPU) Snapshot() Snapshot {
	return Snapshot{
		A:       c.A,
		X:       c.X,
		Y:       c.Y,
		P:       c.P,
		S:       c.S,
		PC:      c.PC,
		Status:  c.Status,
		Pending: c.Pending,
		Opcode:  c.CurrentOpcode,
		Cycles:  c.pipe.length,
	}
}

// RegisterDelta reports which named registers changed between prev and
// cur: "A", "X", "Y", "P", "S", "PC" for whichever differ.
func RegisterDelta(prev, cur Snapshot) []string {
	var changed []string
	if prev.A != cur.A {
		changed = append(changed, "A")
	}
	if prev.X != cur.X {
		changed = append(changed, "X")
	}
	if prev.Y != cur.Y {
		changed = append(changed, "Y")
	}
	if prev.P != cur.P {
		changed = append(changed, "P")
	}
	if prev.S != cur.S {
		changed = append(changed, "S")
	}
	if prev.PC != cur.PC {
		changed = append(changed, "PC")
	}
	return changed
}

// StackDelta returns cur.S - prev.S as a signed count: negative means the
// instruction pushed, positive means it pulled.
func StackDelta(prev, cur Snapshot) int {
	return int(cur.S) - int(prev.S)
}

// PageCrossed reports whether prev.PC and cur.PC sit in different 256
// byte pages, a cheap proxy a debugger can use alongside the explicit
// cycle count to explain why an instruction took an extra cycle.
func PageCrossed(prev, cur Snapshot) bool {
	return prev.PC&0xFF00 != cur.PC&0xFF00
}

// branchOpcodes lists every conditional-branch and BRA/BBR/BBS opcode so
// BranchTaken can work from the opcode byte instead of an ambiguous
// PC-delta heuristic, which would misclassify a branch that happens to
// fall through to an adjacent page boundary.
var branchOpcodes = map[uint8]bool{
	0x10: true, 0x30: true, 0x50: true, 0x70: true,
	0x90: true, 0xB0: true, 0xD0: true, 0xF0: true,
	0x80: true, // BRA, 65C02/Rockwell
}

func init() {
	for n := uint8(0); n < 8; n++ {
		branchOpcodes[0x0F+n*0x10] = true // BBR
		branchOpcodes[0x8F+n*0x10] = true // BBS
	}
}

// branchBaseCycles is the not-taken cycle count for each branch opcode:
// 2 for a conditional branch or BRA, 4 for a Rockwell BBR/BBS (which
// always pays for the zero page read regardless of outcome).
func branchBaseCycles(opcode uint8) int {
	if opcode&0x0F == 0x0F {
		return 4
	}
	return 2
}

// BranchTaken reports whether the instruction that produced cur was a
// branch and, if so, whether it was taken. It's decided from the opcode
// byte plus the actual cycle count the instruction spent, not from
// comparing PCs: a branch with a zero offset taken lands on the same PC
// a branch not taken would, so only the extra cycle distinguishes them.
func BranchTaken(cur Snapshot) (isBranch, taken bool) {
	if !branchOpcodes[cur.Opcode] {
		return false, false
	}
	return true, cur.Cycles > branchBaseCycles(cur.Opcode)
}

// InterruptEntered reports whether an interrupt was serviced between
// prev and cur: P gained the I flag and the stack pointer moved down by
// three (the PC-high, PC-low, P push sequence), distinguishing it from
// PHP/JSR which only push one or two bytes.
func InterruptEntered(prev, cur Snapshot) bool {
	return StackDelta(prev, cur) == -3 && cur.P&FlagInterrupt != 0 && prev.P&FlagInterrupt == 0
}

// RTSOccurred reports whether the instruction pulled exactly two bytes
// off the stack, RTS's signature stack movement (RTI pulls three).
func RTSOccurred(prev, cur Snapshot) bool {
	return StackDelta(prev, cur) == 2
}

// RTIOccurred reports whether the instruction pulled exactly three bytes
// off the stack, RTI's signature stack movement.
func RTIOccurred(prev, cur Snapshot) bool {
	return StackDelta(prev, cur) == 3
}
