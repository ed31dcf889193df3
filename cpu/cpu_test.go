package cpu

import (
	"testing"

	"github.com/go-test/deep"
)

// flatMemory is a 64k byte array bus.Bus implementation for tests, in
// the spirit of the teacher's own flatMemory test helper: no bank
// switching, no mirroring, just enough to drive a program through the
// core and inspect what came out the other side.
type flatMemory struct {
	mem [65536]uint8
}

func (f *flatMemory) Read(addr uint16) uint8     { return f.mem[addr] }
func (f *flatMemory) Peek(addr uint16) uint8     { return f.mem[addr] }
func (f *flatMemory) Write(addr uint16, v uint8) { f.mem[addr] = v }

func (f *flatMemory) setResetVector(addr uint16) {
	f.mem[ResetVector] = uint8(addr)
	f.mem[ResetVector+1] = uint8(addr >> 8)
}

func newTestCPU(t *testing.T, variant Variant, program []uint8) (*CPU, *flatMemory) {
	t.Helper()
	mem := &flatMemory{}
	const loadAt = 0x0200
	copy(mem.mem[loadAt:], program)
	mem.setResetVector(loadAt)
	table := NewTable(variant, Options{})
	c, err := New(variant, table, Options{}, mem)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, mem
}

func TestReset(t *testing.T) {
	c, _ := newTestCPU(t, NMOS6502, nil)
	if c.PC != 0x0200 {
		t.Errorf("PC = %#04x, want 0x0200", c.PC)
	}
	if c.S != 0xFD {
		t.Errorf("S = %#02x, want 0xFD", c.S)
	}
	if c.P&FlagUnused == 0 || c.P&FlagInterrupt == 0 {
		t.Errorf("P = %#02x, want U and I set", c.P)
	}
}

func TestLDAImmediate(t *testing.T) {
	c, mem := newTestCPU(t, NMOS6502, []uint8{0xA9, 0x42}) // LDA #$42
	cycles := c.Step(mem)
	if cycles != 2 {
		t.Errorf("cycles = %d, want 2", cycles)
	}
	if c.A != 0x42 {
		t.Errorf("A = %#02x, want 0x42", c.A)
	}
	if c.P&FlagZero != 0 || c.P&FlagNegative != 0 {
		t.Errorf("P = %#02x, want Z and N clear", c.P)
	}
}

func TestLDAZeroFlag(t *testing.T) {
	c, mem := newTestCPU(t, NMOS6502, []uint8{0xA9, 0x00})
	c.Step(mem)
	if c.P&FlagZero == 0 {
		t.Errorf("P = %#02x, want Z set", c.P)
	}
}

func TestAbsoluteIndexedPageCross(t *testing.T) {
	prog := []uint8{0xBD, 0xFF, 0x02} // LDA $02FF,X
	c, mem := newTestCPU(t, NMOS6502, prog)
	c.X = 1 // 0x02FF + 1 crosses into page 3
	mem.mem[0x0300] = 0x55
	cycles := c.Step(mem)
	if cycles != 5 {
		t.Errorf("cycles = %d, want 5 (page cross penalty)", cycles)
	}
	if c.A != 0x55 {
		t.Errorf("A = %#02x, want 0x55", c.A)
	}
}

func TestAbsoluteIndexedNoPageCross(t *testing.T) {
	prog := []uint8{0xBD, 0x00, 0x03} // LDA $0300,X
	c, mem := newTestCPU(t, NMOS6502, prog)
	c.X = 1
	mem.mem[0x0301] = 0x77
	cycles := c.Step(mem)
	if cycles != 4 {
		t.Errorf("cycles = %d, want 4", cycles)
	}
	if c.A != 0x77 {
		t.Errorf("A = %#02x, want 0x77", c.A)
	}
}

func TestBranchNotTaken(t *testing.T) {
	prog := []uint8{0xF0, 0x10} // BEQ +16, Z currently clear after reset
	c, mem := newTestCPU(t, NMOS6502, prog)
	cycles := c.Step(mem)
	if cycles != 2 {
		t.Errorf("cycles = %d, want 2", cycles)
	}
	if c.PC != 0x0202 {
		t.Errorf("PC = %#04x, want 0x0202", c.PC)
	}
}

func TestBranchTakenSamePage(t *testing.T) {
	prog := []uint8{0xA9, 0x00, 0xF0, 0x02} // LDA #0; BEQ +2
	c, mem := newTestCPU(t, NMOS6502, prog)
	c.Step(mem) // LDA sets Z
	cycles := c.Step(mem)
	if cycles != 3 {
		t.Errorf("cycles = %d, want 3", cycles)
	}
	if c.PC != 0x0206 {
		t.Errorf("PC = %#04x, want 0x0206", c.PC)
	}
}

func TestBranchTakenCrossesPage(t *testing.T) {
	mem := &flatMemory{}
	mem.mem[0x02EC] = 0xA9 // LDA #0 placed right before the branch
	mem.mem[0x02ED] = 0x00
	mem.mem[0x02EE] = 0xF0 // BEQ
	mem.mem[0x02EF] = 0x20 // offset chosen so PC after fetch (0x02F0) + 0x20 crosses into page 3
	mem.setResetVector(0x02EC)
	table := NewTable(NMOS6502, Options{})
	c, err := New(NMOS6502, table, Options{}, mem)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c.Step(mem)
	cycles := c.Step(mem)
	if cycles != 4 {
		t.Errorf("cycles = %d, want 4 (taken + page cross)", cycles)
	}
	if c.PC != 0x0310 {
		t.Errorf("PC = %#04x, want 0x0310", c.PC)
	}
}

func TestJSRRTS(t *testing.T) {
	prog := []uint8{0x20, 0x00, 0x03} // JSR $0300
	c, mem := newTestCPU(t, NMOS6502, prog)
	mem.mem[0x0300] = 0x60 // RTS
	startS := c.S
	cycles := c.Step(mem)
	if cycles != 6 {
		t.Errorf("JSR cycles = %d, want 6", cycles)
	}
	if c.PC != 0x0300 {
		t.Errorf("PC = %#04x, want 0x0300", c.PC)
	}
	if c.S != startS-2 {
		t.Errorf("S = %#02x, want %#02x", c.S, startS-2)
	}
	cycles = c.Step(mem)
	if cycles != 6 {
		t.Errorf("RTS cycles = %d, want 6", cycles)
	}
	if c.PC != 0x0203 {
		t.Errorf("PC = %#04x, want 0x0203", c.PC)
	}
	if c.S != startS {
		t.Errorf("S = %#02x, want %#02x after RTS", c.S, startS)
	}
}

func TestIRQEntersAndRTIReturns(t *testing.T) {
	prog := []uint8{0xEA} // NOP, just something to idle on
	c, mem := newTestCPU(t, NMOS6502, prog)
	mem.mem[IRQVector] = 0x00
	mem.mem[IRQVector+1] = 0x04
	mem.mem[0x0400] = 0x40 // RTI
	c.P &^= FlagInterrupt
	c.SignalIRQ()
	before := c.Snapshot()
	if !c.HandlePendingInterrupt(mem) {
		t.Fatal("IRQ was not serviced")
	}
	after := c.Snapshot()
	if !InterruptEntered(before, after) {
		t.Errorf("InterruptEntered = false, want true")
	}
	if c.PC != 0x0400 {
		t.Errorf("PC = %#04x, want 0x0400", c.PC)
	}
	before = c.Snapshot()
	c.Step(mem) // RTI
	after = c.Snapshot()
	if !RTIOccurred(before, after) {
		t.Errorf("RTIOccurred = false, want true")
	}
}

func TestIRQGatedByInterruptFlag(t *testing.T) {
	c, mem := newTestCPU(t, NMOS6502, []uint8{0xEA})
	c.P |= FlagInterrupt
	c.SignalIRQ()
	if c.HandlePendingInterrupt(mem) {
		t.Error("IRQ serviced while I flag set")
	}
}

func TestNMINotGated(t *testing.T) {
	c, mem := newTestCPU(t, NMOS6502, []uint8{0xEA})
	mem.mem[NMIVector] = 0x34
	mem.mem[NMIVector+1] = 0x12
	c.P |= FlagInterrupt
	c.SignalNMI()
	if !c.HandlePendingInterrupt(mem) {
		t.Error("NMI not serviced despite I flag")
	}
	if c.PC != 0x1234 {
		t.Errorf("PC = %#04x, want 0x1234", c.PC)
	}
}

func TestResetWinsOverEverything(t *testing.T) {
	c, mem := newTestCPU(t, NMOS6502, []uint8{0xEA})
	c.SignalNMI()
	c.SignalReset()
	if c.Pending != PendingReset {
		t.Errorf("Pending = %v, want PendingReset", c.Pending)
	}
	c.A = 0xFF
	c.HandlePendingInterrupt(mem)
	if c.A != 0 {
		t.Errorf("A = %#02x after reset, want 0", c.A)
	}
}

func TestADCDecimalNMOSFlagsFromBinary(t *testing.T) {
	// 0x99 + 1 with carry clear: NMOS sets N/Z from the raw binary sum
	// (0x9A, nonzero) even though the BCD-corrected result is 0x00.
	c, mem := newTestCPU(t, NMOS6502, []uint8{0x69, 0x01}) // ADC #1
	c.P |= FlagDecimal
	c.A = 0x99
	c.Step(mem)
	if c.A != 0x00 {
		t.Errorf("A (BCD corrected) = %#02x, want 0x00", c.A)
	}
	if c.P&FlagZero != 0 {
		t.Errorf("Z set from BCD result, NMOS should derive it from the binary sum (0x9A, nonzero)")
	}
}

func TestADCDecimalCMOSFlagsFromResult(t *testing.T) {
	c, mem := newTestCPU(t, WDC65C02, []uint8{0x69, 0x01})
	c.P |= FlagDecimal
	c.A = 0x99
	c.Step(mem)
	if c.A != 0x00 {
		t.Errorf("A = %#02x, want 0x00", c.A)
	}
	if c.P&FlagZero == 0 {
		t.Errorf("Z clear, CMOS should derive flags from the corrected BCD result (0x00)")
	}
}

func TestUndocumentedLAX(t *testing.T) {
	prog := []uint8{0xA7, 0x10} // LAX $10
	c, mem := newTestCPU(t, NMOS6502, prog)
	mem.mem[0x10] = 0x99
	c.Step(mem)
	if c.A != 0x99 || c.X != 0x99 {
		t.Errorf("A=%#02x X=%#02x, want both 0x99", c.A, c.X)
	}
}

func TestNoUndocumentedVariantTreatsLAXAsNOP(t *testing.T) {
	prog := []uint8{0xA7, 0x10}
	c, mem := newTestCPU(t, NMOS6502NoUndocumented, prog)
	mem.mem[0x10] = 0x99
	c.A, c.X = 0x01, 0x02
	c.Step(mem)
	if c.A != 0x01 || c.X != 0x02 {
		t.Errorf("A=%#02x X=%#02x changed, want NOP to leave them untouched", c.A, c.X)
	}
}

func TestSTPHaltsAndIgnoreOptionBypasses(t *testing.T) {
	c, mem := newTestCPU(t, WDC65C02, []uint8{0xDB}) // STP
	c.Step(mem)
	if c.Status != Stopped {
		t.Errorf("Status = %v, want Stopped", c.Status)
	}

	mem2 := &flatMemory{}
	copy(mem2.mem[0x0200:], []uint8{0xDB})
	mem2.setResetVector(0x0200)
	table := NewTable(WDC65C02, Options{IgnoreHaltStopWait: true})
	c2, err := New(WDC65C02, table, Options{IgnoreHaltStopWait: true}, mem2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c2.Step(mem2)
	if c2.Status != Bypassed {
		t.Errorf("Status = %v, want Bypassed", c2.Status)
	}
}

func TestRockwellTreatsSTPAsNOP(t *testing.T) {
	c, mem := newTestCPU(t, Rockwell65C02, []uint8{0xDB})
	c.Step(mem)
	if c.Status != Running {
		t.Errorf("Status = %v, want Running (STP is a NOP on Rockwell)", c.Status)
	}
}

func TestBBRBranchesOnClearBit(t *testing.T) {
	prog := []uint8{0x0F, 0x10, 0x05} // BBR0 $10, +5
	c, mem := newTestCPU(t, Rockwell65C02, prog)
	mem.mem[0x10] = 0x00 // bit 0 clear
	cycles := c.Step(mem)
	if cycles != 5 {
		t.Errorf("cycles = %d, want 5", cycles)
	}
	if c.PC != 0x0208 {
		t.Errorf("PC = %#04x, want 0x0208", c.PC)
	}
}

func TestDeepDiffOnSnapshot(t *testing.T) {
	c, mem := newTestCPU(t, NMOS6502, []uint8{0xA9, 0x07, 0xAA}) // LDA #7; TAX
	before := c.Snapshot()
	c.Step(mem)
	c.Step(mem)
	after := c.Snapshot()
	if diff := deep.Equal(before, after); len(diff) == 0 {
		t.Error("expected a diff between snapshots, got none")
	}
	if after.A != 7 || after.X != 7 {
		t.Errorf("A=%d X=%d, want both 7", after.A, after.X)
	}
}
