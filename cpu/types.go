// Package cpu implements a cycle-accurate 6502/65C02/Rockwell 65C02 core.
// Every bus cycle the silicon would perform results in exactly one call
// into the bus.Bus collaborator supplied by the host, in the same order,
// at the same address, with the same read/write discriminator.
package cpu

import (
	"fmt"

	"github.com/m65xx/m65xx/bus"
)

// Bus is the three-operation collaborator the core drives one call at a
// time. See the bus package for the full contract.
type Bus = bus.Bus

// Variant selects which of the four decode tables a CPU dispatches
// through. It is chosen at construction and never changes afterward.
type Variant int

const (
	variantUnimplemented Variant = iota // Start of valid variant enumerations.
	NMOS6502                            // Base NMOS 6502, undocumented opcodes behave as documented on silicon.
	NMOS6502NoUndocumented               // Same timing as NMOS6502; NOP-filler slots are NOPs, every other undocumented opcode JAMs.
	WDC65C02                             // Western Design Center CMOS: bug fixes, new instructions, extra decimal cycle.
	Rockwell65C02                        // WDC65C02 superset adding RMB/SMB/BBR/BBS; WAI/STP are NOPs.
	variantMax                           // End of variant enumerations.
)

func (v Variant) String() string {
	switch v {
	case NMOS6502:
		return "NMOS6502"
	case NMOS6502NoUndocumented:
		return "NMOS6502NoUndocumented"
	case WDC65C02:
		return "WDC65C02"
	case Rockwell65C02:
		return "Rockwell65C02"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// isCMOS reports whether v is one of the CMOS-family variants (WDC or
// Rockwell), which share bug fixes and decimal-mode timing.
func (v Variant) isCMOS() bool {
	return v == WDC65C02 || v == Rockwell65C02
}

// Status is the execution status of the processor.
type Status int

const (
	Running  Status = iota // Normal execution.
	Stopped                // STP executed; only a hardware reset resumes.
	Jammed                 // NMOS illegal opcode halt; only a hardware reset resumes.
	Waiting                // WAI executed; any asserted interrupt resumes, even with I set.
	Bypassed               // A halt instruction ran with Options.IgnoreHaltStopWait set; execution continued.
)

func (s Status) String() string {
	switch s {
	case Running:
		return "Running"
	case Stopped:
		return "Stopped"
	case Jammed:
		return "Jammed"
	case Waiting:
		return "Waiting"
	case Bypassed:
		return "Bypassed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Pending identifies the interrupt (if any) latched for service at the
// next instruction boundary. Exactly one slot exists; signaling a
// higher-priority source overwrites a lower one (Reset > NMI > IRQ).
type Pending int

const (
	PendingNone  Pending = iota // No interrupt latched.
	PendingIRQ                  // IRQ latched; gated by the I flag except when Status is Waiting.
	PendingNMI                  // NMI latched; always serviced regardless of I.
	PendingReset                // Reset latched; always wins and is serviced first.
)

func (p Pending) String() string {
	switch p {
	case PendingNone:
		return "None"
	case PendingIRQ:
		return "Irq"
	case PendingNMI:
		return "Nmi"
	case PendingReset:
		return "Reset"
	default:
		return fmt.Sprintf("Pending(%d)", int(p))
	}
}

// Status flag bits within P.
const (
	FlagCarry     = uint8(0x01)
	FlagZero      = uint8(0x02)
	FlagInterrupt = uint8(0x04)
	FlagDecimal   = uint8(0x08)
	FlagBreak     = uint8(0x10) // Only meaningful in a value pushed to the stack.
	FlagUnused    = uint8(0x20) // Always reads as 1.
	FlagOverflow  = uint8(0x40)
	FlagNegative  = uint8(0x80)
)

// Vectors read from the bus at reset/interrupt entry. Not owned by the
// core; the host's bus collaborator supplies the bytes stored there.
const (
	NMIVector   = uint16(0xFFFA)
	ResetVector = uint16(0xFFFC)
	IRQVector   = uint16(0xFFFE)
)

// stackBase is the fixed high byte of the stack page; SP always addresses
// 0x0100 | SP.
const stackBase = uint16(0x0100)

// InvalidState reports an internal precondition failure in the engine;
// New returns it for an out-of-range variant. It is never returned mid-cycle by
// Clock/Step/Run; those report abnormal guest conditions purely through
// Status transitions per the core's error-handling design.
type InvalidState struct {
	Reason string
}

func (e InvalidState) Error() string {
	return fmt.Sprintf("invalid cpu state: %s", e.Reason)
}

// Options configures behavior that isn't encoded by Variant.
type Options struct {
	// IgnoreHaltStopWait, when set, makes STP/WAI/JAM act as NOPs that set
	// Status to Bypassed instead of actually halting the processor.
	IgnoreHaltStopWait bool
}
