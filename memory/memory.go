// Package memory provides a reference bus.Bus implementation for 6502
// family memory maps. Real systems shadow and mirror regions in ways that
// are implementation specific, so the flat RAM bank here is deliberately
// the simplest thing that satisfies the bus contract; hosts needing bank
// switching or mapped IO compose their own Bank on top of this one via
// Parent.
package memory

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/m65xx/m65xx/bus"
)

// Bank is a bus.Bus that additionally supports power-on initialization and
// chaining to a parent so host code can find the outermost databus state.
type Bank interface {
	bus.Bus
	// PowerOn performs power on reset of the memory. This is implementation
	// specific as to whether it's randomized or preset to all zeros.
	PowerOn()
	// Parent holds a reference (if non-nil) to the next level memory
	// controller. A chain of these can be created in order to find the
	// outermost one and query the databus state.
	Parent() Bank
	// DatabusVal returns the last value seen to go across the data bus
	// (from a Read or Write; Peek never updates this).
	DatabusVal() uint8
}

// LatestDatabusVal hunts up a chain of Banks until it finds the outermost
// one and returns the DatabusVal from it.
func LatestDatabusVal(b Bank) uint8 {
	if b.Parent() != nil {
		return LatestDatabusVal(b.Parent())
	}
	return b.DatabusVal()
}

// ram implements a flat R/W address space for 8 bit systems. If mapped
// into a larger memory map it's up to a parent Bank to mask addr before
// calling Read/Write/Peek.
type ram struct {
	ram        []uint8
	parent     Bank
	databusVal uint8
}

// New8BitRAMBank creates a R/W RAM bank of the given size. Size must be a
// power of 2. If this is smaller than 64k (uint16 max) aliasing will occur
// on Read/Write/Peek.
func New8BitRAMBank(size int, parent Bank) (Bank, error) {
	if size <= 0 || size&(size-1) != 0 {
		return nil, fmt.Errorf("invalid size: %d must be a power of 2", size)
	}
	if size > 1<<16 {
		return nil, fmt.Errorf("invalid size: %d is bigger than 64k", size)
	}
	b := &ram{
		parent: parent,
		ram:    make([]uint8, size),
	}
	return b, nil
}

// Read implements bus.Bus. Address is masked to fit the ram buffer and
// counts as a bus cycle by updating DatabusVal.
func (r *ram) Read(addr uint16) uint8 {
	addr &= uint16(len(r.ram) - 1)
	val := r.ram[addr]
	r.databusVal = val
	return val
}

// Peek implements bus.Bus with no side effect: it does not touch
// DatabusVal and is safe to call outside of cycle accounting.
func (r *ram) Peek(addr uint16) uint8 {
	addr &= uint16(len(r.ram) - 1)
	return r.ram[addr]
}

// Write implements bus.Bus. Address is masked to fit the ram buffer.
func (r *ram) Write(addr uint16, val uint8) {
	addr &= uint16(len(r.ram) - 1)
	r.databusVal = val
	r.ram[addr] = val
}

// PowerOn implements Bank and randomizes the RAM, matching real hardware
// where static RAM contents on power up are unspecified.
func (r *ram) PowerOn() {
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := range r.ram {
		r.ram[i] = uint8(rnd.Intn(256))
	}
}

// Parent implements Bank.
func (r *ram) Parent() Bank {
	return r.parent
}

// DatabusVal implements Bank.
func (r *ram) DatabusVal() uint8 {
	return r.databusVal
}
