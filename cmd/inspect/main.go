// Command inspect is an interactive terminal debugger: it steps one CPU
// cycle or instruction at a time and renders the zero page/stack window,
// register file, flags, and the instruction about to run.
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"github.com/m65xx/m65xx/cpu"
	"github.com/m65xx/m65xx/disassemble"
	"github.com/m65xx/m65xx/memory"
)

type model struct {
	variant cpu.Variant
	proc    *cpu.CPU
	ram     memory.Bank

	prev  cpu.Snapshot
	cur   cpu.Snapshot
	event string
	err   error
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "c":
			m.prev = m.proc.Snapshot()
			if m.proc.Clock(m.ram) {
				m.event = "boundary"
			} else {
				m.event = "mid-instruction"
			}
			m.cur = m.proc.Snapshot()
		case " ", "n":
			m.prev = m.proc.Snapshot()
			cycles := m.proc.Step(m.ram)
			m.cur = m.proc.Snapshot()
			m.event = fmt.Sprintf("stepped %d cycles", cycles)
		case "i":
			m.proc.SignalIRQ()
			m.event = "IRQ signaled"
		case "m":
			m.proc.SignalNMI()
			m.event = "NMI signaled"
		case "r":
			m.proc.Reset(m.ram)
			m.event = "reset"
		}
	}
	return m, nil
}

func (m model) renderPage(start uint16) string {
	s := fmt.Sprintf("%04X | ", start)
	for i := uint16(0); i < 16; i++ {
		addr := start + i
		val := m.ram.Peek(addr)
		if addr == m.cur.PC {
			s += fmt.Sprintf("[%02X]", val)
		} else {
			s += fmt.Sprintf(" %02X ", val)
		}
	}
	return s
}

func (m model) memoryWindow() string {
	var lines []string
	base := m.cur.PC &^ 0x000F
	for p := -2; p <= 2; p++ {
		lines = append(lines, m.renderPage(uint16(int32(base)+int32(p*16))))
	}
	lines = append(lines, "", m.renderPage(0x0000), m.renderPage(uint16(0x0100)|uint16(m.cur.S)&0xF0))
	return strings.Join(lines, "\n")
}

func (m model) status() string {
	flagBit := func(mask uint8, ch byte) byte {
		if m.cur.P&mask != 0 {
			return ch
		}
		return '-'
	}
	flags := []byte{
		flagBit(cpu.FlagNegative, 'N'),
		flagBit(cpu.FlagOverflow, 'V'),
		flagBit(cpu.FlagUnused, 'U'),
		flagBit(cpu.FlagBreak, 'B'),
		flagBit(cpu.FlagDecimal, 'D'),
		flagBit(cpu.FlagInterrupt, 'I'),
		flagBit(cpu.FlagZero, 'Z'),
		flagBit(cpu.FlagCarry, 'C'),
	}
	text, _ := disassemble.Step(m.cur.PC, m.variant, m.ram)
	return fmt.Sprintf(
		"variant: %s\nPC: %04X  next: %s\nA: %02X  X: %02X  Y: %02X  S: %02X\nflags: %s\nstatus: %s  pending: %s\nlast event: %s\n\n[space/n] step instruction  [c] single cycle  [i] IRQ  [m] NMI  [r] reset  [q] quit",
		m.variant, m.cur.PC, text, m.cur.A, m.cur.X, m.cur.Y, m.cur.S,
		string(flags), m.cur.Status, m.cur.Pending, m.event,
	)
}

func (m model) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, m.memoryWindow(), "   ", m.status()),
		"",
		spew.Sdump(m.cur),
	)
}

func main() {
	if len(os.Args) != 2 {
		log.Fatalf("usage: %s <binary>", os.Args[0])
	}
	program, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatalf("reading %s: %v", os.Args[1], err)
	}

	ram, err := memory.New8BitRAMBank(1<<16, nil)
	if err != nil {
		log.Fatalf("initializing RAM: %v", err)
	}
	const load = 0x0200
	for i, v := range program {
		ram.Write(load+uint16(i), v)
	}
	ram.Write(cpu.ResetVector, uint8(uint16(load)))
	ram.Write(cpu.ResetVector+1, uint8(uint16(load)>>8))

	variant := cpu.NMOS6502
	table := cpu.NewTable(variant, cpu.Options{})
	proc, err := cpu.New(variant, table, cpu.Options{}, ram)
	if err != nil {
		log.Fatalf("constructing cpu: %v", err)
	}

	m := model{variant: variant, proc: proc, ram: ram, cur: proc.Snapshot(), event: "loaded"}
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal(err)
	}
}
