// Command trace loads a flat binary into RAM and runs it instruction by
// instruction, printing a disassembly line plus register state for each
// one. It's the headless counterpart to cmd/inspect: useful for piping
// output through a diff against a known-good trace.
package main

import (
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/davecgh/go-spew/spew"
	"github.com/urfave/cli/v2"

	"github.com/m65xx/m65xx/cpu"
	"github.com/m65xx/m65xx/disassemble"
	"github.com/m65xx/m65xx/irq"
	"github.com/m65xx/m65xx/memory"
)

func variantByName(name string) (cpu.Variant, error) {
	switch name {
	case "nmos":
		return cpu.NMOS6502, nil
	case "nmos-no-undocumented":
		return cpu.NMOS6502NoUndocumented, nil
	case "wdc65c02":
		return cpu.WDC65C02, nil
	case "rockwell65c02":
		return cpu.Rockwell65C02, nil
	default:
		return 0, fmt.Errorf("unknown variant %q (want nmos, nmos-no-undocumented, wdc65c02, rockwell65c02)", name)
	}
}

func main() {
	app := &cli.App{
		Name:  "trace",
		Usage: "run a flat 6502/65C02 binary and print a cycle-accurate instruction trace",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "variant",
				Value: "nmos",
				Usage: "nmos, nmos-no-undocumented, wdc65c02, rockwell65c02",
			},
			&cli.UintFlag{
				Name:  "load",
				Value: 0x0200,
				Usage: "address to load the binary at",
			},
			&cli.UintFlag{
				Name:  "pc",
				Value: 0,
				Usage: "initial PC; defaults to the load address if zero",
			},
			&cli.UintFlag{
				Name:  "instructions",
				Value: 100,
				Usage: "number of instructions to trace before stopping",
			},
			&cli.BoolFlag{
				Name:  "registers",
				Value: true,
				Usage: "print the full register snapshot after each instruction",
			},
			&cli.UintFlag{
				Name:  "irq-every",
				Value: 0,
				Usage: "raise an irq.Line IRQ before every Nth instruction (0 disables)",
			},
		},
		Action: runTrace,
	}
	sort.Sort(cli.FlagsByName(app.Flags))
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runTrace(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return cli.Exit("usage: trace [flags] <binary>", 86)
	}
	variant, err := variantByName(c.String("variant"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	program, err := os.ReadFile(c.Args().First())
	if err != nil {
		return cli.Exit(fmt.Sprintf("reading %s: %v", c.Args().First(), err), 1)
	}

	ram, err := memory.New8BitRAMBank(1<<16, nil)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	load := uint16(c.Uint("load"))
	for i, v := range program {
		ram.Write(load+uint16(i), v)
	}
	pc := uint16(c.Uint("pc"))
	if pc == 0 {
		pc = load
	}
	ram.Write(cpu.ResetVector, uint8(pc))
	ram.Write(cpu.ResetVector+1, uint8(pc>>8))

	table := cpu.NewTable(variant, cpu.Options{})
	proc, err := cpu.New(variant, table, cpu.Options{}, ram)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	printRegisters := c.Bool("registers")
	n := c.Int("instructions")
	irqEvery := c.Uint("irq-every")
	var line irq.Line
	for i := 0; i < n; i++ {
		if irqEvery > 0 && i%int(irqEvery) == 0 {
			line.Set(true)
		}
		before := proc.Snapshot()
		text, _ := disassemble.Step(proc.PC, variant, ram)
		cycles := proc.Step(ram)
		if line.Raised() {
			proc.SignalIRQ()
			line.Set(false)
		}
		proc.HandlePendingInterrupt(ram)
		after := proc.Snapshot()
		fmt.Printf("%04X  %-20s  cycles=%d  status=%s\n", before.PC, text, cycles, after.Status)
		if printRegisters {
			spew.Dump(after)
		}
		if after.Status != cpu.Running {
			break
		}
	}
	return nil
}
