// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ezrec/z80emu/cpu"
	"github.com/ezrec/z80emu/emulator"
)

func main() {
	var compile string
	var binary string
	var address uint
	var pc int
	var steps int
	var verbose bool

	predefine := map[string]string{}

	flag.StringVar(&compile, "c", "", ".asm file to assemble and run")
	flag.StringVar(&binary, "b", "", "binary image to run")
	flag.UintVar(&address, "a", emulator.DEFAULT_LOAD_ADDRESS, "Load address of the binary image")
	flag.IntVar(&pc, "p", -1, "Initial program counter (default is the reset value)")
	flag.IntVar(&steps, "n", 0, "Maximum number of steps, 0 for no limit")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.Func("D", "Predefine an assembler equate, as NAME=VALUE", func(arg string) error {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || len(name) == 0 {
			return fmt.Errorf("'%v' is not NAME=VALUE", arg)
		}
		predefine[name] = value
		return nil
	})

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(compile) != 0 && len(binary) != 0 {
		log.Fatalf("%v: Only one of -c or -b may be used", os.Args[0])
	}

	if address > cpu.MEMORY_TOP {
		log.Fatalf("%v: -a 0x%x is outside of the address space", os.Args[0], address)
	}

	if pc > cpu.MEMORY_TOP {
		log.Fatalf("%v: -p 0x%x is outside of the address space", os.Args[0], pc)
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	// Assemble a new program.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: verbose}
		for key, value := range emu.Defines() {
			asm.Predefine(key, value)
		}
		for key, value := range predefine {
			asm.Predefine(key, value)
		}

		prog, err := asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}

		err = emu.Load(prog)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	}

	// Load a raw binary image.
	if len(binary) != 0 {
		data, err := os.ReadFile(binary)
		if err != nil {
			log.Fatalf("%v: %v", binary, err)
		}

		err = emu.LoadBinary(uint16(address), data)
		if err != nil {
			log.Fatalf("%v: %v", binary, err)
		}
	}

	err := emu.Reset()
	if err != nil {
		log.Fatal(err)
	}

	if pc >= 0 {
		emu.Cpu.PC.SetFull(uint16(pc))
	}

	count, err := emu.Run(steps)
	if verbose {
		log.Printf("%v: %d steps\n%v", os.Args[0], count, emu.Cpu.String())
	}

	report := emu.Report()
	_, werr := report.WriteTo(os.Stdout)
	if werr != nil {
		log.Fatalf("%v: report: %v", os.Args[0], werr)
	}

	if err != nil {
		log.Fatal(err)
	}
}
