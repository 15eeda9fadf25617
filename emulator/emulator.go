// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"slices"

	"github.com/ezrec/z80emu/cpu"
	"github.com/ezrec/z80emu/internal"
)

const (
	DEFAULT_LOAD_ADDRESS = cpu.RESET_PC // Address binaries are loaded at, unless told otherwise.
)

var _emulator_defines = map[string]string{
	"DEFAULT_LOAD_ADDRESS": fmt.Sprintf("0x%04x", DEFAULT_LOAD_ADDRESS),
}

// Emulator state. CPU + memory + the loaded program listing.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently loaded program listing.

	fault *ErrRuntime // First runtime error since the last reset.
}

// NewEmulator creates a new emulator, powered off, with zeroed memory.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(cpu.NewMemory()),
		Program: &cpu.Program{},
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
		emu.Memory.Defines(),
	)
}

// PowerOn applies power to the CPU.
func (emu *Emulator) PowerOn() {
	emu.Cpu.Powered = true
}

// PowerOff removes power from the CPU. Ticks have no effect until PowerOn.
func (emu *Emulator) PowerOff() {
	emu.Cpu.Powered = false
}

// Reset the emulator state.
// - Zeros memory, then reloads the current program.
// - Resets the CPU registers, statistics, and halt state.
// - Powers on the CPU.
func (emu *Emulator) Reset() (err error) {
	if emu.Verbose {
		log.Printf("emulator: reset")
	}

	emu.Memory.Reset()

	err = emu.Load(emu.Program)
	if err != nil {
		return
	}

	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()
	emu.fault = nil
	emu.PowerOn()

	return
}

// Load copies the program into memory, and makes it the current program.
// Nothing is loaded if any opcode lies outside of the address space.
func (emu *Emulator) Load(prog *cpu.Program) (err error) {
	for _, op := range prog.Opcodes {
		if op.Address < 0 || op.Address+len(op.Bytes) > cpu.MEMORY_SIZE {
			err = cpu.ErrProgramSize
			return
		}
	}

	for address, value := range prog.Bytes() {
		emu.Memory.Write(address, value)
	}

	emu.Program = prog

	return
}

// LoadBinary copies a raw image into memory at address, and makes it the
// current program. The image has no source lines.
func (emu *Emulator) LoadBinary(address uint16, data []byte) (err error) {
	prog := &cpu.Program{
		Opcodes: []cpu.Opcode{
			{Address: int(address), Bytes: slices.Clone(data)},
		},
	}

	err = emu.Load(prog)

	return
}

// LineNo returns the current line number for the executing opcode,
// or 0 if the program counter is not in an assembled line.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.Cpu.PC.Full())
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.Opcode.LineNo
}

// Tick performs a single step of the emulator.
// done is set once the CPU has stopped after a HALT.
// Once the CPU has faulted, the first runtime error is returned until Reset.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	if emu.fault != nil && emu.Cpu.Fault() != nil {
		err = emu.fault
		return
	}

	lineno := emu.LineNo()
	address := emu.Cpu.PC.Full()
	defer func() {
		if err != nil {
			emu.fault = &ErrRuntime{LineNo: lineno, Address: address, Err: err}
			err = emu.fault
		}
	}()

	err = emu.Cpu.Tick()
	if errors.Is(err, cpu.ErrHalted) {
		err = nil
		done = true
		return
	}

	return
}

// Run steps the emulator until it is done, faults, is powered off, or has
// taken limit steps. A limit of 0 means no limit.
func (emu *Emulator) Run(limit int) (steps int, err error) {
	for limit == 0 || steps < limit {
		if !emu.Cpu.Powered {
			return
		}
		var done bool
		done, err = emu.Tick()
		if done || err != nil {
			return
		}
		steps++
	}

	return
}
