package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"
)

// Architectural reset values.
const (
	RESET_AF = 0x01b0
	RESET_BC = 0x0804
	RESET_DE = 0x0201
	RESET_HL = 0x0000
	RESET_SP = 0xfffe
	RESET_PC = 0x0100
)

var _cpu_defines = map[string]string{
	"RESET_AF":       fmt.Sprintf("0x%04x", RESET_AF),
	"RESET_BC":       fmt.Sprintf("0x%04x", RESET_BC),
	"RESET_DE":       fmt.Sprintf("0x%04x", RESET_DE),
	"RESET_HL":       fmt.Sprintf("0x%04x", RESET_HL),
	"RESET_SP":       fmt.Sprintf("0x%04x", RESET_SP),
	"RESET_PC":       fmt.Sprintf("0x%04x", RESET_PC),
	"CYCLES_DEFAULT": fmt.Sprintf("%d", CYCLES_DEFAULT),
}

// Cpu is the execution context of the machine: registers, memory,
// statistics, and the halt and fault state.
//
// A Cpu is not safe for concurrent use; callers that step it from
// multiple goroutines must serialize access.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Memory *Memory // Reference to the address space.

	AF Register // Accumulator and flags.
	BC Register
	DE Register
	HL Register
	SP Register // Stack pointer.
	PC Register // Program counter. Next byte to fetch.

	Powered bool // If clear, Tick has no effect.
	Halted  bool // Set by HALT, cleared by Reset.

	Cycles uint64      // Total clock cycles charged since a reset.
	Counts [256]uint64 // Executions per opcode since a reset.

	instructions *InstructionSet
	cycles       *CycleTable
	fault        error
}

// NewCpu creates a new CPU attached to memory, with the base instruction set,
// in the reset state, and powered off.
func NewCpu(mem *Memory) (cpu *Cpu) {
	cpu = &Cpu{
		Memory: mem,
	}

	cpu.SetInstructions(BaseInstructions())
	cpu.Reset()

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Instructions returns the instruction set in use.
func (cpu *Cpu) Instructions() *InstructionSet {
	return cpu.instructions
}

// SetInstructions replaces the instruction set, and rebuilds the cycle table from it.
func (cpu *Cpu) SetInstructions(set *InstructionSet) {
	cpu.instructions = set
	cpu.cycles = NewCycleTable(set)
}

// CostOf returns the clock cycles charged for an opcode.
func (cpu *Cpu) CostOf(opcode byte) uint {
	return cpu.cycles.CostOf(opcode)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []struct {
		name string
		reg  Register
	}{
		{"pc", cpu.PC},
		{"sp", cpu.SP},
		{"af", cpu.AF},
		{"bc", cpu.BC},
		{"de", cpu.DE},
		{"hl", cpu.HL},
	}
	for _, reg := range regs {
		text += fmt.Sprintf("% 7s: %04x\n", reg.name, reg.reg.Full())
	}
	text += fmt.Sprintf("% 7s: %v\n", "state", cpu.State())
	text += fmt.Sprintf("% 7s: %d\n", "cycles", cpu.Cycles)

	return
}

// Reset the CPU state.
// - Sets the registers to their architectural reset values.
// - Clears the halt and fault state.
// - Zeros statistics counters.
// Power and memory are left untouched.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.AF = RESET_AF
	cpu.BC = RESET_BC
	cpu.DE = RESET_DE
	cpu.HL = RESET_HL
	cpu.SP = RESET_SP
	cpu.PC = RESET_PC

	cpu.Halted = false
	cpu.fault = nil

	cpu.Cycles = 0
	clear(cpu.Counts[:])
}

// State returns the state of the execution engine.
func (cpu *Cpu) State() State {
	switch {
	case !cpu.Powered:
		return STATE_POWERED_OFF
	case cpu.fault != nil:
		return STATE_STOPPED
	case cpu.Halted:
		return STATE_HALTED
	}

	return STATE_RUNNING
}

// Fault returns the error that stopped the CPU, or nil.
func (cpu *Cpu) Fault() error {
	return cpu.fault
}

// FetchByte reads the byte at PC, and advances PC.
func (cpu *Cpu) FetchByte() (value byte) {
	value = cpu.Memory.Read(cpu.PC.Full())
	cpu.PC.Increment()
	return
}

// FetchWord reads a little-endian 16-bit word at PC, and advances PC past it.
func (cpu *Cpu) FetchWord() uint16 {
	lo := uint16(cpu.FetchByte())
	hi := uint16(cpu.FetchByte())
	return lo | (hi << 8)
}

// Lane returns the value of an 8-bit operand.
func (cpu *Cpu) Lane(lane Lane) byte {
	if lane == LANE_HL_MEM {
		return cpu.Memory.Read(cpu.HL.Full())
	}

	reg, high := lane.Register(cpu)
	if reg == nil {
		panic("unknown lane")
	}
	if high {
		return reg.High()
	}
	return reg.Low()
}

// SetLane sets the value of an 8-bit operand.
func (cpu *Cpu) SetLane(lane Lane, value byte) {
	if lane == LANE_HL_MEM {
		cpu.Memory.Write(cpu.HL.Full(), value)
		return
	}

	reg, high := lane.Register(cpu)
	if reg == nil {
		panic("unknown lane")
	}
	if high {
		reg.SetHigh(value)
	} else {
		reg.SetLow(value)
	}
}

// Tick executes a single instruction.
//
// If the CPU is not powered, nothing happens. A step after HALT, or the
// fetch of an undefined opcode, stops the CPU; the fault is returned
// by this and every later Tick until Reset.
func (cpu *Cpu) Tick() (err error) {
	if !cpu.Powered {
		return
	}

	if cpu.fault != nil {
		err = cpu.fault
		return
	}

	defer func() {
		if err != nil {
			cpu.fault = err
			if cpu.Verbose {
				log.Printf("cpu: stopped: %v", err)
			}
		}
	}()

	if cpu.Halted {
		err = ErrHalted
		return
	}

	address := cpu.PC.Full()
	opcode := cpu.FetchByte()

	cpu.Cycles += uint64(cpu.cycles.CostOf(opcode))
	cpu.Counts[opcode]++

	ins := &cpu.instructions[opcode]
	if cpu.Verbose {
		log.Printf("%04x: %02x %v", address, opcode, ins)
	}

	if !ins.Defined() {
		err = ErrIllegalOpcode{Opcode: opcode, Address: address}
		return
	}

	ins.Effect(cpu)

	return
}
