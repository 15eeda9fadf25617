package cpu

import (
	"iter"
)

// Effect is the state change of an instruction, after its opcode has been fetched.
type Effect func(cpu *Cpu)

// Instruction describes a single opcode.
type Instruction struct {
	Name   string // Assembly language mnemonic and operands.
	Cycles uint   // Clock cycles charged when executed.
	Effect Effect // State change. nil if the opcode is not defined.
}

// Defined returns true if the instruction has an effect.
func (ins Instruction) Defined() bool {
	return ins.Effect != nil
}

// String returns the instruction name, or "-" if undefined.
func (ins Instruction) String() string {
	if !ins.Defined() {
		return "-"
	}
	return ins.Name
}

// InstructionSet is the dispatch table, indexed by opcode.
type InstructionSet [256]Instruction

// Define an instruction for opcode. The cost must be non-zero, and the
// opcode must not already be defined.
func (set *InstructionSet) Define(opcode byte, name string, cycles uint, effect Effect) {
	switch {
	case effect == nil:
		panic(f("opcode 0x%02x '%v' has no effect", opcode, name))
	case cycles == 0:
		panic(f("opcode 0x%02x '%v' has no cycle cost", opcode, name))
	case set[opcode].Defined():
		panic(f("opcode 0x%02x '%v' already defined as '%v'", opcode, name, set[opcode].Name))
	}

	set[opcode] = Instruction{
		Name:   name,
		Cycles: cycles,
		Effect: effect,
	}
}

// All returns an iterator over the defined instructions, by opcode.
func (set *InstructionSet) All() iter.Seq2[byte, Instruction] {
	return func(yield func(opcode byte, ins Instruction) bool) {
		for n, ins := range set {
			if !ins.Defined() {
				continue
			}
			if !yield(byte(n), ins) {
				return
			}
		}
	}
}

var baseInstructions InstructionSet

// BaseInstructions returns a copy of the base instruction set, which may be
// extended with further definitions.
func BaseInstructions() *InstructionSet {
	set := baseInstructions
	return &set
}

// aluOp is an 8-bit accumulator operation.
type aluOp func(a, b byte) byte

func aluAdd(a, b byte) byte { return a + b }
func aluSub(a, b byte) byte { return a - b }
func aluAnd(a, b byte) byte { return a & b }
func aluXor(a, b byte) byte { return a ^ b }
func aluOr(a, b byte) byte  { return a | b }

// laneCycles returns the cost of an instruction on a lane, which is
// one memory access dearer on the (hl) lane.
func laneCycles(lane Lane, cycles uint) uint {
	if lane == LANE_HL_MEM {
		cycles += 4
	}
	return cycles
}

func incLane(lane Lane) Effect {
	return func(cpu *Cpu) {
		reg, high := lane.Register(cpu)
		switch {
		case reg == nil:
			cpu.SetLane(lane, cpu.Lane(lane)+1)
		case high:
			reg.IncHigh()
		default:
			reg.IncLow()
		}
	}
}

func decLane(lane Lane) Effect {
	return func(cpu *Cpu) {
		reg, high := lane.Register(cpu)
		switch {
		case reg == nil:
			cpu.SetLane(lane, cpu.Lane(lane)-1)
		case high:
			reg.DecHigh()
		default:
			reg.DecLow()
		}
	}
}

func loadLaneImmediate(lane Lane) Effect {
	return func(cpu *Cpu) {
		cpu.SetLane(lane, cpu.FetchByte())
	}
}

func loadLane(dst, src Lane) Effect {
	return func(cpu *Cpu) {
		cpu.SetLane(dst, cpu.Lane(src))
	}
}

func loadPairImmediate(pair Pair) Effect {
	return func(cpu *Cpu) {
		pair.Register(cpu).SetFull(cpu.FetchWord())
	}
}

func incPair(pair Pair) Effect {
	return func(cpu *Cpu) {
		pair.Register(cpu).Increment()
	}
}

func decPair(pair Pair) Effect {
	return func(cpu *Cpu) {
		pair.Register(cpu).Decrement()
	}
}

func aluLane(op aluOp, src Lane) Effect {
	return func(cpu *Cpu) {
		cpu.AF.SetHigh(op(cpu.AF.High(), cpu.Lane(src)))
	}
}

// Flags are not computed by any of the base instructions.
func init() {
	set := &baseInstructions

	set.Define(0x00, "nop", 4, func(cpu *Cpu) {})
	set.Define(0x76, "halt", 4, func(cpu *Cpu) { cpu.Halted = true })

	for lane := LANE_B; lane <= LANE_A; lane++ {
		op := byte(lane) << 3
		name := lane.String()
		// (hl) is read, then written back.
		rmw := uint(4)
		if lane == LANE_HL_MEM {
			rmw = 12
		}
		set.Define(0x04|op, "inc "+name, rmw, incLane(lane))
		set.Define(0x05|op, "dec "+name, rmw, decLane(lane))
		set.Define(0x06|op, "ld "+name+",n", laneCycles(lane, 8), loadLaneImmediate(lane))
	}

	for pair := PAIR_BC; pair <= PAIR_SP; pair++ {
		op := byte(pair) << 4
		name := pair.String()
		set.Define(0x01|op, "ld "+name+",nn", 12, loadPairImmediate(pair))
		set.Define(0x03|op, "inc "+name, 8, incPair(pair))
		set.Define(0x0b|op, "dec "+name, 8, decPair(pair))
	}

	for dst := LANE_B; dst <= LANE_A; dst++ {
		for src := LANE_B; src <= LANE_A; src++ {
			if dst == LANE_HL_MEM && src == LANE_HL_MEM {
				// halt
				continue
			}
			op := 0x40 | byte(dst)<<3 | byte(src)
			cycles := uint(4)
			if dst == LANE_HL_MEM || src == LANE_HL_MEM {
				cycles = 8
			}
			set.Define(op, "ld "+dst.String()+","+src.String(), cycles, loadLane(dst, src))
		}
	}

	alus := []struct {
		base   byte
		prefix string
		op     aluOp
	}{
		{0x80, "add a,", aluAdd},
		{0x90, "sub ", aluSub},
		{0xa0, "and ", aluAnd},
		{0xa8, "xor ", aluXor},
		{0xb0, "or ", aluOr},
	}
	for _, alu := range alus {
		for src := LANE_B; src <= LANE_A; src++ {
			set.Define(alu.base|byte(src), alu.prefix+src.String(), laneCycles(src, 4), aluLane(alu.op, src))
		}
	}
}
