package cpu

// Lane is an 8-bit operand, in the order of the Z80 3-bit register encoding.
type Lane int

//go:generate go tool stringer -linecomment -type=Lane
const (
	LANE_B      = Lane(0) // b
	LANE_C      = Lane(1) // c
	LANE_D      = Lane(2) // d
	LANE_E      = Lane(3) // e
	LANE_H      = Lane(4) // h
	LANE_L      = Lane(5) // l
	LANE_HL_MEM = Lane(6) // (hl)
	LANE_A      = Lane(7) // a
)

// Pair is a 16-bit operand, in the order of the Z80 2-bit register pair encoding.
type Pair int

//go:generate go tool stringer -linecomment -type=Pair
const (
	PAIR_BC = Pair(0) // bc
	PAIR_DE = Pair(1) // de
	PAIR_HL = Pair(2) // hl
	PAIR_SP = Pair(3) // sp
	PAIR_AF = Pair(4) // af
)

// Register returns the register pair, and if the lane is the high byte.
// The memory lane has no register, and returns nil.
func (lane Lane) Register(cpu *Cpu) (reg *Register, high bool) {
	switch lane {
	case LANE_B:
		return &cpu.BC, true
	case LANE_C:
		return &cpu.BC, false
	case LANE_D:
		return &cpu.DE, true
	case LANE_E:
		return &cpu.DE, false
	case LANE_H:
		return &cpu.HL, true
	case LANE_L:
		return &cpu.HL, false
	case LANE_A:
		return &cpu.AF, true
	}

	return
}

// Register returns the register for the pair.
func (pair Pair) Register(cpu *Cpu) *Register {
	switch pair {
	case PAIR_BC:
		return &cpu.BC
	case PAIR_DE:
		return &cpu.DE
	case PAIR_HL:
		return &cpu.HL
	case PAIR_SP:
		return &cpu.SP
	case PAIR_AF:
		return &cpu.AF
	}

	panic("unknown pair")
}
