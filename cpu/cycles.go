package cpu

const (
	CYCLES_DEFAULT = 1 // Cost of an opcode with no defined instruction.
)

// CycleTable is the clock cycle cost of every opcode.
type CycleTable struct {
	cost [256]uint
}

// NewCycleTable creates the cycle table for an instruction set.
func NewCycleTable(set *InstructionSet) (ct *CycleTable) {
	ct = &CycleTable{}
	ct.initialize(set)

	return
}

// initialize sets the default cost for all opcodes, then overrides
// the cost of every instruction defined in the set.
func (ct *CycleTable) initialize(set *InstructionSet) {
	for n := range ct.cost {
		ct.cost[n] = CYCLES_DEFAULT
	}

	for opcode, ins := range set.All() {
		ct.cost[opcode] = ins.Cycles
	}
}

// CostOf returns the clock cycle cost of an opcode.
func (ct *CycleTable) CostOf(opcode byte) uint {
	return ct.cost[opcode]
}
