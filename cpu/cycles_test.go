package cpu

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Clock cycles of every opcode of the base instruction set.
var baseTimings = [256]uint{
	//   0   1   2  3  4   5   6  7  8  9  A  B  C  D  E  F
	4, 12, 1, 8, 4, 4, 8, 1, 1, 1, 1, 8, 4, 4, 8, 1, // 0x0_
	1, 12, 1, 8, 4, 4, 8, 1, 1, 1, 1, 8, 4, 4, 8, 1, // 0x1_
	1, 12, 1, 8, 4, 4, 8, 1, 1, 1, 1, 8, 4, 4, 8, 1, // 0x2_
	1, 12, 1, 8, 12, 12, 12, 1, 1, 1, 1, 8, 4, 4, 8, 1, // 0x3_
	4, 4, 4, 4, 4, 4, 8, 4, 4, 4, 4, 4, 4, 4, 8, 4, // 0x4_
	4, 4, 4, 4, 4, 4, 8, 4, 4, 4, 4, 4, 4, 4, 8, 4, // 0x5_
	4, 4, 4, 4, 4, 4, 8, 4, 4, 4, 4, 4, 4, 4, 8, 4, // 0x6_
	8, 8, 8, 8, 8, 8, 4, 8, 4, 4, 4, 4, 4, 4, 8, 4, // 0x7_
	4, 4, 4, 4, 4, 4, 8, 4, 1, 1, 1, 1, 1, 1, 1, 1, // 0x8_
	4, 4, 4, 4, 4, 4, 8, 4, 1, 1, 1, 1, 1, 1, 1, 1, // 0x9_
	4, 4, 4, 4, 4, 4, 8, 4, 4, 4, 4, 4, 4, 4, 8, 4, // 0xA_
	4, 4, 4, 4, 4, 4, 8, 4, 1, 1, 1, 1, 1, 1, 1, 1, // 0xB_
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 0xC_
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 0xD_
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 0xE_
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 0xF_
}

func TestCycleTable(t *testing.T) {
	assert := assert.New(t)

	set := BaseInstructions()
	ct := NewCycleTable(set)

	for n, expect := range baseTimings {
		opcode := byte(n)
		name := fmt.Sprintf("0x%02x %v", opcode, set[opcode])
		assert.Equal(expect, ct.CostOf(opcode), name)
		if set[opcode].Defined() {
			assert.Equal(set[opcode].Cycles, ct.CostOf(opcode), name)
		} else {
			assert.Equal(uint(CYCLES_DEFAULT), ct.CostOf(opcode), name)
		}
	}
}

func TestCycleTableExtended(t *testing.T) {
	assert := assert.New(t)

	set := BaseInstructions()
	set.Define(0xed, "ext", 20, func(cpu *Cpu) {})

	ct := NewCycleTable(set)
	assert.Equal(uint(20), ct.CostOf(0xed))
	assert.Equal(uint(4), ct.CostOf(0x00))

	base := NewCycleTable(BaseInstructions())
	assert.Equal(uint(CYCLES_DEFAULT), base.CostOf(0xed))
}
