package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperandNames(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("b", LANE_B.String())
	assert.Equal("(hl)", LANE_HL_MEM.String())
	assert.Equal("a", LANE_A.String())
	assert.Equal("Lane(8)", Lane(8).String())

	assert.Equal("bc", PAIR_BC.String())
	assert.Equal("sp", PAIR_SP.String())
	assert.Equal("af", PAIR_AF.String())

	assert.Equal("halted", STATE_HALTED.String())
}

func TestOperandLanes(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(NewMemory())

	for lane := LANE_B; lane <= LANE_A; lane++ {
		cpu.SetLane(lane, byte(0x10+lane))
		assert.Equal(byte(0x10+lane), cpu.Lane(lane), lane.String())
	}

	assert.Equal(uint16(0x1011), cpu.BC.Full())
	assert.Equal(uint16(0x1213), cpu.DE.Full())
	assert.Equal(uint16(0x1415), cpu.HL.Full())
	assert.Equal(uint16(0x17b0), cpu.AF.Full())
	// (hl) follows the h and l lanes.
	assert.Equal(byte(0x16), cpu.Memory.Read(0x1415))

	reg, _ := LANE_HL_MEM.Register(cpu)
	assert.Nil(reg)
	assert.Panics(func() { cpu.Lane(Lane(9)) })
	assert.Panics(func() { cpu.SetLane(Lane(-1), 0) })

	assert.Same(&cpu.SP, PAIR_SP.Register(cpu))
	assert.Same(&cpu.AF, PAIR_AF.Register(cpu))
	assert.Panics(func() { Pair(7).Register(cpu) })
}
