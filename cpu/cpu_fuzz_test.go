package cpu

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// operandSize returns the number of immediate bytes that follow an opcode.
func operandSize(opcode byte) uint16 {
	switch {
	case opcode&0xcf == 0x01:
		return 2
	case opcode&0xc7 == 0x06:
		return 1
	}
	return 0
}

func FuzzCpu(f *testing.F) {
	for op := range 0x100 {
		f.Add(byte(op), byte(0x34), byte(0x12), uint16(0x2000))
	}

	f.Fuzz(func(t *testing.T, opcode byte, lo byte, hi byte, hl uint16) {
		assert := assert.New(t)

		cpu := runCpu(t, []byte{opcode, lo, hi})
		cpu.HL.SetFull(hl)
		cpu.SP.SetFull(0xc000)

		ins := cpu.Instructions()[opcode]
		name := fmt.Sprintf("0x%02x %v hl:%04x\ncpu:%v", opcode, ins, hl, cpu.String())

		err := cpu.Tick()

		assert.Equal(uint64(cpu.CostOf(opcode)), cpu.Cycles, name)
		assert.Equal(uint64(1), cpu.Counts[opcode], name)
		assert.Equal(byte(0xb0), cpu.AF.Low(), name)

		if !ins.Defined() {
			assert.True(errors.Is(err, ErrIllegalOpcode{}), name)
			assert.Equal(uint64(CYCLES_DEFAULT), cpu.Cycles, name)
			assert.Equal(uint16(RESET_PC+1), cpu.PC.Full(), name)
			assert.Equal(STATE_STOPPED, cpu.State(), name)
			return
		}

		assert.NoError(err, name)
		assert.Equal(uint16(RESET_PC+1)+operandSize(opcode), cpu.PC.Full(), name)
		assert.Equal(opcode == 0x76, cpu.Halted, name)

		switch opcode {
		case 0x31:
			assert.Equal(uint16(hi)<<8|uint16(lo), cpu.SP.Full(), name)
		case 0x33:
			assert.Equal(uint16(0xc001), cpu.SP.Full(), name)
		case 0x3b:
			assert.Equal(uint16(0xbfff), cpu.SP.Full(), name)
		default:
			assert.Equal(uint16(0xc000), cpu.SP.Full(), name)
		}
	})
}
