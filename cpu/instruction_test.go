package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstructionNames(t *testing.T) {
	assert := assert.New(t)

	set := BaseInstructions()

	table := [](struct {
		opcode byte
		name   string
	}){
		{0x00, "nop"},
		{0x01, "ld bc,nn"},
		{0x0b, "dec bc"},
		{0x31, "ld sp,nn"},
		{0x33, "inc sp"},
		{0x34, "inc (hl)"},
		{0x35, "dec (hl)"},
		{0x36, "ld (hl),n"},
		{0x3c, "inc a"},
		{0x3e, "ld a,n"},
		{0x41, "ld b,c"},
		{0x46, "ld b,(hl)"},
		{0x70, "ld (hl),b"},
		{0x76, "halt"},
		{0x7f, "ld a,a"},
		{0x80, "add a,b"},
		{0x96, "sub (hl)"},
		{0xa7, "and a"},
		{0xae, "xor (hl)"},
		{0xb1, "or c"},
	}

	for _, entry := range table {
		assert.Equal(entry.name, set[entry.opcode].Name)
		assert.True(set[entry.opcode].Defined(), entry.name)
	}

	for _, opcode := range []byte{0x02, 0x10, 0x88, 0x98, 0xb8, 0xcb, 0xff} {
		assert.False(set[opcode].Defined())
		assert.Equal("-", set[opcode].String())
	}
}

func TestInstructionAll(t *testing.T) {
	assert := assert.New(t)

	set := BaseInstructions()

	count := 0
	last := -1
	for opcode, ins := range set.All() {
		assert.True(ins.Defined())
		assert.Less(last, int(opcode))
		last = int(opcode)
		count++
	}

	// nop, halt, 24 lane, 12 pair, 63 loads, 40 alu
	assert.Equal(141, count)
}

func TestInstructionDefine(t *testing.T) {
	assert := assert.New(t)

	set := BaseInstructions()
	nop := func(cpu *Cpu) {}

	assert.Panics(func() { set.Define(0xed, "ext", 4, nil) })
	assert.Panics(func() { set.Define(0xed, "ext", 0, nop) })
	assert.Panics(func() { set.Define(0x00, "ext", 4, nop) })
	assert.False(set[0xed].Defined())

	assert.NotPanics(func() { set.Define(0xed, "ext", 4, nop) })
	assert.True(set[0xed].Defined())
	assert.Panics(func() { set.Define(0xed, "ext", 4, nop) })

	// The base set is unchanged.
	assert.False(BaseInstructions()[0xed].Defined())
}
