package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemory(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory()
	assert.Equal(byte(0), mem.Read(0x0000))
	assert.Equal(byte(0), mem.Read(MEMORY_TOP))

	mem.Write(0x1234, 0xab)
	assert.Equal(byte(0xab), mem.Read(0x1234))
	mem.Write(0x1234, 0xcd)
	assert.Equal(byte(0xcd), mem.Read(0x1234))

	mem.Write(MEMORY_TOP, 0x55)
	assert.Equal(byte(0x55), mem.Read(MEMORY_TOP))

	mem.Reset()
	assert.Equal(byte(0), mem.Read(0x1234))
	assert.Equal(byte(0), mem.Read(MEMORY_TOP))
}

func TestMemoryLoad(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory()

	err := mem.Load(0x0100, []byte{1, 2, 3})
	assert.NoError(err)
	assert.Equal(byte(1), mem.Read(0x0100))
	assert.Equal(byte(2), mem.Read(0x0101))
	assert.Equal(byte(3), mem.Read(0x0102))

	err = mem.Load(0xfffe, []byte{4, 5})
	assert.NoError(err)
	assert.Equal(byte(5), mem.Read(0xffff))

	err = mem.Load(0xfffe, []byte{6, 7, 8})
	assert.ErrorIs(err, ErrProgramSize)
	assert.Equal(byte(4), mem.Read(0xfffe))
	assert.Equal(byte(0), mem.Read(0x0000))
}

func TestMemoryDefines(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory()

	defines := map[string]string{}
	for key, value := range mem.Defines() {
		defines[key] = value
	}

	assert.Equal("0x10000", defines["MEMORY_SIZE"])
	assert.Equal("0xffff", defines["MEMORY_TOP"])
}
