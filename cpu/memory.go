package cpu

import (
	"fmt"
	"iter"
	"maps"
)

const (
	MEMORY_SIZE = 0x10000 // Size of the address space, in bytes.
	MEMORY_TOP  = 0xffff  // Highest address.
)

var _memory_defines = map[string]string{
	"MEMORY_SIZE": fmt.Sprintf("0x%x", MEMORY_SIZE),
	"MEMORY_TOP":  fmt.Sprintf("0x%x", MEMORY_TOP),
}

// Memory is the flat, byte addressable, address space of the machine.
// All addresses are 16-bit, so every access is in range.
type Memory struct {
	Data [MEMORY_SIZE]byte
}

// NewMemory creates a new zeroed memory.
func NewMemory() *Memory {
	return &Memory{}
}

// Defines for the memory
func (mem *Memory) Defines() iter.Seq2[string, string] {
	return maps.All(_memory_defines)
}

// Read returns the byte at address.
func (mem *Memory) Read(address uint16) byte {
	return mem.Data[address]
}

// Write stores value at address.
func (mem *Memory) Write(address uint16, value byte) {
	mem.Data[address] = value
}

// Reset sets every byte to zero.
func (mem *Memory) Reset() {
	clear(mem.Data[:])
}

// Load copies data into memory, starting at address.
// Nothing is written if data would extend past the top of memory.
func (mem *Memory) Load(address uint16, data []byte) (err error) {
	if int(address)+len(data) > MEMORY_SIZE {
		err = ErrProgramSize
		return
	}

	copy(mem.Data[address:], data)

	return
}
