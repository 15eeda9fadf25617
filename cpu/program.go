package cpu

import (
	"iter"
)

// Opcode represents a line of assembled code with its source location and generated bytes.
type Opcode struct {
	LineNo    int
	Address   int
	Words     []string
	Bytes     []byte
	LinkLabel string
}

// Program is an assembled listing.
type Program struct {
	Opcodes []Opcode
}

// Debug locates the opcode that covers an address.
type Debug struct {
	*Opcode
	Index int
}

// Debug returns the opcode, and the index into its bytes, for an address.
// The Opcode is nil if no opcode covers the address.
func (prog *Program) Debug(address uint16) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if int(address) >= op.Address && int(address) < op.Address+len(op.Bytes) {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  int(address) - op.Address,
			}
			break
		}
	}

	return
}

// Bytes returns an iterator over the address and value of every assembled byte.
func (prog *Program) Bytes() iter.Seq2[uint16, byte] {
	return func(yield func(address uint16, value byte) bool) {
		for _, op := range prog.Opcodes {
			for n, value := range op.Bytes {
				if !yield(uint16(op.Address+n), value) {
					return
				}
			}
		}
	}
}

// Size returns the total number of assembled bytes.
func (prog *Program) Size() (size int) {
	for _, op := range prog.Opcodes {
		size += len(op.Bytes)
	}
	return
}
