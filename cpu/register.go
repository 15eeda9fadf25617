package cpu

// Register is a 16-bit register pair, whose high and low bytes (lanes) are
// also individually addressable.
//
// Mutators update the register in place, and return a copy of the updated
// value so that reads may be chained, ie `r.SetHigh(0x12).Full()`.
type Register uint16

// Full returns the 16-bit value.
func (r Register) Full() uint16 {
	return uint16(r)
}

// High returns the upper 8 bits.
func (r Register) High() byte {
	return byte(r >> 8)
}

// Low returns the lower 8 bits.
func (r Register) Low() byte {
	return byte(r)
}

// SetHigh replaces the upper 8 bits, leaving the lower 8 bits untouched.
func (r *Register) SetHigh(value byte) Register {
	*r = Register(uint16(value)<<8 | uint16(*r)&0x00ff)
	return *r
}

// SetLow replaces the lower 8 bits, leaving the upper 8 bits untouched.
func (r *Register) SetLow(value byte) Register {
	*r = Register(uint16(*r)&0xff00 | uint16(value))
	return *r
}

// SetFull replaces the 16-bit value.
func (r *Register) SetFull(value uint16) Register {
	*r = Register(value)
	return *r
}

// Increment adds 1 to the 16-bit value, wrapping 0xffff to 0x0000.
func (r *Register) Increment() Register {
	*r++
	return *r
}

// Decrement subtracts 1 from the 16-bit value, wrapping 0x0000 to 0xffff.
func (r *Register) Decrement() Register {
	*r--
	return *r
}

// IncHigh adds 1 to the upper 8 bits, without carry into the lower 8 bits.
func (r *Register) IncHigh() Register {
	return r.SetHigh(r.High() + 1)
}

// DecHigh subtracts 1 from the upper 8 bits, without borrow from the lower 8 bits.
func (r *Register) DecHigh() Register {
	return r.SetHigh(r.High() - 1)
}

// IncLow adds 1 to the lower 8 bits, without carry into the upper 8 bits.
func (r *Register) IncLow() Register {
	return r.SetLow(r.Low() + 1)
}

// DecLow subtracts 1 from the lower 8 bits, without borrow from the upper 8 bits.
func (r *Register) DecLow() Register {
	return r.SetLow(r.Low() - 1)
}
