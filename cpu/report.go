package cpu

import (
	"errors"
	"io"
	"iter"
	"strings"

	"github.com/ezrec/z80emu/translate"
)

// Report is a snapshot of the execution statistics.
type Report struct {
	Cycles uint64      // Total clock cycles charged.
	Counts [256]uint64 // Executions per opcode.
	Fault  error       // Error that stopped the CPU, if any.
}

// Report returns the statistics since the last reset.
func (cpu *Cpu) Report() (report Report) {
	report = Report{
		Cycles: cpu.Cycles,
		Counts: cpu.Counts,
		Fault:  cpu.fault,
	}

	return
}

// Executed returns an iterator over the opcodes executed at least once,
// in opcode order, with their execution count.
func (report *Report) Executed() iter.Seq2[byte, uint64] {
	return func(yield func(opcode byte, count uint64) bool) {
		for n, count := range report.Counts {
			if count == 0 {
				continue
			}
			if !yield(byte(n), count) {
				return
			}
		}
	}
}

// Instructions returns the total number of opcodes executed.
func (report *Report) Instructions() (total uint64) {
	for _, count := range report.Executed() {
		total += count
	}
	return
}

// WriteTo writes the report in human readable form.
// A fault is written only if it is not the normal stop after HALT.
func (report *Report) WriteTo(w io.Writer) (n int64, err error) {
	write := func(key string, args ...any) {
		if err != nil {
			return
		}
		var wrote int
		wrote, err = translate.Fprintf(w, key, args...)
		n += int64(wrote)
	}

	if report.Fault != nil && !errors.Is(report.Fault, ErrHalted) {
		write("%v\n", report.Fault)
	}
	write("Total Clock Cycles: %d\n", report.Cycles)
	for opcode, count := range report.Executed() {
		write("Instruction 0x%02x count is %d\n", opcode, count)
	}
	write("Halting now.\n")

	return
}

// String returns the report in human readable form.
func (report *Report) String() string {
	var sb strings.Builder
	report.WriteTo(&sb)
	return sb.String()
}
