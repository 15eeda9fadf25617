// Package cpu implements the execution core and assembler for the z80emu system.
//
// The core consists of six 16-bit register pairs (AF, BC, DE, HL, SP, PC)
// whose high and low bytes are individually addressable, a flat 64KiB memory,
// and a fetch-decode-execute engine driven by a dense 256 entry instruction
// table. Every executed opcode is charged its clock cycle cost from a cycle
// table derived from the instruction table, and counted in a per-opcode
// histogram.
//
// HALT is terminal: the step after a HALT stops the machine, as does the
// fetch of an opcode with no instruction defined for it.
//
// The assembler translates a small Z80-style assembly language, whose
// mnemonics are the instruction table names, into a Program that can be
// loaded into Memory. It supports macros, labels, equates, and compile-time
// expression evaluation.
package cpu
