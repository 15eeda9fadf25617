package cpu

import (
	"errors"

	"github.com/ezrec/z80emu/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrHalted      = errors.New(f("step after halt"))
	ErrProgramSize = errors.New(f("program exceeds address space"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrOrgSyntax          = errors.New(f(".org syntax"))
	ErrDataMissing        = errors.New(f("data missing"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrMacroSyntax        = errors.New(f(".macro syntax"))
	ErrMacroNesting       = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate     = errors.New(f(".macro duplicated"))
	ErrMacroLonely        = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm    = errors.New(f(".endm without .macro"))
)

// ErrIllegalOpcode is the fault raised when the fetched opcode has no
// instruction defined for it.
type ErrIllegalOpcode struct {
	Opcode  byte   // Offending opcode.
	Address uint16 // Address the opcode was fetched from.
}

func (err ErrIllegalOpcode) Error() string {
	return f("instruction 0x%02x not valid (at 0x%04x)", err.Opcode, err.Address)
}

func (err ErrIllegalOpcode) Is(target error) (ok bool) {
	_, ok = target.(ErrIllegalOpcode)
	return
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrValueRange reports an operand that does not fit its encoding.
type ErrValueRange struct {
	Value int64
	Bits  int
}

func (err ErrValueRange) Error() string {
	return f("%v does not fit in %v bits", err.Value, err.Bits)
}

// ErrMacro locates an error in the expansion of a macro.
type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, err.Line, err.Err)
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}
