// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// MACRO_DEPTH_MAX is the deepest permitted macro expansion.
const MACRO_DEPTH_MAX = 16

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the first line of macro text.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":   "0",
	"RESET_PC": fmt.Sprintf("0x%04x", RESET_PC),
	"RESET_SP": fmt.Sprintf("0x%04x", RESET_SP),
}

// registerWords are the operand words that select a register, or (hl).
var registerWords = map[string]bool{
	"a": true, "b": true, "c": true, "d": true, "e": true, "h": true, "l": true,
	"(hl)": true,
	"af":   true, "bc": true, "de": true, "hl": true, "sp": true,
}

var (
	reIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	reCharacter  = regexp.MustCompile(`'\\?[^']'`)
	reParenEval  = regexp.MustCompile(`\$\([^\$]*\)`)
)

// Assembler is a single pass macro assembler for the z80emu instruction set.
//
// Mnemonics are the names of the instructions in the instruction set, with
// the immediate operand written in place of 'n' (8 bit) or 'nn' (16 bit).
type Assembler struct {
	Verbose      bool            // If set, verbosely logs the assembler actions.
	Instructions *InstructionSet // Instruction set to assemble for. Base set if nil.
	Opcode       []Opcode        // List of generated opcodes.

	predefine map[string]string   // Predefines
	Label     map[string]int      // Map of labels to addresses.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.

	mnemonic   map[string]byte // Map of instruction names to opcodes.
	address    int             // Address of the next generated byte.
	expansions int             // Number of macro expansions, for local labels.
	depth      int             // Current macro expansion depth.
}

// splitWords splits a line on whitespace and commas.
func splitWords(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return unicode.IsSpace(r) || r == ','
	})
}

// Predefine defines a new equate or redefines an existing equate,
// for all later calls to Parse.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the value of a number, or of a label already defined.
func (asm *Assembler) valueOf(word string) (value int64, err error) {
	label, ok := asm.Label[word]
	if ok {
		value = int64(label)
		return
	}

	value, err = strconv.ParseInt(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	return
}

// immediate returns the value of a word, which must fit in bits, either
// as an unsigned or a signed value.
func (asm *Assembler) immediate(word string, bits int) (value int64, err error) {
	value, err = asm.valueOf(word)
	if err != nil {
		return
	}

	if value >= (1<<bits) || value < -(1<<(bits-1)) {
		err = ErrValueRange{Value: value, Bits: bits}
		return
	}

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{Name: "asm"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		equ, err := strconv.ParseInt(str, 0, 64)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt64(equ)
	}
	for key, address := range asm.Label {
		pred[key] = starlark.MakeInt(address)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// parseLine parses a single line into words, after expanding character
// literals, $(...) expressions, equates, and labels.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	line = reCharacter.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "t":
				str = "\t"
			case "0":
				str = "\000"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	line = reParenEval.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	words = splitWords(line)

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]int, 16)
		}
		asm.Label[label] = asm.address
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	// .macro expansion
	macro, ok := asm.Macro[words[0]]
	if ok {
		name := words[0]

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		if asm.depth >= MACRO_DEPTH_MAX {
			err = ErrMacroNesting
			return
		}
		asm.depth++
		defer func() { asm.depth-- }()

		// Turn args into equates
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = args[n]
		}
		defer func() { asm.Equate = old_equate }()

		// '@' prefixes labels local to this expansion.
		asm.expansions++
		local := fmt.Sprintf("%v_%v_", name, asm.expansions)

		for n, line := range macro.Lines {
			lineno := macro.LineNo + n

			line = strings.ReplaceAll(line, "@", local)
			var body []string
			body, err = asm.parseLine(line, lineno)
			if err == nil {
				err = asm.parseWords(body, lineno)
			}
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// Parse parses an input stream into a Program.
// Assembly starts at RESET_PC, unless moved by an .org directive.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.Opcode = asm.Opcode[:0]
	if asm.Macro == nil {
		asm.Macro = make(map[string](*Macro))
	}
	clear(asm.Macro)
	asm.expansions = 0
	asm.depth = 0
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}
	asm.address = RESET_PC

	set := asm.Instructions
	if set == nil {
		set = BaseInstructions()
	}
	asm.mnemonic = make(map[string]byte, len(set))
	for opcode, ins := range set.All() {
		asm.mnemonic[ins.Name] = opcode
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])
		words := splitWords(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
				Args:   words[2:],
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	// Final linking of forward labels.
	for n := range asm.Opcode {
		op := &asm.Opcode[n]

		if len(op.LinkLabel) == 0 {
			continue
		}
		lineno = op.LineNo
		line = strings.Join(op.Words, " ")

		address, ok := asm.Label[op.LinkLabel]
		if !ok {
			err = ErrLabelMissing(op.LinkLabel)
			return
		}
		if len(op.Bytes) < 2 {
			log.Fatalf("Unable to link label '%s' to line %d: %v", op.LinkLabel, op.LineNo, op.Words)
		}
		op.Bytes[len(op.Bytes)-2] = byte(address)
		op.Bytes[len(op.Bytes)-1] = byte(address >> 8)
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}

// word16 returns the little-endian encoding of a 16-bit operand. If last is set,
// the operand may be a label that is not yet defined, which is returned as link.
func (asm *Assembler) word16(word string, last bool) (bytes []byte, link string, err error) {
	value, err := asm.immediate(word, 16)
	if _, is_number := err.(ErrParseNumber); is_number && reIdentifier.MatchString(word) {
		if !last {
			err = ErrLabelMissing(word)
			return
		}
		link = word
		value = 0
		err = nil
	}
	if err != nil {
		return
	}

	bytes = []byte{byte(value), byte(value >> 8)}
	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var bytes []byte
	var label string

	// no-op
	if len(words) == 0 {
		return
	}

	initial_words := words
	address := asm.address

	defer func() {
		if err != nil || len(bytes) == 0 {
			return
		}
		if address+len(bytes) > MEMORY_SIZE {
			err = ErrProgramSize
			return
		}
		opcode := Opcode{LineNo: lineno, Address: address, Words: initial_words, Bytes: bytes, LinkLabel: label}
		asm.Opcode = append(asm.Opcode, opcode)
		asm.address += len(bytes)
	}()

	switch words[0] {
	case ".org":
		if len(words) != 2 {
			err = ErrOrgSyntax
			return
		}
		var value int64
		value, err = asm.valueOf(words[1])
		if err != nil {
			return
		}
		if value < 0 || value > MEMORY_TOP {
			err = ErrValueRange{Value: value, Bits: 16}
			return
		}
		asm.address = int(value)
		return
	case ".db":
		if len(words) < 2 {
			err = ErrDataMissing
			return
		}
		for _, word := range words[1:] {
			var value int64
			value, err = asm.immediate(word, 8)
			if err != nil {
				return
			}
			bytes = append(bytes, byte(value))
		}
		return
	case ".dw":
		if len(words) < 2 {
			err = ErrDataMissing
			return
		}
		for n, word := range words[1:] {
			var data []byte
			data, label, err = asm.word16(word, n == len(words)-2)
			if err != nil {
				return
			}
			bytes = append(bytes, data...)
		}
		return
	}

	mnemonic := strings.ToLower(words[0])
	operands := make([]string, len(words)-1)
	var immediate string
	for n, word := range words[1:] {
		reg := strings.ToLower(word)
		if registerWords[reg] {
			operands[n] = reg
			continue
		}
		if len(immediate) != 0 {
			err = ErrInstructionInvalid
			return
		}
		immediate = word
		operands[n] = "%"
	}

	name := func(imm string) string {
		if len(operands) == 0 {
			return mnemonic
		}
		return mnemonic + " " + strings.ReplaceAll(strings.Join(operands, ","), "%", imm)
	}

	if len(immediate) == 0 {
		opcode, ok := asm.mnemonic[name("")]
		if !ok {
			err = ErrInstructionInvalid
			return
		}
		bytes = []byte{opcode}
		return
	}

	if opcode, ok := asm.mnemonic[name("n")]; ok {
		var value int64
		value, err = asm.immediate(immediate, 8)
		if err != nil {
			return
		}
		bytes = []byte{opcode, byte(value)}
		return
	}

	if opcode, ok := asm.mnemonic[name("nn")]; ok {
		var data []byte
		data, label, err = asm.word16(immediate, true)
		if err != nil {
			return
		}
		bytes = append([]byte{opcode}, data...)
		return
	}

	err = ErrInstructionInvalid
	return
}
