// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"io"
	"log"
	"maps"
	"slices"
)

// Predefined system symbols.
var sysSymbol = map[string]uint8{
	"@IN":   ADDRESS_INPUT,
	"@OUT":  ADDRESS_OUTPUT,
	"@HALT": ADDRESS_HALT,
}

// Instruction is a line of source after the first assembler pass.
type Instruction struct {
	LineNo      int          // Source line number, starting at 0.
	Source      string       // Source line text.
	Address     int          // Address of the first emitted byte.
	Label       string       // Label defined on the line, if any.
	Command     Command      // Instruction or directive.
	Expressions []Expression // One expression per emitted byte.
}

// Variable is a label bound to a .data directive.
type Variable struct {
	Symbol  string
	Address uint8
}

// Assembler is a two pass assembler for the SIC-1 system.
type Assembler struct {
	Verbose      bool          // If set, verbosely logs the assembler actions.
	Instructions []Instruction // List of first pass instructions.

	Symbol    map[string]uint8 // Map of symbols to addresses.
	Variables []Variable       // Labels of .data directives, in source order.

	predefine map[string]uint8 // Predefines
	address   int              // Next output address.
}

// Predefine defines an additional symbol, bound before any source is seen.
func (asm *Assembler) Predefine(symbol string, address uint8) {
	if asm.predefine == nil {
		asm.predefine = map[string]uint8{symbol: address}
	} else {
		asm.predefine[symbol] = address
	}
}

// reset clears all state from a previous assembly.
func (asm *Assembler) reset() {
	asm.Instructions = asm.Instructions[:0]
	asm.Variables = asm.Variables[:0]
	asm.Symbol = maps.Clone(sysSymbol)
	maps.Copy(asm.Symbol, asm.predefine)
	asm.address = 0
}

// Address returns the address the next emitted byte will be placed at.
func (asm *Assembler) Address() int {
	return asm.address
}

// expression resolves a single operand word.
func (asm *Assembler) expression(word string, least, most int) (expr Expression, err error) {
	if word[0] != '@' {
		var value int
		value, err = parseNumber(word, least, most)
		if err != nil {
			return
		}
		expr = Resolved(SignedToUnsigned(value))
		return
	}

	ref, err := parseReference(word)
	if err != nil {
		return
	}

	// Bound symbols resolve now, the rest wait for the second pass.
	if value, ok := ref.Resolve(asm.Symbol); ok {
		expr = value
	} else {
		expr = ref
	}

	return
}

// AssembleLine runs the first pass on a single line of source.
// Lines that emit nothing return a nil instruction.
func (asm *Assembler) AssembleLine(text string, lineno int) (inst *Instruction, err error) {
	if asm.Symbol == nil {
		asm.reset()
	}

	ln, err := ParseLine(text)
	if err != nil {
		return
	}

	if ln.Empty() {
		return
	}

	if len(ln.Label) > 0 {
		address, ok := asm.Symbol[ln.Label]
		if ok {
			err = ErrSymbolDuplicate{Symbol: ln.Label, Address: address}
			return
		}
		if asm.address > ADDRESS_MAX {
			err = ErrProgramSize
			return
		}
	}

	if len(ln.Command) == 0 {
		asm.Symbol[ln.Label] = uint8(asm.address)
		return
	}

	cmd, ok := commandMap[ln.Command]
	if !ok {
		err = ErrInstructionUnknown(ln.Command)
		return
	}

	least, most := cmd.Operands()
	if len(ln.Operands) < least || len(ln.Operands) > most {
		err = ErrArgumentCount{Command: cmd, Count: len(ln.Operands)}
		return
	}

	if asm.address+cmd.Size() > ADDRESS_COUNT {
		err = ErrProgramSize
		return
	}

	inst = &Instruction{
		LineNo:  lineno,
		Source:  text,
		Address: asm.address,
		Label:   ln.Label,
		Command: cmd,
	}

	switch cmd {
	case CMD_SUBLEQ:
		for _, word := range ln.Operands {
			var expr Expression
			expr, err = asm.expression(word, ADDRESS_MIN, ADDRESS_MAX)
			if err != nil {
				return nil, err
			}
			inst.Expressions = append(inst.Expressions, expr)
		}
		if len(inst.Expressions) < SUBLEQ_SIZE {
			// Fall through to the next instruction.
			inst.Expressions = append(inst.Expressions, Resolved(asm.address+SUBLEQ_SIZE))
		}
	case CMD_DATA:
		var expr Expression
		expr, err = asm.expression(ln.Operands[0], VALUE_MIN, VALUE_MAX)
		if err != nil {
			return nil, err
		}
		inst.Expressions = append(inst.Expressions, expr)
	}

	// The label is bound only once the whole line is valid.
	if len(ln.Label) > 0 {
		asm.Symbol[ln.Label] = uint8(asm.address)
		if cmd == CMD_DATA {
			asm.Variables = append(asm.Variables, Variable{Symbol: ln.Label, Address: uint8(asm.address)})
		}
	}

	asm.address += cmd.Size()

	return
}

// Assemble assembles lines of source into a Program.
func (asm *Assembler) Assemble(lines []string) (prog *Program, err error) {
	asm.reset()

	for n, text := range lines {
		lineno := n

		if len(text) == 0 {
			continue
		}

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		var inst *Instruction
		inst, err = asm.AssembleLine(text, lineno)
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: text, Err: err}
			return
		}

		if inst != nil {
			asm.Instructions = append(asm.Instructions, *inst)
		}
	}

	prog = &Program{
		Bytes:     make([]uint8, 0, asm.address),
		Symbols:   maps.Clone(asm.Symbol),
		Variables: slices.Clone(asm.Variables),
	}

	// Final linking of references.
	for n := range asm.Instructions {
		inst := &asm.Instructions[n]

		prog.SourceMap[inst.Address] = &SourceLine{
			LineNo:  inst.LineNo,
			Source:  inst.Source,
			Command: inst.Command,
		}

		for _, expr := range inst.Expressions {
			var value Resolved
			switch expr := expr.(type) {
			case Resolved:
				value = expr
			case Reference:
				var ok bool
				value, ok = expr.Resolve(asm.Symbol)
				if !ok {
					prog = nil
					err = &ErrSyntax{LineNo: inst.LineNo, Line: inst.Source, Err: ErrSymbolUndefined(expr.Symbol)}
					return
				}
				if asm.Verbose {
					log.Printf("%v: link %v = %d\n", inst.LineNo, expr, value)
				}
			}
			prog.Bytes = append(prog.Bytes, uint8(value))
		}
	}

	return
}

// Parse assembles an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	var lines []string

	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	return asm.Assemble(lines)
}
