package cpu

import (
	"errors"

	"github.com/MarkMcCulloh/sic1/translate"
)

var f = translate.From

var (
	// Interpreter errors
	ErrStepReentrant = errors.New(f("step called from an observer callback"))

	// Assembler errors
	ErrLineSyntax  = errors.New(f("invalid syntax"))
	ErrProgramSize = errors.New(f("program exceeds %d bytes", ADDRESS_COUNT))
)

// ErrSyntax locates an assembly error in the source.
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

// ErrArgumentCount is an operand count mismatch for a command.
type ErrArgumentCount struct {
	Command Command
	Count   int
}

func (err ErrArgumentCount) Error() string {
	least, most := err.Command.Operands()
	if least == most {
		return f("invalid number of arguments for %v: %d (must be %d)", err.Command, err.Count, least)
	}
	return f("invalid number of arguments for %v: %d (must be %d or %d)", err.Command, err.Count, least, most)
}

// ErrValueRange is a literal outside of its operand range.
type ErrValueRange struct {
	Text string
	Min  int
	Max  int
}

func (err ErrValueRange) Error() string {
	return f("invalid argument: %v (must be an integer on the range [%d, %d])", err.Text, err.Min, err.Max)
}

// ErrInstructionUnknown is an unrecognized instruction or directive name.
type ErrInstructionUnknown string

func (err ErrInstructionUnknown) Error() string {
	return f("unknown instruction name: %v", string(err))
}

// ErrSymbolDuplicate is a label bound more than once.
type ErrSymbolDuplicate struct {
	Symbol  string
	Address uint8
}

func (err ErrSymbolDuplicate) Error() string {
	return f("symbol already defined: %v (%d)", err.Symbol, err.Address)
}

// ErrSymbolUndefined is a reference to a label that is never bound.
type ErrSymbolUndefined string

func (err ErrSymbolUndefined) Error() string {
	return f("undefined reference: %v", string(err))
}
