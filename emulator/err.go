package emulator

import (
	"errors"

	"github.com/MarkMcCulloh/sic1/translate"
)

var f = translate.From

var (
	ErrCycleLimit = errors.New(f("cycle limit exceeded"))
)

// ErrRuntime indicates the location of a runtime error.
// LineNo is -1 when no source line is known.
type ErrRuntime struct {
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo < 0 {
		return err.Err.Error()
	}
	return f("line %d %v", err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrOutputIncomplete is a halt before every expected output was produced.
type ErrOutputIncomplete struct {
	Count    int
	Expected int
}

func (err ErrOutputIncomplete) Error() string {
	return f("halted after %d of %d expected outputs", err.Count, err.Expected)
}

// ErrOutputMismatch is an output value that differs from the expected output.
type ErrOutputMismatch struct {
	Index    int
	Expected int8
	Actual   int8
}

func (err ErrOutputMismatch) Error() string {
	return f("output %d: expected %d, got %d", err.Index, err.Expected, err.Actual)
}
