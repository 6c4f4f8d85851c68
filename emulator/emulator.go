// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"log"

	"github.com/MarkMcCulloh/sic1/cpu"
	"github.com/MarkMcCulloh/sic1/io"
)

// Score is the cost of a completed run.
type Score struct {
	Cycles       int // Instructions executed.
	Bytes        int // Distinct memory addresses accessed.
	ProgramBytes int // Size of the assembled program.
}

// Emulator state. CPU + program + IO ports.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.

	Input  io.Channel // Input port. An exhausted or missing input reads as 0.
	Output io.Channel // Output port. May be nil.

	Expected []int8 // If set, outputs are verified, and the run completes once all are produced.
	Outputs  []int8 // Outputs produced since the last reset.

	err error // First I/O error of the current tick.
}

// NewEmulator creates a new emulator for a program.
func NewEmulator(prog *cpu.Program) (emu *Emulator) {
	if prog == nil {
		prog = &cpu.Program{}
	}

	emu = &Emulator{
		Program: prog,
	}

	emu.Reset()

	return
}

// Reset reloads the program, and rewinds the input port.
func (emu *Emulator) Reset() {
	if emu.Input != nil {
		emu.Input.Rewind()
	}

	emu.Outputs = nil
	emu.err = nil

	cb := &cpu.Callbacks{
		OnReadInput:   emu.readInput,
		OnWriteOutput: emu.writeOutput,
	}

	if emu.Verbose {
		cb.OnHalt = func(cycles int, bytes int) {
			log.Printf("emulator: halted, %d outputs", len(emu.Outputs))
		}
	}

	emu.Cpu = cpu.NewCpu(emu.Program, cb)
	emu.Cpu.Verbose = emu.Verbose
}

func (emu *Emulator) fail(err error) {
	if emu.err == nil {
		emu.err = err
	}
}

func (emu *Emulator) readInput() (value int8) {
	if emu.Input == nil {
		return
	}

	value, err := emu.Input.Read()
	if errors.Is(err, io.EOF) {
		value = 0
		err = nil
	}
	if err != nil {
		emu.fail(err)
		value = 0
	}

	if emu.Verbose {
		log.Printf("emulator: input %d", value)
	}

	return
}

func (emu *Emulator) writeOutput(value int8) {
	index := len(emu.Outputs)
	emu.Outputs = append(emu.Outputs, value)

	if emu.Verbose {
		log.Printf("emulator: output %d", value)
	}

	if emu.Output != nil {
		err := emu.Output.Write(value)
		if err != nil {
			emu.fail(err)
		}
	}

	if index < len(emu.Expected) && emu.Expected[index] != value {
		emu.fail(ErrOutputMismatch{Index: index, Expected: emu.Expected[index], Actual: value})
	}
}

// Complete is true when every expected output has been produced.
func (emu *Emulator) Complete() bool {
	return len(emu.Expected) != 0 && len(emu.Outputs) >= len(emu.Expected)
}

// Done is true when the program has halted, or is complete.
func (emu *Emulator) Done() bool {
	return !emu.Cpu.Running() || emu.Complete()
}

// LineNo returns the current line number for the executing instruction.
func (emu *Emulator) LineNo() int {
	return emu.Cpu.State().LineNo
}

// Score returns the cost of the run so far.
func (emu *Emulator) Score() Score {
	return Score{
		Cycles:       emu.Cpu.Cycles(),
		Bytes:        emu.Cpu.BytesAccessed(),
		ProgramBytes: emu.Program.Size(),
	}
}

// Tick performs a single instruction of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	if emu.Done() {
		done = true
		return
	}

	emu.err = nil
	emu.Cpu.Step()

	err = emu.err
	if err != nil {
		return
	}

	done = emu.Done()
	return
}

// Run ticks until done. If limit is positive, running more than limit
// cycles is an ErrCycleLimit error. Halting before every expected output
// was produced is an ErrOutputIncomplete error.
func (emu *Emulator) Run(limit int) (err error) {
	for {
		if limit > 0 && emu.Cpu.Cycles() >= limit && !emu.Done() {
			err = &ErrRuntime{LineNo: emu.LineNo(), Err: ErrCycleLimit}
			return
		}

		var done bool
		done, err = emu.Tick()
		if err != nil {
			return
		}

		if done {
			if len(emu.Expected) != 0 && !emu.Complete() {
				err = &ErrRuntime{
					LineNo: emu.LineNo(),
					Err:    ErrOutputIncomplete{Count: len(emu.Outputs), Expected: len(emu.Expected)},
				}
			}
			return
		}
	}
}
