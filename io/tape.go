package io

import (
	"bufio"
	"fmt"
	"io"
)

// Tape reads values from text on Input and writes values as text to Output.
// Input values are decimal integers separated by whitespace; each output
// value is written on its own line.
type Tape struct {
	Input  io.Reader
	Output io.Writer

	scanner *bufio.Scanner
}

var _ Channel = (*Tape)(nil)

// Rewind is not possible on a tape.
func (tc *Tape) Rewind() {
}

// Read returns the next value on the input, or io.EOF at the end of the input.
func (tc *Tape) Read() (value int8, err error) {
	if tc.Input == nil {
		err = io.EOF
		return
	}

	if tc.scanner == nil {
		tc.scanner = bufio.NewScanner(tc.Input)
		tc.scanner.Split(bufio.ScanWords)
	}

	if !tc.scanner.Scan() {
		err = tc.scanner.Err()
		if err == nil {
			err = io.EOF
		}
		return
	}

	return parseValue(tc.scanner.Text())
}

// Write writes a value to the output. Output is discarded if there is no writer.
func (tc *Tape) Write(value int8) (err error) {
	if tc.Output == nil {
		return
	}

	_, err = fmt.Fprintf(tc.Output, "%d\n", value)
	return
}
