package main

import (
	"os"

	"github.com/MarkMcCulloh/sic1/io"
)

// openInput selects the input port from the -e and -i flags.
// The debugger reads its commands from the terminal, so while debugging
// stdin is never used as input; an empty input reads as 0.
func openInput(eval string, input string, debug bool) (channel io.Channel, inf *os.File, err error) {
	switch {
	case len(eval) != 0:
		var values []int8
		values, err = io.EvalValues(eval)
		if err != nil {
			return
		}
		channel = io.NewBuffer(values...)
	case input == "-" && debug:
		channel = io.NewBuffer()
	case input == "-":
		channel = &io.Tape{Input: os.Stdin}
	default:
		inf, err = os.Open(input)
		if err != nil {
			return
		}
		channel = &io.Tape{Input: inf}
	}

	return
}
