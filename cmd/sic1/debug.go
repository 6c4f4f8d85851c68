package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/MarkMcCulloh/sic1/emulator"
)

const debugHelp = `step [n]   execute n instructions (default 1)
run        run until halted, complete, or the cycle limit
reset      restart the program
state      show the current instruction
list       show the assembly listing
mem        show memory
symbols    show labels and their addresses
quit       leave the debugger
An empty line repeats the last command.
`

type debugger struct {
	emu   *emulator.Emulator
	limit int
	last  string
}

// state describes the current instruction.
func (dbg *debugger) state() string {
	state := dbg.emu.Cpu.State()

	status := "halted"
	if dbg.emu.Complete() {
		status = "complete"
	} else if state.Running {
		status = "running"
	}

	return fmt.Sprintf("%02x line %d: %v (%d cycles, %d bytes, %v)\n",
		state.Ip, state.LineNo, state.Source, state.Cycles, state.Bytes, status)
}

// command executes a debugger command, and returns the text to show.
func (dbg *debugger) command(line string) (text string, exit bool) {
	if len(strings.TrimSpace(line)) == 0 {
		line = dbg.last
	}
	dbg.last = line

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}

	var out strings.Builder

	switch strings.ToLower(fields[0]) {
	case "s", "step":
		count := 1
		if len(fields) > 1 {
			n, err := strconv.Atoi(fields[1])
			if err != nil || n < 1 {
				text = "usage: step [n]\n"
				return
			}
			count = n
		}
		for range count {
			done, err := dbg.emu.Tick()
			if err != nil {
				fmt.Fprintln(&out, err)
				break
			}
			if done {
				break
			}
		}
		out.WriteString(dbg.state())
	case "r", "run":
		err := dbg.emu.Run(dbg.limit)
		if err != nil {
			fmt.Fprintln(&out, err)
		}
		out.WriteString(dbg.state())
	case "reset":
		dbg.emu.Reset()
		out.WriteString(dbg.state())
	case "state":
		out.WriteString(dbg.state())
	case "l", "list":
		out.WriteString(dbg.emu.Program.String())
	case "m", "mem":
		out.WriteString(dbg.emu.Cpu.String())
	case "symbols":
		for symbol, address := range dbg.emu.Program.Labels() {
			fmt.Fprintf(&out, "%02x %v\n", address, symbol)
		}
	case "h", "help", "?":
		out.WriteString(debugHelp)
	case "q", "quit", "exit":
		exit = true
	default:
		fmt.Fprintf(&out, "%v: unknown command, try 'help'\n", fields[0])
	}

	text = out.String()
	return
}

// runDebugger runs the interactive debugger on the terminal.
func runDebugger(emu *emulator.Emulator, limit int) {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	dbg := &debugger{emu: emu, limit: limit}
	fmt.Print(dbg.state())

	for {
		line, err := ln.Prompt("sic1> ")
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			// End of input.
			fmt.Println()
			return
		}

		if len(strings.TrimSpace(line)) != 0 {
			ln.AppendHistory(line)
		}

		text, exit := dbg.command(line)
		fmt.Print(text)
		if exit {
			return
		}
	}
}
