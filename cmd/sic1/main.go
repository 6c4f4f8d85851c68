// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/MarkMcCulloh/sic1/cpu"
	"github.com/MarkMcCulloh/sic1/emulator"
	"github.com/MarkMcCulloh/sic1/io"
	"github.com/MarkMcCulloh/sic1/translate"
)

func main() {
	var compile string
	var input string
	var eval string
	var expect string
	var output string
	var listing bool
	var limit int
	var verbose bool
	var debug bool

	flag.StringVar(&compile, "c", "", "SIC-1 assembly file to run")
	flag.StringVar(&input, "i", "-", "Input values, whitespace separated")
	flag.StringVar(&eval, "e", "", "Input values, as a Starlark expression")
	flag.StringVar(&expect, "x", "", "Expected output values, as a Starlark expression")
	flag.StringVar(&output, "o", "-", "Output values, one per line")
	flag.BoolVar(&listing, "s", false, "Show the assembly listing, do not execute")
	flag.IntVar(&limit, "n", 100000, "Cycle limit, 0 for none")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&debug, "d", false, "Interactive debugger")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(compile) == 0 {
		log.Fatalf("%v: No program to assemble (-c)", os.Args[0])
	}

	inf, err := os.Open(compile)
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}
	defer inf.Close()

	asm := &cpu.Assembler{Verbose: verbose}
	prog, err := asm.Parse(inf)
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}

	if listing {
		fmt.Print(prog.String())
		return
	}

	if verbose {
		log.Printf("%v: messages in %v", os.Args[0], translate.Tag())
	}

	emu := emulator.NewEmulator(prog)
	emu.Verbose = verbose

	var inf_input *os.File
	emu.Input, inf_input, err = openInput(eval, input, debug)
	if err != nil {
		log.Fatalf("%v: %v", input, err)
	}
	if inf_input != nil {
		defer inf_input.Close()
	}

	if len(expect) != 0 {
		emu.Expected, err = io.EvalValues(expect)
		if err != nil {
			log.Fatalf("-x %v: %v", expect, err)
		}
	}

	if output == "-" {
		emu.Output = &io.Tape{Output: os.Stdout}
	} else {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
		emu.Output = &io.Tape{Output: ouf}
	}

	emu.Reset()

	if debug {
		runDebugger(emu, limit)
		return
	}

	err = emu.Run(limit)
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}

	if verbose || emu.Complete() {
		score := emu.Score()
		log.Printf("%v: %d cycles, %d bytes accessed, %d bytes of program", compile, score.Cycles, score.Bytes, score.ProgramBytes)
	}
}
