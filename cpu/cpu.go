package cpu

import (
	"fmt"
	"log"
	"strings"
)

// Cpu is the interpreter for an assembled Program.
// A Cpu cannot be reset; create a new one to restart a program.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	program  *Program
	observer Observer

	memory  [ADDRESS_COUNT]uint8 // Memory image.
	ip      int                  // Current instruction pointer.
	running bool                 // Whether a whole instruction can be fetched at ip.

	cycles   int                 // Instructions executed.
	accessed [ADDRESS_COUNT]bool // Addresses touched so far.
	bytes    int                 // Count of distinct addresses touched.

	stepping bool
}

// NewCpu loads a program into memory and reports the initial state.
// A nil observer is replaced by NopObserver.
func NewCpu(prog *Program, observer Observer) (cpu *Cpu) {
	if observer == nil {
		observer = NopObserver{}
	}

	cpu = &Cpu{
		program:  prog,
		observer: observer,
	}

	for addr := range cpu.memory {
		var value uint8
		if addr < len(prog.Bytes) {
			value = prog.Bytes[addr]
		}
		cpu.memory[addr] = value
		observer.WriteMemory(uint8(addr), value)
	}

	cpu.running = cpu.canFetch()
	cpu.stateUpdated()

	return
}

// Running returns false once the machine has halted.
func (cpu *Cpu) Running() bool {
	return cpu.running
}

// Ip returns the instruction pointer.
func (cpu *Cpu) Ip() int {
	return cpu.ip
}

// Cycles returns the number of instructions executed.
func (cpu *Cpu) Cycles() int {
	return cpu.cycles
}

// BytesAccessed returns the number of distinct addresses read or written.
func (cpu *Cpu) BytesAccessed() int {
	return cpu.bytes
}

// Memory returns a copy of memory.
func (cpu *Cpu) Memory() [ADDRESS_COUNT]uint8 {
	return cpu.memory
}

// Program returns the program the Cpu was loaded with.
func (cpu *Cpu) Program() *Program {
	return cpu.program
}

// State returns the current state, as last reported to the observer.
func (cpu *Cpu) State() (state State) {
	state = State{
		Running: cpu.running,
		Ip:      cpu.ip,
		LineNo:  -1,
		Source:  "?",
		Cycles:  cpu.cycles,
		Bytes:   cpu.bytes,
	}

	line, exact := cpu.program.Debug(cpu.ip)
	if line != nil {
		state.LineNo = line.LineNo
		if exact {
			state.Source = line.Source
		}
	}

	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() string {
	var text strings.Builder

	status := "halted"
	if cpu.running {
		status = "running"
	}

	fmt.Fprintf(&text, "   ip: %02x (%v)\n", cpu.ip, status)
	fmt.Fprintf(&text, "cycle: %d\n", cpu.cycles)
	fmt.Fprintf(&text, "bytes: %d\n", cpu.bytes)

	for row := 0; row < ADDRESS_COUNT; row += 16 {
		fmt.Fprintf(&text, "   %02x:", row)
		for col := range 16 {
			fmt.Fprintf(&text, " %02x", cpu.memory[row+col])
		}
		text.WriteString("\n")
	}

	return text.String()
}

// canFetch is true if a whole instruction fits in memory at ip.
func (cpu *Cpu) canFetch() bool {
	return cpu.ip >= 0 && cpu.ip+SUBLEQ_SIZE < ADDRESS_COUNT
}

// access marks an address as touched.
func (cpu *Cpu) access(addr uint8) {
	if !cpu.accessed[addr] {
		cpu.accessed[addr] = true
		cpu.bytes++
	}
}

func (cpu *Cpu) read(addr uint8) uint8 {
	cpu.access(addr)
	return cpu.memory[addr]
}

func (cpu *Cpu) write(addr uint8, value uint8) {
	cpu.access(addr)
	cpu.memory[addr] = value
	cpu.observer.WriteMemory(addr, value)
}

func (cpu *Cpu) fetch() uint8 {
	value := cpu.read(uint8(cpu.ip))
	cpu.ip++
	return value
}

func (cpu *Cpu) stateUpdated() {
	cpu.observer.StateUpdated(cpu.State())
}

// Step executes a single instruction. It does nothing once halted.
func (cpu *Cpu) Step() {
	if !cpu.running {
		return
	}

	if cpu.stepping {
		panic(ErrStepReentrant)
	}
	cpu.stepping = true
	defer func() { cpu.stepping = false }()

	a := cpu.fetch()
	b := cpu.fetch()
	c := cpu.fetch()

	av := cpu.read(a)

	var bv uint8
	if b == ADDRESS_INPUT {
		cpu.access(ADDRESS_INPUT)
		bv = SignedToUnsigned(int(cpu.observer.ReadInput()))
	} else {
		bv = cpu.read(b)
	}

	// Wraps around on overflow.
	result := av - bv
	signed := UnsignedToSigned(result)

	if a == ADDRESS_OUTPUT {
		cpu.access(ADDRESS_OUTPUT)
		cpu.observer.WriteOutput(signed)
	} else {
		cpu.write(a, result)
	}

	if signed <= 0 {
		cpu.ip = int(c)
	}

	if cpu.Verbose {
		log.Printf("cpu: subleq %d, %d, %d: %d - %d = %d -> ip %02x", a, b, c, UnsignedToSigned(av), UnsignedToSigned(bv), signed, cpu.ip)
	}

	cpu.cycles++
	cpu.running = cpu.canFetch()
	cpu.stateUpdated()

	if !cpu.running {
		if cpu.Verbose {
			log.Printf("cpu: halted after %d cycles, %d bytes", cpu.cycles, cpu.bytes)
		}
		cpu.observer.Halt(cpu.cycles, cpu.bytes)
	}
}

// Run steps until the machine halts. It does not return for programs that
// never halt.
func (cpu *Cpu) Run() {
	for cpu.running {
		cpu.Step()
	}
}
