package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func assemble(t *testing.T, program ...string) *Program {
	asm := &Assembler{}
	prog, err := asm.Assemble(program)
	if err != nil {
		t.Fatal(err)
	}
	return prog
}

// recorder is an Observer that records everything it is told.
type recorder struct {
	input   []int8
	output  []int8
	writes  map[uint8]uint8
	loads   int
	states  []State
	halts   int
	halting State
}

func (rc *recorder) ReadInput() (value int8) {
	if len(rc.input) > 0 {
		value = rc.input[0]
		rc.input = rc.input[1:]
	}
	return
}

func (rc *recorder) WriteOutput(value int8) {
	rc.output = append(rc.output, value)
}

func (rc *recorder) WriteMemory(address uint8, value uint8) {
	if rc.writes == nil {
		rc.writes = map[uint8]uint8{}
	}
	if len(rc.states) == 0 {
		rc.loads++
		return
	}
	rc.writes[address] = value
}

func (rc *recorder) StateUpdated(state State) {
	rc.states = append(rc.states, state)
}

func (rc *recorder) Halt(cycles int, bytes int) {
	rc.halts++
	rc.halting = State{Cycles: cycles, Bytes: bytes}
}

func TestCpuInitialState(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t, negationLoop...)
	rc := &recorder{}
	cpu := NewCpu(prog, rc)

	assert.Equal(ADDRESS_COUNT, rc.loads)
	assert.Equal(1, len(rc.states))
	assert.Equal(State{
		Running: true,
		Ip:      0,
		LineNo:  2,
		Source:  "subleq @OUT, @IN",
	}, rc.states[0])
	assert.Equal(rc.states[0], cpu.State())

	memory := cpu.Memory()
	assert.Equal(prog.Bytes, memory[:len(prog.Bytes)])
	for _, value := range memory[len(prog.Bytes):] {
		assert.Equal(uint8(0), value)
	}
	assert.Equal(prog, cpu.Program())
	assert.Equal(0, cpu.Cycles())
	assert.Equal(0, cpu.BytesAccessed())
}

func TestCpuState_NoLine(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(&Program{Bytes: []uint8{1, 2, 3}}, nil)

	state := cpu.State()
	assert.Equal(-1, state.LineNo)
	assert.Equal("?", state.Source)

	// Line 0 is a real line.
	cpu = NewCpu(assemble(t, "subleq 0, 0, 0"), nil)
	assert.Equal(0, cpu.State().LineNo)
	assert.Equal("subleq 0, 0, 0", cpu.State().Source)
}

func TestCpuSingleInstruction(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t, "subleq @OUT, @IN")
	rc := &recorder{input: []int8{4}}
	cpu := NewCpu(prog, rc)

	cpu.Step()

	assert.Equal([]int8{-4}, rc.output)
	assert.Empty(rc.writes)
	assert.Equal(1, cpu.Cycles())
	// Result -4 branches to the default next instruction.
	assert.Equal(3, cpu.Ip())
	// ip 0..2, @OUT read and write, @IN
	assert.Equal(5, cpu.BytesAccessed())
	assert.Equal(State{
		Running: true,
		Ip:      3,
		LineNo:  0,
		Source:  "?",
		Cycles:  1,
		Bytes:   5,
	}, rc.states[1])
}

func TestCpuNegation(t *testing.T) {
	assert := assert.New(t)

	inputs := []int8{4, 5, 100, 101}
	expected := []int8{-4, -5, -100, -101}

	prog := assemble(t, negationLoop...)
	rc := &recorder{input: inputs}
	cpu := NewCpu(prog, rc)

	steps := 0
	for len(rc.output) < len(expected) {
		steps++
		if steps > 6*len(inputs) {
			t.Fatal("execution did not complete")
		}
		cpu.Step()
	}

	assert.Equal(expected, rc.output)
	assert.True(cpu.Running())
	assert.Equal(0, rc.halts)
	assert.Equal(7, steps)

	// @zero - @zero is written back on every loop.
	assert.Equal(map[uint8]uint8{6: 0}, rc.writes)
}

func TestCpuWraparound(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t,
		"subleq @a, @b",
		"subleq @c, @d",
		"subleq @HALT, @HALT, @HALT",
		"@a: .data -128",
		"@b: .data 1",
		"@c: .data 127",
		"@d: .data -1",
	)
	rc := &recorder{}
	cpu := NewCpu(prog, rc)

	cpu.Step()
	memory := cpu.Memory()
	assert.Equal(uint8(127), memory[prog.Symbols["@a"]])
	assert.Equal(int8(127), UnsignedToSigned(memory[prog.Symbols["@a"]]))
	// Positive, so no branch.
	assert.Equal(3, cpu.Ip())

	cpu.Step()
	memory = cpu.Memory()
	assert.Equal(uint8(0x80), memory[prog.Symbols["@c"]])
	assert.Equal(int8(-128), UnsignedToSigned(memory[prog.Symbols["@c"]]))
	assert.Equal(6, cpu.Ip())

	assert.Equal(map[uint8]uint8{9: 127, 11: 0x80}, rc.writes)
}

func TestCpuBranch(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		a, b int
		ip   int
	}){
		{"positive", 5, 3, 3},
		{"zero", 3, 3, 9},
		{"negative", 3, 5, 9},
		{"wrap positive", -128, 1, 3},
		{"wrap negative", 127, -1, 9},
	}

	for _, entry := range table {
		prog := &Program{Bytes: []uint8{
			12, 13, 9,
			0, 0, 0,
			0, 0, 0,
			0, 0, 0,
			SignedToUnsigned(entry.a), SignedToUnsigned(entry.b),
		}}
		cpu := NewCpu(prog, nil)
		cpu.Step()
		assert.Equal(entry.ip, cpu.Ip(), entry.name)
		memory := cpu.Memory()
		assert.Equal(SignedToUnsigned(entry.a-entry.b), memory[12], entry.name)
	}
}

func TestCpuConversions(t *testing.T) {
	assert := assert.New(t)

	for value := VALUE_MIN; value <= VALUE_MAX; value++ {
		unsigned := SignedToUnsigned(value)
		assert.Equal(int8(value), UnsignedToSigned(unsigned))
		assert.Equal(uint8(int8(value)), unsigned)
	}

	assert.Equal(uint8(0xff), SignedToUnsigned(-1))
	assert.Equal(uint8(0x00), SignedToUnsigned(256))
	assert.Equal(int8(-1), UnsignedToSigned(0xff))
	assert.Equal(int8(-128), UnsignedToSigned(0x80))
	assert.Equal(int8(127), UnsignedToSigned(0x7f))
}

func TestCpuBytesAccessed(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t,
		"@loop: subleq @x, @one",
		"subleq @zero, @zero, @loop",
		"@x: .data 100",
		"@one: .data 1",
		"@zero: .data 0",
	)
	cpu := NewCpu(prog, nil)

	// The loop only ever touches addresses 0..8.
	for range 50 {
		cpu.Step()
	}
	assert.Equal(50, cpu.Cycles())
	assert.Equal(9, cpu.BytesAccessed())
	assert.True(cpu.Running())
}

func TestCpuInputAccess(t *testing.T) {
	assert := assert.New(t)

	// Reading @IN never reads memory at 253, and a nil observer reads 0.
	prog := assemble(t, "subleq @x, @IN", "@x: .data 7")
	cpu := NewCpu(prog, nil)
	cpu.Step()

	memory := cpu.Memory()
	assert.Equal(uint8(7), memory[3])
	// ip 0..2, @x, @IN
	assert.Equal(5, cpu.BytesAccessed())
}

func TestCpuHalt(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t,
		"subleq @OUT, @IN",
		"subleq @zero, @zero, @HALT",
		"@zero: .data 0",
	)
	rc := &recorder{input: []int8{9}}
	cpu := NewCpu(prog, rc)

	cpu.Run()

	assert.False(cpu.Running())
	assert.Equal(ADDRESS_HALT, cpu.Ip())
	assert.Equal(1, rc.halts)
	assert.Equal(2, rc.halting.Cycles)
	assert.Equal(cpu.BytesAccessed(), rc.halting.Bytes)
	assert.Equal([]int8{-9}, rc.output)

	last := rc.states[len(rc.states)-1]
	assert.False(last.Running)
	assert.Equal(ADDRESS_HALT, last.Ip)
	assert.Equal(2, last.LineNo)
	assert.Equal("?", last.Source)

	// Halted machines ignore further steps.
	cpu.Step()
	cpu.Run()
	assert.Equal(1, rc.halts)
	assert.Equal(2, cpu.Cycles())
	assert.Equal(3, len(rc.states))
}

func TestCpuHaltGeometry(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		target  int
		running bool
	}){
		{250, true},
		{252, true},
		{253, false},
		{254, false},
		{255, false},
	}

	for _, entry := range table {
		prog := &Program{Bytes: []uint8{3, 3, uint8(entry.target)}}
		rc := &recorder{}
		cpu := NewCpu(prog, rc)
		cpu.Step()
		assert.Equal(entry.target, cpu.Ip(), entry.target)
		assert.Equal(entry.running, cpu.Running(), entry.target)
		if entry.running {
			assert.Equal(0, rc.halts)
		} else {
			assert.Equal(1, rc.halts)
		}
	}
}

func TestCpuFallThrough(t *testing.T) {
	assert := assert.New(t)

	// Positive results fall through to the next instruction.
	prog := &Program{Bytes: []uint8{255, 254, 0}}
	prog.Bytes = append(prog.Bytes, make([]uint8, ADDRESS_MAX-2)...)
	prog.Bytes[255] = 2
	prog.Bytes[254] = 1
	cpu := NewCpu(prog, nil)
	cpu.Step()
	assert.Equal(3, cpu.Ip())
	assert.True(cpu.Running())

	// Empty memory is subleq 0, 0, 0 which loops forever at 0.
	cpu = NewCpu(&Program{}, nil)
	for range 10 {
		cpu.Step()
	}
	assert.Equal(0, cpu.Ip())
	assert.True(cpu.Running())
}

func TestCpuHaltSelf(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t, "subleq @HALT, @HALT, @HALT")
	rc := &recorder{}
	cpu := NewCpu(prog, rc)
	cpu.Step()

	assert.False(cpu.Running())
	assert.Equal(1, rc.halts)
	assert.Equal(map[uint8]uint8{255: 0}, rc.writes)
}

func TestCpuCallbacks(t *testing.T) {
	assert := assert.New(t)

	var outputs []int8
	var states, halts, writes int
	cb := &Callbacks{
		OnReadInput:    func() int8 { return -7 },
		OnWriteOutput:  func(value int8) { outputs = append(outputs, value) },
		OnWriteMemory:  func(address uint8, value uint8) { writes++ },
		OnStateUpdated: func(state State) { states++ },
		OnHalt:         func(cycles int, bytes int) { halts++ },
	}

	prog := assemble(t, "subleq @OUT, @IN, @HALT")
	cpu := NewCpu(prog, cb)
	cpu.Step()

	assert.Equal([]int8{7}, outputs)
	assert.Equal(ADDRESS_COUNT, writes)
	assert.Equal(2, states)
	assert.Equal(0, halts)
	// A positive result does not branch to @HALT.
	assert.True(cpu.Running())
	assert.Equal(3, cpu.Ip())

	empty := &Callbacks{}
	assert.Equal(int8(0), empty.ReadInput())
	empty.WriteOutput(1)
	empty.WriteMemory(1, 1)
	empty.StateUpdated(State{})
	empty.Halt(1, 1)
}

func TestCpuReentrant(t *testing.T) {
	assert := assert.New(t)

	var cpu *Cpu
	cb := &Callbacks{
		OnWriteOutput: func(value int8) { cpu.Step() },
	}

	prog := assemble(t, "subleq @OUT, @IN")
	cpu = NewCpu(prog, cb)

	assert.PanicsWithValue(ErrStepReentrant, cpu.Step)
}

func TestCpuString(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t, "subleq @OUT, @IN")
	cpu := NewCpu(prog, nil)

	text := cpu.String()
	assert.Contains(text, "ip: 00 (running)")
	assert.Contains(text, "00: fe fd 03 00")
}
