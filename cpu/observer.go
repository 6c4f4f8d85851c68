package cpu

// State is the interpreter state reported after construction and each step.
type State struct {
	Running bool   // False once halted.
	Ip      int    // Instruction pointer.
	LineNo  int    // Source line at or before Ip, starting at 0, or -1 if none.
	Source  string // Source text when Ip starts a line, "?" otherwise.
	Cycles  int    // Instructions executed.
	Bytes   int    // Distinct memory addresses accessed.
}

// Observer receives the interpreter's input, output and state notifications.
// Callbacks run synchronously inside Step and must not call back into the Cpu.
type Observer interface {
	// ReadInput returns the next value from the input port.
	ReadInput() int8
	// WriteOutput receives a value written to the output port.
	WriteOutput(value int8)
	// WriteMemory is called on every write to general memory, including the
	// initial program load.
	WriteMemory(address uint8, value uint8)
	// StateUpdated is called after construction and after every step.
	StateUpdated(state State)
	// Halt is called once, on the step that halts the machine.
	Halt(cycles int, bytes int)
}

// NopObserver ignores all notifications and reads 0 from the input port.
// Embed it to implement only part of Observer.
type NopObserver struct{}

var _ Observer = NopObserver{}

func (NopObserver) ReadInput() int8 { return 0 }
func (NopObserver) WriteOutput(value int8) {}
func (NopObserver) WriteMemory(address uint8, value uint8) {}
func (NopObserver) StateUpdated(state State) {}
func (NopObserver) Halt(cycles int, bytes int) {}

// Callbacks adapts optional functions to an Observer.
// A nil function behaves like NopObserver.
type Callbacks struct {
	OnReadInput    func() int8
	OnWriteOutput  func(value int8)
	OnWriteMemory  func(address uint8, value uint8)
	OnStateUpdated func(state State)
	OnHalt         func(cycles int, bytes int)
}

var _ Observer = (*Callbacks)(nil)

func (cb *Callbacks) ReadInput() (value int8) {
	if cb.OnReadInput != nil {
		value = cb.OnReadInput()
	}
	return
}

func (cb *Callbacks) WriteOutput(value int8) {
	if cb.OnWriteOutput != nil {
		cb.OnWriteOutput(value)
	}
}

func (cb *Callbacks) WriteMemory(address uint8, value uint8) {
	if cb.OnWriteMemory != nil {
		cb.OnWriteMemory(address, value)
	}
}

func (cb *Callbacks) StateUpdated(state State) {
	if cb.OnStateUpdated != nil {
		cb.OnStateUpdated(state)
	}
}

func (cb *Callbacks) Halt(cycles int, bytes int) {
	if cb.OnHalt != nil {
		cb.OnHalt(cycles, bytes)
	}
}
