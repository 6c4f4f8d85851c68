package cpu

import (
	"fmt"
	"iter"
	"maps"
	"strings"

	"github.com/MarkMcCulloh/sic1/internal"
)

// SourceLine attributes an address to the line of source that emitted it.
type SourceLine struct {
	LineNo  int // Line number, starting at 0.
	Source  string
	Command Command
}

// Program is the output of the assembler.
type Program struct {
	Bytes     []uint8                    // Memory image, indexed by address.
	SourceMap [ADDRESS_COUNT]*SourceLine // Source line for each address that starts a line.
	Symbols   map[string]uint8           // All symbols, including the predefined ones.
	Variables []Variable                 // Labels of .data directives.
}

// Debug returns the source line at ip, or the nearest one before it.
// exact is false when ip is not the first address of a line.
// line is nil when no line starts at or before ip.
func (prog *Program) Debug(ip int) (line *SourceLine, exact bool) {
	if ip < 0 {
		return
	}

	for addr := min(ip, ADDRESS_MAX); addr >= 0; addr-- {
		line = prog.SourceMap[addr]
		if line != nil {
			exact = addr == ip
			return
		}
	}

	return
}

// Lines iterates over the mapped addresses in address order.
func (prog *Program) Lines() iter.Seq2[int, *SourceLine] {
	return func(yield func(addr int, line *SourceLine) bool) {
		for addr, line := range prog.SourceMap {
			if line == nil {
				continue
			}
			if !yield(addr, line) {
				return
			}
		}
	}
}

// Labels iterates over the program symbols ordered by address, user labels first.
func (prog *Program) Labels() iter.Seq2[string, uint8] {
	user := maps.Clone(prog.Symbols)
	builtin := map[string]uint8{}
	for symbol, address := range sysSymbol {
		if user[symbol] == address {
			delete(user, symbol)
			builtin[symbol] = address
		}
	}

	return internal.IterSeq2Concat(
		internal.IterSortedByValue(user),
		internal.IterSortedByValue(builtin),
	)
}

// Size returns the program length in bytes.
func (prog *Program) Size() int {
	return len(prog.Bytes)
}

// String returns the assembly listing: address, bytes and source of each line.
func (prog *Program) String() string {
	var text strings.Builder

	for addr, line := range prog.Lines() {
		end := min(addr+line.Command.Size(), len(prog.Bytes))
		fmt.Fprintf(&text, "%02x:", addr)
		for _, value := range prog.Bytes[addr:end] {
			fmt.Fprintf(&text, " %02x", value)
		}
		pad := 3 * (SUBLEQ_SIZE - (end - addr))
		fmt.Fprintf(&text, "%*s  ; %d: %s\n", pad, "", line.LineNo, strings.TrimSpace(line.Source))
	}

	return text.String()
}
