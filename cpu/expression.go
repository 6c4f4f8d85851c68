package cpu

import (
	"fmt"
	"math"
	"strconv"
)

// Expression is an operand value; either Resolved or a pending Reference.
type Expression interface {
	fmt.Stringer
	expression()
}

// Resolved is an operand whose final byte is known.
type Resolved uint8

func (Resolved) expression() {}

func (r Resolved) String() string {
	return strconv.Itoa(int(r))
}

// Reference is an operand naming a symbol that was not bound when it was seen.
// The offset is applied once the symbol is resolved.
type Reference struct {
	Symbol string
	Offset int
}

func (Reference) expression() {}

func (ref Reference) String() string {
	switch {
	case ref.Offset > 0:
		return fmt.Sprintf("%v+%d", ref.Symbol, ref.Offset)
	case ref.Offset < 0:
		return fmt.Sprintf("%v%d", ref.Symbol, ref.Offset)
	}
	return ref.Symbol
}

// Resolve looks the reference up in a symbol table.
func (ref Reference) Resolve(symbols map[string]uint8) (value Resolved, ok bool) {
	address, ok := symbols[ref.Symbol]
	if !ok {
		return
	}

	// Offsets wrap around the address space.
	value = Resolved(uint8(int(address) + ref.Offset))
	return
}

// parseReference splits '@name+N' into symbol and offset.
func parseReference(word string) (ref Reference, err error) {
	groups := referenceRegexp.FindStringSubmatch(word)
	if groups == nil {
		err = ErrLineSyntax
		return
	}

	ref.Symbol = groups[1]
	if len(groups[2]) > 0 {
		ref.Offset, err = strconv.Atoi(groups[2])
		if err != nil {
			err = ErrValueRange{Text: word, Min: math.MinInt, Max: math.MaxInt}
			return
		}
	}

	return
}

// parseNumber parses a decimal literal in [least, most].
func parseNumber(word string, least, most int) (value int, err error) {
	value, err = strconv.Atoi(word)
	if err != nil || value < least || value > most {
		err = ErrValueRange{Text: word, Min: least, Max: most}
		return
	}

	return
}
