package cpu

import (
	"regexp"
	"strings"
)

// Line is a single line of source, split into its parts.
type Line struct {
	Label    string   // Label defined by the line, including the '@'.
	Command  string   // Instruction or directive name.
	Operands []string // Raw operand tokens.
	Comment  string   // Comment text, including the ';'.
}

// Empty returns true if the line neither defines a label nor has a command.
func (ln Line) Empty() bool {
	return len(ln.Label) == 0 && len(ln.Command) == 0
}

const (
	identifierPattern = `[_a-zA-Z][_a-zA-Z0-9]*`
	referencePattern  = `@` + identifierPattern
	numberPattern     = `-?[0-9]+`
	offsetPattern     = `[+-][0-9]+`
	commandPattern    = `\.?` + identifierPattern
	expressionPattern = `(?:` + numberPattern + `|` + referencePattern + `(?:` + offsetPattern + `)?)`
)

var (
	lineRegexp = regexp.MustCompile(`^\s*` +
		`(?:(` + referencePattern + `)\s*:)?\s*` +
		`(?:(` + commandPattern + `)((?:\s+` + expressionPattern + `\s*)(?:,\s+` + expressionPattern + `\s*)*)?)?` +
		`\s*(;.*)?$`)
	referenceRegexp = regexp.MustCompile(`^(` + referencePattern + `)(` + offsetPattern + `)?$`)
)

// ParseLine splits a line of source into label, command, operands and comment.
func ParseLine(text string) (ln Line, err error) {
	groups := lineRegexp.FindStringSubmatch(text)
	if groups == nil {
		err = ErrLineSyntax
		return
	}

	ln.Label = groups[1]
	ln.Command = groups[2]
	ln.Comment = groups[4]

	if args := strings.TrimSpace(groups[3]); len(args) > 0 {
		for _, arg := range strings.Split(args, ",") {
			ln.Operands = append(ln.Operands, strings.TrimSpace(arg))
		}
	}

	return
}
