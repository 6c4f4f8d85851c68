package io

import (
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/MarkMcCulloh/sic1/cpu"
)

const (
	VALUE_MIN = cpu.VALUE_MIN
	VALUE_MAX = cpu.VALUE_MAX
)

func parseValue(word string) (value int8, err error) {
	n, err := strconv.ParseInt(word, 10, 64)
	if err != nil {
		err = ErrParseValue(word)
		return
	}

	return checkValue(n)
}

func checkValue(n int64) (value int8, err error) {
	if n < VALUE_MIN || n > VALUE_MAX {
		err = ErrValueRange(n)
		return
	}

	value = int8(n)
	return
}

// ParseValues parses whitespace or comma separated decimal values.
func ParseValues(text string) (values []int8, err error) {
	words := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})

	for _, word := range words {
		var value int8
		value, err = parseValue(word)
		if err != nil {
			values = nil
			return
		}
		values = append(values, value)
	}

	return
}

// EvalValues evaluates a Starlark expression into a list of values.
// The expression may yield an integer, a string (one value per byte),
// or any iterable of integers, such as a list, tuple, or range.
func EvalValues(expr string) (values []int8, err error) {
	thread := starlark.Thread{Name: "values"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{
		"VALUE_MIN": starlark.MakeInt(VALUE_MIN),
		"VALUE_MAX": starlark.MakeInt(VALUE_MAX),
	}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}

	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}

	switch st_rc := st_rc.(type) {
	case starlark.Int:
		var value int8
		value, err = evalValue(expr, st_rc)
		if err != nil {
			return
		}
		values = []int8{value}
	case starlark.String:
		for _, b := range []byte(string(st_rc)) {
			var value int8
			value, err = checkValue(int64(b))
			if err != nil {
				values = nil
				return
			}
			values = append(values, value)
		}
	default:
		iter := starlark.Iterate(st_rc)
		if iter == nil {
			err = ErrParseExpression(expr)
			return
		}
		defer iter.Done()

		var item starlark.Value
		for iter.Next(&item) {
			var value int8
			value, err = evalValue(expr, item)
			if err != nil {
				values = nil
				return
			}
			values = append(values, value)
		}
	}

	return
}

func evalValue(expr string, item starlark.Value) (value int8, err error) {
	st_int, ok := item.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}

	n, ok := st_int.Int64()
	if !ok {
		err = ErrValueRange(VALUE_MAX + 1)
		return
	}

	return checkValue(n)
}
