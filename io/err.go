package io

import (
	"errors"
	"io"

	"github.com/MarkMcCulloh/sic1/translate"
)

var f = translate.From

var (
	// Channel errors
	ErrChannelFull = errors.New(f("channel full"))
)

// ErrParseValue is a token that is not a decimal integer.
type ErrParseValue string

func (err ErrParseValue) Error() string {
	return f("'%v' is not a number", string(err))
}

// ErrValueRange is a value that does not fit in a signed byte.
type ErrValueRange int64

func (err ErrValueRange) Error() string {
	return f("input value outside range of [%d, %d]: %d", VALUE_MIN, VALUE_MAX, int64(err))
}

// ErrParseExpression is a Starlark expression that does not yield values.
type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("%v is not a value or list of values", string(err))
}

// EOF is returned by Channel.Read once the channel is exhausted.
var EOF = io.EOF
