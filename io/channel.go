// Package io provides the value streams attached to the SIC-1 input and
// output ports: text tapes backed by io.Reader/io.Writer, fixed capacity
// buffers, and value lists parsed from text or Starlark expressions.
package io

// Channel is a stream of signed byte values.
type Channel interface {
	// Rewind resets the channel to its initial state, if possible.
	Rewind()
	// Read returns the next value, or io.EOF once the channel is exhausted.
	Read() (value int8, err error)
	// Write appends a value to the channel.
	Write(value int8) error
}
