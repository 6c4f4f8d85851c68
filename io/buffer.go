package io

import (
	"io"
)

// Buffer is a replayable list of values.
type Buffer struct {
	Capacity int // Capacity in values, or 0 for unlimited.

	ReadIndex int
	Data      []int8
}

var _ Channel = (*Buffer)(nil)

// NewBuffer creates an unlimited buffer holding values.
func NewBuffer(values ...int8) (buf *Buffer) {
	buf = &Buffer{
		Data: append([]int8(nil), values...),
	}

	return
}

// Rewind restarts reading from the first value.
func (buf *Buffer) Rewind() {
	buf.ReadIndex = 0
}

// Read returns the next unread value.
func (buf *Buffer) Read() (value int8, err error) {
	if buf.ReadIndex >= len(buf.Data) {
		err = io.EOF
		return
	}

	value = buf.Data[buf.ReadIndex]
	buf.ReadIndex++

	return
}

// Write appends a value. Returns ErrChannelFull if the buffer has reached capacity.
func (buf *Buffer) Write(value int8) (err error) {
	if buf.Capacity > 0 && len(buf.Data) >= buf.Capacity {
		err = ErrChannelFull
		return
	}

	buf.Data = append(buf.Data, value)

	return
}

// Values returns the unread values.
func (buf *Buffer) Values() []int8 {
	return buf.Data[buf.ReadIndex:]
}
