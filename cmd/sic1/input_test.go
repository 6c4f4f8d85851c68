package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MarkMcCulloh/sic1/io"
)

func TestOpenInput(t *testing.T) {
	assert := assert.New(t)

	channel, inf, err := openInput("[1, -2]", "-", false)
	assert.NoError(err)
	assert.Nil(inf)
	if buf, ok := channel.(*io.Buffer); assert.True(ok) {
		assert.Equal([]int8{1, -2}, buf.Values())
	}

	channel, inf, err = openInput("", "-", false)
	assert.NoError(err)
	assert.Nil(inf)
	if tape, ok := channel.(*io.Tape); assert.True(ok) {
		assert.Equal(os.Stdin, tape.Input)
	}

	_, _, err = openInput("[1, 200]", "-", false)
	assert.ErrorIs(err, io.ErrValueRange(200))

	_, _, err = openInput("", filepath.Join(t.TempDir(), "missing"), false)
	assert.Error(err)
}

func TestOpenInput_File(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "input.txt")
	assert.NoError(os.WriteFile(path, []byte("5 6\n"), 0o644))

	channel, inf, err := openInput("", path, true)
	assert.NoError(err)
	if !assert.NotNil(inf) {
		return
	}
	defer inf.Close()

	value, err := channel.Read()
	assert.NoError(err)
	assert.Equal(int8(5), value)
}

func TestOpenInput_Debug(t *testing.T) {
	assert := assert.New(t)

	// The debugger owns stdin, so the default input is empty.
	channel, inf, err := openInput("", "-", true)
	assert.NoError(err)
	assert.Nil(inf)
	if buf, ok := channel.(*io.Buffer); assert.True(ok) {
		assert.Empty(buf.Values())
	}

	dbg := newDebugger(t)
	dbg.emu.Input = channel
	dbg.emu.Expected = nil
	dbg.emu.Reset()

	text, exit := dbg.command("step")
	assert.False(exit)
	assert.Equal("03 line 2: subleq @zero, @zero, @loop (1 cycles, 5 bytes, running)\n", text)
	assert.Equal([]int8{0}, dbg.emu.Outputs)
}
