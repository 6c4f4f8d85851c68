package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/message"
)

func TestTag(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(tag, Tag())
	assert.Equal(message.NewPrinter(Tag()).Sprintf("%d", 7), From("%d", 7))
}

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("line 5 ok", From("line %d %v", 5, "ok"))
}
