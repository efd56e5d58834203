package lex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Cursor_PeekDoesNotAdvance(t *testing.T) {
	assert := assert.New(t)

	c := NewCursor("ab")

	assert.Equal('a', c.Peek(0))
	assert.Equal('b', c.Peek(1))
	assert.Equal(EOFRune, c.Peek(2))

	// nothing moved
	assert.Equal(0, c.Pos())
	assert.Equal(1, c.Line())
	assert.Equal(1, c.Column())
}

func Test_Cursor_NextTracksPosition(t *testing.T) {
	assert := assert.New(t)

	c := NewCursor("ab\nc")

	assert.Equal('a', c.Next())
	assert.Equal(1, c.Line())
	assert.Equal(2, c.Column())

	assert.Equal('b', c.Next())
	assert.Equal(3, c.Column())

	// the newline bumps the line counter and resets the column
	assert.Equal('\n', c.Next())
	assert.Equal(2, c.Line())
	assert.Equal(1, c.Column())

	assert.Equal('c', c.Next())
	assert.Equal(4, c.Pos())
	assert.True(c.EOF())
	assert.Equal(EOFRune, c.Next())
}

func Test_Cursor_EmptySource(t *testing.T) {
	assert := assert.New(t)

	c := NewCursor("")

	assert.True(c.EOF())
	assert.Equal(EOFRune, c.Peek(0))
	assert.Equal(EOFRune, c.Next())
	assert.Equal(0, c.Pos())
}

func Test_Cursor_Errf(t *testing.T) {
	assert := assert.New(t)

	c := NewCursor("first\nbad line here\n")
	for i := 0; i < 10; i++ {
		c.Next()
	}

	err := c.Errf("did not expect %q", 'l')

	synErr, ok := err.(*SyntaxError)
	if !assert.True(ok, "error is not a *SyntaxError") {
		return
	}

	assert.Equal(2, synErr.Line())
	assert.Equal(5, synErr.Position())
	assert.Contains(synErr.Error(), "did not expect")
	assert.Contains(synErr.FullMessage(), "bad line here")
}
