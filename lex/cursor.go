package lex

import "fmt"

// EOFRune is the sentinel returned by Cursor.Peek and Cursor.Next once the
// end of input is reached.
const EOFRune rune = -1

// Cursor provides character-level lookahead, consumption, and position
// tracking over source text. It is the only component that touches the raw
// source; the lexer's reading routines consume characters exclusively
// through it.
//
// Line and column counters are 1-indexed. Consuming a newline increments
// the line counter and resets the column counter; consuming any other
// character increments the column counter.
type Cursor struct {
	src  []rune
	pos  int
	line int
	col  int
}

// NewCursor creates a Cursor positioned at the start of the given source
// text.
func NewCursor(source string) *Cursor {
	return &Cursor{
		src:  []rune(source),
		line: 1,
		col:  1,
	}
}

// Peek returns the character at the cursor position plus offset without
// advancing. It returns EOFRune if that position is at or past the end of
// input.
func (c *Cursor) Peek(offset int) rune {
	if c.pos+offset >= len(c.src) {
		return EOFRune
	}
	return c.src[c.pos+offset]
}

// Next consumes and returns the current character, advancing the cursor and
// updating the line and column counters. It returns EOFRune if the cursor
// is already at the end of input.
func (c *Cursor) Next() rune {
	if c.pos >= len(c.src) {
		return EOFRune
	}

	ch := c.src[c.pos]
	c.pos++

	if ch == '\n' {
		c.line++
		c.col = 1
	} else {
		c.col++
	}

	return ch
}

// EOF returns whether the cursor is at the end of input.
func (c *Cursor) EOF() bool {
	return c.pos >= len(c.src)
}

// Pos returns the absolute character position of the cursor. It advances
// only via Next.
func (c *Cursor) Pos() int {
	return c.pos
}

// Line returns the 1-indexed line number of the current position.
func (c *Cursor) Line() int {
	return c.line
}

// Column returns the 1-indexed column number of the current position.
func (c *Cursor) Column() int {
	return c.col
}

// Errf builds a fatal *SyntaxError tied to the current cursor position. The
// error carries the full text of the current source line so callers can
// render it with a position cursor.
func (c *Cursor) Errf(format string, a ...interface{}) error {
	return &SyntaxError{
		message:    fmt.Sprintf(format, a...),
		line:       c.line,
		pos:        c.col,
		sourceLine: c.fullLine(),
	}
}

// fullLine returns the complete text of the line the cursor is currently
// positioned on, including anything before and after the cursor.
func (c *Cursor) fullLine() string {
	start := c.pos
	for start > 0 && c.src[start-1] != '\n' {
		start--
	}

	end := c.pos
	for end < len(c.src) && c.src[end] != '\n' {
		end++
	}

	return string(c.src[start:end])
}
