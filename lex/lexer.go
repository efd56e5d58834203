// Package lex implements the lexical frontend for the Sable stylesheet
// dialect. It converts raw source text into a stream of typed tokens
// consumed by a downstream parser.
//
// The lexer is pull-based: tokens are materialized one at a time as the
// caller requests them via Next, and arbitrary lookahead is available via
// Peek without consuming. Lexing is permissive by design; an unterminated
// block comment or quoted string silently truncates at end of input rather
// than raising an error. The only fatal condition is a character that
// belongs to no lexical class, which halts tokenization with a
// *SyntaxError.
package lex

import (
	"io"
	"strings"
)

// Lexer is a pull-based tokenizer over a single source text. It owns a
// character Cursor and a FIFO buffer of tokens that have been read ahead
// but not yet consumed.
//
// A Lexer is not safe for concurrent use. The zero value is not usable;
// create one with New or NewFromReader.
type Lexer struct {
	cur *Cursor

	// lookahead buffer; grows from the back when Peek outruns it and
	// shrinks from the front on each Next.
	buf []Token

	// sticky fatal error; once set, every subsequent call reports it.
	err error
}

// New creates a Lexer over the given source text.
func New(source string) *Lexer {
	return &Lexer{
		cur: NewCursor(source),
	}
}

// NewFromReader creates a Lexer over the entire contents of r. The reader
// is drained immediately; errors from it are returned here, never from
// later token reads.
func NewFromReader(r io.Reader) (*Lexer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return New(string(data)), nil
}

// Next returns the next token in the stream and advances the stream by one
// token. Once the source is exhausted it returns nil with no error.
func (lx *Lexer) Next() (*Token, error) {
	tok, err := lx.Peek(0)
	if err != nil || tok == nil {
		return nil, err
	}

	lx.buf = lx.buf[1:]
	return tok, nil
}

// Peek returns the token at the given lookahead distance without consuming
// anything; offset 0 is the token Next would return. It returns nil with no
// error if the stream is exhausted before that distance. Tokens already
// buffered are returned as-is, so repeated peeks at the same offset are
// idempotent and never re-read the source.
func (lx *Lexer) Peek(offset int) (*Token, error) {
	if lx.err != nil {
		return nil, lx.err
	}

	for len(lx.buf) <= offset {
		tok, err := lx.readToken()
		if err != nil {
			lx.err = err
			return nil, err
		}
		if tok == nil {
			// source exhausted before reaching the requested offset
			return nil, nil
		}
		lx.buf = append(lx.buf, *tok)
	}

	tok := lx.buf[offset]
	return &tok, nil
}

// EOF returns whether the stream is exhausted; that is, whether Peek(0)
// would yield no token. A stream halted by a fatal error also reports EOF.
func (lx *Lexer) EOF() bool {
	tok, _ := lx.Peek(0)
	return tok == nil
}

// All drains the stream and returns every remaining token in order. It is
// one-shot; a second call returns an empty result.
func (lx *Lexer) All() ([]Token, error) {
	var all []Token

	for {
		tok, err := lx.Next()
		if err != nil {
			return nil, err
		}
		if tok == nil {
			return all, nil
		}
		all = append(all, *tok)
	}
}

// readToken inspects the next character(s) of the source and dispatches to
// exactly one reading routine. It returns nil with no error at end of
// input, and a *SyntaxError for a character matching no lexical class. The
// classifiers are consulted in a fixed priority order, so e.g. a '#' that
// does not open a hex color falls through to punctuation.
func (lx *Lexer) readToken() (*Token, error) {
	c := lx.cur

	if c.EOF() {
		return nil, nil
	}

	line := c.Line()
	col := c.Column()
	start := c.Pos()

	var kind Kind
	var value string

	ch := c.Peek(0)
	switch {
	case isSpace(ch):
		kind, value = Space, readSpace(c)
	case isCommentStart(ch, c.Peek(1)):
		kind, value = Comment, readComment(c)
	case isNumberStart(ch, c.Peek(1)):
		kind, value = Number, readNumber(c)
	case ch == '#' && hexColorLen(c) > 0:
		kind, value = ColorHex, readColorHex(c)
	case isPunct(ch):
		kind, value = Punct, string(c.Next())
	case isIdentStart(ch):
		kind, value = Ident, readIdent(c)
	case isOper(ch):
		kind, value = Operator, readOper(c)
	case ch == '"' || ch == '\'':
		kind, value = String, readString(c)
	case ch == '@':
		kind, value = AtRule, readSigilName(c)
	case ch == '$':
		kind, value = Variable, readSigilName(c)
	default:
		return nil, c.Errf("unrecognized character %q", ch)
	}

	return &Token{
		Kind:   kind,
		Value:  value,
		Length: c.Pos() - start,
		Line:   line,
		Column: col,
	}, nil
}

// readSpace consumes a maximal run of whitespace characters and returns it
// verbatim.
func readSpace(c *Cursor) string {
	var sb strings.Builder

	for isSpace(c.Peek(0)) {
		sb.WriteRune(c.Next())
	}

	return sb.String()
}

// readComment consumes a line or block comment and returns its interior
// text with the comment markers excluded.
//
// For a line comment, everything up to but not including the next newline
// is the value; the newline is left for the following whitespace token. For
// a block comment, characters are consumed through a one-character lag
// buffer so the closing "*/" can be detected without two-character
// pushback. If end of input arrives before the closing marker the comment
// ends there; the lag means the final consumed character is counted in the
// token's length but never reaches the value.
func readComment(c *Cursor) string {
	c.Next() // the '/'
	delim := c.Next()

	var sb strings.Builder

	if delim == '/' {
		for !c.EOF() && c.Peek(0) != '\n' {
			sb.WriteRune(c.Next())
		}
		return sb.String()
	}

	// block comment; delim was '*'
	var prev rune
	havePrev := false

	for !c.EOF() {
		ch := c.Next()
		if ch == '/' && havePrev && prev == '*' {
			// closing marker; neither the '*' nor the '/' is included
			return sb.String()
		}
		if havePrev {
			sb.WriteRune(prev)
		}
		prev, havePrev = ch, true
	}

	return sb.String()
}

// readNumber consumes a numeric literal: a maximal run of decimal digits
// containing at most one decimal point. A second '.' ends the run and is
// left for the next token.
func readNumber(c *Cursor) string {
	var sb strings.Builder

	wholePart := true
	for {
		ch := c.Peek(0)
		if isDigit(ch) {
			sb.WriteRune(c.Next())
		} else if ch == '.' && wholePart {
			wholePart = false
			sb.WriteRune(c.Next())
		} else {
			break
		}
	}

	return sb.String()
}

// hexColorLen scans ahead from a '#' at the cursor and reports the number
// of hex digits that make it a color literal: 3 or 6. It returns 0 when the
// digits that follow do not form a color, including when a seventh digit
// appears; the dispatcher then treats the '#' as punctuation.
func hexColorLen(c *Cursor) int {
	n := 0
	for isHexDigit(c.Peek(1 + n)) {
		n++
		if n > 6 {
			return 0
		}
	}

	if n == 3 || n == 6 {
		return n
	}
	return 0
}

// readColorHex consumes a '#' and the run of hex digits after it, returning
// the digits with the sigil stripped. It must only be called after
// hexColorLen reported a match.
func readColorHex(c *Cursor) string {
	c.Next() // the '#'

	var sb strings.Builder
	for isHexDigit(c.Peek(0)) {
		sb.WriteRune(c.Next())
	}

	return sb.String()
}

// readIdent consumes an identifier: the already-verified start character
// plus a maximal run of identifier-continue characters.
func readIdent(c *Cursor) string {
	var sb strings.Builder

	sb.WriteRune(c.Next())
	for isIdentPart(c.Peek(0)) {
		sb.WriteRune(c.Next())
	}

	return sb.String()
}

// readOper consumes an operator. Repeatable operators take the maximal run
// of that exact same character; all others are single-character tokens.
// Distinct operator characters are never merged.
func readOper(c *Cursor) string {
	ch := c.Next()
	if !isRepeatableOper(ch) {
		return string(ch)
	}

	var sb strings.Builder
	sb.WriteRune(ch)
	for c.Peek(0) == ch {
		sb.WriteRune(c.Next())
	}

	return sb.String()
}

// readString consumes a quoted string and returns its contents with the
// surrounding quotes stripped. A backslash marks the following character as
// escaped; both are copied verbatim with no interpretation. If end of input
// arrives before the closing quote, whatever accumulated so far is the
// value.
func readString(c *Cursor) string {
	quote := c.Next()

	var sb strings.Builder
	for !c.EOF() {
		ch := c.Next()

		if ch == '\\' {
			sb.WriteRune(ch)
			if !c.EOF() {
				sb.WriteRune(c.Next())
			}
			continue
		}

		if ch == quote {
			break
		}

		sb.WriteRune(ch)
	}

	return sb.String()
}

// readSigilName consumes an '@' or '$' sigil and the name after it,
// returning the name with the sigil stripped. Unlike identifiers the first
// character of the name is not required to be an identifier-start, so
// digit-led names like "@2x" are legal, as is an empty name.
func readSigilName(c *Cursor) string {
	c.Next() // the sigil

	var sb strings.Builder
	for isIdentPart(c.Peek(0)) {
		sb.WriteRune(c.Next())
	}

	return sb.String()
}
