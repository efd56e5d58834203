// Package format renders tokens and lexical errors as text for console
// display. It is used by the interactive CLI and by server logging; nothing
// here affects lexing itself.
package format

import (
	"fmt"

	"github.com/dekarrin/rosed"
	"github.com/dekarrin/sable/lex"
)

// DefaultWidth is the output width used when a caller does not have a
// better one.
const DefaultWidth = 80

// TokenTable returns a text table describing every token in toks, one row
// per token, with its kind, value, source position, and consumed length.
func TokenTable(toks []lex.Token) string {
	data := [][]string{{"Kind", "Value", "Line", "Col", "Len"}}

	for i := range toks {
		tok := toks[i]
		data = append(data, []string{
			tok.Kind.String(),
			fmt.Sprintf("%q", tok.Value),
			fmt.Sprintf("%d", tok.Line),
			fmt.Sprintf("%d", tok.Column),
			fmt.Sprintf("%d", tok.Length),
		})
	}

	tableOpts := rosed.Options{
		TableHeaders:             true,
		NoTrailingLineSeparators: true,
	}

	return rosed.Edit("").
		InsertTableOpts(0, data, DefaultWidth, tableOpts).
		String()
}

// Summarize returns a one-line description of a tokenization result, such
// as "7 token(s), 2 line(s)".
func Summarize(toks []lex.Token) string {
	lines := 0
	if len(toks) > 0 {
		lines = toks[len(toks)-1].Line
	}

	return fmt.Sprintf("%d token(s), %d line(s)", len(toks), lines)
}

// ErrorText renders err for console display, wrapped to the given width. If
// err is a *lex.SyntaxError the offending source line and a position cursor
// are included above the message; other errors render as their plain text.
func ErrorText(err error, width int) string {
	if width < 1 {
		width = DefaultWidth
	}

	if synErr, ok := err.(*lex.SyntaxError); ok {
		// the source line must not be re-wrapped or the position cursor
		// under it would drift; only the message is wrapped.
		msg := rosed.Edit(synErr.Error()).Wrap(width).String()
		return synErr.SourceLineWithCursor() + "\n" + msg
	}

	return rosed.Edit(err.Error()).Wrap(width).String()
}
