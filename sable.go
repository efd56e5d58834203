// Package sable provides the lexical frontend for the Sable stylesheet
// dialect, a small CSS-like language with '$'-variables and '@'-at-rules.
//
// The interesting work lives in the lex subpackage; this package only holds
// small conveniences for callers that want a full tokenization in one call.
package sable

import (
	"io"

	"github.com/dekarrin/sable/lex"
)

// Tokenize lexes the entire source text and returns every token in order.
// A fatal lexical error is returned as a *lex.SyntaxError.
func Tokenize(source string) ([]lex.Token, error) {
	return lex.New(source).All()
}

// TokenizeReader drains r and lexes its entire contents. Read errors are
// returned before any lexing occurs.
func TokenizeReader(r io.Reader) ([]lex.Token, error) {
	lx, err := lex.NewFromReader(r)
	if err != nil {
		return nil, err
	}
	return lx.All()
}
