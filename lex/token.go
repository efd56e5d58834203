package lex

import "fmt"

// Kind is the lexical class of a token. The set of kinds is closed; the
// lexer will never produce a Token whose Kind is outside of the constants
// defined here.
type Kind int

const (
	// Space is a maximal run of whitespace characters.
	Space Kind = iota

	// Comment is the interior text of a line comment or a block comment,
	// with the comment markers excluded.
	Comment

	// Number is a numeric literal such as "123", "123.45", or ".45".
	Number

	// ColorHex is a hex color literal; the value is the 3 or 6 hex digits
	// with the leading '#' stripped.
	ColorHex

	// Punct is a single punctuation character.
	Punct

	// Operator is an operator; most are single characters, but the
	// repeatable operators '&', '|', and '=' may form a run of the same
	// character ("&&", "||", "==").
	Operator

	// Ident is an identifier such as a property or function name.
	Ident

	// String is a quoted string with the surrounding quotes stripped.
	// Escape sequences are carried verbatim, uninterpreted.
	String

	// AtRule is an at-rule name with the leading '@' stripped.
	AtRule

	// Variable is a variable name with the leading '$' stripped.
	Variable
)

// String returns the human-readable name of the Kind.
func (k Kind) String() string {
	switch k {
	case Space:
		return "space"
	case Comment:
		return "comment"
	case Number:
		return "number"
	case ColorHex:
		return "color"
	case Punct:
		return "punct"
	case Operator:
		return "operator"
	case Ident:
		return "identifier"
	case String:
		return "string"
	case AtRule:
		return "atrule"
	case Variable:
		return "variable"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Token is one classified, position-tagged span of source text. Tokens are
// immutable once produced.
//
// Value is the semantic payload and may be a lossy view of the source; for
// sigil-led kinds (AtRule, Variable, ColorHex) the sigil is stripped, and
// for String tokens the surrounding quotes are stripped. Length is always
// the exact count of source characters consumed to produce the token, so
// concatenating the Lengths of a full tokenization reconstructs the size of
// the input even where Value does not.
type Token struct {
	// Kind is the lexical class of the token.
	Kind Kind

	// Value is the semantic payload of the token. Its exact meaning depends
	// on Kind.
	Value string

	// Length is the number of source characters consumed while reading the
	// token.
	Length int

	// Line is the 1-indexed line the token began on.
	Line int

	// Column is the 1-indexed column the token began on.
	Column int
}

// String returns a compact representation of the token suitable for
// debugging output.
func (t Token) String() string {
	return fmt.Sprintf("(%s %q @%d:%d)", t.Kind, t.Value, t.Line, t.Column)
}
