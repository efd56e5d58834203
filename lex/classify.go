package lex

import "strings"

// This file contains the character classifiers the dispatcher consults to
// select a reading routine. All of them are pure functions of one or two
// characters of lookahead.

const (
	// puncts is the set of punctuation characters. Each always lexes as a
	// single-character token.
	puncts = "()[]{},;:.#"

	// opers is the set of operator characters.
	opers = "+-*/%<>=&|!?^~"

	// ropers is the subset of operator characters that may repeat to form a
	// single multi-character token of identical characters, such as "&&" or
	// "==". All other operators always lex one character at a time, so
	// "<=" is two tokens, never one.
	ropers = "&|="
)

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n'
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func isHexDigit(ch rune) bool {
	return isDigit(ch) || ('a' <= ch && ch <= 'f') || ('A' <= ch && ch <= 'F')
}

func isLetter(ch rune) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

// isIdentStart returns whether ch can begin an identifier.
func isIdentStart(ch rune) bool {
	return isLetter(ch) || ch == '_'
}

// isIdentPart returns whether ch can continue an identifier. This is a
// superset of isIdentStart that additionally allows digits and hyphens.
func isIdentPart(ch rune) bool {
	return isIdentStart(ch) || isDigit(ch) || ch == '-'
}

func isPunct(ch rune) bool {
	return strings.ContainsRune(puncts, ch)
}

func isOper(ch rune) bool {
	return strings.ContainsRune(opers, ch)
}

func isRepeatableOper(ch rune) bool {
	return strings.ContainsRune(ropers, ch)
}

// isCommentStart returns whether ch followed by next opens a line or block
// comment.
func isCommentStart(ch, next rune) bool {
	return ch == '/' && (next == '/' || next == '*')
}

// isNumberStart returns whether ch followed by next begins a numeric
// literal. A literal may lead with a decimal point only when a digit
// immediately follows it.
func isNumberStart(ch, next rune) bool {
	return isDigit(ch) || (ch == '.' && isDigit(next))
}
