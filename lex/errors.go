package lex

import "fmt"

// file errors.go contains the error type produced when tokenization fails.
// The lexer has exactly one fatal condition, an unrecognized character; all
// other questionable input (unterminated block comments, unterminated
// strings) deliberately truncates at end of input without erroring.

// SyntaxError is a fatal lexical error tied to a position in the source
// text. Once a SyntaxError is raised, tokenization halts; there is no
// skip-and-continue recovery.
type SyntaxError struct {
	sourceLine string
	message    string

	// line that the error occured on, 1-indexed.
	line int

	// position in line of the error, 1-indexed.
	pos int
}

func (se *SyntaxError) Error() string {
	if se.line == 0 {
		return fmt.Sprintf("syntax error: %s", se.message)
	}

	return fmt.Sprintf("syntax error: around line %d, char %d: %s", se.line, se.pos, se.message)
}

// Line returns the line the error occured on. Lines are 1-indexed. This
// will return 0 if the line is not set.
func (se *SyntaxError) Line() int {
	return se.line
}

// Position returns the character position within the line that the error
// occured on. Character positions are 1-indexed. This will return 0 if the
// position is not set.
func (se *SyntaxError) Position() int {
	return se.pos
}

// FullMessage shows the complete message of the error string along with the
// offending line and a cursor to the problem position in a formatted way.
func (se *SyntaxError) FullMessage() string {
	errMsg := se.Error()

	if se.line != 0 {
		errMsg = se.SourceLineWithCursor() + "\n" + errMsg
	}

	return errMsg
}

// SourceLineWithCursor returns the offending source code on one line and
// directly under it a cursor showing where the error occured.
//
// Returns a blank string if no source line was recorded for the error.
func (se *SyntaxError) SourceLineWithCursor() string {
	if se.sourceLine == "" {
		return ""
	}

	cursorLine := ""
	// pos is 1-indexed.
	for i := 0; i < se.pos-1; i++ {
		cursorLine += " "
	}

	return se.sourceLine + "\n" + cursorLine + "^"
}
