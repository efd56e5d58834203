package lex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_classifiers(t *testing.T) {
	assert := assert.New(t)

	// whitespace is only tab, newline, and space
	assert.True(isSpace(' '))
	assert.True(isSpace('\t'))
	assert.True(isSpace('\n'))
	assert.False(isSpace('\r'))

	// identifier start vs continue
	assert.True(isIdentStart('_'))
	assert.False(isIdentStart('1'))
	assert.False(isIdentStart('-'))
	assert.True(isIdentPart('1'))
	assert.True(isIdentPart('-'))

	// every repeatable operator is an operator
	for _, ch := range ropers {
		assert.True(isOper(ch), "%q not in operator set", ch)
	}

	// punctuation and operator sets do not overlap
	for _, ch := range puncts {
		assert.False(isOper(ch), "%q in both sets", ch)
	}

	// classifiers never match the end-of-input sentinel
	assert.False(isSpace(EOFRune))
	assert.False(isDigit(EOFRune))
	assert.False(isIdentPart(EOFRune))
	assert.False(isPunct(EOFRune))
	assert.False(isOper(EOFRune))
}

func Test_isNumberStart(t *testing.T) {
	testCases := []struct {
		name   string
		ch     rune
		next   rune
		expect bool
	}{
		{name: "digit", ch: '5', next: 'x', expect: true},
		{name: "dot then digit", ch: '.', next: '5', expect: true},
		{name: "dot then letter", ch: '.', next: 'x', expect: false},
		{name: "dot at end of input", ch: '.', next: EOFRune, expect: false},
		{name: "letter", ch: 'x', next: '5', expect: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, isNumberStart(tc.ch, tc.next))
		})
	}
}

func Test_isCommentStart(t *testing.T) {
	assert := assert.New(t)

	assert.True(isCommentStart('/', '/'))
	assert.True(isCommentStart('/', '*'))
	assert.False(isCommentStart('/', 'x'))
	assert.False(isCommentStart('/', EOFRune))
	assert.False(isCommentStart('*', '/'))
}
