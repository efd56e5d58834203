package sable

import (
	"strings"
	"testing"

	"github.com/dekarrin/sable/lex"
	"github.com/stretchr/testify/assert"
)

func Test_Tokenize(t *testing.T) {
	assert := assert.New(t)

	toks, err := Tokenize("$accent: #c0ffee;")
	assert.NoError(err)

	var kinds []lex.Kind
	for i := range toks {
		kinds = append(kinds, toks[i].Kind)
	}

	assert.Equal([]lex.Kind{
		lex.Variable, lex.Punct, lex.Space, lex.ColorHex, lex.Punct,
	}, kinds)
}

func Test_TokenizeReader(t *testing.T) {
	assert := assert.New(t)

	toks, err := TokenizeReader(strings.NewReader("a { b: 1 }"))
	assert.NoError(err)
	assert.Len(toks, 10)
}
