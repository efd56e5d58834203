package format

import (
	"strings"
	"testing"

	"github.com/dekarrin/sable/lex"
	"github.com/stretchr/testify/assert"
)

func Test_TokenTable(t *testing.T) {
	assert := assert.New(t)

	toks, err := lex.New("$a: 1;").All()
	assert.NoError(err)

	table := TokenTable(toks)

	// rosed renders table headers uppercased
	assert.Contains(table, "KIND")
	assert.Contains(table, "variable")
	assert.Contains(table, "number")
	assert.Contains(table, `"a"`)
}

func Test_Summarize(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "empty",
			input:  "",
			expect: "0 token(s), 0 line(s)",
		},
		{
			name:   "one line",
			input:  "a:1;",
			expect: "4 token(s), 1 line(s)",
		},
		{
			name:   "two lines",
			input:  "a:1;\nb:2;",
			expect: "9 token(s), 2 line(s)",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			toks, err := lex.New(tc.input).All()
			assert.NoError(err)

			assert.Equal(tc.expect, Summarize(toks))
		})
	}
}

func Test_ErrorText_syntaxError(t *testing.T) {
	assert := assert.New(t)

	_, err := lex.New("a: `;").All()
	assert.Error(err)

	text := ErrorText(err, 80)

	assert.Contains(text, "a: `;")
	assert.Contains(text, "syntax error")
	assert.True(strings.Contains(text, "^"))
}
