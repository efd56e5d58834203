package lex

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Lexer_All_kindsAndValues(t *testing.T) {
	type kv struct {
		kind  Kind
		value string
	}

	testCases := []struct {
		name   string
		input  string
		expect []kv
	}{
		{
			name:   "blank input",
			input:  "",
			expect: []kv{},
		},
		{
			name:  "single identifier",
			input: "width",
			expect: []kv{
				{Ident, "width"},
			},
		},
		{
			name:  "identifier with hyphen, underscore, and digits",
			input: "a-b_c2",
			expect: []kv{
				{Ident, "a-b_c2"},
			},
		},
		{
			name:  "number then unit identifier",
			input: "1px",
			expect: []kv{
				{Number, "1"},
				{Ident, "px"},
			},
		},
		{
			name:  "fractional number with leading dot",
			input: ".45",
			expect: []kv{
				{Number, ".45"},
			},
		},
		{
			name:  "second decimal point ends the number",
			input: "1.2.3",
			expect: []kv{
				{Number, "1.2"},
				{Number, ".3"},
			},
		},
		{
			name:  "trailing decimal point stays in the number",
			input: "12.",
			expect: []kv{
				{Number, "12."},
			},
		},
		{
			name:  "lone dot is punctuation",
			input: ".",
			expect: []kv{
				{Punct, "."},
			},
		},
		{
			name:  "three digit hex color",
			input: "#fff;",
			expect: []kv{
				{ColorHex, "fff"},
				{Punct, ";"},
			},
		},
		{
			name:  "six digit hex color",
			input: "#ffffff;",
			expect: []kv{
				{ColorHex, "ffffff"},
				{Punct, ";"},
			},
		},
		{
			name:  "four hex digits is not a color",
			input: "#ffff;",
			expect: []kv{
				{Punct, "#"},
				{Ident, "ffff"},
				{Punct, ";"},
			},
		},
		{
			name:  "seven hex digits is not a color",
			input: "#abcdef0",
			expect: []kv{
				{Punct, "#"},
				{Ident, "abcdef0"},
			},
		},
		{
			name:  "lone hash is punctuation",
			input: "#",
			expect: []kv{
				{Punct, "#"},
			},
		},
		{
			name:  "relational operators never merge",
			input: "<=",
			expect: []kv{
				{Operator, "<"},
				{Operator, "="},
			},
		},
		{
			name:  "repeatable operator forms one token",
			input: "==",
			expect: []kv{
				{Operator, "=="},
			},
		},
		{
			name:  "longer repeatable run stays one token",
			input: "&&&",
			expect: []kv{
				{Operator, "&&&"},
			},
		},
		{
			name:  "distinct repeatable operators are separate tokens",
			input: "&|",
			expect: []kv{
				{Operator, "&"},
				{Operator, "|"},
			},
		},
		{
			name:  "block comment interior only",
			input: "/* a */",
			expect: []kv{
				{Comment, " a "},
			},
		},
		{
			name:  "empty block comment",
			input: "/**/",
			expect: []kv{
				{Comment, ""},
			},
		},
		{
			name:  "line comment leaves the newline",
			input: "// hi\nx",
			expect: []kv{
				{Comment, " hi"},
				{Space, "\n"},
				{Ident, "x"},
			},
		},
		{
			name:  "line comment at end of input",
			input: "//done",
			expect: []kv{
				{Comment, "done"},
			},
		},
		{
			name:  "slash not opening a comment is an operator",
			input: "a/b",
			expect: []kv{
				{Ident, "a"},
				{Operator, "/"},
				{Ident, "b"},
			},
		},
		{
			name:  "double quoted string",
			input: `"hello"`,
			expect: []kv{
				{String, "hello"},
			},
		},
		{
			name:  "single quoted string with escaped quote",
			input: `'it\'s'`,
			expect: []kv{
				{String, `it\'s`},
			},
		},
		{
			name:  "escape sequences are not interpreted",
			input: `"a\nb"`,
			expect: []kv{
				{String, `a\nb`},
			},
		},
		{
			name:  "unterminated string truncates silently",
			input: `"abc`,
			expect: []kv{
				{String, "abc"},
			},
		},
		{
			name:  "variable declaration",
			input: "$foo:1;",
			expect: []kv{
				{Variable, "foo"},
				{Punct, ":"},
				{Number, "1"},
				{Punct, ";"},
			},
		},
		{
			name:  "at-rule with digit-led name",
			input: "@2x",
			expect: []kv{
				{AtRule, "2x"},
			},
		},
		{
			name:  "bare sigil has empty value",
			input: "$ @",
			expect: []kv{
				{Variable, ""},
				{Space, " "},
				{AtRule, ""},
			},
		},
		{
			name:  "small rule",
			input: "@media(min-width:600px){color:#00ff00}",
			expect: []kv{
				{AtRule, "media"},
				{Punct, "("},
				{Ident, "min-width"},
				{Punct, ":"},
				{Number, "600"},
				{Ident, "px"},
				{Punct, ")"},
				{Punct, "{"},
				{Ident, "color"},
				{Punct, ":"},
				{ColorHex, "00ff00"},
				{Punct, "}"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			toks, err := New(tc.input).All()
			assert.NoError(err)

			actual := make([]kv, len(toks))
			for i := range toks {
				actual[i] = kv{toks[i].Kind, toks[i].Value}
			}

			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_Lexer_All_lengthsCoverInput(t *testing.T) {
	// no matter how values are transformed, the consumed lengths of a full
	// tokenization must add up to the exact input size.
	inputs := []string{
		"",
		"$base: #336699;\nwidth: 12.5px; // half\n",
		"/* block\n comment */a{b:c}",
		"/*xy",
		"/*x",
		`"unterminated`,
		"@media(min-width:600px){}",
		".45+12.",
		"a == b && c",
		"'str with \\' escape'",
		"#ffff #fff #ffffff #abcdef0",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			assert := assert.New(t)

			toks, err := New(input).All()
			assert.NoError(err)

			var total int
			for i := range toks {
				total += toks[i].Length
			}

			assert.Equal(len([]rune(input)), total)
		})
	}
}

func Test_Lexer_unterminatedBlockCommentLag(t *testing.T) {
	assert := assert.New(t)

	// the one-character lag buffer means the final consumed character of an
	// unterminated block comment is counted in Length but never reaches
	// Value.
	toks, err := New("/*xy").All()
	assert.NoError(err)
	assert.Len(toks, 1)

	assert.Equal(Comment, toks[0].Kind)
	assert.Equal("x", toks[0].Value)
	assert.Equal(4, toks[0].Length)
}

func Test_Lexer_positions(t *testing.T) {
	assert := assert.New(t)

	toks, err := New("a\n bb").All()
	assert.NoError(err)
	assert.Len(toks, 3)

	assert.Equal(Token{Kind: Ident, Value: "a", Length: 1, Line: 1, Column: 1}, toks[0])
	assert.Equal(Token{Kind: Space, Value: "\n ", Length: 2, Line: 1, Column: 2}, toks[1])
	assert.Equal(Token{Kind: Ident, Value: "bb", Length: 2, Line: 2, Column: 2}, toks[2])
}

func Test_Lexer_Peek_isIdempotent(t *testing.T) {
	assert := assert.New(t)

	lx := New("$a: 1;")

	first, err := lx.Peek(0)
	assert.NoError(err)
	second, err := lx.Peek(0)
	assert.NoError(err)

	assert.Equal(first, second)

	consumed, err := lx.Next()
	assert.NoError(err)
	assert.Equal(first, consumed)
}

func Test_Lexer_Peek_matchesNextOrder(t *testing.T) {
	assert := assert.New(t)

	input := "a b c: #fff; // done"

	peeker := New(input)
	var peeked []Token
	for i := 0; ; i++ {
		tok, err := peeker.Peek(i)
		assert.NoError(err)
		if tok == nil {
			break
		}
		peeked = append(peeked, *tok)
	}

	nexter := New(input)
	var nexted []Token
	for {
		tok, err := nexter.Next()
		assert.NoError(err)
		if tok == nil {
			break
		}
		nexted = append(nexted, *tok)
	}

	assert.Equal(nexted, peeked)
}

func Test_Lexer_exhaustion(t *testing.T) {
	assert := assert.New(t)

	lx := New("a")

	assert.False(lx.EOF())

	tok, err := lx.Next()
	assert.NoError(err)
	assert.NotNil(tok)

	assert.True(lx.EOF())

	// exhaustion is a none sentinel, not an error, and it is stable
	for i := 0; i < 2; i++ {
		tok, err = lx.Next()
		assert.NoError(err)
		assert.Nil(tok)

		tok, err = lx.Peek(0)
		assert.NoError(err)
		assert.Nil(tok)
	}
}

func Test_Lexer_All_isOneShot(t *testing.T) {
	assert := assert.New(t)

	lx := New("a b")

	first, err := lx.All()
	assert.NoError(err)
	assert.Len(first, 3)

	second, err := lx.All()
	assert.NoError(err)
	assert.Len(second, 0)
}

func Test_Lexer_unrecognizedCharacter(t *testing.T) {
	testCases := []struct {
		name       string
		input      string
		expectLine int
		expectPos  int
	}{
		{
			name:       "backtick",
			input:      "`",
			expectLine: 1,
			expectPos:  1,
		},
		{
			name:       "backtick after valid tokens",
			input:      "fine`",
			expectLine: 1,
			expectPos:  5,
		},
		{
			name:       "carriage return is not whitespace",
			input:      "a\rb",
			expectLine: 1,
			expectPos:  2,
		},
		{
			name:       "error on later line",
			input:      "a: 1;\nb: ~~;\nc: `;",
			expectLine: 3,
			expectPos:  4,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			_, err := New(tc.input).All()
			assert.Error(err)

			synErr, ok := err.(*SyntaxError)
			if !assert.True(ok, "error is not a *SyntaxError") {
				return
			}

			assert.Equal(tc.expectLine, synErr.Line())
			assert.Equal(tc.expectPos, synErr.Position())
		})
	}
}

func Test_Lexer_errorIsSticky(t *testing.T) {
	assert := assert.New(t)

	lx := New("ok `")

	tok, err := lx.Next()
	assert.NoError(err)
	assert.Equal(Ident, tok.Kind)

	tok, err = lx.Next()
	assert.NoError(err)
	assert.Equal(Space, tok.Kind)

	_, firstErr := lx.Next()
	assert.Error(firstErr)

	_, secondErr := lx.Peek(0)
	assert.Same(firstErr.(*SyntaxError), secondErr.(*SyntaxError))

	assert.True(lx.EOF())
}

func Test_Lexer_NewFromReader(t *testing.T) {
	assert := assert.New(t)

	lx, err := NewFromReader(strings.NewReader("$x: 2;"))
	assert.NoError(err)

	toks, err := lx.All()
	assert.NoError(err)
	assert.Len(toks, 5)
}
