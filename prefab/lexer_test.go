package prefab

import (
	"strings"
	"testing"
)

func TestLexer_TokenStream(t *testing.T) {
	input := []byte(`Player @(10, -20.5) {
	Health: 100 // trailing comment
	# full line comment
	Tag: "hero \"one\""
}`)

	l := NewLexer("test", input)

	expected := []struct {
		typ TokenType
		lit string
	}{
		{TokenIdent, "Player"},
		{TokenAt, "@"},
		{TokenLParen, "("},
		{TokenInteger, "10"},
		{TokenComma, ","},
		{TokenFloat, "-20.5"},
		{TokenRParen, ")"},
		{TokenLBrace, "{"},
		{TokenIdent, "Health"},
		{TokenColon, ":"},
		{TokenInteger, "100"},
		{TokenIdent, "Tag"},
		{TokenColon, ":"},
		{TokenString, `hero "one"`},
		{TokenRBrace, "}"},
		{TokenEOF, ""},
	}

	for i, want := range expected {
		tok := l.Next()
		if tok.Type != want.typ {
			t.Fatalf("token %d: expected type %v, got %v (%s)", i, want.typ, tok.Type, tok)
		}
		if tok.Literal != want.lit {
			t.Fatalf("token %d: expected literal %q, got %q", i, want.lit, tok.Literal)
		}
	}
}

func TestLexer_NumericValues(t *testing.T) {
	cases := []struct {
		input  string
		typ    TokenType
		intVal int64
		fltVal float64
	}{
		{"0", TokenInteger, 0, 0},
		{"42", TokenInteger, 42, 0},
		{"-7", TokenInteger, -7, 0},
		{"3.5", TokenFloat, 0, 3.5},
		{"-0.25", TokenFloat, 0, -0.25},
		{"1e3", TokenFloat, 0, 1000},
		{"2.5e-2", TokenFloat, 0, 0.025},
	}

	for _, tc := range cases {
		l := NewLexer("test", []byte(tc.input))
		tok := l.Next()
		if tok.Type != tc.typ {
			t.Errorf("%q: expected %v, got %v", tc.input, tc.typ, tok.Type)
			continue
		}
		if tc.typ == TokenInteger && tok.Int != tc.intVal {
			t.Errorf("%q: expected int %d, got %d", tc.input, tc.intVal, tok.Int)
		}
		if tc.typ == TokenFloat && tok.Float != tc.fltVal {
			t.Errorf("%q: expected float %g, got %g", tc.input, tc.fltVal, tok.Float)
		}
	}
}

func TestLexer_MinusNotGluedToDigit(t *testing.T) {
	l := NewLexer("test", []byte("- 5"))
	if tok := l.Next(); tok.Type != TokenMinus {
		t.Fatalf("expected minus token, got %s", tok)
	}
	if tok := l.Next(); tok.Type != TokenInteger || tok.Int != 5 {
		t.Fatalf("expected integer 5, got %s", tok)
	}
}

func TestLexer_PeekDoesNotConsume(t *testing.T) {
	l := NewLexer("test", []byte("a b"))
	if tok := l.Peek(); tok.Literal != "a" {
		t.Fatalf("peek: expected a, got %s", tok)
	}
	if tok := l.Peek(); tok.Literal != "a" {
		t.Fatalf("second peek: expected a, got %s", tok)
	}
	if tok := l.Next(); tok.Literal != "a" {
		t.Fatalf("next after peek: expected a, got %s", tok)
	}
	if tok := l.Next(); tok.Literal != "b" {
		t.Fatalf("expected b, got %s", tok)
	}
}

func TestLexer_TokenPositions(t *testing.T) {
	// Columns point at each token's first byte. Escapes inside the
	// string must not shift the positions reported after it.
	input := []byte("name: \"a\\\"b\" true")

	expected := []struct {
		lit  string
		line int
		col  int
	}{
		{"name", 1, 1},
		{":", 1, 5},
		{`a"b`, 1, 7}, // opening quote
		{"true", 1, 14},
	}

	l := NewLexer("test", input)
	for i, want := range expected {
		tok := l.Next()
		if tok.Literal != want.lit {
			t.Fatalf("token %d: expected literal %q, got %q", i, want.lit, tok.Literal)
		}
		if tok.Line != want.line || tok.Col != want.col {
			t.Fatalf("token %d (%q): expected %d:%d, got %d:%d",
				i, want.lit, want.line, want.col, tok.Line, tok.Col)
		}
	}
}

func TestLexer_UnterminatedString(t *testing.T) {
	l := NewLexer("file.scene", []byte("\"never closed"))
	tok := l.Next()
	if tok.Type != TokenError {
		t.Fatalf("expected error token, got %s", tok)
	}
	if !strings.HasPrefix(tok.Literal, "file.scene:1:") {
		t.Fatalf("expected file:line:col prefix, got %q", tok.Literal)
	}
	if !l.Failed() {
		t.Fatal("lexer should record its error state")
	}
	// The lexer stays responsive after an error
	if tok := l.Next(); tok.Type != TokenEOF {
		t.Fatalf("expected EOF after error, got %s", tok)
	}
}

func TestLexer_UnexpectedCharacter(t *testing.T) {
	l := NewLexer("test", []byte("$"))
	tok := l.Next()
	if tok.Type != TokenError {
		t.Fatalf("expected error token, got %s", tok)
	}
}

func TestLexer_StringEscapes(t *testing.T) {
	l := NewLexer("test", []byte(`"a\nb\tc\\d"`))
	tok := l.Next()
	if tok.Type != TokenString {
		t.Fatalf("expected string, got %s", tok)
	}
	if tok.Literal != "a\nb\tc\\d" {
		t.Fatalf("unexpected unescape result: %q", tok.Literal)
	}
}
