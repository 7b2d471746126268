package lexer

import (
	"strings"
	"testing"

	"github.com/aardvark-lang/aardvark/internal/token"
)

func kinds(t *testing.T, src string) []token.Kind {
	t.Helper()
	tokens, err := Tokenize([]byte(src))
	if err != nil {
		t.Fatalf("Tokenize(%q) error: %v", src, err)
	}
	out := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestKeywordIdentifierDisjointness(t *testing.T) {
	for kw, kind := range token.Keywords {
		got := kinds(t, kw)
		if len(got) != 1 || got[0] != kind {
			t.Errorf("tokenize(%q) = %v, want single keyword token %s", kw, got, kind)
		}
		longer := kw + "x"
		got = kinds(t, longer)
		if len(got) != 1 || got[0] != token.Identifier {
			t.Errorf("tokenize(%q) = %v, want single identifier token", longer, got)
		}
	}
}

func TestDigitNineTokenizesAsInteger(t *testing.T) {
	tokens, err := Tokenize([]byte("9"))
	if err != nil {
		t.Fatalf("Tokenize(\"9\") error: %v", err)
	}
	if len(tokens) != 1 || tokens[0].Kind != token.Integer || tokens[0].Int != 9 {
		t.Fatalf("Tokenize(\"9\") = %+v, want a single integer token with value 9", tokens)
	}
}

func TestOperatorUpgrade(t *testing.T) {
	cases := map[string]token.Kind{
		"=":  token.Assign,
		"==": token.Equal,
		"!":  token.Not,
		"!=": token.NotEqual,
		">":  token.Greater,
		">=": token.GreaterEqual,
		"<":  token.Less,
		"<=": token.LessEqual,
	}
	for src, want := range cases {
		got := kinds(t, src)
		if len(got) != 1 || got[0] != want {
			t.Errorf("tokenize(%q) = %v, want [%s]", src, got, want)
		}
	}
}

func TestStringEscapes(t *testing.T) {
	tokens, err := Tokenize([]byte(`"a\\b\nc"`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tokens) != 1 || tokens[0].Kind != token.String {
		t.Fatalf("tokens = %+v, want a single string token", tokens)
	}
	if want := "a\\b\nc"; tokens[0].Str != want {
		t.Fatalf("string literal = %q, want %q", tokens[0].Str, want)
	}
}

func TestUnterminatedStringIsFatal(t *testing.T) {
	_, err := Tokenize([]byte(`"abc`))
	if err == nil {
		t.Fatal("expected error for unterminated string literal")
	}
	if want := "Reached end of characters before terminating"; !strings.Contains(err.Error(), want) {
		t.Fatalf("error = %q, want substring %q", err.Error(), want)
	}
}

func TestUnknownEscapeIsFatal(t *testing.T) {
	_, err := Tokenize([]byte(`"a\tb"`))
	if err == nil {
		t.Fatal("expected error for unknown escape sequence")
	}
}

func TestUnknownByteIsFatal(t *testing.T) {
	_, err := Tokenize([]byte("@"))
	if err == nil {
		t.Fatal("expected error for unknown byte")
	}
}

func TestWhitespaceIsSkipped(t *testing.T) {
	got := kinds(t, "  \t\n var \n x ")
	want := []token.Kind{token.Var, token.Identifier}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("tokenize = %v, want %v", got, want)
	}
}
