// Package lexer tokenizes aardvark source into a flat []token.Token.
package lexer

import (
	"strings"

	"github.com/aardvark-lang/aardvark/internal/diag"
	"github.com/aardvark-lang/aardvark/internal/token"
)

func isAlpha(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlnum(c byte) bool {
	return isAlpha(c) || isDigit(c)
}

// lexer walks src with a single cursor, the way the reference tokenizer
// walks a char* with a shared end pointer.
type lexer struct {
	src []byte
	pos int
}

// Tokenize converts src into an ordered token sequence. It fails fatally
// (returns a *diag.Error) on an unrecognized byte or an unterminated
// string/escape, matching the reference tokenizer's error conditions.
//
// The reference dispatch for integer-starting bytes lists '0'..'8' and
// omits '9', almost certainly a transcription slip rather than intent.
// This implementation treats every ASCII digit, including '9', as an
// integer starter.
func Tokenize(src []byte) ([]token.Token, error) {
	l := &lexer{src: src}
	tokens := make([]token.Token, 0, 16)
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case isAlpha(c):
			tokens = append(tokens, l.readIdentifierOrKeyword())
		case isDigit(c):
			tokens = append(tokens, l.readInteger())
		case c == '"':
			t, err := l.readString()
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, t)
		case c == ',':
			tokens = append(tokens, token.Token{Kind: token.Comma})
			l.pos++
		case c == '(':
			tokens = append(tokens, token.Token{Kind: token.LParen})
			l.pos++
		case c == ')':
			tokens = append(tokens, token.Token{Kind: token.RParen})
			l.pos++
		case c == '+':
			tokens = append(tokens, token.Token{Kind: token.Plus})
			l.pos++
		case c == '-':
			tokens = append(tokens, token.Token{Kind: token.Minus})
			l.pos++
		case c == '*':
			tokens = append(tokens, token.Token{Kind: token.Multiply})
			l.pos++
		case c == '/':
			tokens = append(tokens, token.Token{Kind: token.Divide})
			l.pos++
		case c == '=':
			tokens = append(tokens, l.readUpgradable(token.Assign))
		case c == '!':
			tokens = append(tokens, l.readUpgradable(token.Not))
		case c == '>':
			tokens = append(tokens, l.readUpgradable(token.Greater))
		case c == '<':
			tokens = append(tokens, l.readUpgradable(token.Less))
		case c == ' ' || c == '\t' || c == '\n':
			l.pos++
		default:
			return nil, diag.Errorf(diag.UnknownByte, "Error: Unknown character %q", c)
		}
	}
	return tokens, nil
}

// readIdentifierOrKeyword consumes a maximal run of alphanumerics/'_' and
// classifies it. Keyword matching must be exact: neither a keyword nor
// the captured run may be a strict prefix of the other.
func (l *lexer) readIdentifierOrKeyword() token.Token {
	begin := l.pos
	for l.pos < len(l.src) && isAlnum(l.src[l.pos]) {
		l.pos++
	}
	run := l.src[begin:l.pos]
	if kind, ok := token.Keywords[string(run)]; ok {
		return token.Token{Kind: kind}
	}
	return token.Token{Kind: token.Identifier, Ident: token.Hash(run)}
}

func (l *lexer) readInteger() token.Token {
	var value int64
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		value = value*10 + int64(l.src[l.pos]-'0')
		l.pos++
	}
	return token.Token{Kind: token.Integer, Int: value}
}

// readString consumes a double-quoted literal, unescaping \\ and \n only.
// Any other escape character is a fatal error rather than the reference's
// silent skip-until-recognized behavior.
func (l *lexer) readString() (token.Token, error) {
	l.pos++ // opening quote
	var b strings.Builder
	for {
		if l.pos >= len(l.src) {
			return token.Token{}, diag.Errorf(diag.UnterminatedString,
				"Error: Reached end of characters before terminating '\"' of string literal")
		}
		c := l.src[l.pos]
		if c == '"' {
			l.pos++
			break
		}
		if c == '\\' {
			l.pos++
			if l.pos >= len(l.src) {
				return token.Token{}, diag.Errorf(diag.UnterminatedEscape,
					"Error: Reached end of string literal before end of escape sequence")
			}
			switch l.src[l.pos] {
			case 'n':
				b.WriteByte('\n')
			case '\\':
				b.WriteByte('\\')
			default:
				return token.Token{}, diag.Errorf(diag.UnterminatedEscape,
					"Error: Unknown escape sequence '\\%c'", l.src[l.pos])
			}
			l.pos++
			continue
		}
		b.WriteByte(c)
		l.pos++
	}
	return token.Token{Kind: token.String, Str: b.String()}, nil
}

// readUpgradable reads a single-char operator and upgrades it to its
// "-equal" variant when immediately followed by '='.
func (l *lexer) readUpgradable(base token.Kind) token.Token {
	l.pos++
	if l.pos < len(l.src) && l.src[l.pos] == '=' {
		l.pos++
		return token.Token{Kind: base.Upgrade()}
	}
	return token.Token{Kind: base}
}
