package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	"jsonlens/internal/token"
)

// Error is a lexical error with the position where it was detected.
type Error struct {
	Pos token.Position
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// Lexer is a deterministic state machine that splits a document into tokens.
// It recognizes braces, brackets, colon, comma, strings, numbers and the
// keywords true, false and null.
type Lexer struct {
	src  []byte
	off  int
	line int
	col  int
}

// New creates a Lexer over src.
func New(src []byte) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

// Scan tokenizes src completely. The returned slice does not include the
// terminating EOF token.
func Scan(src []byte) ([]token.Token, error) {
	l := New(src)
	var toks []token.Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		if tok.Type == token.EOF {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}

// Next returns the next token. At the end of input it returns an EOF token
// and a nil error.
func (l *Lexer) Next() (token.Token, error) {
	l.skipWhitespace()

	pos := l.pos()
	if l.off >= len(l.src) {
		return token.Token{Type: token.EOF, Pos: pos}, nil
	}

	c := l.src[l.off]
	switch {
	case c == '{':
		l.advance()
		return token.Token{Type: token.LBRACE, Lexeme: "{", Pos: pos}, nil
	case c == '}':
		l.advance()
		return token.Token{Type: token.RBRACE, Lexeme: "}", Pos: pos}, nil
	case c == '[':
		l.advance()
		return token.Token{Type: token.LBRACKET, Lexeme: "[", Pos: pos}, nil
	case c == ']':
		l.advance()
		return token.Token{Type: token.RBRACKET, Lexeme: "]", Pos: pos}, nil
	case c == ':':
		l.advance()
		return token.Token{Type: token.COLON, Lexeme: ":", Pos: pos}, nil
	case c == ',':
		l.advance()
		return token.Token{Type: token.COMMA, Lexeme: ",", Pos: pos}, nil
	case c == '"':
		return l.scanString(pos)
	case isNumberByte(c):
		return l.scanNumber(pos)
	case c == 't' || c == 'f' || c == 'n':
		return l.scanKeyword(pos)
	default:
		r, _ := utf8.DecodeRune(l.src[l.off:])
		return l.illegal(pos, fmt.Sprintf("unexpected character %q", r))
	}
}

func (l *Lexer) illegal(pos token.Position, msg string) (token.Token, error) {
	return token.Token{Type: token.ILLEGAL, Pos: pos}, &Error{Pos: pos, Msg: msg}
}

// scanString consumes a quoted string, resolving escape sequences. The
// returned lexeme is the decoded text without the surrounding quotes.
func (l *Lexer) scanString(pos token.Position) (token.Token, error) {
	l.advance() // opening quote

	var sb strings.Builder
	for {
		if l.off >= len(l.src) {
			return l.illegal(pos, "unterminated string literal")
		}

		c := l.src[l.off]
		switch {
		case c == '"':
			l.advance()
			return token.Token{Type: token.STRING, Lexeme: sb.String(), Pos: pos}, nil
		case c == '\\':
			l.advance()
			if l.off >= len(l.src) {
				return l.illegal(pos, "unexpected end of input in string escape")
			}
			if err := l.scanEscape(&sb); err != nil {
				return token.Token{Type: token.ILLEGAL, Pos: pos}, err
			}
		case c < 0x20:
			at := l.pos()
			return l.illegal(at, fmt.Sprintf("invalid control character %q in string", rune(c)))
		default:
			sb.WriteByte(c)
			l.advance()
		}
	}
}

// scanEscape consumes the character following a backslash and writes the
// decoded result to sb.
func (l *Lexer) scanEscape(sb *strings.Builder) error {
	pos := l.pos()
	c := l.src[l.off]
	l.advance()

	switch c {
	case '"':
		sb.WriteByte('"')
	case '\\':
		sb.WriteByte('\\')
	case '/':
		sb.WriteByte('/')
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case 'n':
		sb.WriteByte('\n')
	case 'r':
		sb.WriteByte('\r')
	case 't':
		sb.WriteByte('\t')
	case 'u':
		r, err := l.scanUnicodeEscape(pos)
		if err != nil {
			return err
		}
		sb.WriteRune(r)
	default:
		return &Error{Pos: pos, Msg: fmt.Sprintf("invalid escape character %q", rune(c))}
	}
	return nil
}

// scanUnicodeEscape consumes the four hex digits of a \u escape. A leading
// surrogate followed by a valid trailing surrogate escape is combined into
// one rune; an unpaired surrogate decodes to U+FFFD.
func (l *Lexer) scanUnicodeEscape(pos token.Position) (rune, error) {
	r1, err := l.hex4(pos)
	if err != nil {
		return 0, err
	}
	if !utf16.IsSurrogate(r1) {
		return r1, nil
	}

	if l.off+6 <= len(l.src) && l.src[l.off] == '\\' && l.src[l.off+1] == 'u' {
		if r2, ok := parseHex4(l.src[l.off+2 : l.off+6]); ok {
			if dec := utf16.DecodeRune(r1, r2); dec != unicode.ReplacementChar {
				for i := 0; i < 6; i++ {
					l.advance()
				}
				return dec, nil
			}
		}
	}
	return unicode.ReplacementChar, nil
}

func (l *Lexer) hex4(pos token.Position) (rune, error) {
	if l.off+4 > len(l.src) {
		return 0, &Error{Pos: pos, Msg: "invalid unicode escape"}
	}
	r, ok := parseHex4(l.src[l.off : l.off+4])
	if !ok {
		return 0, &Error{Pos: pos, Msg: "invalid unicode escape"}
	}
	for i := 0; i < 4; i++ {
		l.advance()
	}
	return r, nil
}

func parseHex4(b []byte) (rune, bool) {
	var r rune
	for _, c := range b {
		r <<= 4
		switch {
		case c >= '0' && c <= '9':
			r |= rune(c - '0')
		case c >= 'a' && c <= 'f':
			r |= rune(c-'a') + 10
		case c >= 'A' && c <= 'F':
			r |= rune(c-'A') + 10
		default:
			return 0, false
		}
	}
	return r, true
}

// scanNumber consumes a run of number characters and validates the literal.
// The terminating byte is left for the next call to examine.
func (l *Lexer) scanNumber(pos token.Position) (token.Token, error) {
	start := l.off
	for l.off < len(l.src) && isNumberByte(l.src[l.off]) {
		l.advance()
	}

	lit := string(l.src[start:l.off])
	if _, err := strconv.ParseFloat(lit, 64); err != nil {
		return token.Token{Type: token.ILLEGAL, Lexeme: lit, Pos: pos},
			&Error{Pos: pos, Msg: fmt.Sprintf("invalid number literal %q", lit)}
	}
	return token.Token{Type: token.NUMBER, Lexeme: lit, Pos: pos}, nil
}

// scanKeyword consumes input byte by byte until it has built true, false or
// null, or until the accumulated text can no longer become one of them.
func (l *Lexer) scanKeyword(pos token.Position) (token.Token, error) {
	var sb strings.Builder
	for l.off < len(l.src) {
		sb.WriteByte(l.src[l.off])
		l.advance()

		switch sb.String() {
		case "true":
			return token.Token{Type: token.KEYWORD, Lexeme: token.KeywordTrue, Pos: pos}, nil
		case "false":
			return token.Token{Type: token.KEYWORD, Lexeme: token.KeywordFalse, Pos: pos}, nil
		case "null":
			return token.Token{Type: token.KEYWORD, Lexeme: token.KeywordNull, Pos: pos}, nil
		}
		if !isKeywordPrefix(sb.String()) {
			return l.illegal(pos, fmt.Sprintf("invalid keyword %q", sb.String()))
		}
	}
	return l.illegal(pos, fmt.Sprintf("invalid keyword %q", sb.String()))
}

func isKeywordPrefix(s string) bool {
	return strings.HasPrefix("true", s) || strings.HasPrefix("false", s) || strings.HasPrefix("null", s)
}

func isNumberByte(c byte) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c == '.' || c == 'e' || c == 'E' || c == '+' || c == '-':
		return true
	}
	return false
}

func (l *Lexer) skipWhitespace() {
	for l.off < len(l.src) {
		switch l.src[l.off] {
		case ' ', '\t', '\n', '\r':
			l.advance()
		default:
			return
		}
	}
}

func (l *Lexer) advance() {
	if l.off < len(l.src) {
		if l.src[l.off] == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
		l.off++
	}
}

func (l *Lexer) pos() token.Position {
	return token.Position{Offset: l.off, Line: l.line, Column: l.col}
}
