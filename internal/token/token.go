package token

import "fmt"

// Type identifies the lexical class of a token.
type Type int

const (
	ILLEGAL Type = iota
	EOF

	LBRACE   // {
	RBRACE   // }
	LBRACKET // [
	RBRACKET // ]
	COLON    // :
	COMMA    // ,

	STRING  // "text"
	NUMBER  // 12, 3.5, 1e9
	KEYWORD // true, false, null
)

var typeNames = [...]string{
	ILLEGAL:  "ILLEGAL",
	EOF:      "EOF",
	LBRACE:   "LBRACE",
	RBRACE:   "RBRACE",
	LBRACKET: "LBRACKET",
	RBRACKET: "RBRACKET",
	COLON:    "COLON",
	COMMA:    "COMMA",
	STRING:   "STRING",
	NUMBER:   "NUMBER",
	KEYWORD:  "KEYWORD",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

// StartsValue reports whether a token of this type can begin a JSON value.
func (t Type) StartsValue() bool {
	switch t {
	case STRING, NUMBER, KEYWORD, LBRACE, LBRACKET:
		return true
	}
	return false
}

// Position is a location in the source document.
type Position struct {
	Offset int // byte offset, starting at 0
	Line   int // line number, starting at 1
	Column int // column in bytes, starting at 1
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a single lexical unit of a document.
//
// Lexeme holds the decoded text for STRING tokens (quotes stripped, escapes
// resolved), the raw literal for NUMBER tokens, and the canonical uppercase
// spelling (TRUE, FALSE, NULL) for KEYWORD tokens.
type Token struct {
	Type   Type
	Lexeme string
	Pos    Position
}

// Keyword spellings carried in the Lexeme of KEYWORD tokens.
const (
	KeywordTrue  = "TRUE"
	KeywordFalse = "FALSE"
	KeywordNull  = "NULL"
)

// String renders the token the way the token dump records it: structural
// tokens by their type name, strings, numbers and keywords by their lexeme.
func (t Token) String() string {
	switch t.Type {
	case STRING, NUMBER, KEYWORD:
		return t.Lexeme
	default:
		return t.Type.String()
	}
}
