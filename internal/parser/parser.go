// Package parser implements the recursive descent syntax analysis over the
// token stream, producing a concrete parse tree and an abstract syntax tree
// in one pass.
package parser

import (
	"fmt"
	"strconv"

	"jsonlens/internal/ast"
	"jsonlens/internal/lexer"
	"jsonlens/internal/token"
	"jsonlens/internal/tree"
)

// Error is a syntax error at a specific token.
type Error struct {
	Index int // index of the offending token in the stream
	Pos   token.Position
	Msg   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("token %d at %s: %s", e.Index, e.Pos, e.Msg)
}

// Result holds the two trees built from one document.
type Result struct {
	Tree *tree.Node
	AST  ast.Node
}

// ParseBytes tokenizes src and parses the token stream.
func ParseBytes(src []byte) (*Result, error) {
	toks, err := lexer.Scan(src)
	if err != nil {
		return nil, err
	}
	return Parse(toks)
}

// Parse consumes the token stream and builds the parse tree and the AST.
// A document must be a single object or array; empty containers are valid,
// and any tokens after the top-level close are an error.
func Parse(toks []token.Token) (*Result, error) {
	p := &parser{toks: toks}

	root := tree.NewRoot()
	var value ast.Node
	var err error

	switch {
	case len(toks) == 0:
		return nil, p.errEOF()
	case toks[0].Type == token.LBRACE:
		value, err = p.parseObject(root)
	case toks[0].Type == token.LBRACKET:
		value, err = p.parseArray(root)
	default:
		return nil, p.errAt(0, fmt.Sprintf("illegal start of document: %s", toks[0]))
	}
	if err != nil {
		return nil, err
	}

	if p.i < len(p.toks) {
		return nil, p.errAt(p.i, "unexpected trailing tokens")
	}
	return &Result{Tree: root, AST: value}, nil
}

type parser struct {
	toks []token.Token
	i    int
}

// cur returns the current token, or nil at the end of the stream.
func (p *parser) cur() *token.Token {
	if p.i >= len(p.toks) {
		return nil
	}
	return &p.toks[p.i]
}

func (p *parser) errAt(index int, msg string) error {
	pos := token.Position{Line: 1, Column: 1}
	if index < len(p.toks) {
		pos = p.toks[index].Pos
	} else if len(p.toks) > 0 {
		pos = p.toks[len(p.toks)-1].Pos
	}
	return &Error{Index: index, Pos: pos, Msg: msg}
}

func (p *parser) errEOF() error {
	return p.errAt(len(p.toks), "unexpected end of input")
}

// parseObject parses an object. The current token is the opening brace.
func (p *parser) parseObject(parent *tree.Node) (ast.Node, error) {
	node := parent.AddChild("dict", false)
	node.AddChild("{", true)
	p.i++ // {

	obj := &ast.Object{}

	tok := p.cur()
	if tok == nil {
		return nil, p.errEOF()
	}
	if tok.Type == token.RBRACE {
		node.AddChild("}", true)
		p.i++
		return obj, nil
	}

	for {
		tok = p.cur()
		if tok == nil {
			return nil, p.errEOF()
		}
		if tok.Type != token.STRING {
			return nil, p.errAt(p.i, fmt.Sprintf("object key must be a string, found %s", tok))
		}
		key := tok.Lexeme
		node.AddChild("STRING", true)
		p.i++

		tok = p.cur()
		if tok == nil {
			return nil, p.errEOF()
		}
		if tok.Type != token.COLON {
			return nil, p.errAt(p.i, fmt.Sprintf("expected ':' after object key, found %s", tok))
		}
		node.AddChild(":", true)
		p.i++

		value, err := p.parseValue(node)
		if err != nil {
			return nil, err
		}
		obj.Members = append(obj.Members, ast.Member{Key: key, Value: value})

		tok = p.cur()
		switch {
		case tok == nil:
			return nil, p.errEOF()
		case tok.Type == token.COMMA:
			node.AddChild(",", true)
			p.i++
			if next := p.cur(); next != nil && next.Type == token.RBRACE {
				return nil, p.errAt(p.i, "trailing comma before end of object")
			}
		case tok.Type == token.RBRACE:
			node.AddChild("}", true)
			p.i++
			return obj, nil
		default:
			return nil, p.errAt(p.i, fmt.Sprintf("expected ',' or '}' after object member, found %s", tok))
		}
	}
}

// parseArray parses an array. The current token is the opening bracket.
func (p *parser) parseArray(parent *tree.Node) (ast.Node, error) {
	node := parent.AddChild("list", false)
	node.AddChild("[", true)
	p.i++ // [

	arr := &ast.Array{}

	tok := p.cur()
	if tok == nil {
		return nil, p.errEOF()
	}
	if tok.Type == token.RBRACKET {
		node.AddChild("]", true)
		p.i++
		return arr, nil
	}

	for {
		value, err := p.parseValue(node)
		if err != nil {
			return nil, err
		}
		arr.Elements = append(arr.Elements, value)

		tok = p.cur()
		switch {
		case tok == nil:
			return nil, p.errEOF()
		case tok.Type == token.COMMA:
			node.AddChild(",", true)
			p.i++
			if next := p.cur(); next != nil && next.Type == token.RBRACKET {
				return nil, p.errAt(p.i, "trailing comma before end of array")
			}
		case tok.Type == token.RBRACKET:
			node.AddChild("]", true)
			p.i++
			return arr, nil
		default:
			return nil, p.errAt(p.i, fmt.Sprintf("expected ',' or ']' after array element, found %s", tok))
		}
	}
}

// parseValue parses a single value. Scalars become leaves labeled by their
// token category; containers recurse.
func (p *parser) parseValue(parent *tree.Node) (ast.Node, error) {
	tok := p.cur()
	if tok == nil {
		return nil, p.errEOF()
	}

	switch tok.Type {
	case token.LBRACE:
		return p.parseObject(parent)
	case token.LBRACKET:
		return p.parseArray(parent)
	case token.STRING:
		parent.AddChild("STRING", true)
		p.i++
		return &ast.String{Value: tok.Lexeme}, nil
	case token.NUMBER:
		parent.AddChild("NUMBER", true)
		p.i++
		// The lexer validated the literal already.
		v, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return nil, p.errAt(p.i-1, fmt.Sprintf("invalid number literal %q", tok.Lexeme))
		}
		return &ast.Number{Raw: tok.Lexeme, Value: v}, nil
	case token.KEYWORD:
		parent.AddChild("KEYWORD", true)
		p.i++
		switch tok.Lexeme {
		case token.KeywordTrue:
			return &ast.Bool{Value: true}, nil
		case token.KeywordFalse:
			return &ast.Bool{Value: false}, nil
		default:
			return ast.Null{}, nil
		}
	default:
		return nil, p.errAt(p.i, fmt.Sprintf("expected a value, found %s", tok))
	}
}
