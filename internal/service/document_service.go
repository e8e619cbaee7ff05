package service

import (
	"context"
	"fmt"

	"jsonlens/internal/ast"
	"jsonlens/internal/catalog"
	"jsonlens/internal/lexer"
	"jsonlens/internal/parser"
	"jsonlens/internal/token"
	"jsonlens/internal/tree"
)

// DocumentService defines the interface for document inspection logic
type DocumentService interface {
	Tokenize(ctx context.Context, src []byte) ([]token.Token, error)
	Parse(ctx context.Context, src []byte) (*parser.Result, error)
	Check(ctx context.Context, src []byte) (*catalog.Report, error)
	Inspect(ctx context.Context, src []byte) (*Inspection, error)
}

// Inspection is the full result of running one document through the
// pipeline: its tokens, both trees, and the schema report.
type Inspection struct {
	Tokens []token.Token
	Tree   *tree.Node
	AST    ast.Node
	Report *catalog.Report
}

type documentService struct{}

// NewDocumentService creates a new instance of DocumentService
func NewDocumentService() DocumentService {
	return &documentService{}
}

// Tokenize splits src into tokens.
func (s *documentService) Tokenize(ctx context.Context, src []byte) ([]token.Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	toks, err := lexer.Scan(src)
	if err != nil {
		return nil, fmt.Errorf("failed to tokenize document: %w", err)
	}
	return toks, nil
}

// Parse tokenizes and parses src, returning the parse tree and the AST.
func (s *documentService) Parse(ctx context.Context, src []byte) (*parser.Result, error) {
	toks, err := s.Tokenize(ctx, src)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result, err := parser.Parse(toks)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return result, nil
}

// Check runs the catalog schema check over src.
func (s *documentService) Check(ctx context.Context, src []byte) (*catalog.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	report, err := catalog.Check(src)
	if err != nil {
		return nil, fmt.Errorf("failed to check document: %w", err)
	}
	return report, nil
}

// Inspect runs the full pipeline over src. Cancellation is honored between
// stages.
func (s *documentService) Inspect(ctx context.Context, src []byte) (*Inspection, error) {
	toks, err := s.Tokenize(ctx, src)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result, err := parser.Parse(toks)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	report := catalog.CheckAST(result.AST)

	return &Inspection{
		Tokens: toks,
		Tree:   result.Tree,
		AST:    result.AST,
		Report: report,
	}, nil
}
