// Package report writes the inspection artifacts: the token dump, the
// parse-tree dump and the AST dump.
package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"jsonlens/internal/ast"
	"jsonlens/internal/token"
	"jsonlens/internal/tree"
)

// Artifact filenames, as the original toolchain named them.
const (
	TokensFile = "tokenizedOutput.txt"
	TreeFile   = "parsetree.txt"
	ASTFile    = "AST.txt"
)

// Writer writes inspection artifacts under a single output directory.
type Writer struct {
	dir string
}

// NewWriter creates a Writer rooted at dir. The directory is created on the
// first write if it does not exist.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Dir returns the output directory.
func (w *Writer) Dir() string {
	return w.dir
}

// RenderTokens renders the token dump: one token per line.
func RenderTokens(toks []token.Token) string {
	var sb strings.Builder
	for _, tok := range toks {
		sb.WriteString(tok.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// WriteTokens writes the token dump artifact.
func (w *Writer) WriteTokens(toks []token.Token) error {
	return w.writeFile(TokensFile, []byte(RenderTokens(toks)))
}

// WriteTree writes the parse-tree dump artifact.
func (w *Writer) WriteTree(root *tree.Node) error {
	return w.writeFile(TreeFile, []byte(root.String()))
}

// WriteAST writes the AST dump artifact.
func (w *Writer) WriteAST(node ast.Node) error {
	return w.writeFile(ASTFile, []byte(ast.Dump(node)))
}

// WriteAll writes the three artifacts concurrently.
func (w *Writer) WriteAll(ctx context.Context, toks []token.Token, root *tree.Node, node ast.Node) error {
	if err := w.ensureDir(); err != nil {
		return err
	}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error { return w.WriteTokens(toks) })
	g.Go(func() error { return w.WriteTree(root) })
	g.Go(func() error { return w.WriteAST(node) })
	return g.Wait()
}

func (w *Writer) ensureDir() error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

func (w *Writer) writeFile(name string, data []byte) error {
	if err := w.ensureDir(); err != nil {
		return err
	}
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}
