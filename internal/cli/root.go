// Package cli implements the jsonlens command line driver: tokenizing,
// parsing, checking and inspecting catalog documents, plus the HTTP server.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"jsonlens/internal/config"
	"jsonlens/internal/logger"
	"jsonlens/internal/repository"
	"jsonlens/internal/service"
)

var (
	cfg *config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "jsonlens",
	Short:         "jsonlens - catalog document scanner, parser and checker",
	Long:          "A toolkit for catalog JSON documents: DFA tokenization, recursive descent parsing with parse-tree and AST dumps, and a fixed-shape schema check.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	err := rootCmd.Execute()
	if log != nil {
		log.Sync()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("output-dir", "", "Directory for artifact files (overrides OUTPUT_DIR)")
}

func initConfig() {
	cfg = config.Load()

	var err error
	log, err = logger.New(cfg.Server.Env)
	if err != nil {
		log = zap.NewNop()
	}

	if v, _ := rootCmd.PersistentFlags().GetString("output-dir"); v != "" {
		cfg.Inspect.OutputDir = v
	}
}

func newDocumentService() service.DocumentService {
	return service.NewDocumentService()
}

func newDocumentRepository() repository.DocumentRepository {
	return repository.NewDocumentRepository(cfg.Limits.MaxDocumentBytes)
}

// loadDocument reads the document at path, or the embedded sample document
// when path is empty.
func loadDocument(ctx context.Context, path string) ([]byte, error) {
	repo := newDocumentRepository()
	if path == "" {
		return repo.Sample(), nil
	}
	return repo.Load(ctx, path)
}

// emit writes content to the file at out, or to stdout when out is empty.
func emit(out, content string) error {
	if out == "" {
		fmt.Print(content)
		return nil
	}
	if err := os.WriteFile(out, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	return nil
}
