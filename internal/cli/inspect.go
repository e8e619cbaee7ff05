package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"jsonlens/internal/report"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Run the full pipeline and write all artifact files",
	Long:  "Tokenizes, parses and checks the document, then writes the token dump, the parse-tree dump and the AST dump to the output directory. With no argument the embedded sample document is inspected.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	}

	src, err := loadDocument(cmd.Context(), path)
	if err != nil {
		return err
	}

	insp, err := newDocumentService().Inspect(cmd.Context(), src)
	if err != nil {
		return err
	}

	writer := report.NewWriter(cfg.Inspect.OutputDir)
	if err := writer.WriteAll(cmd.Context(), insp.Tokens, insp.Tree, insp.AST); err != nil {
		return err
	}

	log.Info("Inspection complete",
		zap.String("output_dir", writer.Dir()),
		zap.Int("tokens", len(insp.Tokens)),
		zap.Int("tree_nodes", insp.Tree.Count()),
		zap.String("report_id", insp.Report.ID.String()),
		zap.Bool("valid", insp.Report.Valid),
		zap.Int("findings", len(insp.Report.Findings)),
	)
	return nil
}
