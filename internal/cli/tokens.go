package cli

import (
	"github.com/spf13/cobra"

	"jsonlens/internal/report"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [file]",
	Short: "Print the token dump of a document",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTokens,
}

func init() {
	tokensCmd.Flags().StringP("out", "o", "", "Write the dump to a file instead of stdout")
	rootCmd.AddCommand(tokensCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	out, _ := cmd.Flags().GetString("out")

	src, err := loadDocument(cmd.Context(), path)
	if err != nil {
		return err
	}

	toks, err := newDocumentService().Tokenize(cmd.Context(), src)
	if err != nil {
		return err
	}
	return emit(out, report.RenderTokens(toks))
}
