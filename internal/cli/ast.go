package cli

import (
	"github.com/spf13/cobra"

	"jsonlens/internal/ast"
)

var astCmd = &cobra.Command{
	Use:   "ast [file]",
	Short: "Print the AST dump of a document",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAST,
}

func init() {
	astCmd.Flags().StringP("out", "o", "", "Write the dump to a file instead of stdout")
	rootCmd.AddCommand(astCmd)
}

func runAST(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	out, _ := cmd.Flags().GetString("out")

	src, err := loadDocument(cmd.Context(), path)
	if err != nil {
		return err
	}

	result, err := newDocumentService().Parse(cmd.Context(), src)
	if err != nil {
		return err
	}
	return emit(out, ast.Dump(result.AST))
}
