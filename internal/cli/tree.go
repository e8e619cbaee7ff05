package cli

import (
	"github.com/spf13/cobra"
)

var treeCmd = &cobra.Command{
	Use:   "tree [file]",
	Short: "Print the parse-tree dump of a document",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTree,
}

func init() {
	treeCmd.Flags().StringP("out", "o", "", "Write the dump to a file instead of stdout")
	rootCmd.AddCommand(treeCmd)
}

func runTree(cmd *cobra.Command, args []string) error {
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
	return emit(out, result.Tree.String())
}
